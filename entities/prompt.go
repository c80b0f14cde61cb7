package entities

import "encoding/json"

type UserPrompt struct {
	ID     uint64          `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID uint64          `json:"user_id"`
	Prompt json.RawMessage `gorm:"type:json" json:"prompt"`

	User       *User       `gorm:"foreignKey:UserID" json:"-"`
	AIResponse *AIResponse `gorm:"foreignKey:UserPromptID" json:"ai_response,omitempty"`
	Timestamp
}

type AIResponse struct {
	ID           uint64          `gorm:"primaryKey;autoIncrement" json:"id"`
	UserPromptID uint64          `gorm:"uniqueIndex" json:"user_prompt_id"`
	Response     json.RawMessage `gorm:"type:json" json:"response"`

	UserPrompt *UserPrompt `gorm:"foreignKey:UserPromptID" json:"-"`
	Recipes    []Recipe    `gorm:"foreignKey:AIResponseID" json:"recipes,omitempty"`
	Timestamp
}
