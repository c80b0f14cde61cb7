package entities

type RecipeModification struct {
	ID           uint64 `gorm:"primaryKey;autoIncrement" json:"id"`
	RecipeID     uint64 `json:"recipe_id"`
	UserPromptID uint64 `json:"user_prompt_id"`
	IsActive     bool   `json:"is_active"`

	Recipe     *Recipe     `gorm:"foreignKey:RecipeID" json:"-"`
	UserPrompt *UserPrompt `gorm:"foreignKey:UserPromptID" json:"-"`
	Timestamp
}

type ModificationResponse struct {
	ID              uint64 `gorm:"primaryKey;autoIncrement" json:"id"`
	AIResponseID    uint64 `json:"ai_response_id"`
	ModificationID  uint64 `json:"modification_id"`
	AppliedToRecipe bool   `json:"applied_to_recipe"`

	AIResponse   *AIResponse         `gorm:"foreignKey:AIResponseID" json:"-"`
	Modification *RecipeModification `gorm:"foreignKey:ModificationID" json:"-"`
	Timestamp
}
