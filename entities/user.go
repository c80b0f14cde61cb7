package entities

import "time"

type User struct {
	ID            uint64  `gorm:"primaryKey;autoIncrement" json:"id"`
	Name          string  `json:"name"`
	Email         string  `gorm:"uniqueIndex;size:191" json:"email"`
	Password      string  `json:"password,omitempty"`
	OAuthID       *string `json:"oauth_id,omitempty"`
	OAuthProvider *string `json:"oauth_provider,omitempty"`

	Prompts     []UserPrompt `gorm:"foreignKey:UserID" json:"prompts,omitempty"`
	UserRecipes []UserRecipe `gorm:"foreignKey:UserID" json:"user_recipes,omitempty"`
	Timestamp
}

type UserRecipe struct {
	ID       uint64    `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID   uint64    `gorm:"uniqueIndex:idx_user_recipe" json:"user_id"`
	RecipeID uint64    `gorm:"uniqueIndex:idx_user_recipe" json:"recipe_id"`
	SavedAt  time.Time `gorm:"autoCreateTime" json:"saved_at"`

	User   *User   `gorm:"foreignKey:UserID" json:"-"`
	Recipe *Recipe `gorm:"foreignKey:RecipeID" json:"-"`
}
