package entities

import (
	"encoding/json"

	"gorm.io/gorm"
)

type Recipe struct {
	ID           uint64          `gorm:"primaryKey;autoIncrement" json:"id"`
	AIResponseID uint64          `json:"ai_response_id"`
	Name         string          `gorm:"index" json:"name"`
	Prep         json.RawMessage `gorm:"type:json" json:"prep"`
	Cook         json.RawMessage `gorm:"type:json" json:"cook"`
	PortionSize  int             `json:"portion_size"`
	FinalComment string          `json:"final_comment"`

	AIResponse        *AIResponse        `gorm:"foreignKey:AIResponseID" json:"-"`
	Instructions      []Instruction      `gorm:"foreignKey:RecipeID" json:"instructions,omitempty"`
	RecipeIngredients []RecipeIngredient `gorm:"foreignKey:RecipeID" json:"recipe_ingredients,omitempty"`
	Timestamp
	// Recipes are the only relational entities that soft-delete.
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

type Ingredient struct {
	ID   uint64 `gorm:"primaryKey;autoIncrement" json:"id"`
	Name string `gorm:"uniqueIndex;size:191" json:"name"`

	RecipeIngredients []RecipeIngredient `gorm:"foreignKey:IngredientID" json:"-"`
	Timestamp
}

type Instruction struct {
	ID       uint64          `gorm:"primaryKey;autoIncrement" json:"id"`
	RecipeID uint64          `gorm:"uniqueIndex:idx_recipe_part" json:"recipe_id"`
	Part     int             `gorm:"uniqueIndex:idx_recipe_part" json:"part"`
	Steps    json.RawMessage `gorm:"type:json" json:"steps"`

	Recipe *Recipe `gorm:"foreignKey:RecipeID" json:"-"`
	Timestamp
}

type RecipeIngredient struct {
	ID           uint64  `gorm:"primaryKey;autoIncrement" json:"id"`
	RecipeID     uint64  `gorm:"uniqueIndex:idx_recipe_ingredient" json:"recipe_id"`
	IngredientID uint64  `gorm:"uniqueIndex:idx_recipe_ingredient" json:"ingredient_id"`
	Value        float64 `json:"value"`
	Unit         string  `json:"unit"`
	Comment      string  `json:"comment,omitempty"`

	Recipe     *Recipe     `gorm:"foreignKey:RecipeID" json:"-"`
	Ingredient *Ingredient `gorm:"foreignKey:IngredientID" json:"ingredient,omitempty"`
	Timestamp
}
