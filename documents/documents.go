// Package documents holds the MongoDB representations of the domain
// entities. Relations are stored as ObjectID references on the owning
// side (the child points at its parent), mirroring the relational
// foreign keys, and composition happens at read time. Field names are
// identical in bson and JSON so partial updates pass through untouched.
package documents

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type User struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name          string             `bson:"name" json:"name"`
	Email         string             `bson:"email" json:"email"`
	Password      string             `bson:"password,omitempty" json:"password,omitempty"`
	OAuthID       *string            `bson:"oauth_id,omitempty" json:"oauth_id,omitempty"`
	OAuthProvider *string            `bson:"oauth_provider,omitempty" json:"oauth_provider,omitempty"`
	CreatedAt     time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt     time.Time          `bson:"updated_at" json:"updated_at"`
}

type UserPrompt struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID    primitive.ObjectID `bson:"user_id" json:"user_id"`
	Prompt    any                `bson:"prompt" json:"prompt"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time          `bson:"updated_at" json:"updated_at"`
}

type AIResponse struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserPromptID primitive.ObjectID `bson:"user_prompt_id" json:"user_prompt_id"`
	Response     any                `bson:"response" json:"response"`
	CreatedAt    time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt    time.Time          `bson:"updated_at" json:"updated_at"`
}

type Recipe struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	AIResponseID primitive.ObjectID `bson:"ai_response_id" json:"ai_response_id"`
	Name         string             `bson:"name" json:"name"`
	Prep         any                `bson:"prep" json:"prep"`
	Cook         any                `bson:"cook" json:"cook"`
	PortionSize  int                `bson:"portion_size" json:"portion_size"`
	FinalComment string             `bson:"final_comment" json:"final_comment"`
	CreatedAt    time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt    time.Time          `bson:"updated_at" json:"updated_at"`

	// Populated on composed reads, never stored.
	Instructions      []Instruction      `bson:"-" json:"instructions,omitempty"`
	RecipeIngredients []RecipeIngredient `bson:"-" json:"recipe_ingredients,omitempty"`
}

type Ingredient struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name      string             `bson:"name" json:"name"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time          `bson:"updated_at" json:"updated_at"`
}

type Instruction struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	RecipeID  primitive.ObjectID `bson:"recipe_id" json:"recipe_id"`
	Part      int                `bson:"part" json:"part"`
	Steps     any                `bson:"steps" json:"steps"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time          `bson:"updated_at" json:"updated_at"`
}

type RecipeIngredient struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	RecipeID     primitive.ObjectID `bson:"recipe_id" json:"recipe_id"`
	IngredientID primitive.ObjectID `bson:"ingredient_id" json:"ingredient_id"`
	Value        float64            `bson:"value" json:"value"`
	Unit         string             `bson:"unit" json:"unit"`
	Comment      string             `bson:"comment,omitempty" json:"comment,omitempty"`
	CreatedAt    time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt    time.Time          `bson:"updated_at" json:"updated_at"`

	// Populated on composed recipe reads.
	Ingredient *Ingredient `bson:"-" json:"ingredient,omitempty"`
}

type UserRecipe struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID   primitive.ObjectID `bson:"user_id" json:"user_id"`
	RecipeID primitive.ObjectID `bson:"recipe_id" json:"recipe_id"`
	SavedAt  time.Time          `bson:"saved_at" json:"saved_at"`
}

type RecipeModification struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	RecipeID     primitive.ObjectID `bson:"recipe_id" json:"recipe_id"`
	UserPromptID primitive.ObjectID `bson:"user_prompt_id" json:"user_prompt_id"`
	IsActive     bool               `bson:"is_active" json:"is_active"`
	CreatedAt    time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt    time.Time          `bson:"updated_at" json:"updated_at"`
}

type ModificationResponse struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	AIResponseID    primitive.ObjectID `bson:"ai_response_id" json:"ai_response_id"`
	ModificationID  primitive.ObjectID `bson:"modification_id" json:"modification_id"`
	AppliedToRecipe bool               `bson:"applied_to_recipe" json:"applied_to_recipe"`
	CreatedAt       time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt       time.Time          `bson:"updated_at" json:"updated_at"`
}
