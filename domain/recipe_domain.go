package domain

import "encoding/json"

type (
	// CreateRecipeRequest is the payload of POST /:dbType/recipe. Recipe
	// creation fans out into ingredient upserts and instruction inserts,
	// so it gets a typed request instead of the generic raw-map path.
	CreateRecipeRequest struct {
		AIResponseID string                     `json:"aiResponseId" validate:"required"`
		Name         string                     `json:"name" validate:"required"`
		Prep         json.RawMessage            `json:"prep" validate:"required"`
		Cook         json.RawMessage            `json:"cook" validate:"required"`
		PortionSize  int                        `json:"portionSize" validate:"required,min=1"`
		FinalComment string                     `json:"finalComment" validate:"required"`
		Instructions []CreateInstructionRequest `json:"instructions" validate:"dive"`
		Ingredients  []CreateIngredientRequest  `json:"ingredients" validate:"dive"`
	}

	CreateInstructionRequest struct {
		Part  int             `json:"part" validate:"required,min=1"`
		Steps json.RawMessage `json:"steps" validate:"required"`
	}

	CreateIngredientRequest struct {
		Name    string  `json:"name" validate:"required"`
		Value   float64 `json:"value" validate:"required,min=0"`
		Unit    string  `json:"unit" validate:"required"`
		Comment string  `json:"comment,omitempty"`
	}
)
