package domain

import "strings"

// Model is the canonical identity of a domain entity. The set is closed:
// a repository can only be asked about models listed here, and anything
// else fails resolution with ErrUnknownModel.
type Model string

const (
	ModelUser                 Model = "User"
	ModelUserPrompt           Model = "UserPrompt"
	ModelAIResponse           Model = "AIResponse"
	ModelRecipe               Model = "Recipe"
	ModelIngredient           Model = "Ingredient"
	ModelInstruction          Model = "Instruction"
	ModelRecipeIngredient     Model = "RecipeIngredient"
	ModelUserRecipe           Model = "UserRecipe"
	ModelRecipeModification   Model = "RecipeModification"
	ModelModificationResponse Model = "ModificationResponse"
)

// AllModels lists every addressable model, in creation-dependency order.
var AllModels = []Model{
	ModelUser,
	ModelUserPrompt,
	ModelAIResponse,
	ModelRecipe,
	ModelIngredient,
	ModelInstruction,
	ModelRecipeIngredient,
	ModelUserRecipe,
	ModelRecipeModification,
	ModelModificationResponse,
}

var modelRegistry = func() map[string]Model {
	m := make(map[string]Model, len(AllModels))
	for _, model := range AllModels {
		m[strings.ToLower(string(model))] = model
	}
	return m
}()

// ResolveModel maps a URL path segment to its Model. Lookup is
// case-insensitive; unknown names fail with ErrUnknownModel.
func ResolveModel(segment string) (Model, error) {
	model, ok := modelRegistry[strings.ToLower(segment)]
	if !ok {
		return "", ErrUnknownModel
	}
	return model, nil
}
