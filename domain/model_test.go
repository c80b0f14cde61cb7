package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveModel_KnownSegments(t *testing.T) {
	cases := map[string]Model{
		"user":                 ModelUser,
		"userprompt":           ModelUserPrompt,
		"airesponse":           ModelAIResponse,
		"recipe":               ModelRecipe,
		"ingredient":           ModelIngredient,
		"instruction":          ModelInstruction,
		"recipeingredient":     ModelRecipeIngredient,
		"userrecipe":           ModelUserRecipe,
		"recipemodification":   ModelRecipeModification,
		"modificationresponse": ModelModificationResponse,
	}
	for segment, want := range cases {
		got, err := ResolveModel(segment)
		require.NoError(t, err, segment)
		assert.Equal(t, want, got)
	}
}

func TestResolveModel_CaseInsensitive(t *testing.T) {
	got, err := ResolveModel("Recipe")
	require.NoError(t, err)
	assert.Equal(t, ModelRecipe, got)

	got, err = ResolveModel("USERPROMPT")
	require.NoError(t, err)
	assert.Equal(t, ModelUserPrompt, got)
}

func TestResolveModel_Unknown(t *testing.T) {
	_, err := ResolveModel("pizza")
	assert.ErrorIs(t, err, ErrUnknownModel)

	_, err = ResolveModel("")
	assert.ErrorIs(t, err, ErrUnknownModel)
}

func TestResolveBackend(t *testing.T) {
	for _, segment := range []string{"mysql", "mongodb", "neo4j"} {
		backend, err := ResolveBackend(segment)
		require.NoError(t, err)
		assert.Equal(t, Backend(segment), backend)
	}

	_, err := ResolveBackend("postgres")
	assert.ErrorIs(t, err, ErrInvalidDatabaseType)
}

func TestAllModels_CoversRegistry(t *testing.T) {
	assert.Len(t, AllModels, 10)
	for _, model := range AllModels {
		got, err := ResolveModel(string(model))
		require.NoError(t, err)
		assert.Equal(t, model, got)
	}
}
