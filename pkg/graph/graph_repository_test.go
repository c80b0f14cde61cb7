package graph

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"smartrecipe/domain"
)

func TestBuildSpecs_CoversEveryModel(t *testing.T) {
	specs := buildSpecs()
	for _, model := range domain.AllModels {
		_, ok := specs[model]
		assert.True(t, ok, string(model))
	}
}

func TestBuildSpecs_RecipeLookupsCompose(t *testing.T) {
	specs := buildSpecs()
	assert.NotNil(t, specs[domain.ModelRecipe].read)
	for _, model := range domain.AllModels {
		if model == domain.ModelRecipe {
			continue
		}
		assert.Nil(t, specs[model].read, string(model))
	}
}

func TestBuildSpecs_JoinEntitiesLinkBothSides(t *testing.T) {
	specs := buildSpecs()
	assert.Len(t, specs[domain.ModelRecipeIngredient].edges, 2)
	assert.Len(t, specs[domain.ModelUserRecipe].edges, 2)
	assert.Empty(t, specs[domain.ModelUser].edges)
	assert.Empty(t, specs[domain.ModelIngredient].edges)
}

func TestNewNodeID_Format(t *testing.T) {
	id := newNodeID("Recipe")
	parts := strings.Split(id, "_")
	require.Len(t, parts, 3)
	assert.Equal(t, "recipe", parts[0])
	assert.NotEmpty(t, parts[1])
	assert.Len(t, parts[2], 8)

	other := newNodeID("Recipe")
	assert.NotEqual(t, id, other)
}

func TestToProps_EncodesStructuredValues(t *testing.T) {
	props := toProps(map[string]any{
		"name": "Pasta",
		"prep": map[string]any{"minutes": 10},
		"tags": []any{"quick", "vegetarian"},
	})
	assert.Equal(t, "Pasta", props["name"])
	assert.JSONEq(t, `{"minutes":10}`, props["prep"].(string))
	assert.JSONEq(t, `["quick","vegetarian"]`, props["tags"].(string))
}

func TestDecodeProps_RestoresJSONDocuments(t *testing.T) {
	out := decodeProps(map[string]any{
		"id":    "recipe_1700000000000_ab12cd34",
		"prep":  `{"minutes":10}`,
		"steps": `{"text":"Boil."}`,
		"name":  "Pasta",
	})
	assert.Equal(t, map[string]any{"minutes": float64(10)}, out["prep"])
	assert.Equal(t, map[string]any{"text": "Boil."}, out["steps"])
	assert.Equal(t, "Pasta", out["name"])
	assert.Equal(t, "recipe_1700000000000_ab12cd34", out["id"])
}

func TestDecodeProps_LeavesMalformedJSONAsText(t *testing.T) {
	out := decodeProps(map[string]any{"prep": "not json at all{"})
	assert.Equal(t, "not json at all{", out["prep"])
}
