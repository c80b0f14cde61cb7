package relational

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"smartrecipe/domain"
	"smartrecipe/entities"
)

func TestBuildOps_CoversEveryModel(t *testing.T) {
	table := buildOps()
	for _, model := range domain.AllModels {
		_, ok := table[model]
		assert.True(t, ok, string(model))
	}
}

func TestSanitizePatch_DropsProtectedColumns(t *testing.T) {
	columns := sanitizePatch(map[string]any{
		"id":            float64(9),
		"created_at":    "2024-01-01",
		"updated_at":    "2024-01-01",
		"deleted_at":    nil,
		"final_comment": "Better cold.",
	})
	assert.Equal(t, map[string]any{"final_comment": "Better cold."}, columns)
}

func TestSanitizePatch_EncodesStructuredValues(t *testing.T) {
	columns := sanitizePatch(map[string]any{
		"prep": map[string]any{"minutes": 10},
	})
	raw, ok := columns["prep"].([]byte)
	require.True(t, ok)
	assert.JSONEq(t, `{"minutes":10}`, string(raw))
}

func TestNormalizeRefs_NumericStrings(t *testing.T) {
	out := normalizeRefs(map[string]any{
		"user_id":   "3",
		"recipe_id": float64(7),
		"name":      "42", // not a reference field
	})
	assert.Equal(t, uint64(3), out["user_id"])
	assert.Equal(t, float64(7), out["recipe_id"])
	assert.Equal(t, "42", out["name"])
}

func TestNormalizeRefs_LeavesNonReferenceIDColumnsAlone(t *testing.T) {
	// oauth_id is an external subject identifier, not a foreign key;
	// Google and GitHub hand out values that happen to parse as integers.
	out := normalizeRefs(map[string]any{
		"oauth_id": "1038457639",
	})
	assert.Equal(t, "1038457639", out["oauth_id"])
}

func TestDecodePayload_NumericOAuthID(t *testing.T) {
	v, err := decodePayload[entities.User](map[string]any{
		"name":     "Ada",
		"email":    "ada@example.com",
		"oauth_id": "1038457639",
	})
	require.NoError(t, err)
	require.NotNil(t, v.OAuthID)
	assert.Equal(t, "1038457639", *v.OAuthID)
}

func TestPatchColumns_EmptyPatchStillBumpsUpdatedAt(t *testing.T) {
	columns := patchColumns(map[string]any{
		"id":         float64(4),
		"created_at": "2024-01-01",
	})
	assert.Contains(t, columns, "updated_at")

	columns = patchColumns(map[string]any{"name": "garlic"})
	assert.Equal(t, map[string]any{"name": "garlic"}, columns)
}

func TestDecodePayload_MapsJSONFields(t *testing.T) {
	v, err := decodePayload[entities.UserPrompt](map[string]any{
		"user_id": "5",
		"prompt":  map[string]any{"text": "dinner ideas"},
	})
	require.NoError(t, err)
	assert.Equal(t, uint64(5), v.UserID)

	var prompt map[string]any
	require.NoError(t, json.Unmarshal(v.Prompt, &prompt))
	assert.Equal(t, "dinner ideas", prompt["text"])
}

func TestDecodePayload_RejectsWrongShape(t *testing.T) {
	_, err := decodePayload[entities.Instruction](map[string]any{
		"part": "not-a-number",
	})
	assert.Error(t, err)
}
