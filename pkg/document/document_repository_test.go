package document

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"smartrecipe/documents"
	"smartrecipe/domain"
)

func TestBuildOps_CoversEveryModel(t *testing.T) {
	table := buildOps()
	for _, model := range domain.AllModels {
		_, ok := table[model]
		assert.True(t, ok, string(model))
	}
}

func TestSanitizePatch_ConvertsReferenceHexToObjectID(t *testing.T) {
	oid := primitive.NewObjectID()
	set := sanitizePatch(map[string]any{
		"recipe_id": oid.Hex(),
		"comment":   "chopped",
	})
	assert.Equal(t, oid, set["recipe_id"])
	assert.Equal(t, "chopped", set["comment"])
}

func TestSanitizePatch_DropsProtectedFields(t *testing.T) {
	set := sanitizePatch(map[string]any{
		"_id":        "deadbeefdeadbeefdeadbeef",
		"id":         "deadbeefdeadbeefdeadbeef",
		"created_at": "2024-01-01",
		"updated_at": "2024-01-01",
		"name":       "garlic",
	})
	assert.Equal(t, map[string]any{"name": "garlic"}, map[string]any(set))
}

func TestSanitizePatch_LeavesNonHexReferenceAlone(t *testing.T) {
	set := sanitizePatch(map[string]any{"user_id": "nope"})
	assert.Equal(t, "nope", set["user_id"])
}

func TestToFields_StampsTimestampsAndDropsID(t *testing.T) {
	fields, err := toFields(documents.Ingredient{
		ID:   primitive.NewObjectID(),
		Name: "garlic",
	})
	require.NoError(t, err)

	_, hasID := fields["_id"]
	assert.False(t, hasID)
	assert.Equal(t, "garlic", fields["name"])

	created, ok := fields["created_at"].(time.Time)
	require.True(t, ok)
	assert.WithinDuration(t, time.Now().UTC(), created, time.Minute)
	assert.Equal(t, fields["created_at"], fields["updated_at"])
}

func TestToFields_DefaultsSavedAt(t *testing.T) {
	fields, err := toFields(documents.UserRecipe{
		UserID:   primitive.NewObjectID(),
		RecipeID: primitive.NewObjectID(),
	})
	require.NoError(t, err)

	saved, ok := fields["saved_at"].(time.Time)
	require.True(t, ok, "saved_at was not stamped")
	assert.WithinDuration(t, time.Now().UTC(), saved, time.Minute)
}

func TestToFields_KeepsProvidedSavedAt(t *testing.T) {
	when := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	fields, err := toFields(documents.UserRecipe{
		UserID:   primitive.NewObjectID(),
		RecipeID: primitive.NewObjectID(),
		SavedAt:  when,
	})
	require.NoError(t, err)

	saved, ok := fields["saved_at"].(primitive.DateTime)
	require.True(t, ok)
	assert.True(t, saved.Time().UTC().Equal(when))
}

func TestRawToAny(t *testing.T) {
	assert.Equal(t, map[string]any{"minutes": float64(10)}, rawToAny([]byte(`{"minutes":10}`)))
	assert.Equal(t, "plain text", rawToAny([]byte(`"plain text"`)))
}
