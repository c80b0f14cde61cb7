package document

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// EnsureIndexes creates the unique indexes the recipe-creation protocol
// and the data model rely on. Uniqueness must live in the store: the
// ingredient upsert race cannot be closed by application-level locking.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	unique := options.Index().SetUnique(true)

	indexes := map[string][]mongo.IndexModel{
		colUsers: {
			{Keys: bson.D{{Key: "email", Value: 1}}, Options: unique},
		},
		colIngredients: {
			{Keys: bson.D{{Key: "name", Value: 1}}, Options: unique},
		},
		colAIResponses: {
			{Keys: bson.D{{Key: "user_prompt_id", Value: 1}}, Options: unique},
		},
		colInstructions: {
			{Keys: bson.D{{Key: "recipe_id", Value: 1}, {Key: "part", Value: 1}}, Options: unique},
		},
		colRecipeIngredients: {
			{Keys: bson.D{{Key: "recipe_id", Value: 1}, {Key: "ingredient_id", Value: 1}}, Options: unique},
		},
		colUserRecipes: {
			{Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "recipe_id", Value: 1}}, Options: unique},
		},
		colRecipes: {
			{Keys: bson.D{{Key: "ai_response_id", Value: 1}}},
		},
	}

	for collection, models := range indexes {
		if _, err := db.Collection(collection).Indexes().CreateMany(ctx, models); err != nil {
			return err
		}
	}
	return nil
}
