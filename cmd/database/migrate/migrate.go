package migration

import (
	"context"
	"fmt"
	"log"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"go.mongodb.org/mongo-driver/mongo"
	"gorm.io/gorm"

	"smartrecipe/entities"
	"smartrecipe/pkg/document"
	"smartrecipe/pkg/graph"
)

// Migrate prepares all three stores: relational schema, document
// indexes, graph constraints. The unique indexes are load-bearing for
// the recipe-creation protocol, not an optimization.
func Migrate(ctx context.Context, db *gorm.DB, mongoDB *mongo.Database, driver neo4j.DriverWithContext) error {
	models := []any{
		&entities.User{},
		&entities.UserPrompt{},
		&entities.AIResponse{},
		&entities.Recipe{},
		&entities.Ingredient{},
		&entities.Instruction{},
		&entities.RecipeIngredient{},
		&entities.UserRecipe{},
		&entities.RecipeModification{},
		&entities.ModificationResponse{},
	}
	for _, model := range models {
		if err := db.AutoMigrate(model); err != nil {
			log.Printf("Error migrating %T: %v", model, err)
			return err
		}
	}

	if err := document.EnsureIndexes(ctx, mongoDB); err != nil {
		log.Printf("Error creating MongoDB indexes: %v", err)
		return err
	}

	if err := graph.EnsureConstraints(ctx, driver); err != nil {
		log.Printf("Error creating Neo4j constraints: %v", err)
		return err
	}

	fmt.Println("Database migration complete")
	return nil
}
