package dispatch

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"smartrecipe/domain"
)

type (
	// Repository is the single contract all three backends implement.
	// Every method takes the canonical model identity; backends that do
	// not implement a model fail closed with ErrUnsupportedOperation.
	Repository interface {
		Create(ctx context.Context, model domain.Model, payload map[string]any) (any, error)
		GetAll(ctx context.Context, model domain.Model) (any, error)
		GetByID(ctx context.Context, model domain.Model, id ID) (any, error)
		Update(ctx context.Context, model domain.Model, id ID, patch map[string]any) (any, error)
		Delete(ctx context.Context, model domain.Model, id ID) error

		// CreateRecipe runs the recipe-creation protocol: AIResponse
		// existence check, ingredient upsert, recipe + instruction
		// inserts, composed re-read, all in one store transaction.
		CreateRecipe(ctx context.Context, req domain.CreateRecipeRequest) (any, error)
	}

	// ID is a backend-normalized identifier. Exactly one field is
	// meaningful, selected by the backend the ID was normalized for.
	ID struct {
		Backend  domain.Backend
		Uint     uint64
		ObjectID primitive.ObjectID
		Key      string
	}
)

// String returns the raw form the identifier was parsed from.
func (id ID) String() string {
	switch id.Backend {
	case domain.BackendMySQL:
		return uintToString(id.Uint)
	case domain.BackendMongoDB:
		return id.ObjectID.Hex()
	default:
		return id.Key
	}
}
