// Package document implements the repository contract on MongoDB. Each
// model has its own collection; relations are ObjectID references and
// deletes are hard deletes.
package document

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"smartrecipe/documents"
	"smartrecipe/domain"
	"smartrecipe/pkg/dispatch"
)

const (
	colUsers                 = "users"
	colUserPrompts           = "user_prompts"
	colAIResponses           = "ai_responses"
	colRecipes               = "recipes"
	colIngredients           = "ingredients"
	colInstructions          = "instructions"
	colRecipeIngredients     = "recipe_ingredients"
	colUserRecipes           = "user_recipes"
	colRecipeModifications   = "recipe_modifications"
	colModificationResponses = "modification_responses"
)

type documentRepository struct {
	client *mongo.Client
	db     *mongo.Database
	ops    map[domain.Model]modelOps
}

func NewDocumentRepository(client *mongo.Client, db *mongo.Database) dispatch.Repository {
	return &documentRepository{
		client: client,
		db:     db,
		ops:    buildOps(),
	}
}

type modelOps struct {
	create  func(ctx context.Context, db *mongo.Database, payload map[string]any) (any, error)
	getAll  func(ctx context.Context, db *mongo.Database) (any, error)
	getByID func(ctx context.Context, db *mongo.Database, id primitive.ObjectID) (any, error)
	update  func(ctx context.Context, db *mongo.Database, id primitive.ObjectID, patch map[string]any) (any, error)
	delete  func(ctx context.Context, db *mongo.Database, id primitive.ObjectID) error
}

func buildOps() map[domain.Model]modelOps {
	table := map[domain.Model]modelOps{
		domain.ModelUser:                 ops[documents.User](colUsers),
		domain.ModelUserPrompt:           ops[documents.UserPrompt](colUserPrompts),
		domain.ModelAIResponse:           ops[documents.AIResponse](colAIResponses),
		domain.ModelRecipe:               ops[documents.Recipe](colRecipes),
		domain.ModelIngredient:           ops[documents.Ingredient](colIngredients),
		domain.ModelInstruction:          ops[documents.Instruction](colInstructions),
		domain.ModelRecipeIngredient:     ops[documents.RecipeIngredient](colRecipeIngredients),
		domain.ModelUserRecipe:           ops[documents.UserRecipe](colUserRecipes),
		domain.ModelRecipeModification:   ops[documents.RecipeModification](colRecipeModifications),
		domain.ModelModificationResponse: ops[documents.ModificationResponse](colModificationResponses),
	}

	// Recipe lookups compose the referenced instructions and ingredient
	// associations into the response.
	recipe := table[domain.ModelRecipe]
	recipe.getByID = func(ctx context.Context, db *mongo.Database, id primitive.ObjectID) (any, error) {
		return composeRecipe(ctx, db, id)
	}
	table[domain.ModelRecipe] = recipe
	return table
}

// ops builds the generic CRUD row for a document type backed by one
// collection.
func ops[T any](collection string) modelOps {
	return modelOps{
		create: func(ctx context.Context, db *mongo.Database, payload map[string]any) (any, error) {
			doc, err := decodePayload[T](payload)
			if err != nil {
				return nil, err
			}
			fields, err := toFields(doc)
			if err != nil {
				return nil, err
			}
			res, err := db.Collection(collection).InsertOne(ctx, fields)
			if err != nil {
				return nil, mapErr(err)
			}
			var out T
			if err := db.Collection(collection).FindOne(ctx, bson.M{"_id": res.InsertedID}).Decode(&out); err != nil {
				return nil, mapErr(err)
			}
			return &out, nil
		},
		getAll: func(ctx context.Context, db *mongo.Database) (any, error) {
			cursor, err := db.Collection(collection).Find(ctx, bson.M{})
			if err != nil {
				return nil, mapErr(err)
			}
			items := []T{}
			if err := cursor.All(ctx, &items); err != nil {
				return nil, mapErr(err)
			}
			return items, nil
		},
		getByID: func(ctx context.Context, db *mongo.Database, id primitive.ObjectID) (any, error) {
			var out T
			if err := db.Collection(collection).FindOne(ctx, bson.M{"_id": id}).Decode(&out); err != nil {
				return nil, mapErr(err)
			}
			return &out, nil
		},
		update: func(ctx context.Context, db *mongo.Database, id primitive.ObjectID, patch map[string]any) (any, error) {
			set := sanitizePatch(patch)
			set["updated_at"] = time.Now().UTC()
			var out T
			err := db.Collection(collection).FindOneAndUpdate(
				ctx,
				bson.M{"_id": id},
				bson.M{"$set": set},
				options.FindOneAndUpdate().SetReturnDocument(options.After),
			).Decode(&out)
			if err != nil {
				return nil, mapErr(err)
			}
			return &out, nil
		},
		delete: func(ctx context.Context, db *mongo.Database, id primitive.ObjectID) error {
			res, err := db.Collection(collection).DeleteOne(ctx, bson.M{"_id": id})
			if err != nil {
				return mapErr(err)
			}
			if res.DeletedCount == 0 {
				return domain.ErrNotFound
			}
			return nil
		},
	}
}

func (r *documentRepository) Create(ctx context.Context, model domain.Model, payload map[string]any) (any, error) {
	op, ok := r.ops[model]
	if !ok {
		return nil, domain.ErrUnsupportedOperation
	}
	return op.create(ctx, r.db, payload)
}

func (r *documentRepository) GetAll(ctx context.Context, model domain.Model) (any, error) {
	op, ok := r.ops[model]
	if !ok {
		return nil, domain.ErrUnsupportedOperation
	}
	return op.getAll(ctx, r.db)
}

func (r *documentRepository) GetByID(ctx context.Context, model domain.Model, id dispatch.ID) (any, error) {
	op, ok := r.ops[model]
	if !ok {
		return nil, domain.ErrUnsupportedOperation
	}
	return op.getByID(ctx, r.db, id.ObjectID)
}

func (r *documentRepository) Update(ctx context.Context, model domain.Model, id dispatch.ID, patch map[string]any) (any, error) {
	op, ok := r.ops[model]
	if !ok {
		return nil, domain.ErrUnsupportedOperation
	}
	return op.update(ctx, r.db, id.ObjectID, patch)
}

func (r *documentRepository) Delete(ctx context.Context, model domain.Model, id dispatch.ID) error {
	op, ok := r.ops[model]
	if !ok {
		return domain.ErrUnsupportedOperation
	}
	return op.delete(ctx, r.db, id.ObjectID)
}

// CreateRecipe runs the recipe-creation protocol inside one multi-document
// transaction; any failing step aborts the whole unit.
func (r *documentRepository) CreateRecipe(ctx context.Context, req domain.CreateRecipeRequest) (any, error) {
	aiResponseID, err := primitive.ObjectIDFromHex(req.AIResponseID)
	if err != nil {
		return nil, domain.ErrReferenceNotFound
	}

	session, err := r.client.StartSession()
	if err != nil {
		return nil, mapErr(err)
	}
	defer session.EndSession(ctx)

	db := r.db
	out, err := session.WithTransaction(ctx, func(sc mongo.SessionContext) (any, error) {
		if err := db.Collection(colAIResponses).FindOne(sc, bson.M{"_id": aiResponseID}).Err(); err != nil {
			if errors.Is(err, mongo.ErrNoDocuments) {
				return nil, domain.ErrReferenceNotFound
			}
			return nil, err
		}

		now := time.Now().UTC()
		recipe := documents.Recipe{
			ID:           primitive.NewObjectID(),
			AIResponseID: aiResponseID,
			Name:         req.Name,
			Prep:         rawToAny(req.Prep),
			Cook:         rawToAny(req.Cook),
			PortionSize:  req.PortionSize,
			FinalComment: req.FinalComment,
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		if _, err := db.Collection(colRecipes).InsertOne(sc, recipe); err != nil {
			return nil, err
		}

		for _, ing := range req.Ingredients {
			// Upsert on the unique name closes the find-then-create race
			// across concurrent recipe creations.
			var ingredient documents.Ingredient
			err := db.Collection(colIngredients).FindOneAndUpdate(
				sc,
				bson.M{"name": ing.Name},
				bson.M{"$setOnInsert": documents.Ingredient{
					ID:        primitive.NewObjectID(),
					Name:      ing.Name,
					CreatedAt: now,
					UpdatedAt: now,
				}},
				options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After),
			).Decode(&ingredient)
			if err != nil {
				return nil, err
			}

			// Same pattern for the association keeps a duplicate
			// ingredient name within one request idempotent.
			_, err = db.Collection(colRecipeIngredients).UpdateOne(
				sc,
				bson.M{"recipe_id": recipe.ID, "ingredient_id": ingredient.ID},
				bson.M{"$setOnInsert": documents.RecipeIngredient{
					ID:           primitive.NewObjectID(),
					RecipeID:     recipe.ID,
					IngredientID: ingredient.ID,
					Value:        ing.Value,
					Unit:         ing.Unit,
					Comment:      ing.Comment,
					CreatedAt:    now,
					UpdatedAt:    now,
				}},
				options.Update().SetUpsert(true),
			)
			if err != nil {
				return nil, err
			}
		}

		for _, ins := range req.Instructions {
			instruction := documents.Instruction{
				ID:        primitive.NewObjectID(),
				RecipeID:  recipe.ID,
				Part:      ins.Part,
				Steps:     rawToAny(ins.Steps),
				CreatedAt: now,
				UpdatedAt: now,
			}
			if _, err := db.Collection(colInstructions).InsertOne(sc, instruction); err != nil {
				return nil, err
			}
		}

		return composeRecipe(sc, db, recipe.ID)
	})
	if err != nil {
		return nil, mapErr(err)
	}
	return out, nil
}

// composeRecipe re-reads a recipe together with its ordered instructions
// and resolved ingredient associations.
func composeRecipe(ctx context.Context, db *mongo.Database, id primitive.ObjectID) (*documents.Recipe, error) {
	var recipe documents.Recipe
	if err := db.Collection(colRecipes).FindOne(ctx, bson.M{"_id": id}).Decode(&recipe); err != nil {
		return nil, mapErr(err)
	}

	cursor, err := db.Collection(colInstructions).Find(
		ctx,
		bson.M{"recipe_id": id},
		options.Find().SetSort(bson.D{{Key: "part", Value: 1}}),
	)
	if err != nil {
		return nil, mapErr(err)
	}
	if err := cursor.All(ctx, &recipe.Instructions); err != nil {
		return nil, mapErr(err)
	}

	cursor, err = db.Collection(colRecipeIngredients).Find(ctx, bson.M{"recipe_id": id})
	if err != nil {
		return nil, mapErr(err)
	}
	if err := cursor.All(ctx, &recipe.RecipeIngredients); err != nil {
		return nil, mapErr(err)
	}
	for i := range recipe.RecipeIngredients {
		var ingredient documents.Ingredient
		err := db.Collection(colIngredients).
			FindOne(ctx, bson.M{"_id": recipe.RecipeIngredients[i].IngredientID}).
			Decode(&ingredient)
		if err != nil {
			return nil, mapErr(err)
		}
		recipe.RecipeIngredients[i].Ingredient = &ingredient
	}
	return &recipe, nil
}

func decodePayload[T any](payload map[string]any) (*T, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	v := new(T)
	if err := json.Unmarshal(raw, v); err != nil {
		return nil, err
	}
	return v, nil
}

// toFields flattens a typed document into a field map with the identity
// dropped (MongoDB assigns it) and creation timestamps stamped.
func toFields(doc any) (bson.M, error) {
	raw, err := bson.Marshal(doc)
	if err != nil {
		return nil, err
	}
	fields := bson.M{}
	if err := bson.Unmarshal(raw, &fields); err != nil {
		return nil, err
	}
	delete(fields, "_id")
	now := time.Now().UTC()
	fields["created_at"] = now
	fields["updated_at"] = now
	if saved, ok := fields["saved_at"]; ok {
		// The zero time.Time marshals to a negative DateTime, not 0.
		if t, isDate := saved.(primitive.DateTime); isDate && t.Time().UTC().Equal(time.Time{}) {
			fields["saved_at"] = now
		}
	}
	return fields, nil
}

// sanitizePatch strips fields a client may never write. Reference fields
// arrive as hex strings and are stored as ObjectIDs.
func sanitizePatch(patch map[string]any) bson.M {
	set := bson.M{}
	for key, value := range patch {
		switch key {
		case "id", "_id", "created_at", "updated_at":
			continue
		}
		if s, ok := value.(string); ok && isReferenceField(key) {
			if oid, err := primitive.ObjectIDFromHex(s); err == nil {
				set[key] = oid
				continue
			}
		}
		set[key] = value
	}
	return set
}

func isReferenceField(key string) bool {
	switch key {
	case "user_id", "recipe_id", "ingredient_id", "ai_response_id", "user_prompt_id", "modification_id":
		return true
	}
	return false
}

func rawToAny(raw json.RawMessage) any {
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return string(raw)
	}
	return v
}

func mapErr(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, mongo.ErrNoDocuments):
		return domain.ErrNotFound
	case mongo.IsDuplicateKeyError(err):
		return domain.ErrDuplicateKey
	default:
		return err
	}
}
