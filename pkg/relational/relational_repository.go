// Package relational implements the repository contract on MySQL via
// GORM. Foreign keys and unique indexes live in the schema; recipes
// soft-delete, everything else hard-deletes.
package relational

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"smartrecipe/domain"
	"smartrecipe/entities"
	"smartrecipe/pkg/dispatch"
)

type relationalRepository struct {
	db  *gorm.DB
	ops map[domain.Model]modelOps
}

func NewRelationalRepository(db *gorm.DB) dispatch.Repository {
	return &relationalRepository{
		db:  db,
		ops: buildOps(),
	}
}

// modelOps is one row of the closed dispatch table: the five CRUD
// operations for a single model. A model absent from the table is not
// supported by this backend.
type modelOps struct {
	create  func(ctx context.Context, db *gorm.DB, payload map[string]any) (any, error)
	getAll  func(ctx context.Context, db *gorm.DB) (any, error)
	getByID func(ctx context.Context, db *gorm.DB, id uint64) (any, error)
	update  func(ctx context.Context, db *gorm.DB, id uint64, patch map[string]any) (any, error)
	delete  func(ctx context.Context, db *gorm.DB, id uint64) error
}

func buildOps() map[domain.Model]modelOps {
	table := map[domain.Model]modelOps{
		domain.ModelUser:                 ops[entities.User](),
		domain.ModelUserPrompt:           ops[entities.UserPrompt](),
		domain.ModelAIResponse:           ops[entities.AIResponse](),
		domain.ModelRecipe:               ops[entities.Recipe](),
		domain.ModelIngredient:           ops[entities.Ingredient](),
		domain.ModelInstruction:          ops[entities.Instruction](),
		domain.ModelRecipeIngredient:     ops[entities.RecipeIngredient](),
		domain.ModelUserRecipe:           ops[entities.UserRecipe](),
		domain.ModelRecipeModification:   ops[entities.RecipeModification](),
		domain.ModelModificationResponse: ops[entities.ModificationResponse](),
	}

	// Recipe listings and lookups carry their instructions and
	// ingredient associations.
	recipe := table[domain.ModelRecipe]
	recipe.getAll = func(ctx context.Context, db *gorm.DB) (any, error) {
		var recipes []entities.Recipe
		if err := recipeScope(db.WithContext(ctx)).Find(&recipes).Error; err != nil {
			return nil, mapErr(err)
		}
		return recipes, nil
	}
	recipe.getByID = func(ctx context.Context, db *gorm.DB, id uint64) (any, error) {
		var r entities.Recipe
		if err := recipeScope(db.WithContext(ctx)).First(&r, id).Error; err != nil {
			return nil, mapErr(err)
		}
		return &r, nil
	}
	table[domain.ModelRecipe] = recipe
	return table
}

func recipeScope(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Instructions", func(db *gorm.DB) *gorm.DB { return db.Order("part ASC") }).
		Preload("RecipeIngredients.Ingredient")
}

// ops builds the generic CRUD row for an entity type. Patch semantics
// are partial merge: only provided fields are written, and GORM bumps
// updated_at on the way through.
func ops[T any]() modelOps {
	return modelOps{
		create: func(ctx context.Context, db *gorm.DB, payload map[string]any) (any, error) {
			v, err := decodePayload[T](payload)
			if err != nil {
				return nil, err
			}
			if err := db.WithContext(ctx).Create(v).Error; err != nil {
				return nil, mapErr(err)
			}
			return v, nil
		},
		getAll: func(ctx context.Context, db *gorm.DB) (any, error) {
			var items []T
			if err := db.WithContext(ctx).Find(&items).Error; err != nil {
				return nil, mapErr(err)
			}
			return items, nil
		},
		getByID: func(ctx context.Context, db *gorm.DB, id uint64) (any, error) {
			var v T
			if err := db.WithContext(ctx).First(&v, id).Error; err != nil {
				return nil, mapErr(err)
			}
			return &v, nil
		},
		update: func(ctx context.Context, db *gorm.DB, id uint64, patch map[string]any) (any, error) {
			var v T
			if err := db.WithContext(ctx).First(&v, id).Error; err != nil {
				return nil, mapErr(err)
			}
			if err := db.WithContext(ctx).Model(&v).Updates(patchColumns(patch)).Error; err != nil {
				return nil, mapErr(err)
			}
			if err := db.WithContext(ctx).First(&v, id).Error; err != nil {
				return nil, mapErr(err)
			}
			return &v, nil
		},
		delete: func(ctx context.Context, db *gorm.DB, id uint64) error {
			res := db.WithContext(ctx).Delete(new(T), id)
			if res.Error != nil {
				return mapErr(res.Error)
			}
			if res.RowsAffected == 0 {
				return domain.ErrNotFound
			}
			return nil
		},
	}
}

func (r *relationalRepository) Create(ctx context.Context, model domain.Model, payload map[string]any) (any, error) {
	op, ok := r.ops[model]
	if !ok {
		return nil, domain.ErrUnsupportedOperation
	}
	return op.create(ctx, r.db, payload)
}

func (r *relationalRepository) GetAll(ctx context.Context, model domain.Model) (any, error) {
	op, ok := r.ops[model]
	if !ok {
		return nil, domain.ErrUnsupportedOperation
	}
	return op.getAll(ctx, r.db)
}

func (r *relationalRepository) GetByID(ctx context.Context, model domain.Model, id dispatch.ID) (any, error) {
	op, ok := r.ops[model]
	if !ok {
		return nil, domain.ErrUnsupportedOperation
	}
	return op.getByID(ctx, r.db, id.Uint)
}

func (r *relationalRepository) Update(ctx context.Context, model domain.Model, id dispatch.ID, patch map[string]any) (any, error) {
	op, ok := r.ops[model]
	if !ok {
		return nil, domain.ErrUnsupportedOperation
	}
	return op.update(ctx, r.db, id.Uint, patch)
}

func (r *relationalRepository) Delete(ctx context.Context, model domain.Model, id dispatch.ID) error {
	op, ok := r.ops[model]
	if !ok {
		return domain.ErrUnsupportedOperation
	}
	return op.delete(ctx, r.db, id.Uint)
}

// CreateRecipe runs the recipe-creation protocol inside one database
// transaction: any failing step rolls the whole unit back.
func (r *relationalRepository) CreateRecipe(ctx context.Context, req domain.CreateRecipeRequest) (any, error) {
	aiResponseID, err := strconv.ParseUint(req.AIResponseID, 10, 64)
	if err != nil {
		return nil, domain.ErrReferenceNotFound
	}

	var composed entities.Recipe
	err = r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var aiResponse entities.AIResponse
		if err := tx.First(&aiResponse, aiResponseID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrReferenceNotFound
			}
			return err
		}

		recipe := entities.Recipe{
			AIResponseID: aiResponseID,
			Name:         req.Name,
			Prep:         req.Prep,
			Cook:         req.Cook,
			PortionSize:  req.PortionSize,
			FinalComment: req.FinalComment,
		}
		if err := tx.Create(&recipe).Error; err != nil {
			return err
		}

		for _, ing := range req.Ingredients {
			ingredient := entities.Ingredient{Name: ing.Name}
			// The unique index on name closes the find-then-create race:
			// a concurrent insert makes this a no-op and the follow-up
			// fetch picks up the winner's row.
			if err := tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "name"}},
				DoNothing: true,
			}).Create(&ingredient).Error; err != nil {
				return err
			}
			if ingredient.ID == 0 {
				if err := tx.Where("name = ?", ing.Name).First(&ingredient).Error; err != nil {
					return err
				}
			}

			association := entities.RecipeIngredient{
				RecipeID:     recipe.ID,
				IngredientID: ingredient.ID,
				Value:        ing.Value,
				Unit:         ing.Unit,
				Comment:      ing.Comment,
			}
			if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&association).Error; err != nil {
				return err
			}
		}

		for _, ins := range req.Instructions {
			instruction := entities.Instruction{
				RecipeID: recipe.ID,
				Part:     ins.Part,
				Steps:    ins.Steps,
			}
			if err := tx.Create(&instruction).Error; err != nil {
				return err
			}
		}

		return recipeScope(tx).First(&composed, recipe.ID).Error
	})
	if err != nil {
		return nil, mapErr(err)
	}
	return &composed, nil
}

func decodePayload[T any](payload map[string]any) (*T, error) {
	raw, err := json.Marshal(normalizeRefs(payload))
	if err != nil {
		return nil, err
	}
	v := new(T)
	if err := json.Unmarshal(raw, v); err != nil {
		return nil, err
	}
	return v, nil
}

// normalizeRefs accepts reference fields sent as numeric strings, the
// form identifiers travel in on the wire. Only the known reference
// columns are coerced: other columns keep their value even when it
// happens to look numeric (oauth_id is a string).
func normalizeRefs(payload map[string]any) map[string]any {
	out := make(map[string]any, len(payload))
	for key, value := range payload {
		if s, ok := value.(string); ok && isReferenceField(key) {
			if n, err := strconv.ParseUint(s, 10, 64); err == nil {
				out[key] = n
				continue
			}
		}
		out[key] = value
	}
	return out
}

func isReferenceField(key string) bool {
	switch key {
	case "user_id", "recipe_id", "ingredient_id", "ai_response_id", "user_prompt_id", "modification_id":
		return true
	}
	return false
}

// patchColumns prepares the column map for an update. A patch that
// sanitizes down to nothing still bumps updated_at, so every PUT
// leaves a trace.
func patchColumns(patch map[string]any) map[string]any {
	columns := sanitizePatch(patch)
	if len(columns) == 0 {
		columns["updated_at"] = time.Now()
	}
	return columns
}

// sanitizePatch turns a JSON patch into a column map. JSON field names
// match column names across the entities; identity and bookkeeping
// columns are never client-writable, and structured values are stored
// as raw JSON.
func sanitizePatch(patch map[string]any) map[string]any {
	columns := make(map[string]any, len(patch))
	for key, value := range normalizeRefs(patch) {
		switch key {
		case "id", "created_at", "updated_at", "deleted_at":
			continue
		}
		switch value.(type) {
		case map[string]any, []any:
			raw, err := json.Marshal(value)
			if err != nil {
				continue
			}
			columns[key] = raw
		default:
			columns[key] = value
		}
	}
	return columns
}

func mapErr(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return domain.ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return domain.ErrDuplicateKey
	default:
		return err
	}
}
