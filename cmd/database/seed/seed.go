// Package seed populates each backend with a small coherent dataset:
// a user, a prompt/response pair, and a recipe with instructions and
// ingredients, all created through the same dispatch path the API uses.
package seed

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strconv"

	"github.com/google/uuid"

	"smartrecipe/domain"
	"smartrecipe/pkg/dispatch"
)

func Seed(ctx context.Context, dispatchService dispatch.DispatchService) error {
	for _, backend := range []domain.Backend{domain.BackendMySQL, domain.BackendMongoDB, domain.BackendNeo4j} {
		if err := seedBackend(ctx, dispatchService, backend); err != nil {
			log.Printf("Seeding %s failed: %v", backend, err)
			return err
		}
		log.Printf("Seeded %s", backend)
	}
	return nil
}

func seedBackend(ctx context.Context, dispatchService dispatch.DispatchService, backend domain.Backend) error {
	dbType := string(backend)
	suffix := uuid.NewString()[:8]

	user, err := create(ctx, dispatchService, dbType, "user", map[string]any{
		"name":     "Ada Lovelace",
		"email":    fmt.Sprintf("ada+%s@example.com", suffix),
		"password": "kitchen-secret",
	})
	if err != nil {
		return err
	}
	userID, err := entityID(user)
	if err != nil {
		return err
	}

	prompt, err := create(ctx, dispatchService, dbType, "userprompt", map[string]any{
		"user_id": userID,
		"prompt":  map[string]any{"text": "A quick weeknight pasta for two"},
	})
	if err != nil {
		return err
	}
	promptID, err := entityID(prompt)
	if err != nil {
		return err
	}

	response, err := create(ctx, dispatchService, dbType, "airesponse", map[string]any{
		"user_prompt_id": promptID,
		"response":       map[string]any{"suggestion": "Spaghetti aglio e olio"},
	})
	if err != nil {
		return err
	}
	responseID, err := entityID(response)
	if err != nil {
		return err
	}

	recipe, err := create(ctx, dispatchService, dbType, "recipe", map[string]any{
		"aiResponseId": responseID,
		"name":         "Spaghetti aglio e olio",
		"prep":         map[string]any{"minutes": 10},
		"cook":         map[string]any{"minutes": 15},
		"portionSize":  2,
		"finalComment": "Finish with parsley and a squeeze of lemon.",
		"instructions": []map[string]any{
			{"part": 1, "steps": map[string]any{"text": "Boil the spaghetti until al dente."}},
			{"part": 2, "steps": map[string]any{"text": "Toast garlic in olive oil, toss with pasta."}},
		},
		"ingredients": []map[string]any{
			{"name": "spaghetti", "value": 200, "unit": "g"},
			{"name": "garlic", "value": 3, "unit": "cloves", "comment": "thinly sliced"},
			{"name": "olive oil", "value": 60, "unit": "ml"},
		},
	})
	if err != nil {
		return err
	}
	recipeID, err := entityID(recipe)
	if err != nil {
		return err
	}

	_, err = create(ctx, dispatchService, dbType, "userrecipe", map[string]any{
		"user_id":   userID,
		"recipe_id": recipeID,
	})
	return err
}

func create(ctx context.Context, dispatchService dispatch.DispatchService, dbType, model string, payload map[string]any) (any, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return dispatchService.Create(ctx, dbType, model, body)
}

// entityID extracts the created entity's identifier in its path form,
// whatever the backend's native representation is.
func entityID(entity any) (string, error) {
	raw, err := json.Marshal(entity)
	if err != nil {
		return "", err
	}
	var fields map[string]any
	if err := json.Unmarshal(raw, &fields); err != nil {
		return "", err
	}
	switch id := fields["id"].(type) {
	case string:
		return id, nil
	case float64:
		return strconv.FormatUint(uint64(id), 10), nil
	default:
		return "", fmt.Errorf("created entity has no usable id: %v", fields["id"])
	}
}
