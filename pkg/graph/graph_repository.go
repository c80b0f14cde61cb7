// Package graph implements the repository contract on Neo4j. Every
// model is a node label, every relation an edge, and identifiers are
// opaque strings minted at creation time. Deletes detach relationships
// before removing the node.
package graph

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"smartrecipe/domain"
	"smartrecipe/pkg/dispatch"
)

type graphRepository struct {
	driver neo4j.DriverWithContext
	specs  map[domain.Model]modelSpec
}

func NewGraphRepository(driver neo4j.DriverWithContext) dispatch.Repository {
	return &graphRepository{
		driver: driver,
		specs:  buildSpecs(),
	}
}

type (
	// edgeSpec wires one reference property to an edge. When out is
	// false the edge runs from the referenced node into this one
	// (parent owns child); when true it runs outward to the target.
	edgeSpec struct {
		prop string
		rel  string
		out  bool
	}

	modelSpec struct {
		label string
		edges []edgeSpec

		// read overrides the plain node fetch for models whose lookups
		// compose related nodes into the response.
		read func(ctx context.Context, tx neo4j.ManagedTransaction, id string) (map[string]any, error)
	}
)

func buildSpecs() map[domain.Model]modelSpec {
	specs := map[domain.Model]modelSpec{
		domain.ModelUser:       {label: "User"},
		domain.ModelIngredient: {label: "Ingredient"},
		domain.ModelUserPrompt: {label: "UserPrompt", edges: []edgeSpec{
			{prop: "user_id", rel: "HAS_PROMPT"},
		}},
		domain.ModelAIResponse: {label: "AIResponse", edges: []edgeSpec{
			{prop: "user_prompt_id", rel: "HAS_RESPONSE"},
		}},
		domain.ModelRecipe: {label: "Recipe", edges: []edgeSpec{
			{prop: "ai_response_id", rel: "GENERATED"},
		}},
		domain.ModelInstruction: {label: "Instruction", edges: []edgeSpec{
			{prop: "recipe_id", rel: "HAS_INSTRUCTION"},
		}},
		domain.ModelRecipeIngredient: {label: "RecipeIngredient", edges: []edgeSpec{
			{prop: "recipe_id", rel: "CONTAINS_INGREDIENT"},
			{prop: "ingredient_id", rel: "OF_INGREDIENT", out: true},
		}},
		domain.ModelUserRecipe: {label: "UserRecipe", edges: []edgeSpec{
			{prop: "user_id", rel: "SAVED"},
			{prop: "recipe_id", rel: "SAVED_RECIPE", out: true},
		}},
		domain.ModelRecipeModification: {label: "RecipeModification", edges: []edgeSpec{
			{prop: "recipe_id", rel: "HAS_MODIFICATION"},
			{prop: "user_prompt_id", rel: "PROMPTED_BY", out: true},
		}},
		domain.ModelModificationResponse: {label: "ModificationResponse", edges: []edgeSpec{
			{prop: "ai_response_id", rel: "RESPONDED_WITH"},
			{prop: "modification_id", rel: "ANSWERS_MODIFICATION", out: true},
		}},
	}

	// Recipe lookups compose the ordered instructions and ingredient
	// associations into the response.
	recipe := specs[domain.ModelRecipe]
	recipe.read = composeRecipe
	specs[domain.ModelRecipe] = recipe
	return specs
}

// newNodeID mints an opaque graph identifier, e.g. recipe_1712041523123_9f1c2a4b.
func newNodeID(label string) string {
	return fmt.Sprintf("%s_%d_%s", strings.ToLower(label), time.Now().UnixMilli(), uuid.NewString()[:8])
}

func (r *graphRepository) spec(model domain.Model) (modelSpec, error) {
	spec, ok := r.specs[model]
	if !ok {
		return modelSpec{}, domain.ErrUnsupportedOperation
	}
	return spec, nil
}

func (r *graphRepository) Create(ctx context.Context, model domain.Model, payload map[string]any) (any, error) {
	spec, err := r.spec(model)
	if err != nil {
		return nil, err
	}

	session := r.driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeWrite})
	defer session.Close(ctx)

	props := toProps(payload)
	now := time.Now().UnixMilli()
	props["id"] = newNodeID(spec.label)
	props["created_at"] = now
	props["updated_at"] = now

	out, err := session.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		result, err := tx.Run(ctx, fmt.Sprintf("CREATE (n:%s $props) RETURN n", spec.label), map[string]any{
			"props": props,
		})
		if err != nil {
			return nil, err
		}
		record, err := result.Single(ctx)
		if err != nil {
			return nil, err
		}
		node := nodeProps(record)

		for _, edge := range spec.edges {
			target, ok := props[edge.prop].(string)
			if !ok || target == "" {
				continue
			}
			if err := createEdge(ctx, tx, props["id"].(string), edge, target); err != nil {
				return nil, err
			}
		}
		return node, nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// createEdge links the node to its referenced target and fails with
// ErrReferenceNotFound when the target does not exist, aborting the
// surrounding transaction.
func createEdge(ctx context.Context, tx neo4j.ManagedTransaction, nodeID string, edge edgeSpec, targetID string) error {
	pattern := fmt.Sprintf("(t)-[:%s {created_at: $now}]->(n)", edge.rel)
	if edge.out {
		pattern = fmt.Sprintf("(n)-[:%s {created_at: $now}]->(t)", edge.rel)
	}
	query := fmt.Sprintf("MATCH (n {id: $id}) MATCH (t {id: $target}) CREATE %s RETURN count(t) AS linked", pattern)

	result, err := tx.Run(ctx, query, map[string]any{
		"id":     nodeID,
		"target": targetID,
		"now":    time.Now().UnixMilli(),
	})
	if err != nil {
		return err
	}
	record, err := result.Single(ctx)
	if err != nil {
		// No row means one of the MATCH clauses found nothing.
		return domain.ErrReferenceNotFound
	}
	if linked, _ := record.Get("linked"); linked == int64(0) {
		return domain.ErrReferenceNotFound
	}
	return nil
}

func (r *graphRepository) GetAll(ctx context.Context, model domain.Model) (any, error) {
	spec, err := r.spec(model)
	if err != nil {
		return nil, err
	}

	session := r.driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeRead})
	defer session.Close(ctx)

	return session.ExecuteRead(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		result, err := tx.Run(ctx, fmt.Sprintf("MATCH (n:%s) RETURN n ORDER BY n.created_at", spec.label), nil)
		if err != nil {
			return nil, err
		}
		nodes := []map[string]any{}
		for result.Next(ctx) {
			nodes = append(nodes, nodeProps(result.Record()))
		}
		if err := result.Err(); err != nil {
			return nil, err
		}
		return nodes, nil
	})
}

func (r *graphRepository) GetByID(ctx context.Context, model domain.Model, id dispatch.ID) (any, error) {
	spec, err := r.spec(model)
	if err != nil {
		return nil, err
	}

	session := r.driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeRead})
	defer session.Close(ctx)

	return session.ExecuteRead(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		if spec.read != nil {
			return spec.read(ctx, tx, id.Key)
		}
		return fetchNode(ctx, tx, spec.label, id.Key)
	})
}

func (r *graphRepository) Update(ctx context.Context, model domain.Model, id dispatch.ID, patch map[string]any) (any, error) {
	spec, err := r.spec(model)
	if err != nil {
		return nil, err
	}

	session := r.driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeWrite})
	defer session.Close(ctx)

	props := toProps(patch)
	delete(props, "id")
	delete(props, "created_at")

	return session.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		query := fmt.Sprintf(
			"MATCH (n:%s {id: $id}) SET n += $props, n.updated_at = $now RETURN n",
			spec.label,
		)
		result, err := tx.Run(ctx, query, map[string]any{
			"id":    id.Key,
			"props": props,
			"now":   time.Now().UnixMilli(),
		})
		if err != nil {
			return nil, err
		}
		record, err := result.Single(ctx)
		if err != nil {
			return nil, domain.ErrNotFound
		}

		// Rewiring a reference replaces the edge rather than patching it
		// in place: the old relationship is dropped and a new one is
		// created against the new target.
		for _, edge := range spec.edges {
			target, ok := props[edge.prop].(string)
			if !ok || target == "" {
				continue
			}
			dropQuery := fmt.Sprintf("MATCH (n {id: $id})-[r:%s]-() DELETE r", edge.rel)
			if _, err := tx.Run(ctx, dropQuery, map[string]any{"id": id.Key}); err != nil {
				return nil, err
			}
			if err := createEdge(ctx, tx, id.Key, edge, target); err != nil {
				return nil, err
			}
		}
		return nodeProps(record), nil
	})
}

func (r *graphRepository) Delete(ctx context.Context, model domain.Model, id dispatch.ID) error {
	spec, err := r.spec(model)
	if err != nil {
		return err
	}

	session := r.driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeWrite})
	defer session.Close(ctx)

	_, err = session.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		query := fmt.Sprintf("MATCH (n:%s {id: $id}) DETACH DELETE n", spec.label)
		result, err := tx.Run(ctx, query, map[string]any{"id": id.Key})
		if err != nil {
			return nil, err
		}
		summary, err := result.Consume(ctx)
		if err != nil {
			return nil, err
		}
		if summary.Counters().NodesDeleted() == 0 {
			return nil, domain.ErrNotFound
		}
		return nil, nil
	})
	return err
}

// CreateRecipe runs the recipe-creation protocol in a single managed
// write transaction, the driver's native multi-statement atomic unit.
func (r *graphRepository) CreateRecipe(ctx context.Context, req domain.CreateRecipeRequest) (any, error) {
	session := r.driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeWrite})
	defer session.Close(ctx)

	return session.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		result, err := tx.Run(ctx, "MATCH (a:AIResponse {id: $id}) RETURN a.id", map[string]any{
			"id": req.AIResponseID,
		})
		if err != nil {
			return nil, err
		}
		if _, err := result.Single(ctx); err != nil {
			return nil, domain.ErrReferenceNotFound
		}

		now := time.Now().UnixMilli()
		recipeID := newNodeID("Recipe")
		_, err = tx.Run(ctx, `
			MATCH (a:AIResponse {id: $aiResponseId})
			CREATE (n:Recipe $props)
			CREATE (a)-[:GENERATED {created_at: $now}]->(n)
		`, map[string]any{
			"aiResponseId": req.AIResponseID,
			"now":          now,
			"props": map[string]any{
				"id":             recipeID,
				"ai_response_id": req.AIResponseID,
				"name":           req.Name,
				"prep":           string(req.Prep),
				"cook":           string(req.Cook),
				"portion_size":   req.PortionSize,
				"final_comment":  req.FinalComment,
				"created_at":     now,
				"updated_at":     now,
			},
		})
		if err != nil {
			return nil, err
		}

		for _, ing := range req.Ingredients {
			// MERGE on the unique name, then MERGE the whole association
			// pattern so a duplicate name within one request stays
			// idempotent.
			_, err := tx.Run(ctx, `
				MATCH (r:Recipe {id: $recipeId})
				MERGE (i:Ingredient {name: $name})
				ON CREATE SET i.id = $ingredientId, i.created_at = $now, i.updated_at = $now
				MERGE (r)-[:CONTAINS_INGREDIENT]->(ri:RecipeIngredient)-[:OF_INGREDIENT]->(i)
				ON CREATE SET
					ri.id = $associationId,
					ri.recipe_id = $recipeId,
					ri.ingredient_id = i.id,
					ri.value = $value,
					ri.unit = $unit,
					ri.comment = $comment,
					ri.created_at = $now,
					ri.updated_at = $now
			`, map[string]any{
				"recipeId":      recipeID,
				"name":          ing.Name,
				"ingredientId":  newNodeID("Ingredient"),
				"associationId": newNodeID("RecipeIngredient"),
				"value":         ing.Value,
				"unit":          ing.Unit,
				"comment":       ing.Comment,
				"now":           now,
			})
			if err != nil {
				return nil, err
			}
		}

		for _, ins := range req.Instructions {
			_, err := tx.Run(ctx, `
				MATCH (r:Recipe {id: $recipeId})
				CREATE (n:Instruction $props)
				CREATE (r)-[:HAS_INSTRUCTION {created_at: $now}]->(n)
			`, map[string]any{
				"recipeId": recipeID,
				"now":      now,
				"props": map[string]any{
					"id":         newNodeID("Instruction"),
					"recipe_id":  recipeID,
					"part":       ins.Part,
					"steps":      string(ins.Steps),
					"created_at": now,
					"updated_at": now,
				},
			})
			if err != nil {
				return nil, err
			}
		}

		return composeRecipe(ctx, tx, recipeID)
	})
}

// composeRecipe re-reads a recipe node with its ordered instructions and
// resolved ingredient associations.
func composeRecipe(ctx context.Context, tx neo4j.ManagedTransaction, recipeID string) (map[string]any, error) {
	recipe, err := fetchNode(ctx, tx, "Recipe", recipeID)
	if err != nil {
		return nil, err
	}

	result, err := tx.Run(ctx, `
		MATCH (:Recipe {id: $id})-[:HAS_INSTRUCTION]->(n:Instruction)
		RETURN n ORDER BY n.part
	`, map[string]any{"id": recipeID})
	if err != nil {
		return nil, err
	}
	instructions := []map[string]any{}
	for result.Next(ctx) {
		instructions = append(instructions, nodeProps(result.Record()))
	}
	if err := result.Err(); err != nil {
		return nil, err
	}

	result, err = tx.Run(ctx, `
		MATCH (:Recipe {id: $id})-[:CONTAINS_INGREDIENT]->(n:RecipeIngredient)-[:OF_INGREDIENT]->(i:Ingredient)
		RETURN n, i ORDER BY n.created_at
	`, map[string]any{"id": recipeID})
	if err != nil {
		return nil, err
	}
	associations := []map[string]any{}
	for result.Next(ctx) {
		record := result.Record()
		association := nodeProps(record)
		if raw, ok := record.Get("i"); ok {
			if node, ok := raw.(neo4j.Node); ok {
				association["ingredient"] = decodeProps(node.Props)
			}
		}
		associations = append(associations, association)
	}
	if err := result.Err(); err != nil {
		return nil, err
	}

	recipe["instructions"] = instructions
	recipe["recipe_ingredients"] = associations
	return recipe, nil
}

func fetchNode(ctx context.Context, tx neo4j.ManagedTransaction, label, id string) (map[string]any, error) {
	result, err := tx.Run(ctx, fmt.Sprintf("MATCH (n:%s {id: $id}) RETURN n", label), map[string]any{
		"id": id,
	})
	if err != nil {
		return nil, err
	}
	record, err := result.Single(ctx)
	if err != nil {
		return nil, domain.ErrNotFound
	}
	return nodeProps(record), nil
}

func nodeProps(record *neo4j.Record) map[string]any {
	raw, ok := record.Get("n")
	if !ok {
		return map[string]any{}
	}
	node, ok := raw.(neo4j.Node)
	if !ok {
		return map[string]any{}
	}
	return decodeProps(node.Props)
}

// jsonProps are properties whose values are opaque JSON documents. Neo4j
// properties cannot hold nested maps, so these are stored as JSON text
// and restored to structures on the way out.
var jsonProps = map[string]bool{
	"prompt":   true,
	"response": true,
	"prep":     true,
	"cook":     true,
	"steps":    true,
}

func toProps(payload map[string]any) map[string]any {
	props := make(map[string]any, len(payload))
	for key, value := range payload {
		switch value.(type) {
		case map[string]any, []any:
			raw, err := json.Marshal(value)
			if err != nil {
				continue
			}
			props[key] = string(raw)
		default:
			props[key] = value
		}
	}
	return props
}

func decodeProps(props map[string]any) map[string]any {
	out := make(map[string]any, len(props))
	for key, value := range props {
		if jsonProps[key] {
			if s, ok := value.(string); ok {
				var decoded any
				if err := json.Unmarshal([]byte(s), &decoded); err == nil {
					out[key] = decoded
					continue
				}
			}
		}
		out[key] = value
	}
	return out
}
