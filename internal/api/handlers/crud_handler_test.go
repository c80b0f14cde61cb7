package handlers_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"smartrecipe/domain"
	"smartrecipe/internal/api/handlers"
	"smartrecipe/internal/api/routes"
	"smartrecipe/internal/middleware"
	"smartrecipe/pkg/dispatch"
)

// stubRepository serves canned results and counts store accesses.
type stubRepository struct {
	accesses int
	result   any
	err      error
}

func (s *stubRepository) Create(context.Context, domain.Model, map[string]any) (any, error) {
	s.accesses++
	return s.result, s.err
}

func (s *stubRepository) GetAll(context.Context, domain.Model) (any, error) {
	s.accesses++
	return s.result, s.err
}

func (s *stubRepository) GetByID(context.Context, domain.Model, dispatch.ID) (any, error) {
	s.accesses++
	return s.result, s.err
}

func (s *stubRepository) Update(context.Context, domain.Model, dispatch.ID, map[string]any) (any, error) {
	s.accesses++
	return s.result, s.err
}

func (s *stubRepository) Delete(context.Context, domain.Model, dispatch.ID) error {
	s.accesses++
	return s.err
}

func (s *stubRepository) CreateRecipe(context.Context, domain.CreateRecipeRequest) (any, error) {
	s.accesses++
	return s.result, s.err
}

func newTestApp(repo *stubRepository) *fiber.App {
	app := fiber.New()
	dispatchService := dispatch.NewDispatchService(map[domain.Backend]dispatch.Repository{
		domain.BackendMySQL:   repo,
		domain.BackendMongoDB: repo,
		domain.BackendNeo4j:   repo,
	}, validator.New())

	routesConfig := routes.Config{
		App:           app,
		CrudHandler:   handlers.NewCrudHandler(dispatchService),
		HealthHandler: handlers.NewHealthHandler(),
		Middleware:    middleware.NewMiddleware(),
	}
	routesConfig.Setup()
	return app
}

func decodeBody(t *testing.T, res io.Reader) map[string]any {
	t.Helper()
	body := map[string]any{}
	require.NoError(t, json.NewDecoder(res).Decode(&body))
	return body
}

func TestHealthEndpoint(t *testing.T) {
	app := newTestApp(&stubRepository{})

	res, err := app.Test(httptest.NewRequest("GET", "/health", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, res.StatusCode)

	body := decodeBody(t, res.Body)
	assert.Equal(t, "ok", body["status"])
	assert.NotEmpty(t, body["timestamp"])
	assert.Contains(t, body, "env")
}

func TestInvalidDatabaseTypeIs400WithoutStoreAccess(t *testing.T) {
	repo := &stubRepository{}
	app := newTestApp(repo)

	for _, target := range []string{"/postgres/recipe", "/redis/user"} {
		res, err := app.Test(httptest.NewRequest("GET", target, nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusBadRequest, res.StatusCode, target)

		body := decodeBody(t, res.Body)
		assert.Equal(t, "Invalid database type. Use mongodb, mysql, or neo4j", body["error"])
	}
	assert.Zero(t, repo.accesses)
}

func TestUnknownModelIs400(t *testing.T) {
	repo := &stubRepository{}
	app := newTestApp(repo)

	res, err := app.Test(httptest.NewRequest("GET", "/mysql/pizza", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, res.StatusCode)
	assert.Zero(t, repo.accesses)
}

func TestMalformedIDIs400NotFiveHundred(t *testing.T) {
	repo := &stubRepository{}
	app := newTestApp(repo)

	cases := []string{
		"/mysql/recipe/abc",
		"/mongodb/recipe/0123456789",
	}
	for _, target := range cases {
		res, err := app.Test(httptest.NewRequest("GET", target, nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusBadRequest, res.StatusCode, target)
	}
	assert.Zero(t, repo.accesses)
}

func TestGetAllReturnsArray(t *testing.T) {
	repo := &stubRepository{result: []map[string]any{{"name": "Pasta"}}}
	app := newTestApp(repo)

	for _, dbType := range []string{"mysql", "mongodb", "neo4j"} {
		res, err := app.Test(httptest.NewRequest("GET", "/"+dbType+"/recipe", nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, res.StatusCode)

		var body []map[string]any
		require.NoError(t, json.NewDecoder(res.Body).Decode(&body))
		assert.Len(t, body, 1)
	}
	assert.Equal(t, 3, repo.accesses)
}

func TestCreateReturns201(t *testing.T) {
	repo := &stubRepository{result: map[string]any{"id": "1", "name": "Ada"}}
	app := newTestApp(repo)

	req := httptest.NewRequest("POST", "/neo4j/user", strings.NewReader(`{"name":"Ada","email":"ada@example.com"}`))
	req.Header.Set("Content-Type", "application/json")
	res, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusCreated, res.StatusCode)

	body := decodeBody(t, res.Body)
	assert.Equal(t, "Ada", body["name"])
}

func TestNotFoundIs404(t *testing.T) {
	repo := &stubRepository{err: domain.ErrNotFound}
	app := newTestApp(repo)

	res, err := app.Test(httptest.NewRequest("GET", "/mysql/recipe/99", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, res.StatusCode)

	res, err = app.Test(httptest.NewRequest("DELETE", "/neo4j/recipe/recipe_1700000000000_ab12cd34", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, res.StatusCode)
}

func TestDeleteReturns204(t *testing.T) {
	repo := &stubRepository{}
	app := newTestApp(repo)

	res, err := app.Test(httptest.NewRequest("DELETE", "/mysql/ingredient/4", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNoContent, res.StatusCode)
	assert.Equal(t, 1, repo.accesses)
}

func TestMissingRecipeReferenceIs400(t *testing.T) {
	repo := &stubRepository{err: domain.ErrReferenceNotFound}
	app := newTestApp(repo)

	body := `{
		"aiResponseId": "9999",
		"name": "Pasta",
		"prep": {"minutes": 10},
		"cook": {"minutes": 20},
		"portionSize": 2,
		"finalComment": "Serve hot."
	}`
	req := httptest.NewRequest("POST", "/mysql/recipe", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	res, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, res.StatusCode)
}

func TestUnsupportedOperationFailsClosed(t *testing.T) {
	repo := &stubRepository{err: domain.ErrUnsupportedOperation}
	app := newTestApp(repo)

	res, err := app.Test(httptest.NewRequest("GET", "/neo4j/user", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, res.StatusCode)

	body := decodeBody(t, res.Body)
	assert.Contains(t, body["error"], "not supported")
}
