package dispatch

import (
	"context"
	"encoding/json"

	"github.com/go-playground/validator/v10"
	"golang.org/x/crypto/bcrypt"

	"smartrecipe/domain"
)

type (
	// DispatchService routes a (backend, model, operation) triple to the
	// matching repository. Backend and model resolution and identifier
	// normalization all happen here, before any store access.
	DispatchService interface {
		Create(ctx context.Context, dbType, model string, body []byte) (any, error)
		GetAll(ctx context.Context, dbType, model string) (any, error)
		GetByID(ctx context.Context, dbType, model, rawID string) (any, error)
		Update(ctx context.Context, dbType, model, rawID string, body []byte) (any, error)
		Delete(ctx context.Context, dbType, model, rawID string) error
	}

	dispatchService struct {
		repositories map[domain.Backend]Repository
		validator    *validator.Validate
	}
)

func NewDispatchService(repositories map[domain.Backend]Repository, validator *validator.Validate) DispatchService {
	return &dispatchService{
		repositories: repositories,
		validator:    validator,
	}
}

func (s *dispatchService) resolve(dbType, model string) (Repository, domain.Backend, domain.Model, error) {
	backend, err := domain.ResolveBackend(dbType)
	if err != nil {
		return nil, "", "", err
	}
	repo, ok := s.repositories[backend]
	if !ok {
		return nil, "", "", domain.ErrInvalidDatabaseType
	}
	m, err := domain.ResolveModel(model)
	if err != nil {
		return nil, "", "", err
	}
	return repo, backend, m, nil
}

func (s *dispatchService) resolveWithID(dbType, model, rawID string) (Repository, domain.Model, ID, error) {
	repo, backend, m, err := s.resolve(dbType, model)
	if err != nil {
		return nil, "", ID{}, err
	}
	id, err := NormalizeID(backend, rawID)
	if err != nil {
		return nil, "", ID{}, err
	}
	return repo, m, id, nil
}

func (s *dispatchService) Create(ctx context.Context, dbType, model string, body []byte) (any, error) {
	repo, _, m, err := s.resolve(dbType, model)
	if err != nil {
		return nil, err
	}

	// Recipe creation fans out into ingredient upserts and instruction
	// inserts, so it goes through the typed protocol on every backend.
	if m == domain.ModelRecipe {
		var req domain.CreateRecipeRequest
		if err := json.Unmarshal(body, &req); err != nil {
			return nil, err
		}
		if err := s.validator.Struct(req); err != nil {
			return nil, err
		}
		return repo.CreateRecipe(ctx, req)
	}

	payload := map[string]any{}
	if len(body) > 0 {
		if err := json.Unmarshal(body, &payload); err != nil {
			return nil, err
		}
	}
	if m == domain.ModelUser {
		if err := hashUserPassword(payload); err != nil {
			return nil, err
		}
	}
	return repo.Create(ctx, m, payload)
}

func (s *dispatchService) GetAll(ctx context.Context, dbType, model string) (any, error) {
	repo, _, m, err := s.resolve(dbType, model)
	if err != nil {
		return nil, err
	}
	return repo.GetAll(ctx, m)
}

func (s *dispatchService) GetByID(ctx context.Context, dbType, model, rawID string) (any, error) {
	repo, m, id, err := s.resolveWithID(dbType, model, rawID)
	if err != nil {
		return nil, err
	}
	return repo.GetByID(ctx, m, id)
}

func (s *dispatchService) Update(ctx context.Context, dbType, model, rawID string, body []byte) (any, error) {
	repo, m, id, err := s.resolveWithID(dbType, model, rawID)
	if err != nil {
		return nil, err
	}
	patch := map[string]any{}
	if len(body) > 0 {
		if err := json.Unmarshal(body, &patch); err != nil {
			return nil, err
		}
	}
	if m == domain.ModelUser {
		if err := hashUserPassword(patch); err != nil {
			return nil, err
		}
	}
	return repo.Update(ctx, m, id, patch)
}

func (s *dispatchService) Delete(ctx context.Context, dbType, model, rawID string) error {
	repo, m, id, err := s.resolveWithID(dbType, model, rawID)
	if err != nil {
		return err
	}
	return repo.Delete(ctx, m, id)
}

// hashUserPassword replaces a plaintext "password" field with its bcrypt
// hash so no backend ever stores the raw value.
func hashUserPassword(payload map[string]any) error {
	raw, ok := payload["password"].(string)
	if !ok || raw == "" {
		return nil
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(raw), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	payload["password"] = string(hashed)
	return nil
}
