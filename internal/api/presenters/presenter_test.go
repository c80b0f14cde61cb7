package presenters

import (
	"errors"
	"fmt"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"

	"smartrecipe/domain"
)

func TestStatusFromError(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{domain.ErrNotFound, fiber.StatusNotFound},
		{domain.ErrInvalidDatabaseType, fiber.StatusBadRequest},
		{domain.ErrUnknownModel, fiber.StatusBadRequest},
		{domain.ErrUnsupportedOperation, fiber.StatusBadRequest},
		{domain.ErrInvalidIdentifier, fiber.StatusBadRequest},
		{domain.ErrReferenceNotFound, fiber.StatusBadRequest},
		{domain.ErrDuplicateKey, fiber.StatusBadRequest},
		{domain.ErrStoreUnavailable, fiber.StatusServiceUnavailable},
		{errors.New("driver exploded"), fiber.StatusInternalServerError},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, StatusFromError(tc.err), tc.err.Error())
	}
}

func TestStatusFromError_WrappedErrors(t *testing.T) {
	wrapped := fmt.Errorf("recipe lookup: %w", domain.ErrNotFound)
	assert.Equal(t, fiber.StatusNotFound, StatusFromError(wrapped))
}
