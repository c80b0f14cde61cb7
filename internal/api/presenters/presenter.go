package presenters

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"smartrecipe/domain"
)

// SuccessResponse writes the entity (or array) as the raw response body.
func SuccessResponse(c *fiber.Ctx, data any, status int) error {
	return c.Status(status).JSON(data)
}

// ErrorResponse maps a domain error onto its HTTP status and writes an
// {error: ...} body. Nothing is swallowed: unknown errors surface as 500
// with the underlying message.
func ErrorResponse(c *fiber.Ctx, err error) error {
	return c.Status(StatusFromError(err)).JSON(fiber.Map{"error": err.Error()})
}

// StatusFromError resolves the HTTP status for a dispatch-layer error.
func StatusFromError(err error) int {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, domain.ErrInvalidDatabaseType),
		errors.Is(err, domain.ErrUnknownModel),
		errors.Is(err, domain.ErrUnsupportedOperation),
		errors.Is(err, domain.ErrInvalidIdentifier),
		errors.Is(err, domain.ErrReferenceNotFound),
		errors.Is(err, domain.ErrDuplicateKey):
		return fiber.StatusBadRequest
	case errors.Is(err, domain.ErrStoreUnavailable):
		return fiber.StatusServiceUnavailable
	}

	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		return fiber.StatusBadRequest
	}
	return fiber.StatusInternalServerError
}
