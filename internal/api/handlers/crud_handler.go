package handlers

import (
	"github.com/gofiber/fiber/v2"

	"smartrecipe/internal/api/presenters"
	"smartrecipe/pkg/dispatch"
)

type (
	CrudHandler interface {
		Create(c *fiber.Ctx) error
		GetAll(c *fiber.Ctx) error
		GetByID(c *fiber.Ctx) error
		Update(c *fiber.Ctx) error
		Delete(c *fiber.Ctx) error
	}

	crudHandler struct {
		dispatchService dispatch.DispatchService
	}
)

func NewCrudHandler(dispatchService dispatch.DispatchService) CrudHandler {
	return &crudHandler{dispatchService: dispatchService}
}

func (h *crudHandler) Create(c *fiber.Ctx) error {
	res, err := h.dispatchService.Create(c.Context(), c.Params("dbType"), c.Params("model"), c.Body())
	if err != nil {
		return presenters.ErrorResponse(c, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusCreated)
}

func (h *crudHandler) GetAll(c *fiber.Ctx) error {
	res, err := h.dispatchService.GetAll(c.Context(), c.Params("dbType"), c.Params("model"))
	if err != nil {
		return presenters.ErrorResponse(c, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK)
}

func (h *crudHandler) GetByID(c *fiber.Ctx) error {
	res, err := h.dispatchService.GetByID(c.Context(), c.Params("dbType"), c.Params("model"), c.Params("id"))
	if err != nil {
		return presenters.ErrorResponse(c, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK)
}

func (h *crudHandler) Update(c *fiber.Ctx) error {
	res, err := h.dispatchService.Update(c.Context(), c.Params("dbType"), c.Params("model"), c.Params("id"), c.Body())
	if err != nil {
		return presenters.ErrorResponse(c, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK)
}

func (h *crudHandler) Delete(c *fiber.Ctx) error {
	if err := h.dispatchService.Delete(c.Context(), c.Params("dbType"), c.Params("model"), c.Params("id")); err != nil {
		return presenters.ErrorResponse(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
