package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"buildsite-be/internal/domain"
	"buildsite-be/internal/middleware"
	"buildsite-be/internal/service/material"
)

type MaterialHandler struct {
	materialService material.Service
}

func NewMaterialHandler(materialService material.Service) *MaterialHandler {
	return &MaterialHandler{materialService: materialService}
}

func (h *MaterialHandler) Create(c *fiber.Ctx) error {
	user := middleware.GetCurrentUser(c)
	if user == nil {
		return middleware.Unauthorized("User not found")
	}

	projectID, err := uuid.Parse(c.Params("projectId"))
	if err != nil {
		return middleware.BadRequest("Invalid project ID")
	}

	var input domain.CreateMaterialInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}
	if input.Name == "" || input.Unit == "" {
		return middleware.BadRequest("Material name and unit are required")
	}

	created, err := h.materialService.Create(c.Context(), user, projectID, input)
	if err != nil {
		if errors.Is(err, material.ErrMaterialNotFound) {
			return middleware.NotFound("Project not found")
		}
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(created)
}

func (h *MaterialHandler) List(c *fiber.Ctx) error {
	user := middleware.GetCurrentUser(c)
	if user == nil {
		return middleware.Unauthorized("User not found")
	}

	projectID, err := uuid.Parse(c.Params("projectId"))
	if err != nil {
		return middleware.BadRequest("Invalid project ID")
	}

	result, err := h.materialService.ListByProject(c.Context(), user.CompanyID, projectID, getPaginationParams(c))
	if err != nil {
		if errors.Is(err, material.ErrMaterialNotFound) {
			return middleware.NotFound("Project not found")
		}
		return err
	}

	return c.Status(fiber.StatusOK).JSON(result)
}

func (h *MaterialHandler) Get(c *fiber.Ctx) error {
	user := middleware.GetCurrentUser(c)
	if user == nil {
		return middleware.Unauthorized("User not found")
	}

	materialID, err := uuid.Parse(c.Params("materialId"))
	if err != nil {
		return middleware.BadRequest("Invalid material ID")
	}

	result, err := h.materialService.GetByID(c.Context(), user.CompanyID, materialID)
	if err != nil {
		if errors.Is(err, material.ErrMaterialNotFound) {
			return middleware.NotFound("Material not found")
		}
		return err
	}

	return c.Status(fiber.StatusOK).JSON(result)
}

func (h *MaterialHandler) Update(c *fiber.Ctx) error {
	user := middleware.GetCurrentUser(c)
	if user == nil {
		return middleware.Unauthorized("User not found")
	}

	materialID, err := uuid.Parse(c.Params("materialId"))
	if err != nil {
		return middleware.BadRequest("Invalid material ID")
	}

	var input domain.UpdateMaterialInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}

	result, err := h.materialService.Update(c.Context(), user, materialID, input)
	if err != nil {
		if errors.Is(err, material.ErrMaterialNotFound) {
			return middleware.NotFound("Material not found")
		}
		return err
	}

	return c.Status(fiber.StatusOK).JSON(result)
}

func (h *MaterialHandler) Delete(c *fiber.Ctx) error {
	user := middleware.GetCurrentUser(c)
	if user == nil {
		return middleware.Unauthorized("User not found")
	}

	materialID, err := uuid.Parse(c.Params("materialId"))
	if err != nil {
		return middleware.BadRequest("Invalid material ID")
	}

	if err := h.materialService.Delete(c.Context(), user, materialID); err != nil {
		if errors.Is(err, material.ErrMaterialNotFound) {
			return middleware.NotFound("Material not found")
		}
		return err
	}

	return c.Status(fiber.StatusNoContent).SendString("")
}

func (h *MaterialHandler) AdjustStock(c *fiber.Ctx) error {
	user := middleware.GetCurrentUser(c)
	if user == nil {
		return middleware.Unauthorized("User not found")
	}

	materialID, err := uuid.Parse(c.Params("materialId"))
	if err != nil {
		return middleware.BadRequest("Invalid material ID")
	}

	var input domain.AdjustStockInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}
	if input.Delta == 0 {
		return middleware.BadRequest("Delta must be non-zero")
	}

	result, err := h.materialService.AdjustStock(c.Context(), user, materialID, input)
	if err != nil {
		if errors.Is(err, material.ErrMaterialNotFound) {
			return middleware.NotFound("Material not found")
		}
		return err
	}

	return c.Status(fiber.StatusOK).JSON(result)
}
