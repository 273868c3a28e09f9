package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"buildsite-be/internal/middleware"
	"buildsite-be/internal/service/ai"
)

type AIHandler struct {
	aiService ai.Service
}

func NewAIHandler(aiService ai.Service) *AIHandler {
	return &AIHandler{aiService: aiService}
}

func (h *AIHandler) PredictCost(c *fiber.Ctx) error {
	var input ai.CostPredictionInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}
	if input.AreaSqm <= 0 || input.Floors <= 0 {
		return middleware.BadRequest("Area and floor count must be positive")
	}
	switch input.QualityLevel {
	case "", "standard", "premium", "luxury":
	default:
		return middleware.BadRequest("Quality level must be standard, premium or luxury")
	}

	prediction, err := h.aiService.PredictCost(c.Context(), input)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(prediction)
}

func (h *AIHandler) AssessRisk(c *fiber.Ctx) error {
	user := middleware.GetCurrentUser(c)
	if user == nil {
		return middleware.Unauthorized("User not found")
	}

	projectID, err := uuid.Parse(c.Params("projectId"))
	if err != nil {
		return middleware.BadRequest("Invalid project ID")
	}

	assessment, err := h.aiService.AssessRisk(c.Context(), user.CompanyID, projectID)
	if err != nil {
		if errors.Is(err, ai.ErrProjectNotFound) {
			return middleware.NotFound("Project not found")
		}
		return err
	}

	return c.Status(fiber.StatusOK).JSON(assessment)
}
