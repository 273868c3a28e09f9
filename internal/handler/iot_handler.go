package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"buildsite-be/internal/middleware"
	"buildsite-be/internal/service/iot"
)

type IoTHandler struct {
	iotService iot.Service
}

func NewIoTHandler(iotService iot.Service) *IoTHandler {
	return &IoTHandler{iotService: iotService}
}

func (h *IoTHandler) Readings(c *fiber.Ctx) error {
	user := middleware.GetCurrentUser(c)
	if user == nil {
		return middleware.Unauthorized("User not found")
	}

	projectID, err := uuid.Parse(c.Params("projectId"))
	if err != nil {
		return middleware.BadRequest("Invalid project ID")
	}

	readings, err := h.iotService.Readings(c.Context(), user.CompanyID, projectID)
	if err != nil {
		if errors.Is(err, iot.ErrProjectNotFound) {
			return middleware.NotFound("Project not found")
		}
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"project_id": projectID,
		"readings":   readings,
	})
}
