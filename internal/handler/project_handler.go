package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"buildsite-be/internal/domain"
	"buildsite-be/internal/middleware"
	"buildsite-be/internal/service/project"
)

type ProjectHandler struct {
	projectService project.Service
}

func NewProjectHandler(projectService project.Service) *ProjectHandler {
	return &ProjectHandler{projectService: projectService}
}

func (h *ProjectHandler) Create(c *fiber.Ctx) error {
	user := middleware.GetCurrentUser(c)
	if user == nil {
		return middleware.Unauthorized("User not found")
	}

	var input domain.CreateProjectInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}
	if input.Name == "" {
		return middleware.BadRequest("Project name is required")
	}

	created, err := h.projectService.Create(c.Context(), user, input)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(created)
}

func (h *ProjectHandler) List(c *fiber.Ctx) error {
	user := middleware.GetCurrentUser(c)
	if user == nil {
		return middleware.Unauthorized("User not found")
	}

	var status *string
	if s := c.Query("status"); s != "" {
		if !domain.ProjectStatus(s).IsValid() {
			return middleware.BadRequest("Invalid project status")
		}
		status = &s
	}

	result, err := h.projectService.List(c.Context(), user.CompanyID, status, getPaginationParams(c))
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(result)
}

func (h *ProjectHandler) Get(c *fiber.Ctx) error {
	user := middleware.GetCurrentUser(c)
	if user == nil {
		return middleware.Unauthorized("User not found")
	}

	projectID, err := uuid.Parse(c.Params("projectId"))
	if err != nil {
		return middleware.BadRequest("Invalid project ID")
	}

	result, err := h.projectService.GetByID(c.Context(), user.CompanyID, projectID)
	if err != nil {
		if errors.Is(err, project.ErrProjectNotFound) {
			return middleware.NotFound("Project not found")
		}
		return err
	}

	return c.Status(fiber.StatusOK).JSON(result)
}

func (h *ProjectHandler) Update(c *fiber.Ctx) error {
	user := middleware.GetCurrentUser(c)
	if user == nil {
		return middleware.Unauthorized("User not found")
	}

	projectID, err := uuid.Parse(c.Params("projectId"))
	if err != nil {
		return middleware.BadRequest("Invalid project ID")
	}

	var input domain.UpdateProjectInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}

	result, err := h.projectService.Update(c.Context(), user, projectID, input)
	if err != nil {
		if errors.Is(err, project.ErrProjectNotFound) {
			return middleware.NotFound("Project not found")
		}
		if errors.Is(err, project.ErrInvalidStatus) {
			return middleware.BadRequest("Invalid project status")
		}
		return err
	}

	return c.Status(fiber.StatusOK).JSON(result)
}

func (h *ProjectHandler) Delete(c *fiber.Ctx) error {
	user := middleware.GetCurrentUser(c)
	if user == nil {
		return middleware.Unauthorized("User not found")
	}

	projectID, err := uuid.Parse(c.Params("projectId"))
	if err != nil {
		return middleware.BadRequest("Invalid project ID")
	}

	if err := h.projectService.Delete(c.Context(), user, projectID); err != nil {
		if errors.Is(err, project.ErrProjectNotFound) {
			return middleware.NotFound("Project not found")
		}
		return err
	}

	return c.Status(fiber.StatusNoContent).SendString("")
}
