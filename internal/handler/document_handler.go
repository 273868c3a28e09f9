package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"buildsite-be/internal/domain"
	"buildsite-be/internal/middleware"
	"buildsite-be/internal/service/document"
)

// 25 MB, matches the MinIO part-size floor we configure
const maxUploadSize = 25 * 1024 * 1024

type DocumentHandler struct {
	documentService document.Service
}

func NewDocumentHandler(documentService document.Service) *DocumentHandler {
	return &DocumentHandler{documentService: documentService}
}

func (h *DocumentHandler) Upload(c *fiber.Ctx) error {
	user := middleware.GetCurrentUser(c)
	if user == nil {
		return middleware.Unauthorized("User not found")
	}

	projectID, err := uuid.Parse(c.Params("projectId"))
	if err != nil {
		return middleware.BadRequest("Invalid project ID")
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return middleware.BadRequest("File is required")
	}
	if fileHeader.Size > maxUploadSize {
		return middleware.BadRequest("File exceeds maximum upload size")
	}

	category := c.FormValue("category")
	if category == "" {
		category = string(domain.DocOther)
	}
	if !domain.DocumentCategory(category).IsValid() {
		return middleware.BadRequest("Invalid document category")
	}

	file, err := fileHeader.Open()
	if err != nil {
		return middleware.BadRequest("Failed to read uploaded file")
	}
	defer file.Close()

	mimeType := fileHeader.Header.Get("Content-Type")
	if mimeType == "" {
		mimeType = "application/octet-stream"
	}

	doc, err := h.documentService.Upload(c.Context(), user, projectID, category, fileHeader.Filename, mimeType, fileHeader.Size, file)
	if err != nil {
		if errors.Is(err, document.ErrDocumentNotFound) {
			return middleware.NotFound("Project not found")
		}
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(doc)
}

func (h *DocumentHandler) List(c *fiber.Ctx) error {
	user := middleware.GetCurrentUser(c)
	if user == nil {
		return middleware.Unauthorized("User not found")
	}

	projectID, err := uuid.Parse(c.Params("projectId"))
	if err != nil {
		return middleware.BadRequest("Invalid project ID")
	}

	result, err := h.documentService.ListByProject(c.Context(), user.CompanyID, projectID, getPaginationParams(c))
	if err != nil {
		if errors.Is(err, document.ErrDocumentNotFound) {
			return middleware.NotFound("Project not found")
		}
		return err
	}

	return c.Status(fiber.StatusOK).JSON(result)
}

func (h *DocumentHandler) Get(c *fiber.Ctx) error {
	user := middleware.GetCurrentUser(c)
	if user == nil {
		return middleware.Unauthorized("User not found")
	}

	documentID, err := uuid.Parse(c.Params("documentId"))
	if err != nil {
		return middleware.BadRequest("Invalid document ID")
	}

	doc, err := h.documentService.GetByID(c.Context(), user.CompanyID, documentID)
	if err != nil {
		if errors.Is(err, document.ErrDocumentNotFound) {
			return middleware.NotFound("Document not found")
		}
		return err
	}

	return c.Status(fiber.StatusOK).JSON(doc)
}

func (h *DocumentHandler) Delete(c *fiber.Ctx) error {
	user := middleware.GetCurrentUser(c)
	if user == nil {
		return middleware.Unauthorized("User not found")
	}

	documentID, err := uuid.Parse(c.Params("documentId"))
	if err != nil {
		return middleware.BadRequest("Invalid document ID")
	}

	if err := h.documentService.Delete(c.Context(), user, documentID); err != nil {
		if errors.Is(err, document.ErrDocumentNotFound) {
			return middleware.NotFound("Document not found")
		}
		return err
	}

	return c.Status(fiber.StatusNoContent).SendString("")
}
