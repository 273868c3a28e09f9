package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"buildsite-be/internal/middleware"
	"buildsite-be/internal/service/blockchain"
)

type BlockchainHandler struct {
	blockchainService blockchain.Service
}

func NewBlockchainHandler(blockchainService blockchain.Service) *BlockchainHandler {
	return &BlockchainHandler{blockchainService: blockchainService}
}

type verifyDocumentRequest struct {
	DocumentID string `json:"document_id"`
}

func (h *BlockchainHandler) VerifyDocument(c *fiber.Ctx) error {
	user := middleware.GetCurrentUser(c)
	if user == nil {
		return middleware.Unauthorized("User not found")
	}

	var req verifyDocumentRequest
	if err := c.BodyParser(&req); err != nil {
		return middleware.BadRequest("Invalid request body")
	}

	documentID, err := uuid.Parse(req.DocumentID)
	if err != nil {
		return middleware.BadRequest("Invalid document ID")
	}

	result, err := h.blockchainService.VerifyDocument(c.Context(), documentID)
	if err != nil {
		if errors.Is(err, blockchain.ErrDocumentNotFound) {
			return middleware.NotFound("Document not found")
		}
		return err
	}

	return c.Status(fiber.StatusOK).JSON(result)
}
