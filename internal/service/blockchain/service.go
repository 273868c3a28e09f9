package blockchain

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"time"

	"github.com/google/uuid"

	"buildsite-be/internal/repository"
)

var ErrDocumentNotFound = errors.New("document not found")

// Mock verification service: the "transaction" is a sha256 digest of the
// document's stored metadata. Nothing touches a chain.

type VerificationResult struct {
	DocumentID uuid.UUID `json:"document_id"`
	TxHash     string    `json:"tx_hash"`
	Status     string    `json:"status"`
	Network    string    `json:"network"`
	VerifiedAt time.Time `json:"verified_at"`
}

type Service interface {
	VerifyDocument(ctx context.Context, documentID uuid.UUID) (*VerificationResult, error)
}

type service struct {
	docRepo repository.DocumentRepository
}

func NewService(docRepo repository.DocumentRepository) Service {
	return &service{docRepo: docRepo}
}

func (s *service) VerifyDocument(ctx context.Context, documentID uuid.UUID) (*VerificationResult, error) {
	doc, err := s.docRepo.GetByID(ctx, documentID)
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, ErrDocumentNotFound
	}

	sum := sha256.Sum256([]byte(doc.ID.String() + doc.StoragePath + doc.FileName))

	return &VerificationResult{
		DocumentID: doc.ID,
		TxHash:     "0x" + hex.EncodeToString(sum[:]),
		Status:     "confirmed",
		Network:    "buildsite-testnet",
		VerifiedAt: time.Now(),
	}, nil
}
