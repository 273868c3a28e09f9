package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"buildsite-be/internal/domain"
)

type DocumentRepository interface {
	Create(ctx context.Context, doc *domain.Document) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Document, error)
	ListByProject(ctx context.Context, projectID uuid.UUID, params domain.PaginationParams) ([]domain.Document, int64, error)
	Delete(ctx context.Context, id uuid.UUID) error
	CountByCompany(ctx context.Context, companyID uuid.UUID) (int64, error)
}

type documentRepository struct {
	db *sqlx.DB
}

func NewDocumentRepository(db *sqlx.DB) DocumentRepository {
	return &documentRepository{db: db}
}

func (r *documentRepository) Create(ctx context.Context, doc *domain.Document) error {
	query := `
		INSERT INTO documents (document_id, project_id, uploaded_by, file_name, file_size, mime_type, category, storage_path)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING created_at`

	return r.db.QueryRowxContext(ctx, query,
		doc.ID, doc.ProjectID, doc.UploadedBy, doc.FileName,
		doc.FileSize, doc.MimeType, doc.Category, doc.StoragePath,
	).Scan(&doc.CreatedAt)
}

func (r *documentRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Document, error) {
	var doc domain.Document
	query := `SELECT * FROM documents WHERE document_id = $1 AND deleted_at IS NULL`

	err := r.db.GetContext(ctx, &doc, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &doc, nil
}

func (r *documentRepository) ListByProject(ctx context.Context, projectID uuid.UUID, params domain.PaginationParams) ([]domain.Document, int64, error) {
	params.Validate()

	var total int64
	countQuery := `SELECT COUNT(*) FROM documents WHERE project_id = $1 AND deleted_at IS NULL`
	if err := r.db.GetContext(ctx, &total, countQuery, projectID); err != nil {
		return nil, 0, err
	}

	var docs []domain.Document
	query := `
		SELECT * FROM documents
		WHERE project_id = $1 AND deleted_at IS NULL
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3`
	err := r.db.SelectContext(ctx, &docs, query, projectID, params.PageSize, params.Offset())
	return docs, total, err
}

func (r *documentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `UPDATE documents SET deleted_at = NOW() WHERE document_id = $1 AND deleted_at IS NULL`
	_, err := r.db.ExecContext(ctx, query, id)
	return err
}

func (r *documentRepository) CountByCompany(ctx context.Context, companyID uuid.UUID) (int64, error) {
	var count int64
	query := `
		SELECT COUNT(*)
		FROM documents d
		JOIN projects p ON d.project_id = p.project_id
		WHERE p.company_id = $1 AND d.deleted_at IS NULL AND p.deleted_at IS NULL`
	err := r.db.GetContext(ctx, &count, query, companyID)
	return count, err
}
