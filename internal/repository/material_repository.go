package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"buildsite-be/internal/domain"
)

type MaterialRepository interface {
	Create(ctx context.Context, material *domain.Material) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Material, error)
	ListByProject(ctx context.Context, projectID uuid.UUID, params domain.PaginationParams) ([]domain.Material, int64, error)
	Update(ctx context.Context, material *domain.Material) error
	Delete(ctx context.Context, id uuid.UUID) error
	AdjustQuantity(ctx context.Context, id uuid.UUID, delta float64) (*domain.Material, error)
	CountLowStock(ctx context.Context, companyID uuid.UUID) (int64, error)
}

type materialRepository struct {
	db *sqlx.DB
}

func NewMaterialRepository(db *sqlx.DB) MaterialRepository {
	return &materialRepository{db: db}
}

func (r *materialRepository) Create(ctx context.Context, material *domain.Material) error {
	query := `
		INSERT INTO materials (material_id, project_id, name, unit, quantity, low_stock_threshold, unit_cost, supplier)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING created_at, updated_at`

	return r.db.QueryRowxContext(ctx, query,
		material.ID, material.ProjectID, material.Name, material.Unit,
		material.Quantity, material.LowStockThreshold, material.UnitCost, material.Supplier,
	).Scan(&material.CreatedAt, &material.UpdatedAt)
}

func (r *materialRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Material, error) {
	var material domain.Material
	query := `SELECT * FROM materials WHERE material_id = $1 AND deleted_at IS NULL`

	err := r.db.GetContext(ctx, &material, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &material, nil
}

func (r *materialRepository) ListByProject(ctx context.Context, projectID uuid.UUID, params domain.PaginationParams) ([]domain.Material, int64, error) {
	params.Validate()

	var total int64
	countQuery := `SELECT COUNT(*) FROM materials WHERE project_id = $1 AND deleted_at IS NULL`
	if err := r.db.GetContext(ctx, &total, countQuery, projectID); err != nil {
		return nil, 0, err
	}

	var materials []domain.Material
	query := `
		SELECT * FROM materials
		WHERE project_id = $1 AND deleted_at IS NULL
		ORDER BY name
		LIMIT $2 OFFSET $3`
	err := r.db.SelectContext(ctx, &materials, query, projectID, params.PageSize, params.Offset())
	return materials, total, err
}

func (r *materialRepository) Update(ctx context.Context, material *domain.Material) error {
	query := `
		UPDATE materials
		SET name = :name, unit = :unit, low_stock_threshold = :low_stock_threshold,
			unit_cost = :unit_cost, supplier = :supplier, updated_at = NOW()
		WHERE material_id = :material_id AND deleted_at IS NULL`

	_, err := r.db.NamedExecContext(ctx, query, material)
	return err
}

func (r *materialRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `UPDATE materials SET deleted_at = NOW() WHERE material_id = $1 AND deleted_at IS NULL`
	_, err := r.db.ExecContext(ctx, query, id)
	return err
}

// AdjustQuantity applies the delta atomically and returns the updated row;
// quantity never goes below zero.
func (r *materialRepository) AdjustQuantity(ctx context.Context, id uuid.UUID, delta float64) (*domain.Material, error) {
	var material domain.Material
	query := `
		UPDATE materials
		SET quantity = GREATEST(quantity + $2, 0), updated_at = NOW()
		WHERE material_id = $1 AND deleted_at IS NULL
		RETURNING *`

	err := r.db.GetContext(ctx, &material, query, id, delta)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &material, nil
}

func (r *materialRepository) CountLowStock(ctx context.Context, companyID uuid.UUID) (int64, error) {
	var count int64
	query := `
		SELECT COUNT(*)
		FROM materials m
		JOIN projects p ON m.project_id = p.project_id
		WHERE p.company_id = $1 AND m.quantity <= m.low_stock_threshold
			AND m.deleted_at IS NULL AND p.deleted_at IS NULL`
	err := r.db.GetContext(ctx, &count, query, companyID)
	return count, err
}
