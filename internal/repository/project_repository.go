package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"buildsite-be/internal/domain"
)

type ProjectRepository interface {
	Create(ctx context.Context, project *domain.Project) error
	GetByID(ctx context.Context, companyID, id uuid.UUID) (*domain.Project, error)
	List(ctx context.Context, companyID uuid.UUID, status *string, params domain.PaginationParams) ([]domain.Project, int64, error)
	Update(ctx context.Context, project *domain.Project) error
	Delete(ctx context.Context, companyID, id uuid.UUID) error
	CountByStatus(ctx context.Context, companyID uuid.UUID) (map[string]int64, error)
}

type projectRepository struct {
	db *sqlx.DB
}

func NewProjectRepository(db *sqlx.DB) ProjectRepository {
	return &projectRepository{db: db}
}

func (r *projectRepository) Create(ctx context.Context, project *domain.Project) error {
	query := `
		INSERT INTO projects (project_id, company_id, owner_id, name, description, location, status, budget, start_date, end_date)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING created_at, updated_at`

	return r.db.QueryRowxContext(ctx, query,
		project.ID, project.CompanyID, project.OwnerID, project.Name,
		project.Description, project.Location, project.Status,
		project.Budget, project.StartDate, project.EndDate,
	).Scan(&project.CreatedAt, &project.UpdatedAt)
}

func (r *projectRepository) GetByID(ctx context.Context, companyID, id uuid.UUID) (*domain.Project, error) {
	var project domain.Project
	query := `SELECT * FROM projects WHERE project_id = $1 AND company_id = $2 AND deleted_at IS NULL`

	err := r.db.GetContext(ctx, &project, query, id, companyID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &project, nil
}

func (r *projectRepository) List(ctx context.Context, companyID uuid.UUID, status *string, params domain.PaginationParams) ([]domain.Project, int64, error) {
	params.Validate()

	var total int64
	var projects []domain.Project

	if status != nil {
		countQuery := `SELECT COUNT(*) FROM projects WHERE company_id = $1 AND status = $2 AND deleted_at IS NULL`
		if err := r.db.GetContext(ctx, &total, countQuery, companyID, *status); err != nil {
			return nil, 0, err
		}

		query := `
			SELECT * FROM projects
			WHERE company_id = $1 AND status = $2 AND deleted_at IS NULL
			ORDER BY created_at DESC
			LIMIT $3 OFFSET $4`
		err := r.db.SelectContext(ctx, &projects, query, companyID, *status, params.PageSize, params.Offset())
		return projects, total, err
	}

	countQuery := `SELECT COUNT(*) FROM projects WHERE company_id = $1 AND deleted_at IS NULL`
	if err := r.db.GetContext(ctx, &total, countQuery, companyID); err != nil {
		return nil, 0, err
	}

	query := `
		SELECT * FROM projects
		WHERE company_id = $1 AND deleted_at IS NULL
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3`
	err := r.db.SelectContext(ctx, &projects, query, companyID, params.PageSize, params.Offset())
	return projects, total, err
}

func (r *projectRepository) Update(ctx context.Context, project *domain.Project) error {
	query := `
		UPDATE projects
		SET name = :name, description = :description, location = :location,
			status = :status, budget = :budget, start_date = :start_date,
			end_date = :end_date, updated_at = NOW()
		WHERE project_id = :project_id AND company_id = :company_id AND deleted_at IS NULL`

	_, err := r.db.NamedExecContext(ctx, query, project)
	return err
}

func (r *projectRepository) Delete(ctx context.Context, companyID, id uuid.UUID) error {
	query := `UPDATE projects SET deleted_at = NOW() WHERE project_id = $1 AND company_id = $2 AND deleted_at IS NULL`
	_, err := r.db.ExecContext(ctx, query, id, companyID)
	return err
}

func (r *projectRepository) CountByStatus(ctx context.Context, companyID uuid.UUID) (map[string]int64, error) {
	rows, err := r.db.QueryxContext(ctx,
		`SELECT status, COUNT(*) AS count FROM projects WHERE company_id = $1 AND deleted_at IS NULL GROUP BY status`,
		companyID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[string]int64)
	for rows.Next() {
		var status string
		var count int64
		if err := rows.Scan(&status, &count); err != nil {
			return nil, err
		}
		counts[status] = count
	}
	return counts, rows.Err()
}
