package repository

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"buildsite-be/internal/domain"
)

type ActivityLogRepository interface {
	Create(ctx context.Context, entry *domain.ActivityLog) error
	ListRecent(ctx context.Context, companyID uuid.UUID, params domain.PaginationParams) ([]domain.ActivityLog, int64, error)
	ListByEntity(ctx context.Context, entityType string, entityID uuid.UUID, params domain.PaginationParams) ([]domain.ActivityLog, int64, error)
}

type activityLogRepository struct {
	db *sqlx.DB
}

func NewActivityLogRepository(db *sqlx.DB) ActivityLogRepository {
	return &activityLogRepository{db: db}
}

func (r *activityLogRepository) Create(ctx context.Context, entry *domain.ActivityLog) error {
	query := `
		INSERT INTO activity_logs (activity_id, company_id, user_id, action, entity_type, entity_id, detail)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at`

	return r.db.QueryRowxContext(ctx, query,
		entry.ID, entry.CompanyID, entry.UserID, entry.Action,
		entry.EntityType, entry.EntityID, entry.Detail,
	).Scan(&entry.CreatedAt)
}

func (r *activityLogRepository) ListRecent(ctx context.Context, companyID uuid.UUID, params domain.PaginationParams) ([]domain.ActivityLog, int64, error) {
	params.Validate()

	var total int64
	countQuery := `SELECT COUNT(*) FROM activity_logs WHERE company_id = $1`
	if err := r.db.GetContext(ctx, &total, countQuery, companyID); err != nil {
		return nil, 0, err
	}

	query := `
		SELECT
			al.*,
			u.full_name AS user_name
		FROM activity_logs al
		LEFT JOIN users u ON al.user_id = u.user_id
		WHERE al.company_id = $1
		ORDER BY al.created_at DESC
		LIMIT $2 OFFSET $3`

	var logs []domain.ActivityLog
	err := r.db.SelectContext(ctx, &logs, query, companyID, params.PageSize, params.Offset())
	return logs, total, err
}

func (r *activityLogRepository) ListByEntity(ctx context.Context, entityType string, entityID uuid.UUID, params domain.PaginationParams) ([]domain.ActivityLog, int64, error) {
	params.Validate()

	var total int64
	countQuery := `SELECT COUNT(*) FROM activity_logs WHERE entity_type = $1 AND entity_id = $2`
	if err := r.db.GetContext(ctx, &total, countQuery, entityType, entityID); err != nil {
		return nil, 0, err
	}

	query := `
		SELECT * FROM activity_logs
		WHERE entity_type = $1 AND entity_id = $2
		ORDER BY created_at DESC
		LIMIT $3 OFFSET $4`

	var logs []domain.ActivityLog
	err := r.db.SelectContext(ctx, &logs, query, entityType, entityID, params.PageSize, params.Offset())
	return logs, total, err
}

// RecordActivity marshals the detail payload and writes one log entry.
// Failures are the caller's to ignore; logging never blocks the main flow.
func RecordActivity(repo ActivityLogRepository, ctx context.Context, input domain.RecordActivityInput) error {
	var detail json.RawMessage
	if input.Detail != nil {
		b, err := json.Marshal(input.Detail)
		if err != nil {
			return err
		}
		detail = b
	}

	return repo.Create(ctx, &domain.ActivityLog{
		ID:         uuid.New(),
		CompanyID:  input.CompanyID,
		UserID:     input.UserID,
		Action:     input.Action,
		EntityType: input.EntityType,
		EntityID:   input.EntityID,
		Detail:     detail,
	})
}
