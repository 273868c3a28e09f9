package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"buildsite-be/internal/domain"
)

type ActivityLogRepository struct {
	mock.Mock
}

func (m *ActivityLogRepository) Create(ctx context.Context, entry *domain.ActivityLog) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *ActivityLogRepository) ListRecent(ctx context.Context, companyID uuid.UUID, params domain.PaginationParams) ([]domain.ActivityLog, int64, error) {
	args := m.Called(ctx, companyID, params)
	return args.Get(0).([]domain.ActivityLog), args.Get(1).(int64), args.Error(2)
}

func (m *ActivityLogRepository) ListByEntity(ctx context.Context, entityType string, entityID uuid.UUID, params domain.PaginationParams) ([]domain.ActivityLog, int64, error) {
	args := m.Called(ctx, entityType, entityID, params)
	return args.Get(0).([]domain.ActivityLog), args.Get(1).(int64), args.Error(2)
}
