package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"buildsite-be/internal/domain"
)

type ProjectRepository struct {
	mock.Mock
}

func (m *ProjectRepository) Create(ctx context.Context, project *domain.Project) error {
	args := m.Called(ctx, project)
	return args.Error(0)
}

func (m *ProjectRepository) GetByID(ctx context.Context, companyID, id uuid.UUID) (*domain.Project, error) {
	args := m.Called(ctx, companyID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Project), args.Error(1)
}

func (m *ProjectRepository) List(ctx context.Context, companyID uuid.UUID, status *string, params domain.PaginationParams) ([]domain.Project, int64, error) {
	args := m.Called(ctx, companyID, status, params)
	return args.Get(0).([]domain.Project), args.Get(1).(int64), args.Error(2)
}

func (m *ProjectRepository) Update(ctx context.Context, project *domain.Project) error {
	args := m.Called(ctx, project)
	return args.Error(0)
}

func (m *ProjectRepository) Delete(ctx context.Context, companyID, id uuid.UUID) error {
	args := m.Called(ctx, companyID, id)
	return args.Error(0)
}

func (m *ProjectRepository) CountByStatus(ctx context.Context, companyID uuid.UUID) (map[string]int64, error) {
	args := m.Called(ctx, companyID)
	return args.Get(0).(map[string]int64), args.Error(1)
}
