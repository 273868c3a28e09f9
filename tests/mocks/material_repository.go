package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"buildsite-be/internal/domain"
)

type MaterialRepository struct {
	mock.Mock
}

func (m *MaterialRepository) Create(ctx context.Context, material *domain.Material) error {
	args := m.Called(ctx, material)
	return args.Error(0)
}

func (m *MaterialRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Material, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Material), args.Error(1)
}

func (m *MaterialRepository) ListByProject(ctx context.Context, projectID uuid.UUID, params domain.PaginationParams) ([]domain.Material, int64, error) {
	args := m.Called(ctx, projectID, params)
	return args.Get(0).([]domain.Material), args.Get(1).(int64), args.Error(2)
}

func (m *MaterialRepository) Update(ctx context.Context, material *domain.Material) error {
	args := m.Called(ctx, material)
	return args.Error(0)
}

func (m *MaterialRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MaterialRepository) AdjustQuantity(ctx context.Context, id uuid.UUID, delta float64) (*domain.Material, error) {
	args := m.Called(ctx, id, delta)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Material), args.Error(1)
}

func (m *MaterialRepository) CountLowStock(ctx context.Context, companyID uuid.UUID) (int64, error) {
	args := m.Called(ctx, companyID)
	return args.Get(0).(int64), args.Error(1)
}
