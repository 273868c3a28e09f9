package activity

import (
	"context"

	"github.com/google/uuid"

	"buildsite-be/internal/domain"
	"buildsite-be/internal/repository"
)

type Service interface {
	Recent(ctx context.Context, companyID uuid.UUID, params domain.PaginationParams) (domain.PaginatedResponse[domain.ActivityLog], error)
	ByEntity(ctx context.Context, entityType string, entityID uuid.UUID, params domain.PaginationParams) (domain.PaginatedResponse[domain.ActivityLog], error)
}

type service struct {
	activityRepo repository.ActivityLogRepository
}

func NewService(activityRepo repository.ActivityLogRepository) Service {
	return &service{activityRepo: activityRepo}
}

func (s *service) Recent(ctx context.Context, companyID uuid.UUID, params domain.PaginationParams) (domain.PaginatedResponse[domain.ActivityLog], error) {
	logs, total, err := s.activityRepo.ListRecent(ctx, companyID, params)
	if err != nil {
		return domain.PaginatedResponse[domain.ActivityLog]{}, err
	}
	return domain.NewPaginatedResponse(logs, params.Page, params.PageSize, total), nil
}

func (s *service) ByEntity(ctx context.Context, entityType string, entityID uuid.UUID, params domain.PaginationParams) (domain.PaginatedResponse[domain.ActivityLog], error) {
	logs, total, err := s.activityRepo.ListByEntity(ctx, entityType, entityID, params)
	if err != nil {
		return domain.PaginatedResponse[domain.ActivityLog]{}, err
	}
	return domain.NewPaginatedResponse(logs, params.Page, params.PageSize, total), nil
}
