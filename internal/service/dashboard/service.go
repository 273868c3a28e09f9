package dashboard

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"buildsite-be/internal/repository"
)

const cacheTTL = 60 * time.Second

type Stats struct {
	ProjectsByStatus  map[string]int64 `json:"projects_by_status"`
	TotalProjects     int64            `json:"total_projects"`
	LowStockMaterials int64            `json:"low_stock_materials"`
	TotalDocuments    int64            `json:"total_documents"`
	GeneratedAt       time.Time        `json:"generated_at"`
}

type Service interface {
	GetStats(ctx context.Context, companyID uuid.UUID) (*Stats, error)
}

type service struct {
	projectRepo  repository.ProjectRepository
	materialRepo repository.MaterialRepository
	documentRepo repository.DocumentRepository
	redis        *redis.Client
}

func NewService(projectRepo repository.ProjectRepository, materialRepo repository.MaterialRepository, documentRepo repository.DocumentRepository, redis *redis.Client) Service {
	return &service{
		projectRepo:  projectRepo,
		materialRepo: materialRepo,
		documentRepo: documentRepo,
		redis:        redis,
	}
}

func (s *service) GetStats(ctx context.Context, companyID uuid.UUID) (*Stats, error) {
	cacheKey := "dashboard:stats:" + companyID.String()

	if s.redis != nil {
		if cached, err := s.redis.Get(ctx, cacheKey).Result(); err == nil {
			var stats Stats
			if json.Unmarshal([]byte(cached), &stats) == nil {
				return &stats, nil
			}
		}
	}

	byStatus, err := s.projectRepo.CountByStatus(ctx, companyID)
	if err != nil {
		return nil, err
	}

	var total int64
	for _, count := range byStatus {
		total += count
	}

	lowStock, err := s.materialRepo.CountLowStock(ctx, companyID)
	if err != nil {
		return nil, err
	}

	docs, err := s.documentRepo.CountByCompany(ctx, companyID)
	if err != nil {
		return nil, err
	}

	stats := &Stats{
		ProjectsByStatus:  byStatus,
		TotalProjects:     total,
		LowStockMaterials: lowStock,
		TotalDocuments:    docs,
		GeneratedAt:       time.Now(),
	}

	if s.redis != nil {
		if encoded, err := json.Marshal(stats); err == nil {
			_ = s.redis.Set(ctx, cacheKey, encoded, cacheTTL).Err()
		}
	}

	return stats, nil
}
