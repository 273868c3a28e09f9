package material

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/google/uuid"

	"buildsite-be/internal/domain"
	"buildsite-be/internal/repository"
	"buildsite-be/internal/service/email"
	"buildsite-be/internal/service/notification"
)

var ErrMaterialNotFound = errors.New("material not found")

type Service interface {
	Create(ctx context.Context, user *domain.User, projectID uuid.UUID, input domain.CreateMaterialInput) (*domain.Material, error)
	GetByID(ctx context.Context, companyID, id uuid.UUID) (*domain.Material, error)
	ListByProject(ctx context.Context, companyID, projectID uuid.UUID, params domain.PaginationParams) (domain.PaginatedResponse[domain.Material], error)
	Update(ctx context.Context, user *domain.User, id uuid.UUID, input domain.UpdateMaterialInput) (*domain.Material, error)
	Delete(ctx context.Context, user *domain.User, id uuid.UUID) error
	AdjustStock(ctx context.Context, user *domain.User, id uuid.UUID, input domain.AdjustStockInput) (*domain.Material, error)
}

type service struct {
	materialRepo repository.MaterialRepository
	projectRepo  repository.ProjectRepository
	userRepo     repository.UserRepository
	activityRepo repository.ActivityLogRepository
	emailSvc     email.Service
	notifSvc     notification.Service
}

func NewService(materialRepo repository.MaterialRepository, projectRepo repository.ProjectRepository, userRepo repository.UserRepository, activityRepo repository.ActivityLogRepository, emailSvc email.Service, notifSvc notification.Service) Service {
	return &service{
		materialRepo: materialRepo,
		projectRepo:  projectRepo,
		userRepo:     userRepo,
		activityRepo: activityRepo,
		emailSvc:     emailSvc,
		notifSvc:     notifSvc,
	}
}

func (s *service) Create(ctx context.Context, user *domain.User, projectID uuid.UUID, input domain.CreateMaterialInput) (*domain.Material, error) {
	if _, err := s.requireProject(ctx, user.CompanyID, projectID); err != nil {
		return nil, err
	}

	material := &domain.Material{
		ID:                uuid.New(),
		ProjectID:         projectID,
		Name:              input.Name,
		Unit:              input.Unit,
		Quantity:          input.Quantity,
		LowStockThreshold: input.LowStockThreshold,
		UnitCost:          input.UnitCost,
		Supplier:          input.Supplier,
	}

	if err := s.materialRepo.Create(ctx, material); err != nil {
		return nil, err
	}

	_ = repository.RecordActivity(s.activityRepo, ctx, domain.RecordActivityInput{
		CompanyID:  user.CompanyID,
		UserID:     user.ID,
		Action:     "CREATE",
		EntityType: "MATERIAL",
		EntityID:   material.ID,
		Detail:     material,
	})

	return material, nil
}

func (s *service) GetByID(ctx context.Context, companyID, id uuid.UUID) (*domain.Material, error) {
	material, err := s.materialRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if material == nil {
		return nil, ErrMaterialNotFound
	}
	if _, err := s.requireProject(ctx, companyID, material.ProjectID); err != nil {
		return nil, err
	}
	return material, nil
}

func (s *service) ListByProject(ctx context.Context, companyID, projectID uuid.UUID, params domain.PaginationParams) (domain.PaginatedResponse[domain.Material], error) {
	if _, err := s.requireProject(ctx, companyID, projectID); err != nil {
		return domain.PaginatedResponse[domain.Material]{}, err
	}

	materials, total, err := s.materialRepo.ListByProject(ctx, projectID, params)
	if err != nil {
		return domain.PaginatedResponse[domain.Material]{}, err
	}
	return domain.NewPaginatedResponse(materials, params.Page, params.PageSize, total), nil
}

func (s *service) Update(ctx context.Context, user *domain.User, id uuid.UUID, input domain.UpdateMaterialInput) (*domain.Material, error) {
	material, err := s.materialRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if material == nil {
		return nil, ErrMaterialNotFound
	}
	if _, err := s.requireProject(ctx, user.CompanyID, material.ProjectID); err != nil {
		return nil, err
	}

	if input.Name != nil {
		material.Name = *input.Name
	}
	if input.Unit != nil {
		material.Unit = *input.Unit
	}
	if input.LowStockThreshold != nil {
		material.LowStockThreshold = *input.LowStockThreshold
	}
	if input.UnitCost != nil {
		material.UnitCost = input.UnitCost
	}
	if input.Supplier != nil {
		material.Supplier = *input.Supplier
	}

	if err := s.materialRepo.Update(ctx, material); err != nil {
		return nil, err
	}

	_ = repository.RecordActivity(s.activityRepo, ctx, domain.RecordActivityInput{
		CompanyID:  user.CompanyID,
		UserID:     user.ID,
		Action:     "UPDATE",
		EntityType: "MATERIAL",
		EntityID:   material.ID,
		Detail:     input,
	})

	return material, nil
}

func (s *service) Delete(ctx context.Context, user *domain.User, id uuid.UUID) error {
	material, err := s.materialRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if material == nil {
		return ErrMaterialNotFound
	}
	if _, err := s.requireProject(ctx, user.CompanyID, material.ProjectID); err != nil {
		return err
	}

	if err := s.materialRepo.Delete(ctx, id); err != nil {
		return err
	}

	_ = repository.RecordActivity(s.activityRepo, ctx, domain.RecordActivityInput{
		CompanyID:  user.CompanyID,
		UserID:     user.ID,
		Action:     "DELETE",
		EntityType: "MATERIAL",
		EntityID:   material.ID,
	})

	return nil
}

// AdjustStock applies a delta to the quantity. Crossing the low-stock
// threshold notifies the project owner; hitting zero escalates to an
// error notification plus an alert email.
func (s *service) AdjustStock(ctx context.Context, user *domain.User, id uuid.UUID, input domain.AdjustStockInput) (*domain.Material, error) {
	before, err := s.materialRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if before == nil {
		return nil, ErrMaterialNotFound
	}
	project, err := s.requireProject(ctx, user.CompanyID, before.ProjectID)
	if err != nil {
		return nil, err
	}

	material, err := s.materialRepo.AdjustQuantity(ctx, id, input.Delta)
	if err != nil {
		return nil, err
	}
	if material == nil {
		return nil, ErrMaterialNotFound
	}

	_ = repository.RecordActivity(s.activityRepo, ctx, domain.RecordActivityInput{
		CompanyID:  user.CompanyID,
		UserID:     user.ID,
		Action:     "ADJUST_STOCK",
		EntityType: "MATERIAL",
		EntityID:   material.ID,
		Detail:     input,
	})

	related := &domain.RelatedEntity{Kind: "material", ID: material.ID.String()}

	switch {
	case material.IsOutOfStock() && !before.IsOutOfStock():
		s.notifSvc.Create(project.OwnerID, domain.NotifError,
			"Out of Stock",
			fmt.Sprintf("%s on project \"%s\" is out of stock.", material.Name, project.Name),
			related)
		s.sendStockAlert(project, material)
	case material.IsLowStock() && !before.IsLowStock():
		s.notifSvc.Create(project.OwnerID, domain.NotifWarning,
			"Low Stock",
			fmt.Sprintf("%s on project \"%s\" is low: %.2f %s left.", material.Name, project.Name, material.Quantity, material.Unit),
			related)
	}

	return material, nil
}

func (s *service) requireProject(ctx context.Context, companyID, projectID uuid.UUID) (*domain.Project, error) {
	project, err := s.projectRepo.GetByID(ctx, companyID, projectID)
	if err != nil {
		return nil, err
	}
	if project == nil {
		return nil, ErrMaterialNotFound
	}
	return project, nil
}

func (s *service) sendStockAlert(project *domain.Project, material *domain.Material) {
	if s.emailSvc == nil || s.userRepo == nil {
		return
	}
	go func() {
		ctx := context.Background()
		owner, err := s.userRepo.GetByID(ctx, project.OwnerID)
		if err != nil || owner == nil {
			return
		}
		if err := s.emailSvc.SendStockAlertEmail(ctx, owner.Email, owner.FullName, material.Name, project.Name, material.Quantity, material.Unit); err != nil {
			log.Printf("material: stock alert email for %s failed: %v", material.Name, err)
		}
	}()
}
