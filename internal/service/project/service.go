package project

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"buildsite-be/internal/domain"
	"buildsite-be/internal/repository"
	"buildsite-be/internal/service/notification"
)

var (
	ErrProjectNotFound = errors.New("project not found")
	ErrInvalidStatus   = errors.New("invalid project status")
)

type Service interface {
	Create(ctx context.Context, user *domain.User, input domain.CreateProjectInput) (*domain.Project, error)
	GetByID(ctx context.Context, companyID, id uuid.UUID) (*domain.Project, error)
	List(ctx context.Context, companyID uuid.UUID, status *string, params domain.PaginationParams) (domain.PaginatedResponse[domain.Project], error)
	Update(ctx context.Context, user *domain.User, id uuid.UUID, input domain.UpdateProjectInput) (*domain.Project, error)
	Delete(ctx context.Context, user *domain.User, id uuid.UUID) error
}

type service struct {
	projectRepo  repository.ProjectRepository
	activityRepo repository.ActivityLogRepository
	redis        *redis.Client
	notifSvc     notification.Service
}

func NewService(projectRepo repository.ProjectRepository, activityRepo repository.ActivityLogRepository, redis *redis.Client, notifSvc notification.Service) Service {
	return &service{
		projectRepo:  projectRepo,
		activityRepo: activityRepo,
		redis:        redis,
		notifSvc:     notifSvc,
	}
}

func (s *service) Create(ctx context.Context, user *domain.User, input domain.CreateProjectInput) (*domain.Project, error) {
	project := &domain.Project{
		ID:          uuid.New(),
		CompanyID:   user.CompanyID,
		OwnerID:     user.ID,
		Name:        input.Name,
		Description: input.Description,
		Location:    input.Location,
		Status:      string(domain.ProjectPlanning),
		Budget:      input.Budget,
		StartDate:   input.StartDate,
		EndDate:     input.EndDate,
	}

	if err := s.projectRepo.Create(ctx, project); err != nil {
		return nil, err
	}

	_ = repository.RecordActivity(s.activityRepo, ctx, domain.RecordActivityInput{
		CompanyID:  user.CompanyID,
		UserID:     user.ID,
		Action:     "CREATE",
		EntityType: "PROJECT",
		EntityID:   project.ID,
		Detail:     project,
	})

	s.invalidateStats(ctx, user.CompanyID)

	s.notifSvc.Create(user.ID, domain.NotifSuccess,
		"Project Created",
		"Project \""+project.Name+"\" has been created.",
		&domain.RelatedEntity{Kind: "project", ID: project.ID.String()})

	return project, nil
}

func (s *service) GetByID(ctx context.Context, companyID, id uuid.UUID) (*domain.Project, error) {
	project, err := s.projectRepo.GetByID(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	if project == nil {
		return nil, ErrProjectNotFound
	}
	return project, nil
}

func (s *service) List(ctx context.Context, companyID uuid.UUID, status *string, params domain.PaginationParams) (domain.PaginatedResponse[domain.Project], error) {
	projects, total, err := s.projectRepo.List(ctx, companyID, status, params)
	if err != nil {
		return domain.PaginatedResponse[domain.Project]{}, err
	}
	return domain.NewPaginatedResponse(projects, params.Page, params.PageSize, total), nil
}

func (s *service) Update(ctx context.Context, user *domain.User, id uuid.UUID, input domain.UpdateProjectInput) (*domain.Project, error) {
	project, err := s.projectRepo.GetByID(ctx, user.CompanyID, id)
	if err != nil {
		return nil, err
	}
	if project == nil {
		return nil, ErrProjectNotFound
	}

	statusChanged := false
	if input.Name != nil {
		project.Name = *input.Name
	}
	if input.Description != nil {
		project.Description = *input.Description
	}
	if input.Location != nil {
		project.Location = *input.Location
	}
	if input.Status != nil {
		if !domain.ProjectStatus(*input.Status).IsValid() {
			return nil, ErrInvalidStatus
		}
		statusChanged = project.Status != *input.Status
		project.Status = *input.Status
	}
	if input.Budget != nil {
		project.Budget = input.Budget
	}
	if input.StartDate != nil {
		project.StartDate = input.StartDate
	}
	if input.EndDate != nil {
		project.EndDate = input.EndDate
	}

	if err := s.projectRepo.Update(ctx, project); err != nil {
		return nil, err
	}

	_ = repository.RecordActivity(s.activityRepo, ctx, domain.RecordActivityInput{
		CompanyID:  user.CompanyID,
		UserID:     user.ID,
		Action:     "UPDATE",
		EntityType: "PROJECT",
		EntityID:   project.ID,
		Detail:     input,
	})

	s.invalidateStats(ctx, user.CompanyID)

	related := &domain.RelatedEntity{Kind: "project", ID: project.ID.String()}
	if statusChanged {
		s.notifyOwner(project, user, domain.NotifInfo,
			"Project Status Changed",
			"Project \""+project.Name+"\" is now "+project.Status+".", related)
	} else {
		s.notifyOwner(project, user, domain.NotifInfo,
			"Project Updated",
			"Project \""+project.Name+"\" has been updated.", related)
	}

	return project, nil
}

func (s *service) Delete(ctx context.Context, user *domain.User, id uuid.UUID) error {
	project, err := s.projectRepo.GetByID(ctx, user.CompanyID, id)
	if err != nil {
		return err
	}
	if project == nil {
		return ErrProjectNotFound
	}

	if err := s.projectRepo.Delete(ctx, user.CompanyID, id); err != nil {
		return err
	}

	_ = repository.RecordActivity(s.activityRepo, ctx, domain.RecordActivityInput{
		CompanyID:  user.CompanyID,
		UserID:     user.ID,
		Action:     "DELETE",
		EntityType: "PROJECT",
		EntityID:   project.ID,
	})

	s.invalidateStats(ctx, user.CompanyID)

	s.notifyOwner(project, user, domain.NotifWarning,
		"Project Deleted",
		"Project \""+project.Name+"\" has been deleted.",
		&domain.RelatedEntity{Kind: "project", ID: project.ID.String()})

	return nil
}

// notifyOwner pushes the event to the project owner unless the owner is
// the acting user, plus to the actor themselves for their own audit trail.
func (s *service) notifyOwner(project *domain.Project, actor *domain.User, typ domain.NotificationType, title, message string, related *domain.RelatedEntity) {
	s.notifSvc.Create(actor.ID, typ, title, message, related)
	if project.OwnerID != actor.ID {
		s.notifSvc.Create(project.OwnerID, typ, title, message, related)
	}
}

func (s *service) invalidateStats(ctx context.Context, companyID uuid.UUID) {
	if s.redis != nil {
		_ = s.redis.Del(ctx, "dashboard:stats:"+companyID.String()).Err()
	}
}
