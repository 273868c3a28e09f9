package project_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"buildsite-be/internal/domain"
	"buildsite-be/internal/service/notification"
	"buildsite-be/internal/service/project"
	"buildsite-be/tests/mocks"
)

func stringPtr(s string) *string { return &s }

type projectFixture struct {
	projectRepo  *mocks.ProjectRepository
	activityRepo *mocks.ActivityLogRepository
	notifSvc     notification.Service
	svc          project.Service
	user         *domain.User
}

func newProjectFixture() *projectFixture {
	f := &projectFixture{
		projectRepo:  new(mocks.ProjectRepository),
		activityRepo: new(mocks.ActivityLogRepository),
		notifSvc:     notification.NewService(),
	}
	f.svc = project.NewService(f.projectRepo, f.activityRepo, nil, f.notifSvc)
	f.user = &domain.User{
		ID:        uuid.New(),
		CompanyID: uuid.New(),
		FullName:  "Site Admin",
		Role:      "admin",
	}
	return f
}

func TestProjectService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		f := newProjectFixture()
		f.projectRepo.On("Create", ctx, mock.MatchedBy(func(p *domain.Project) bool {
			return p.Name == "Harbor Tower" &&
				p.CompanyID == f.user.CompanyID &&
				p.OwnerID == f.user.ID &&
				p.Status == string(domain.ProjectPlanning)
		})).Return(nil).Once()
		f.activityRepo.On("Create", ctx, mock.MatchedBy(func(entry *domain.ActivityLog) bool {
			return entry.Action == "CREATE" && entry.EntityType == "PROJECT"
		})).Return(nil).Once()

		created, err := f.svc.Create(ctx, f.user, domain.CreateProjectInput{Name: "Harbor Tower"})

		require.NoError(t, err)
		assert.Equal(t, string(domain.ProjectPlanning), created.Status)

		mine := f.notifSvc.Snapshot(f.user.ID)
		require.Len(t, mine, 1)
		assert.Equal(t, domain.NotifSuccess, mine[0].Type)
		assert.Equal(t, "Project Created", mine[0].Title)

		f.projectRepo.AssertExpectations(t)
		f.activityRepo.AssertExpectations(t)
	})

	t.Run("Repo Error", func(t *testing.T) {
		f := newProjectFixture()
		f.projectRepo.On("Create", ctx, mock.Anything).Return(errors.New("db error")).Once()

		_, err := f.svc.Create(ctx, f.user, domain.CreateProjectInput{Name: "Harbor Tower"})
		assert.Error(t, err)
		assert.Empty(t, f.notifSvc.Snapshot(f.user.ID))
	})
}

func TestProjectService_Update(t *testing.T) {
	ctx := context.Background()

	t.Run("Status Change Notifies Owner And Actor", func(t *testing.T) {
		f := newProjectFixture()
		ownerID := uuid.New()
		existing := &domain.Project{
			ID:        uuid.New(),
			CompanyID: f.user.CompanyID,
			OwnerID:   ownerID,
			Name:      "Harbor Tower",
			Status:    string(domain.ProjectPlanning),
		}

		f.projectRepo.On("GetByID", ctx, f.user.CompanyID, existing.ID).Return(existing, nil).Once()
		f.projectRepo.On("Update", ctx, mock.Anything).Return(nil).Once()
		f.activityRepo.On("Create", ctx, mock.Anything).Return(nil).Once()

		updated, err := f.svc.Update(ctx, f.user, existing.ID, domain.UpdateProjectInput{
			Status: stringPtr(string(domain.ProjectActive)),
		})

		require.NoError(t, err)
		assert.Equal(t, string(domain.ProjectActive), updated.Status)

		ownerFeed := f.notifSvc.Snapshot(ownerID)
		require.Len(t, ownerFeed, 1)
		assert.Equal(t, "Project Status Changed", ownerFeed[0].Title)

		actorFeed := f.notifSvc.Snapshot(f.user.ID)
		require.Len(t, actorFeed, 1)
	})

	t.Run("Owner Acting Gets One Notification", func(t *testing.T) {
		f := newProjectFixture()
		existing := &domain.Project{
			ID:        uuid.New(),
			CompanyID: f.user.CompanyID,
			OwnerID:   f.user.ID,
			Name:      "Harbor Tower",
			Status:    string(domain.ProjectActive),
		}

		f.projectRepo.On("GetByID", ctx, f.user.CompanyID, existing.ID).Return(existing, nil).Once()
		f.projectRepo.On("Update", ctx, mock.Anything).Return(nil).Once()
		f.activityRepo.On("Create", ctx, mock.Anything).Return(nil).Once()

		_, err := f.svc.Update(ctx, f.user, existing.ID, domain.UpdateProjectInput{
			Name: stringPtr("Harbor Tower II"),
		})

		require.NoError(t, err)
		assert.Len(t, f.notifSvc.Snapshot(f.user.ID), 1)
	})

	t.Run("Invalid Status", func(t *testing.T) {
		f := newProjectFixture()
		existing := &domain.Project{
			ID:        uuid.New(),
			CompanyID: f.user.CompanyID,
			OwnerID:   f.user.ID,
			Status:    string(domain.ProjectActive),
		}
		f.projectRepo.On("GetByID", ctx, f.user.CompanyID, existing.ID).Return(existing, nil).Once()

		_, err := f.svc.Update(ctx, f.user, existing.ID, domain.UpdateProjectInput{
			Status: stringPtr("demolished"),
		})
		assert.ErrorIs(t, err, project.ErrInvalidStatus)
	})

	t.Run("Not Found", func(t *testing.T) {
		f := newProjectFixture()
		missing := uuid.New()
		f.projectRepo.On("GetByID", ctx, f.user.CompanyID, missing).Return(nil, nil).Once()

		_, err := f.svc.Update(ctx, f.user, missing, domain.UpdateProjectInput{})
		assert.ErrorIs(t, err, project.ErrProjectNotFound)
	})
}

func TestProjectService_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		f := newProjectFixture()
		existing := &domain.Project{
			ID:        uuid.New(),
			CompanyID: f.user.CompanyID,
			OwnerID:   f.user.ID,
			Name:      "Harbor Tower",
			Status:    string(domain.ProjectOnHold),
		}

		f.projectRepo.On("GetByID", ctx, f.user.CompanyID, existing.ID).Return(existing, nil).Once()
		f.projectRepo.On("Delete", ctx, f.user.CompanyID, existing.ID).Return(nil).Once()
		f.activityRepo.On("Create", ctx, mock.Anything).Return(nil).Once()

		require.NoError(t, f.svc.Delete(ctx, f.user, existing.ID))

		feed := f.notifSvc.Snapshot(f.user.ID)
		require.Len(t, feed, 1)
		assert.Equal(t, domain.NotifWarning, feed[0].Type)
		assert.Equal(t, "Project Deleted", feed[0].Title)
	})

	t.Run("Not Found", func(t *testing.T) {
		f := newProjectFixture()
		missing := uuid.New()
		f.projectRepo.On("GetByID", ctx, f.user.CompanyID, missing).Return(nil, nil).Once()

		err := f.svc.Delete(ctx, f.user, missing)
		assert.ErrorIs(t, err, project.ErrProjectNotFound)
	})
}
