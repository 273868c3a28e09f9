package document

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"

	"buildsite-be/internal/config"
	"buildsite-be/internal/domain"
	"buildsite-be/internal/repository"
	"buildsite-be/internal/service/notification"
)

var ErrDocumentNotFound = errors.New("document not found")

const presignExpiry = 15 * time.Minute

type Service interface {
	Upload(ctx context.Context, user *domain.User, projectID uuid.UUID, category, fileName, mimeType string, fileSize int64, reader io.Reader) (*domain.Document, error)
	GetByID(ctx context.Context, companyID, id uuid.UUID) (*domain.Document, error)
	ListByProject(ctx context.Context, companyID, projectID uuid.UUID, params domain.PaginationParams) (domain.PaginatedResponse[domain.Document], error)
	Delete(ctx context.Context, user *domain.User, id uuid.UUID) error
}

type service struct {
	docRepo     repository.DocumentRepository
	projectRepo repository.ProjectRepository
	minioClient *minio.Client
	notifSvc    notification.Service
	cfg         *config.Config
}

func NewService(docRepo repository.DocumentRepository, projectRepo repository.ProjectRepository, minioClient *minio.Client, notifSvc notification.Service, cfg *config.Config) Service {
	return &service{
		docRepo:     docRepo,
		projectRepo: projectRepo,
		minioClient: minioClient,
		notifSvc:    notifSvc,
		cfg:         cfg,
	}
}

func (s *service) Upload(ctx context.Context, user *domain.User, projectID uuid.UUID, category, fileName, mimeType string, fileSize int64, reader io.Reader) (*domain.Document, error) {
	project, err := s.projectRepo.GetByID(ctx, user.CompanyID, projectID)
	if err != nil {
		return nil, err
	}
	if project == nil {
		return nil, ErrDocumentNotFound
	}

	if !domain.DocumentCategory(category).IsValid() {
		category = string(domain.DocOther)
	}

	docID := uuid.New()
	storagePath := fmt.Sprintf("documents/%s/%s", projectID, docID)

	_, err = s.minioClient.PutObject(ctx, s.cfg.MinIOBucket, storagePath, reader, fileSize, minio.PutObjectOptions{
		ContentType: mimeType,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to upload to MinIO: %w", err)
	}

	doc := &domain.Document{
		ID:          docID,
		ProjectID:   projectID,
		UploadedBy:  user.ID,
		FileName:    fileName,
		FileSize:    fileSize,
		MimeType:    mimeType,
		Category:    category,
		StoragePath: storagePath,
	}

	if err := s.docRepo.Create(ctx, doc); err != nil {
		_ = s.minioClient.RemoveObject(ctx, s.cfg.MinIOBucket, storagePath, minio.RemoveObjectOptions{})
		return nil, err
	}

	if project.OwnerID != user.ID {
		s.notifSvc.Create(project.OwnerID, domain.NotifInfo,
			"Document Uploaded",
			fmt.Sprintf("%s uploaded \"%s\" to project \"%s\".", user.FullName, fileName, project.Name),
			&domain.RelatedEntity{Kind: "document", ID: doc.ID.String()})
	}

	doc.URL = s.presignURL(ctx, storagePath)
	return doc, nil
}

func (s *service) GetByID(ctx context.Context, companyID, id uuid.UUID) (*domain.Document, error) {
	doc, err := s.docRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, ErrDocumentNotFound
	}
	if err := s.requireProject(ctx, companyID, doc.ProjectID); err != nil {
		return nil, err
	}
	doc.URL = s.presignURL(ctx, doc.StoragePath)
	return doc, nil
}

func (s *service) ListByProject(ctx context.Context, companyID, projectID uuid.UUID, params domain.PaginationParams) (domain.PaginatedResponse[domain.Document], error) {
	if err := s.requireProject(ctx, companyID, projectID); err != nil {
		return domain.PaginatedResponse[domain.Document]{}, err
	}

	docs, total, err := s.docRepo.ListByProject(ctx, projectID, params)
	if err != nil {
		return domain.PaginatedResponse[domain.Document]{}, err
	}

	for i := range docs {
		docs[i].URL = s.presignURL(ctx, docs[i].StoragePath)
	}
	return domain.NewPaginatedResponse(docs, params.Page, params.PageSize, total), nil
}

func (s *service) Delete(ctx context.Context, user *domain.User, id uuid.UUID) error {
	doc, err := s.docRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if doc == nil {
		return ErrDocumentNotFound
	}
	if err := s.requireProject(ctx, user.CompanyID, doc.ProjectID); err != nil {
		return err
	}

	if err := s.docRepo.Delete(ctx, id); err != nil {
		return err
	}

	_ = s.minioClient.RemoveObject(ctx, s.cfg.MinIOBucket, doc.StoragePath, minio.RemoveObjectOptions{})
	return nil
}

func (s *service) requireProject(ctx context.Context, companyID, projectID uuid.UUID) error {
	project, err := s.projectRepo.GetByID(ctx, companyID, projectID)
	if err != nil {
		return err
	}
	if project == nil {
		return ErrDocumentNotFound
	}
	return nil
}

// presignURL returns a short-lived download link; the bucket itself is
// private.
func (s *service) presignURL(ctx context.Context, storagePath string) string {
	u, err := s.minioClient.PresignedGetObject(ctx, s.cfg.MinIOBucket, storagePath, presignExpiry, nil)
	if err != nil {
		return ""
	}
	return u.String()
}
