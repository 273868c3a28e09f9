package service

import (
	"github.com/minio/minio-go/v7"
	"github.com/redis/go-redis/v9"

	"buildsite-be/internal/config"
	"buildsite-be/internal/repository"
	"buildsite-be/internal/service/activity"
	"buildsite-be/internal/service/ai"
	"buildsite-be/internal/service/auth"
	"buildsite-be/internal/service/blockchain"
	"buildsite-be/internal/service/dashboard"
	"buildsite-be/internal/service/document"
	"buildsite-be/internal/service/email"
	"buildsite-be/internal/service/iot"
	"buildsite-be/internal/service/material"
	"buildsite-be/internal/service/notification"
	"buildsite-be/internal/service/project"
)

type Services struct {
	Auth         auth.Service
	Email        email.Service
	Notification notification.Service
	Project      project.Service
	Material     material.Service
	Document     document.Service
	Activity     activity.Service
	Dashboard    dashboard.Service
	AI           ai.Service
	IoT          iot.Service
	Blockchain   blockchain.Service
}

func NewServices(repos *repository.Repositories, redis *redis.Client, minioClient *minio.Client, cfg *config.Config) *Services {
	emailService := email.NewService(cfg)
	notificationService := notification.NewService()
	authService := auth.NewService(repos.User, repos.Session, emailService, notificationService, cfg)
	projectService := project.NewService(repos.Project, repos.ActivityLog, redis, notificationService)
	materialService := material.NewService(repos.Material, repos.Project, repos.User, repos.ActivityLog, emailService, notificationService)
	documentService := document.NewService(repos.Document, repos.Project, minioClient, notificationService, cfg)
	activityService := activity.NewService(repos.ActivityLog)
	dashboardService := dashboard.NewService(repos.Project, repos.Material, repos.Document, redis)
	aiService := ai.NewService(repos.Project)
	iotService := iot.NewService(repos.Project)
	blockchainService := blockchain.NewService(repos.Document)

	return &Services{
		Auth:         authService,
		Email:        emailService,
		Notification: notificationService,
		Project:      projectService,
		Material:     materialService,
		Document:     documentService,
		Activity:     activityService,
		Dashboard:    dashboardService,
		AI:           aiService,
		IoT:          iotService,
		Blockchain:   blockchainService,
	}
}
