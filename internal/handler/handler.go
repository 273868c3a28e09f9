package handler

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"buildsite-be/internal/domain"
	"buildsite-be/internal/service"
)

type Handlers struct {
	Auth         *AuthHandler
	Project      *ProjectHandler
	Material     *MaterialHandler
	Document     *DocumentHandler
	Notification *NotificationHandler
	Activity     *ActivityHandler
	Dashboard    *DashboardHandler
	AI           *AIHandler
	IoT          *IoTHandler
	Blockchain   *BlockchainHandler
	WS           *WSHandler
}

func NewHandlers(services *service.Services) *Handlers {
	return &Handlers{
		Auth:         NewAuthHandler(services.Auth),
		Project:      NewProjectHandler(services.Project),
		Material:     NewMaterialHandler(services.Material),
		Document:     NewDocumentHandler(services.Document),
		Notification: NewNotificationHandler(services.Notification),
		Activity:     NewActivityHandler(services.Activity),
		Dashboard:    NewDashboardHandler(services.Dashboard),
		AI:           NewAIHandler(services.AI),
		IoT:          NewIoTHandler(services.IoT),
		Blockchain:   NewBlockchainHandler(services.Blockchain),
		WS:           NewWSHandler(services.Auth, services.Notification),
	}
}

func getPaginationParams(c *fiber.Ctx) domain.PaginationParams {
	page, _ := strconv.Atoi(c.Query("page", "1"))
	pageSize, _ := strconv.Atoi(c.Query("page_size", "20"))

	params := domain.PaginationParams{Page: page, PageSize: pageSize}
	params.Validate()
	return params
}
