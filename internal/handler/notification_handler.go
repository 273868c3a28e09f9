package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"buildsite-be/internal/middleware"
	"buildsite-be/internal/service/notification"
)

type NotificationHandler struct {
	notificationService notification.Service
}

func NewNotificationHandler(notificationService notification.Service) *NotificationHandler {
	return &NotificationHandler{notificationService: notificationService}
}

// List returns the caller's full retained history, newest first.
func (h *NotificationHandler) List(c *fiber.Ctx) error {
	userID := middleware.GetCurrentUserID(c)
	if userID == uuid.Nil {
		return middleware.Unauthorized("User not found")
	}

	notifications := h.notificationService.Snapshot(userID)

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"notifications": notifications,
		"unread_count":  h.notificationService.UnreadCount(userID),
	})
}

// MarkRead acknowledges a single notification. Unknown or already-read
// IDs are treated as success so retries stay harmless.
func (h *NotificationHandler) MarkRead(c *fiber.Ctx) error {
	userID := middleware.GetCurrentUserID(c)
	if userID == uuid.Nil {
		return middleware.Unauthorized("User not found")
	}

	notificationID := c.Params("notificationId")
	if notificationID == "" {
		return middleware.BadRequest("Notification ID is required")
	}

	h.notificationService.MarkRead(userID, notificationID)

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "Notification marked as read",
	})
}

func (h *NotificationHandler) MarkAllRead(c *fiber.Ctx) error {
	userID := middleware.GetCurrentUserID(c)
	if userID == uuid.Nil {
		return middleware.Unauthorized("User not found")
	}

	h.notificationService.MarkAllRead(userID)

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "All notifications marked as read",
	})
}
