package mocks

import (
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"buildsite-be/internal/domain"
	"buildsite-be/internal/service/notification"
)

type NotificationService struct {
	mock.Mock
}

func (m *NotificationService) Create(userID uuid.UUID, typ domain.NotificationType, title, message string, related *domain.RelatedEntity) *domain.Notification {
	args := m.Called(userID, typ, title, message, related)
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).(*domain.Notification)
}

func (m *NotificationService) Snapshot(userID uuid.UUID) []domain.Notification {
	args := m.Called(userID)
	return args.Get(0).([]domain.Notification)
}

func (m *NotificationService) MarkRead(userID uuid.UUID, notificationID string) {
	m.Called(userID, notificationID)
}

func (m *NotificationService) MarkAllRead(userID uuid.UUID) {
	m.Called(userID)
}

func (m *NotificationService) UnreadCount(userID uuid.UUID) int {
	args := m.Called(userID)
	return args.Int(0)
}

func (m *NotificationService) Connect(p notification.Pusher) {
	m.Called(p)
}

func (m *NotificationService) Bind(connID string, userID uuid.UUID) error {
	args := m.Called(connID, userID)
	return args.Error(0)
}

func (m *NotificationService) Disconnect(connID string) {
	m.Called(connID)
}
