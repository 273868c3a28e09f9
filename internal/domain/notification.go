package domain

import (
	"time"

	"github.com/google/uuid"
)

type NotificationType string

const (
	NotifInfo    NotificationType = "info"
	NotifSuccess NotificationType = "success"
	NotifWarning NotificationType = "warning"
	NotifError   NotificationType = "error"
)

// RelatedEntity is a loose reference used by clients for deep-linking.
type RelatedEntity struct {
	Kind string `json:"kind"`
	ID   string `json:"id"`
}

type Notification struct {
	ID        string           `json:"id"`
	UserID    uuid.UUID        `json:"user_id"`
	Type      NotificationType `json:"type"`
	Title     string           `json:"title"`
	Message   string           `json:"message"`
	Related   *RelatedEntity   `json:"related_entity,omitempty"`
	IsRead    bool             `json:"is_read"`
	CreatedAt time.Time        `json:"created_at"`
}

// EventType tags every frame the server pushes over the realtime channel.
type EventType string

const (
	EventSnapshot EventType = "snapshot"
	EventCreated  EventType = "notification.created"
	EventUpdated  EventType = "notification.updated"
	EventBulkRead EventType = "notification.bulk_read"
)

// Envelope is the server-to-client frame. Snapshot and bulk_read carry
// the full list; created and updated carry a single notification.
type Envelope struct {
	Event         EventType      `json:"event"`
	Notification  *Notification  `json:"notification,omitempty"`
	Notifications []Notification `json:"notifications,omitempty"`
}

// Channel command types accepted from the client. The first command on a
// fresh connection must be CmdAuth; everything else is rejected until the
// connection is bound to a user.
const (
	CmdAuth        = "auth"
	CmdMarkRead    = "mark_read"
	CmdMarkAllRead = "mark_all_read"
)

type ChannelCommand struct {
	Type           string `json:"type"`
	Token          string `json:"token,omitempty"`
	NotificationID string `json:"notification_id,omitempty"`
}
