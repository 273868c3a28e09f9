package notification

import (
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"buildsite-be/internal/domain"
)

// Service is the only surface collaborators use to reach the
// notification subsystem. It owns the history store and the connection
// registry; no other component mutates either directly.
type Service interface {
	Create(userID uuid.UUID, typ domain.NotificationType, title, message string, related *domain.RelatedEntity) *domain.Notification
	Snapshot(userID uuid.UUID) []domain.Notification
	MarkRead(userID uuid.UUID, notificationID string)
	MarkAllRead(userID uuid.UUID)
	UnreadCount(userID uuid.UUID) int

	Connect(p Pusher)
	Bind(connID string, userID uuid.UUID) error
	Disconnect(connID string)
}

type service struct {
	// mu serializes append-and-fan-out sequences so every connection of a
	// user sees pushes in create order.
	mu       sync.Mutex
	store    *Store
	registry *Registry
}

func NewService() Service {
	return &service{
		store:    NewStore(),
		registry: NewRegistry(),
	}
}

// Create builds the notification, records it, and pushes it to every
// live connection of the user. Delivery is best-effort: zero live
// connections or individual push failures never fail the call.
func (s *service) Create(userID uuid.UUID, typ domain.NotificationType, title, message string, related *domain.RelatedEntity) *domain.Notification {
	notif := domain.Notification{
		ID:        newNotificationID(),
		UserID:    userID,
		Type:      typ,
		Title:     title,
		Message:   message,
		Related:   related,
		IsRead:    false,
		CreatedAt: time.Now(),
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.store.Append(userID, notif)
	s.fanOut(userID, domain.Envelope{
		Event:        domain.EventCreated,
		Notification: &notif,
	})

	return &notif
}

func (s *service) Snapshot(userID uuid.UUID) []domain.Notification {
	return s.store.List(userID)
}

// MarkRead flips the entry to read and pushes the update to all of the
// user's connections so other tabs and devices converge. An unknown id
// is a benign no-op.
func (s *service) MarkRead(userID uuid.UUID, notificationID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	notif, ok := s.store.MarkRead(userID, notificationID)
	if !ok {
		return
	}
	s.fanOut(userID, domain.Envelope{
		Event:        domain.EventUpdated,
		Notification: &notif,
	})
}

// MarkAllRead marks the whole history read and pushes the updated list.
func (s *service) MarkAllRead(userID uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()

	updated := s.store.MarkAllRead(userID)
	s.fanOut(userID, domain.Envelope{
		Event:         domain.EventBulkRead,
		Notifications: updated,
	})
}

func (s *service) UnreadCount(userID uuid.UUID) int {
	return s.store.UnreadCount(userID)
}

func (s *service) Connect(p Pusher) {
	s.registry.Register(p)
}

// Bind attaches an authenticated connection to its user's group and
// immediately pushes the current snapshot so the client can reconcile.
func (s *service) Bind(connID string, userID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.registry.Bind(connID, userID); err != nil {
		return err
	}

	conn, exists := s.registry.Conn(connID)
	if !exists {
		return nil
	}
	if err := conn.Push(domain.Envelope{
		Event:         domain.EventSnapshot,
		Notifications: s.store.List(userID),
	}); err != nil {
		log.Printf("notification: snapshot push to %s failed: %v", connID, err)
	}
	return nil
}

func (s *service) Disconnect(connID string) {
	s.registry.Unregister(connID)
}

// fanOut delivers one envelope to every member of the user's group. A
// failed push is logged and skipped; remaining members still receive it.
// Callers hold s.mu, which gives per-user FIFO ordering into each
// connection's buffer.
func (s *service) fanOut(userID uuid.UUID, ev domain.Envelope) {
	for _, p := range s.registry.MembersOf(userID) {
		if err := p.Push(ev); err != nil {
			log.Printf("notification: push to %s failed: %v", p.ID(), err)
		}
	}
}

// newNotificationID returns a time-ordered unique id; UUIDv7 keeps ids
// monotone with creation order.
func newNotificationID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.New().String()
	}
	return id.String()
}
