package notification

import (
	"sync"

	"github.com/google/uuid"

	"buildsite-be/internal/domain"
)

// HistoryLimit caps how many notifications are retained per user; the
// oldest entries are evicted first.
const HistoryLimit = 50

// Store keeps each user's notification history in process memory,
// newest-first. All methods are safe for concurrent use.
type Store struct {
	mu     sync.Mutex
	byUser map[uuid.UUID][]domain.Notification
}

func NewStore() *Store {
	return &Store{byUser: make(map[uuid.UUID][]domain.Notification)}
}

// Append prepends the notification to the user's history and trims the
// tail when it grows past HistoryLimit.
func (s *Store) Append(userID uuid.UUID, notif domain.Notification) {
	s.mu.Lock()
	defer s.mu.Unlock()

	list := append([]domain.Notification{notif}, s.byUser[userID]...)
	if len(list) > HistoryLimit {
		list = list[:HistoryLimit]
	}
	s.byUser[userID] = list
}

// List returns a copy of the user's history, newest-first. A user with
// no notifications gets an empty slice, never an error.
func (s *Store) List(userID uuid.UUID) []domain.Notification {
	s.mu.Lock()
	defer s.mu.Unlock()

	list := s.byUser[userID]
	out := make([]domain.Notification, len(list))
	copy(out, list)
	return out
}

// MarkRead sets is_read on the matching entry and returns it. An unknown
// id is a benign no-op: ok is false and nothing changes. Marking an
// already-read entry returns it unchanged with ok true, so client
// retries stay idempotent.
func (s *Store) MarkRead(userID uuid.UUID, notificationID string) (domain.Notification, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	list := s.byUser[userID]
	for i := range list {
		if list[i].ID == notificationID {
			list[i].IsRead = true
			return list[i], true
		}
	}
	return domain.Notification{}, false
}

// MarkAllRead sets is_read on every entry and returns the updated
// history, newest-first.
func (s *Store) MarkAllRead(userID uuid.UUID) []domain.Notification {
	s.mu.Lock()
	defer s.mu.Unlock()

	list := s.byUser[userID]
	for i := range list {
		list[i].IsRead = true
	}
	out := make([]domain.Notification, len(list))
	copy(out, list)
	return out
}

// UnreadCount reports how many entries in the user's history are unread.
func (s *Store) UnreadCount(userID uuid.UUID) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	count := 0
	for _, n := range s.byUser[userID] {
		if !n.IsRead {
			count++
		}
	}
	return count
}
