package notification

import (
	"errors"
	"log"
	"sync"

	"github.com/google/uuid"

	"buildsite-be/internal/domain"
)

var ErrAlreadyBound = errors.New("connection already bound to another user")

// Pusher is one live transport connection. Push hands an envelope to the
// connection's outbound buffer and must not block; it returns an error
// when the connection cannot accept the frame (teardown, full buffer).
type Pusher interface {
	ID() string
	Push(ev domain.Envelope) error
}

type connEntry struct {
	pusher Pusher
	userID uuid.UUID
	bound  bool
}

// Registry tracks live connections and their per-user group membership.
// A connection starts unbound; Bind attaches it to exactly one user's
// group after authentication. One mutex keeps register/bind/unregister
// and membership lookups linearizable.
type Registry struct {
	mu    sync.Mutex
	conns map[string]*connEntry
	users map[uuid.UUID]map[string]Pusher
}

func NewRegistry() *Registry {
	return &Registry{
		conns: make(map[string]*connEntry),
		users: make(map[uuid.UUID]map[string]Pusher),
	}
}

// Register adds an unauthenticated connection. A duplicate id means the
// caller reused one; log it and overwrite.
func (r *Registry) Register(p Pusher) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if old, exists := r.conns[p.ID()]; exists {
		log.Printf("registry: duplicate connection id %s, overwriting", p.ID())
		if old.bound {
			r.removeFromGroup(old.userID, p.ID())
		}
	}
	r.conns[p.ID()] = &connEntry{pusher: p}
}

// Bind attaches a registered connection to the user's group. A
// connection binds at most once; rebinding to a different user is
// rejected, rebinding to the same user is a no-op.
func (r *Registry) Bind(connID string, userID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	entry, exists := r.conns[connID]
	if !exists {
		return errors.New("connection not registered")
	}
	if entry.bound {
		if entry.userID == userID {
			return nil
		}
		return ErrAlreadyBound
	}

	entry.userID = userID
	entry.bound = true

	group, exists := r.users[userID]
	if !exists {
		group = make(map[string]Pusher)
		r.users[userID] = group
	}
	group[connID] = entry.pusher
	return nil
}

// Unregister removes the connection from its group, if any. Safe to call
// for unknown or unbound connections.
func (r *Registry) Unregister(connID string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	entry, exists := r.conns[connID]
	if !exists {
		return
	}
	if entry.bound {
		r.removeFromGroup(entry.userID, connID)
	}
	delete(r.conns, connID)
}

// Conn returns the pusher registered under the id, if any.
func (r *Registry) Conn(connID string) (Pusher, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	entry, exists := r.conns[connID]
	if !exists {
		return nil, false
	}
	return entry.pusher, true
}

// MembersOf returns the live connections in the user's group as of now.
func (r *Registry) MembersOf(userID uuid.UUID) []Pusher {
	r.mu.Lock()
	defer r.mu.Unlock()

	group := r.users[userID]
	members := make([]Pusher, 0, len(group))
	for _, p := range group {
		members = append(members, p)
	}
	return members
}

func (r *Registry) removeFromGroup(userID uuid.UUID, connID string) {
	group := r.users[userID]
	delete(group, connID)
	if len(group) == 0 {
		delete(r.users, userID)
	}
}
