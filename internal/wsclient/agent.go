// Package wsclient implements the client side of the notification
// channel: a small agent that authenticates, ingests the server
// snapshot and then keeps a local mirror of the user's notification
// list in sync with pushed events.
package wsclient

import (
	"errors"
	"fmt"
	"sync"

	"buildsite-be/internal/domain"
)

type State string

const (
	StateDisconnected State = "disconnected"
	StateConnecting   State = "connecting"
	StateAwaitingAuth State = "awaiting_auth"
	StateSynced       State = "synced"
)

var (
	ErrNotSynced       = errors.New("agent is not synced")
	ErrAlreadyRunning  = errors.New("agent is already connected")
	ErrUnexpectedFrame = errors.New("expected snapshot as first frame")
)

// Transport is the wire the agent talks over. The production transport
// wraps a websocket connection; tests substitute an in-memory pipe.
type Transport interface {
	ReadJSON(v any) error
	WriteJSON(v any) error
	Close() error
}

type Dialer func(url string) (Transport, error)

// Callbacks are invoked from the agent's read loop. They must not call
// back into the agent synchronously.
type Callbacks struct {
	OnNotification func(n domain.Notification)
	OnDisconnect   func(err error)
}

type Agent struct {
	dial      Dialer
	callbacks Callbacks

	mu            sync.Mutex
	state         State
	transport     Transport
	notifications []domain.Notification
}

func NewAgent(dial Dialer, callbacks Callbacks) *Agent {
	return &Agent{
		dial:      dial,
		callbacks: callbacks,
		state:     StateDisconnected,
	}
}

func (a *Agent) State() State {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.state
}

// Notifications returns a copy of the local list, newest first.
func (a *Agent) Notifications() []domain.Notification {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make([]domain.Notification, len(a.notifications))
	copy(out, a.notifications)
	return out
}

func (a *Agent) UnreadCount() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	count := 0
	for _, n := range a.notifications {
		if !n.IsRead {
			count++
		}
	}
	return count
}

// Connect dials the channel, authenticates with the given token and
// blocks until the snapshot arrives. On success the agent is synced and
// a background loop applies further server events.
func (a *Agent) Connect(url, token string) error {
	a.mu.Lock()
	if a.state != StateDisconnected {
		a.mu.Unlock()
		return ErrAlreadyRunning
	}
	a.state = StateConnecting
	a.mu.Unlock()

	transport, err := a.dial(url)
	if err != nil {
		a.fail(fmt.Errorf("dial: %w", err))
		return err
	}

	auth := domain.ChannelCommand{Type: domain.CmdAuth, Token: token}
	if err := transport.WriteJSON(auth); err != nil {
		transport.Close()
		a.fail(fmt.Errorf("send auth: %w", err))
		return err
	}

	a.mu.Lock()
	a.state = StateAwaitingAuth
	a.mu.Unlock()

	var first domain.Envelope
	if err := transport.ReadJSON(&first); err != nil {
		transport.Close()
		a.fail(fmt.Errorf("read snapshot: %w", err))
		return err
	}
	if first.Event != domain.EventSnapshot {
		transport.Close()
		a.fail(ErrUnexpectedFrame)
		return ErrUnexpectedFrame
	}

	a.mu.Lock()
	a.transport = transport
	a.notifications = append([]domain.Notification(nil), first.Notifications...)
	a.state = StateSynced
	a.mu.Unlock()

	go a.readLoop(transport)
	return nil
}

// Close tears the connection down. The read loop observes the closed
// transport and moves the agent to disconnected.
func (a *Agent) Close() error {
	a.mu.Lock()
	transport := a.transport
	a.mu.Unlock()
	if transport == nil {
		return nil
	}
	return transport.Close()
}

// MarkAsRead flips the local copy immediately and tells the server. If
// the server disagrees the next pushed update or snapshot wins.
func (a *Agent) MarkAsRead(notificationID string) error {
	a.mu.Lock()
	if a.state != StateSynced {
		a.mu.Unlock()
		return ErrNotSynced
	}
	for i := range a.notifications {
		if a.notifications[i].ID == notificationID {
			a.notifications[i].IsRead = true
			break
		}
	}
	transport := a.transport
	a.mu.Unlock()

	return transport.WriteJSON(domain.ChannelCommand{
		Type:           domain.CmdMarkRead,
		NotificationID: notificationID,
	})
}

func (a *Agent) MarkAllAsRead() error {
	a.mu.Lock()
	if a.state != StateSynced {
		a.mu.Unlock()
		return ErrNotSynced
	}
	for i := range a.notifications {
		a.notifications[i].IsRead = true
	}
	transport := a.transport
	a.mu.Unlock()

	return transport.WriteJSON(domain.ChannelCommand{Type: domain.CmdMarkAllRead})
}

func (a *Agent) readLoop(transport Transport) {
	for {
		var ev domain.Envelope
		if err := transport.ReadJSON(&ev); err != nil {
			transport.Close()
			a.fail(err)
			return
		}
		a.apply(ev)
	}
}

func (a *Agent) apply(ev domain.Envelope) {
	var alert *domain.Notification

	a.mu.Lock()
	switch ev.Event {
	case domain.EventSnapshot:
		a.notifications = append([]domain.Notification(nil), ev.Notifications...)
	case domain.EventCreated:
		if ev.Notification != nil {
			a.notifications = append([]domain.Notification{*ev.Notification}, a.notifications...)
			if len(a.notifications) > historyLimit {
				a.notifications = a.notifications[:historyLimit]
			}
			alert = ev.Notification
		}
	case domain.EventUpdated:
		if ev.Notification != nil {
			for i := range a.notifications {
				if a.notifications[i].ID == ev.Notification.ID {
					a.notifications[i] = *ev.Notification
					break
				}
			}
		}
	case domain.EventBulkRead:
		a.notifications = append([]domain.Notification(nil), ev.Notifications...)
	}
	a.mu.Unlock()

	if alert != nil && a.callbacks.OnNotification != nil {
		a.callbacks.OnNotification(*alert)
	}
}

// historyLimit mirrors the server's retention cap so the local list
// never outgrows what the next snapshot would contain.
const historyLimit = 50

func (a *Agent) fail(err error) {
	a.mu.Lock()
	wasSynced := a.state == StateSynced
	a.state = StateDisconnected
	a.transport = nil
	a.mu.Unlock()

	if wasSynced && a.callbacks.OnDisconnect != nil {
		a.callbacks.OnDisconnect(err)
	}
}
