package wsclient_test

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"buildsite-be/internal/domain"
	"buildsite-be/internal/wsclient"
)

// pipeTransport is an in-memory stand-in for the websocket transport.
// The test feeds server frames into incoming and observes client
// commands on sent.
type pipeTransport struct {
	incoming chan domain.Envelope
	sent     chan domain.ChannelCommand

	closeOnce sync.Once
	done      chan struct{}
}

func newPipeTransport() *pipeTransport {
	return &pipeTransport{
		incoming: make(chan domain.Envelope, 16),
		sent:     make(chan domain.ChannelCommand, 16),
		done:     make(chan struct{}),
	}
}

func (t *pipeTransport) ReadJSON(v any) error {
	select {
	case ev := <-t.incoming:
		*v.(*domain.Envelope) = ev
		return nil
	case <-t.done:
		return errors.New("transport closed")
	}
}

func (t *pipeTransport) WriteJSON(v any) error {
	select {
	case <-t.done:
		return errors.New("transport closed")
	default:
	}
	t.sent <- v.(domain.ChannelCommand)
	return nil
}

func (t *pipeTransport) Close() error {
	t.closeOnce.Do(func() { close(t.done) })
	return nil
}

func (t *pipeTransport) lastCommand(tb testing.TB) domain.ChannelCommand {
	tb.Helper()
	select {
	case cmd := <-t.sent:
		return cmd
	case <-time.After(time.Second):
		tb.Fatal("no command sent")
		return domain.ChannelCommand{}
	}
}

func dialerFor(transport *pipeTransport) wsclient.Dialer {
	return func(url string) (wsclient.Transport, error) {
		return transport, nil
	}
}

func snapshotEnvelope(notifications ...domain.Notification) domain.Envelope {
	return domain.Envelope{Event: domain.EventSnapshot, Notifications: notifications}
}

func testNotification(id string, read bool) domain.Notification {
	return domain.Notification{
		ID:     id,
		UserID: uuid.New(),
		Type:   domain.NotifInfo,
		Title:  "title " + id,
		IsRead: read,
	}
}

func TestAgent_ConnectSyncsFromSnapshot(t *testing.T) {
	transport := newPipeTransport()
	transport.incoming <- snapshotEnvelope(
		testNotification("n-2", false),
		testNotification("n-1", true),
	)

	agent := wsclient.NewAgent(dialerFor(transport), wsclient.Callbacks{})
	require.NoError(t, agent.Connect("ws://test", "token-123"))

	assert.Equal(t, wsclient.StateSynced, agent.State())

	auth := transport.lastCommand(t)
	assert.Equal(t, domain.CmdAuth, auth.Type)
	assert.Equal(t, "token-123", auth.Token)

	list := agent.Notifications()
	require.Len(t, list, 2)
	assert.Equal(t, "n-2", list[0].ID)
	assert.Equal(t, 1, agent.UnreadCount())
}

func TestAgent_ConnectRejectsNonSnapshotFirstFrame(t *testing.T) {
	transport := newPipeTransport()
	n := testNotification("n-1", false)
	transport.incoming <- domain.Envelope{Event: domain.EventCreated, Notification: &n}

	agent := wsclient.NewAgent(dialerFor(transport), wsclient.Callbacks{})
	err := agent.Connect("ws://test", "token")

	assert.ErrorIs(t, err, wsclient.ErrUnexpectedFrame)
	assert.Equal(t, wsclient.StateDisconnected, agent.State())
}

func TestAgent_ConnectDialFailure(t *testing.T) {
	dialErr := errors.New("connection refused")
	agent := wsclient.NewAgent(func(url string) (wsclient.Transport, error) {
		return nil, dialErr
	}, wsclient.Callbacks{})

	err := agent.Connect("ws://test", "token")
	assert.ErrorIs(t, err, dialErr)
	assert.Equal(t, wsclient.StateDisconnected, agent.State())
}

func TestAgent_ConnectTwiceRejected(t *testing.T) {
	transport := newPipeTransport()
	transport.incoming <- snapshotEnvelope()

	agent := wsclient.NewAgent(dialerFor(transport), wsclient.Callbacks{})
	require.NoError(t, agent.Connect("ws://test", "token"))

	assert.ErrorIs(t, agent.Connect("ws://test", "token"), wsclient.ErrAlreadyRunning)
}

func TestAgent_CreatedEventPrependsAndAlerts(t *testing.T) {
	transport := newPipeTransport()
	transport.incoming <- snapshotEnvelope(testNotification("n-1", true))

	alerts := make(chan domain.Notification, 1)
	agent := wsclient.NewAgent(dialerFor(transport), wsclient.Callbacks{
		OnNotification: func(n domain.Notification) { alerts <- n },
	})
	require.NoError(t, agent.Connect("ws://test", "token"))

	fresh := testNotification("n-2", false)
	transport.incoming <- domain.Envelope{Event: domain.EventCreated, Notification: &fresh}

	select {
	case n := <-alerts:
		assert.Equal(t, "n-2", n.ID)
	case <-time.After(time.Second):
		t.Fatal("no alert delivered")
	}

	list := agent.Notifications()
	require.Len(t, list, 2)
	assert.Equal(t, "n-2", list[0].ID)
	assert.Equal(t, 1, agent.UnreadCount())
}

func TestAgent_UpdatedEventReconciles(t *testing.T) {
	transport := newPipeTransport()
	transport.incoming <- snapshotEnvelope(testNotification("n-1", false))

	agent := wsclient.NewAgent(dialerFor(transport), wsclient.Callbacks{})
	require.NoError(t, agent.Connect("ws://test", "token"))

	updated := testNotification("n-1", true)
	transport.incoming <- domain.Envelope{Event: domain.EventUpdated, Notification: &updated}

	require.Eventually(t, func() bool {
		return agent.UnreadCount() == 0
	}, time.Second, 10*time.Millisecond)
}

func TestAgent_BulkReadReplacesList(t *testing.T) {
	transport := newPipeTransport()
	transport.incoming <- snapshotEnvelope(
		testNotification("n-2", false),
		testNotification("n-1", false),
	)

	agent := wsclient.NewAgent(dialerFor(transport), wsclient.Callbacks{})
	require.NoError(t, agent.Connect("ws://test", "token"))

	transport.incoming <- domain.Envelope{
		Event: domain.EventBulkRead,
		Notifications: []domain.Notification{
			testNotification("n-2", true),
			testNotification("n-1", true),
		},
	}

	require.Eventually(t, func() bool {
		return agent.UnreadCount() == 0
	}, time.Second, 10*time.Millisecond)
	assert.Len(t, agent.Notifications(), 2)
}

func TestAgent_MarkAsReadIsOptimistic(t *testing.T) {
	transport := newPipeTransport()
	transport.incoming <- snapshotEnvelope(testNotification("n-1", false))

	agent := wsclient.NewAgent(dialerFor(transport), wsclient.Callbacks{})
	require.NoError(t, agent.Connect("ws://test", "token"))
	transport.lastCommand(t) // drain auth

	require.NoError(t, agent.MarkAsRead("n-1"))

	// Local copy flips before any server confirmation.
	assert.Equal(t, 0, agent.UnreadCount())

	cmd := transport.lastCommand(t)
	assert.Equal(t, domain.CmdMarkRead, cmd.Type)
	assert.Equal(t, "n-1", cmd.NotificationID)
}

func TestAgent_MarkAllAsRead(t *testing.T) {
	transport := newPipeTransport()
	transport.incoming <- snapshotEnvelope(
		testNotification("n-2", false),
		testNotification("n-1", false),
	)

	agent := wsclient.NewAgent(dialerFor(transport), wsclient.Callbacks{})
	require.NoError(t, agent.Connect("ws://test", "token"))
	transport.lastCommand(t) // drain auth

	require.NoError(t, agent.MarkAllAsRead())

	assert.Equal(t, 0, agent.UnreadCount())
	assert.Equal(t, domain.CmdMarkAllRead, transport.lastCommand(t).Type)
}

func TestAgent_MarkAsReadRequiresSync(t *testing.T) {
	agent := wsclient.NewAgent(dialerFor(newPipeTransport()), wsclient.Callbacks{})
	assert.ErrorIs(t, agent.MarkAsRead("n-1"), wsclient.ErrNotSynced)
	assert.ErrorIs(t, agent.MarkAllAsRead(), wsclient.ErrNotSynced)
}

func TestAgent_TransportDropDisconnects(t *testing.T) {
	transport := newPipeTransport()
	transport.incoming <- snapshotEnvelope()

	dropped := make(chan error, 1)
	agent := wsclient.NewAgent(dialerFor(transport), wsclient.Callbacks{
		OnDisconnect: func(err error) { dropped <- err },
	})
	require.NoError(t, agent.Connect("ws://test", "token"))

	transport.Close()

	select {
	case err := <-dropped:
		assert.Error(t, err)
	case <-time.After(time.Second):
		t.Fatal("disconnect callback never fired")
	}
	assert.Equal(t, wsclient.StateDisconnected, agent.State())
}
