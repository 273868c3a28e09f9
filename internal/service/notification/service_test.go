package notification_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"buildsite-be/internal/domain"
	"buildsite-be/internal/service/notification"
)

func TestService_CreateRecordsAndReportsUnread(t *testing.T) {
	svc := notification.NewService()
	userID := uuid.New()

	created := svc.Create(userID, domain.NotifInfo, "Title", "Message", nil)
	require.NotNil(t, created)
	assert.NotEmpty(t, created.ID)
	assert.False(t, created.IsRead)

	snapshot := svc.Snapshot(userID)
	require.Len(t, snapshot, 1)
	assert.Equal(t, created.ID, snapshot[0].ID)
	assert.Equal(t, 1, svc.UnreadCount(userID))
}

func TestService_CreateWithNoConnections(t *testing.T) {
	svc := notification.NewService()
	userID := uuid.New()

	// No one is listening; the notification is still retained.
	svc.Create(userID, domain.NotifWarning, "Offline", "Recorded anyway", nil)

	assert.Len(t, svc.Snapshot(userID), 1)
}

func TestService_CreateFansOutToAllConnections(t *testing.T) {
	svc := notification.NewService()
	userID := uuid.New()

	connA := newFakePusher("c-a")
	connB := newFakePusher("c-b")
	for _, p := range []*fakePusher{connA, connB} {
		svc.Connect(p)
		require.NoError(t, svc.Bind(p.ID(), userID))
	}

	created := svc.Create(userID, domain.NotifSuccess, "Fan Out", "Everyone sees this", nil)

	for _, p := range []*fakePusher{connA, connB} {
		events := p.events()
		// First push is the bind snapshot, then the created event.
		require.Len(t, events, 2)
		assert.Equal(t, domain.EventCreated, events[1].Event)
		require.NotNil(t, events[1].Notification)
		assert.Equal(t, created.ID, events[1].Notification.ID)
	}
}

func TestService_FanOutSurvivesFailingConnection(t *testing.T) {
	svc := notification.NewService()
	userID := uuid.New()

	broken := newFakePusher("c-broken")
	broken.fail = errors.New("buffer full")
	healthy := newFakePusher("c-healthy")

	svc.Connect(broken)
	require.NoError(t, svc.Bind(broken.ID(), userID))
	svc.Connect(healthy)
	require.NoError(t, svc.Bind(healthy.ID(), userID))

	svc.Create(userID, domain.NotifError, "Partial", "Delivery", nil)

	events := healthy.events()
	require.Len(t, events, 2)
	assert.Equal(t, domain.EventCreated, events[1].Event)
}

func TestService_BindPushesSnapshotFirst(t *testing.T) {
	svc := notification.NewService()
	userID := uuid.New()

	for i := 0; i < 3; i++ {
		svc.Create(userID, domain.NotifInfo, fmt.Sprintf("n-%d", i), "msg", nil)
	}

	conn := newFakePusher("c-1")
	svc.Connect(conn)
	require.NoError(t, svc.Bind(conn.ID(), userID))

	events := conn.events()
	require.NotEmpty(t, events)
	assert.Equal(t, domain.EventSnapshot, events[0].Event)
	require.Len(t, events[0].Notifications, 3)
	// Newest first.
	assert.Equal(t, "n-2", events[0].Notifications[0].Title)
}

func TestService_BindSecondUserRejected(t *testing.T) {
	svc := notification.NewService()

	conn := newFakePusher("c-1")
	svc.Connect(conn)
	require.NoError(t, svc.Bind(conn.ID(), uuid.New()))

	err := svc.Bind(conn.ID(), uuid.New())
	assert.ErrorIs(t, err, notification.ErrAlreadyBound)
}

func TestService_MarkReadPushesUpdate(t *testing.T) {
	svc := notification.NewService()
	userID := uuid.New()

	created := svc.Create(userID, domain.NotifInfo, "Read Me", "msg", nil)

	conn := newFakePusher("c-1")
	svc.Connect(conn)
	require.NoError(t, svc.Bind(conn.ID(), userID))

	svc.MarkRead(userID, created.ID)

	events := conn.events()
	require.Len(t, events, 2)
	assert.Equal(t, domain.EventUpdated, events[1].Event)
	require.NotNil(t, events[1].Notification)
	assert.Equal(t, created.ID, events[1].Notification.ID)
	assert.True(t, events[1].Notification.IsRead)
	assert.Equal(t, 0, svc.UnreadCount(userID))
}

func TestService_MarkReadUnknownIDPushesNothing(t *testing.T) {
	svc := notification.NewService()
	userID := uuid.New()

	conn := newFakePusher("c-1")
	svc.Connect(conn)
	require.NoError(t, svc.Bind(conn.ID(), userID))

	svc.MarkRead(userID, "missing")

	// Only the bind snapshot.
	assert.Len(t, conn.events(), 1)
}

func TestService_MarkAllReadPushesFullList(t *testing.T) {
	svc := notification.NewService()
	userID := uuid.New()

	svc.Create(userID, domain.NotifInfo, "one", "msg", nil)
	svc.Create(userID, domain.NotifInfo, "two", "msg", nil)

	conn := newFakePusher("c-1")
	svc.Connect(conn)
	require.NoError(t, svc.Bind(conn.ID(), userID))

	svc.MarkAllRead(userID)

	events := conn.events()
	require.Len(t, events, 2)
	assert.Equal(t, domain.EventBulkRead, events[1].Event)
	require.Len(t, events[1].Notifications, 2)
	for _, n := range events[1].Notifications {
		assert.True(t, n.IsRead)
	}
}

func TestService_MarkAllReadOnEmptyHistory(t *testing.T) {
	svc := notification.NewService()
	userID := uuid.New()

	conn := newFakePusher("c-1")
	svc.Connect(conn)
	require.NoError(t, svc.Bind(conn.ID(), userID))

	svc.MarkAllRead(userID)

	events := conn.events()
	require.Len(t, events, 2)
	assert.Equal(t, domain.EventBulkRead, events[1].Event)
	assert.Empty(t, events[1].Notifications)
}

func TestService_DisconnectStopsDelivery(t *testing.T) {
	svc := notification.NewService()
	userID := uuid.New()

	conn := newFakePusher("c-1")
	svc.Connect(conn)
	require.NoError(t, svc.Bind(conn.ID(), userID))

	svc.Disconnect(conn.ID())
	svc.Create(userID, domain.NotifInfo, "After", "msg", nil)

	// Only the bind snapshot arrived before disconnect.
	assert.Len(t, conn.events(), 1)
}

func TestService_UserIsolation(t *testing.T) {
	svc := notification.NewService()
	alice := uuid.New()
	bob := uuid.New()

	aliceConn := newFakePusher("c-alice")
	svc.Connect(aliceConn)
	require.NoError(t, svc.Bind(aliceConn.ID(), alice))

	svc.Create(bob, domain.NotifInfo, "For Bob", "msg", nil)

	assert.Len(t, aliceConn.events(), 1) // snapshot only
	assert.Empty(t, svc.Snapshot(alice))
	assert.Len(t, svc.Snapshot(bob), 1)
}

func TestService_HistoryCapThroughCreate(t *testing.T) {
	svc := notification.NewService()
	userID := uuid.New()

	for i := 0; i < notification.HistoryLimit+10; i++ {
		svc.Create(userID, domain.NotifInfo, fmt.Sprintf("n-%03d", i), "msg", nil)
	}

	snapshot := svc.Snapshot(userID)
	require.Len(t, snapshot, notification.HistoryLimit)
	assert.Equal(t, fmt.Sprintf("n-%03d", notification.HistoryLimit+9), snapshot[0].Title)
}
