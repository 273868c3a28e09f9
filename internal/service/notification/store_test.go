package notification_test

import (
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"buildsite-be/internal/domain"
	"buildsite-be/internal/service/notification"
)

func makeNotification(id string, userID uuid.UUID) domain.Notification {
	return domain.Notification{
		ID:      id,
		UserID:  userID,
		Type:    domain.NotifInfo,
		Title:   "title " + id,
		Message: "message " + id,
	}
}

func TestStore_AppendCapsHistory(t *testing.T) {
	store := notification.NewStore()
	userID := uuid.New()

	for i := 0; i < notification.HistoryLimit+10; i++ {
		store.Append(userID, makeNotification(fmt.Sprintf("n-%03d", i), userID))
	}

	list := store.List(userID)
	assert.Len(t, list, notification.HistoryLimit)

	// Newest first: the most recent append leads, the 10 oldest are gone.
	assert.Equal(t, "n-059", list[0].ID)
	assert.Equal(t, "n-010", list[len(list)-1].ID)
}

func TestStore_ListPerUserIsolation(t *testing.T) {
	store := notification.NewStore()
	alice := uuid.New()
	bob := uuid.New()

	store.Append(alice, makeNotification("a-1", alice))
	store.Append(bob, makeNotification("b-1", bob))
	store.Append(bob, makeNotification("b-2", bob))

	assert.Len(t, store.List(alice), 1)
	assert.Len(t, store.List(bob), 2)
	assert.Empty(t, store.List(uuid.New()))
}

func TestStore_ListReturnsCopy(t *testing.T) {
	store := notification.NewStore()
	userID := uuid.New()
	store.Append(userID, makeNotification("n-1", userID))

	list := store.List(userID)
	list[0].IsRead = true

	assert.False(t, store.List(userID)[0].IsRead)
}

func TestStore_MarkRead(t *testing.T) {
	store := notification.NewStore()
	userID := uuid.New()
	store.Append(userID, makeNotification("n-1", userID))

	t.Run("Unknown ID Is No-Op", func(t *testing.T) {
		_, ok := store.MarkRead(userID, "missing")
		assert.False(t, ok)
		assert.Equal(t, 1, store.UnreadCount(userID))
	})

	t.Run("Marks Entry Read", func(t *testing.T) {
		updated, ok := store.MarkRead(userID, "n-1")
		assert.True(t, ok)
		assert.True(t, updated.IsRead)
		assert.Equal(t, 0, store.UnreadCount(userID))
	})

	t.Run("Already Read Stays Read", func(t *testing.T) {
		updated, ok := store.MarkRead(userID, "n-1")
		assert.True(t, ok)
		assert.True(t, updated.IsRead)
		assert.Equal(t, 0, store.UnreadCount(userID))
	})
}

func TestStore_MarkAllRead(t *testing.T) {
	store := notification.NewStore()
	userID := uuid.New()

	t.Run("Empty History", func(t *testing.T) {
		updated := store.MarkAllRead(userID)
		assert.Empty(t, updated)
	})

	t.Run("Marks Everything", func(t *testing.T) {
		store.Append(userID, makeNotification("n-1", userID))
		store.Append(userID, makeNotification("n-2", userID))
		store.MarkRead(userID, "n-1")

		updated := store.MarkAllRead(userID)
		assert.Len(t, updated, 2)
		for _, n := range updated {
			assert.True(t, n.IsRead)
		}
		assert.Equal(t, 0, store.UnreadCount(userID))
	})
}
