package client

import (
	"log/slog"
	"testing"
	"time"

	"startuplink/domain"

	"github.com/stretchr/testify/require"
)

func TestManager_AtMostOneLiveSubscription(t *testing.T) {
	req := require.New(t)
	store := newFakeStore()
	manager := NewManager(slog.Default(), store)

	peers := []domain.Participant{"u2", "u3", "u4", "u2"}
	for _, peer := range peers {
		id, _ := domain.Resolve("u1", peer)
		manager.Switch("u1", id)
	}

	req.Equal(1, store.maxActive)
	req.Equal(1, store.activeCount())
	req.Len(store.subscribes, 4)
	req.Len(store.releases, 3)
}

func TestManager_SwitchReleasesPreviousFirst(t *testing.T) {
	req := require.New(t)
	store := newFakeStore()
	manager := NewManager(slog.Default(), store)

	first, _ := domain.Resolve("u1", "u2")
	second, _ := domain.Resolve("u1", "u3")
	manager.Switch("u1", first)
	manager.Switch("u1", second)

	req.Equal([]domain.ConversationID{first}, store.releases)
	active, ok := manager.Active()
	req.True(ok)
	req.Equal(second, active.Conversation())
}

func TestManager_SwitchSeedsTimelineWithSnapshot(t *testing.T) {
	req := require.New(t)
	store := newFakeStore()
	id, _ := domain.Resolve("u1", "u2")
	store.seed[id] = []domain.Message{
		domain.NewMessage(id, "u2", "u1", "earlier", time.Now().UTC()),
	}
	manager := NewManager(slog.Default(), store)

	timeline := manager.Switch("u1", id)

	req.Equal(1, timeline.Len())
	newest, ok := timeline.Newest()
	req.True(ok)
	req.Equal("earlier", newest.Body)
}

func TestManager_ReleaseIsIdempotent(t *testing.T) {
	req := require.New(t)
	store := newFakeStore()
	manager := NewManager(slog.Default(), store)

	id, _ := domain.Resolve("u1", "u2")
	manager.Switch("u1", id)
	manager.Release()
	manager.Release()

	req.Len(store.releases, 1)
	_, ok := manager.Active()
	req.False(ok)
}
