package runtime

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"startuplink/domain"
	"startuplink/domain/event"
	"startuplink/errors"
	"startuplink/moderation"
	"startuplink/observability"
	"startuplink/repositories"
	"startuplink/runtime/workers"
	"startuplink/sink"

	"github.com/dgraph-io/badger/v4"
	"github.com/stretchr/testify/require"
)

func newTestOrchestrator(t *testing.T) *Orchestrator {
	t.Helper()
	db, err := badger.Open(badger.DefaultOptions(t.TempDir()).
		WithLoggingLevel(badger.ERROR))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	registry := NewRegistry()
	sup := workers.NewSupervisor(slog.Default(), 100*time.Millisecond)
	collector := observability.NewCollector(slog.Default(), registry.ActiveSessions)
	repo := repositories.NewMessageRepository(db, slog.Default(), nil)
	moderator, err := moderation.NewModerator([]string{"weasel"}, '*')
	require.NoError(t, err)

	return NewOrchestrator(slog.Default(), sup, registry, repo, moderator,
		collector, 16, time.Second)
}

func waitSnapshot(t *testing.T, stream *sink.StreamSink) event.Snapshot {
	t.Helper()
	deadline := time.After(2 * time.Second)
	for {
		select {
		case evt := <-stream.Events:
			if snapshot, ok := evt.(event.Snapshot); ok {
				return snapshot
			}
		case <-deadline:
			t.Fatal("no snapshot received in time")
		}
	}
}

func TestOrchestrator_AppendValidations(t *testing.T) {
	req := require.New(t)
	o := newTestOrchestrator(t)
	id, _ := domain.Resolve("u1", "u2")

	err := o.Append(context.Background(), domain.SendMessage{
		Conversation: id, SenderID: "u1", ReceiverID: "u2", Body: "  \t ",
	})
	req.ErrorIs(err, errors.ErrEmptyMessage)

	err = o.Append(context.Background(), domain.SendMessage{
		SenderID: "u1", ReceiverID: "u2", Body: "hello",
	})
	req.ErrorIs(err, errors.ErrNoConversation)
}

func TestOrchestrator_SubscribeSeedsHistory(t *testing.T) {
	req := require.New(t)
	o := newTestOrchestrator(t)
	id, _ := domain.Resolve("u1", "u2")
	now := time.Now().UTC()

	// Two appends before anyone subscribes, deliberately out of order
	req.NoError(o.Append(context.Background(), domain.SendMessage{
		Conversation: id, SenderID: "u2", ReceiverID: "u1",
		Body: "second", SentAt: now.Add(time.Second),
	}))
	req.NoError(o.Append(context.Background(), domain.SendMessage{
		Conversation: id, SenderID: "u1", ReceiverID: "u2",
		Body: "first", SentAt: now,
	}))

	stream := sink.NewStreamSink(slog.Default(), 8)
	o.Subscribe("u1", id, stream)

	snapshot := waitSnapshot(t, stream)
	req.Equal(id, snapshot.Conversation)
	req.Equal([]string{"first", "second"}, repositories.Bodies(snapshot.Messages))

	// The store assigned a creation marker on the way in
	for _, message := range snapshot.Messages {
		req.False(message.CreatedAt.IsZero())
	}
}

func TestOrchestrator_LiveDeliveryToBothParticipants(t *testing.T) {
	req := require.New(t)
	o := newTestOrchestrator(t)
	id, _ := domain.Resolve("u1", "u2")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	o.Start(ctx, time.Minute)

	self := sink.NewStreamSink(slog.Default(), 8)
	peer := sink.NewStreamSink(slog.Default(), 8)
	o.Subscribe("u1", id, self)
	o.Subscribe("u2", id, peer)

	// Drain the seed snapshots
	waitSnapshot(t, self)
	waitSnapshot(t, peer)

	req.NoError(o.Append(context.Background(), domain.SendMessage{
		Conversation: id, SenderID: "u1", ReceiverID: "u2", Body: "ship it",
	}))

	// Both sides receive the refreshed snapshot, sender included
	for _, stream := range []*sink.StreamSink{self, peer} {
		snapshot := waitSnapshot(t, stream)
		req.Equal([]string{"ship it"}, repositories.Bodies(snapshot.Messages))
	}
}

func TestOrchestrator_MasksForbiddenWords(t *testing.T) {
	req := require.New(t)
	o := newTestOrchestrator(t)
	id, _ := domain.Resolve("u1", "u2")

	req.NoError(o.Append(context.Background(), domain.SendMessage{
		Conversation: id, SenderID: "u1", ReceiverID: "u2",
		Body: "that weasel took our term sheet",
	}))

	messages, err := o.Snapshot(id)
	req.NoError(err)
	req.Len(messages, 1)
	req.Equal("that ****** took our term sheet", messages[0].Body)

	// Telemetry observes the draft with the mask already applied
	select {
	case evt := <-o.telemetryEvents:
		drafted, ok := evt.(event.MessageDrafted)
		req.True(ok)
		req.Equal("that ****** took our term sheet", drafted.Body)
	default:
		t.Fatal("no drafted event reached telemetry")
	}
}

func TestOrchestrator_UnsubscribeStopsDelivery(t *testing.T) {
	req := require.New(t)
	o := newTestOrchestrator(t)
	id, _ := domain.Resolve("u1", "u2")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	o.Start(ctx, time.Minute)

	self := sink.NewStreamSink(slog.Default(), 8)
	peer := sink.NewStreamSink(slog.Default(), 8)
	o.Subscribe("u1", id, self)
	o.Subscribe("u2", id, peer)
	waitSnapshot(t, self)
	waitSnapshot(t, peer)

	o.Unsubscribe("u2", id, peer)

	req.NoError(o.Append(context.Background(), domain.SendMessage{
		Conversation: id, SenderID: "u1", ReceiverID: "u2", Body: "still here?",
	}))

	// The live side gets its update
	waitSnapshot(t, self)

	// The released side gets nothing: no ghost updates after teardown
	select {
	case evt := <-peer.Events:
		t.Fatalf("unexpected event after unsubscribe: %T", evt)
	case <-time.After(200 * time.Millisecond):
	}
}

func TestOrchestrator_ConcurrentFeedsStayIsolated(t *testing.T) {
	req := require.New(t)
	o := newTestOrchestrator(t)
	withU2, _ := domain.Resolve("u1", "u2")
	withU3, _ := domain.Resolve("u1", "u3")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	o.Start(ctx, time.Minute)

	// The same user holds feeds on two conversations (two tabs)
	tabA := sink.NewStreamSink(slog.Default(), 8)
	tabB := sink.NewStreamSink(slog.Default(), 8)
	o.Subscribe("u1", withU2, tabA)
	o.Subscribe("u1", withU3, tabB)
	waitSnapshot(t, tabA)
	waitSnapshot(t, tabB)

	req.NoError(o.Append(context.Background(), domain.SendMessage{
		Conversation: withU2, SenderID: "u2", ReceiverID: "u1", Body: "for tab A",
	}))

	snapshot := waitSnapshot(t, tabA)
	req.Equal(withU2, snapshot.Conversation)

	// The other feed stays silent: no cross-conversation delivery
	select {
	case evt := <-tabB.Events:
		t.Fatalf("unexpected event on the other conversation's feed: %T", evt)
	case <-time.After(200 * time.Millisecond):
	}

	// Releasing one tab's feed leaves the other live
	o.Unsubscribe("u1", withU2, tabA)
	req.NoError(o.Append(context.Background(), domain.SendMessage{
		Conversation: withU3, SenderID: "u3", ReceiverID: "u1", Body: "still live",
	}))
	snapshot = waitSnapshot(t, tabB)
	req.Equal([]string{"still live"}, repositories.Bodies(snapshot.Messages))
}
