package search

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"startuplink/domain"
	"startuplink/domain/event"

	"github.com/blugelabs/bluge"
	"github.com/stretchr/testify/require"
)

func openTestIndexer(t *testing.T) *Indexer {
	t.Helper()
	blugeCfg := bluge.DefaultConfig(t.TempDir())
	blugeWriter, err := bluge.OpenWriter(blugeCfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = blugeWriter.Close() })
	return NewIndexer(blugeWriter, slog.Default())
}

func TestIndexer_SearchScopedToConversation(t *testing.T) {
	req := require.New(t)
	indexer := openTestIndexer(t)
	now := time.Now().UTC()

	first, _ := domain.Resolve("u1", "u2")
	second, _ := domain.Resolve("u1", "u3")

	req.NoError(indexer.Index(domain.NewMessage(first, "u1", "u2", "the funding round closed", now)))
	req.NoError(indexer.Index(domain.NewMessage(first, "u2", "u1", "congrats on the round", now)))
	req.NoError(indexer.Index(domain.NewMessage(second, "u3", "u1", "our funding fell through", now)))

	hits, err := indexer.Search(context.Background(), "funding", first, 10)
	req.NoError(err)
	req.Len(hits, 1)
	req.Equal(first.String(), hits[0].Conversation)
	req.Equal("u1", hits[0].Sender)

	// Without a conversation scope both matches surface
	hits, err = indexer.Search(context.Background(), "funding", "", 10)
	req.NoError(err)
	req.Len(hits, 2)
}

func TestIndexer_ReindexDoesNotDuplicate(t *testing.T) {
	req := require.New(t)
	indexer := openTestIndexer(t)

	id, _ := domain.Resolve("u1", "u2")
	message := domain.NewMessage(id, "u1", "u2", "term sheet draft", time.Now().UTC())

	// Same stored event delivered twice
	req.NoError(indexer.Consume(context.Background(), event.MessageStored{Message: message}))
	req.NoError(indexer.Consume(context.Background(), event.MessageStored{Message: message}))

	hits, err := indexer.Search(context.Background(), "term sheet", id, 10)
	req.NoError(err)
	req.Len(hits, 1)
	req.Equal(message.ID.String(), hits[0].MessageID)
}

func TestIndexer_EmptyTermsShortCircuit(t *testing.T) {
	req := require.New(t)
	indexer := openTestIndexer(t)

	hits, err := indexer.Search(context.Background(), "   ", "", 10)
	req.NoError(err)
	req.Nil(hits)
}

func TestIndexer_IgnoresNonStoredEvents(t *testing.T) {
	req := require.New(t)
	indexer := openTestIndexer(t)
	id, _ := domain.Resolve("u1", "u2")

	req.NoError(indexer.Consume(context.Background(), event.Snapshot{Conversation: id}))

	hits, err := indexer.Search(context.Background(), "anything", id, 10)
	req.NoError(err)
	req.Empty(hits)
}
