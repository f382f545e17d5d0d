// Package search maintains a full-text index of stored messages. It hangs
// off the fanout as a permanent sink, so indexing never blocks an append.
package search

import (
	"context"
	"log/slog"
	"strings"

	"startuplink/contract"
	"startuplink/domain"
	"startuplink/domain/event"

	"github.com/blugelabs/bluge"
)

var _ contract.EventSink = (*Indexer)(nil)

type Indexer struct {
	writer *bluge.Writer
	log    *slog.Logger
}

func NewIndexer(writer *bluge.Writer, log *slog.Logger) *Indexer {
	return &Indexer{writer: writer, log: log}
}

// Consume indexes every stored message. Other event kinds pass through.
func (i *Indexer) Consume(_ context.Context, e event.DomainEvent) error {
	stored, ok := e.(event.MessageStored)
	if !ok {
		return nil
	}
	return i.Index(stored.Message)
}

// Index upserts one message document, keyed by message ID so re-delivery
// of the same event cannot duplicate a hit.
func (i *Indexer) Index(message domain.Message) error {
	doc := bluge.NewDocument(message.ID.String()).
		AddField(bluge.NewTextField("body", message.Body).StoreValue()).
		AddField(bluge.NewKeywordField("conversation", message.Conversation.String()).StoreValue()).
		AddField(bluge.NewKeywordField("sender", message.SenderID.String()).StoreValue())
	return i.writer.Update(doc.ID(), doc)
}

type Hit struct {
	MessageID    string `json:"messageId"`
	Conversation string `json:"conversationId"`
	Sender       string `json:"senderId"`
	Body         string `json:"message"`
}

// Search matches terms against message bodies, optionally scoped to one
// conversation. Results come back in relevance order.
func (i *Indexer) Search(ctx context.Context, terms string, conversation domain.ConversationID, limit int) ([]Hit, error) {
	terms = strings.TrimSpace(terms)
	if terms == "" {
		return nil, nil
	}

	reader, err := i.writer.Reader()
	if err != nil {
		return nil, err
	}
	defer reader.Close()

	query := bluge.NewBooleanQuery().
		AddMust(bluge.NewMatchQuery(terms).SetField("body"))
	if !conversation.IsZero() {
		query.AddMust(bluge.NewTermQuery(conversation.String()).SetField("conversation"))
	}

	it, err := reader.Search(ctx, bluge.NewTopNSearch(limit, query))
	if err != nil {
		return nil, err
	}

	var hits []Hit
	for {
		match, err := it.Next()
		if err != nil {
			return nil, err
		}
		if match == nil {
			break
		}

		var hit Hit
		err = match.VisitStoredFields(func(field string, value []byte) bool {
			switch field {
			case "_id":
				hit.MessageID = string(value)
			case "body":
				hit.Body = string(value)
			case "conversation":
				hit.Conversation = string(value)
			case "sender":
				hit.Sender = string(value)
			}
			return true
		})
		if err != nil {
			return nil, err
		}
		hits = append(hits, hit)
	}
	return hits, nil
}
