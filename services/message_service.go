package services

import (
	"context"
	"strings"

	"startuplink/contract"
	"startuplink/domain"
	"startuplink/errors"
)

// IMessageService is the transport-facing surface of the messaging core.
// Callers speak in participant pairs; the service resolves the symmetric
// conversation identity so both sides always land in the same thread.
type IMessageService interface {
	Send(ctx context.Context, selfID, peerID domain.Participant, body string) error
	History(selfID, peerID domain.Participant) ([]domain.Message, error)
	OpenFeed(selfID, peerID domain.Participant, sink contract.EventSink) (domain.ConversationID, error)
	CloseFeed(selfID domain.Participant, id domain.ConversationID, sink contract.EventSink)
}

type MessageService struct {
	store contract.Store
}

func NewMessageService(store contract.Store) IMessageService {
	return &MessageService{store: store}
}

func (s *MessageService) Send(ctx context.Context, selfID, peerID domain.Participant, body string) error {
	if selfID.IsZero() {
		return errors.ErrNotAuthenticated
	}
	id, ok := domain.Resolve(selfID, peerID)
	if !ok {
		return errors.ErrNoConversation
	}
	if strings.TrimSpace(body) == "" {
		return errors.ErrEmptyMessage
	}
	return s.store.Append(ctx, domain.SendMessage{
		Conversation: id,
		SenderID:     selfID,
		ReceiverID:   peerID,
		Body:         body,
	})
}

func (s *MessageService) History(selfID, peerID domain.Participant) ([]domain.Message, error) {
	id, ok := domain.Resolve(selfID, peerID)
	if !ok {
		return nil, errors.ErrNoConversation
	}
	return s.store.Snapshot(id)
}

// OpenFeed subscribes the sink to the pair's conversation and returns its
// identity so the caller can later close the feed it opened.
func (s *MessageService) OpenFeed(selfID, peerID domain.Participant, sink contract.EventSink) (domain.ConversationID, error) {
	if selfID.IsZero() {
		return "", errors.ErrNotAuthenticated
	}
	id, ok := domain.Resolve(selfID, peerID)
	if !ok {
		return "", errors.ErrNoConversation
	}
	s.store.Subscribe(selfID, id, sink)
	return id, nil
}

// CloseFeed releases the feed that was opened with the given sink. Passing
// the sink back keeps a slow teardown from closing a newer feed on the
// same conversation.
func (s *MessageService) CloseFeed(selfID domain.Participant, id domain.ConversationID, sink contract.EventSink) {
	s.store.Unsubscribe(selfID, id, sink)
}
