package event

import (
	"time"

	"startuplink/domain"

	"github.com/google/uuid"
)

type DomainEvent interface {
	ConversationID() domain.ConversationID
}

// MessageDrafted is the accepted append, mask already applied, emitted to
// telemetry before the store has persisted it.
type MessageDrafted struct {
	ID           uuid.UUID
	Conversation domain.ConversationID
	SenderID     domain.Participant
	ReceiverID   domain.Participant
	Body         string
	SentAt       time.Time
}

func (m MessageDrafted) ConversationID() domain.ConversationID {
	return m.Conversation
}

// MessageStored fires once the store has durably appended the record and
// assigned its creation marker.
type MessageStored struct {
	Message domain.Message
}

func (m MessageStored) ConversationID() domain.ConversationID {
	return m.Message.Conversation
}

// Snapshot is the full current ordered result set for one conversation's
// live query. Subscribers replace their rendered sequence with it wholesale.
type Snapshot struct {
	Conversation domain.ConversationID
	Messages     []domain.Message
}

func (s Snapshot) ConversationID() domain.ConversationID {
	return s.Conversation
}
