// Package domain contains core concepts of the messaging system.
// This file defines Message records and related rules.
// Messages are immutable and validated by the domain.
package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Message represents an immutable direct message. SentAt carries the
// sender's clock at millisecond precision; CreatedAt is assigned by the
// store on append and is zero until then.
type Message struct {
	ID           uuid.UUID
	Conversation ConversationID
	SenderID     Participant
	ReceiverID   Participant
	Body         string
	SentAt       time.Time
	CreatedAt    time.Time
}

// NewMessage builds the record the composer appends to the store. The body
// is trimmed here once; an empty result is rejected upstream.
func NewMessage(conversation ConversationID, sender, receiver Participant, body string, sentAt time.Time) Message {
	return Message{
		ID:           uuid.New(),
		Conversation: conversation,
		SenderID:     sender,
		ReceiverID:   receiver,
		Body:         strings.TrimSpace(body),
		SentAt:       sentAt.Truncate(time.Millisecond),
	}
}
