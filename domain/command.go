package domain

import "time"

type Command interface {
	ConversationID() ConversationID
}

// SendMessage carries one append intent through the store pipeline.
type SendMessage struct {
	Conversation ConversationID
	SenderID     Participant
	ReceiverID   Participant
	Body         string
	SentAt       time.Time
}

func (s SendMessage) ConversationID() ConversationID {
	return s.Conversation
}
