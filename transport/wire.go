// Package transport exposes the messaging core over HTTP and WebSocket.
package transport

import (
	"time"

	"startuplink/domain"

	"github.com/samber/lo"
)

// wireMessage is the record shape clients see. Timestamp is epoch
// milliseconds (the client ordering key); createdAt is the store marker.
type wireMessage struct {
	ConversationID string    `json:"conversationId"`
	SenderID       string    `json:"senderId"`
	ReceiverID     string    `json:"receiverId"`
	Message        string    `json:"message"`
	Timestamp      int64     `json:"timestamp"`
	CreatedAt      time.Time `json:"createdAt"`
}

func toWire(m domain.Message) wireMessage {
	return wireMessage{
		ConversationID: m.Conversation.String(),
		SenderID:       m.SenderID.String(),
		ReceiverID:     m.ReceiverID.String(),
		Message:        m.Body,
		Timestamp:      m.SentAt.UnixMilli(),
		CreatedAt:      m.CreatedAt,
	}
}

func toWireList(messages []domain.Message) []wireMessage {
	return lo.Map(messages, func(m domain.Message, _ int) wireMessage {
		return toWire(m)
	})
}

// snapshotFrame is one WebSocket frame: the full conversation state.
type snapshotFrame struct {
	Type           string        `json:"type"`
	ConversationID string        `json:"conversationId"`
	Messages       []wireMessage `json:"messages"`
}
