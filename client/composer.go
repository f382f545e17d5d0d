package client

import (
	"context"
	"strings"
	"sync"

	"startuplink/contract"
	"startuplink/domain"
	"startuplink/errors"
)

// Composer is the draft buffer plus the send operation. The buffer clears
// only after the store confirms the append; a failed send keeps the text so
// the author can retry without retyping.
type Composer struct {
	mu     sync.Mutex
	store  contract.Store
	buffer string
}

func NewComposer(store contract.Store) *Composer {
	return &Composer{store: store}
}

func (c *Composer) SetText(text string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.buffer = text
}

func (c *Composer) Text() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.buffer
}

// Send appends the current draft to the conversation. All three
// preconditions are checked before the store is touched: an authenticated
// sender, a resolved conversation, and a non-empty trimmed draft. Any
// precondition failure or store error leaves the buffer untouched.
func (c *Composer) Send(ctx context.Context, selfID domain.Participant,
	id domain.ConversationID, peerID domain.Participant) error {
	c.mu.Lock()
	body := strings.TrimSpace(c.buffer)
	c.mu.Unlock()

	if selfID.IsZero() {
		return errors.ErrNotAuthenticated
	}
	if id.IsZero() {
		return errors.ErrNoConversation
	}
	if body == "" {
		return errors.ErrEmptyMessage
	}

	cmd := domain.SendMessage{
		Conversation: id,
		SenderID:     selfID,
		ReceiverID:   peerID,
		Body:         body,
	}
	if err := c.store.Append(ctx, cmd); err != nil {
		return err
	}

	c.mu.Lock()
	c.buffer = ""
	c.mu.Unlock()
	return nil
}
