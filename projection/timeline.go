// Package projection builds local render state from observed events.
// It handles snapshot replacement and cursor tracking only; it does not
// emit events or talk to the store.
package projection

import (
	"context"
	"sync"

	"startuplink/contract"
	"startuplink/domain"
	"startuplink/domain/event"
)

var _ contract.EventSink = (*Timeline)(nil)

// Timeline is the rendered message list for exactly one conversation. It is
// owned by the active subscription; nothing else may mutate it. Every
// snapshot replaces the sequence wholesale (the store guarantees ordering,
// so no re-sort happens here) and the cursor moves to the newest entry,
// matching the scroll-to-latest behavior of the hosting view.
type Timeline struct {
	mu           sync.RWMutex
	conversation domain.ConversationID
	messages     []domain.Message
	cursor       int
	onUpdate     func(event.Snapshot)
}

func NewTimeline(conversation domain.ConversationID) *Timeline {
	return &Timeline{conversation: conversation, cursor: -1}
}

// OnUpdate registers a render callback fired after each applied snapshot.
func (t *Timeline) OnUpdate(fn func(event.Snapshot)) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.onUpdate = fn
}

func (t *Timeline) Consume(_ context.Context, e event.DomainEvent) error {
	snapshot, ok := e.(event.Snapshot)
	if !ok || snapshot.Conversation != t.conversation {
		// Events for other conversations indicate a leaked subscription;
		// they are ignored rather than rendered.
		return nil
	}

	t.mu.Lock()
	t.messages = snapshot.Messages
	t.cursor = len(snapshot.Messages) - 1
	fn := t.onUpdate
	t.mu.Unlock()

	if fn != nil {
		fn(snapshot)
	}
	return nil
}

func (t *Timeline) Conversation() domain.ConversationID {
	return t.conversation
}

// Messages returns a copy of the rendered sequence.
func (t *Timeline) Messages() []domain.Message {
	t.mu.RLock()
	defer t.mu.RUnlock()
	out := make([]domain.Message, len(t.messages))
	copy(out, t.messages)
	return out
}

func (t *Timeline) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.messages)
}

// Newest returns the entry under the cursor, i.e. what the view scrolled to.
func (t *Timeline) Newest() (domain.Message, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	if t.cursor < 0 || t.cursor >= len(t.messages) {
		return domain.Message{}, false
	}
	return t.messages[t.cursor], true
}
