package auth

import (
	"sync"

	"startuplink/domain"
)

// IdentityListener receives the current authenticated participant, or the
// zero Participant when the session ended.
type IdentityListener func(userID domain.Participant)

// Notifier is the process-local authentication state stream. Views register
// on mount and cancel on unmount; the listener fires immediately with the
// current identity so late subscribers do not miss the sign-in that already
// happened.
type Notifier struct {
	mu        sync.Mutex
	current   domain.Participant
	next      int
	listeners map[int]IdentityListener
}

func NewNotifier() *Notifier {
	return &Notifier{listeners: make(map[int]IdentityListener)}
}

// Set publishes a new authenticated identity to all listeners.
func (n *Notifier) Set(userID domain.Participant) {
	n.mu.Lock()
	n.current = userID
	listeners := make([]IdentityListener, 0, len(n.listeners))
	for _, fn := range n.listeners {
		listeners = append(listeners, fn)
	}
	n.mu.Unlock()

	for _, fn := range listeners {
		fn(userID)
	}
}

// Clear publishes the end of the session.
func (n *Notifier) Clear() {
	n.Set("")
}

func (n *Notifier) Current() domain.Participant {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.current
}

// Listen registers fn and invokes it once with the current identity. The
// returned cancel must be called on teardown or the listener leaks.
func (n *Notifier) Listen(fn IdentityListener) (cancel func()) {
	n.mu.Lock()
	id := n.next
	n.next++
	n.listeners[id] = fn
	current := n.current
	n.mu.Unlock()

	fn(current)

	return func() {
		n.mu.Lock()
		defer n.mu.Unlock()
		delete(n.listeners, id)
	}
}
