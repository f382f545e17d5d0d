// Package client hosts the view-side state of a direct-message session:
// the single live subscription, the draft buffer, and the messenger view
// that ties them to the authenticated identity.
package client

import (
	"log/slog"
	"sync"

	"startuplink/contract"
	"startuplink/domain"
	"startuplink/projection"
)

// Manager holds at most one live store subscription. Switching conversations
// always releases the previous handle before opening the next one, so a view
// never receives snapshots for a conversation it left.
type Manager struct {
	mu     sync.Mutex
	log    *slog.Logger
	store  contract.Store
	self   domain.Participant
	active *projection.Timeline
}

func NewManager(log *slog.Logger, store contract.Store) *Manager {
	return &Manager{log: log, store: store}
}

// Switch tears down the current subscription, if any, and opens a fresh one
// for the given conversation. The returned timeline is seeded with the
// current snapshot by the store and updated on every subsequent append.
func (m *Manager) Switch(selfID domain.Participant, id domain.ConversationID) *projection.Timeline {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.releaseLocked()

	timeline := projection.NewTimeline(id)
	m.store.Subscribe(selfID, id, timeline)
	m.self = selfID
	m.active = timeline
	m.log.Debug("Subscription switched", "conversation", id)
	return timeline
}

// Active returns the timeline of the live subscription, if one exists.
func (m *Manager) Active() (*projection.Timeline, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.active, m.active != nil
}

// Release tears down the live subscription. Safe to call repeatedly; every
// teardown path (peer switch, sign-out, unmount) funnels through here.
func (m *Manager) Release() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.releaseLocked()
}

func (m *Manager) releaseLocked() {
	if m.active == nil {
		return
	}
	m.store.Unsubscribe(m.self, m.active.Conversation(), m.active)
	m.log.Debug("Subscription released", "conversation", m.active.Conversation())
	m.active = nil
	m.self = ""
}
