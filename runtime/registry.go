package runtime

import (
	"sync"

	"startuplink/contract"
	"startuplink/domain"
)

// Registry tracks which live sinks must receive a conversation's snapshots.
// It is the push half of the store's live-query surface: the fanout worker
// asks it where snapshots must go.
//
// Feeds are keyed by (participant, conversation), never by participant
// alone: one user may hold feeds on several conversations at once (a second
// tab, a reconnect overlapping its predecessor), and a feed on one
// conversation must never receive another conversation's snapshots.
type Registry struct {
	mu    sync.RWMutex
	feeds map[domain.ConversationID]map[domain.Participant]contract.EventSink
}

func NewRegistry() *Registry {
	return &Registry{
		feeds: make(map[domain.ConversationID]map[domain.Participant]contract.EventSink),
	}
}

// GetSinksForConversation resolves the conversation's live feeds. A member
// without one is simply skipped; their messages wait in the store until
// they subscribe again. Returns nil when nobody is listening.
func (r *Registry) GetSinksForConversation(id domain.ConversationID) []contract.EventSink {
	r.mu.RLock()
	defer r.mu.RUnlock()

	members, ok := r.feeds[id]
	if !ok {
		return nil
	}
	var sinks []contract.EventSink
	for _, sink := range members {
		sinks = append(sinks, sink)
	}
	return sinks
}

// Subscribe registers a participant's live sink for one conversation.
// Re-subscribing the same pair replaces the sink, so a reconnecting feed
// takes over delivery the moment it registers.
func (r *Registry) Subscribe(participantID domain.Participant, id domain.ConversationID, sink contract.EventSink) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.feeds[id]; !ok {
		r.feeds[id] = make(map[domain.Participant]contract.EventSink)
	}
	r.feeds[id][participantID] = sink
}

// Unsubscribe releases one feed, but only while the pair still maps to the
// sink being released. A stale teardown (the old socket of a reconnect
// closing after its replacement subscribed) is a no-op and cannot kill the
// live successor. Empty membership sets are removed so a long-running
// process does not accumulate dead conversations.
func (r *Registry) Unsubscribe(participantID domain.Participant, id domain.ConversationID, sink contract.EventSink) {
	r.mu.Lock()
	defer r.mu.Unlock()

	members, ok := r.feeds[id]
	if !ok {
		return
	}
	if current, exists := members[participantID]; !exists || current != sink {
		return
	}
	delete(members, participantID)
	if len(members) == 0 {
		delete(r.feeds, id)
	}
}

// ActiveSessions reports how many feeds are currently registered.
func (r *Registry) ActiveSessions() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	total := 0
	for _, members := range r.feeds {
		total += len(members)
	}
	return total
}

// ActiveConversations reports how many conversations have live feeds.
func (r *Registry) ActiveConversations() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.feeds)
}
