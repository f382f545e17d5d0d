package client

import (
	"context"
	"log/slog"
	"sync"

	"startuplink/auth"
	"startuplink/contract"
	"startuplink/domain"
	"startuplink/errors"
	"startuplink/projection"
)

// MessengerView is the stateful host of one direct-message screen. It tracks
// the authenticated identity through the auth notifier, resolves the
// conversation for the selected peer, and owns the subscription manager and
// composer for that conversation.
type MessengerView struct {
	mu            sync.Mutex
	log           *slog.Logger
	notifier      *auth.Notifier
	subscriptions *Manager
	composer      *Composer
	self          domain.Participant
	peer          domain.Participant
	conversation  domain.ConversationID
	cancelAuth    func()
}

func NewMessengerView(log *slog.Logger, store contract.Store, notifier *auth.Notifier) *MessengerView {
	return &MessengerView{
		log:           log,
		notifier:      notifier,
		subscriptions: NewManager(log, store),
		composer:      NewComposer(store),
	}
}

// Mount attaches the view to the auth state stream. A sign-out while mounted
// releases the live subscription immediately; a sign-in restores it when a
// peer is already selected.
func (v *MessengerView) Mount() {
	v.mu.Lock()
	mounted := v.cancelAuth != nil
	v.mu.Unlock()
	if mounted {
		return
	}

	// Listen fires the callback synchronously, so the lock cannot be held
	// across the registration.
	cancel := v.notifier.Listen(v.onIdentity)

	v.mu.Lock()
	v.cancelAuth = cancel
	v.mu.Unlock()
}

func (v *MessengerView) onIdentity(userID domain.Participant) {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.self = userID
	if userID.IsZero() {
		v.conversation = ""
		v.subscriptions.Release()
		return
	}
	if id, ok := domain.Resolve(v.self, v.peer); ok {
		v.conversation = id
		v.subscriptions.Switch(v.self, id)
	}
}

// SelectPeer resolves the conversation with the given peer and switches the
// live subscription to it. The returned timeline renders that conversation.
func (v *MessengerView) SelectPeer(peerID domain.Participant) (*projection.Timeline, error) {
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.self.IsZero() {
		return nil, errors.ErrNotAuthenticated
	}
	id, ok := domain.Resolve(v.self, peerID)
	if !ok {
		return nil, errors.ErrNoConversation
	}

	v.peer = peerID
	v.conversation = id
	return v.subscriptions.Switch(v.self, id), nil
}

// Send appends the composer draft to the current conversation.
func (v *MessengerView) Send(ctx context.Context) error {
	v.mu.Lock()
	self, id, peer := v.self, v.conversation, v.peer
	v.mu.Unlock()
	return v.composer.Send(ctx, self, id, peer)
}

func (v *MessengerView) Composer() *Composer {
	return v.composer
}

// Timeline returns the rendered message list of the active conversation.
func (v *MessengerView) Timeline() (*projection.Timeline, bool) {
	return v.subscriptions.Active()
}

func (v *MessengerView) Conversation() domain.ConversationID {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.conversation
}

// Unmount detaches from the auth stream and releases the live subscription.
// The draft buffer survives so remounting does not lose typed text.
func (v *MessengerView) Unmount() {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.cancelAuth != nil {
		v.cancelAuth()
		v.cancelAuth = nil
	}
	v.subscriptions.Release()
}
