package client

import (
	"context"
	"log/slog"
	"testing"

	"startuplink/auth"
	"startuplink/domain"
	"startuplink/errors"

	"github.com/stretchr/testify/require"
)

func TestMessengerView_SelectPeerRequiresAuth(t *testing.T) {
	req := require.New(t)
	store := newFakeStore()
	view := NewMessengerView(slog.Default(), store, auth.NewNotifier())
	view.Mount()
	defer view.Unmount()

	_, err := view.SelectPeer("u2")
	req.ErrorIs(err, errors.ErrNotAuthenticated)
	req.Zero(store.activeCount())
}

func TestMessengerView_SelectPeerOpensSubscription(t *testing.T) {
	req := require.New(t)
	store := newFakeStore()
	notifier := auth.NewNotifier()
	view := NewMessengerView(slog.Default(), store, notifier)
	view.Mount()
	defer view.Unmount()

	notifier.Set("u1")
	timeline, err := view.SelectPeer("u2")
	req.NoError(err)

	expected, _ := domain.Resolve("u1", "u2")
	req.Equal(expected, timeline.Conversation())
	req.Equal(expected, view.Conversation())
	req.Equal(1, store.activeCount())
}

func TestMessengerView_SignOutReleasesSubscription(t *testing.T) {
	req := require.New(t)
	store := newFakeStore()
	notifier := auth.NewNotifier()
	view := NewMessengerView(slog.Default(), store, notifier)
	view.Mount()
	defer view.Unmount()

	notifier.Set("u1")
	_, err := view.SelectPeer("u2")
	req.NoError(err)

	notifier.Clear()
	req.Zero(store.activeCount())

	// Sending after sign-out is a no-op
	view.Composer().SetText("hello")
	req.ErrorIs(view.Send(context.Background()), errors.ErrNotAuthenticated)
	req.Empty(store.appends)
}

func TestMessengerView_SignInRestoresSelectedPeer(t *testing.T) {
	req := require.New(t)
	store := newFakeStore()
	notifier := auth.NewNotifier()
	view := NewMessengerView(slog.Default(), store, notifier)
	view.Mount()
	defer view.Unmount()

	notifier.Set("u1")
	_, err := view.SelectPeer("u2")
	req.NoError(err)
	notifier.Clear()
	req.Zero(store.activeCount())

	notifier.Set("u1")
	req.Equal(1, store.activeCount())
	expected, _ := domain.Resolve("u1", "u2")
	req.Equal(expected, view.Conversation())
}

func TestMessengerView_UnmountReleasesEverything(t *testing.T) {
	req := require.New(t)
	store := newFakeStore()
	notifier := auth.NewNotifier()
	view := NewMessengerView(slog.Default(), store, notifier)
	view.Mount()

	notifier.Set("u1")
	_, err := view.SelectPeer("u2")
	req.NoError(err)

	view.Unmount()
	req.Zero(store.activeCount())

	// Identity changes after unmount no longer reach the view
	notifier.Set("u9")
	req.Zero(store.activeCount())
}

func TestMessengerView_SendGoesToActiveConversation(t *testing.T) {
	req := require.New(t)
	store := newFakeStore()
	notifier := auth.NewNotifier()
	view := NewMessengerView(slog.Default(), store, notifier)
	view.Mount()
	defer view.Unmount()

	notifier.Set("u1")
	_, err := view.SelectPeer("u2")
	req.NoError(err)

	view.Composer().SetText("pitch deck attached")
	req.NoError(view.Send(context.Background()))

	req.Len(store.appends, 1)
	expected, _ := domain.Resolve("u1", "u2")
	req.Equal(expected, store.appends[0].Conversation)
	req.Empty(view.Composer().Text())
}
