package services

import (
	"context"
	"testing"

	"startuplink/domain"
	"startuplink/errors"
	"startuplink/mocks"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestMessageService_Send(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockStore := mocks.NewMockStore(ctrl)
	svc := NewMessageService(mockStore)

	t.Run("should resolve the same conversation from both sides", func(t *testing.T) {
		req := require.New(t)
		expected, _ := domain.Resolve("u1", "u2")

		mockStore.EXPECT().
			Append(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, cmd domain.SendMessage) error {
				req.Equal(expected, cmd.Conversation)
				return nil
			}).
			Times(2)

		req.NoError(svc.Send(context.Background(), "u1", "u2", "hello"))
		req.NoError(svc.Send(context.Background(), "u2", "u1", "hello back"))
	})

	t.Run("should reject unauthenticated senders before touching the store", func(t *testing.T) {
		req := require.New(t)
		mockStore.EXPECT().Append(gomock.Any(), gomock.Any()).Times(0)

		err := svc.Send(context.Background(), "", "u2", "hello")
		req.ErrorIs(err, errors.ErrNotAuthenticated)
	})

	t.Run("should reject an unresolvable peer", func(t *testing.T) {
		req := require.New(t)
		mockStore.EXPECT().Append(gomock.Any(), gomock.Any()).Times(0)

		err := svc.Send(context.Background(), "u1", "  ", "hello")
		req.ErrorIs(err, errors.ErrNoConversation)
	})

	t.Run("should reject a whitespace-only body before touching the store", func(t *testing.T) {
		req := require.New(t)
		mockStore.EXPECT().Append(gomock.Any(), gomock.Any()).Times(0)

		err := svc.Send(context.Background(), "u1", "u2", "   \n")
		req.ErrorIs(err, errors.ErrEmptyMessage)
	})
}

func TestMessageService_Feeds(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockStore := mocks.NewMockStore(ctrl)
	mockSink := mocks.NewMockEventSink(ctrl)
	svc := NewMessageService(mockStore)

	t.Run("should open and close a feed on the resolved conversation", func(t *testing.T) {
		req := require.New(t)
		expected, _ := domain.Resolve("u1", "u2")

		mockStore.EXPECT().Subscribe(domain.Participant("u1"), expected, mockSink).Times(1)
		mockStore.EXPECT().Unsubscribe(domain.Participant("u1"), expected, mockSink).Times(1)

		id, err := svc.OpenFeed("u1", "u2", mockSink)
		req.NoError(err)
		req.Equal(expected, id)

		svc.CloseFeed("u1", id, mockSink)
	})

	t.Run("should refuse a feed without identity", func(t *testing.T) {
		req := require.New(t)

		_, err := svc.OpenFeed("", "u2", mockSink)
		req.ErrorIs(err, errors.ErrNotAuthenticated)
	})
}
