//go:generate go run go.uber.org/mock/mockgen -source=message.go -destination=../mocks/mock_message_repository.go -package=mocks
package repositories

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"startuplink/domain"

	"github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"
	"github.com/samber/lo"
)

type IMessageRepository interface {
	Append(message domain.Message) (domain.Message, error)
	Conversation(id domain.ConversationID) ([]domain.Message, error)
}

type MessageRepository struct {
	db          *badger.DB
	log         *slog.Logger
	snapshotCap *int
	nowFn       func() time.Time
}

// NewMessageRepository wires the Badger-backed message store. snapshotCap
// bounds how many records a single snapshot load returns (nil = unbounded).
func NewMessageRepository(db *badger.DB, log *slog.Logger, snapshotCap *int) *MessageRepository {
	return &MessageRepository{db: db, log: log, snapshotCap: snapshotCap, nowFn: time.Now}
}

// diskMessage is the JSON record written to Badger. Field names follow the
// wire shape shared with the web client.
type diskMessage struct {
	ID             string `json:"id"`
	ConversationID string `json:"conversationId"`
	SenderID       string `json:"senderId"`
	ReceiverID     string `json:"receiverId"`
	Message        string `json:"message"`
	Timestamp      int64  `json:"timestamp"` // client clock, unix ms
	CreatedAt      int64  `json:"createdAt"` // store clock, unix ns
}

// Append persists a message and stamps its creation marker.
// The key is formatted as "dm:{conversation}:{timestamp_padded}:{uuid}" to:
//  1. Ensure chronological sorting using 13-digit zero padding of the client
//     timestamp (lexicographical order equals ascending time).
//  2. Prevent data loss by using the UUID as a collision disconnector when
//     two messages carry the same millisecond, which also fixes tie order.
func (m *MessageRepository) Append(message domain.Message) (domain.Message, error) {
	message.CreatedAt = m.nowFn().UTC()
	key := conversationKey(message.Conversation, message.SentAt, message.ID)
	bytes, err := json.Marshal(fromMessage(message))
	if err != nil {
		return domain.Message{}, err
	}
	err = m.db.Update(func(txn *badger.Txn) error {
		return txn.Set(key, bytes)
	})
	if err != nil {
		return domain.Message{}, err
	}
	return message, nil
}

// Conversation loads the full ordered snapshot for one conversation using a
// prefix scan. Thanks to the padded timestamp in the key, records come back
// already sorted ascending; no re-sort happens here or anywhere downstream.
func (m *MessageRepository) Conversation(id domain.ConversationID) ([]domain.Message, error) {
	var rawRecords [][]byte
	err := m.db.View(func(txn *badger.Txn) error {
		prefix := []byte(fmt.Sprintf("dm:%s:", id))
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()

		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			if m.snapshotCap != nil && len(rawRecords) == *m.snapshotCap {
				m.log.Debug(fmt.Sprintf("Snapshot cap of %d records reached", *m.snapshotCap))
				break
			}
			err := it.Item().Value(func(value []byte) error {
				rawRecords = append(rawRecords, append([]byte(nil), value...))
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	messages := make([]domain.Message, 0, len(rawRecords))
	for _, raw := range rawRecords {
		var record diskMessage
		if err = json.Unmarshal(raw, &record); err != nil {
			return nil, err
		}
		message, err := toMessage(record)
		if err != nil {
			return nil, err
		}
		messages = append(messages, message)
	}
	return messages, nil
}

func conversationKey(id domain.ConversationID, sentAt time.Time, msgID uuid.UUID) []byte {
	return []byte(fmt.Sprintf("dm:%s:%013d:%s", id, sentAt.UnixMilli(), msgID))
}

func fromMessage(message domain.Message) diskMessage {
	return diskMessage{
		ID:             message.ID.String(),
		ConversationID: message.Conversation.String(),
		SenderID:       message.SenderID.String(),
		ReceiverID:     message.ReceiverID.String(),
		Message:        message.Body,
		Timestamp:      message.SentAt.UnixMilli(),
		CreatedAt:      message.CreatedAt.UnixNano(),
	}
}

func toMessage(record diskMessage) (domain.Message, error) {
	parsedID, err := uuid.Parse(record.ID)
	if err != nil {
		return domain.Message{}, err
	}
	return domain.Message{
		ID:           parsedID,
		Conversation: domain.ConversationID(record.ConversationID),
		SenderID:     domain.Participant(record.SenderID),
		ReceiverID:   domain.Participant(record.ReceiverID),
		Body:         record.Message,
		SentAt:       time.UnixMilli(record.Timestamp).UTC(),
		CreatedAt:    time.Unix(0, record.CreatedAt).UTC(),
	}, nil
}

// Bodies is a convenience for tests and the viewer CLI.
func Bodies(messages []domain.Message) []string {
	return lo.Map(messages, func(item domain.Message, _ int) string {
		return item.Body
	})
}
