//go:generate go run go.uber.org/mock/mockgen -source=startup.go -destination=../mocks/mock_startup_repository.go -package=mocks
package repositories

import (
	"encoding/json"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"
)

type IStartupRepository interface {
	Save(profile StartupProfile) (StartupProfile, error)
	Get(id string) (StartupProfile, error)
	List() ([]StartupProfile, error)
}

// StartupProfile is a directory entry: one startup pitched by a member.
// Score and Language are derived at save time by the directory service.
type StartupProfile struct {
	ID            string    `json:"id"`
	OwnerID       string    `json:"ownerId"`
	Name          string    `json:"name"`
	Pitch         string    `json:"pitch"`
	Founders      []string  `json:"founders"`
	Opportunities []string  `json:"opportunities"`
	ValueProps    []string  `json:"valueProps"`
	RevenueModels []string  `json:"revenueModels"`
	Competitors   []string  `json:"competitors"`
	Risks         []string  `json:"risks"`
	Language      string    `json:"language"`
	Score         int       `json:"score"`
	CreatedAt     time.Time `json:"createdAt"`
}

type StartupRepository struct {
	db *badger.DB
}

func NewStartupRepository(db *badger.DB) IStartupRepository {
	return &StartupRepository{db: db}
}

func (s StartupRepository) Save(profile StartupProfile) (StartupProfile, error) {
	if profile.ID == "" {
		profile.ID = uuid.New().String()
	}
	data, err := json.Marshal(profile)
	if err != nil {
		return StartupProfile{}, err
	}
	err = s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte("startup:"+profile.ID), data)
	})
	if err != nil {
		return StartupProfile{}, err
	}
	return profile, nil
}

func (s StartupRepository) Get(id string) (StartupProfile, error) {
	var profile StartupProfile
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte("startup:" + id))
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &profile)
		})
	})
	return profile, err
}

func (s StartupRepository) List() ([]StartupProfile, error) {
	var profiles []StartupProfile
	err := s.db.View(func(txn *badger.Txn) error {
		prefix := []byte("startup:")
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			err := it.Item().Value(func(val []byte) error {
				var profile StartupProfile
				if err := json.Unmarshal(val, &profile); err != nil {
					return err
				}
				profiles = append(profiles, profile)
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	return profiles, err
}
