package repositories

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestStartupRepository_SaveAssignsID(t *testing.T) {
	req := require.New(t)
	db := openTestDB(t)
	repo := NewStartupRepository(db)

	saved, err := repo.Save(StartupProfile{Name: "Fermentis", OwnerID: "u1"})
	req.NoError(err)
	req.NotEmpty(saved.ID)

	fetched, err := repo.Get(saved.ID)
	req.NoError(err)
	req.Equal("Fermentis", fetched.Name)
	req.Equal("u1", fetched.OwnerID)
}

func TestStartupRepository_SaveIsUpsert(t *testing.T) {
	req := require.New(t)
	db := openTestDB(t)
	repo := NewStartupRepository(db)

	saved, err := repo.Save(StartupProfile{Name: "Fermentis"})
	req.NoError(err)

	saved.Pitch = "precision fermentation tooling"
	again, err := repo.Save(saved)
	req.NoError(err)
	req.Equal(saved.ID, again.ID)

	profiles, err := repo.List()
	req.NoError(err)
	req.Len(profiles, 1)
	req.Equal("precision fermentation tooling", profiles[0].Pitch)
}

func TestStartupRepository_ListEmpty(t *testing.T) {
	req := require.New(t)
	db := openTestDB(t)
	repo := NewStartupRepository(db)

	profiles, err := repo.List()
	req.NoError(err)
	req.Empty(profiles)
}
