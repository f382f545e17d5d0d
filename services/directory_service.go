package services

import (
	"time"

	"startuplink/directory"
	"startuplink/domain"
	"startuplink/errors"
	"startuplink/repositories"
)

type IDirectoryService interface {
	Publish(ownerID domain.Participant, profile repositories.StartupProfile) (repositories.StartupProfile, error)
	Get(id string) (repositories.StartupProfile, error)
	List() ([]repositories.StartupProfile, error)
}

// DirectoryService enriches startup profiles before publication: it stamps
// the owner, detects the pitch language and derives the directory score.
type DirectoryService struct {
	startupRepository repositories.IStartupRepository
}

func NewDirectoryService(repo repositories.IStartupRepository) IDirectoryService {
	return &DirectoryService{startupRepository: repo}
}

func (s *DirectoryService) Publish(ownerID domain.Participant, profile repositories.StartupProfile) (repositories.StartupProfile, error) {
	if ownerID.IsZero() {
		return repositories.StartupProfile{}, errors.ErrNotAuthenticated
	}

	profile.OwnerID = ownerID.String()
	profile.Language = directory.DetectLanguage(profile.Pitch)
	profile.Score = directory.Score(profile)
	if profile.CreatedAt.IsZero() {
		profile.CreatedAt = time.Now().UTC()
	}

	return s.startupRepository.Save(profile)
}

func (s *DirectoryService) Get(id string) (repositories.StartupProfile, error) {
	return s.startupRepository.Get(id)
}

func (s *DirectoryService) List() ([]repositories.StartupProfile, error) {
	return s.startupRepository.List()
}
