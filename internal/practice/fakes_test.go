package practice

import (
	"sync"

	"github.com/example/vocadrill/pkg/models"
)

// fakeStore is an in-memory Store used across the package tests. It keeps
// the same one-row-per-owner semantics as the real repository.
type fakeStore struct {
	mu      sync.Mutex
	session *models.PracticeSession

	createErr error
	getErr    error
	updateErr error
	removeErr error

	creates int
	updates int
	removes int
}

func (f *fakeStore) Get(userID int64) (*models.PracticeSession, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.getErr != nil {
		return nil, f.getErr
	}
	if f.session == nil || f.session.UserID != userID {
		return nil, nil
	}
	copied := *f.session
	copied.Queue = append([]models.Word(nil), f.session.Queue...)
	return &copied, nil
}

func (f *fakeStore) Create(session *models.PracticeSession) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.creates++
	if f.createErr != nil {
		return f.createErr
	}
	copied := *session
	copied.Queue = append([]models.Word(nil), session.Queue...)
	f.session = &copied
	return nil
}

func (f *fakeStore) Update(userID int64, queue []models.Word, progress models.Progress) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.updates++
	if f.updateErr != nil {
		return f.updateErr
	}
	if f.session == nil {
		return nil
	}
	f.session.Queue = append([]models.Word(nil), queue...)
	f.session.Progress = progress
	return nil
}

func (f *fakeStore) Remove(userID int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.removes++
	if f.removeErr != nil {
		return f.removeErr
	}
	f.session = nil
	return nil
}

// fakeWords serves a fixed word set for any selector
type fakeWords struct {
	words        []models.Word
	requestedIDs []int64
}

func (f *fakeWords) GetByUnits(unitIDs []int64, userID int64) ([]models.Word, error) {
	f.requestedIDs = unitIDs
	if len(unitIDs) == 0 {
		return []models.Word{}, nil
	}
	return f.words, nil
}

func (f *fakeWords) GetAllForUser(userID int64) ([]models.Word, error) {
	return f.words, nil
}
