package practice

import (
	"errors"
	"fmt"
	"math/rand"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/example/vocadrill/internal/database"
	"github.com/example/vocadrill/pkg/models"
)

// SelectorAll drills every unit the user owns
const SelectorAll = "all"

// ErrNoWords is returned when a selector resolves to zero words
var ErrNoWords = errors.New("no words to practice")

// Store is the persistence contract for practice sessions. It is satisfied
// by database.SessionRepository.
type Store interface {
	Get(userID int64) (*models.PracticeSession, error)
	Create(session *models.PracticeSession) error
	Update(userID int64, queue []models.Word, progress models.Progress) error
	Remove(userID int64) error
}

// WordSource supplies the words a selector resolves to. It is satisfied by
// database.WordRepository.
type WordSource interface {
	GetByUnits(unitIDs []int64, userID int64) ([]models.Word, error)
	GetAllForUser(userID int64) ([]models.Word, error)
}

// Initializer builds new practice sessions from a unit selector
type Initializer struct {
	words WordSource
	store Store
}

// NewInitializer creates an initializer over the given sources
func NewInitializer(words WordSource, store Store) *Initializer {
	return &Initializer{words: words, store: store}
}

// StartOrResume returns the user's session for the selector, resuming an
// existing one when its selector matches and building a fresh shuffled
// queue otherwise. The second return value reports whether the session was
// resumed.
func (ini *Initializer) StartOrResume(userID int64, selector string) (*models.PracticeSession, bool, error) {
	existing, err := ini.store.Get(userID)
	if err != nil {
		return nil, false, fmt.Errorf("failed to fetch existing session: %w", err)
	}
	if existing != nil {
		if existing.UnitIDs == selector {
			return existing, true, nil
		}
		// A session for a different selector is abandoned in place;
		// starting a new drill replaces it.
		if err := ini.store.Remove(userID); err != nil {
			return nil, false, fmt.Errorf("failed to replace session: %w", err)
		}
	}

	session, err := ini.Start(userID, selector)
	if err != nil {
		return nil, false, err
	}
	return session, false, nil
}

// Start resolves the selector, shuffles the words uniformly and persists a
// new session. Returns ErrNoWords when the selector yields nothing.
func (ini *Initializer) Start(userID int64, selector string) (*models.PracticeSession, error) {
	words, err := ini.resolve(userID, selector)
	if err != nil {
		return nil, err
	}
	if len(words) == 0 {
		return nil, ErrNoWords
	}

	rnd := rand.New(rand.NewSource(time.Now().UnixNano()))
	shuffle(words, rnd)

	session := &models.PracticeSession{
		ID:       uuid.New().String(),
		UserID:   userID,
		UnitIDs:  selector,
		Queue:    words,
		Progress: models.Progress{Total: len(words), Done: 0},
	}

	err = ini.store.Create(session)
	if errors.Is(err, database.ErrSessionExists) {
		// Lost a create race against another tab; adopt its session.
		existing, getErr := ini.store.Get(userID)
		if getErr == nil && existing != nil {
			return existing, nil
		}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	return session, nil
}

// resolve turns a selector into the concrete word set
func (ini *Initializer) resolve(userID int64, selector string) ([]models.Word, error) {
	if strings.TrimSpace(selector) == SelectorAll {
		return ini.words.GetAllForUser(userID)
	}
	return ini.words.GetByUnits(ParseUnitIDs(selector), userID)
}

// ParseUnitIDs parses a comma-joined selector, dropping non-numeric parts
// instead of failing the whole request.
func ParseUnitIDs(selector string) []int64 {
	ids := []int64{}
	for _, part := range strings.Split(selector, ",") {
		id, err := strconv.ParseInt(strings.TrimSpace(part), 10, 64)
		if err != nil {
			continue
		}
		ids = append(ids, id)
	}
	return ids
}

// shuffle is a uniform Fisher-Yates permutation
func shuffle(words []models.Word, rnd *rand.Rand) {
	rnd.Shuffle(len(words), func(i, j int) {
		words[i], words[j] = words[j], words[i]
	})
}
