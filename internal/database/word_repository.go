package database

import (
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/example/vocadrill/pkg/models"
)

// WordRepository handles database operations for words
type WordRepository struct{}

// NewWordRepository creates a new repository instance
func NewWordRepository() *WordRepository {
	return &WordRepository{}
}

// GetByUnit returns the words of one unit, verifying the unit belongs to
// the given user.
func (r *WordRepository) GetByUnit(unitID, userID int64) ([]models.Word, error) {
	words := []models.Word{}

	query := DB.Rebind(`
		SELECT w.id, w.unit_id, w.en, w.ru
		FROM words w
		JOIN units u ON w.unit_id = u.id
		WHERE w.unit_id = ? AND u.user_id = ?
	`)

	if err := DB.Select(&words, query, unitID, userID); err != nil {
		return nil, fmt.Errorf("failed to get words by unit: %w", err)
	}
	return words, nil
}

// GetByUnits returns the union of words across the given units, filtered by
// ownership. An empty id set yields an empty result, not an error.
func (r *WordRepository) GetByUnits(unitIDs []int64, userID int64) ([]models.Word, error) {
	words := []models.Word{}
	if len(unitIDs) == 0 {
		return words, nil
	}

	query, args, err := sqlx.In(`
		SELECT w.id, w.unit_id, w.en, w.ru
		FROM words w
		JOIN units u ON w.unit_id = u.id
		WHERE w.unit_id IN (?) AND u.user_id = ?
	`, unitIDs, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to build words query: %w", err)
	}

	if err := DB.Select(&words, DB.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("failed to get words by units: %w", err)
	}
	return words, nil
}

// GetAllForUser returns every word across all units owned by the user
func (r *WordRepository) GetAllForUser(userID int64) ([]models.Word, error) {
	words := []models.Word{}

	query := DB.Rebind(`
		SELECT w.id, w.unit_id, w.en, w.ru
		FROM words w
		JOIN units u ON w.unit_id = u.id
		WHERE u.user_id = ?
	`)

	if err := DB.Select(&words, query, userID); err != nil {
		return nil, fmt.Errorf("failed to get words for user: %w", err)
	}
	return words, nil
}

// CreateBatch inserts imported words into a unit in a single transaction
func (r *WordRepository) CreateBatch(unitID int64, words []models.Word) error {
	tx, err := DB.Beginx()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := tx.Rebind("INSERT INTO words (unit_id, en, ru) VALUES (?, ?, ?)")
	for _, w := range words {
		if _, err := tx.Exec(query, unitID, w.English, w.Translation); err != nil {
			return fmt.Errorf("failed to insert word: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit words: %w", err)
	}
	return nil
}
