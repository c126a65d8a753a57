package database

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/example/vocadrill/pkg/models"
)

var (
	// ErrSessionExists is returned by Create when the owner already has a session
	ErrSessionExists = errors.New("session already exists")
	// ErrSessionNotFound is returned by Update when the owner has no session
	ErrSessionNotFound = errors.New("session not found")
)

// SessionRepository handles database operations for practice sessions.
// There is at most one session row per user; the user_id primary key
// enforces that at the storage layer.
type SessionRepository struct{}

// NewSessionRepository creates a new repository instance
func NewSessionRepository() *SessionRepository {
	return &SessionRepository{}
}

// Get returns the user's active session, or nil when there is none.
func (r *SessionRepository) Get(userID int64) (*models.PracticeSession, error) {
	var (
		session   models.PracticeSession
		queueJSON string
	)

	query := DB.Rebind(`
		SELECT id, user_id, unit_ids, queue_json, total, done, updated_at
		FROM sessions
		WHERE user_id = ?
	`)

	err := DB.QueryRow(query, userID).Scan(
		&session.ID,
		&session.UserID,
		&session.UnitIDs,
		&queueJSON,
		&session.Progress.Total,
		&session.Progress.Done,
		&session.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get session: %w", err)
	}

	if err := json.Unmarshal([]byte(queueJSON), &session.Queue); err != nil {
		return nil, fmt.Errorf("failed to parse session queue: %w", err)
	}

	return &session, nil
}

// Create inserts a new session. Returns ErrSessionExists when the owner
// already has one; callers are expected to re-fetch and adopt that row.
func (r *SessionRepository) Create(session *models.PracticeSession) error {
	queueJSON, err := json.Marshal(session.Queue)
	if err != nil {
		return fmt.Errorf("failed to marshal session queue: %w", err)
	}

	query := DB.Rebind(`
		INSERT INTO sessions (user_id, id, unit_ids, queue_json, total, done, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, CURRENT_TIMESTAMP)
	`)

	_, err = DB.Exec(
		query,
		session.UserID,
		session.ID,
		session.UnitIDs,
		string(queueJSON),
		session.Progress.Total,
		session.Progress.Done,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrSessionExists
		}
		return fmt.Errorf("failed to create session: %w", err)
	}

	return nil
}

// Update replaces the queue and progress of an existing session and
// refreshes updated_at. The owner and unit selector never change after
// creation. Returns ErrSessionNotFound when the owner has no session.
func (r *SessionRepository) Update(userID int64, queue []models.Word, progress models.Progress) error {
	queueJSON, err := json.Marshal(queue)
	if err != nil {
		return fmt.Errorf("failed to marshal session queue: %w", err)
	}

	query := DB.Rebind(`
		UPDATE sessions
		SET queue_json = ?, total = ?, done = ?, updated_at = CURRENT_TIMESTAMP
		WHERE user_id = ?
	`)

	result, err := DB.Exec(query, string(queueJSON), progress.Total, progress.Done, userID)
	if err != nil {
		return fmt.Errorf("failed to update session: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update result: %w", err)
	}
	if affected == 0 {
		return ErrSessionNotFound
	}

	return nil
}

// Remove deletes the user's session. Removing an absent session is not an
// error, so completion and explicit abandonment can both call it blindly.
func (r *SessionRepository) Remove(userID int64) error {
	query := DB.Rebind("DELETE FROM sessions WHERE user_id = ?")
	if _, err := DB.Exec(query, userID); err != nil {
		return fmt.Errorf("failed to remove session: %w", err)
	}
	return nil
}

// RemoveStale deletes sessions not touched since the given cutoff and
// returns how many rows were reclaimed.
func (r *SessionRepository) RemoveStale(olderThan time.Time) (int64, error) {
	query := DB.Rebind("DELETE FROM sessions WHERE updated_at < ?")
	result, err := DB.Exec(query, olderThan.UTC())
	if err != nil {
		return 0, fmt.Errorf("failed to remove stale sessions: %w", err)
	}
	return result.RowsAffected()
}

// isUniqueViolation reports whether err is a uniqueness constraint error
// from either supported driver.
func isUniqueViolation(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") ||
		strings.Contains(msg, "duplicate key value")
}
