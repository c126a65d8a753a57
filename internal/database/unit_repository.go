package database

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/example/vocadrill/pkg/models"
)

// ErrUnitNotFound is returned when a unit does not exist or belongs to
// another user.
var ErrUnitNotFound = errors.New("unit not found")

// UnitRepository handles database operations for units (word lists)
type UnitRepository struct{}

// NewUnitRepository creates a new repository instance
func NewUnitRepository() *UnitRepository {
	return &UnitRepository{}
}

// GetByUser returns all units owned by the user, newest first
func (r *UnitRepository) GetByUser(userID int64) ([]models.Unit, error) {
	units := []models.Unit{}

	query := DB.Rebind("SELECT id, user_id, name, created_at FROM units WHERE user_id = ? ORDER BY created_at DESC")

	if err := DB.Select(&units, query, userID); err != nil {
		return nil, fmt.Errorf("failed to get units: %w", err)
	}
	return units, nil
}

// GetByID returns a unit by ID, verifying ownership
func (r *UnitRepository) GetByID(unitID, userID int64) (*models.Unit, error) {
	var unit models.Unit

	query := DB.Rebind("SELECT id, user_id, name, created_at FROM units WHERE id = ? AND user_id = ?")

	err := DB.Get(&unit, query, unitID, userID)
	if err == sql.ErrNoRows {
		return nil, ErrUnitNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get unit: %w", err)
	}
	return &unit, nil
}

// Create inserts a new unit and fills in its generated ID
func (r *UnitRepository) Create(unit *models.Unit) error {
	if DB.DriverName() == "postgres" {
		// SQLite has no RETURNING here, PostgreSQL has no LastInsertId
		return DB.QueryRow(
			"INSERT INTO units (user_id, name) VALUES ($1, $2) RETURNING id",
			unit.UserID, unit.Name,
		).Scan(&unit.ID)
	}

	result, err := DB.Exec("INSERT INTO units (user_id, name) VALUES (?, ?)", unit.UserID, unit.Name)
	if err != nil {
		return fmt.Errorf("failed to create unit: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert ID: %w", err)
	}
	unit.ID = id

	return nil
}

// Delete removes a unit and its words, verifying ownership first
func (r *UnitRepository) Delete(unitID, userID int64) error {
	if _, err := r.GetByID(unitID, userID); err != nil {
		return err
	}

	tx, err := DB.Beginx()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(tx.Rebind("DELETE FROM words WHERE unit_id = ?"), unitID); err != nil {
		return fmt.Errorf("failed to delete unit words: %w", err)
	}
	if _, err := tx.Exec(tx.Rebind("DELETE FROM units WHERE id = ?"), unitID); err != nil {
		return fmt.Errorf("failed to delete unit: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit unit delete: %w", err)
	}
	return nil
}
