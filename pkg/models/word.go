package models

// Word is a single vocabulary pair inside a unit. The user is shown the
// translation (ru) and types the English word back. Words are immutable:
// the practice engine only reads them.
type Word struct {
	ID          int64  `json:"id" db:"id"`
	UnitID      int64  `json:"unit_id" db:"unit_id"`
	English     string `json:"en" db:"en"`
	Translation string `json:"ru" db:"ru"`
}
