package models

import "time"

// Progress counts how far a practice session has advanced. Total is fixed
// when the session is created; Done only ever grows within a session.
type Progress struct {
	Total int `json:"total"`
	Done  int `json:"done"`
}

// PracticeSession is the single active drilling session of one user. The
// queue is drawn from the front; a word answered correctly is popped, a word
// the user got wrong after revealing it is rotated to the back.
//
// Invariant: len(Queue) + Progress.Done == Progress.Total at every persisted
// state. A session whose queue runs empty is deleted, never stored completed.
type PracticeSession struct {
	ID        string    `json:"id" db:"id"`
	UserID    int64     `json:"user_id" db:"user_id"`
	UnitIDs   string    `json:"unit_ids" db:"unit_ids"`
	Queue     []Word    `json:"queue"`
	Progress  Progress  `json:"progress"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}
