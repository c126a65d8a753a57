package practice

import (
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/example/vocadrill/pkg/models"
)

// Status is the state of the machine with respect to the word currently
// presented.
type Status string

const (
	// StatusIdle means the machine is awaiting input for the front word
	StatusIdle Status = "idle"
	// StatusError means the last submission mismatched; reverts to idle
	StatusError Status = "error"
	// StatusReviewing means the user declared the word known and is
	// self-grading against the revealed answer
	StatusReviewing Status = "reviewing"
	// StatusReviewError means the self-grade was wrong; reverts to idle
	StatusReviewError Status = "review_error"
	// StatusCompleted means the queue is exhausted (terminal)
	StatusCompleted Status = "completed"
)

// FeedbackDelay is how long transient error feedback is shown before the
// machine reverts to idle.
const FeedbackDelay = 2 * time.Second

// Outcome classifies what a transition did
type Outcome int

const (
	// OutcomeRejected means the transition was a no-op in the current state
	OutcomeRejected Outcome = iota
	// OutcomeMismatch means the submitted answer was wrong; queue untouched
	OutcomeMismatch
	// OutcomeAdvanced means the front word was resolved and popped
	OutcomeAdvanced
	// OutcomeCompleted means the queue ran empty on this transition
	OutcomeCompleted
	// OutcomeRevealed means the answer was revealed for self-grading
	OutcomeRevealed
	// OutcomeRotated means the front word moved to the back of the queue
	OutcomeRotated
)

// Machine is the pure practice state machine for one session. It never
// blocks and never talks to storage; persisting transitions and scheduling
// the transient reverts is the caller's job.
//
// Invariant: len(Queue) + Progress.Done == Progress.Total after every
// transition.
type Machine struct {
	Queue    []models.Word
	Progress models.Progress
	Status   Status
	// Feedback holds the "Correct: ..." message while in a transient
	// error state; Revealed holds the answer while reviewing.
	Feedback string
	Revealed string
}

// NewMachine builds a machine over a freshly initialized queue
func NewMachine(queue []models.Word, progress models.Progress) *Machine {
	status := StatusIdle
	if len(queue) == 0 {
		status = StatusCompleted
	}
	return &Machine{
		Queue:    queue,
		Progress: progress,
		Status:   status,
	}
}

// Resume builds a machine from a persisted session
func Resume(session *models.PracticeSession) *Machine {
	return NewMachine(session.Queue, session.Progress)
}

// Current returns the word being presented, if any
func (m *Machine) Current() (models.Word, bool) {
	if len(m.Queue) == 0 {
		return models.Word{}, false
	}
	return m.Queue[0], true
}

// Submit checks a typed answer against the front word. A match resolves the
// word immediately; a mismatch enters the transient error state with the
// expected answer as feedback and leaves the queue untouched, so retries
// are unlimited.
func (m *Machine) Submit(answer string) Outcome {
	if m.Status != StatusIdle && m.Status != StatusError {
		return OutcomeRejected
	}

	front, ok := m.Current()
	if !ok {
		return OutcomeRejected
	}
	if normalize(answer) == normalize(front.English) {
		return m.resolveFront()
	}

	m.Status = StatusError
	m.Feedback = "Correct: " + capitalizeFirst(front.English)
	return OutcomeMismatch
}

// DeclareKnown reveals the answer and switches to self-grading. Nothing is
// persisted until the user confirms or marks themselves wrong.
func (m *Machine) DeclareKnown() Outcome {
	if m.Status != StatusIdle && m.Status != StatusError {
		return OutcomeRejected
	}
	front, ok := m.Current()
	if !ok {
		return OutcomeRejected
	}

	m.Revealed = capitalizeFirst(front.English)
	m.Feedback = ""
	m.Status = StatusReviewing
	return OutcomeRevealed
}

// ConfirmCorrect resolves the front word after a self-grade
func (m *Machine) ConfirmCorrect() Outcome {
	if m.Status != StatusReviewing {
		return OutcomeRejected
	}
	return m.resolveFront()
}

// MarkWrong rotates the front word to the back of the queue without
// advancing progress, then shows the answer as transient feedback.
func (m *Machine) MarkWrong() Outcome {
	if m.Status != StatusReviewing {
		return OutcomeRejected
	}

	front := m.Queue[0]
	m.Queue = append(append([]models.Word(nil), m.Queue[1:]...), front)
	m.Status = StatusReviewError
	m.Feedback = "Correct: " + capitalizeFirst(front.English)
	m.Revealed = ""
	return OutcomeRotated
}

// Revert ends a transient error state and presents the current front word
// again. Reverting any other state is a no-op.
func (m *Machine) Revert() bool {
	if m.Status != StatusError && m.Status != StatusReviewError {
		return false
	}
	m.Status = StatusIdle
	m.Feedback = ""
	return true
}

// resolveFront pops the front word and advances progress
func (m *Machine) resolveFront() Outcome {
	m.Queue = m.Queue[1:]
	m.Progress.Done++
	m.Feedback = ""
	m.Revealed = ""

	if len(m.Queue) == 0 {
		m.Status = StatusCompleted
		return OutcomeCompleted
	}
	m.Status = StatusIdle
	return OutcomeAdvanced
}

// normalize implements the equality policy: leading/trailing whitespace
// ignored, case-insensitive, otherwise exact.
func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// capitalizeFirst upper-cases the first letter, leaving the rest unchanged
func capitalizeFirst(s string) string {
	if s == "" {
		return s
	}
	r, size := utf8.DecodeRuneInString(s)
	return string(unicode.ToUpper(r)) + s[size:]
}
