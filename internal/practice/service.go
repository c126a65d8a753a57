package practice

import (
	"log"
	"sync"
	"time"

	"github.com/example/vocadrill/pkg/models"
)

// Service drives one user's machine and mirrors every queue-changing
// transition into the session store. Persistence failures are logged and
// never roll back the local transition: the local queue stays the presented
// truth until the next reconciliation corrects it.
//
// All methods are safe for concurrent use; the sync poller shares the
// machine with the caller's input path.
type Service struct {
	mu      sync.Mutex
	owner   int64
	store   Store
	machine *Machine
}

// NewService wraps a machine for the given owner
func NewService(owner int64, store Store, machine *Machine) *Service {
	return &Service{owner: owner, store: store, machine: machine}
}

// Submit checks a typed answer. On mismatch the transient error state is
// scheduled to revert after FeedbackDelay.
func (s *Service) Submit(answer string) Outcome {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := s.machine.Submit(answer)
	if out == OutcomeMismatch {
		s.scheduleRevert()
	}
	s.persist(out)
	return out
}

// DeclareKnown reveals the answer for self-grading. Nothing is persisted.
func (s *Service) DeclareKnown() Outcome {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.machine.DeclareKnown()
}

// ConfirmCorrect resolves the front word and persists the new state
func (s *Service) ConfirmCorrect() Outcome {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := s.machine.ConfirmCorrect()
	s.persist(out)
	return out
}

// MarkWrong rotates the front word to the back, persists the rotation and
// schedules the transient revert.
func (s *Service) MarkWrong() Outcome {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := s.machine.MarkWrong()
	if out == OutcomeRotated {
		s.scheduleRevert()
	}
	s.persist(out)
	return out
}

// Revert ends a transient error state early
func (s *Service) Revert() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.machine.Revert()
}

// State returns a snapshot of the machine for rendering
func (s *Service) State() Machine {
	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot := *s.machine
	snapshot.Queue = append([]models.Word(nil), s.machine.Queue...)
	return snapshot
}

// persist mirrors a transition into the store. Completion deletes the row;
// a session is never stored in the completed state.
func (s *Service) persist(out Outcome) {
	switch out {
	case OutcomeAdvanced, OutcomeRotated:
		if err := s.store.Update(s.owner, s.machine.Queue, s.machine.Progress); err != nil {
			log.Printf("practice: failed to persist session for user %d: %v", s.owner, err)
		}
	case OutcomeCompleted:
		if err := s.store.Remove(s.owner); err != nil {
			log.Printf("practice: failed to clear completed session for user %d: %v", s.owner, err)
		}
	}
}

// scheduleRevert arms the auto-revert for the transient state just entered.
// Revert is a no-op by then if the user has already moved on.
func (s *Service) scheduleRevert() {
	time.AfterFunc(FeedbackDelay, func() {
		s.Revert()
	})
}

// syncTick reconciles the local machine against the authoritative store
// state. Used by the Poller.
func (s *Service) syncTick() {
	s.mu.Lock()
	if s.machine.Status != StatusIdle {
		s.mu.Unlock()
		return
	}
	s.mu.Unlock()

	// Fetch outside the lock; a repository call may block.
	authoritative, err := s.store.Get(s.owner)
	if err != nil {
		log.Printf("practice: sync fetch failed for user %d: %v", s.owner, err)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if Reconcile(s.machine, authoritative) {
		log.Printf("practice: user %d caught up to done=%d from another client",
			s.owner, s.machine.Progress.Done)
	}
}
