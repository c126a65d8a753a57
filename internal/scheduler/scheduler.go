package scheduler

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/go-co-op/gocron"

	"github.com/example/vocadrill/internal/database"
)

// DefaultSessionTTLDays is how long an untouched session survives before
// being reclaimed. Abandoning a drill has no explicit cancel call; the row
// simply waits for resumption until this cutoff.
const DefaultSessionTTLDays = 30

// Scheduler manages scheduled maintenance tasks for the application
type Scheduler struct {
	scheduler *gocron.Scheduler
	sessions  *database.SessionRepository
}

// New creates a new scheduler instance
func New(sessions *database.SessionRepository) *Scheduler {
	return &Scheduler{
		scheduler: gocron.NewScheduler(time.UTC),
		sessions:  sessions,
	}
}

// Start begins running all scheduled tasks
func (s *Scheduler) Start() {
	s.scheduler.Every(1).Day().At("03:00").Do(s.reclaimStaleSessions)
	s.scheduler.StartAsync()
}

// Stop terminates all scheduled tasks
func (s *Scheduler) Stop() {
	s.scheduler.Stop()
}

// reclaimStaleSessions deletes sessions abandoned longer than the TTL
func (s *Scheduler) reclaimStaleSessions() {
	ttlDays := DefaultSessionTTLDays
	if v := os.Getenv("SESSION_TTL_DAYS"); v != "" {
		if d, err := strconv.Atoi(v); err == nil && d > 0 {
			ttlDays = d
		}
	}

	cutoff := time.Now().AddDate(0, 0, -ttlDays)
	reclaimed, err := s.sessions.RemoveStale(cutoff)
	if err != nil {
		log.Printf("Error reclaiming stale sessions: %v", err)
		return
	}
	if reclaimed > 0 {
		log.Printf("Reclaimed %d stale practice sessions", reclaimed)
	}
}
