package schedule

import (
	"fmt"
	"log"
	"sync"

	"github.com/robfig/cron/v3"
)

// Scheduler handles cron-based background jobs (insight digests, cleanups).
type Scheduler struct {
	cron    *cron.Cron
	jobs    map[string]cron.EntryID // job name -> entry_id
	jobsMux sync.RWMutex
}

// NewScheduler creates a new scheduler
func NewScheduler() *Scheduler {
	return &Scheduler{
		cron: cron.New(),
		jobs: make(map[string]cron.EntryID),
	}
}

// Start starts the scheduler
func (s *Scheduler) Start() {
	log.Println("⏰ Starting job scheduler...")
	s.cron.Start()
	log.Println("✅ Job scheduler started")
}

// Stop stops the scheduler
func (s *Scheduler) Stop() {
	log.Println("⏰ Stopping job scheduler...")
	s.cron.Stop()
	log.Println("✅ Job scheduler stopped")
}

// AddJob registers a named job with a cron expression (e.g. "0 7 * * *" for
// daily at 7 AM). Re-registering a name replaces the previous schedule.
func (s *Scheduler) AddJob(name string, schedule string, job func()) error {
	s.jobsMux.Lock()
	defer s.jobsMux.Unlock()

	if entryID, exists := s.jobs[name]; exists {
		s.cron.Remove(entryID)
		delete(s.jobs, name)
	}

	entryID, err := s.cron.AddFunc(schedule, job)
	if err != nil {
		return fmt.Errorf("failed to add cron job: %w", err)
	}

	s.jobs[name] = entryID
	log.Printf("   ✅ Scheduled job %s: %s", name, schedule)

	return nil
}

// RemoveJob removes a job from the scheduler
func (s *Scheduler) RemoveJob(name string) {
	s.jobsMux.Lock()
	defer s.jobsMux.Unlock()

	if entryID, exists := s.jobs[name]; exists {
		s.cron.Remove(entryID)
		delete(s.jobs, name)
		log.Printf("   ✅ Removed scheduled job: %s", name)
	}
}

// JobNames returns all currently scheduled job names.
func (s *Scheduler) JobNames() []string {
	s.jobsMux.RLock()
	defer s.jobsMux.RUnlock()

	names := make([]string, 0, len(s.jobs))
	for name := range s.jobs {
		names = append(names, name)
	}
	return names
}
