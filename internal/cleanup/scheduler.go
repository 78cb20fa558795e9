package cleanup

import (
	"log"
	"time"

	"github.com/codebuildervaibhav/vimeo-transcript/internal/storage"
)

// Scheduler prunes old transcripts out of the session registry
type Scheduler struct {
	registry        *storage.Registry
	intervalMinutes int
	maxAgeHours     int
	stopChan        chan struct{}
}

// NewScheduler creates a new cleanup scheduler
func NewScheduler(registry *storage.Registry, intervalMinutes, maxAgeHours int) *Scheduler {
	return &Scheduler{
		registry:        registry,
		intervalMinutes: intervalMinutes,
		maxAgeHours:     maxAgeHours,
		stopChan:        make(chan struct{}),
	}
}

// Start begins the cleanup scheduler
func (s *Scheduler) Start() {
	ticker := time.NewTicker(time.Duration(s.intervalMinutes) * time.Minute)

	go func() {
		for {
			select {
			case <-ticker.C:
				s.pruneRegistry()
			case <-s.stopChan:
				ticker.Stop()
				return
			}
		}
	}()

	log.Printf("Cleanup scheduler started (interval: %dm, max age: %dh)",
		s.intervalMinutes, s.maxAgeHours)
}

// Stop stops the cleanup scheduler
func (s *Scheduler) Stop() {
	close(s.stopChan)
	log.Println("Cleanup scheduler stopped")
}

// pruneRegistry removes transcripts older than maxAgeHours
func (s *Scheduler) pruneRegistry() {
	maxAge := time.Duration(s.maxAgeHours) * time.Hour

	deleted, err := s.registry.DeleteOlderThan(maxAge)
	if err != nil {
		log.Printf("Error during cleanup: %v", err)
		return
	}

	if deleted > 0 {
		log.Printf("Cleanup complete: %d transcript(s) pruned", deleted)
	}
}
