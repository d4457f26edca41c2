package progress

import (
	"sync"

	"github.com/tadeasf/reddit-media-dl/internal/app/models"
)

// State holds the run counters shared by all workers. A single mutex guards
// every mutation; no I/O ever happens under it.
type State struct {
	mu        sync.Mutex
	total     int
	completed int
	failed    int
	byKind    map[models.Kind]int
}

func CreateState() *State {
	return &State{
		byKind: make(map[models.Kind]int),
	}
}

// SetTotal fixes the number of targets before the pool starts.
func (s *State) SetTotal(n int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.total = n
}

// Record applies one terminal outcome: completed always advances, failed on
// failure, the per-kind counter on success.
func (s *State) Record(outcome models.DownloadOutcome) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.completed++
	if outcome.Status == models.StatusFailure {
		s.failed++
		return
	}
	s.byKind[outcome.Target.Kind]++
}

// Snapshot returns a consistent copy of the counters, safe to call while
// workers are still recording.
func (s *State) Snapshot() models.ProgressSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	byKind := make(map[models.Kind]int, len(s.byKind))
	for kind, count := range s.byKind {
		byKind[kind] = count
	}

	return models.ProgressSnapshot{
		TotalTargets:    s.total,
		CompletedCount:  s.completed,
		FailedCount:     s.failed,
		SucceededByKind: byKind,
	}
}
