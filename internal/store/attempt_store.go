package store

import (
	"sync"
	"time"

	"bankcore/internal/models"

	"github.com/google/uuid"
)

// maxAttemptEntries caps the global login-attempt log; the oldest
// entries are evicted first.
const maxAttemptEntries = 100

// AttemptStore is the append-only, capped login-attempt log.
type AttemptStore struct {
	mu       sync.RWMutex
	attempts []models.LoginAttempt
}

func NewAttemptStore() *AttemptStore {
	return &AttemptStore{}
}

func (s *AttemptStore) Append(attempt models.LoginAttempt) models.LoginAttempt {
	if attempt.ID == "" {
		attempt.ID = uuid.NewString()
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.attempts = append(s.attempts, attempt)
	if len(s.attempts) > maxAttemptEntries {
		s.attempts = s.attempts[len(s.attempts)-maxAttemptEntries:]
	}
	return attempt
}

// List returns the retained attempts, oldest first.
func (s *AttemptStore) List() []models.LoginAttempt {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.LoginAttempt, len(s.attempts))
	copy(out, s.attempts)
	return out
}

func (s *AttemptStore) CountFailedSince(cutoff time.Time) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	count := 0
	for _, attempt := range s.attempts {
		if attempt.Status == models.AttemptStatusFailed && !attempt.Timestamp.Before(cutoff) {
			count++
		}
	}
	return count
}

func (s *AttemptStore) Snapshot() []models.LoginAttempt {
	return s.List()
}

func (s *AttemptStore) Restore(attempts []models.LoginAttempt) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(attempts) > maxAttemptEntries {
		attempts = attempts[len(attempts)-maxAttemptEntries:]
	}
	s.attempts = make([]models.LoginAttempt, len(attempts))
	copy(s.attempts, attempts)
	return nil
}
