package store

import (
	"sync"

	"bankcore/internal/models"
)

// ChallengeStore holds at most one pending OTP challenge per account.
// Challenges are session-scoped and deliberately not persisted.
type ChallengeStore struct {
	mu      sync.Mutex
	pending map[string]models.PendingOtp
}

func NewChallengeStore() *ChallengeStore {
	return &ChallengeStore{pending: make(map[string]models.PendingOtp)}
}

// Put stores a challenge, superseding any prior one for the account.
func (s *ChallengeStore) Put(challenge models.PendingOtp) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pending[challenge.AccountID] = challenge
}

func (s *ChallengeStore) Get(accountID string) (models.PendingOtp, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	challenge, ok := s.pending[accountID]
	return challenge, ok
}

func (s *ChallengeStore) Delete(accountID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.pending, accountID)
}
