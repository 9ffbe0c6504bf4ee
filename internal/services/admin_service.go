package services

import (
	"time"

	"bankcore/internal/models"
	"bankcore/internal/store"
	"bankcore/internal/websocket"

	"github.com/google/uuid"
)

// AdminService covers the explicit administrative state transitions:
// manual lock toggling and account removal. Listing endpoints read the
// stores directly.
type AdminService struct {
	accounts     *store.AccountStore
	hub          AlertHub
	lockDuration time.Duration
	now          func() time.Time
}

func NewAdminService(accounts *store.AccountStore, hub AlertHub, lockDuration time.Duration) *AdminService {
	return &AdminService{
		accounts:     accounts,
		hub:          hub,
		lockDuration: lockDuration,
		now:          time.Now,
	}
}

// ToggleLock flips an account's lock. A manual lock is time-boxed like
// an automatic one; a manual unlock clears all lock state.
func (s *AdminService) ToggleLock(accountID string) (models.Account, error) {
	account, err := s.accounts.GetByID(accountID)
	if err != nil {
		return models.Account{}, err
	}
	unlock := s.accounts.LockNumber(account.AccountNumber)
	defer unlock()

	account, err = s.accounts.GetByID(accountID)
	if err != nil {
		return models.Account{}, err
	}
	if account.IsLocked {
		account.IsLocked = false
		account.LockUntil = nil
		account.LoginAttempts = 0
	} else {
		until := s.now().Add(s.lockDuration)
		account.IsLocked = true
		account.LockUntil = &until
	}
	if err := s.accounts.Update(account); err != nil {
		return models.Account{}, err
	}
	if s.hub != nil {
		action := "unlocked"
		if account.IsLocked {
			action = "locked"
		}
		s.hub.BroadcastAlert(websocket.SecurityAlert{
			ID:        uuid.NewString(),
			Kind:      "admin_lock_toggle",
			Message:   "account " + account.Username + " " + action + " by administrator",
			Timestamp: s.now(),
		})
	}
	return account, nil
}

// DeleteAccount removes an account; the store refuses to drop the last
// remaining admin.
func (s *AdminService) DeleteAccount(accountID string) error {
	return s.accounts.Delete(accountID)
}
