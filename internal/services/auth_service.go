package services

import (
	"math"
	"time"

	"bankcore/internal/auth"
	"bankcore/internal/models"
	"bankcore/internal/store"
	"bankcore/internal/websocket"

	"github.com/google/uuid"
)

type LoginStatus string

const (
	LoginSuccess            LoginStatus = "success"
	LoginOtpRequired        LoginStatus = "otp_required"
	LoginLocked             LoginStatus = "locked"
	LoginInvalidCredentials LoginStatus = "invalid_credentials"
)

// LoginResult is the discriminated outcome of a login attempt.
// Account is populated for success and otp_required only.
type LoginResult struct {
	Status            LoginStatus
	Account           models.Account
	RetryAfterMinutes int
	AttemptsRemaining int
}

// LoginOrigin carries the coarse request metadata recorded with each
// attempt-log entry.
type LoginOrigin struct {
	IP        string
	UserAgent string
	Location  string
}

type AlertHub interface {
	BroadcastAlert(alert websocket.SecurityAlert)
}

// AuthService evaluates login attempts, drives the lockout state
// machine and keeps the attempt log.
type AuthService struct {
	accounts     *store.AccountStore
	attempts     *store.AttemptStore
	hub          AlertHub
	maxAttempts  int
	lockDuration time.Duration
	now          func() time.Time
}

func NewAuthService(accounts *store.AccountStore, attempts *store.AttemptStore, hub AlertHub, maxAttempts int, lockDuration time.Duration) *AuthService {
	return &AuthService{
		accounts:     accounts,
		attempts:     attempts,
		hub:          hub,
		maxAttempts:  maxAttempts,
		lockDuration: lockDuration,
		now:          time.Now,
	}
}

// AttemptLogin resolves the identifier against both the username and
// account-number namespaces and runs the full attempt state machine.
// Every call leaves an "attempted" entry in the log, known account or
// not.
func (s *AuthService) AttemptLogin(identifier, secret string, origin LoginOrigin) LoginResult {
	account, err := s.accounts.ResolveIdentifier(identifier)

	s.logAttempt(identifier, models.AttemptStatusAttempted, nil, origin)

	if err == nil {
		account = s.clearExpiredLock(account)
		if account.IsLocked {
			remaining := 0
			if account.LockUntil != nil {
				remaining = int(math.Ceil(account.LockUntil.Sub(s.now()).Minutes()))
			}
			s.emitAlert("locked_account_attempt", "login attempt on locked account: "+identifier)
			return LoginResult{Status: LoginLocked, RetryAfterMinutes: remaining}
		}
	}

	if err != nil {
		// Unknown identifier: no counter to advance, no failed entry,
		// same outward answer as a bad secret.
		return LoginResult{Status: LoginInvalidCredentials, AttemptsRemaining: -1}
	}

	if !auth.CheckPassword(account.PasswordHash, secret) {
		return s.recordFailedLogin(account, identifier, origin)
	}

	if account.OtpEnabled {
		return LoginResult{Status: LoginOtpRequired, Account: account}
	}

	finalized, err := s.FinalizeLogin(account.ID, origin)
	if err != nil {
		return LoginResult{Status: LoginInvalidCredentials, AttemptsRemaining: -1}
	}
	return LoginResult{Status: LoginSuccess, Account: finalized}
}

func (s *AuthService) recordFailedLogin(account models.Account, identifier string, origin LoginOrigin) LoginResult {
	unlock := s.accounts.LockNumber(account.AccountNumber)
	defer unlock()

	current, err := s.accounts.GetByID(account.ID)
	if err != nil {
		return LoginResult{Status: LoginInvalidCredentials, AttemptsRemaining: -1}
	}
	current.LoginAttempts++
	if current.LoginAttempts >= s.maxAttempts {
		until := s.now().Add(s.lockDuration)
		current.IsLocked = true
		current.LockUntil = &until
		s.emitAlert("account_locked", "account "+current.Username+" locked after repeated failed logins")
	}
	if err := s.accounts.Update(current); err != nil {
		return LoginResult{Status: LoginInvalidCredentials, AttemptsRemaining: -1}
	}

	count := current.LoginAttempts
	s.logAttempt(identifier, models.AttemptStatusFailed, &count, origin)

	remaining := s.maxAttempts - current.LoginAttempts
	if remaining < 0 {
		remaining = 0
	}
	return LoginResult{Status: LoginInvalidCredentials, AttemptsRemaining: remaining}
}

// FinalizeLogin completes a successful authentication: counters reset,
// lock fields cleared, last-login stamped, success entry logged. OTP
// verification funnels through here as well.
func (s *AuthService) FinalizeLogin(accountID string, origin LoginOrigin) (models.Account, error) {
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
	now := s.now()
	account.LoginAttempts = 0
	account.IsLocked = false
	account.LockUntil = nil
	account.LastLogin = &now
	if err := s.accounts.Update(account); err != nil {
		return models.Account{}, err
	}
	s.logAttempt(account.Username, models.AttemptStatusSuccess, nil, origin)
	return account, nil
}

// clearExpiredLock is the lazy half of lockout housekeeping: an elapsed
// lock is cleared on first access rather than waiting for the sweep.
func (s *AuthService) clearExpiredLock(account models.Account) models.Account {
	if !account.IsLocked || account.LockUntil == nil || account.LockUntil.After(s.now()) {
		return account
	}
	unlock := s.accounts.LockNumber(account.AccountNumber)
	defer unlock()

	current, err := s.accounts.GetByID(account.ID)
	if err != nil {
		return account
	}
	if current.IsLocked && current.LockUntil != nil && !current.LockUntil.After(s.now()) {
		current.IsLocked = false
		current.LockUntil = nil
		current.LoginAttempts = 0
		if err := s.accounts.Update(current); err != nil {
			return account
		}
	}
	return current
}

func (s *AuthService) logAttempt(identifier, status string, attempts *int, origin LoginOrigin) {
	s.attempts.Append(models.LoginAttempt{
		Identifier: identifier,
		Status:     status,
		Attempts:   attempts,
		IP:         origin.IP,
		UserAgent:  origin.UserAgent,
		Location:   origin.Location,
		Timestamp:  s.now(),
	})
	if status == models.AttemptStatusFailed {
		s.emitAlert("failed_login", "failed login attempt for "+identifier)
	}
}

func (s *AuthService) emitAlert(kind, message string) {
	if s.hub == nil {
		return
	}
	s.hub.BroadcastAlert(websocket.SecurityAlert{
		ID:        uuid.NewString(),
		Kind:      kind,
		Message:   message,
		Timestamp: s.now(),
	})
}
