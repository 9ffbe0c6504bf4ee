package services

import (
	"crypto/rand"
	"errors"
	"log"
	"math/big"
	"strconv"
	"time"

	"bankcore/internal/models"
	"bankcore/internal/store"
)

var (
	ErrOtpNotFound = errors.New("no pending otp challenge")
	ErrOtpExpired  = errors.New("otp expired")
	ErrOtpMismatch = errors.New("otp mismatch")
)

// LoginFinalizer completes a login once the second factor checks out.
type LoginFinalizer interface {
	FinalizeLogin(accountID string, origin LoginOrigin) (models.Account, error)
}

// OtpService issues and verifies one-time passcodes bound to a pending
// login. At most one challenge is pending per account; a new issuance
// supersedes the old one.
type OtpService struct {
	accounts   *store.AccountStore
	challenges *store.ChallengeStore
	finalizer  LoginFinalizer
	ttl        time.Duration
	now        func() time.Time
}

func NewOtpService(accounts *store.AccountStore, challenges *store.ChallengeStore, finalizer LoginFinalizer, ttl time.Duration) *OtpService {
	return &OtpService{
		accounts:   accounts,
		challenges: challenges,
		finalizer:  finalizer,
		ttl:        ttl,
		now:        time.Now,
	}
}

// Issue creates and "delivers" a fresh challenge. The code goes to the
// delivery channel (logged here in place of an SMS gateway), never to
// the caller.
func (s *OtpService) Issue(accountID string) error {
	account, err := s.accounts.GetByID(accountID)
	if err != nil {
		return err
	}
	code, err := generateOtpCode()
	if err != nil {
		return err
	}
	now := s.now()
	s.challenges.Put(models.PendingOtp{
		AccountID: account.ID,
		Code:      code,
		IssuedAt:  now,
		ExpiresAt: now.Add(s.ttl),
	})
	log.Printf("otp for %s sent to %s", account.Username, account.Phone)
	return nil
}

// Resend invalidates the prior code by issuing a fresh one with a
// fresh expiry.
func (s *OtpService) Resend(accountID string) error {
	if _, ok := s.challenges.Get(accountID); !ok {
		return ErrOtpNotFound
	}
	return s.Issue(accountID)
}

// Verify checks the submitted code. Expiry is decided before the code
// is even compared; an exact match consumes the challenge and
// finalizes the login.
func (s *OtpService) Verify(accountID, code string, origin LoginOrigin) (models.Account, error) {
	pending, ok := s.challenges.Get(accountID)
	if !ok {
		return models.Account{}, ErrOtpNotFound
	}
	if s.now().After(pending.ExpiresAt) {
		return models.Account{}, ErrOtpExpired
	}
	if code != pending.Code {
		return models.Account{}, ErrOtpMismatch
	}
	s.challenges.Delete(accountID)
	return s.finalizer.FinalizeLogin(accountID, origin)
}

// generateOtpCode draws 6 digits uniformly from [100000, 999999].
func generateOtpCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", err
	}
	return strconv.FormatInt(100000+n.Int64(), 10), nil
}
