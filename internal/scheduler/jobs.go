package scheduler

import (
	"fmt"
	"log"
	"time"

	"bankcore/internal/store"
	"bankcore/internal/websocket"

	"github.com/google/uuid"
)

// Suspicious-activity thresholds, checked over the trailing hour.
const (
	failedAttemptThreshold = 10
	largeTransferMinor     = 100000000
	suspiciousLookback     = time.Hour
)

type AlertHub interface {
	BroadcastAlert(alert websocket.SecurityAlert)
}

// Jobs holds the periodic housekeeping tasks. Every method is
// idempotent and safe to invoke directly, so tests never wait on the
// cron clock.
type Jobs struct {
	accounts     *store.AccountStore
	transactions *store.TransactionStore
	attempts     *store.AttemptStore
	persister    *store.Persister
	hub          AlertHub
	now          func() time.Time
}

func NewJobs(accounts *store.AccountStore, transactions *store.TransactionStore, attempts *store.AttemptStore, persister *store.Persister, hub AlertHub) *Jobs {
	return &Jobs{
		accounts:     accounts,
		transactions: transactions,
		attempts:     attempts,
		persister:    persister,
		hub:          hub,
		now:          time.Now,
	}
}

// SweepExpiredLocks clears lock state on every account whose lockout
// window has elapsed. Lockout is time-boxed; no admin action needed.
func (j *Jobs) SweepExpiredLocks() {
	now := j.now()
	for _, account := range j.accounts.ListAll() {
		if !account.IsLocked || account.LockUntil == nil || account.LockUntil.After(now) {
			continue
		}
		unlock := j.accounts.LockNumber(account.AccountNumber)
		current, err := j.accounts.GetByID(account.ID)
		if err == nil && current.IsLocked && current.LockUntil != nil && !current.LockUntil.After(now) {
			current.IsLocked = false
			current.LockUntil = nil
			current.LoginAttempts = 0
			if err := j.accounts.Update(current); err != nil {
				log.Printf("lock sweep: update %s: %v", current.Username, err)
			}
		}
		unlock()
	}
}

// ScanSuspiciousActivity raises alerts for bursts of failed logins and
// for large transfers over the trailing hour.
func (j *Jobs) ScanSuspiciousActivity() {
	cutoff := j.now().Add(-suspiciousLookback)

	if failed := j.attempts.CountFailedSince(cutoff); failed > failedAttemptThreshold {
		j.alert("failed_login_burst", fmt.Sprintf("detected %d failed login attempts in the last hour", failed))
	}

	large := 0
	for _, tx := range j.transactions.ListSince(cutoff) {
		if tx.Amount > largeTransferMinor {
			large++
		}
	}
	if large > 0 {
		j.alert("large_transfers", fmt.Sprintf("%d large transfers in the last hour", large))
	}
}

// SnapshotState writes the JSON tables to disk.
func (j *Jobs) SnapshotState() {
	if err := j.persister.Save(j.accounts, j.transactions, j.attempts); err != nil {
		log.Printf("snapshot: %v", err)
	}
}

func (j *Jobs) alert(kind, message string) {
	if j.hub == nil {
		return
	}
	j.hub.BroadcastAlert(websocket.SecurityAlert{
		ID:        uuid.NewString(),
		Kind:      kind,
		Message:   message,
		Timestamp: j.now(),
	})
}
