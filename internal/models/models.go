package models

import "time"

const (
	RoleUser    = "user"
	RoleAdmin   = "admin"
	RoleSupport = "support"
)

const (
	TxKindTransfer   = "transfer"
	TxKindDeposit    = "deposit"
	TxKindWithdrawal = "withdrawal"
)

const (
	TxStatusCompleted = "completed"
	TxStatusPending   = "pending"
	TxStatusRejected  = "rejected"
)

const (
	AttemptStatusAttempted = "attempted"
	AttemptStatusFailed    = "failed"
	AttemptStatusSuccess   = "success"
)

// Account is the single source of truth for one customer's balance,
// credentials and lock state. Balance is in minor currency units.
type Account struct {
	ID            string     `json:"id"`
	Username      string     `json:"username"`
	AccountNumber string     `json:"account_number"`
	FullName      string     `json:"full_name"`
	Email         string     `json:"email"`
	Phone         string     `json:"phone"`
	PasswordHash  string     `json:"password_hash"`
	Role          string     `json:"role"`
	Balance       int64      `json:"balance"`
	LoginAttempts int        `json:"login_attempts"`
	IsLocked      bool       `json:"is_locked"`
	LockUntil     *time.Time `json:"lock_until,omitempty"`
	LastLogin     *time.Time `json:"last_login,omitempty"`
	OtpEnabled    bool       `json:"otp_enabled"`
	CreatedAt     time.Time  `json:"created_at"`
}

// Transaction is one movement in the canonical ledger. Immutable once
// recorded except for the pending -> completed|rejected transition.
type Transaction struct {
	ID          int64     `json:"id"`
	FromAccount string    `json:"from_account"`
	ToAccount   string    `json:"to_account"`
	Amount      int64     `json:"amount"`
	Fee         int64     `json:"fee"`
	TotalAmount int64     `json:"total_amount"`
	Description string    `json:"description"`
	Kind        string    `json:"kind"`
	Status      string    `json:"status"`
	Timestamp   time.Time `json:"timestamp"`
	InitiatedBy string    `json:"initiated_by"`
}

// AccountEntry is a per-account projection of a ledger transaction.
// Incoming transfers are re-tagged as deposits; BalanceAfter is the
// account balance right after the entry took effect.
type AccountEntry struct {
	Transaction
	BalanceAfter int64 `json:"balance_after"`
}

// LoginAttempt is one row of the global, capped login-attempt log.
type LoginAttempt struct {
	ID         string    `json:"id"`
	Identifier string    `json:"identifier"`
	Status     string    `json:"status"`
	Attempts   *int      `json:"attempts,omitempty"`
	IP         string    `json:"ip"`
	UserAgent  string    `json:"user_agent"`
	Location   string    `json:"location"`
	Timestamp  time.Time `json:"timestamp"`
}

// PendingOtp is a short-lived challenge bound to an account mid-login.
type PendingOtp struct {
	AccountID string    `json:"account_id"`
	Code      string    `json:"code"`
	ExpiresAt time.Time `json:"expires_at"`
	IssuedAt  time.Time `json:"issued_at"`
}

// Statement is a derived report of one account's activity over a range.
type Statement struct {
	AccountID      string           `json:"account_id"`
	AccountNumber  string           `json:"account_number"`
	HolderName     string           `json:"holder_name"`
	PeriodStart    time.Time        `json:"period_start"`
	PeriodEnd      time.Time        `json:"period_end"`
	OpeningBalance int64            `json:"opening_balance"`
	ClosingBalance int64            `json:"closing_balance"`
	Entries        []AccountEntry   `json:"entries"`
	Summary        StatementSummary `json:"summary"`
}

type StatementSummary struct {
	TotalDeposits    int64 `json:"total_deposits"`
	TotalWithdrawals int64 `json:"total_withdrawals"`
	TotalTransfers   int64 `json:"total_transfers"`
	TotalFees        int64 `json:"total_fees"`
}
