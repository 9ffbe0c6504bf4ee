package services

import (
	"errors"
	"time"

	"bankcore/internal/models"
	"bankcore/internal/money"
	"bankcore/internal/store"
	"bankcore/internal/websocket"

	"github.com/shopspring/decimal"
)

var (
	ErrInvalidAccount     = errors.New("invalid account")
	ErrInvalidAmount      = errors.New("invalid amount")
	ErrInsufficientFunds  = errors.New("insufficient funds")
	ErrDailyLimitExceeded = errors.New("daily transfer limit exceeded")
)

type BalanceHub interface {
	BroadcastBalance(accountID string, update websocket.BalanceUpdate)
}

// LedgerService validates and executes transfers against the canonical
// ledger. No state is touched until every check has passed, and the
// whole validate-then-mutate sequence runs under both account locks.
type LedgerService struct {
	accounts     *store.AccountStore
	transactions *store.TransactionStore
	hub          BalanceHub
	feePercent   decimal.Decimal
	dailyLimit   int64
	now          func() time.Time
}

func NewLedgerService(accounts *store.AccountStore, transactions *store.TransactionStore, hub BalanceHub, feePercent decimal.Decimal, dailyLimit int64) *LedgerService {
	return &LedgerService{
		accounts:     accounts,
		transactions: transactions,
		hub:          hub,
		feePercent:   feePercent,
		dailyLimit:   dailyLimit,
		now:          time.Now,
	}
}

type TransferRequest struct {
	FromNumber  string
	ToNumber    string
	AmountMinor int64
	Description string
	InitiatedBy string
}

// Transfer debits principal plus fee from the source, credits the
// principal to the destination and records one completed ledger entry.
// The fee is not credited anywhere; it leaves circulation.
func (s *LedgerService) Transfer(req TransferRequest) (models.Transaction, error) {
	if _, err := s.accounts.GetByNumber(req.FromNumber); err != nil {
		return models.Transaction{}, ErrInvalidAccount
	}
	if _, err := s.accounts.GetByNumber(req.ToNumber); err != nil {
		return models.Transaction{}, ErrInvalidAccount
	}
	if req.AmountMinor <= 0 {
		return models.Transaction{}, ErrInvalidAmount
	}

	unlock := s.accounts.LockPair(req.FromNumber, req.ToNumber)
	defer unlock()

	from, err := s.accounts.GetByNumber(req.FromNumber)
	if err != nil {
		return models.Transaction{}, ErrInvalidAccount
	}
	to, err := s.accounts.GetByNumber(req.ToNumber)
	if err != nil {
		return models.Transaction{}, ErrInvalidAccount
	}

	if from.Balance < req.AmountMinor {
		return models.Transaction{}, ErrInsufficientFunds
	}
	fee := money.FeeMinor(req.AmountMinor, s.feePercent)
	total := req.AmountMinor + fee
	// The fee case: balance covers the principal but not principal+fee.
	if from.Balance < total {
		return models.Transaction{}, ErrInsufficientFunds
	}

	now := s.now()
	if s.transactions.SumTransfersOn(now, from.AccountNumber)+req.AmountMinor > s.dailyLimit {
		return models.Transaction{}, ErrDailyLimitExceeded
	}

	if from.ID == to.ID {
		// Self-transfer nets out to the fee alone.
		from.Balance -= fee
		to = from
		if err := s.accounts.Update(from); err != nil {
			return models.Transaction{}, err
		}
	} else {
		from.Balance -= total
		to.Balance += req.AmountMinor
		if err := s.accounts.Update(from); err != nil {
			return models.Transaction{}, err
		}
		if err := s.accounts.Update(to); err != nil {
			return models.Transaction{}, err
		}
	}

	tx := s.transactions.Append(models.Transaction{
		FromAccount: from.AccountNumber,
		ToAccount:   to.AccountNumber,
		Amount:      req.AmountMinor,
		Fee:         fee,
		TotalAmount: total,
		Description: req.Description,
		Kind:        models.TxKindTransfer,
		Status:      models.TxStatusCompleted,
		Timestamp:   now,
		InitiatedBy: req.InitiatedBy,
	})

	if s.hub != nil {
		s.hub.BroadcastBalance(from.ID, websocket.BalanceUpdate{
			AccountNumber: from.AccountNumber,
			Balance:       money.FormatMinor(from.Balance),
		})
		s.hub.BroadcastBalance(to.ID, websocket.BalanceUpdate{
			AccountNumber: to.AccountNumber,
			Balance:       money.FormatMinor(to.Balance),
		})
	}
	return tx, nil
}

// ApproveTransaction completes a pending transaction. The transition
// moves no money; it is bookkeeping over an already-recorded movement.
func (s *LedgerService) ApproveTransaction(id int64) (models.Transaction, error) {
	return s.transactions.SetStatus(id, models.TxStatusCompleted)
}

// RejectTransaction marks a pending transaction rejected.
func (s *LedgerService) RejectTransaction(id int64) (models.Transaction, error) {
	return s.transactions.SetStatus(id, models.TxStatusRejected)
}
