package store

import (
	"errors"
	"sync"
	"time"

	"bankcore/internal/models"
)

var (
	ErrTransactionNotFound = errors.New("transaction not found")
	ErrTransactionFinal    = errors.New("transaction is not pending")
)

// TransactionStore holds the canonical append-only ledger. Records are
// never removed and never mutated except for the pending status
// transition.
type TransactionStore struct {
	mu           sync.RWMutex
	transactions []models.Transaction
	lastID       int64
}

func NewTransactionStore() *TransactionStore {
	return &TransactionStore{}
}

// Append records a transaction and assigns its identifier: the
// millisecond timestamp, bumped past the previous identifier so ids
// stay strictly monotonic within the process.
func (s *TransactionStore) Append(tx models.Transaction) models.Transaction {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := tx.Timestamp.UnixMilli()
	if id <= s.lastID {
		id = s.lastID + 1
	}
	s.lastID = id
	tx.ID = id
	s.transactions = append(s.transactions, tx)
	return tx
}

func (s *TransactionStore) GetByID(id int64) (models.Transaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, tx := range s.transactions {
		if tx.ID == id {
			return tx, nil
		}
	}
	return models.Transaction{}, ErrTransactionNotFound
}

// SetStatus applies the only mutation a recorded transaction permits:
// pending -> completed or pending -> rejected.
func (s *TransactionStore) SetStatus(id int64, status string) (models.Transaction, error) {
	if status != models.TxStatusCompleted && status != models.TxStatusRejected {
		return models.Transaction{}, ErrTransactionFinal
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.transactions {
		if s.transactions[i].ID != id {
			continue
		}
		if s.transactions[i].Status != models.TxStatusPending {
			return models.Transaction{}, ErrTransactionFinal
		}
		s.transactions[i].Status = status
		return s.transactions[i], nil
	}
	return models.Transaction{}, ErrTransactionNotFound
}

func (s *TransactionStore) ListAll() []models.Transaction {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Transaction, len(s.transactions))
	copy(out, s.transactions)
	return out
}

// ListByAccount returns every ledger record touching the account
// number, oldest first.
func (s *TransactionStore) ListByAccount(number string) []models.Transaction {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []models.Transaction
	for _, tx := range s.transactions {
		if tx.FromAccount == number || tx.ToAccount == number {
			out = append(out, tx)
		}
	}
	return out
}

// SumTransfersOn totals the principal of transfers sent from the
// account number on the given calendar day, local time.
func (s *TransactionStore) SumTransfersOn(day time.Time, fromNumber string) int64 {
	year, month, date := day.Date()
	s.mu.RLock()
	defer s.mu.RUnlock()
	var sum int64
	for _, tx := range s.transactions {
		if tx.Kind != models.TxKindTransfer || tx.FromAccount != fromNumber {
			continue
		}
		ty, tm, td := tx.Timestamp.In(day.Location()).Date()
		if ty == year && tm == month && td == date {
			sum += tx.Amount
		}
	}
	return sum
}

// ListSince returns transactions recorded at or after the cutoff.
func (s *TransactionStore) ListSince(cutoff time.Time) []models.Transaction {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []models.Transaction
	for _, tx := range s.transactions {
		if !tx.Timestamp.Before(cutoff) {
			out = append(out, tx)
		}
	}
	return out
}

func (s *TransactionStore) Snapshot() []models.Transaction {
	return s.ListAll()
}

func (s *TransactionStore) Restore(transactions []models.Transaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.transactions = make([]models.Transaction, len(transactions))
	copy(s.transactions, transactions)
	s.lastID = 0
	for _, tx := range s.transactions {
		if tx.ID > s.lastID {
			s.lastID = tx.ID
		}
	}
	return nil
}
