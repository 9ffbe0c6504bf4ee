package services

import (
	"sort"
	"time"

	"bankcore/internal/models"
	"bankcore/internal/store"
)

// StatementService derives per-account statements from the canonical
// ledger. It never writes anything.
type StatementService struct {
	accounts     *store.AccountStore
	transactions *store.TransactionStore
}

func NewStatementService(accounts *store.AccountStore, transactions *store.TransactionStore) *StatementService {
	return &StatementService{accounts: accounts, transactions: transactions}
}

// AccountHistory is the read-only per-account projection of the
// ledger: one entry per direction the account participated in, with
// incoming transfers re-tagged as deposits and a reconstructed
// balance-after on each entry.
func (s *StatementService) AccountHistory(accountID string) ([]models.AccountEntry, error) {
	account, err := s.accounts.GetByID(accountID)
	if err != nil {
		return nil, err
	}
	return s.projectHistory(account), nil
}

// Build assembles the statement for [start, end] inclusive. The
// closing balance is the live balance, not the balance as of end; the
// opening balance is reconstructed by unwinding, from the live
// balance, the effect of every entry dated start or later.
func (s *StatementService) Build(accountID string, start, end time.Time) (*models.Statement, error) {
	account, err := s.accounts.GetByID(accountID)
	if err != nil {
		return nil, err
	}
	history := s.projectHistory(account)

	opening := account.Balance
	var inRange []models.AccountEntry
	var summary models.StatementSummary
	for _, entry := range history {
		if !entry.Timestamp.Before(start) {
			opening -= entryEffect(entry)
		}
		if entry.Timestamp.Before(start) || entry.Timestamp.After(end) {
			continue
		}
		inRange = append(inRange, entry)
		switch entry.Kind {
		case models.TxKindDeposit:
			summary.TotalDeposits += entry.Amount
		case models.TxKindWithdrawal:
			summary.TotalWithdrawals += entry.Amount
		case models.TxKindTransfer:
			summary.TotalTransfers += entry.Amount
		}
		summary.TotalFees += entry.Fee
	}

	// Newest first for display.
	sort.Slice(inRange, func(i, j int) bool {
		return inRange[i].Timestamp.After(inRange[j].Timestamp)
	})

	return &models.Statement{
		AccountID:      account.ID,
		AccountNumber:  account.AccountNumber,
		HolderName:     account.FullName,
		PeriodStart:    start,
		PeriodEnd:      end,
		OpeningBalance: opening,
		ClosingBalance: account.Balance,
		Entries:        inRange,
		Summary:        summary,
	}, nil
}

// projectHistory walks the account's ledger records oldest first,
// then assigns balance-after values by unwinding from the live
// balance, newest entry backward.
func (s *StatementService) projectHistory(account models.Account) []models.AccountEntry {
	records := s.transactions.ListByAccount(account.AccountNumber)
	entries := make([]models.AccountEntry, 0, len(records))
	for _, tx := range records {
		if tx.FromAccount == account.AccountNumber {
			entries = append(entries, models.AccountEntry{Transaction: tx})
		}
		if tx.ToAccount == account.AccountNumber && tx.Kind == models.TxKindTransfer {
			incoming := tx
			incoming.Kind = models.TxKindDeposit
			entries = append(entries, models.AccountEntry{Transaction: incoming})
		}
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Timestamp.Before(entries[j].Timestamp)
	})
	running := account.Balance
	for i := len(entries) - 1; i >= 0; i-- {
		entries[i].BalanceAfter = running
		running -= entryEffect(entries[i])
	}
	return entries
}

// entryEffect is the signed change an entry applied to the account
// balance: deposits add the principal, withdrawals remove it, outgoing
// transfers remove principal plus fee.
func entryEffect(entry models.AccountEntry) int64 {
	switch entry.Kind {
	case models.TxKindDeposit:
		return entry.Amount
	case models.TxKindWithdrawal:
		return -entry.Amount
	case models.TxKindTransfer:
		return -entry.TotalAmount
	}
	return 0
}
