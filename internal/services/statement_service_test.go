package services

import (
	"testing"
	"time"

	"bankcore/internal/models"
	"bankcore/internal/store"

	"github.com/shopspring/decimal"
)

type statementFixture struct {
	accounts     *store.AccountStore
	transactions *store.TransactionStore
	ledger       *LedgerService
	svc          *StatementService
	clock        time.Time
}

func newStatementFixture(t *testing.T) *statementFixture {
	t.Helper()
	f := &statementFixture{
		accounts:     store.NewAccountStore(),
		transactions: store.NewTransactionStore(),
		clock:        time.Date(2026, 3, 1, 12, 0, 0, 0, time.Local),
	}
	f.ledger = NewLedgerService(f.accounts, f.transactions, nil, decimal.RequireFromString("0.5"), 500000000)
	f.ledger.now = func() time.Time { return f.clock }
	f.svc = NewStatementService(f.accounts, f.transactions)

	seed := []models.Account{
		{ID: "u1", Username: "alice", AccountNumber: "100000001", FullName: "Alice Example", Balance: 10000000},
		{ID: "u2", Username: "bob", AccountNumber: "100000002", Balance: 10000000},
	}
	for _, a := range seed {
		if err := f.accounts.Create(a); err != nil {
			t.Fatalf("seed %s: %v", a.Username, err)
		}
	}
	return f
}

func (f *statementFixture) transfer(t *testing.T, from, to string, amount int64) {
	t.Helper()
	if _, err := f.ledger.Transfer(TransferRequest{FromNumber: from, ToNumber: to, AmountMinor: amount}); err != nil {
		t.Fatalf("transfer %s -> %s: %v", from, to, err)
	}
}

func TestAccountHistoryProjection(t *testing.T) {
	f := newStatementFixture(t)

	f.transfer(t, "100000001", "100000002", 1000000) // out: -1005000
	f.clock = f.clock.Add(time.Hour)
	f.transfer(t, "100000002", "100000001", 400000) // in, shown as deposit: +400000

	history, err := f.svc.AccountHistory("u1")
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if len(history) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(history))
	}
	if history[0].Kind != models.TxKindTransfer || history[1].Kind != models.TxKindDeposit {
		t.Fatalf("expected outgoing transfer then incoming deposit, got %s, %s", history[0].Kind, history[1].Kind)
	}
	if history[0].BalanceAfter != 10000000-1005000 {
		t.Fatalf("first balance-after %d", history[0].BalanceAfter)
	}
	if history[1].BalanceAfter != 10000000-1005000+400000 {
		t.Fatalf("second balance-after %d", history[1].BalanceAfter)
	}

	account, _ := f.accounts.GetByID("u1")
	if history[len(history)-1].BalanceAfter != account.Balance {
		t.Fatal("newest balance-after must equal the live balance")
	}
}

func TestAccountHistoryUnknownAccount(t *testing.T) {
	f := newStatementFixture(t)
	if _, err := f.svc.AccountHistory("ghost"); err != store.ErrAccountNotFound {
		t.Fatalf("expected ErrAccountNotFound, got %v", err)
	}
}

func TestStatementOpeningBalanceRoundTrip(t *testing.T) {
	f := newStatementFixture(t)

	// Activity before the statement window.
	f.transfer(t, "100000001", "100000002", 500000)
	balanceAtStart := f.balanceOf(t, "100000001")

	start := f.clock.Add(time.Hour)
	f.clock = start.Add(time.Hour)
	f.transfer(t, "100000001", "100000002", 1000000)
	f.clock = f.clock.Add(time.Hour)
	f.transfer(t, "100000002", "100000001", 200000)
	end := f.clock.Add(time.Hour)

	stmt, err := f.svc.Build("u1", start, end)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if stmt.OpeningBalance != balanceAtStart {
		t.Fatalf("opening balance %d, want %d", stmt.OpeningBalance, balanceAtStart)
	}
	if stmt.ClosingBalance != f.balanceOf(t, "100000001") {
		t.Fatalf("closing balance %d", stmt.ClosingBalance)
	}

	// Opening plus the signed in-range effects lands on closing.
	running := stmt.OpeningBalance
	for _, entry := range stmt.Entries {
		running += entryEffect(entry)
	}
	if running != stmt.ClosingBalance {
		t.Fatalf("entries do not reconcile: %d vs %d", running, stmt.ClosingBalance)
	}
}

func TestStatementWindowAndSummary(t *testing.T) {
	f := newStatementFixture(t)

	f.transfer(t, "100000001", "100000002", 500000) // before window
	start := f.clock.Add(time.Hour)
	f.clock = start.Add(time.Minute)
	f.transfer(t, "100000001", "100000002", 1000000) // in window, fee 5000
	f.clock = f.clock.Add(time.Minute)
	f.transfer(t, "100000002", "100000001", 200000) // in window, deposit for u1
	end := f.clock
	f.clock = end.Add(time.Hour)
	f.transfer(t, "100000001", "100000002", 700000) // after window

	stmt, err := f.svc.Build("u1", start, end)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if len(stmt.Entries) != 2 {
		t.Fatalf("expected 2 in-range entries, got %d", len(stmt.Entries))
	}
	// Newest first for display.
	if !stmt.Entries[0].Timestamp.After(stmt.Entries[1].Timestamp) {
		t.Fatal("entries not newest-first")
	}
	if stmt.Summary.TotalTransfers != 1000000 {
		t.Fatalf("transfer summary %d", stmt.Summary.TotalTransfers)
	}
	if stmt.Summary.TotalDeposits != 200000 {
		t.Fatalf("deposit summary %d", stmt.Summary.TotalDeposits)
	}
	// Fees sum over every row shown, including the sender's fee on the
	// incoming entry.
	if stmt.Summary.TotalFees != 5000+1000 {
		t.Fatalf("fee summary %d", stmt.Summary.TotalFees)
	}
}

func (f *statementFixture) balanceOf(t *testing.T, number string) int64 {
	t.Helper()
	account, err := f.accounts.GetByNumber(number)
	if err != nil {
		t.Fatalf("get %s: %v", number, err)
	}
	return account.Balance
}
