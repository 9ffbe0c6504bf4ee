package services

import (
	"sync"
	"testing"
	"time"

	"bankcore/internal/models"
	"bankcore/internal/store"
	"bankcore/internal/websocket"

	"github.com/shopspring/decimal"
)

type stubBalanceHub struct {
	mu      sync.Mutex
	updates []websocket.BalanceUpdate
}

func (h *stubBalanceHub) BroadcastBalance(accountID string, update websocket.BalanceUpdate) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.updates = append(h.updates, update)
}

type ledgerFixture struct {
	accounts     *store.AccountStore
	transactions *store.TransactionStore
	hub          *stubBalanceHub
	svc          *LedgerService
	clock        time.Time
}

func newLedgerFixture(t *testing.T) *ledgerFixture {
	t.Helper()
	f := &ledgerFixture{
		accounts:     store.NewAccountStore(),
		transactions: store.NewTransactionStore(),
		hub:          &stubBalanceHub{},
		clock:        time.Date(2026, 3, 10, 9, 0, 0, 0, time.Local),
	}
	f.svc = NewLedgerService(f.accounts, f.transactions, f.hub, decimal.RequireFromString("0.5"), 500000000)
	f.svc.now = func() time.Time { return f.clock }

	seed := []models.Account{
		{ID: "u1", Username: "alice", AccountNumber: "100000001", Balance: 5000000},
		{ID: "u2", Username: "bob", AccountNumber: "100000002", Balance: 1000000},
	}
	for _, a := range seed {
		if err := f.accounts.Create(a); err != nil {
			t.Fatalf("seed %s: %v", a.Username, err)
		}
	}
	return f
}

func (f *ledgerFixture) balance(t *testing.T, number string) int64 {
	t.Helper()
	account, err := f.accounts.GetByNumber(number)
	if err != nil {
		t.Fatalf("get %s: %v", number, err)
	}
	return account.Balance
}

func TestTransferDebitsPrincipalPlusFee(t *testing.T) {
	f := newLedgerFixture(t)

	tx, err := f.svc.Transfer(TransferRequest{
		FromNumber:  "100000001",
		ToNumber:    "100000002",
		AmountMinor: 1000000,
		Description: "rent",
		InitiatedBy: "u1",
	})
	if err != nil {
		t.Fatalf("transfer: %v", err)
	}
	if tx.Fee != 5000 || tx.TotalAmount != 1005000 {
		t.Fatalf("expected fee 5000 and total 1005000, got %d and %d", tx.Fee, tx.TotalAmount)
	}
	if tx.Status != models.TxStatusCompleted {
		t.Fatalf("expected completed, got %s", tx.Status)
	}

	if got := f.balance(t, "100000001"); got != 5000000-1005000 {
		t.Fatalf("source balance %d", got)
	}
	if got := f.balance(t, "100000002"); got != 1000000+1000000 {
		t.Fatalf("destination balance %d", got)
	}
	// The fee leaves circulation: total held drops by exactly the fee.
	total := f.balance(t, "100000001") + f.balance(t, "100000002")
	if total != 5000000+1000000-5000 {
		t.Fatalf("money conservation broken, total %d", total)
	}
	if len(f.hub.updates) != 2 {
		t.Fatalf("expected 2 balance broadcasts, got %d", len(f.hub.updates))
	}
}

func TestTransferInsufficientForFee(t *testing.T) {
	f := newLedgerFixture(t)
	// Principal alone fits the balance; principal plus fee does not.
	_, err := f.svc.Transfer(TransferRequest{
		FromNumber:  "100000001",
		ToNumber:    "100000002",
		AmountMinor: 5000000,
	})
	if err != ErrInsufficientFunds {
		t.Fatalf("expected ErrInsufficientFunds, got %v", err)
	}
	if got := f.balance(t, "100000001"); got != 5000000 {
		t.Fatalf("rejected transfer mutated balance to %d", got)
	}
	if len(f.transactions.ListAll()) != 0 {
		t.Fatal("rejected transfer left a ledger entry")
	}
}

func TestTransferInvalidInputs(t *testing.T) {
	f := newLedgerFixture(t)
	if _, err := f.svc.Transfer(TransferRequest{FromNumber: "100000001", ToNumber: "999999999", AmountMinor: 100}); err != ErrInvalidAccount {
		t.Fatalf("unknown destination: %v", err)
	}
	if _, err := f.svc.Transfer(TransferRequest{FromNumber: "100000001", ToNumber: "100000002", AmountMinor: 0}); err != ErrInvalidAmount {
		t.Fatalf("zero amount: %v", err)
	}
	if _, err := f.svc.Transfer(TransferRequest{FromNumber: "100000001", ToNumber: "100000002", AmountMinor: -50}); err != ErrInvalidAmount {
		t.Fatalf("negative amount: %v", err)
	}
}

func TestTransferDailyLimit(t *testing.T) {
	f := newLedgerFixture(t)
	rich, err := f.accounts.GetByNumber("100000001")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	rich.Balance = 2000000000
	if err := f.accounts.Update(rich); err != nil {
		t.Fatalf("update: %v", err)
	}

	if _, err := f.svc.Transfer(TransferRequest{FromNumber: "100000001", ToNumber: "100000002", AmountMinor: 300000000}); err != nil {
		t.Fatalf("first transfer: %v", err)
	}
	fromAfterFirst := f.balance(t, "100000001")
	toAfterFirst := f.balance(t, "100000002")

	// 300m already sent today; another 300m crosses the 500m cap.
	_, err = f.svc.Transfer(TransferRequest{FromNumber: "100000001", ToNumber: "100000002", AmountMinor: 300000000})
	if err != ErrDailyLimitExceeded {
		t.Fatalf("expected ErrDailyLimitExceeded, got %v", err)
	}
	if f.balance(t, "100000001") != fromAfterFirst || f.balance(t, "100000002") != toAfterFirst {
		t.Fatal("rejected transfer changed balances")
	}

	// The cap is per calendar day.
	f.clock = f.clock.AddDate(0, 0, 1)
	if _, err := f.svc.Transfer(TransferRequest{FromNumber: "100000001", ToNumber: "100000002", AmountMinor: 300000000}); err != nil {
		t.Fatalf("next-day transfer: %v", err)
	}
}

func TestTransferToSelfNetsToFee(t *testing.T) {
	f := newLedgerFixture(t)
	tx, err := f.svc.Transfer(TransferRequest{FromNumber: "100000001", ToNumber: "100000001", AmountMinor: 1000000})
	if err != nil {
		t.Fatalf("self transfer: %v", err)
	}
	if got := f.balance(t, "100000001"); got != 5000000-5000 {
		t.Fatalf("expected only the fee debited, balance %d", got)
	}
	if tx.Amount != 1000000 || tx.Fee != 5000 {
		t.Fatalf("unexpected ledger entry: %+v", tx)
	}
}

func TestApproveAndRejectTransaction(t *testing.T) {
	f := newLedgerFixture(t)
	pending := f.transactions.Append(models.Transaction{
		FromAccount: "100000001",
		ToAccount:   "100000002",
		Amount:      100,
		Kind:        models.TxKindTransfer,
		Status:      models.TxStatusPending,
		Timestamp:   f.clock,
	})

	approved, err := f.svc.ApproveTransaction(pending.ID)
	if err != nil {
		t.Fatalf("approve: %v", err)
	}
	if approved.Status != models.TxStatusCompleted {
		t.Fatalf("expected completed, got %s", approved.Status)
	}
	if _, err := f.svc.RejectTransaction(pending.ID); err != store.ErrTransactionFinal {
		t.Fatalf("expected ErrTransactionFinal, got %v", err)
	}
	if _, err := f.svc.ApproveTransaction(424242); err != store.ErrTransactionNotFound {
		t.Fatalf("expected ErrTransactionNotFound, got %v", err)
	}
}
