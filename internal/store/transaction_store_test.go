package store

import (
	"testing"
	"time"

	"bankcore/internal/models"
)

func testTransfer(from, to string, amount, fee int64, ts time.Time) models.Transaction {
	return models.Transaction{
		FromAccount: from,
		ToAccount:   to,
		Amount:      amount,
		Fee:         fee,
		TotalAmount: amount + fee,
		Kind:        models.TxKindTransfer,
		Status:      models.TxStatusCompleted,
		Timestamp:   ts,
	}
}

func TestTransactionStoreMonotonicIDs(t *testing.T) {
	s := NewTransactionStore()
	ts := time.Now()

	first := s.Append(testTransfer("100000001", "100000002", 1000, 5, ts))
	second := s.Append(testTransfer("100000001", "100000002", 1000, 5, ts))
	third := s.Append(testTransfer("100000001", "100000002", 1000, 5, ts.Add(-time.Hour)))

	if second.ID <= first.ID {
		t.Fatalf("same-instant ids not monotonic: %d then %d", first.ID, second.ID)
	}
	if third.ID <= second.ID {
		t.Fatalf("backdated timestamp produced non-monotonic id: %d then %d", second.ID, third.ID)
	}
}

func TestTransactionStoreSetStatus(t *testing.T) {
	s := NewTransactionStore()
	tx := testTransfer("100000001", "100000002", 1000, 5, time.Now())
	tx.Status = models.TxStatusPending
	tx = s.Append(tx)

	if _, err := s.SetStatus(999999, models.TxStatusCompleted); err != ErrTransactionNotFound {
		t.Fatalf("expected ErrTransactionNotFound, got %v", err)
	}
	updated, err := s.SetStatus(tx.ID, models.TxStatusCompleted)
	if err != nil {
		t.Fatalf("approve pending: %v", err)
	}
	if updated.Status != models.TxStatusCompleted {
		t.Fatalf("status not applied: %s", updated.Status)
	}
	if _, err := s.SetStatus(tx.ID, models.TxStatusRejected); err != ErrTransactionFinal {
		t.Fatalf("expected ErrTransactionFinal on settled transaction, got %v", err)
	}
}

func TestTransactionStoreListByAccount(t *testing.T) {
	s := NewTransactionStore()
	base := time.Now()
	s.Append(testTransfer("100000001", "100000002", 100, 1, base))
	s.Append(testTransfer("100000003", "100000001", 200, 1, base.Add(time.Second)))
	s.Append(testTransfer("100000003", "100000002", 300, 1, base.Add(2*time.Second)))

	list := s.ListByAccount("100000001")
	if len(list) != 2 {
		t.Fatalf("expected 2 transactions, got %d", len(list))
	}
	if list[0].Amount != 100 || list[1].Amount != 200 {
		t.Fatalf("expected oldest-first order, got %d then %d", list[0].Amount, list[1].Amount)
	}
}

func TestTransactionStoreSumTransfersOn(t *testing.T) {
	s := NewTransactionStore()
	day := time.Date(2026, 3, 10, 12, 0, 0, 0, time.Local)

	s.Append(testTransfer("100000001", "100000002", 1000, 5, day))
	pending := testTransfer("100000001", "100000002", 2000, 10, day.Add(time.Hour))
	pending.Status = models.TxStatusPending
	s.Append(pending)
	s.Append(testTransfer("100000001", "100000002", 4000, 20, day.AddDate(0, 0, -1)))
	s.Append(testTransfer("100000002", "100000001", 8000, 40, day))
	deposit := models.Transaction{
		ToAccount: "100000001",
		Amount:    16000,
		Kind:      models.TxKindDeposit,
		Status:    models.TxStatusCompleted,
		Timestamp: day,
	}
	s.Append(deposit)

	// Pending transfers count toward the day; other days, other senders
	// and non-transfer kinds do not.
	if sum := s.SumTransfersOn(day, "100000001"); sum != 3000 {
		t.Fatalf("expected daily sum 3000, got %d", sum)
	}
}

func TestTransactionStoreSnapshotRestore(t *testing.T) {
	s := NewTransactionStore()
	tx := s.Append(testTransfer("100000001", "100000002", 1000, 5, time.Now()))

	restored := NewTransactionStore()
	if err := restored.Restore(s.Snapshot()); err != nil {
		t.Fatalf("restore: %v", err)
	}
	got, err := restored.GetByID(tx.ID)
	if err != nil {
		t.Fatalf("restored transaction missing: %v", err)
	}
	if got.TotalAmount != 1005 {
		t.Fatalf("expected total 1005, got %d", got.TotalAmount)
	}
	next := restored.Append(testTransfer("100000001", "100000002", 100, 1, time.Now()))
	if next.ID <= tx.ID {
		t.Fatalf("restore did not recover id watermark: %d then %d", tx.ID, next.ID)
	}
}
