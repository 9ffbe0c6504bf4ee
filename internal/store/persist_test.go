package store

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"bankcore/internal/models"
)

func TestPersisterRoundTrip(t *testing.T) {
	dir := t.TempDir()
	p := NewPersister(dir)

	accounts := NewAccountStore()
	if err := accounts.Create(testAccount("a1", "alice", "100000001", models.RoleUser, 12345)); err != nil {
		t.Fatalf("create: %v", err)
	}
	transactions := NewTransactionStore()
	tx := transactions.Append(testTransfer("100000001", "100000002", 1000, 5, time.Now()))
	attempts := NewAttemptStore()
	attempts.Append(models.LoginAttempt{Identifier: "alice", Status: models.AttemptStatusSuccess, Timestamp: time.Now()})

	if err := p.Save(accounts, transactions, attempts); err != nil {
		t.Fatalf("save: %v", err)
	}

	accounts2 := NewAccountStore()
	transactions2 := NewTransactionStore()
	attempts2 := NewAttemptStore()
	if err := p.Load(accounts2, transactions2, attempts2); err != nil {
		t.Fatalf("load: %v", err)
	}

	got, err := accounts2.GetByID("a1")
	if err != nil {
		t.Fatalf("account lost in round trip: %v", err)
	}
	if got.Balance != 12345 {
		t.Fatalf("expected balance 12345, got %d", got.Balance)
	}
	if _, err := transactions2.GetByID(tx.ID); err != nil {
		t.Fatalf("transaction lost in round trip: %v", err)
	}
	if len(attempts2.List()) != 1 {
		t.Fatalf("expected 1 attempt, got %d", len(attempts2.List()))
	}
}

func TestPersisterLoadEmptyDir(t *testing.T) {
	p := NewPersister(t.TempDir())
	if err := p.Load(NewAccountStore(), NewTransactionStore(), NewAttemptStore()); err != nil {
		t.Fatalf("expected empty dir to load cleanly, got %v", err)
	}
}

func TestPersisterLoadCorruptFile(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, accountsFile), []byte("{not json"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	p := NewPersister(dir)
	if err := p.Load(NewAccountStore(), NewTransactionStore(), NewAttemptStore()); err == nil {
		t.Fatal("expected decode error for corrupt table")
	}
}
