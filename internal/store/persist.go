package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"bankcore/internal/models"
)

const (
	accountsFile     = "accounts.json"
	transactionsFile = "transactions.json"
	attemptsFile     = "login_attempts.json"
)

// Persister reads and writes the one-JSON-document-per-table state
// layout: accounts list, global transaction list, login-attempt log.
type Persister struct {
	dir string
}

func NewPersister(dir string) *Persister {
	return &Persister{dir: dir}
}

// Load restores the stores from disk. A missing file means first run
// for that table and is skipped; a file that cannot be decoded is an
// error the caller should treat as fatal.
func (p *Persister) Load(accounts *AccountStore, transactions *TransactionStore, attempts *AttemptStore) error {
	var accountRows []models.Account
	found, err := p.readTable(accountsFile, &accountRows)
	if err != nil {
		return err
	}
	if found {
		if err := accounts.Restore(accountRows); err != nil {
			return fmt.Errorf("restore %s: %w", accountsFile, err)
		}
	}

	var txRows []models.Transaction
	found, err = p.readTable(transactionsFile, &txRows)
	if err != nil {
		return err
	}
	if found {
		if err := transactions.Restore(txRows); err != nil {
			return fmt.Errorf("restore %s: %w", transactionsFile, err)
		}
	}

	var attemptRows []models.LoginAttempt
	found, err = p.readTable(attemptsFile, &attemptRows)
	if err != nil {
		return err
	}
	if found {
		if err := attempts.Restore(attemptRows); err != nil {
			return fmt.Errorf("restore %s: %w", attemptsFile, err)
		}
	}
	return nil
}

func (p *Persister) Save(accounts *AccountStore, transactions *TransactionStore, attempts *AttemptStore) error {
	if err := os.MkdirAll(p.dir, 0o755); err != nil {
		return err
	}
	if err := p.writeTable(accountsFile, accounts.Snapshot()); err != nil {
		return err
	}
	if err := p.writeTable(transactionsFile, transactions.Snapshot()); err != nil {
		return err
	}
	return p.writeTable(attemptsFile, attempts.Snapshot())
}

func (p *Persister) readTable(name string, out any) (bool, error) {
	data, err := os.ReadFile(filepath.Join(p.dir, name))
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}
	if err := json.Unmarshal(data, out); err != nil {
		return false, fmt.Errorf("decode %s: %w", name, err)
	}
	return true, nil
}

// writeTable writes through a temp file and renames so a crash cannot
// leave a half-written table behind.
func (p *Persister) writeTable(name string, rows any) error {
	data, err := json.MarshalIndent(rows, "", "  ")
	if err != nil {
		return err
	}
	target := filepath.Join(p.dir, name)
	tmp := target + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, target)
}
