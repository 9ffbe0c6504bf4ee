package main

import (
	"flag"
	"log"
	"time"

	"bankcore/internal/config"
	"bankcore/internal/store"

	"github.com/joho/godotenv"
)

// seed writes a fresh first-run snapshot to the data directory so the
// server starts with known accounts. Refuses to touch existing state
// unless -force is given.
func main() {
	force := flag.Bool("force", false, "overwrite existing state files")
	flag.Parse()

	_ = godotenv.Load()
	cfg := config.Load()

	accounts := store.NewAccountStore()
	transactions := store.NewTransactionStore()
	attempts := store.NewAttemptStore()
	persister := store.NewPersister(cfg.DataDir)

	if !*force {
		if err := persister.Load(accounts, transactions, attempts); err != nil {
			log.Fatalf("failed to read existing state: %v", err)
		}
		if len(accounts.ListAll()) > 0 {
			log.Fatal("state already present; use -force to overwrite")
		}
	}

	seeded, err := store.SeedAccounts(time.Now())
	if err != nil {
		log.Fatalf("failed to build seed accounts: %v", err)
	}
	fresh := store.NewAccountStore()
	for _, account := range seeded {
		if err := fresh.Create(account); err != nil {
			log.Fatalf("failed to seed account %s: %v", account.Username, err)
		}
	}
	if err := persister.Save(fresh, store.NewTransactionStore(), store.NewAttemptStore()); err != nil {
		log.Fatalf("failed to write seed state: %v", err)
	}
	log.Printf("seeded %d accounts into %s", len(seeded), cfg.DataDir)
}
