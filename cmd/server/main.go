package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"bankcore/internal/config"
	"bankcore/internal/handlers"
	"bankcore/internal/scheduler"
	"bankcore/internal/services"
	"bankcore/internal/store"
	"bankcore/internal/websocket"

	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	accounts := store.NewAccountStore()
	transactions := store.NewTransactionStore()
	attempts := store.NewAttemptStore()
	challenges := store.NewChallengeStore()

	persister := store.NewPersister(cfg.DataDir)
	if err := persister.Load(accounts, transactions, attempts); err != nil {
		log.Fatalf("failed to load persisted state: %v", err)
	}
	if len(accounts.ListAll()) == 0 {
		seeded, err := store.SeedAccounts(time.Now())
		if err != nil {
			log.Fatalf("failed to build seed accounts: %v", err)
		}
		for _, account := range seeded {
			if err := accounts.Create(account); err != nil {
				log.Fatalf("failed to seed account %s: %v", account.Username, err)
			}
		}
		log.Printf("seeded %d accounts", len(seeded))
	}

	hub := websocket.NewHub()
	authService := services.NewAuthService(accounts, attempts, hub, cfg.MaxLoginAttempts, cfg.LockDuration)
	otpService := services.NewOtpService(accounts, challenges, authService, cfg.OtpTTL)
	ledger := services.NewLedgerService(accounts, transactions, hub, cfg.TransferFeePercent, cfg.DailyTransferLimit)
	statements := services.NewStatementService(accounts, transactions)
	admin := services.NewAdminService(accounts, hub, cfg.LockDuration)

	jobs := scheduler.NewJobs(accounts, transactions, attempts, persister, hub)
	sched := scheduler.New(jobs, cfg)
	sched.Start()

	handler := handlers.New(cfg, accounts, attempts, transactions, authService, otpService, ledger, statements, admin, hub)
	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      handler.Routes(),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("banking core API listening on %s", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, syscall.SIGINT, syscall.SIGTERM)
	<-shutdown

	<-sched.Stop().Done()
	if err := persister.Save(accounts, transactions, attempts); err != nil {
		log.Printf("failed to save state: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("shutdown error: %v", err)
	}
}
