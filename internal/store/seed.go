package store

import (
	"time"

	"bankcore/internal/auth"
	"bankcore/internal/models"

	"github.com/google/uuid"
)

// SeedAccounts builds the first-run account set: one admin and one
// regular customer, both with OTP step-up enabled.
func SeedAccounts(now time.Time) ([]models.Account, error) {
	adminHash, err := auth.HashPassword("admin123")
	if err != nil {
		return nil, err
	}
	userHash, err := auth.HashPassword("user123")
	if err != nil {
		return nil, err
	}
	return []models.Account{
		{
			ID:            uuid.NewString(),
			Username:      "admin",
			AccountNumber: "770914162",
			FullName:      "System Administrator",
			Email:         "admin@bank.com",
			Phone:         "770914162",
			PasswordHash:  adminHash,
			Role:          models.RoleAdmin,
			Balance:       100000000,
			OtpEnabled:    true,
			CreatedAt:     now,
		},
		{
			ID:            uuid.NewString(),
			Username:      "user1",
			AccountNumber: "100000001",
			FullName:      "Ahmed Mohammed",
			Email:         "user1@email.com",
			Phone:         "771234567",
			PasswordHash:  userHash,
			Role:          models.RoleUser,
			Balance:       5000000,
			OtpEnabled:    true,
			CreatedAt:     now,
		},
	}, nil
}
