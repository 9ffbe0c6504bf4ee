package config

import (
	"os"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
)

type Config struct {
	AppEnv             string
	Port               string
	JWTSecret          string
	TokenTTL           time.Duration
	AllowedOrigins     string
	DataDir            string
	MaxLoginAttempts   int
	LockDuration       time.Duration
	OtpTTL             time.Duration
	DailyTransferLimit int64
	TransferFeePercent decimal.Decimal
	UnlockSweepSpec    string
	SuspiciousScanSpec string
	SnapshotSpec       string
}

func Load() Config {
	return Config{
		AppEnv:             getEnv("APP_ENV", "development"),
		Port:               getEnv("PORT", "8080"),
		JWTSecret:          getEnv("JWT_SECRET", "dev-secret-change-me"),
		TokenTTL:           getMinutes("TOKEN_TTL_MINUTES", 60),
		AllowedOrigins:     getEnv("ALLOWED_ORIGINS", "*"),
		DataDir:            getEnv("DATA_DIR", "data"),
		MaxLoginAttempts:   getInt("MAX_LOGIN_ATTEMPTS", 5),
		LockDuration:       getMinutes("LOCK_DURATION_MINUTES", 15),
		OtpTTL:             getMinutes("OTP_TTL_MINUTES", 2),
		DailyTransferLimit: getInt64("DAILY_TRANSFER_LIMIT_MINOR", 500000000),
		TransferFeePercent: getDecimal("TRANSFER_FEE_PERCENT", "0.5"),
		UnlockSweepSpec:    getEnv("UNLOCK_SWEEP_SCHEDULE", "@every 1m"),
		SuspiciousScanSpec: getEnv("SUSPICIOUS_SCAN_SCHEDULE", "@every 5m"),
		SnapshotSpec:       getEnv("SNAPSHOT_SCHEDULE", "@every 10m"),
	}
}

func getEnv(key, fallback string) string {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	return value
}

func getInt(key string, fallback int) int {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return parsed
}

func getInt64(key string, fallback int64) int64 {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	parsed, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return fallback
	}
	return parsed
}

func getMinutes(key string, fallbackMinutes int) time.Duration {
	raw := os.Getenv(key)
	if raw == "" {
		return time.Duration(fallbackMinutes) * time.Minute
	}
	parsed, err := strconv.Atoi(raw)
	if err != nil {
		return time.Duration(fallbackMinutes) * time.Minute
	}
	return time.Duration(parsed) * time.Minute
}

func getDecimal(key, fallback string) decimal.Decimal {
	raw := os.Getenv(key)
	if raw == "" {
		raw = fallback
	}
	parsed, err := decimal.NewFromString(raw)
	if err != nil {
		parsed, _ = decimal.NewFromString(fallback)
	}
	return parsed
}
