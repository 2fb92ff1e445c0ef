package config

import (
	"os"
	"strconv"
	"strings"
)

type Env struct {
	AppAddr string
	GinMode string

	DBUser string
	DBPass string
	DBHost string
	DBName string

	// Minimum deposit ratio (percent of the invoice) a booking must have paid
	// before it can be activated.
	DepositRatioPercent int

	// Maximum number of edit attempts per booking.
	MaxEditAttempts int

	// Path of the bolt file backing the payment idempotency guard.
	IdempotencyDBPath string

	JWTSecret string
}

func LoadEnv() Env {
	env := Env{
		AppAddr:             getenv("APP_ADDR", ":8080"),
		GinMode:             strings.TrimSpace(os.Getenv("GIN_MODE")),
		DBUser:              getenv("DB_USER", "root"),
		DBPass:              strings.TrimSpace(os.Getenv("DB_PASS")),
		DBHost:              getenv("DB_HOST", "127.0.0.1:3306"),
		DBName:              getenv("DB_NAME", "ferryops"),
		DepositRatioPercent: getenvInt("DEPOSIT_RATIO_PERCENT", 50),
		MaxEditAttempts:     getenvInt("MAX_EDIT_ATTEMPTS", 3),
		IdempotencyDBPath:   getenv("IDEMPOTENCY_DB", "idempotency.db"),
		JWTSecret:           getenv("JWT_SECRET", "super-secret-key-change-me"),
	}
	return env
}

func getenv(key, def string) string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	return v
}

func getenvInt(key string, def int) int {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return def
	}
	return n
}
