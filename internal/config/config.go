package config

import (
	"fmt"
	"os"
	"strconv"
)

// Config holds application configuration
type Config struct {
	Port     string
	DBConn   string
	LogLevel string

	// IBANPrefix is the bank identifier embedded in generated IBAN and
	// BIC/SWIFT values.
	IBANPrefix string
	// MaxCardsPerAccount caps how many cards a single account may carry.
	MaxCardsPerAccount int

	// SMTP settings for back-office notifications. Notifications are
	// disabled when SMTPHost or OpsEmail is empty.
	SMTPHost     string
	SMTPPort     string
	SMTPUsername string
	SMTPPassword string
	SenderEmail  string
	OpsEmail     string
}

// NewConfig loads configuration from environment variables
func NewConfig() (*Config, error) {
	cfg := &Config{
		Port:         getEnv("PORT", "8080"),
		DBConn:       getEnv("DB_CONN", "host=localhost port=5432 user=banking password=banking dbname=banking sslmode=disable"),
		LogLevel:     getEnv("LOG_LEVEL", "INFO"),
		IBANPrefix:   getEnv("IBAN_PREFIX", "DTKEKENA"),
		SMTPHost:     getEnv("SMTP_HOST", ""),
		SMTPPort:     getEnv("SMTP_PORT", "587"),
		SMTPUsername: getEnv("SMTP_USERNAME", ""),
		SMTPPassword: getEnv("SMTP_PASSWORD", ""),
		SenderEmail:  getEnv("SENDER_EMAIL", "noreply@kitucode.tech"),
		OpsEmail:     getEnv("OPS_EMAIL", ""),
	}

	maxCards, err := strconv.Atoi(getEnv("MAX_CARDS_PER_ACCOUNT", "2"))
	if err != nil || maxCards < 1 {
		return nil, fmt.Errorf("MAX_CARDS_PER_ACCOUNT must be a positive integer")
	}
	cfg.MaxCardsPerAccount = maxCards

	if cfg.DBConn == "" {
		return nil, fmt.Errorf("DB_CONN is required")
	}
	if cfg.IBANPrefix == "" {
		return nil, fmt.Errorf("IBAN_PREFIX is required")
	}

	return cfg, nil
}

func getEnv(key, defaultVal string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultVal
}
