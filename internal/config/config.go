package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Store backends.
const (
	BackendSQLite = "sqlite"
	BackendDiskv  = "diskv"
)

// Config keeps runtime settings for the tracker.
type Config struct {
	TelegramToken  string
	AllowedUsers   []int64
	DatabaseURL    string
	StoreBackend   string
	StorePath      string
	Timezone       string
	TickInterval   time.Duration
	ReportInterval time.Duration
	DailyReportAt  string
}

// Load reads configuration from environment variables with sane defaults.
func Load() (Config, error) {
	cfg := Config{
		TelegramToken:  strings.TrimSpace(os.Getenv("TELEGRAM_TOKEN")),
		DatabaseURL:    strings.TrimSpace(os.Getenv("DATABASE_URL")),
		StoreBackend:   strings.ToLower(strings.TrimSpace(os.Getenv("STORE_BACKEND"))),
		StorePath:      strings.TrimSpace(os.Getenv("STORE_PATH")),
		Timezone:       strings.TrimSpace(os.Getenv("TIMEZONE")),
		TickInterval:   time.Duration(parsePositive(os.Getenv("TICK_INTERVAL_SECONDS"))) * time.Second,
		ReportInterval: time.Duration(parsePositive(os.Getenv("REPORT_INTERVAL_HOURS"))) * time.Hour,
	}

	users, err := parseUserIDs(os.Getenv("TELEGRAM_ALLOWED_USERS"))
	if err != nil {
		return cfg, fmt.Errorf("TELEGRAM_ALLOWED_USERS: %w", err)
	}
	cfg.AllowedUsers = users

	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = "routine_tracker.db"
	}
	if cfg.StoreBackend == "" {
		cfg.StoreBackend = BackendSQLite
	}
	if cfg.StorePath == "" {
		cfg.StorePath = "routine-data"
	}
	if cfg.Timezone == "" {
		cfg.Timezone = "Asia/Dhaka"
	}
	if cfg.TickInterval == 0 {
		cfg.TickInterval = time.Second
	}
	if at, ok := os.LookupEnv("DAILY_REPORT_AT"); ok {
		cfg.DailyReportAt = strings.TrimSpace(at)
	} else {
		cfg.DailyReportAt = "21:00"
	}

	switch cfg.StoreBackend {
	case BackendSQLite, BackendDiskv:
	default:
		return cfg, fmt.Errorf("STORE_BACKEND must be %q or %q, got %q", BackendSQLite, BackendDiskv, cfg.StoreBackend)
	}
	if _, err := time.LoadLocation(cfg.Timezone); err != nil {
		return cfg, fmt.Errorf("TIMEZONE: %w", err)
	}

	return cfg, nil
}

// Validate checks the settings the bot needs on top of Load.
func (c Config) Validate() error {
	if c.TelegramToken == "" {
		return fmt.Errorf("TELEGRAM_TOKEN is required")
	}
	// The bot drives one shared schedule, so it only answers listed users.
	if len(c.AllowedUsers) == 0 {
		return fmt.Errorf("TELEGRAM_ALLOWED_USERS is required")
	}
	return nil
}

// parseUserIDs reads a comma or space separated list of Telegram user ids.
func parseUserIDs(raw string) ([]int64, error) {
	fields := strings.FieldsFunc(raw, func(r rune) bool {
		return r == ',' || r == ' ' || r == ';'
	})
	ids := make([]int64, 0, len(fields))
	for _, f := range fields {
		id, err := strconv.ParseInt(f, 10, 64)
		if err != nil || id <= 0 {
			return nil, fmt.Errorf("invalid user id %q", f)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func parsePositive(raw string) int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n <= 0 {
		return 0
	}
	return n
}
