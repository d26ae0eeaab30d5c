package config

import (
	"testing"
	"time"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{"TELEGRAM_TOKEN", "TELEGRAM_ALLOWED_USERS", "DATABASE_URL", "STORE_BACKEND", "STORE_PATH", "TIMEZONE",
		"TICK_INTERVAL_SECONDS", "REPORT_INTERVAL_HOURS"} {
		t.Setenv(key, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.DatabaseURL != "routine_tracker.db" {
		t.Errorf("DatabaseURL = %q", cfg.DatabaseURL)
	}
	if cfg.StoreBackend != BackendSQLite {
		t.Errorf("StoreBackend = %q", cfg.StoreBackend)
	}
	if cfg.StorePath != "routine-data" {
		t.Errorf("StorePath = %q", cfg.StorePath)
	}
	if cfg.Timezone != "Asia/Dhaka" {
		t.Errorf("Timezone = %q", cfg.Timezone)
	}
	if cfg.TickInterval != time.Second {
		t.Errorf("TickInterval = %v", cfg.TickInterval)
	}
	if cfg.ReportInterval != 0 {
		t.Errorf("ReportInterval = %v, want disabled", cfg.ReportInterval)
	}
	if err := cfg.Validate(); err == nil {
		t.Error("Validate without token should fail")
	}
}

func TestLoadOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("TELEGRAM_TOKEN", " abc ")
	t.Setenv("TELEGRAM_ALLOWED_USERS", "1001, 2002")
	t.Setenv("STORE_BACKEND", "DISKV")
	t.Setenv("TIMEZONE", "UTC")
	t.Setenv("TICK_INTERVAL_SECONDS", "5")
	t.Setenv("REPORT_INTERVAL_HOURS", "3")
	t.Setenv("DAILY_REPORT_AT", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.TelegramToken != "abc" {
		t.Errorf("TelegramToken = %q", cfg.TelegramToken)
	}
	if cfg.StoreBackend != BackendDiskv {
		t.Errorf("StoreBackend = %q", cfg.StoreBackend)
	}
	if cfg.TickInterval != 5*time.Second || cfg.ReportInterval != 3*time.Hour {
		t.Errorf("intervals = %v, %v", cfg.TickInterval, cfg.ReportInterval)
	}
	if cfg.DailyReportAt != "" {
		t.Errorf("DailyReportAt = %q, want disabled", cfg.DailyReportAt)
	}
	if len(cfg.AllowedUsers) != 2 || cfg.AllowedUsers[0] != 1001 || cfg.AllowedUsers[1] != 2002 {
		t.Errorf("AllowedUsers = %v", cfg.AllowedUsers)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate: %v", err)
	}
}

func TestLoadRejectsBadValues(t *testing.T) {
	cases := map[string][2]string{
		"backend":  {"STORE_BACKEND", "redis"},
		"timezone": {"TIMEZONE", "Mars/Olympus"},
		"users":    {"TELEGRAM_ALLOWED_USERS", "1001,bob"},
	}
	for name, kv := range cases {
		t.Run(name, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(kv[0], kv[1])
			if _, err := Load(); err == nil {
				t.Fatalf("Load with %s=%s should fail", kv[0], kv[1])
			}
		})
	}
}

func TestValidateRequiresAllowedUsers(t *testing.T) {
	clearEnv(t)
	t.Setenv("TELEGRAM_TOKEN", "abc")
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if err := cfg.Validate(); err == nil {
		t.Fatal("Validate without allowed users should fail")
	}
}
