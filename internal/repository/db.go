package repository

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"routine-tracker/internal/model"
)

// DefaultDSN is the database file used when none is configured.
const DefaultDSN = "routine_tracker.db"

// Pragmas applied to every connection. The bot tick and the CLI may open
// the same file at once.
var sqlitePragmas = []string{
	"PRAGMA journal_mode=WAL",
	"PRAGMA busy_timeout=5000",
	"PRAGMA synchronous=NORMAL",
}

// NewDB opens the SQLite file holding the state blobs and subscribers and
// migrates both tables.
func NewDB(dsn string) (*gorm.DB, error) {
	return openDB(dsn, logger.Warn)
}

// NewQuietDB is NewDB without query logging, for one-shot CLI commands.
func NewQuietDB(dsn string) (*gorm.DB, error) {
	return openDB(dsn, logger.Silent)
}

func openDB(dsn string, level logger.LogLevel) (*gorm.DB, error) {
	if strings.TrimSpace(dsn) == "" {
		dsn = DefaultDSN
	}
	if err := prepareSQLitePath(dsn); err != nil {
		return nil, err
	}

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.New(
			log.New(os.Stdout, "", log.LstdFlags),
			logger.Config{
				SlowThreshold:             time.Second,
				LogLevel:                  level,
				IgnoreRecordNotFoundError: true,
			},
		),
	})
	if err != nil {
		return nil, fmt.Errorf("open db %s: %w", dsn, err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("open db %s: %w", dsn, err)
	}
	// sqlite allows one writer; a single connection keeps the pragmas in effect.
	sqlDB.SetMaxOpenConns(1)

	if !isMemoryDSN(dsn) {
		for _, pragma := range sqlitePragmas {
			if err := db.Exec(pragma).Error; err != nil {
				_ = sqlDB.Close()
				return nil, fmt.Errorf("%s: %w", pragma, err)
			}
		}
	}

	if err := db.AutoMigrate(&model.Blob{}, &model.User{}); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("migrate db: %w", err)
	}
	return db, nil
}

func isMemoryDSN(dsn string) bool {
	return strings.Contains(dsn, ":memory:") || strings.Contains(dsn, "mode=memory")
}

// prepareSQLitePath creates the directory of a file DSN.
func prepareSQLitePath(dsn string) error {
	if isMemoryDSN(dsn) {
		return nil
	}
	path, _, _ := strings.Cut(strings.TrimPrefix(dsn, "file:"), "?")
	dir := filepath.Dir(path)
	if dir == "." || dir == "" {
		return nil
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create db dir %q: %w", dir, err)
	}
	return nil
}
