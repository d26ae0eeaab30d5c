package app

import (
	"context"
	"fmt"
	"log"
	"sync"

	"gorm.io/gorm"

	"routine-tracker/internal/config"
	"routine-tracker/internal/repository"
	"routine-tracker/internal/service"
)

// App is the single application state shared by every front end. All
// operations go through Do so ticks and user actions never interleave
// inside an operation.
type App struct {
	mu sync.Mutex

	Clock     *service.Clock
	Routine   *service.RoutineService
	Study     *service.StudyService
	Reports   *service.ReportService
	Reminder  *service.ReminderService
	Refresher *service.Refresher
	Users     *repository.UserRepository

	db *gorm.DB
}

// New opens the configured store and loads the persisted state.
func New(ctx context.Context, cfg config.Config) (*App, error) {
	return open(ctx, cfg, repository.NewDB)
}

// NewQuiet is New with database logging turned off.
func NewQuiet(ctx context.Context, cfg config.Config) (*App, error) {
	return open(ctx, cfg, repository.NewQuietDB)
}

func open(ctx context.Context, cfg config.Config, openDB func(string) (*gorm.DB, error)) (*App, error) {
	db, err := openDB(cfg.DatabaseURL)
	if err != nil {
		return nil, err
	}

	var store repository.KVStore
	switch cfg.StoreBackend {
	case config.BackendDiskv:
		disk, err := repository.NewDiskStore(cfg.StorePath)
		if err != nil {
			closeDB(db)
			return nil, err
		}
		store = disk
	default:
		store = repository.NewBlobStore(db)
	}

	clock, err := service.NewClock(cfg.Timezone)
	if err != nil {
		closeDB(db)
		return nil, err
	}

	a := NewWithStore(ctx, store, clock)
	a.Users = repository.NewUserRepository(db)
	a.db = db
	log.Printf("[info] state loaded from %s store, zone %s", cfg.StoreBackend, clock.Location())
	return a, nil
}

// NewWithStore wires the services over an already opened store. Users is
// left nil.
func NewWithStore(ctx context.Context, store repository.KVStore, clock *service.Clock) *App {
	reports := service.NewReportService(repository.NewReportRepository(store), clock)
	routine := service.NewRoutineService(ctx, repository.NewRoutineRepository(store), reports, clock)
	study := service.NewStudyService(ctx, repository.NewSubjectRepository(store), clock)
	return &App{
		Clock:     clock,
		Routine:   routine,
		Study:     study,
		Reports:   reports,
		Reminder:  service.NewReminderService(routine, study, reports),
		Refresher: service.NewRefresher(routine, study, clock),
	}
}

// Do runs fn while holding the state lock. The schedule and study plan are
// re-read first, so a CLI command and a running server sharing one store
// each start from the other's last write.
func (a *App) Do(fn func() error) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.reload(context.Background())
	return fn()
}

// Tick runs one refresher pass under the state lock.
func (a *App) Tick(ctx context.Context) service.TickResult {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.reload(ctx)
	return a.Refresher.Tick(ctx)
}

func (a *App) reload(ctx context.Context) {
	a.Routine.Reload(ctx)
	a.Study.Reload(ctx)
}

func (a *App) Close() error {
	if a.db == nil {
		return nil
	}
	sqlDB, err := a.db.DB()
	if err != nil {
		return fmt.Errorf("close db: %w", err)
	}
	return sqlDB.Close()
}

func closeDB(db *gorm.DB) {
	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
}
