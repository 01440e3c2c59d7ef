package task

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/icodeforyou/spotprice-go/config"
	"github.com/robfig/cron/v3"
)

type Tasks struct {
	mu              sync.Mutex
	cron            *cron.Cron
	logger          *slog.Logger
	cnfg            *config.AppConfig
	entries         []cron.EntryID
	newPrefetch     func(*config.AppConfig) func()
	newMaintenance  func(*config.AppConfig) func()
	PrefetchTask    func()
	MaintenanceTask func()
}

// NewTasks requests today's prices for the configured zones before returning.
func NewTasks(logger *slog.Logger, fetcher DayFetcher, db Maintainer, cnfg *config.AppConfig) *Tasks {
	logger = logger.With(slog.String("module", "tasks"))
	prefetchLogger := logger.With(slog.String("task", "prefetch"))
	FetchToday(prefetchLogger, fetcher, cnfg.Schedule, cnfg.EnergyPrice)
	newPrefetch := func(c *config.AppConfig) func() {
		return NewPrefetchTask(prefetchLogger, fetcher, c.Schedule, c.EnergyPrice)
	}
	maintenanceLogger := logger.With(slog.String("task", "maintenance"))
	newMaintenance := func(c *config.AppConfig) func() {
		return NewMaintenanceTask(maintenanceLogger, db, c)
	}
	return &Tasks{
		cron:            cron.New(),
		logger:          logger,
		cnfg:            cnfg,
		newPrefetch:     newPrefetch,
		newMaintenance:  newMaintenance,
		PrefetchTask:    newPrefetch(cnfg),
		MaintenanceTask: newMaintenance(cnfg),
	}
}

func (t *Tasks) schedule() error {
	prefetchID, err := t.cron.AddFunc(t.cnfg.Schedule.GetRunAt(), t.PrefetchTask)
	if err != nil {
		return fmt.Errorf("invalid schedule.run_at %q: %w", t.cnfg.Schedule.GetRunAt(), err)
	}
	maintenanceID, err := t.cron.AddFunc(t.cnfg.Schedule.GetMaintenanceAt(), t.MaintenanceTask)
	if err != nil {
		t.cron.Remove(prefetchID)
		return fmt.Errorf("invalid schedule.maintenance_at %q: %w", t.cnfg.Schedule.GetMaintenanceAt(), err)
	}
	t.entries = []cron.EntryID{prefetchID, maintenanceID}
	return nil
}

func (t *Tasks) Run() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if err := t.schedule(); err != nil {
		return err
	}
	t.cron.Start()
	return nil
}

// Reload replaces the schedule with the one in cnfg. The old schedule is kept if
// the new one is invalid.
func (t *Tasks) Reload(cnfg *config.AppConfig) {
	t.mu.Lock()
	defer t.mu.Unlock()

	old, oldEntries := t.cnfg, t.entries
	oldPrefetch, oldMaintenance := t.PrefetchTask, t.MaintenanceTask
	for _, id := range oldEntries {
		t.cron.Remove(id)
	}

	t.cnfg = cnfg
	t.PrefetchTask = t.newPrefetch(cnfg)
	t.MaintenanceTask = t.newMaintenance(cnfg)
	if err := t.schedule(); err != nil {
		t.logger.Error("invalid schedule, keeping the previous one", slog.Any("error", err))
		t.cnfg, t.PrefetchTask, t.MaintenanceTask = old, oldPrefetch, oldMaintenance
		if err := t.schedule(); err != nil {
			t.logger.Error("failed to restore the previous schedule", slog.Any("error", err))
		}
		return
	}
	t.logger.Info("schedule reloaded",
		slog.String("runAt", cnfg.Schedule.GetRunAt()),
		slog.String("maintenanceAt", cnfg.Schedule.GetMaintenanceAt()))
}

func (t *Tasks) Stop() context.Context {
	return t.cron.Stop()
}
