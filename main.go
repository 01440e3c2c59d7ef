package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/icodeforyou/spotprice-go/app"
	"github.com/icodeforyou/spotprice-go/config"
	"github.com/icodeforyou/spotprice-go/database"
	"github.com/icodeforyou/spotprice-go/logging"
	"github.com/icodeforyou/spotprice-go/report"
	"github.com/icodeforyou/spotprice-go/source"
	"github.com/icodeforyou/spotprice-go/task"
	"github.com/icodeforyou/spotprice-go/types"
	"github.com/lmittmann/tint"
	"golang.org/x/text/language"
)

var Version = "?.?.?"

const (
	exitOK    = 0
	exitError = 1
	exitUsage = 2
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	opts, err := app.ParseArgs(args, os.Stdout)
	if errors.Is(err, flag.ErrHelp) {
		return exitOK
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, app.UsageMessage(err))
		app.Usage(os.Stderr)
		return exitUsage
	}

	cnfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		return exitError
	}

	format := opts.Format
	if format == "" {
		format = cnfg.Report.GetFormat()
	}
	reportFormat, err := report.ParseFormat(format)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		app.Usage(os.Stderr)
		return exitUsage
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	consoleHandler := tint.NewHandler(os.Stderr, &tint.Options{
		Level:      cnfg.Logging.GetConsoleLevel(),
		TimeFormat: time.RFC3339,
	})
	slog.New(consoleHandler).Debug("spotprice is starting...", slog.String("version", Version))

	lang, err := language.Parse(cnfg.Report.GetLanguage())
	if err != nil {
		slog.New(consoleHandler).Warn("invalid report language, using Swedish",
			slog.String("language", cnfg.Report.GetLanguage()), slog.Any("error", err))
		lang = language.Swedish
	}

	db, err := database.New(ctx, cnfg.Database.GetPath())
	if err != nil {
		slog.New(consoleHandler).Error("failed to connect to database", slog.Any("error", err))
		return exitError
	}
	defer db.Close()

	logger := slog.New(logging.NewMultiHandler(
		consoleHandler,
		logging.NewSQLiteHandler(db, cnfg.Logging.GetDbLevel(), cnfg.Logging.GetDbAttrsFormat()))).
		With(slog.String("run", uuid.NewString()))
	slog.SetDefault(logger)

	// Now we can use the logger to log database operations into the database itself
	db.SetLogger(logger.With("module", "database"))

	providers, err := source.ProvidersFromConfig(cnfg.EnergyPrice)
	if err != nil {
		logger.Error("invalid price providers", slog.Any("error", err))
		return exitError
	}
	var store source.Store
	if cnfg.Database.GetCacheEnabled() {
		store = db
	}
	src, err := source.New(logger, store, providers...)
	if err != nil {
		logger.Error("failed to create price source", slog.Any("error", err))
		return exitError
	}

	if opts.Watch {
		overrideZone(cnfg, opts.Zone)
		return watch(ctx, logger, opts, src, db, cnfg)
	}

	a := app.New(logger, src, lang, time.Now)
	if err := a.Run(ctx, os.Stdout, opts, reportFormat); err != nil {
		logger.Error("failed to report prices", slog.Any("error", err))
		fmt.Fprintln(os.Stderr, err)
		return exitError
	}
	return exitOK
}

// overrideZone makes --zone win over schedule.zones.
func overrideZone(cnfg *config.AppConfig, zone types.Zone) {
	if zone != "" {
		cnfg.Schedule.Zones = []string{zone.String()}
	}
}

// reloadWithZone keeps the --zone override for configs reloaded from file.
func reloadWithZone(zone types.Zone, reload func(*config.AppConfig)) func(*config.AppConfig) {
	return func(cnfg *config.AppConfig) {
		overrideZone(cnfg, zone)
		reload(cnfg)
	}
}

func watch(ctx context.Context, logger *slog.Logger, opts app.Options, src *source.Source, db *database.Database, cnfg *config.AppConfig) int {
	tasks := task.NewTasks(logger, src, db, cnfg)
	if err := tasks.Run(); err != nil {
		logger.Error("failed to schedule tasks", slog.Any("error", err))
		return exitError
	}
	defer func() { <-tasks.Stop().Done() }()

	if err := config.Watch(opts.ConfigPath, logger, reloadWithZone(opts.Zone, tasks.Reload)); err != nil {
		logger.Info("config file is not watched", slog.Any("error", err))
	}

	logger.Info("watching prices",
		slog.String("runAt", cnfg.Schedule.GetRunAt()),
		slog.String("maintenanceAt", cnfg.Schedule.GetMaintenanceAt()))
	<-ctx.Done()
	logger.Info("application is shutting down...")
	return exitOK
}
