package database

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/icodeforyou/spotprice-go/hours"
	"github.com/icodeforyou/spotprice-go/types"
)

var day = hours.Day{Year: 2025, Month: time.October, Day: 3}

func newTestDatabase(t *testing.T) *Database {
	t.Helper()
	db, err := New(context.Background(), filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to create database: %v", err)
	}
	t.Cleanup(db.Close)
	return db
}

func hourly(d hours.Day, prices ...float64) types.PriceSeries {
	s := make(types.PriceSeries, len(prices))
	for i, p := range prices {
		start := d.Start().Add(time.Duration(i) * time.Hour)
		s[i] = types.PriceSample{Price: p, TimeStart: start, TimeEnd: start.Add(time.Hour)}
	}
	return s
}

var timeEqual = cmp.Comparer(func(a, b time.Time) bool { return a.Equal(b) })

func TestSpotPrices(t *testing.T) {
	ctx := context.Background()
	db := newTestDatabase(t)

	prices := hourly(day, 0.37003, -0.01, 1.5)
	if err := db.SaveSpotPrices(ctx, types.ZoneSE3, day, "test", prices); err != nil {
		t.Fatalf("save: %v", err)
	}

	got, err := db.GetSpotPrices(ctx, types.ZoneSE3, day)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if diff := cmp.Diff(prices, got, timeEqual); diff != "" {
		t.Errorf("GetSpotPrices() mismatch (-want +got):\n%s", diff)
	}
	if got[0].TimeStart.Location() != hours.Stockholm() {
		t.Errorf("expected Stockholm location, got %v", got[0].TimeStart.Location())
	}

	other, err := db.GetSpotPrices(ctx, types.ZoneSE4, day)
	if err != nil {
		t.Fatalf("get other zone: %v", err)
	}
	if len(other) != 0 {
		t.Errorf("expected no prices for another zone, got %d", len(other))
	}
}

func TestSpotPricesReplaceDay(t *testing.T) {
	ctx := context.Background()
	db := newTestDatabase(t)

	if err := db.SaveSpotPrices(ctx, types.ZoneSE1, day, "first", hourly(day, 1, 2, 3, 4)); err != nil {
		t.Fatalf("save: %v", err)
	}
	replacement := hourly(day, 5, 6)
	if err := db.SaveSpotPrices(ctx, types.ZoneSE1, day, "second", replacement); err != nil {
		t.Fatalf("save replacement: %v", err)
	}

	got, err := db.GetSpotPrices(ctx, types.ZoneSE1, day)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if diff := cmp.Diff(replacement, got, timeEqual); diff != "" {
		t.Errorf("GetSpotPrices() mismatch (-want +got):\n%s", diff)
	}
}

func TestPurgeSpotPrices(t *testing.T) {
	ctx := context.Background()
	db := newTestDatabase(t)

	old := hours.Today(time.Now()).AddDays(-40)
	recent := hours.Today(time.Now()).AddDays(-1)
	if err := db.SaveSpotPrices(ctx, types.ZoneSE2, old, "test", hourly(old, 1)); err != nil {
		t.Fatalf("save old: %v", err)
	}
	if err := db.SaveSpotPrices(ctx, types.ZoneSE2, recent, "test", hourly(recent, 1)); err != nil {
		t.Fatalf("save recent: %v", err)
	}

	if err := db.PurgeSpotPrices(ctx, 30); err != nil {
		t.Fatalf("purge: %v", err)
	}

	if got, _ := db.GetSpotPrices(ctx, types.ZoneSE2, old); len(got) != 0 {
		t.Errorf("expected old prices to be purged, got %d", len(got))
	}
	if got, _ := db.GetSpotPrices(ctx, types.ZoneSE2, recent); len(got) != 1 {
		t.Errorf("expected recent prices to be kept, got %d", len(got))
	}
}

func TestLogEntries(t *testing.T) {
	ctx := context.Background()
	db := newTestDatabase(t)

	levels := []slog.Level{slog.LevelDebug, slog.LevelInfo, slog.LevelWarn, slog.LevelError, slog.LevelInfo}
	for i, lvl := range levels {
		err := db.SaveLogEntry(ctx, LogEntryRow{
			Timestamp: time.Date(2025, time.October, 3, 12, 0, i, 0, time.UTC),
			Level:     int(lvl),
			Message:   lvl.String(),
			Attrs:     `[{"zone":"SE3"}]`,
		})
		if err != nil {
			t.Fatalf("save log entry %d: %v", i, err)
		}
	}

	entries, err := db.GetLogEntries(ctx, LogFilter{MinLevel: slog.LevelWarn, PageSize: 10})
	if err != nil {
		t.Fatalf("get log entries: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("got %d entries, wanted 2", len(entries))
	}
	if entries[0].Message != "ERROR" || entries[1].Message != "WARN" {
		t.Errorf("expected newest first, got %q, %q", entries[0].Message, entries[1].Message)
	}

	entries, err = db.GetLogEntries(ctx, LogFilter{
		MinLevel: slog.LevelDebug,
		Since:    time.Date(2025, time.October, 3, 12, 0, 1, 0, time.UTC),
		Contains: "INF",
	})
	if err != nil {
		t.Fatalf("get filtered log entries: %v", err)
	}
	if len(entries) != 2 || entries[0].ID <= entries[1].ID {
		t.Errorf("expected the two INFO entries newest first, got %+v", entries)
	}

	if err := db.PurgeLog(ctx, 2); err != nil {
		t.Fatalf("purge log: %v", err)
	}
	entries, err = db.GetLogEntries(ctx, LogFilter{MinLevel: slog.LevelDebug})
	if err != nil {
		t.Fatalf("get log entries: %v", err)
	}
	if len(entries) != 2 {
		t.Errorf("got %d entries after purge, wanted 2", len(entries))
	}
}

func TestBackup(t *testing.T) {
	ctx := context.Background()
	db := newTestDatabase(t)

	if err := db.SaveSpotPrices(ctx, types.ZoneSE3, day, "test", hourly(day, 1)); err != nil {
		t.Fatalf("save: %v", err)
	}

	zipPath, err := db.Backup(ctx)
	if err != nil {
		t.Fatalf("backup: %v", err)
	}
	if _, err := os.Stat(zipPath); err != nil {
		t.Errorf("expected backup file %s: %v", zipPath, err)
	}

	files, err := os.ReadDir(db.backupDir())
	if err != nil {
		t.Fatalf("read backup dir: %v", err)
	}
	if len(files) != 1 {
		t.Errorf("expected only the zip file in the backup dir, got %d files", len(files))
	}

	if err := db.PurgeBackups(ctx, 1); err != nil {
		t.Fatalf("purge backups: %v", err)
	}
	if _, err := os.Stat(zipPath); err != nil {
		t.Errorf("expected a fresh backup to survive the purge: %v", err)
	}
}

func TestReopenKeepsData(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "reopen.db")

	db, err := New(ctx, path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if err := db.SaveSpotPrices(ctx, types.ZoneSE3, day, "test", hourly(day, 1, 2)); err != nil {
		t.Fatalf("save: %v", err)
	}
	db.Close()

	db, err = New(ctx, path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer db.Close()

	got, err := db.GetSpotPrices(ctx, types.ZoneSE3, day)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if len(got) != 2 {
		t.Errorf("got %d prices after reopen, wanted 2", len(got))
	}
}
