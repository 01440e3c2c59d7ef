package database

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"
)

type LogEntryRow struct {
	ID        int64
	Timestamp time.Time
	Level     int
	Message   string
	Attrs     string
}

// LogFilter selects log entries, newest first.
type LogFilter struct {
	MinLevel slog.Level
	Since    time.Time // Zero means no lower bound
	Contains string    // Substring of the message, empty matches all
	Page     int       // 1-based
	PageSize int
}

func (d *Database) SaveLogEntry(ctx context.Context, r LogEntryRow) error {
	_, err := d.write.ExecContext(ctx, `
		INSERT INTO log (timestamp, level, message, attrs)
		VALUES (?, ?, ?, ?)`,
		r.Timestamp.UTC().Format(time.RFC3339),
		r.Level,
		r.Message,
		r.Attrs)
	if err != nil {
		return fmt.Errorf("saving log entry: %w", err)
	}
	return nil
}

func (d *Database) GetLogEntries(ctx context.Context, f LogFilter) ([]LogEntryRow, error) {
	if f.Page < 1 {
		f.Page = 1
	}
	if f.PageSize < 1 {
		f.PageSize = 10
	}

	var where strings.Builder
	args := []any{int(f.MinLevel)}
	where.WriteString("level >= ?")
	if !f.Since.IsZero() {
		where.WriteString(" AND timestamp >= ?")
		args = append(args, f.Since.UTC().Format(time.RFC3339))
	}
	if f.Contains != "" {
		where.WriteString(" AND instr(message, ?) > 0")
		args = append(args, f.Contains)
	}
	args = append(args, f.PageSize, (f.Page-1)*f.PageSize)

	rows, err := d.read.QueryContext(ctx, `
		SELECT id, timestamp, level, message, attrs
		FROM log
		WHERE `+where.String()+`
		ORDER BY id DESC
		LIMIT ? OFFSET ?`,
		args...)
	if err != nil {
		return nil, fmt.Errorf("fetching log entries: %w", err)
	}
	defer rows.Close()

	var ts string
	var entries []LogEntryRow
	for rows.Next() {
		var r LogEntryRow
		if err := rows.Scan(&r.ID, &ts, &r.Level, &r.Message, &r.Attrs); err != nil {
			return nil, fmt.Errorf("scanning log row: %w", err)
		}
		if r.Timestamp, err = time.Parse(time.RFC3339, ts); err != nil {
			return nil, fmt.Errorf("parsing timestamp: %w", err)
		}
		entries = append(entries, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reading log rows: %w", err)
	}

	return entries, nil
}

// PurgeLog keeps the newest maxLogEntries entries.
func (d *Database) PurgeLog(ctx context.Context, maxLogEntries int) error {
	res, err := d.write.ExecContext(ctx, `
		DELETE FROM log WHERE id <= (SELECT id FROM log ORDER BY id DESC LIMIT 1 OFFSET ?)`, maxLogEntries)
	if err != nil {
		return fmt.Errorf("purging log: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil {
		d.logger.Debug("purged log", slog.Int64("rows", n), slog.Int("kept", maxLogEntries))
	}
	return nil
}
