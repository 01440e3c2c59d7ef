package database

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/icodeforyou/spotprice-go/convert"
	"github.com/icodeforyou/spotprice-go/hours"
	"github.com/icodeforyou/spotprice-go/types"
)

// SaveSpotPrices replaces all stored prices for the zone and day.
func (d *Database) SaveSpotPrices(ctx context.Context, zone types.Zone, day hours.Day, source string, prices types.PriceSeries) error {
	d.logger.Debug("saving spot prices",
		slog.String("zone", zone.String()),
		slog.String("day", day.String()),
		slog.String("source", source),
		slog.Int("count", len(prices)))

	tx, err := d.write.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("saving spot prices, begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `DELETE FROM spot_price WHERE zone = ? AND day = ?`, zone, day.String())
	if err != nil {
		return fmt.Errorf("saving spot prices, delete old rows: %w", err)
	}

	fetchedAt := hours.IsoString(time.Now())
	for _, p := range prices {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO spot_price (zone, day, time_start, time_end, price, source, fetched_at)
			VALUES (?, ?, ?, ?, ?, ?, ?)`,
			zone,
			day.String(),
			hours.IsoString(p.TimeStart),
			hours.IsoString(p.TimeEnd),
			convert.RoundFloat64(p.Price, 5),
			source,
			fetchedAt)
		if err != nil {
			return fmt.Errorf("saving spot prices: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("saving spot prices, commit: %w", err)
	}

	return nil
}

// GetSpotPrices returns an empty series if nothing is stored for the zone and day.
func (d *Database) GetSpotPrices(ctx context.Context, zone types.Zone, day hours.Day) (types.PriceSeries, error) {
	rows, err := d.read.QueryContext(ctx, `
		SELECT time_start, time_end, price
		FROM spot_price
		WHERE zone = ? AND day = ?
		ORDER BY time_start ASC`,
		zone, day.String())
	if err != nil {
		return nil, fmt.Errorf("fetching spot prices: %w", err)
	}
	defer rows.Close()

	prices := types.PriceSeries{}
	var start, end string
	for rows.Next() {
		var p types.PriceSample
		if err := rows.Scan(&start, &end, &p.Price); err != nil {
			return nil, fmt.Errorf("scanning spot price row: %w", err)
		}
		p.TimeStart = hours.LocationStockholm(hours.FromIso(start))
		p.TimeEnd = hours.LocationStockholm(hours.FromIso(end))
		prices = append(prices, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reading spot price rows: %w", err)
	}

	return prices, nil
}

func (d *Database) PurgeSpotPrices(ctx context.Context, retentionDays int) error {
	return d.purgeTable(ctx, "spot_price", retentionDays)
}
