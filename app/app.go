package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/icodeforyou/spotprice-go/aggregate"
	"github.com/icodeforyou/spotprice-go/hours"
	"github.com/icodeforyou/spotprice-go/optimize"
	"github.com/icodeforyou/spotprice-go/report"
	"github.com/icodeforyou/spotprice-go/types"
	"golang.org/x/text/language"
)

type PriceSource interface {
	GetDays(ctx context.Context, zone types.Zone, days ...hours.Day) ([]types.PriceSeries, error)
}

type App struct {
	logger *slog.Logger
	source PriceSource
	lang   language.Tag
	now    func() time.Time
}

// New returns an App. now is the clock used for "today" and the publication hour.
func New(logger *slog.Logger, source PriceSource, lang language.Tag, now func() time.Time) *App {
	if now == nil {
		now = time.Now
	}
	return &App{
		logger: logger.With(slog.String("module", "app")),
		source: source,
		lang:   lang,
		now:    now,
	}
}

// Run fetches the prices for opts and writes the report to w.
func (a *App) Run(ctx context.Context, w io.Writer, opts Options, format report.Format) error {
	r, err := a.BuildReport(ctx, opts)
	if err != nil {
		return err
	}
	return report.Write(w, r, format, a.lang)
}

func (a *App) BuildReport(ctx context.Context, opts Options) (report.Report, error) {
	now := a.now()
	today := hours.Today(now)
	date := opts.Date
	if date.IsZero() {
		date = today
	}

	// Before the publication hour only today's prices exist.
	todayOnly := date == today && !date.TomorrowPublished(now)

	days := []hours.Day{date}
	if !todayOnly {
		days = append(days, date.AddDays(1))
	}

	fetched, err := a.source.GetDays(ctx, opts.Zone, days...)
	if err != nil {
		return report.Report{}, fmt.Errorf("fetching prices for %s: %w", opts.Zone, err)
	}

	r := report.Report{Zone: opts.Zone, Date: date, TodayOnly: todayOnly}
	prepared := make([]types.PriceSeries, len(days))
	for i, day := range days {
		prepared[i], err = a.toHourly(day, fetched[i])
		if err != nil {
			return report.Report{}, err
		}
		kind := report.Today
		if i > 0 {
			kind = report.Tomorrow
		}
		r.Days = append(r.Days, report.NewDayPrices(kind, day, prepared[i], opts.Sorted))
	}

	if opts.ChargingHours > 0 {
		r.Charging = a.charging(prepared, opts.ChargingHours)
	}

	return r, nil
}

// toHourly aggregates a full quarter-hour day. Other lengths are returned as is.
func (a *App) toHourly(day hours.Day, prices types.PriceSeries) (types.PriceSeries, error) {
	if len(prices) == aggregate.QuartersPerDay {
		hourly, err := aggregate.ToHourly(prices)
		if err != nil {
			return nil, fmt.Errorf("aggregating %s: %w", day, err)
		}
		return hourly, nil
	}
	if len(prices) > 0 && prices.Resolution() < time.Hour {
		a.logger.Warn("quarter prices kept, the day does not have 96 quarters",
			slog.String("day", day.String()),
			slog.Int("count", len(prices)))
	}
	return prices, nil
}

// charging searches the concatenated days. A day with a different resolution than
// the first non-empty day is left out of the search.
func (a *App) charging(days []types.PriceSeries, windowHours int) *report.Charging {
	var combined types.PriceSeries
	for _, prices := range days {
		if len(prices) == 0 {
			continue
		}
		if len(combined) > 0 && prices.Resolution() != combined.Resolution() {
			a.logger.Warn("day left out of the charging window search, mixed price resolutions",
				slog.Duration("resolution", prices.Resolution()))
			continue
		}
		combined = append(combined, prices...)
	}
	if len(combined) == 0 {
		return nil
	}

	samples := windowHours
	if res := combined.Resolution(); res > 0 && res < time.Hour {
		samples = windowHours * int(time.Hour/res)
	}

	c := &report.Charging{Hours: windowHours}
	window, err := optimize.CheapestWindow(combined, samples)
	if err != nil {
		a.logger.Info("charging window not computed", slog.Any("error", err))
		c.Insufficient = true
		return c
	}
	c.Window = &window
	return c
}
