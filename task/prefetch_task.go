package task

import (
	"context"
	"log/slog"
	"time"

	"github.com/icodeforyou/spotprice-go/aggregate"
	"github.com/icodeforyou/spotprice-go/config"
	"github.com/icodeforyou/spotprice-go/convert"
	"github.com/icodeforyou/spotprice-go/hours"
	"github.com/icodeforyou/spotprice-go/optimize"
	"github.com/icodeforyou/spotprice-go/types"
)

type DayFetcher interface {
	GetDay(ctx context.Context, zone types.Zone, day hours.Day) (types.PriceSeries, error)
}

// Zones returns the zones to prefetch, falling back to the energy price area.
func Zones(logger *slog.Logger, schedule config.AppConfigSchedule, energyPrice config.AppConfigEnergyPrice) []types.Zone {
	names := schedule.Zones
	if len(names) == 0 && energyPrice.Area != "" {
		names = []string{energyPrice.Area}
	}
	zones := make([]types.Zone, 0, len(names))
	for _, name := range names {
		z, err := types.ParseZone(name)
		if err != nil {
			logger.Warn("ignoring invalid zone", slog.String("zone", name))
			continue
		}
		zones = append(zones, z)
	}
	return zones
}

// FetchToday requests today's prices for every zone.
func FetchToday(logger *slog.Logger, fetcher DayFetcher, schedule config.AppConfigSchedule, energyPrice config.AppConfigEnergyPrice) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	today := hours.Today(time.Now())
	for _, zone := range Zones(logger, schedule, energyPrice) {
		runPrefetch(ctx, logger, fetcher, zone, today, schedule.GetChargingHours())
	}
}

// NewPrefetchTask returns a task that fetches tomorrow's prices for every zone
// and logs the cheapest charging window.
func NewPrefetchTask(logger *slog.Logger, fetcher DayFetcher, schedule config.AppConfigSchedule, energyPrice config.AppConfigEnergyPrice) func() {
	zones := Zones(logger, schedule, energyPrice)
	if len(zones) == 0 {
		logger.Warn("no zones configured, nothing to prefetch")
	}

	return func() {
		logger.Debug("running prefetch task...")
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		tomorrow := hours.Today(time.Now()).AddDays(1)
		for _, zone := range zones {
			runPrefetch(ctx, logger, fetcher, zone, tomorrow, schedule.GetChargingHours())
		}
		logger.Info("prefetch task done", slog.Int("zones", len(zones)))
	}
}

func runPrefetch(ctx context.Context, logger *slog.Logger, fetcher DayFetcher, zone types.Zone, day hours.Day, windowHours int) {
	logger = logger.With(slog.String("zone", zone.String()), slog.String("day", day.String()))

	prices, err := fetcher.GetDay(ctx, zone, day)
	if err != nil {
		logger.Error("prefetch task error, fetching prices", slog.Any("error", err))
		return
	}
	if len(prices) == 0 {
		logger.Warn("prefetch task, prices not published yet")
		return
	}

	if len(prices) == aggregate.QuartersPerDay {
		if prices, err = aggregate.ToHourly(prices); err != nil {
			logger.Error("prefetch task error, aggregating prices", slog.Any("error", err))
			return
		}
	}

	if windowHours <= 0 || prices.Resolution() != time.Hour {
		return
	}
	window, err := optimize.CheapestWindow(prices, windowHours)
	if err != nil {
		logger.Warn("prefetch task, no charging window", slog.Any("error", err))
		return
	}
	logger.Info("cheapest charging window",
		slog.Int("hours", windowHours),
		slog.String("window", hours.ClockRange(window.Samples[0].TimeStart, window.Samples[len(window.Samples)-1].TimeEnd)),
		slog.Float64("averageOre", convert.TwoDecimals(convert.Ore(window.AverageCost))))
}
