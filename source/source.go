package source

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/icodeforyou/spotprice-go/config"
	"github.com/icodeforyou/spotprice-go/elprisetjustnu"
	"github.com/icodeforyou/spotprice-go/hours"
	"github.com/icodeforyou/spotprice-go/nordpool"
	"github.com/icodeforyou/spotprice-go/types"
	"golang.org/x/sync/errgroup"
)

var (
	ErrNoProviders   = errors.New("no price providers")
	ErrUnavailable   = errors.New("prices unavailable")
	ErrUnknownSource = errors.New("unknown price provider")
)

type Store interface {
	GetSpotPrices(ctx context.Context, zone types.Zone, day hours.Day) (types.PriceSeries, error)
	SaveSpotPrices(ctx context.Context, zone types.Zone, day hours.Day, source string, prices types.PriceSeries) error
}

// Source serves prices from the store when a day is already fetched and falls
// back to the providers, in order, otherwise.
type Source struct {
	logger    *slog.Logger
	store     Store
	providers []types.PriceProvider
}

// New returns a Source. store may be nil to always ask the providers.
func New(logger *slog.Logger, store Store, providers ...types.PriceProvider) (*Source, error) {
	if len(providers) == 0 {
		return nil, ErrNoProviders
	}
	return &Source{
		logger:    logger.With(slog.String("module", "source")),
		store:     store,
		providers: providers,
	}, nil
}

// ProvidersFromConfig creates the configured providers in the configured order.
func ProvidersFromConfig(c config.AppConfigEnergyPrice) ([]types.PriceProvider, error) {
	providers := make([]types.PriceProvider, 0, len(c.GetProviders()))
	for _, name := range c.GetProviders() {
		switch name {
		case "elprisetjustnu":
			providers = append(providers, elprisetjustnu.New(c.GetElprisetJustNuURL(), c.GetTimeout()))
		case "nordpool":
			providers = append(providers, nordpool.New(c.GetNordpoolURL(), c.GetTimeout()))
		default:
			return nil, fmt.Errorf("%w: %s", ErrUnknownSource, name)
		}
	}
	return providers, nil
}

// GetDay returns the prices for a zone and day. An empty series means that no
// provider has published the day yet.
func (s *Source) GetDay(ctx context.Context, zone types.Zone, day hours.Day) (types.PriceSeries, error) {
	logger := s.logger.With(slog.String("zone", zone.String()), slog.String("day", day.String()))

	if s.store != nil {
		cached, err := s.store.GetSpotPrices(ctx, zone, day)
		if err != nil {
			logger.Warn("failed to read cached prices", slog.Any("error", err))
		} else if len(cached) > 0 {
			logger.Debug("prices served from database", slog.Int("count", len(cached)))
			return cached, nil
		}
	}

	var errs []error
	for _, provider := range s.providers {
		prices, err := provider.GetPrices(ctx, zone, day)
		if err != nil {
			logger.Warn("price provider failed", slog.String("provider", provider.Name()), slog.Any("error", err))
			errs = append(errs, fmt.Errorf("%s: %w", provider.Name(), err))
			continue
		}
		if len(prices) == 0 {
			logger.Debug("prices not published", slog.String("provider", provider.Name()))
			continue
		}

		logger.Info("prices fetched", slog.String("provider", provider.Name()), slog.Int("count", len(prices)))
		if !prices.Uniform() {
			logger.Warn("prices have gaps or mixed durations", slog.String("provider", provider.Name()))
		}
		if s.store != nil {
			if err := s.store.SaveSpotPrices(ctx, zone, day, provider.Name(), prices); err != nil {
				logger.Warn("failed to cache prices", slog.Any("error", err))
			}
		}
		return prices, nil
	}

	if len(errs) == len(s.providers) {
		return nil, fmt.Errorf("%w for %s in %s: %w", ErrUnavailable, day, zone, errors.Join(errs...))
	}
	return types.PriceSeries{}, nil
}

// GetDays fetches the given days concurrently. The result has the same order as days.
func (s *Source) GetDays(ctx context.Context, zone types.Zone, days ...hours.Day) ([]types.PriceSeries, error) {
	result := make([]types.PriceSeries, len(days))
	g, ctx := errgroup.WithContext(ctx)
	for i, day := range days {
		i, day := i, day
		g.Go(func() error {
			prices, err := s.GetDay(ctx, zone, day)
			if err != nil {
				return err
			}
			result[i] = prices
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return result, nil
}
