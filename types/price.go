package types

import (
	"context"
	"time"

	"github.com/icodeforyou/spotprice-go/hours"
)

type PriceSample struct {
	Price     float64 // Spot price in SEK per kWh excluding VAT, can be negative
	TimeStart time.Time
	TimeEnd   time.Time
}

func (p PriceSample) Duration() time.Duration {
	return p.TimeEnd.Sub(p.TimeStart)
}

// PriceSeries is ordered by time, contiguous and has equal sample durations.
type PriceSeries []PriceSample

// Resolution returns the duration of the first sample, or zero for an empty series.
func (s PriceSeries) Resolution() time.Duration {
	if len(s) == 0 {
		return 0
	}
	return s[0].Duration()
}

// Uniform reports if all samples have the same duration and follow each other without gaps.
func (s PriceSeries) Uniform() bool {
	for i := 1; i < len(s); i++ {
		if s[i].Duration() != s[0].Duration() || !s[i].TimeStart.Equal(s[i-1].TimeEnd) {
			return false
		}
	}
	return true
}

func (s PriceSeries) Prices() []float64 {
	prices := make([]float64, len(s))
	for i, p := range s {
		prices[i] = p.Price
	}
	return prices
}

type PriceProvider interface {
	Name() string
	// GetPrices returns an empty series if the day is not yet published.
	GetPrices(ctx context.Context, zone Zone, day hours.Day) (PriceSeries, error)
}
