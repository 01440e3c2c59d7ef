package calc

import (
	"github.com/icodeforyou/spotprice-go/types"
)

type Statistics struct {
	Min     types.PriceSample // First sample with the lowest price
	Max     types.PriceSample // First sample with the highest price
	Average float64           // Unweighted mean price in SEK/kWh
}

// Summarize returns false for an empty series.
func Summarize(series types.PriceSeries) (Statistics, bool) {
	if len(series) == 0 {
		return Statistics{}, false
	}

	stats := Statistics{Min: series[0], Max: series[0]}
	sum := 0.0
	for _, p := range series {
		sum += p.Price
		if p.Price < stats.Min.Price {
			stats.Min = p
		}
		if p.Price > stats.Max.Price {
			stats.Max = p
		}
	}
	stats.Average = sum / float64(len(series))

	return stats, true
}
