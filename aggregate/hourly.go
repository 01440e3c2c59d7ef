package aggregate

import (
	"errors"
	"fmt"
	"time"

	"github.com/icodeforyou/spotprice-go/types"
)

const (
	QuartersPerDay  = 96
	quartersPerHour = 4
	quarter         = 15 * time.Minute
)

var ErrInvalidInput = errors.New("invalid input")

// ToHourly averages a day of 96 quarter-hour samples into 24 hourly samples.
// The input is left untouched.
func ToHourly(series types.PriceSeries) (types.PriceSeries, error) {
	if len(series) != QuartersPerDay {
		return nil, fmt.Errorf("%w: expected %d quarters, got %d", ErrInvalidInput, QuartersPerDay, len(series))
	}
	if err := checkQuarters(series); err != nil {
		return nil, err
	}

	hourly := make(types.PriceSeries, 0, QuartersPerDay/quartersPerHour)
	for i := 0; i < len(series); i += quartersPerHour {
		group := series[i : i+quartersPerHour]
		sum := 0.0
		for _, q := range group {
			sum += q.Price
		}
		hourly = append(hourly, types.PriceSample{
			Price:     sum / quartersPerHour,
			TimeStart: group[0].TimeStart,
			TimeEnd:   group[len(group)-1].TimeEnd,
		})
	}

	return hourly, nil
}

func checkQuarters(series types.PriceSeries) error {
	for i, q := range series {
		if q.Duration() != quarter {
			return fmt.Errorf("%w: sample %d is %v long, expected %v", ErrInvalidInput, i, q.Duration(), quarter)
		}
		if i > 0 && !q.TimeStart.Equal(series[i-1].TimeEnd) {
			return fmt.Errorf("%w: sample %d does not start where sample %d ends", ErrInvalidInput, i, i-1)
		}
	}
	return nil
}
