package optimize

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/icodeforyou/spotprice-go/types"
)

var (
	ErrInsufficientData = errors.New("insufficient data")
	ErrInvalidWindow    = errors.New("invalid charging window")
)

// Window lengths offered on the command line.
var WindowHours = []int{2, 4, 8}

type Window struct {
	StartIndex  int                 // Index of the first sample in the searched series
	Samples     []types.PriceSample // Copy of the selected samples
	TotalCost   float64             // Sum of prices in SEK/kWh
	AverageCost float64             // Mean price in SEK/kWh
}

// CheapestWindow finds the contiguous run of windowHours samples with the lowest
// price sum. The earliest window wins on ties.
// Each window is summed from scratch so equal windows get bit-identical sums.
func CheapestWindow(series types.PriceSeries, windowHours int) (Window, error) {
	if windowHours <= 0 {
		return Window{}, fmt.Errorf("%w: %d hours", ErrInvalidWindow, windowHours)
	}
	if len(series) < windowHours {
		return Window{}, fmt.Errorf("%w: %d prices available, %d needed", ErrInsufficientData, len(series), windowHours)
	}

	minSum := math.Inf(1)
	minIndex := 0
	for i := 0; i <= len(series)-windowHours; i++ {
		sum := 0.0
		for _, p := range series[i : i+windowHours] {
			sum += p.Price
		}
		if sum < minSum {
			minSum = sum
			minIndex = i
		}
	}

	samples := make([]types.PriceSample, windowHours)
	copy(samples, series[minIndex:minIndex+windowHours])

	return Window{
		StartIndex:  minIndex,
		Samples:     samples,
		TotalCost:   minSum,
		AverageCost: minSum / float64(windowHours),
	}, nil
}

// ParseWindowHours parses "2h", "4h" or "8h".
func ParseWindowHours(str string) (int, error) {
	s := strings.ToLower(strings.TrimSpace(str))
	for _, h := range WindowHours {
		if s == fmt.Sprintf("%dh", h) {
			return h, nil
		}
	}
	return 0, fmt.Errorf("%w: %q, use 2h, 4h or 8h", ErrInvalidWindow, str)
}
