package optimize

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/icodeforyou/spotprice-go/types"
)

func series(prices ...float64) types.PriceSeries {
	start := time.Date(2025, time.October, 3, 0, 0, 0, 0, time.UTC)
	s := make(types.PriceSeries, len(prices))
	for i, p := range prices {
		s[i] = types.PriceSample{
			Price:     p,
			TimeStart: start.Add(time.Duration(i) * time.Hour),
			TimeEnd:   start.Add(time.Duration(i+1) * time.Hour),
		}
	}
	return s
}

func TestCheapestWindow(t *testing.T) {
	// Cheapest in the middle
	checkWindow(t, series(1.0, 0.5, 0.5, 2.0), 2, 1, 1.0, 0.5)
	// All equal, first occurrence wins
	checkWindow(t, series(0.3, 0.3, 0.3, 0.3), 2, 0, 0.6, 0.3)
	// Window covers the whole series
	checkWindow(t, series(1.0, 2.0, 3.0), 3, 0, 6.0, 2.0)
	// Negative prices
	checkWindow(t, series(0.2, -0.1, -0.4, 0.1, -0.5), 2, 1, -0.5, -0.25)
	// Cheapest at the end
	checkWindow(t, series(3.0, 2.0, 1.0, 0.0), 2, 2, 1.0, 0.5)
	// Single hour
	checkWindow(t, series(0.4, 0.2, 0.2, 0.9), 1, 1, 0.2, 0.2)
}

func TestCheapestWindowTieBreak(t *testing.T) {
	// Two windows sum to 0.3 (index 1 and index 4), the first must win.
	checkWindow(t, series(1.0, 0.1, 0.2, 1.0, 0.2, 0.1, 1.0), 2, 1, 0.3, 0.15)

	// Values that are not exact in binary must still pick the first minimum.
	prices := make([]float64, 48)
	for i := range prices {
		prices[i] = 0.1
	}
	for _, h := range WindowHours {
		checkWindow(t, series(prices...), h, 0, 0.1*float64(h), 0.1)
	}
}

func TestCheapestWindowAcrossMidnight(t *testing.T) {
	today := make([]float64, 24)
	tomorrow := make([]float64, 24)
	for i := range today {
		today[i] = 1.0
		tomorrow[i] = 1.0
	}
	today[22], today[23] = 0.1, 0.1
	tomorrow[0], tomorrow[1] = 0.1, 0.1

	w := checkWindow(t, series(append(today, tomorrow...)...), 4, 22, 0.4, 0.1)
	if w.Samples[2].TimeStart.Day() == w.Samples[1].TimeStart.Day() {
		t.Errorf("expected window to span midnight")
	}
}

func TestCheapestWindowIsMinimal(t *testing.T) {
	s := series(0.93, 0.41, 1.2, 0.05, 0.66, 0.12, 0.87, 0.33, 0.5, 0.02, 1.5, 0.7)
	for windowHours := 1; windowHours <= len(s); windowHours++ {
		w, err := CheapestWindow(s, windowHours)
		if err != nil {
			t.Fatalf("window %d: unexpected error: %v", windowHours, err)
		}
		if len(w.Samples) != windowHours {
			t.Errorf("window %d: got %d samples", windowHours, len(w.Samples))
		}
		sum := 0.0
		for _, p := range w.Samples {
			sum += p.Price
		}
		if !almostEqual(sum, w.TotalCost) {
			t.Errorf("window %d: total %f does not match samples %f", windowHours, w.TotalCost, sum)
		}
		for i := 0; i <= len(s)-windowHours; i++ {
			other := 0.0
			for _, p := range s[i : i+windowHours] {
				other += p.Price
			}
			if other < w.TotalCost-1e-9 {
				t.Errorf("window %d: window at %d (%f) is cheaper than result %f", windowHours, i, other, w.TotalCost)
			}
		}
	}
}

func TestCheapestWindowCopiesSamples(t *testing.T) {
	s := series(1.0, 0.5, 0.5, 2.0)
	w, err := CheapestWindow(s, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	w.Samples[0].Price = 99
	if s[1].Price != 0.5 {
		t.Errorf("modifying the result changed the input series")
	}
}

func TestCheapestWindowInsufficientData(t *testing.T) {
	w, err := CheapestWindow(series(0.1, 0.2, 0.3), 8)
	if !errors.Is(err, ErrInsufficientData) {
		t.Errorf("expected ErrInsufficientData, got %v", err)
	}
	if w.Samples != nil {
		t.Errorf("expected no window, got %v", w.Samples)
	}

	if _, err := CheapestWindow(nil, 2); !errors.Is(err, ErrInsufficientData) {
		t.Errorf("expected ErrInsufficientData for empty series, got %v", err)
	}
}

func TestCheapestWindowInvalidLength(t *testing.T) {
	for _, h := range []int{0, -2} {
		if _, err := CheapestWindow(series(0.1, 0.2), h); !errors.Is(err, ErrInvalidWindow) {
			t.Errorf("window %d: expected ErrInvalidWindow, got %v", h, err)
		}
	}
}

func TestParseWindowHours(t *testing.T) {
	tests := []struct {
		input    string
		expected int
		wantErr  bool
	}{
		{"2h", 2, false},
		{"4H", 4, false},
		{"8h", 8, false},
		{"3h", 0, true},
		{"8", 0, true},
		{"", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			h, err := ParseWindowHours(tt.input)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidWindow) {
					t.Errorf("expected ErrInvalidWindow, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if h != tt.expected {
				t.Errorf("got %d, wanted %d", h, tt.expected)
			}
		})
	}
}

func checkWindow(t *testing.T, s types.PriceSeries, windowHours, startIndex int, total, avg float64) Window {
	t.Helper()
	w, err := CheapestWindow(s, windowHours)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if w.StartIndex != startIndex {
		t.Errorf("got start index %d, wanted %d", w.StartIndex, startIndex)
	}
	if !almostEqual(w.TotalCost, total) {
		t.Errorf("got total cost %f, wanted %f", w.TotalCost, total)
	}
	if !almostEqual(w.AverageCost, avg) {
		t.Errorf("got average cost %f, wanted %f", w.AverageCost, avg)
	}
	for i, p := range w.Samples {
		if p != s[startIndex+i] {
			t.Errorf("sample %d: got %+v, wanted %+v", i, p, s[startIndex+i])
		}
	}
	return w
}

func almostEqual(f1 float64, f2 float64) bool {
	return math.Abs(f1-f2) < 1e-9
}
