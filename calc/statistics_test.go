package calc

import (
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

func TestSummarize(t *testing.T) {
	s := series(0.5, 0.1, 0.9, 0.1, 0.9, -0.2)
	stats, ok := Summarize(s)
	if !ok {
		t.Fatalf("expected statistics for a non-empty series")
	}
	if stats.Min != s[5] {
		t.Errorf("got min %+v, wanted %+v", stats.Min, s[5])
	}
	if stats.Max != s[2] {
		t.Errorf("got max %+v, wanted first max %+v", stats.Max, s[2])
	}
	if !almostEqual(stats.Average, 2.3/6) {
		t.Errorf("got average %f, wanted %f", stats.Average, 2.3/6)
	}
}

func TestSummarizeTies(t *testing.T) {
	s := series(0.3, 0.3, 0.3)
	stats, _ := Summarize(s)
	if stats.Min != s[0] || stats.Max != s[0] {
		t.Errorf("expected first sample as both min and max on ties")
	}
}

func TestSummarizeEmpty(t *testing.T) {
	if _, ok := Summarize(nil); ok {
		t.Errorf("expected no statistics for an empty series")
	}
}

func almostEqual(f1 float64, f2 float64) bool {
	return math.Abs(f1-f2) < 1e-9
}
