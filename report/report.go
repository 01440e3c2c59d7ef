package report

import (
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/icodeforyou/spotprice-go/calc"
	"github.com/icodeforyou/spotprice-go/hours"
	"github.com/icodeforyou/spotprice-go/optimize"
	"github.com/icodeforyou/spotprice-go/types"
	"golang.org/x/text/language"
)

type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

var ErrInvalidFormat = errors.New("invalid report format")

func ParseFormat(str string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(str))); f {
	case FormatText, FormatJSON, FormatYAML:
		return f, nil
	case "":
		return FormatText, nil
	default:
		return "", fmt.Errorf("%w: %q, use text, json or yaml", ErrInvalidFormat, str)
	}
}

type DayKind int

const (
	Today DayKind = iota
	Tomorrow
)

type DayPrices struct {
	Kind DayKind
	Day  hours.Day
	// Prices in display order, hourly when the day could be aggregated
	Prices types.PriceSeries
	// Nil when there are no prices
	Statistics *calc.Statistics
}

// NewDayPrices computes the statistics for prices and, when sorted is set,
// orders the displayed list by descending price. prices is left untouched.
func NewDayPrices(kind DayKind, day hours.Day, prices types.PriceSeries, sorted bool) DayPrices {
	d := DayPrices{Kind: kind, Day: day, Prices: prices}
	if stats, ok := calc.Summarize(prices); ok {
		d.Statistics = &stats
	}
	if sorted {
		d.Prices = SortedByPriceDesc(prices)
	}
	return d
}

// SortedByPriceDesc returns a copy sorted by descending price. Equal prices keep
// their chronological order.
func SortedByPriceDesc(prices types.PriceSeries) types.PriceSeries {
	sorted := slices.Clone(prices)
	slices.SortStableFunc(sorted, func(a, b types.PriceSample) int {
		switch {
		case a.Price > b.Price:
			return -1
		case a.Price < b.Price:
			return 1
		default:
			return 0
		}
	})
	return sorted
}

type Charging struct {
	Hours int
	// Nil when the window could not be computed
	Window       *optimize.Window
	Insufficient bool
}

type Report struct {
	Zone types.Zone
	Date hours.Day
	// Only the requested day is reported, tomorrow is not published yet
	TodayOnly bool
	Days      []DayPrices
	// Nil when no charging window was requested or there were no prices to search
	Charging *Charging
}

// Write renders r in the given format. lang is only used for text output.
func Write(w io.Writer, r Report, format Format, lang language.Tag) error {
	switch format {
	case FormatText, "":
		return WriteText(w, r, lang)
	case FormatJSON:
		return WriteJSON(w, r)
	case FormatYAML:
		return WriteYAML(w, r)
	default:
		return fmt.Errorf("%w: %q", ErrInvalidFormat, format)
	}
}
