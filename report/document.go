package report

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/icodeforyou/spotprice-go/convert"
	"github.com/icodeforyou/spotprice-go/hours"
	"github.com/icodeforyou/spotprice-go/types"
	"gopkg.in/yaml.v3"
)

type PriceDocument struct {
	Start     string  `json:"start" yaml:"start"`
	End       string  `json:"end" yaml:"end"`
	SEKPerKWh float64 `json:"sek_per_kwh" yaml:"sek_per_kwh"`
	Ore       float64 `json:"ore" yaml:"ore"`
}

type StatisticsDocument struct {
	Max        PriceDocument `json:"max" yaml:"max"`
	Min        PriceDocument `json:"min" yaml:"min"`
	AverageOre float64       `json:"average_ore" yaml:"average_ore"`
}

type DayDocument struct {
	Date       string              `json:"date" yaml:"date"`
	Prices     []PriceDocument     `json:"prices" yaml:"prices"`
	Statistics *StatisticsDocument `json:"statistics,omitempty" yaml:"statistics,omitempty"`
}

type ChargingDocument struct {
	Hours      int             `json:"hours" yaml:"hours"`
	Error      string          `json:"error,omitempty" yaml:"error,omitempty"`
	Prices     []PriceDocument `json:"prices,omitempty" yaml:"prices,omitempty"`
	TotalOre   float64         `json:"total_ore" yaml:"total_ore"`
	AverageOre float64         `json:"average_ore" yaml:"average_ore"`
}

type Document struct {
	Zone            string            `json:"zone" yaml:"zone"`
	Date            string            `json:"date" yaml:"date"`
	TomorrowPending bool              `json:"tomorrow_pending" yaml:"tomorrow_pending"`
	Days            []DayDocument     `json:"days" yaml:"days"`
	Charging        *ChargingDocument `json:"charging,omitempty" yaml:"charging,omitempty"`
}

func priceDocument(p types.PriceSample) PriceDocument {
	return PriceDocument{
		Start:     hours.LocationStockholm(p.TimeStart).Format(time.RFC3339),
		End:       hours.LocationStockholm(p.TimeEnd).Format(time.RFC3339),
		SEKPerKWh: p.Price,
		Ore:       convert.TwoDecimals(convert.Ore(p.Price)),
	}
}

func priceDocuments(s types.PriceSeries) []PriceDocument {
	docs := make([]PriceDocument, len(s))
	for i, p := range s {
		docs[i] = priceDocument(p)
	}
	return docs
}

func NewDocument(r Report) Document {
	doc := Document{
		Zone:            r.Zone.String(),
		Date:            r.Date.String(),
		TomorrowPending: r.TodayOnly,
		Days:            make([]DayDocument, len(r.Days)),
	}

	for i, d := range r.Days {
		doc.Days[i] = DayDocument{Date: d.Day.String(), Prices: priceDocuments(d.Prices)}
		if d.Statistics != nil {
			doc.Days[i].Statistics = &StatisticsDocument{
				Max:        priceDocument(d.Statistics.Max),
				Min:        priceDocument(d.Statistics.Min),
				AverageOre: convert.TwoDecimals(convert.Ore(d.Statistics.Average)),
			}
		}
	}

	if c := r.Charging; c != nil {
		doc.Charging = &ChargingDocument{Hours: c.Hours}
		switch {
		case c.Insufficient:
			doc.Charging.Error = "insufficient data"
		case c.Window != nil:
			doc.Charging.Prices = priceDocuments(c.Window.Samples)
			doc.Charging.TotalOre = convert.TwoDecimals(convert.Ore(c.Window.TotalCost))
			doc.Charging.AverageOre = convert.TwoDecimals(convert.Ore(c.Window.AverageCost))
		}
	}

	return doc
}

func WriteJSON(w io.Writer, r Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(NewDocument(r)); err != nil {
		return fmt.Errorf("encoding json report: %w", err)
	}
	return nil
}

func WriteYAML(w io.Writer, r Report) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(NewDocument(r)); err != nil {
		return fmt.Errorf("encoding yaml report: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("encoding yaml report: %w", err)
	}
	return nil
}
