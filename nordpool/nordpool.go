package nordpool

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"slices"
	"strings"
	"time"

	"github.com/icodeforyou/spotprice-go/convert"
	"github.com/icodeforyou/spotprice-go/hours"
	"github.com/icodeforyou/spotprice-go/types"
)

const DefaultBaseURL = "https://dataportal-api.nordpoolgroup.com"

type Nordpool struct {
	baseURL string
	client  *http.Client
}

func New(baseURL string, timeout time.Duration) Nordpool {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return Nordpool{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
	}
}

func (n Nordpool) Name() string {
	return "nordpool"
}

func (n Nordpool) GetPrices(ctx context.Context, zone types.Zone, day hours.Day) (types.PriceSeries, error) {
	q := url.Values{}
	q.Set("date", day.String())
	q.Set("market", "DayAhead")
	q.Set("deliveryArea", zone.String())
	q.Set("currency", "SEK")
	u := fmt.Sprintf("%s/api/DayAheadPrices?%s", n.baseURL, q.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	resp, err := n.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch prices: %w", err)
	}
	defer resp.Body.Close()

	// No content is returned until the auction results are published
	if resp.StatusCode == http.StatusNotFound || resp.StatusCode == http.StatusNoContent {
		return types.PriceSeries{}, nil
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	var nordpoolData nordpoolData
	if err := json.NewDecoder(resp.Body).Decode(&nordpoolData); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	prices := make(types.PriceSeries, 0, len(nordpoolData.MultiAreaEntries))
	for _, entry := range nordpoolData.MultiAreaEntries {
		if slices.ContainsFunc(prices, func(p types.PriceSample) bool { return p.TimeStart.Equal(entry.DeliveryStart) }) {
			continue
		}
		price, ok := entry.EntryPerArea[zone.String()]
		if ok {
			prices = append(prices, types.PriceSample{
				Price:     convert.PerMWhToPerKWh(price),
				TimeStart: hours.LocationStockholm(entry.DeliveryStart),
				TimeEnd:   hours.LocationStockholm(entry.DeliveryEnd),
			})
		}
	}

	slices.SortFunc(prices, func(a, b types.PriceSample) int { return a.TimeStart.Compare(b.TimeStart) })

	return prices, nil
}
