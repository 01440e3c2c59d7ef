package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/icodeforyou/spotprice-go/config"
	"github.com/icodeforyou/spotprice-go/hours"
	"github.com/icodeforyou/spotprice-go/source"
	"github.com/icodeforyou/spotprice-go/types"
	"github.com/lmittmann/tint"
)

// Prints the raw series of every configured provider, bypassing the database.
func main() {
	logger := slog.New(tint.NewHandler(os.Stderr, &tint.Options{
		Level:      slog.LevelDebug,
		TimeFormat: time.RFC3339Nano,
	}))

	configPath := flag.String("config", "", "path to config file")
	zoneArg := flag.String("zone", "SE3", "price zone")
	dateArg := flag.String("date", "", "date YYYY-MM-DD, default today")
	flag.Parse()

	cnfg, err := config.Load(*configPath)
	if err != nil {
		panic(err)
	}
	zone, err := types.ParseZone(*zoneArg)
	if err != nil {
		panic(err)
	}
	day := hours.Today(time.Now())
	if *dateArg != "" {
		if day, err = hours.ParseDay(*dateArg); err != nil {
			panic(err)
		}
	}

	providers, err := source.ProvidersFromConfig(cnfg.EnergyPrice)
	if err != nil {
		panic(err)
	}

	for _, provider := range providers {
		prices, err := provider.GetPrices(context.Background(), zone, day)
		if err != nil {
			logger.Error("fetching prices", slog.String("provider", provider.Name()), slog.Any("error", err))
			continue
		}
		fmt.Printf("%s: %d prices for %s in %s\n", provider.Name(), len(prices), day, zone)
		for _, p := range prices {
			fmt.Printf("Start: %s, End: %s, Price: %f\n",
				hours.LocationStockholm(p.TimeStart).Format(time.RFC3339),
				hours.LocationStockholm(p.TimeEnd).Format(time.RFC3339), p.Price)
		}
	}
}
