package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"time"

	"github.com/icodeforyou/spotprice-go/config"
	"github.com/icodeforyou/spotprice-go/database"
	"github.com/icodeforyou/spotprice-go/logging"
)

// Prints the most recent log entries stored in the database.
func main() {
	configPath := flag.String("config", "", "path to config file")
	level := flag.String("level", "INFO", "min log level")
	page := flag.Int("page", 1, "page, newest first")
	pageSize := flag.Int("size", 50, "entries per page")
	since := flag.Duration("since", 0, "only entries newer than this, e.g. 24h")
	contains := flag.String("grep", "", "only messages containing this text")
	flag.Parse()

	cnfg, err := config.Load(*configPath)
	if err != nil {
		panic(err)
	}
	db, err := database.New(context.Background(), cnfg.Database.GetPath())
	if err != nil {
		panic(err)
	}
	defer db.Close()

	filter := database.LogFilter{
		MinLevel: logging.LevelFromString(level),
		Contains: *contains,
		Page:     *page,
		PageSize: *pageSize,
	}
	if *since > 0 {
		filter.Since = time.Now().Add(-*since)
	}
	entries, err := db.GetLogEntries(context.Background(), filter)
	if err != nil {
		panic(err)
	}
	for _, e := range entries {
		fmt.Printf("%s %-5s %s %s\n", e.Timestamp.Local().Format(time.DateTime), slog.Level(e.Level), e.Message, e.Attrs)
	}
}
