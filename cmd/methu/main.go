// Command methu resolves a Hungarian settlement, fetches its met.hu forecast,
// parses it, and prints the snapshot as JSON. It doubles as a manual probe for
// upstream markup changes.
//
// Usage:
//
//	go run ./cmd/methu -settlement Siófok
//	go run ./cmd/methu -settlement Eger -slots-only
//	cat fixture.html | go run ./cmd/methu -settlement Eger -stdin
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/dkonya/methu-forecast/internal/adapter/methu"
	"github.com/dkonya/methu-forecast/internal/scrape"
)

func main() {
	settlement := flag.String("settlement", "", "settlement name to look up")
	baseURL := flag.String("base-url", "https://www.met.hu", "met.hu base URL")
	timeout := flag.Duration("timeout", 30*time.Second, "request timeout")
	fromStdin := flag.Bool("stdin", false, "parse markup from stdin instead of fetching")
	slotsOnly := flag.Bool("slots-only", false, "print only the forecast slots")
	flag.Parse()

	if *settlement == "" {
		flag.Usage()
		os.Exit(1)
	}

	if code := run(*settlement, *baseURL, *timeout, *fromStdin, *slotsOnly); code != 0 {
		os.Exit(code)
	}
}

func run(name, baseURL string, timeout time.Duration, fromStdin, slotsOnly bool) int {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	scraper := scrape.New(scrape.DefaultVocabulary(), nil)

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	var markup string
	if fromStdin {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			logger.Error("read stdin", "error", err)
			return 1
		}
		markup = string(data)
	} else {
		client := methu.NewClient(baseURL, timeout, logger)

		resolved, err := client.Resolve(ctx, name)
		if err != nil {
			logger.Error("resolve settlement", "settlement", name, "error", err)
			return 1
		}
		logger.Info("settlement resolved",
			"name", resolved.Name, "kod", resolved.Code, "lat", resolved.Lat, "lon", resolved.Lon)

		markup, err = client.Fetch(ctx, resolved)
		if err != nil {
			logger.Error("fetch forecast", "settlement", resolved.Name, "error", err)
			return 1
		}
		name = resolved.Name
	}

	snapshot, stats, err := scraper.Parse(markup, name)
	if err != nil {
		logger.Error("parse forecast", "error", err)
		return 1
	}

	logger.Info("parsed",
		"found", snapshot.Found,
		"strategy", stats.Strategy,
		"slots", len(snapshot.Slots),
		"days", len(snapshot.Days),
		"unknown_icons", stats.UnknownIcons)

	var out any = snapshot
	if slotsOnly {
		out = snapshot.Slots
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		fmt.Fprintln(os.Stderr, "encode output:", err)
		return 1
	}
	return 0
}
