// Command validate checks a GeoJSON feed, saved or live, for records the
// service would reject. Unlike the service decoder it keeps going after the
// first bad feature and reports all of them.
//
// Usage:
//
//	go run ./cmd/validate -feed internal/integration/testdata/all_week_sample.geojson
//	go run ./cmd/validate -url https://earthquake.usgs.gov/earthquakes/feed/v1.0/summary/all_week.geojson
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"slices"
	"time"

	"github.com/samber/lo"

	"github.com/couchcryptid/quakemap-service/internal/adapter/usgs"
	"github.com/couchcryptid/quakemap-service/internal/domain"
)

func main() {
	feedPath := flag.String("feed", "", "path to a saved GeoJSON feed")
	feedURL := flag.String("url", "", "feed URL to download and check")
	timeout := flag.Duration("timeout", 30*time.Second, "download timeout for -url")
	flag.Parse()

	if (*feedPath == "") == (*feedURL == "") {
		flag.Usage()
		fmt.Fprintln(os.Stderr, "exactly one of -feed or -url is required")
		os.Exit(2)
	}

	data, err := load(*feedPath, *feedURL, *timeout)
	if err != nil {
		slog.Error("load feed", "error", err)
		os.Exit(1)
	}

	problems, err := domain.ValidateFeed(data)
	if err != nil {
		slog.Error("feed is not a feature collection", "error", err)
		os.Exit(1)
	}

	if !report(os.Stdout, problems) {
		os.Exit(1)
	}
}

func load(path, url string, timeout time.Duration) ([]byte, error) {
	if path != "" {
		return os.ReadFile(path)
	}

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	client := usgs.NewClient(timeout, slog.Default())
	return client.FetchRaw(ctx, url)
}

// report prints the validation result and returns true when the feed passed.
// Per-field counts are sorted by field name so output is stable across runs.
func report(w io.Writer, problems []*domain.DecodeError) bool {
	if len(problems) == 0 {
		fmt.Fprintln(w, "PASS: every feature has mag, place, time, and [lon, lat, depth]")
		return true
	}

	byField := lo.CountValuesBy(problems, func(p *domain.DecodeError) string { return p.Field })
	fields := lo.Keys(byField)
	slices.Sort(fields)

	fmt.Fprintf(w, "FAIL: %d malformed features\n", len(problems))
	for _, field := range fields {
		fmt.Fprintf(w, "  %s: %d\n", field, byField[field])
	}
	for _, p := range problems {
		fmt.Fprintf(w, "  - %v\n", p)
	}
	return false
}
