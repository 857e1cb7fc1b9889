// Command genmock turns a saved GeoJSON feed snapshot into rendered-point
// fixtures. It runs the real domain decoder and mapper so the output matches
// what the service would put on the map.
//
// Usage:
//
//	go run ./cmd/genmock \
//	  -feed internal/integration/testdata/all_week_sample.geojson \
//	  -out data/mock/rendered_points.json
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/samber/lo"
	"golang.org/x/text/language"

	"github.com/couchcryptid/quakemap-service/internal/domain"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	feedPath := flag.String("feed", "", "path to a saved GeoJSON feed")
	out := flag.String("out", "", "output path for the rendered points fixture")
	tz := flag.String("tz", "UTC", "IANA time zone for popup times")
	flag.Parse()

	if *feedPath == "" || *out == "" {
		flag.Usage()
		return fmt.Errorf("missing required flags: -feed, -out")
	}

	loc, err := time.LoadLocation(*tz)
	if err != nil {
		return fmt.Errorf("load time zone: %w", err)
	}

	data, err := os.ReadFile(*feedPath)
	if err != nil {
		return fmt.Errorf("read feed: %w", err)
	}

	feed, err := domain.ParseFeed(data)
	if err != nil {
		return err
	}

	mapper := domain.NewMapper(loc, language.AmericanEnglish)
	points := lo.Map(feed.Records, func(rec domain.RawQuakeRecord, _ int) domain.RenderedPoint {
		return mapper.MapFeature(rec)
	})
	log.Printf("%s: %d records", feed.Metadata.Title, len(points))

	if err := writeJSON(*out, points); err != nil {
		return fmt.Errorf("writing fixture: %w", err)
	}
	log.Printf("wrote fixture: %s", *out)

	printStats(feed.Records, points)
	return nil
}

func writeJSON(path string, v any) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')
	return os.WriteFile(path, data, 0o600)
}

func printStats(records []domain.RawQuakeRecord, points []domain.RenderedPoint) {
	fmt.Println("\n=== Stats for updating test assertions ===")
	fmt.Printf("Total: %d\n", len(points))

	byColor := lo.CountValuesBy(points, func(p domain.RenderedPoint) domain.ColorBucket { return p.Color })
	fmt.Print("By color:")
	for _, c := range domain.Palette() {
		fmt.Printf(" %s=%d", c, byColor[c])
	}
	fmt.Println()

	clamped := lo.CountBy(records, func(r domain.RawQuakeRecord) bool {
		return domain.SizeFromMagnitude(r.Magnitude) < domain.MinRadius
	})
	fmt.Printf("Radius clamped to minimum: %d\n", clamped)

	if len(records) == 0 {
		return
	}
	mags := lo.Map(records, func(r domain.RawQuakeRecord, _ int) float64 { return r.Magnitude })
	sort.Float64s(mags)
	fmt.Printf("Magnitude range: %g to %g (median %g)\n", mags[0], mags[len(mags)-1], mags[len(mags)/2])

	deepest := lo.MaxBy(records, func(a, b domain.RawQuakeRecord) bool { return a.DepthKm > b.DepthKm })
	fmt.Printf("Deepest: %s at %g km (%s)\n", deepest.ID, deepest.DepthKm, deepest.Place)
}
