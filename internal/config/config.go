package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	sharedcfg "github.com/couchcryptid/storm-data-shared/config"
	"github.com/joho/godotenv"
	"golang.org/x/text/language"
)

// DefaultFeedURL is the USGS summary feed of every earthquake in the past week.
const DefaultFeedURL = "https://earthquake.usgs.gov/earthquakes/feed/v1.0/summary/all_week.geojson"

// Config holds all service settings, populated from environment variables.
type Config struct {
	FeedURL         string
	FeedTimeout     time.Duration // zero disables the client timeout
	HTTPAddr        string
	LogLevel        string
	LogFormat       string
	ShutdownTimeout time.Duration

	// Map view.
	MapCenterLat   float64
	MapCenterLon   float64
	MapZoom        int
	MapContainerID string
	TileURL        string
	Location       *time.Location
	Locale         language.Tag

	// Mapbox satellite base layer, enabled when a token is present.
	MapboxToken string

	// Kafka marker publishing.
	KafkaEnabled bool
	KafkaBrokers []string
	KafkaTopic   string
}

// Load reads configuration from environment variables, applying defaults where
// unset. A .env file in the working directory is read first if present;
// variables already set in the environment win.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	shutdownTimeout, err := sharedcfg.ParseShutdownTimeout()
	if err != nil {
		return nil, err
	}

	feedTimeout, err := time.ParseDuration(sharedcfg.EnvOrDefault("FEED_TIMEOUT", "0s"))
	if err != nil || feedTimeout < 0 {
		return nil, errors.New("invalid FEED_TIMEOUT")
	}

	lat, err := parseFloat("MAP_CENTER_LAT", "37.09", -90, 90)
	if err != nil {
		return nil, err
	}
	lon, err := parseFloat("MAP_CENTER_LON", "-95.71", -180, 180)
	if err != nil {
		return nil, err
	}

	zoom, err := strconv.Atoi(sharedcfg.EnvOrDefault("MAP_ZOOM", "5"))
	if err != nil || zoom < 0 || zoom > 20 {
		return nil, errors.New("invalid MAP_ZOOM: must be 0-20")
	}

	loc, err := time.LoadLocation(sharedcfg.EnvOrDefault("TIMEZONE", "UTC"))
	if err != nil {
		return nil, fmt.Errorf("invalid TIMEZONE: %w", err)
	}

	locale, err := language.Parse(sharedcfg.EnvOrDefault("LOCALE", "en-US"))
	if err != nil {
		return nil, fmt.Errorf("invalid LOCALE: %w", err)
	}

	cfg := &Config{
		FeedURL:         sharedcfg.EnvOrDefault("FEED_URL", DefaultFeedURL),
		FeedTimeout:     feedTimeout,
		HTTPAddr:        sharedcfg.EnvOrDefault("HTTP_ADDR", ":8080"),
		LogLevel:        sharedcfg.EnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:       sharedcfg.EnvOrDefault("LOG_FORMAT", "json"),
		ShutdownTimeout: shutdownTimeout,

		MapCenterLat:   lat,
		MapCenterLon:   lon,
		MapZoom:        zoom,
		MapContainerID: sharedcfg.EnvOrDefault("MAP_CONTAINER_ID", "map"),
		TileURL:        sharedcfg.EnvOrDefault("TILE_URL", "https://{s}.tile.openstreetmap.org/{z}/{x}/{y}.png"),
		Location:       loc,
		Locale:         locale,

		MapboxToken: os.Getenv("MAPBOX_TOKEN"),

		KafkaEnabled: os.Getenv("KAFKA_ENABLED") == "true",
		KafkaBrokers: sharedcfg.ParseBrokers(sharedcfg.EnvOrDefault("KAFKA_BROKERS", "localhost:9092")),
		KafkaTopic:   sharedcfg.EnvOrDefault("KAFKA_TOPIC", "earthquake-markers"),
	}

	if cfg.KafkaEnabled && len(cfg.KafkaBrokers) == 0 {
		return nil, errors.New("KAFKA_ENABLED is true but KAFKA_BROKERS is empty")
	}

	return cfg, nil
}

func parseFloat(key, fallback string, lo, hi float64) (float64, error) {
	v, err := strconv.ParseFloat(sharedcfg.EnvOrDefault(key, fallback), 64)
	if err != nil || v < lo || v > hi {
		return 0, fmt.Errorf("invalid %s: must be between %g and %g", key, lo, hi)
	}
	return v, nil
}
