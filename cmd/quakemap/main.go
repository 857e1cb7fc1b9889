package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	httpadapter "github.com/couchcryptid/quakemap-service/internal/adapter/http"
	kafkaadapter "github.com/couchcryptid/quakemap-service/internal/adapter/kafka"
	"github.com/couchcryptid/quakemap-service/internal/adapter/usgs"
	"github.com/couchcryptid/quakemap-service/internal/config"
	"github.com/couchcryptid/quakemap-service/internal/domain"
	"github.com/couchcryptid/quakemap-service/internal/observability"
	"github.com/couchcryptid/quakemap-service/internal/pipeline"
	"github.com/couchcryptid/quakemap-service/internal/presenter"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg)
	metrics := observability.NewMetrics()

	// Marker publishing is feature-flagged via KAFKA_ENABLED.
	var (
		loader pipeline.BatchLoader
		writer *kafkaadapter.Writer
	)
	if cfg.KafkaEnabled {
		writer = kafkaadapter.NewWriter(cfg, logger)
		loader = writer
		logger.Info("kafka marker publishing enabled", "brokers", cfg.KafkaBrokers, "topic", cfg.KafkaTopic)
	} else {
		logger.Info("kafka marker publishing disabled")
	}
	if cfg.MapboxToken != "" {
		logger.Info("mapbox satellite layer enabled")
	}

	client := usgs.NewClient(cfg.FeedTimeout, logger)
	mapper := domain.NewMapper(cfg.Location, cfg.Locale)
	p := pipeline.New(client, mapper, loader, logger, metrics)

	pres := presenter.New(presenter.Options{
		ContainerID: cfg.MapContainerID,
		Center:      domain.Position{Lat: cfg.MapCenterLat, Lon: cfg.MapCenterLon},
		Zoom:        cfg.MapZoom,
		TileURL:     cfg.TileURL,
		MapboxToken: cfg.MapboxToken,
	}, logger, metrics)

	srv := httpadapter.NewServer(cfg.HTTPAddr, pres, logger, metrics)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Start HTTP server.
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
		}
	}()

	// Fetch, map, and present once. On failure the page stays unavailable.
	go func() {
		points, err := p.FetchAndMap(ctx, cfg.FeedURL)
		if err != nil {
			logger.Error("feed pipeline failed", "error", err, "feed_url", cfg.FeedURL)
			return
		}
		if _, err := pres.Present(points); err != nil {
			logger.Error("present map view failed", "error", err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}
	if writer != nil {
		if err := writer.Close(); err != nil {
			logger.Error("kafka writer close error", "error", err)
		}
	}

	logger.Info("shutdown complete")
}
