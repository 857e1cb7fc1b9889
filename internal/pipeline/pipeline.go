package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/samber/lo"

	"github.com/couchcryptid/quakemap-service/internal/domain"
	"github.com/couchcryptid/quakemap-service/internal/observability"
)

// Fetcher retrieves and decodes one feed snapshot.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (domain.Feed, error)
}

// BatchLoader writes rendered points to an auxiliary sink.
type BatchLoader interface {
	LoadBatch(ctx context.Context, points []domain.RenderedPoint) error
}

// Pipeline runs the fetch-map-publish sequence for a single feed snapshot.
type Pipeline struct {
	fetcher Fetcher
	mapper  *domain.Mapper
	loader  BatchLoader
	logger  *slog.Logger
	metrics *observability.Metrics
}

// New creates a Pipeline. loader may be nil when no sink is configured.
func New(f Fetcher, m *domain.Mapper, l BatchLoader, logger *slog.Logger, metrics *observability.Metrics) *Pipeline {
	return &Pipeline{
		fetcher: f,
		mapper:  m,
		loader:  l,
		logger:  logger,
		metrics: metrics,
	}
}

// FetchAndMap fetches the feed at url once and converts every record into a
// RenderedPoint, preserving feed order. There is no retry: a fetch or decode
// failure is returned to the caller and no points are produced.
func (p *Pipeline) FetchAndMap(ctx context.Context, url string) ([]domain.RenderedPoint, error) {
	start := time.Now()

	feed, err := p.fetcher.Fetch(ctx, url)
	p.metrics.FeedFetchDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		p.metrics.FeedFetches.WithLabelValues(fetchOutcome(err)).Inc()
		return nil, fmt.Errorf("fetch and map: %w", err)
	}
	p.metrics.FeedFetches.WithLabelValues("success").Inc()
	p.metrics.RecordsDecoded.Add(float64(len(feed.Records)))

	points := lo.Map(feed.Records, func(rec domain.RawQuakeRecord, _ int) domain.RenderedPoint {
		return p.mapper.MapFeature(rec)
	})

	byColor := lo.CountValuesBy(points, func(pt domain.RenderedPoint) domain.ColorBucket {
		return pt.Color
	})
	for color, n := range byColor {
		p.metrics.PointsByColor.WithLabelValues(string(color)).Add(float64(n))
	}

	p.logger.Info("feed mapped",
		"feed_url", url,
		"title", feed.Metadata.Title,
		"points", len(points),
		"duration", time.Since(start),
	)

	p.publish(ctx, points)

	return points, nil
}

// publish hands the batch to the loader. Failures are logged and counted but
// never fail the pipeline.
func (p *Pipeline) publish(ctx context.Context, points []domain.RenderedPoint) {
	if p.loader == nil || len(points) == 0 {
		return
	}
	if err := p.loader.LoadBatch(ctx, points); err != nil {
		p.logger.Error("publish points failed", "error", err, "batch_size", len(points))
		p.metrics.PublishErrors.Inc()
		return
	}
	p.metrics.PointsPublished.Add(float64(len(points)))
}

func fetchOutcome(err error) string {
	var decodeErr *domain.DecodeError
	if errors.As(err, &decodeErr) || errors.Is(err, domain.ErrMissingField) {
		return "decode_error"
	}
	return "fetch_error"
}
