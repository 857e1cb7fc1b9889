package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/jonboulle/clockwork"
	kafkago "github.com/segmentio/kafka-go"

	"github.com/couchcryptid/quakemap-service/internal/config"
	"github.com/couchcryptid/quakemap-service/internal/domain"
)

// Writer publishes rendered points to a Kafka topic.
// It implements pipeline.BatchLoader.
type Writer struct {
	writer *kafkago.Writer
	clock  clockwork.Clock
	logger *slog.Logger
}

// NewWriter creates a Kafka producer for the configured marker topic.
func NewWriter(cfg *config.Config, logger *slog.Logger) *Writer {
	w := &kafkago.Writer{
		Addr:                   kafkago.TCP(cfg.KafkaBrokers...),
		Topic:                  cfg.KafkaTopic,
		Balancer:               &kafkago.Hash{},
		RequiredAcks:           kafkago.RequireAll,
		AllowAutoTopicCreation: true,
	}
	return &Writer{writer: w, clock: clockwork.NewRealClock(), logger: logger}
}

// LoadBatch serializes and publishes every point in a single WriteMessages
// call. All messages in a batch share one rendered_at stamp.
func (w *Writer) LoadBatch(ctx context.Context, points []domain.RenderedPoint) error {
	if len(points) == 0 {
		return nil
	}
	renderedAt := w.clock.Now().UTC()
	msgs := make([]kafkago.Message, len(points))
	for i := range points {
		msg, err := serializeToMessage(points[i], renderedAt)
		if err != nil {
			return err
		}
		msgs[i] = msg
	}
	if err := w.writer.WriteMessages(ctx, msgs...); err != nil {
		return fmt.Errorf("write markers: %w", err)
	}
	w.logger.Debug("markers published", "topic", w.writer.Topic, "count", len(msgs))
	return nil
}

func (w *Writer) Close() error {
	return w.writer.Close()
}

// serializeToMessage marshals a RenderedPoint into a Kafka message keyed by
// the quake id, so repeated snapshots of one event land on one partition.
func serializeToMessage(point domain.RenderedPoint, renderedAt time.Time) (kafkago.Message, error) {
	data, err := json.Marshal(point)
	if err != nil {
		return kafkago.Message{}, fmt.Errorf("serialize rendered point: %w", err)
	}
	return kafkago.Message{
		Key:   []byte(point.ID),
		Value: data,
		Headers: []kafkago.Header{
			{Key: "color", Value: []byte(point.Color)},
			{Key: "rendered_at", Value: []byte(renderedAt.Format(time.RFC3339))},
		},
	}, nil
}
