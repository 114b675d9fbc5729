package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	kafkago "github.com/segmentio/kafka-go"

	"github.com/dkonya/methu-forecast/internal/config"
	"github.com/dkonya/methu-forecast/internal/domain"
)

// Writer publishes refreshed forecast snapshots to a Kafka topic.
type Writer struct {
	writer *kafkago.Writer
	logger *slog.Logger
}

// NewWriter creates a Kafka producer for the configured topic.
func NewWriter(cfg *config.Config, logger *slog.Logger) *Writer {
	w := &kafkago.Writer{
		Addr:         kafkago.TCP(cfg.KafkaBrokers...),
		Topic:        cfg.KafkaTopic,
		Balancer:     &kafkago.LeastBytes{},
		RequiredAcks: kafkago.RequireAll,
	}
	return &Writer{writer: w, logger: logger}
}

// Publish serializes a snapshot and writes it keyed by the settlement code,
// so all snapshots of one settlement land on the same partition in order.
func (w *Writer) Publish(ctx context.Context, settlement domain.Settlement, snapshot domain.ForecastSnapshot) error {
	msg, err := serializeToMessage(settlement, snapshot)
	if err != nil {
		return err
	}
	return w.writer.WriteMessages(ctx, msg)
}

func (w *Writer) Close() error {
	return w.writer.Close()
}

// serializeToMessage marshals a ForecastSnapshot into a Kafka message.
func serializeToMessage(settlement domain.Settlement, snapshot domain.ForecastSnapshot) (kafkago.Message, error) {
	data, err := json.Marshal(snapshot)
	if err != nil {
		return kafkago.Message{}, fmt.Errorf("serialize forecast snapshot: %w", err)
	}
	return kafkago.Message{
		Key:   []byte(settlement.Code),
		Value: data,
		Headers: []kafkago.Header{
			{Key: "settlement", Value: []byte(settlement.Name)},
			{Key: "retrieved_at", Value: []byte(snapshot.RetrievedAt.Format(time.RFC3339))},
		},
	}, nil
}
