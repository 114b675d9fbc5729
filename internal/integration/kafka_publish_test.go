//go:build integration

package integration_test

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net"
	"strconv"
	"testing"
	"time"

	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	tckafka "github.com/testcontainers/testcontainers-go/modules/kafka"

	kafkaadapter "github.com/dkonya/methu-forecast/internal/adapter/kafka"
	"github.com/dkonya/methu-forecast/internal/config"
	"github.com/dkonya/methu-forecast/internal/domain"
)

const testTopic = "test-forecasts"

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// startKafka launches a single-node Kafka via testcontainers and returns its
// broker address.
func startKafka(ctx context.Context, t *testing.T) string {
	t.Helper()

	container, err := tckafka.Run(ctx, "confluentinc/confluent-local:7.5.0",
		tckafka.WithClusterID("test-cluster"))
	require.NoError(t, err, "start kafka container")
	t.Cleanup(func() {
		_ = container.Terminate(context.Background())
	})

	brokers, err := container.Brokers(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, brokers)
	return brokers[0]
}

func createTopic(t *testing.T, broker, topic string) {
	t.Helper()

	conn, err := kafkago.Dial("tcp", broker)
	require.NoError(t, err)
	defer conn.Close()

	controller, err := conn.Controller()
	require.NoError(t, err)

	ctrlConn, err := kafkago.Dial("tcp", net.JoinHostPort(controller.Host, strconv.Itoa(controller.Port)))
	require.NoError(t, err)
	defer ctrlConn.Close()

	require.NoError(t, ctrlConn.CreateTopics(kafkago.TopicConfig{
		Topic:             topic,
		NumPartitions:     1,
		ReplicationFactor: 1,
	}))
}

// TestWriterPublishRoundTrip verifies that a published snapshot arrives on the
// topic with the settlement code as key and intact headers and payload.
func TestWriterPublishRoundTrip(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 90*time.Second)
	defer cancel()

	broker := startKafka(ctx, t)
	createTopic(t, broker, testTopic)

	cfg := &config.Config{
		KafkaBrokers: []string{broker},
		KafkaTopic:   testTopic,
	}

	writer := kafkaadapter.NewWriter(cfg, discardLogger())
	t.Cleanup(func() { _ = writer.Close() })

	retrieved := time.Date(2026, time.February, 25, 5, 0, 0, 0, time.UTC)
	slotTime := time.Date(2026, time.February, 25, 6, 0, 0, 0, time.UTC)
	settlement := domain.Settlement{Name: "Siófok", Code: "3078", Lat: 46.917, Lon: 18.12}
	snapshot := domain.ForecastSnapshot{
		Settlement: "Siófok",
		Found:      true,
		Slots: []domain.ForecastSlot{{
			Time:        &slotTime,
			Temperature: domain.Float(-2.5),
			Condition:   domain.ConditionPartlyCloudy,
		}},
		Days:        []domain.ForecastSlot{},
		RetrievedAt: retrieved,
	}

	require.NoError(t, writer.Publish(ctx, settlement, snapshot))

	consumer := kafkago.NewReader(kafkago.ReaderConfig{
		Brokers:     []string{broker},
		Topic:       testTopic,
		GroupID:     fmt.Sprintf("test-consumer-%d", time.Now().UnixNano()),
		StartOffset: kafkago.FirstOffset,
	})
	t.Cleanup(func() { _ = consumer.Close() })

	readCtx, readCancel := context.WithTimeout(ctx, 30*time.Second)
	defer readCancel()
	msg, err := consumer.ReadMessage(readCtx)
	require.NoError(t, err, "read from topic")

	assert.Equal(t, []byte("3078"), msg.Key)

	headers := make(map[string]string, len(msg.Headers))
	for _, h := range msg.Headers {
		headers[h.Key] = string(h.Value)
	}
	assert.Equal(t, "Siófok", headers["settlement"])
	assert.Equal(t, retrieved.Format(time.RFC3339), headers["retrieved_at"])

	var got domain.ForecastSnapshot
	require.NoError(t, json.Unmarshal(msg.Value, &got))
	assert.Equal(t, "Siófok", got.Settlement)
	assert.True(t, got.Found)
	require.Len(t, got.Slots, 1)
	assert.Equal(t, -2.5, *got.Slots[0].Temperature)
	assert.Equal(t, domain.ConditionPartlyCloudy, got.Slots[0].Condition)
	assert.True(t, got.Slots[0].Time.Equal(slotTime))
}

// TestWriterOrderingPerSettlement verifies that successive snapshots of one
// settlement preserve publish order on a partition.
func TestWriterOrderingPerSettlement(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 90*time.Second)
	defer cancel()

	broker := startKafka(ctx, t)
	createTopic(t, broker, testTopic)

	cfg := &config.Config{
		KafkaBrokers: []string{broker},
		KafkaTopic:   testTopic,
	}

	writer := kafkaadapter.NewWriter(cfg, discardLogger())
	t.Cleanup(func() { _ = writer.Close() })

	settlement := domain.Settlement{Name: "Eger", Code: "1390"}
	for i := 0; i < 3; i++ {
		snap := domain.ForecastSnapshot{
			Settlement:  "Eger",
			Found:       true,
			Slots:       []domain.ForecastSlot{},
			Days:        []domain.ForecastSlot{},
			RetrievedAt: time.Date(2026, time.February, 25, i, 0, 0, 0, time.UTC),
		}
		require.NoError(t, writer.Publish(ctx, settlement, snap))
	}

	consumer := kafkago.NewReader(kafkago.ReaderConfig{
		Brokers:     []string{broker},
		Topic:       testTopic,
		GroupID:     fmt.Sprintf("test-consumer-%d", time.Now().UnixNano()),
		StartOffset: kafkago.FirstOffset,
	})
	t.Cleanup(func() { _ = consumer.Close() })

	var times []string
	for i := 0; i < 3; i++ {
		readCtx, readCancel := context.WithTimeout(ctx, 30*time.Second)
		msg, err := consumer.ReadMessage(readCtx)
		readCancel()
		require.NoError(t, err)

		assert.Equal(t, []byte("1390"), msg.Key)
		for _, h := range msg.Headers {
			if h.Key == "retrieved_at" {
				times = append(times, string(h.Value))
			}
		}
	}

	require.Len(t, times, 3)
	assert.True(t, times[0] < times[1] && times[1] < times[2], "snapshots out of order: %v", times)
}
