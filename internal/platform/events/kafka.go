package events

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/twmb/franz-go/pkg/kadm"
	"github.com/twmb/franz-go/pkg/kgo"
)

// Kafka publishes events to a single topic, keyed by email so per-applicant
// ordering is preserved across partitions.
type Kafka struct {
	client *kgo.Client
	topic  string
	logger *slog.Logger
}

// NewKafka connects to the brokers and ensures the topic exists.
func NewKafka(ctx context.Context, brokers []string, topic string, logger *slog.Logger) (*Kafka, error) {
	client, err := kgo.NewClient(
		kgo.SeedBrokers(brokers...),
		kgo.ProducerBatchMaxBytes(1<<20),
		kgo.ProduceRequestTimeout(5*time.Second),
	)
	if err != nil {
		return nil, fmt.Errorf("kafka client: %w", err)
	}

	adm := kadm.NewClient(client)
	topics, err := adm.ListTopics(ctx, topic)
	if err != nil {
		client.Close()
		return nil, fmt.Errorf("list topics: %w", err)
	}
	if !topics.Has(topic) {
		if _, err := adm.CreateTopic(ctx, 1, 1, nil, topic); err != nil {
			client.Close()
			return nil, fmt.Errorf("create topic %s: %w", topic, err)
		}
	}

	return &Kafka{client: client, topic: topic, logger: logger}, nil
}

// Publish produces asynchronously; delivery failures are logged, never
// surfaced to the request path.
func (k *Kafka) Publish(ctx context.Context, e Event) {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	if e.At.IsZero() {
		e.At = time.Now().UTC()
	}

	value, err := e.marshal()
	if err != nil {
		k.logger.ErrorContext(ctx, "marshal event", "action", e.Action, "error", err)
		return
	}

	record := &kgo.Record{
		Topic: k.topic,
		Key:   []byte(e.Email),
		Value: value,
	}
	k.client.Produce(ctx, record, func(_ *kgo.Record, err error) {
		if err != nil {
			k.logger.Error("publish event failed", "action", e.Action, "error", err)
		}
	})
}

// Close flushes pending records and releases the client.
func (k *Kafka) Close() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = k.client.Flush(ctx)
	k.client.Close()
}
