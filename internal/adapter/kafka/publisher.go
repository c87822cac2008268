// Package kafka publishes generated store records to a Kafka topic so other
// services can consume the directory without scraping HTML.
package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/couchcryptid/store-directory/internal/domain"
	"github.com/couchcryptid/store-directory/internal/observability"
	kafkago "github.com/segmentio/kafka-go"
)

const generatedBy = "store-directory"

// messageWriter is the subset of *kafkago.Writer used by Publisher.
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafkago.Message) error
	Close() error
}

// Publisher produces one message per store to the feed topic.
// It implements pipeline.Loader.
type Publisher struct {
	writer  messageWriter
	logger  *slog.Logger
	metrics *observability.Metrics
}

// NewPublisher creates a Kafka producer for the store feed topic.
func NewPublisher(brokers []string, topic string, logger *slog.Logger, metrics *observability.Metrics) *Publisher {
	w := &kafkago.Writer{
		Addr:         kafkago.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafkago.Hash{},
		RequiredAcks: kafkago.RequireAll,
	}
	return &Publisher{writer: w, logger: logger, metrics: metrics}
}

// Load serializes every store of the site and publishes them in a single
// WriteMessages call. Messages are keyed by slug so a compacted topic keeps
// the latest record per store.
func (p *Publisher) Load(ctx context.Context, site domain.Site) error {
	stores := site.Directory.Stores
	if len(stores) == 0 {
		return nil
	}
	msgs := make([]kafkago.Message, len(stores))
	for i := range stores {
		msg, err := serializeToMessage(stores[i], site.Directory.GeneratedAt)
		if err != nil {
			return err
		}
		msgs[i] = msg
	}
	if err := p.writer.WriteMessages(ctx, msgs...); err != nil {
		return fmt.Errorf("publish stores: %w", err)
	}
	p.metrics.FeedMessages.Add(float64(len(msgs)))
	p.logger.Info("store feed published", "messages", len(msgs))
	return nil
}

func (p *Publisher) Close() error {
	return p.writer.Close()
}

// serializeToMessage marshals a Store into a Kafka message.
func serializeToMessage(s domain.Store, generatedAt time.Time) (kafkago.Message, error) {
	data, err := json.Marshal(s)
	if err != nil {
		return kafkago.Message{}, fmt.Errorf("serialize store %s: %w", s.Slug, err)
	}
	return kafkago.Message{
		Key:   []byte(s.Slug),
		Value: data,
		Headers: []kafkago.Header{
			{Key: "prefecture", Value: []byte(s.Prefecture)},
			{Key: "generated_by", Value: []byte(generatedBy)},
			{Key: "generated_at", Value: []byte(generatedAt.Format(time.RFC3339))},
		},
	}, nil
}
