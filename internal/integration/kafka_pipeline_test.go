//go:build integration

package integration_test

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net"
	"os"
	"path/filepath"
	"strconv"
	"testing"
	"time"

	"github.com/couchcryptid/store-directory/internal/adapter/kafka"
	"github.com/couchcryptid/store-directory/internal/adapter/sheet"
	"github.com/couchcryptid/store-directory/internal/adapter/site"
	"github.com/couchcryptid/store-directory/internal/config"
	"github.com/couchcryptid/store-directory/internal/domain"
	"github.com/couchcryptid/store-directory/internal/observability"
	"github.com/couchcryptid/store-directory/internal/pipeline"
	"github.com/couchcryptid/store-directory/internal/render"
	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tckafka "github.com/testcontainers/testcontainers-go/modules/kafka"
)

const testTopic = "test-store-directory"

const storesCSV = "店舗名,店舗名2,都道府県,住所,電話番号\n" +
	"さくら珈琲,渋谷店,東京都,東京都渋谷区神南1-1,03-0000-0000\n" +
	"あおば,,,大阪府大阪市北区梅田1-1,\n" +
	"Sample,,,,\n"

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// startKafka runs a single-node broker and returns its bootstrap address.
func startKafka(ctx context.Context, t *testing.T) string {
	t.Helper()
	kc, err := tckafka.Run(ctx, "confluentinc/confluent-local:7.5.0", tckafka.WithClusterID("store-directory-test"))
	testcontainers.CleanupContainer(t, kc)
	require.NoError(t, err, "start kafka container")

	brokers, err := kc.Brokers(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, brokers)
	return brokers[0]
}

// createTopic creates a single-partition topic through the cluster controller.
func createTopic(t *testing.T, broker, topic string) {
	t.Helper()
	conn, err := kafkago.Dial("tcp", broker)
	require.NoError(t, err)
	defer conn.Close()

	controller, err := conn.Controller()
	require.NoError(t, err)

	cc, err := kafkago.Dial("tcp", net.JoinHostPort(controller.Host, strconv.Itoa(controller.Port)))
	require.NoError(t, err)
	defer cc.Close()

	require.NoError(t, cc.CreateTopics(kafkago.TopicConfig{
		Topic:             topic,
		NumPartitions:     1,
		ReplicationFactor: 1,
	}))
}

type feedMessage struct {
	Store   domain.Store
	Key     string
	Headers map[string]string
}

func readFeed(ctx context.Context, t *testing.T, consumer *kafkago.Reader) feedMessage {
	t.Helper()
	readCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	msg, err := consumer.ReadMessage(readCtx)
	require.NoError(t, err, "read from feed topic")

	headers := make(map[string]string, len(msg.Headers))
	for _, h := range msg.Headers {
		headers[h.Key] = string(h.Value)
	}
	var s domain.Store
	require.NoError(t, json.Unmarshal(msg.Value, &s), "unmarshal feed message")
	return feedMessage{Store: s, Key: string(msg.Key), Headers: headers}
}

// TestPipelineEndToEnd runs a full generation from a CSV file into both the
// output directory and a real Kafka topic.
func TestPipelineEndToEnd(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	broker := startKafka(ctx, t)
	createTopic(t, broker, testTopic)

	dir := t.TempDir()
	csvPath := filepath.Join(dir, "stores.csv")
	require.NoError(t, os.WriteFile(csvPath, []byte(storesCSV), 0o600))
	out := filepath.Join(dir, "dist")

	metrics := observability.NewMetricsForTesting()
	publisher := kafka.NewPublisher([]string{broker}, testTopic, discardLogger(), metrics)
	t.Cleanup(func() { _ = publisher.Close() })

	p := pipeline.New(
		sheet.NewFile(csvPath, config.EncodingUTF8),
		pipeline.NewTransformer(domain.DefaultRules(), nil, discardLogger()),
		render.New(render.DefaultTemplates()),
		pipeline.Loaders{site.NewWriter(out, discardLogger(), metrics), publisher},
		discardLogger(),
		metrics,
	)

	sum, err := p.Run(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, sum.Stores)
	assert.Equal(t, 4, sum.Pages)

	consumer := kafkago.NewReader(kafkago.ReaderConfig{
		Brokers:     []string{broker},
		Topic:       testTopic,
		GroupID:     fmt.Sprintf("test-feed-%d", time.Now().UnixNano()),
		StartOffset: kafkago.FirstOffset,
	})
	t.Cleanup(func() { _ = consumer.Close() })

	received := make(map[string]feedMessage, sum.Stores)
	for len(received) < sum.Stores {
		fm := readFeed(ctx, t, consumer)
		received[fm.Key] = fm
	}

	for key, fm := range received {
		assert.Equal(t, key, fm.Store.Slug)
		assert.Equal(t, fm.Store.Prefecture, fm.Headers["prefecture"])
		assert.Equal(t, "store-directory", fm.Headers["generated_by"])
		_, err := time.Parse(time.RFC3339, fm.Headers["generated_at"])
		assert.NoError(t, err, "generated_at should be valid RFC3339")

		_, err = os.Stat(filepath.Join(out, fm.Store.PageName()))
		assert.NoError(t, err, "every published store has a detail page")
	}

	sakura := received[domain.Slug("さくら珈琲", "渋谷店", domain.DefaultSlugFallback)]
	assert.Equal(t, "東京都", sakura.Store.Prefecture)
	assert.Equal(t, "03-0000-0000", sakura.Store.Tel)

	aoba := received[domain.Slug("あおば", "", domain.DefaultSlugFallback)]
	assert.Equal(t, "大阪府", aoba.Store.Prefecture)

	sample := received[domain.Slug("Sample", "", domain.DefaultSlugFallback)]
	assert.Equal(t, domain.Unclassified, sample.Store.Prefecture)
}
