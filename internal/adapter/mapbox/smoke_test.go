//go:build mapbox

package mapbox

import (
	"context"
	"io"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/couchcryptid/store-directory/internal/observability"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// These tests hit the real Mapbox API and require a valid MAPBOX_TOKEN env var.
// Run with: go test -tags=mapbox ./internal/adapter/mapbox/ -v -count=1

func smokeClient(t *testing.T) *Client {
	t.Helper()
	token := os.Getenv("MAPBOX_TOKEN")
	if token == "" {
		t.Fatal("MAPBOX_TOKEN must be set to run smoke tests")
	}
	return NewClient(token, 10*time.Second, observability.NewMetricsForTesting(),
		slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestSmoke_ForwardGeocode(t *testing.T) {
	c := smokeClient(t)

	result, err := c.ForwardGeocode(context.Background(), "東京都千代田区丸の内1-9-1")
	require.NoError(t, err)

	assert.InDelta(t, 35.68, result.Lat, 0.1, "lat should be near Tokyo Station")
	assert.InDelta(t, 139.76, result.Lon, 0.1, "lon should be near Tokyo Station")
	assert.NotEmpty(t, result.FormattedAddress)
	assert.Greater(t, result.Confidence, 0.5)
}

func TestSmoke_ForwardGeocode_PrefectureOnly(t *testing.T) {
	c := smokeClient(t)

	result, err := c.ForwardGeocode(context.Background(), "北海道")
	require.NoError(t, err)
	assert.Greater(t, result.Lat, 41.0)
}

func TestSmoke_CachedGeocoder(t *testing.T) {
	c := smokeClient(t)
	cached := NewCachedGeocoder(c, 10, observability.NewMetricsForTesting())

	r1, err := cached.ForwardGeocode(context.Background(), "大阪府大阪市北区梅田3-1-1")
	require.NoError(t, err)

	r2, err := cached.ForwardGeocode(context.Background(), "大阪府大阪市北区梅田3-1-1")
	require.NoError(t, err)
	assert.Equal(t, r1, r2)
}
