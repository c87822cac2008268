package sheet

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/couchcryptid/store-directory/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/transform"
)

const testCSV = "店舗名,住所\nサンプル店,東京都渋谷区1-1\n"

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func shiftJIS(t *testing.T, s string) []byte {
	t.Helper()
	out, _, err := transform.Bytes(japanese.ShiftJIS.NewEncoder(), []byte(s))
	require.NoError(t, err)
	return out
}

func TestClient_Extract_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "csv", r.URL.Query().Get("format"))
		w.Header().Set("Content-Type", "text/csv; charset=utf-8")
		_, _ = w.Write([]byte(testCSV))
	}))
	defer srv.Close()

	c := NewClient(srv.URL+"/export?format=csv", config.EncodingUTF8, 5*time.Second, discardLogger())
	data, err := c.Extract(context.Background())
	require.NoError(t, err)
	assert.Equal(t, testCSV, string(data))
}

func TestClient_Extract_ShiftJIS(t *testing.T) {
	body := shiftJIS(t, testCSV)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write(body)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, config.EncodingShiftJIS, 5*time.Second, discardLogger())
	data, err := c.Extract(context.Background())
	require.NoError(t, err)
	assert.Equal(t, testCSV, string(data))
}

func TestClient_Extract_StatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte("sheet not shared"))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, config.EncodingUTF8, 5*time.Second, discardLogger())
	_, err := c.Extract(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "404")
	assert.Contains(t, err.Error(), "sheet not shared")
}

func TestClient_Extract_SizeLimit(t *testing.T) {
	const limit = 1024
	row := "サンプル店,東京都渋谷区1-1\n"

	tests := []struct {
		name    string
		body    string
		wantErr bool
	}{
		{"at limit", strings.Repeat("x", limit), false},
		{"oversized", "店舗名,住所\n" + strings.Repeat(row, limit/len(row)+1), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			c := NewClient(srv.URL, config.EncodingUTF8, 5*time.Second, discardLogger())
			c.maxSize = limit

			data, err := c.Extract(context.Background())
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), "exceeds 1024 bytes")
				assert.Nil(t, data)
				return
			}
			require.NoError(t, err)
			assert.Len(t, data, limit)
		})
	}
}

func TestClient_Extract_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		time.Sleep(200 * time.Millisecond)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, config.EncodingUTF8, 50*time.Millisecond, discardLogger())
	_, err := c.Extract(context.Background())
	require.Error(t, err)
}

func TestClient_Extract_ContextCancelled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(testCSV))
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	c := NewClient(srv.URL, config.EncodingUTF8, 5*time.Second, discardLogger())
	_, err := c.Extract(ctx)
	require.ErrorIs(t, err, context.Canceled)
}

func TestFile_Extract(t *testing.T) {
	dir := t.TempDir()

	t.Run("utf-8", func(t *testing.T) {
		path := filepath.Join(dir, "utf8.csv")
		require.NoError(t, os.WriteFile(path, []byte(testCSV), 0o600))

		data, err := NewFile(path, config.EncodingUTF8).Extract(context.Background())
		require.NoError(t, err)
		assert.Equal(t, testCSV, string(data))
	})

	t.Run("shift_jis", func(t *testing.T) {
		path := filepath.Join(dir, "sjis.csv")
		require.NoError(t, os.WriteFile(path, shiftJIS(t, testCSV), 0o600))

		data, err := NewFile(path, config.EncodingShiftJIS).Extract(context.Background())
		require.NoError(t, err)
		assert.Equal(t, testCSV, string(data))
	})

	t.Run("missing", func(t *testing.T) {
		_, err := NewFile(filepath.Join(dir, "nope.csv"), config.EncodingUTF8).Extract(context.Background())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "read sheet file")
	})
}

func TestDecode_UnsupportedEncoding(t *testing.T) {
	_, err := decode([]byte("x"), "ebcdic")
	require.Error(t, err)
}

func TestNewClient_DefaultSizeLimit(t *testing.T) {
	c := NewClient("http://example.invalid", config.EncodingUTF8, time.Second, discardLogger())
	assert.Equal(t, int64(32<<20), c.maxSize)
}
