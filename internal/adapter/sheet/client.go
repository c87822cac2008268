// Package sheet fetches the store listing CSV from the spreadsheet export
// URL or from a local file and returns it as UTF-8 text.
package sheet

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"
)

// maxExportSize bounds the response body read from the export URL. A larger
// body is an error rather than a truncated catalog.
const maxExportSize int64 = 32 << 20

// Client downloads the CSV export of a spreadsheet.
// It implements pipeline.Extractor.
type Client struct {
	url        string
	encoding   string
	httpClient *http.Client
	maxSize    int64
	logger     *slog.Logger
}

// NewClient creates an export client for url. encoding is one of the
// config.Encoding* values.
func NewClient(url, encoding string, timeout time.Duration, logger *slog.Logger) *Client {
	return &Client{
		url:      url,
		encoding: encoding,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		maxSize: maxExportSize,
		logger:  logger,
	}
}

// Extract performs a single GET of the export URL. Non-200 responses are
// errors; there is no retry.
func (c *Client) Extract(ctx context.Context) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "text/csv")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch sheet: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("sheet export error: status %d: %s", resp.StatusCode, body)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, c.maxSize+1))
	if err != nil {
		return nil, fmt.Errorf("read sheet: %w", err)
	}
	if int64(len(data)) > c.maxSize {
		return nil, fmt.Errorf("sheet export exceeds %d bytes", c.maxSize)
	}

	c.logger.Debug("sheet fetched", "bytes", len(data), "content_type", resp.Header.Get("Content-Type"))
	return decode(data, c.encoding)
}
