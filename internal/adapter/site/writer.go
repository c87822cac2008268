// Package site writes generated pages to the output directory.
package site

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/couchcryptid/store-directory/internal/domain"
	"github.com/couchcryptid/store-directory/internal/observability"
)

const (
	dirPerm  = 0o755
	filePerm = 0o644
)

// Writer stores every page of a site under a single directory, overwriting
// pages left by a previous run. It implements pipeline.Loader.
type Writer struct {
	dir     string
	logger  *slog.Logger
	metrics *observability.Metrics
}

// NewWriter creates a Writer rooted at dir.
func NewWriter(dir string, logger *slog.Logger, metrics *observability.Metrics) *Writer {
	return &Writer{dir: dir, logger: logger, metrics: metrics}
}

// Dir returns the output directory.
func (w *Writer) Dir() string {
	return w.dir
}

// Load creates the output directory if needed and writes each page.
// Stale pages of stores no longer in the sheet are left in place.
func (w *Writer) Load(ctx context.Context, site domain.Site) error {
	if err := os.MkdirAll(w.dir, dirPerm); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	for _, p := range site.Pages {
		if err := ctx.Err(); err != nil {
			return err
		}
		if p.Name == "" || filepath.Base(p.Name) != p.Name {
			return fmt.Errorf("invalid page name %q", p.Name)
		}
		path := filepath.Join(w.dir, p.Name)
		if err := os.WriteFile(path, p.Body, filePerm); err != nil {
			return fmt.Errorf("write %s: %w", p.Name, err)
		}
		w.metrics.PagesWritten.Inc()
	}

	w.logger.Info("site written", "dir", w.dir, "pages", len(site.Pages))
	return nil
}
