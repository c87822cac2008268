// Command storegen fetches the store spreadsheet and writes the static store
// directory: one index page grouped by prefecture and one page per store.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	httpadapter "github.com/couchcryptid/store-directory/internal/adapter/http"
	kafkaadapter "github.com/couchcryptid/store-directory/internal/adapter/kafka"
	"github.com/couchcryptid/store-directory/internal/adapter/mapbox"
	"github.com/couchcryptid/store-directory/internal/adapter/sheet"
	"github.com/couchcryptid/store-directory/internal/adapter/site"
	"github.com/couchcryptid/store-directory/internal/config"
	"github.com/couchcryptid/store-directory/internal/domain"
	"github.com/couchcryptid/store-directory/internal/observability"
	"github.com/couchcryptid/store-directory/internal/pipeline"
	"github.com/couchcryptid/store-directory/internal/render"
)

func main() {
	if err := run(); err != nil {
		slog.Error("store directory generation failed", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := observability.NewLogger(cfg)
	metrics := observability.NewMetrics()

	templates, err := render.LoadTemplates(cfg.TemplateList, cfg.TemplateDetail)
	if err != nil {
		return err
	}

	var source pipeline.Extractor
	if cfg.SheetFile != "" {
		source = sheet.NewFile(cfg.SheetFile, cfg.CSVEncoding)
		logger.Info("reading sheet from file", "path", cfg.SheetFile, "encoding", cfg.CSVEncoding)
	} else {
		source = sheet.NewClient(cfg.SheetURL, cfg.CSVEncoding, cfg.FetchTimeout, logger)
		logger.Info("fetching sheet", "url", cfg.SheetURL, "encoding", cfg.CSVEncoding)
	}

	// Initialize geocoder (feature-flagged via MAPBOX_ENABLED / MAPBOX_TOKEN).
	var geocoder domain.Geocoder
	if cfg.MapboxEnabled {
		client := mapbox.NewClient(cfg.MapboxToken, cfg.MapboxTimeout, metrics, logger)
		geocoder = mapbox.NewCachedGeocoder(client, cfg.MapboxCacheSize, metrics)
		logger.Info("mapbox geocoding enabled", "cache_size", cfg.MapboxCacheSize, "timeout", cfg.MapboxTimeout)
	} else {
		logger.Info("mapbox geocoding disabled")
	}

	loaders := pipeline.Loaders{site.NewWriter(cfg.OutputDir, logger, metrics)}
	if cfg.FeedEnabled() {
		publisher := kafkaadapter.NewPublisher(cfg.KafkaBrokers, cfg.KafkaTopic, logger, metrics)
		defer func() {
			if err := publisher.Close(); err != nil {
				logger.Error("kafka publisher close error", "error", err)
			}
		}()
		loaders = append(loaders, publisher)
		logger.Info("store feed enabled", "topic", cfg.KafkaTopic)
	}

	transformer := pipeline.NewTransformer(domain.DefaultRules(), geocoder, logger)
	p := pipeline.New(source, transformer, render.New(templates), loaders, logger, metrics)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if _, err := p.Run(ctx); err != nil {
		return err
	}

	if cfg.PreviewAddr == "" {
		return nil
	}
	return preview(ctx, cfg, p, logger)
}

// previewSite is what the preview server needs from a pipeline.
type previewSite interface {
	httpadapter.ReadinessChecker
	httpadapter.PageIndex
}

// preview serves the generated site until the process is signalled.
func preview(ctx context.Context, cfg *config.Config, s previewSite, logger *slog.Logger) error {
	srv := httpadapter.NewServer(cfg.PreviewAddr, cfg.OutputDir, s, s, logger)

	errCh := make(chan error, 1)
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}
	logger.Info("shutdown complete")
	return nil
}
