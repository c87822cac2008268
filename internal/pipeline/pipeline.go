package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/couchcryptid/store-directory/internal/domain"
	"github.com/couchcryptid/store-directory/internal/observability"
	"github.com/jonboulle/clockwork"
)

// Extractor fetches the raw CSV bytes of the store sheet.
type Extractor interface {
	Extract(ctx context.Context) ([]byte, error)
}

// Transformer turns parsed rows into a grouped directory.
type Transformer interface {
	Transform(ctx context.Context, rows []domain.Row) (domain.Directory, error)
}

// Renderer produces the pages of a directory.
type Renderer interface {
	Render(dir domain.Directory) ([]domain.Page, error)
}

// Loader delivers a rendered site somewhere: the output directory, a feed.
type Loader interface {
	Load(ctx context.Context, site domain.Site) error
}

// Loaders runs each loader in order and stops at the first failure.
type Loaders []Loader

func (ls Loaders) Load(ctx context.Context, site domain.Site) error {
	for _, l := range ls {
		if err := l.Load(ctx, site); err != nil {
			return err
		}
	}
	return nil
}

// Summary describes a completed run.
type Summary struct {
	Rows     int
	Stores   int
	Dropped  int
	Groups   int
	Pages    int
	Duration time.Duration
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithClock sets the clock used to time stages.
func WithClock(c clockwork.Clock) Option {
	return func(p *Pipeline) { p.clock = c }
}

// Pipeline runs one generation pass: extract, parse, transform, render, load.
type Pipeline struct {
	extractor   Extractor
	transformer Transformer
	renderer    Renderer
	loader      Loader
	logger      *slog.Logger
	metrics     *observability.Metrics
	clock       clockwork.Clock
	ready       atomic.Bool
	pages       atomic.Pointer[map[string]struct{}]
}

// New creates a Pipeline with the given stages and observability.
func New(e Extractor, t Transformer, r Renderer, l Loader, logger *slog.Logger, metrics *observability.Metrics, opts ...Option) *Pipeline {
	p := &Pipeline{
		extractor:   e,
		transformer: t,
		renderer:    r,
		loader:      l,
		logger:      logger,
		metrics:     metrics,
		clock:       clockwork.NewRealClock(),
	}
	for _, o := range opts {
		o(p)
	}
	return p
}

// CheckReadiness returns nil once a run has completed successfully.
func (p *Pipeline) CheckReadiness(_ context.Context) error {
	if !p.ready.Load() {
		return errors.New("no successful generation run yet")
	}
	return nil
}

// HasPage reports whether name is a page of the last successful run.
func (p *Pipeline) HasPage(name string) bool {
	pages := p.pages.Load()
	if pages == nil {
		return false
	}
	_, ok := (*pages)[name]
	return ok
}

// Run executes a single generation pass. Any stage failure aborts the run
// and is returned wrapped with the stage name.
func (p *Pipeline) Run(ctx context.Context) (Summary, error) {
	start := p.clock.Now()
	p.logger.Info("generation started")

	sum, err := p.run(ctx)
	if err != nil {
		p.metrics.RunSuccess.Set(0)
		return Summary{}, err
	}

	sum.Duration = p.clock.Since(start)
	p.metrics.RunSuccess.Set(1)
	p.ready.Store(true)
	p.logger.Info("generation finished",
		"rows", sum.Rows,
		"stores", sum.Stores,
		"dropped", sum.Dropped,
		"groups", sum.Groups,
		"pages", sum.Pages,
		"duration", sum.Duration,
	)
	return sum, nil
}

func (p *Pipeline) run(ctx context.Context) (Summary, error) {
	var (
		data  []byte
		rows  []domain.Row
		dir   domain.Directory
		pages []domain.Page
	)

	err := p.stage("extract", func() (err error) {
		data, err = p.extractor.Extract(ctx)
		return err
	})
	if err != nil {
		return Summary{}, err
	}

	err = p.stage("parse", func() (err error) {
		rows, err = domain.ParseCSV(data)
		return err
	})
	if err != nil {
		return Summary{}, err
	}
	p.metrics.RowsParsed.Add(float64(len(rows)))

	err = p.stage("transform", func() (err error) {
		dir, err = p.transformer.Transform(ctx, rows)
		return err
	})
	if err != nil {
		return Summary{}, err
	}
	p.metrics.RowsDropped.Add(float64(dir.Dropped))
	p.metrics.Stores.Set(float64(len(dir.Stores)))
	p.warnSlugCollisions(dir.Stores)

	err = p.stage("render", func() (err error) {
		pages, err = p.renderer.Render(dir)
		return err
	})
	if err != nil {
		return Summary{}, err
	}

	err = p.stage("load", func() error {
		return p.loader.Load(ctx, domain.Site{Directory: dir, Pages: pages})
	})
	if err != nil {
		return Summary{}, err
	}

	names := make(map[string]struct{}, len(pages))
	for _, pg := range pages {
		names[pg.Name] = struct{}{}
	}
	p.pages.Store(&names)

	return Summary{
		Rows:    len(rows),
		Stores:  len(dir.Stores),
		Dropped: dir.Dropped,
		Groups:  len(dir.Groups),
		Pages:   len(pages),
	}, nil
}

// stage times fn and wraps its error with the stage name.
func (p *Pipeline) stage(name string, fn func() error) error {
	start := p.clock.Now()
	err := fn()
	p.metrics.StageDuration.WithLabelValues(name).Observe(p.clock.Since(start).Seconds())
	if err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	return nil
}

// warnSlugCollisions logs stores whose detail pages would overwrite each other.
func (p *Pipeline) warnSlugCollisions(stores []domain.Store) {
	for slug, names := range domain.SlugCollisions(stores) {
		p.logger.Warn("slug collision, later store page overwrites earlier", "slug", slug, "stores", names)
	}
}
