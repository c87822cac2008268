package pipeline

import (
	"context"
	"log/slog"

	"github.com/couchcryptid/store-directory/internal/domain"
)

// StoreTransformer implements Transformer using the domain resolver with
// optional geocoding enrichment.
type StoreTransformer struct {
	resolver *domain.Resolver
	geocoder domain.Geocoder
	logger   *slog.Logger
}

// NewTransformer creates a StoreTransformer. Pass a nil geocoder to disable
// geocoding enrichment.
func NewTransformer(rules domain.Rules, geocoder domain.Geocoder, logger *slog.Logger) *StoreTransformer {
	return &StoreTransformer{
		resolver: domain.NewResolver(rules),
		geocoder: geocoder,
		logger:   logger,
	}
}

func (t *StoreTransformer) Transform(ctx context.Context, rows []domain.Row) (domain.Directory, error) {
	stores := make([]domain.Store, 0, len(rows))
	dropped := 0

	for _, row := range rows {
		s, ok := t.resolver.Resolve(row)
		if !ok {
			dropped++
			t.logger.Debug("row dropped: no store name", "line", row.Line())
			continue
		}
		if t.geocoder != nil {
			if err := ctx.Err(); err != nil {
				return domain.Directory{}, err
			}
			s = domain.EnrichWithGeocoding(ctx, s, t.geocoder, t.resolver.Rules(), t.logger)
		}
		stores = append(stores, s)
	}

	return domain.BuildDirectory(stores, dropped, t.resolver.Rules()), nil
}
