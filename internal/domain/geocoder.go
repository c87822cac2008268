package domain

import (
	"context"
	"log/slog"
)

// GeocodingResult contains location data returned by a geocoding provider.
type GeocodingResult struct {
	Lat              float64
	Lon              float64
	FormattedAddress string
	Confidence       float64 // 0.0–1.0 provider confidence score
}

// Geocoder resolves a free-text Japanese address to coordinates.
type Geocoder interface {
	ForwardGeocode(ctx context.Context, query string) (GeocodingResult, error)
}

// EnrichWithGeocoding attaches coordinates to a store. If geocoder is nil,
// the store has nothing to look up, or the lookup fails, the store is
// returned unchanged (graceful degradation). A store without an address whose
// prefecture is the unclassified sentinel of rules is never looked up.
func EnrichWithGeocoding(ctx context.Context, store Store, geocoder Geocoder, rules Rules, logger *slog.Logger) Store {
	if geocoder == nil {
		return store
	}
	if store.Address == "" && (store.Prefecture == "" || store.Prefecture == rules.Unclassified) {
		return store
	}

	result, err := geocoder.ForwardGeocode(ctx, store.Location())
	if err != nil {
		logger.Warn("forward geocoding failed",
			"slug", store.Slug,
			"query", store.Location(),
			"error", err,
		)
		return store
	}
	if result.Lat == 0 && result.Lon == 0 {
		return store
	}
	store.Geo = &Geo{Lat: result.Lat, Lon: result.Lon}
	return store
}
