package render

import (
	"encoding/json"
	"fmt"

	"github.com/couchcryptid/store-directory/internal/domain"
)

const schemaContext = "https://schema.org"

// localBusiness is a schema.org LocalBusiness entity. Field order is the
// serialized key order.
type localBusiness struct {
	Context   string          `json:"@context,omitempty"`
	Type      string          `json:"@type"`
	Name      string          `json:"name"`
	Address   string          `json:"address"`
	Telephone string          `json:"telephone,omitempty"`
	Image     string          `json:"image,omitempty"`
	URL       string          `json:"url"`
	Geo       *geoCoordinates `json:"geo,omitempty"`
}

type geoCoordinates struct {
	Type      string  `json:"@type"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

type businessGraph struct {
	Context string          `json:"@context"`
	Graph   []localBusiness `json:"@graph"`
}

func businessFor(s domain.Store) localBusiness {
	b := localBusiness{
		Type:      "LocalBusiness",
		Name:      s.Name,
		Address:   s.Location(),
		Telephone: s.Tel,
		Image:     ImageURL(s.Image),
		URL:       s.PageName(),
	}
	if s.Geo != nil {
		b.Geo = &geoCoordinates{Type: "GeoCoordinates", Latitude: s.Geo.Lat, Longitude: s.Geo.Lon}
	}
	return b
}

// storeJSONLD is the structured-data block of a detail page.
func storeJSONLD(s domain.Store) (string, error) {
	b := businessFor(s)
	b.Context = schemaContext
	return scriptTag(b)
}

// directoryJSONLD is the structured-data block of the index page: every store
// in input order as one @graph.
func directoryJSONLD(stores []domain.Store) (string, error) {
	g := businessGraph{Context: schemaContext, Graph: make([]localBusiness, 0, len(stores))}
	for _, s := range stores {
		g.Graph = append(g.Graph, businessFor(s))
	}
	return scriptTag(g)
}

// scriptTag wraps v in a JSON-LD script element. encoding/json escapes <, >
// and &, so the payload cannot close the element early.
func scriptTag(v any) (string, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("marshal json-ld: %w", err)
	}
	return `<script type="application/ld+json">` + string(data) + `</script>`, nil
}
