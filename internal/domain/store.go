package domain

import "time"

// Row is one parsed CSV record keyed by header text. Column order is kept so
// case-insensitive lookups are deterministic.
type Row struct {
	keys   []string
	values map[string]string
	line   int
}

// NewRow pairs header cells with record cells. Missing trailing cells read as
// empty; extra cells without a header are ignored. When a header repeats, the
// first column wins.
func NewRow(header, record []string) Row {
	r := Row{
		keys:   make([]string, 0, len(header)),
		values: make(map[string]string, len(header)),
	}
	for i, key := range header {
		if _, dup := r.values[key]; dup {
			continue
		}
		var v string
		if i < len(record) {
			v = record[i]
		}
		r.keys = append(r.keys, key)
		r.values[key] = v
	}
	return r
}

// RowOf builds a Row from alternating key/value pairs. It is a convenience for
// tests and fixtures.
func RowOf(pairs ...string) Row {
	header := make([]string, 0, len(pairs)/2)
	record := make([]string, 0, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		header = append(header, pairs[i])
		record = append(record, pairs[i+1])
	}
	return NewRow(header, record)
}

// Get returns the raw cell for key and whether the column exists.
func (r Row) Get(key string) (string, bool) {
	v, ok := r.values[key]
	return v, ok
}

// Line is the 1-based line of the sheet on which the record starts, or 0
// when the row was not read from CSV.
func (r Row) Line() int {
	return r.line
}

// Keys returns the header names in column order.
func (r Row) Keys() []string {
	out := make([]string, len(r.keys))
	copy(out, r.keys)
	return out
}

// Geo is a WGS-84 coordinate pair.
type Geo struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Store is a resolved listing. It is built once by Resolver.Resolve and
// treated as a value afterwards.
type Store struct {
	Name       string `json:"name"`
	Branch     string `json:"branch,omitempty"`
	Address    string `json:"address,omitempty"`
	Prefecture string `json:"prefecture"`
	Tel        string `json:"tel,omitempty"`
	Product    string `json:"product,omitempty"`
	Image      string `json:"image,omitempty"`
	Slug       string `json:"slug"`

	// Geo is set only when geocoding enrichment is enabled and succeeded.
	Geo *Geo `json:"geo,omitempty"`
}

// Location returns the address, or the prefecture when the address is empty.
// It is what the list page shows and what map links and geocoding query.
func (s Store) Location() string {
	if s.Address != "" {
		return s.Address
	}
	return s.Prefecture
}

// PageName is the detail page filename for the store.
func (s Store) PageName() string {
	return "store-" + s.Slug + ".html"
}

// Group is one prefecture section of the index page.
type Group struct {
	Prefecture string
	Stores     []Store
}

// Directory is the transformed result of one run.
type Directory struct {
	Stores      []Store // input order
	Groups      []Group // display order
	Dropped     int     // rows without a name
	GeneratedAt time.Time
}

// Page is a rendered output file relative to the output directory.
type Page struct {
	Name string
	Body []byte
}

// IndexPage is the filename of the list page.
const IndexPage = "index.html"

// Site is everything a loader needs: the directory and its rendered pages.
type Site struct {
	Directory Directory
	Pages     []Page
}
