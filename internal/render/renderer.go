package render

import (
	"fmt"
	"strings"

	"github.com/couchcryptid/store-directory/internal/domain"
)

// Placeholders recognized in page templates.
const (
	TokenListGroups = "<!-- LIST_GROUPS_PLACEHOLDER -->"
	TokenJSONLD     = "<!-- JSONLD_PLACEHOLDER -->"
	TokenTitle      = "<!-- TITLE -->"
	TokenSubtitle   = "<!-- SUBTITLE -->"
	TokenHeroImage  = "<!-- HERO_IMAGE -->"
	TokenPref       = "<!-- PREF -->"
	TokenAddress    = "<!-- ADDRESS -->"
	TokenTel        = "<!-- TEL -->"
	TokenProduct    = "<!-- PRODUCT -->"
	TokenMapURL     = "<!-- MAP_URL -->"
)

// Renderer substitutes rendered fragments into the list and detail templates.
// It holds no per-run state and may be reused.
type Renderer struct {
	templates Templates
}

// New creates a Renderer for the given templates.
func New(t Templates) *Renderer {
	return &Renderer{templates: t}
}

// Render produces the index page followed by one detail page per store, in
// input order.
func (r *Renderer) Render(dir domain.Directory) ([]domain.Page, error) {
	pages := make([]domain.Page, 0, len(dir.Stores)+1)

	index, err := r.Index(dir)
	if err != nil {
		return nil, err
	}
	pages = append(pages, index)

	for _, s := range dir.Stores {
		page, err := r.Detail(s)
		if err != nil {
			return nil, err
		}
		pages = append(pages, page)
	}
	return pages, nil
}

// Index renders the list page.
func (r *Renderer) Index(dir domain.Directory) (domain.Page, error) {
	sections, err := renderGroups(dir.Groups)
	if err != nil {
		return domain.Page{}, fmt.Errorf("render sections: %w", err)
	}
	jsonld, err := directoryJSONLD(dir.Stores)
	if err != nil {
		return domain.Page{}, err
	}

	body := strings.NewReplacer(
		TokenListGroups, sections,
		TokenJSONLD, jsonld,
	).Replace(r.templates.List)

	return domain.Page{Name: domain.IndexPage, Body: []byte(body)}, nil
}

// Detail renders the page of a single store.
func (r *Renderer) Detail(s domain.Store) (domain.Page, error) {
	hero, err := renderHero(s)
	if err != nil {
		return domain.Page{}, fmt.Errorf("render hero %s: %w", s.Slug, err)
	}
	jsonld, err := storeJSONLD(s)
	if err != nil {
		return domain.Page{}, fmt.Errorf("store %s: %w", s.Slug, err)
	}

	body := strings.NewReplacer(
		TokenTitle, Escape(s.Name),
		TokenHeroImage, hero,
		TokenSubtitle, Escape(s.Branch),
		TokenPref, Escape(s.Prefecture),
		TokenAddress, Escape(s.Address),
		TokenTel, Escape(s.Tel),
		TokenProduct, Escape(s.Product),
		TokenMapURL, Escape(MapURL(s.Location())),
		TokenJSONLD, jsonld,
	).Replace(r.templates.Detail)

	return domain.Page{Name: s.PageName(), Body: []byte(body)}, nil
}
