package render

import (
	"html/template"
	"strings"

	"github.com/couchcryptid/store-directory/internal/domain"
)

var fragments = template.Must(template.New("fragments").Parse(`
{{- define "section"}}
<section data-section>
  <h2 class="section">{{.Prefecture}}</h2>
  <ul class="list">
    {{range .Items}}{{template "item" .}}{{end}}
  </ul>
  <div class="divider"></div>
</section>
{{- end}}

{{- define "item"}}
<li class="item" data-hay="{{.Hay}}">
  <a href="./{{.Page}}" style="display:contents">
    {{if .Image}}<img class="thumb" src="{{.Image}}" alt="{{.Name}}">{{else}}<div class="thumb" aria-hidden="true"></div>{{end}}
    <div class="meta">
      <div class="addr">{{.Location}}</div>
      <div class="name">{{.Name}}</div>
      {{if .Branch}}<div class="branch">{{.Branch}}</div>{{end}}
    </div>
    <div class="chev"><svg viewBox="0 0 24 24" fill="none" stroke="currentColor" stroke-width="2"><path d="M9 6l6 6-6 6"/></svg></div>
  </a>
</li>
{{- end}}

{{- define "hero"}}
{{- if .Image}}<img class="hero" src="{{.Image}}" alt="{{.Name}}">{{else}}<div class="hero" style="background:#f2f2f2"></div>{{end}}
{{- end}}
`))

type sectionView struct {
	Prefecture string
	Items      []itemView
}

type itemView struct {
	Hay      string
	Page     string
	Image    string
	Name     string
	Branch   string
	Location string
}

func newItemView(s domain.Store, prefecture string) itemView {
	return itemView{
		Hay:      Haystack(s.Name, s.Branch, s.Address, prefecture),
		Page:     s.PageName(),
		Image:    ImageURL(s.Image),
		Name:     s.Name,
		Branch:   s.Branch,
		Location: s.Location(),
	}
}

// renderGroups renders one section per non-empty group, joined by newlines.
func renderGroups(groups []domain.Group) (string, error) {
	var b strings.Builder
	first := true
	for _, g := range groups {
		if len(g.Stores) == 0 {
			continue
		}
		view := sectionView{Prefecture: g.Prefecture, Items: make([]itemView, 0, len(g.Stores))}
		for _, s := range g.Stores {
			view.Items = append(view.Items, newItemView(s, g.Prefecture))
		}
		if !first {
			b.WriteByte('\n')
		}
		first = false
		if err := fragments.ExecuteTemplate(&b, "section", view); err != nil {
			return "", err
		}
	}
	return b.String(), nil
}

type heroView struct {
	Image string
	Name  string
}

func renderHero(s domain.Store) (string, error) {
	var b strings.Builder
	view := heroView{Image: ImageURL(s.Image), Name: s.Name}
	if err := fragments.ExecuteTemplate(&b, "hero", view); err != nil {
		return "", err
	}
	return b.String(), nil
}
