package render

import (
	"embed"
	"fmt"
	"os"
)

//go:embed templates/list.html templates/detail.html
var defaultFS embed.FS

// Templates holds the raw text of the list and detail page templates.
type Templates struct {
	List   string
	Detail string
}

// DefaultTemplates returns the templates compiled into the binary.
func DefaultTemplates() Templates {
	list, err := defaultFS.ReadFile("templates/list.html")
	if err != nil {
		panic(err) // embedded at build time
	}
	detail, err := defaultFS.ReadFile("templates/detail.html")
	if err != nil {
		panic(err)
	}
	return Templates{List: string(list), Detail: string(detail)}
}

// LoadTemplates reads the list and detail templates from disk. An empty path
// selects the embedded default for that page.
func LoadTemplates(listPath, detailPath string) (Templates, error) {
	t := DefaultTemplates()
	if listPath != "" {
		b, err := os.ReadFile(listPath)
		if err != nil {
			return Templates{}, fmt.Errorf("read list template: %w", err)
		}
		t.List = string(b)
	}
	if detailPath != "" {
		b, err := os.ReadFile(detailPath)
		if err != nil {
			return Templates{}, fmt.Errorf("read detail template: %w", err)
		}
		t.Detail = string(b)
	}
	return t, nil
}
