// Command validate checks a store sheet without writing any pages. It parses
// and resolves every row, then reports dropped rows, stores that could not be
// placed in a prefecture, slug collisions, and stores missing an image or
// address. Only slug collisions fail the run, since colliding stores would
// overwrite each other's detail page.
//
// Usage:
//
//	go run ./cmd/validate -csv stores.csv
//	go run ./cmd/validate -url "https://docs.google.com/.../export?format=csv"
//	go run ./cmd/validate -csv excel-export.csv -encoding shift_jis
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"slices"
	"time"

	"github.com/couchcryptid/store-directory/internal/adapter/sheet"
	"github.com/couchcryptid/store-directory/internal/config"
	"github.com/couchcryptid/store-directory/internal/domain"
	"github.com/couchcryptid/store-directory/internal/pipeline"
)

// phase tracks errors and warnings for a validation phase. Only errors fail.
type phase struct {
	name     string
	errors   []string
	warnings []string
}

func (p *phase) errorf(format string, args ...any) {
	p.errors = append(p.errors, fmt.Sprintf(format, args...))
}

func (p *phase) warnf(format string, args ...any) {
	p.warnings = append(p.warnings, fmt.Sprintf(format, args...))
}

func (p *phase) passed() bool { return len(p.errors) == 0 }

func main() {
	csvPath := flag.String("csv", "", "path to a local CSV export of the store sheet")
	sheetURL := flag.String("url", "", "CSV export URL of the store sheet")
	encoding := flag.String("encoding", config.EncodingUTF8, "source encoding: utf-8 or shift_jis")
	timeout := flag.Duration("timeout", 30*time.Second, "fetch timeout for -url")
	flag.Parse()

	if (*csvPath == "") == (*sheetURL == "") {
		fmt.Fprintln(os.Stderr, "exactly one of -csv or -url is required")
		flag.Usage()
		os.Exit(2)
	}

	var src pipeline.Extractor
	if *csvPath != "" {
		src = sheet.NewFile(*csvPath, *encoding)
	} else {
		src = sheet.NewClient(*sheetURL, *encoding, *timeout, slog.New(slog.NewTextHandler(os.Stderr, nil)))
	}

	os.Exit(run(context.Background(), os.Stdout, src, domain.DefaultRules()))
}

func run(ctx context.Context, w io.Writer, src pipeline.Extractor, rules domain.Rules) int {
	fmt.Fprintln(w, "=== Store Sheet Validation ===")
	fmt.Fprintln(w)

	data, err := src.Extract(ctx)
	if err != nil {
		fmt.Fprintf(w, "FATAL: extract sheet: %v\n", err)
		return 1
	}
	rows, err := domain.ParseCSV(data)
	if err != nil {
		fmt.Fprintf(w, "FATAL: parse sheet: %v\n", err)
		return 1
	}

	resolver := domain.NewResolver(rules)
	var stores []domain.Store
	for _, row := range rows {
		if s, ok := resolver.Resolve(row); ok {
			stores = append(stores, s)
		}
	}

	// ── Run validation phases ──
	phases := []*phase{
		validateNames(rows, resolver),
		validatePrefectures(rows, resolver),
		validateSlugs(stores),
		validateCompleteness(stores),
	}

	// ── Report results ──
	allPassed := true
	for _, p := range phases {
		status := "\033[32mPASS\033[0m"
		if !p.passed() {
			status = fmt.Sprintf("\033[31mFAIL (%d errors)\033[0m", len(p.errors))
			allPassed = false
		} else if len(p.warnings) > 0 {
			status = fmt.Sprintf("\033[33mPASS (%d warnings)\033[0m", len(p.warnings))
		}
		fmt.Fprintf(w, "  %-32s %s\n", p.name, status)
	}

	fmt.Fprintln(w)
	fmt.Fprintf(w, "Rows: %d parsed, %d stores, %d sections\n",
		len(rows), len(stores), len(domain.GroupByPrefecture(stores, rules)))

	// Print details.
	for _, p := range phases {
		if len(p.errors) == 0 && len(p.warnings) == 0 {
			continue
		}
		fmt.Fprintf(w, "\n--- %s ---\n", p.name)
		for i, e := range p.errors {
			fmt.Fprintf(w, "  [%d] ERROR %s\n", i+1, e)
		}
		for i, e := range p.warnings {
			fmt.Fprintf(w, "  [%d] %s\n", i+1, e)
		}
	}

	if allPassed {
		fmt.Fprintln(w, "\nAll validations passed.")
		return 0
	}
	fmt.Fprintln(w, "\nValidation FAILED.")
	return 1
}

// ── Phase 1: names ──

func validateNames(rows []domain.Row, r *domain.Resolver) *phase {
	p := &phase{name: "Store names"}
	for _, row := range rows {
		if _, ok := r.Resolve(row); !ok {
			p.warnf("line %d: no name column has a value, row dropped", row.Line())
		}
	}
	return p
}

// ── Phase 2: prefectures ──

func validatePrefectures(rows []domain.Row, r *domain.Resolver) *phase {
	p := &phase{name: "Prefecture resolution"}
	for _, row := range rows {
		s, ok := r.Resolve(row)
		if !ok {
			continue
		}
		switch src := r.PrefectureSource(row); src {
		case "unclassified":
			p.warnf("line %d: %s has no prefecture, listed under %s", row.Line(), s.Name, s.Prefecture)
		case "address_prefix":
			p.warnf("line %d: %s prefecture %s taken from address", row.Line(), s.Name, s.Prefecture)
		}
	}
	return p
}

// ── Phase 3: slugs ──

func validateSlugs(stores []domain.Store) *phase {
	p := &phase{name: "Slug uniqueness"}
	collisions := domain.SlugCollisions(stores)
	slugs := make([]string, 0, len(collisions))
	for slug := range collisions {
		slugs = append(slugs, slug)
	}
	slices.Sort(slugs)
	for _, slug := range slugs {
		p.errorf("%s shared by %q", slug, collisions[slug])
	}
	return p
}

// ── Phase 4: completeness ──

func validateCompleteness(stores []domain.Store) *phase {
	p := &phase{name: "Optional fields"}
	for _, s := range stores {
		if s.Address == "" {
			p.warnf("%s: no address, map link uses %s", s.PageName(), s.Location())
		}
		if s.Image == "" {
			p.warnf("%s: no image, placeholder shown", s.PageName())
		}
	}
	return p
}
