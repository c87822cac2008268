package domain

import (
	"strings"
)

// Rule is one step of a field resolution chain. Extract reports the value it
// found and whether the chain should stop there.
type Rule struct {
	Name    string
	Extract func(Row) (string, bool)
}

// Extractor evaluates its rules in order and returns the first hit.
type Extractor []Rule

// Value returns the first value produced by the chain, or "".
func (e Extractor) Value(row Row) string {
	v, _ := e.Resolve(row)
	return v
}

// Resolve returns the first value produced by the chain together with the
// name of the rule that produced it. Both are empty when no rule matched.
func (e Extractor) Resolve(row Row) (value, rule string) {
	for _, r := range e {
		if v, ok := r.Extract(row); ok {
			return v, r.Name
		}
	}
	return "", ""
}

// ExactAlias matches aliases against the header byte for byte and yields the
// first trimmed, non-blank value.
func ExactAlias(aliases []string) Rule {
	return Rule{
		Name: "alias",
		Extract: func(row Row) (string, bool) {
			for _, alias := range aliases {
				if v, ok := row.Get(alias); ok {
					if v = strings.TrimSpace(v); v != "" {
						return v, true
					}
				}
			}
			return "", false
		},
	}
}

// FoldedAlias retries aliases case-insensitively. For each alias only the
// first header (in column order) with the same lower-cased form is
// consulted; a blank value moves on to the next alias.
func FoldedAlias(aliases []string) Rule {
	return Rule{
		Name: "alias_folded",
		Extract: func(row Row) (string, bool) {
			for _, alias := range aliases {
				want := strings.ToLower(alias)
				for _, key := range row.keys {
					if strings.ToLower(key) != want {
						continue
					}
					if v := strings.TrimSpace(row.values[key]); v != "" {
						return v, true
					}
					break
				}
			}
			return "", false
		},
	}
}

// Pick resolves a field from its aliases: exact match first, then
// case-insensitive.
func Pick(row Row, aliases []string) string {
	return aliasChain(aliases).Value(row)
}

func aliasChain(aliases []string) Extractor {
	return Extractor{ExactAlias(aliases), FoldedAlias(aliases)}
}

// AddressPrefix yields the first prefecture that the resolved address starts
// with.
func AddressPrefix(address Extractor, prefectures []string) Rule {
	return Rule{
		Name: "address_prefix",
		Extract: func(row Row) (string, bool) {
			addr := address.Value(row)
			if addr == "" {
				return "", false
			}
			for _, p := range prefectures {
				if strings.HasPrefix(addr, p) {
					return p, true
				}
			}
			return "", false
		},
	}
}

// Constant always yields value. It terminates a chain with a sentinel.
func Constant(name, value string) Rule {
	return Rule{
		Name:    name,
		Extract: func(Row) (string, bool) { return value, true },
	}
}

// Resolver turns rows into stores using one set of Rules.
type Resolver struct {
	rules Rules

	name       Extractor
	branch     Extractor
	address    Extractor
	prefecture Extractor
	tel        Extractor
	product    Extractor
	image      Extractor
}

// NewResolver compiles the extractor chains for rules.
func NewResolver(rules Rules) *Resolver {
	a := rules.Aliases
	address := aliasChain(a.Address)
	return &Resolver{
		rules:   rules,
		name:    aliasChain(a.Name),
		branch:  aliasChain(a.Branch),
		address: address,
		prefecture: Extractor{
			ExactAlias(a.Prefecture),
			FoldedAlias(a.Prefecture),
			AddressPrefix(address, rules.Prefectures),
			Constant("unclassified", rules.Unclassified),
		},
		tel:     aliasChain(a.Tel),
		product: aliasChain(a.Product),
		image:   aliasChain(a.Image),
	}
}

// Rules returns the configuration the resolver was built from.
func (r *Resolver) Rules() Rules {
	return r.rules
}

// Resolve builds a Store from row. It reports false when the name resolves
// to "", in which case the row must be dropped.
func (r *Resolver) Resolve(row Row) (Store, bool) {
	name := r.name.Value(row)
	if name == "" {
		return Store{}, false
	}
	branch := r.branch.Value(row)

	return Store{
		Name:       name,
		Branch:     branch,
		Address:    r.address.Value(row),
		Prefecture: r.prefecture.Value(row),
		Tel:        r.tel.Value(row),
		Product:    r.product.Value(row),
		Image:      r.image.Value(row),
		Slug:       Slug(name, branch, r.rules.SlugFallback),
	}, true
}

// PrefectureSource names the rule that decided the row's prefecture:
// "alias", "alias_folded", "address_prefix" or "unclassified".
func (r *Resolver) PrefectureSource(row Row) string {
	_, rule := r.prefecture.Resolve(row)
	return rule
}

// NewStore resolves a single row with rules.
func NewStore(row Row, rules Rules) (Store, bool) {
	return NewResolver(rules).Resolve(row)
}
