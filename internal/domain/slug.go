package domain

import (
	"crypto/sha1" //nolint:gosec // content fingerprint, not a security boundary
	"encoding/hex"
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// nonAlnumRe matches runs that become a single hyphen in a slug.
var nonAlnumRe = regexp.MustCompile(`[^a-z0-9]+`)

// Slug derives the page identifier for a store from its name and branch.
// The result is "<ascii>-<hash>", or "<hash>" when the readable part and the
// fallback are both empty. See the package documentation for examples.
func Slug(name, branch, fallback string) string {
	base := name
	if branch != "" {
		base += "-" + branch
	}
	ascii := asciiize(base, fallback)
	hash := slugHash(name, branch)
	if ascii == "" {
		return hash
	}
	return ascii + "-" + hash
}

// asciiize folds s to lower-case ASCII letters, digits and single hyphens.
func asciiize(s, fallback string) string {
	// A transform chain keeps state, so build one per call.
	t := transform.Chain(norm.NFKC, runes.Remove(runes.Predicate(func(r rune) bool {
		return r > unicode.MaxASCII
	})))
	folded, _, err := transform.String(t, s)
	if err != nil {
		folded = ""
	}
	out := nonAlnumRe.ReplaceAllString(strings.ToLower(folded), "-")
	out = strings.Trim(out, "-")
	if out == "" {
		return fallback
	}
	return out
}

// slugHash is the first 8 hex characters of SHA-1 over "name|branch". SHA-1
// matches the slugs already published for existing stores.
func slugHash(name, branch string) string {
	sum := sha1.Sum([]byte(name + "|" + branch)) //nolint:gosec // see import
	return hex.EncodeToString(sum[:])[:8]
}

// SlugCollisions maps each slug shared by more than one store to the
// "name branch" labels of those stores, in input order.
func SlugCollisions(stores []Store) map[string][]string {
	bySlug := make(map[string][]string, len(stores))
	for _, s := range stores {
		label := strings.TrimSpace(s.Name + " " + s.Branch)
		bySlug[s.Slug] = append(bySlug[s.Slug], label)
	}
	for slug, labels := range bySlug {
		if len(labels) < 2 {
			delete(bySlug, slug)
		}
	}
	return bySlug
}
