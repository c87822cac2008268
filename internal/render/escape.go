package render

import (
	"html/template"
	"net/url"
	"strings"
	"unicode"
)

const mapSearchURL = "https://www.google.com/maps/search/?api=1&query="

// Escape HTML-escapes & < > " ' for use in text and quoted attributes.
func Escape(s string) string {
	return template.HTMLEscapeString(s)
}

// Haystack is the client-side search key of a store: the lower-cased
// concatenation of its text fields with all whitespace removed.
func Haystack(parts ...string) string {
	s := strings.ToLower(strings.Join(parts, ""))
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
}

// ImageURL returns raw when it is an absolute http or https URL and ""
// otherwise, so pages fall back to the placeholder instead of a filtered src.
func ImageURL(raw string) string {
	raw = strings.TrimSpace(raw)
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return ""
	}
	switch strings.ToLower(u.Scheme) {
	case "http", "https":
		return raw
	}
	return ""
}

// MapURL builds a Google Maps search link for a free-text location.
func MapURL(location string) string {
	return mapSearchURL + encodeURIComponent(location)
}

// encodeURIComponent escapes like the browser function of the same name:
// spaces become %20 and the marks -_.!~*'() stay literal.
func encodeURIComponent(s string) string {
	escaped := url.QueryEscape(s)
	return componentUnescaper.Replace(escaped)
}

var componentUnescaper = strings.NewReplacer(
	"+", "%20",
	"%21", "!",
	"%27", "'",
	"%28", "(",
	"%29", ")",
	"%2A", "*",
)
