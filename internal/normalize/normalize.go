// Package normalize canonicalizes the free-text identity fields of an
// organization record. Both entry points are pure functions over the
// configured tables and are idempotent.
package normalize

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// UnknownCountry is the sentinel for empty or missing country input.
const UnknownCountry = "Unknown"

var stripAccents = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Normalizer holds the configured legal-suffix and country tables.
type Normalizer struct {
	suffixes  map[string]struct{}
	countries map[string]string
	titler    cases.Caser
}

// New builds a Normalizer. Suffix tokens are matched case-insensitively on
// word boundaries; country aliases are matched against the lowercased,
// trimmed input.
func New(legalSuffixes []string, countries map[string]string) *Normalizer {
	suffixes := make(map[string]struct{}, len(legalSuffixes))
	for _, s := range legalSuffixes {
		suffixes[strings.ToLower(s)] = struct{}{}
	}
	return &Normalizer{
		suffixes:  suffixes,
		countries: countries,
		titler:    cases.Title(language.English),
	}
}

// Name canonicalizes an organization name: accents stripped, lowercased,
// whitespace collapsed, legal-entity suffix tokens removed anywhere in the
// string, punctuation other than hyphen and ampersand dropped, and the
// result title-cased for display. Applying it twice yields the same value
// as applying it once.
func (n *Normalizer) Name(raw string) string {
	s, _, _ := transform.String(stripAccents, strings.ToLower(strings.TrimSpace(raw)))

	// Replace disallowed punctuation with spaces so token boundaries
	// survive, keeping hyphen and ampersand.
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
		case r == '-' || r == '&':
			b.WriteRune(r)
		default:
			b.WriteRune(' ')
		}
	}

	tokens := strings.Fields(b.String())
	kept := tokens[:0]
	for _, tok := range tokens {
		if _, drop := n.suffixes[tok]; drop {
			continue
		}
		kept = append(kept, tok)
	}

	return n.titler.String(strings.Join(kept, " "))
}

// Country resolves raw country text against the canonical table. Lookup
// failure degrades to the trimmed, title-cased input; empty input maps to
// UnknownCountry. Never fails.
func (n *Normalizer) Country(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return UnknownCountry
	}
	if canonical, ok := n.countries[strings.ToLower(trimmed)]; ok {
		return canonical
	}
	return n.titler.String(strings.ToLower(trimmed))
}
