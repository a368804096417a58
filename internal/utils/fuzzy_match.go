package utils

import (
	"strings"
	"unicode"
)

// Common Malaysian address abbreviations, expanded before comparing names
var nameAliases = map[string]string{
	"kl":   "kuala lumpur",
	"jln":  "jalan",
	"bkt":  "bukit",
	"tmn":  "taman",
	"sg":   "sungai",
	"kg":   "kampung",
	"kpg":  "kampung",
	"bdr":  "bandar",
	"sri":  "seri",
	"wp":   "wilayah persekutuan",
	"w.p.": "wilayah persekutuan",
}

// NormalizeName lowercases s, expands known abbreviations and collapses
// punctuation and whitespace so "Bkt.  Jalil" and "bukit jalil" compare equal
func NormalizeName(s string) string {
	fields := strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return unicode.IsSpace(r) || r == '-' || r == '_' || r == ','
	})

	out := make([]string, 0, len(fields))
	for _, f := range fields {
		if alias, ok := nameAliases[f]; ok {
			out = append(out, alias)
			continue
		}
		f = strings.TrimRight(f, ".")
		if alias, ok := nameAliases[f]; ok {
			out = append(out, alias)
			continue
		}
		if f != "" {
			out = append(out, f)
		}
	}
	return strings.Join(out, " ")
}

// FuzzyMatchName performs fuzzy matching of a user supplied name against
// one candidate. Returns true on an exact match after normalization.
func FuzzyMatchName(query, candidate string) bool {
	q := NormalizeName(query)
	if q == "" {
		return false
	}
	return q == NormalizeName(candidate)
}

// ResolveName finds the candidate a user supplied name refers to.
// Exact matches win; otherwise a single normalized match is accepted, then
// a single candidate containing the normalized query. Ambiguous or empty
// queries resolve to nothing.
func ResolveName(query string, candidates []string) (string, bool) {
	for _, c := range candidates {
		if c == query {
			return c, true
		}
	}

	var matches []string
	for _, c := range candidates {
		if FuzzyMatchName(query, c) {
			matches = append(matches, c)
		}
	}
	if len(matches) == 1 {
		return matches[0], true
	}
	if len(matches) > 1 {
		return "", false
	}

	q := NormalizeName(query)
	if q == "" {
		return "", false
	}
	for _, c := range candidates {
		if strings.Contains(NormalizeName(c), q) {
			matches = append(matches, c)
		}
	}
	if len(matches) == 1 {
		return matches[0], true
	}
	return "", false
}
