package source

import "strings"

// StripTags removes markup tags by discarding everything between an
// unmatched '<' and the next '>'. Not HTML-spec-complete (no nesting,
// no entities) but sufficient for museum metadata titles.
func StripTags(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	inTag := false
	for _, r := range s {
		switch {
		case r == '<':
			inTag = true
		case r == '>':
			inTag = false
		case !inTag:
			b.WriteRune(r)
		}
	}
	return b.String()
}

// NonEmpty returns s, or fallback when s is empty or whitespace-only.
func NonEmpty(s, fallback string) string {
	if strings.TrimSpace(s) == "" {
		return fallback
	}
	return s
}

// PickTerm selects a search term uniformly at random from a source's
// fixed vocabulary.
func PickTerm(rng Rand, terms []string) string {
	return terms[rng.Intn(len(terms))]
}
