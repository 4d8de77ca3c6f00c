package corpus

import (
	"regexp"
	"strings"
)

// titleQualifier is the trailing phrase LinkedIn appends to verified
// postings; it carries no signal for matching.
const titleQualifier = " with verification"

var parenthetical = regexp.MustCompile(`\s?\(.*?\)`)

// Normalize prepares a raw batch for ranking: duplicates on the
// (title, company, description) key are dropped keeping first occurrence
// order, then the verification qualifier is stripped from titles. Nil key
// fields compare as empty strings so the key stays total.
func Normalize(records []Record) []Record {
	type key struct {
		title, company, description string
	}

	seen := make(map[key]bool, len(records))
	out := make([]Record, 0, len(records))
	for _, r := range records {
		k := key{r.Title(), r.Company(), r.Description()}
		if seen[k] {
			continue
		}
		seen[k] = true

		if r.JobTitle != nil && strings.HasSuffix(*r.JobTitle, titleQualifier) {
			title := strings.TrimSuffix(*r.JobTitle, titleQualifier)
			r.JobTitle = &title
		}
		out = append(out, r)
	}
	return out
}

// StripParenthetical removes parenthesized qualifiers from a location
// string: "Paris (Remote)" becomes "Paris". Strings without parentheses
// are returned unchanged.
func StripParenthetical(s string) string {
	return parenthetical.ReplaceAllString(s, "")
}
