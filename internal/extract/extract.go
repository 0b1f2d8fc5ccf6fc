// Package extract provides best-effort pattern extraction of contact fields
// from unstructured job description text. Extractors return the empty string
// when nothing matches; a miss is an expected outcome, not an error.
package extract

import (
	"regexp"
	"strings"
)

var (
	emailRe   = regexp.MustCompile(`[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}`)
	companyRe = regexp.MustCompile(`(?im)^[ \t]*(?:Company|Employer):[ \t]*([A-Za-z0-9][A-Za-z0-9 .,&'()/-]*)`)
	titleRe   = regexp.MustCompile(`(?im)^[ \t]*(?:Job Title|Role):[ \t]*([A-Za-z0-9][A-Za-z0-9 .,&'()/-]*)`)
)

// maxHeuristicWords caps the first-line fallback: longer lines are prose, not
// a company name or role.
const maxHeuristicWords = 10

// Email returns the first email address in the text in document order, or ""
// if none is present.
func Email(text string) string {
	return emailRe.FindString(text)
}

// CompanyName extracts the company name from a job description. It first
// looks for a labeled "Company:" or "Employer:" line, then falls back to the
// first line of the text when that line is short enough to be a heading.
// Within the fallback, anything after a literal " for " is discarded
// ("Acme Corp for Data Analyst" -> "Acme Corp").
func CompanyName(text string) string {
	if m := companyRe.FindStringSubmatch(text); m != nil {
		return strings.TrimSpace(m[1])
	}
	return firstLineHeuristic(text, " for ")
}

// JobTitle extracts the job title from a job description. It mirrors
// CompanyName: a labeled "Job Title:" or "Role:" line first, then the
// first-line heuristic splitting on " at " ("Data Analyst at Acme" ->
// "Data Analyst").
func JobTitle(text string) string {
	if m := titleRe.FindStringSubmatch(text); m != nil {
		return strings.TrimSpace(m[1])
	}
	return firstLineHeuristic(text, " at ")
}

// firstLineHeuristic returns the first line of the text when it looks like a
// heading: fewer than maxHeuristicWords words and not itself the phrase
// "job description". When the line contains the delimiter, only the portion
// before it is kept.
func firstLineHeuristic(text, delimiter string) string {
	line, _, _ := strings.Cut(strings.TrimSpace(text), "\n")
	line = strings.TrimSpace(line)
	if line == "" {
		return ""
	}
	if len(strings.Fields(line)) >= maxHeuristicWords {
		return ""
	}
	if strings.Contains(strings.ToLower(line), "job description") {
		return ""
	}
	if before, _, found := strings.Cut(line, delimiter); found {
		return strings.TrimSpace(before)
	}
	return line
}
