package draft

import (
	"regexp"
	"strings"

	"github.com/tinghuan/followup-agent/internal/types"
)

var (
	subjectRe = regexp.MustCompile(`(?m)^[ \t]*Subject:[ \t]*(.*)`)
	bodyRe    = regexp.MustCompile(`(?s)(?m)^[ \t]*Body:[ \t]*\n?(.*)`)
)

// ParseSubjectBody converts a semi-structured "Subject: ... / Body: ..."
// completion into an EmailDraft. The two markers are matched independently:
// a response with Body but no Subject yields an empty subject, and vice
// versa. Malformed input degrades to empty fields; the function never fails.
func ParseSubjectBody(raw string) types.EmailDraft {
	var d types.EmailDraft
	if m := subjectRe.FindStringSubmatch(raw); m != nil {
		d.Subject = strings.TrimSpace(m[1])
	}
	if m := bodyRe.FindStringSubmatch(raw); m != nil {
		d.Body = strings.TrimSpace(m[1])
	}
	return d
}
