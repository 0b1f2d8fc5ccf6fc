package draft

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseSubjectBody(t *testing.T) {
	tests := []struct {
		name        string
		raw         string
		wantSubject string
		wantBody    string
	}{
		{
			name:        "canonical two-part response",
			raw:         "Subject: Hi\n\nBody:\nLine1\nLine2",
			wantSubject: "Hi",
			wantBody:    "Line1\nLine2",
		},
		{
			name:        "no markers at all",
			raw:         "no markers",
			wantSubject: "",
			wantBody:    "",
		},
		{
			name:        "body without subject",
			raw:         "Body:\nJust the body text.",
			wantSubject: "",
			wantBody:    "Just the body text.",
		},
		{
			name:        "subject without body",
			raw:         "Subject: Standalone subject",
			wantSubject: "Standalone subject",
			wantBody:    "",
		},
		{
			name:        "body content on the marker line",
			raw:         "Subject: Follow-up\nBody: Short note.",
			wantSubject: "Follow-up",
			wantBody:    "Short note.",
		},
		{
			name:        "leading whitespace before markers",
			raw:         "  Subject:  Spaced out \n\n  Body:\n  indented body  ",
			wantSubject: "Spaced out",
			wantBody:    "indented body",
		},
		{
			name:        "empty input",
			raw:         "",
			wantSubject: "",
			wantBody:    "",
		},
		{
			name:        "multi-paragraph body preserved",
			raw:         "Subject: Checking in\n\nBody:\nDear Jane,\n\nFirst paragraph.\n\nSecond paragraph.\n\nBest,\nTing",
			wantSubject: "Checking in",
			wantBody:    "Dear Jane,\n\nFirst paragraph.\n\nSecond paragraph.\n\nBest,\nTing",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseSubjectBody(tt.raw)
			assert.Equal(t, tt.wantSubject, got.Subject)
			assert.Equal(t, tt.wantBody, got.Body)
		})
	}
}

func TestParseSubjectBodyRoundTrip(t *testing.T) {
	// Re-parsing the reconstituted form must be the identity for content
	// that does not itself contain the marker strings.
	cases := []struct{ subject, body string }{
		{"Hi", "Line1\nLine2"},
		{"Follow-up on Data Analyst application", "Dear Jane,\n\nThank you for your time.\n\nBest,\nTing"},
		{"", "only a body"},
	}

	for _, c := range cases {
		raw := fmt.Sprintf("Subject: %s\n\nBody:\n%s", c.subject, c.body)
		got := ParseSubjectBody(raw)
		assert.Equal(t, c.subject, got.Subject)
		assert.Equal(t, c.body, got.Body)

		again := ParseSubjectBody(fmt.Sprintf("Subject: %s\n\nBody:\n%s", got.Subject, got.Body))
		assert.Equal(t, got, again)
	}
}
