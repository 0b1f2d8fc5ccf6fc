// Package types provides type definitions for structured data exchanged between
// the extension frontend and the follow-up email backend.
package types

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// JobContext is the immutable input for a drafting session: the applicant's
// resume and the job description text, supplied once by the caller.
type JobContext struct {
	Resume         string `json:"resume"`
	JobDescription string `json:"job_description"`
}

// EmailDraft is a candidate email (subject + body) not yet sent. Revisions
// replace a draft wholesale, never patch individual fields.
type EmailDraft struct {
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

// ResolutionState identifies which variant of a RecipientResolution is populated.
type ResolutionState string

const (
	// ResolutionFound means a recipient email was extracted directly.
	ResolutionFound ResolutionState = "found"
	// ResolutionSearchNeeded means a web search is required to find a recipient.
	ResolutionSearchNeeded ResolutionState = "search_needed"
	// ResolutionNotResolvable means neither an email nor enough context for a
	// search could be extracted.
	ResolutionNotResolvable ResolutionState = "not_resolvable"
)

// RecipientResolution is the outcome of recipient discovery over a job
// description. Exactly one variant is meaningful at a time: Email for
// ResolutionFound, Company/JobTitle (either may be empty) for
// ResolutionSearchNeeded.
type RecipientResolution struct {
	State    ResolutionState `json:"state"`
	Email    string          `json:"email,omitempty"`
	Company  string          `json:"company,omitempty"`
	JobTitle string          `json:"job_title,omitempty"`
}

// LinkRef is a single search hit: a URL plus its page title.
type LinkRef struct {
	URL   string `json:"url"`
	Title string `json:"title"`
}

// SearchResult is the outcome of a recruiter web search. When FoundEmail is
// set the URL listing is conventionally empty, since a direct hit
// short-circuits further listing.
type SearchResult struct {
	FoundEmail   string    `json:"found_email,omitempty"`
	RelevantURLs []LinkRef `json:"relevant_urls"`
}

// SendEnvelope is a fully resolved, send-ready email: recipient, content and
// the caller-supplied OAuth credential. One envelope corresponds to exactly
// one send attempt.
type SendEnvelope struct {
	To          string `json:"to" validate:"required,email"`
	Subject     string `json:"subject" validate:"required"`
	Body        string `json:"body" validate:"required"`
	AccessToken string `json:"access_token" validate:"required"`
}

// Validate checks the envelope with the struct validator. The mailer performs
// its own field-presence check as well so that it never touches the network
// with an incomplete envelope.
func (e *SendEnvelope) Validate() error {
	validate := validator.New()
	return validate.Struct(e)
}

// MissingFields returns the names of required envelope fields that are empty,
// in a stable order.
func (e *SendEnvelope) MissingFields() []string {
	var missing []string
	if strings.TrimSpace(e.To) == "" {
		missing = append(missing, "to")
	}
	if strings.TrimSpace(e.Subject) == "" {
		missing = append(missing, "subject")
	}
	if strings.TrimSpace(e.Body) == "" {
		missing = append(missing, "body")
	}
	if strings.TrimSpace(e.AccessToken) == "" {
		missing = append(missing, "access_token")
	}
	return missing
}

// Status is the uniform outcome status used by the orchestrators so that
// callers branch on a value instead of handling errors.
type Status string

const (
	// StatusSuccess marks a completed operation with usable data.
	StatusSuccess Status = "Success"
	// StatusFail marks a failed operation; the accompanying message explains why.
	StatusFail Status = "Fail"
)

// FieldError formats a validator error into a caller-friendly message naming
// the offending fields.
func FieldError(err error) string {
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return err.Error()
	}
	fields := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, strings.ToLower(fe.Field()))
	}
	return fmt.Sprintf("missing or invalid fields: %s", strings.Join(fields, ", "))
}
