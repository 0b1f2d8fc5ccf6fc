// Package mailer delivers composed emails through the Gmail API using an
// access token supplied by the caller. No credentials are stored server-side.
package mailer

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"

	"golang.org/x/oauth2"
	"google.golang.org/api/gmail/v1"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"

	"github.com/tinghuan/followup-agent/internal/types"
)

// ValidationError reports an envelope rejected before any network call.
type ValidationError struct {
	Missing []string
	Message string
}

func (e *ValidationError) Error() string {
	if len(e.Missing) > 0 {
		return fmt.Sprintf("missing required fields: %s", strings.Join(e.Missing, ", "))
	}
	return e.Message
}

// ProviderError reports a rejection from the Gmail API itself, carrying the
// upstream HTTP status so callers can distinguish expired tokens (401) from
// other failures.
type ProviderError struct {
	Code    int
	Message string
	Cause   error
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("gmail rejected the send (status %d): %s", e.Code, e.Message)
}

func (e *ProviderError) Unwrap() error {
	return e.Cause
}

// TransportError reports a failure reaching Gmail at all.
type TransportError struct {
	Cause error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("failed to reach gmail: %v", e.Cause)
}

func (e *TransportError) Unwrap() error {
	return e.Cause
}

// Sender sends mail as the authenticated user ("me" in Gmail API terms).
type Sender struct {
	// send performs the actual API call; swappable in tests.
	send func(ctx context.Context, accessToken string, msg *gmail.Message) (*gmail.Message, error)
}

// NewSender creates a Sender backed by the real Gmail API.
func NewSender() *Sender {
	return &Sender{send: sendViaGmail}
}

// Send validates the envelope, builds an RFC 2822 message, and submits it.
// It returns the Gmail message ID on success. Validation failures surface as
// *ValidationError without touching the network.
func (s *Sender) Send(ctx context.Context, env types.SendEnvelope) (string, error) {
	if missing := env.MissingFields(); len(missing) > 0 {
		return "", &ValidationError{Missing: missing}
	}
	if err := env.Validate(); err != nil {
		return "", &ValidationError{Message: types.FieldError(err)}
	}

	raw := BuildRawMessage(env.To, env.Subject, env.Body)
	msg := &gmail.Message{
		// Gmail API requires a base64url-encoded raw message.
		Raw: base64.URLEncoding.EncodeToString([]byte(raw)),
	}

	sent, err := s.send(ctx, env.AccessToken, msg)
	if err != nil {
		return "", classify(err)
	}
	return sent.Id, nil
}

// BuildRawMessage assembles a minimal plain-text RFC 2822 message. Headers
// are CRLF-terminated and separated from the body by a blank line.
func BuildRawMessage(to, subject, body string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "To: %s\r\n", to)
	fmt.Fprintf(&b, "Subject: %s\r\n", subject)
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/plain; charset=\"utf-8\"\r\n")
	b.WriteString("\r\n")
	b.WriteString(body)
	return b.String()
}

// sendViaGmail builds a Gmail service around the caller's token and submits
// the message as the token's owner.
func sendViaGmail(ctx context.Context, accessToken string, msg *gmail.Message) (*gmail.Message, error) {
	ts := oauth2.StaticTokenSource(&oauth2.Token{
		AccessToken: accessToken,
		TokenType:   "Bearer",
	})
	svc, err := gmail.NewService(ctx, option.WithTokenSource(ts))
	if err != nil {
		return nil, err
	}
	return svc.Users.Messages.Send("me", msg).Context(ctx).Do()
}

// classify maps an API error to the mailer's error types.
func classify(err error) error {
	if apiErr, ok := err.(*googleapi.Error); ok {
		return &ProviderError{Code: apiErr.Code, Message: apiErr.Message, Cause: err}
	}
	return &TransportError{Cause: err}
}
