// Package draft orchestrates follow-up email generation and revision. It
// resolves a recipient from the job description, composes prompts, invokes
// the LLM and parses the two-part Subject/Body completion. All entry points
// return outcome values; errors from the LLM are converted to Fail outcomes
// and never propagate to the HTTP layer.
package draft

import (
	"context"
	"log"
	"strings"
	"time"

	"github.com/tinghuan/followup-agent/internal/extract"
	"github.com/tinghuan/followup-agent/internal/llm"
	"github.com/tinghuan/followup-agent/internal/prompts"
	"github.com/tinghuan/followup-agent/internal/types"
)

// DefaultTimeout bounds a single LLM call. Completions normally finish well
// under this; the limit exists so a stuck upstream cannot hold a request
// handler forever.
const DefaultTimeout = 60 * time.Second

// GenerateOutcome is the result of a Generate call. Exactly one of three
// shapes is populated: a successful draft with its recipient, a needs-search
// signal carrying the extracted company/title, or a failure message.
type GenerateOutcome struct {
	Status      types.Status
	Draft       types.EmailDraft
	Recipient   string
	NeedsSearch bool
	Resolution  types.RecipientResolution
	Message     string
}

// ReviseOutcome is the result of a Revise call: a complete replacement draft
// on success, or a failure message. Partial-field updates do not exist.
type ReviseOutcome struct {
	Status  types.Status
	Draft   types.EmailDraft
	Message string
}

// Generator drafts and revises follow-up emails through an injected LLM
// client. It holds no per-request state; concurrent calls are independent.
type Generator struct {
	client  llm.Client
	timeout time.Duration
}

// NewGenerator creates a Generator around an LLM client.
func NewGenerator(client llm.Client) *Generator {
	return &Generator{client: client, timeout: DefaultTimeout}
}

// Generate resolves a recipient and drafts a follow-up email.
//
// The job description is checked for an embedded email address first; a hit
// is treated as the definitive recipient and no search is suggested. The
// common case (a posting that lists a contact) therefore resolves with a
// single LLM call and no extra network round-trips. Without a hit the
// company and title extractors run and the caller is told to trigger the
// recruiter search explicitly.
func (g *Generator) Generate(ctx context.Context, job types.JobContext) GenerateOutcome {
	recipient := extract.Email(job.JobDescription)
	if recipient == "" {
		resolution := types.RecipientResolution{
			State:    types.ResolutionSearchNeeded,
			Company:  extract.CompanyName(job.JobDescription),
			JobTitle: extract.JobTitle(job.JobDescription),
		}
		if resolution.Company == "" && resolution.JobTitle == "" {
			resolution = types.RecipientResolution{State: types.ResolutionNotResolvable}
		}
		return GenerateOutcome{
			Status:      types.StatusSuccess,
			NeedsSearch: true,
			Resolution:  resolution,
			Message:     "no recipient email found in the job description; a web search is required",
		}
	}

	user := buildGeneratePrompt(job)
	parsed, err := g.complete(ctx, user, llm.TierStandard)
	if err != nil {
		return GenerateOutcome{Status: types.StatusFail, Message: err.Error()}
	}

	return GenerateOutcome{
		Status:    types.StatusSuccess,
		Draft:     parsed,
		Recipient: recipient,
	}
}

// Revise applies free-text feedback to an existing draft and returns a
// complete new draft. Each call is stateless: multi-round revision is a
// caller-driven loop that re-supplies the current subject and body.
func (g *Generator) Revise(ctx context.Context, job types.JobContext, current types.EmailDraft, feedback string) ReviseOutcome {
	user := buildRevisePrompt(job, current, feedback)
	parsed, err := g.complete(ctx, user, llm.TierLite)
	if err != nil {
		return ReviseOutcome{Status: types.StatusFail, Message: err.Error()}
	}

	return ReviseOutcome{Status: types.StatusSuccess, Draft: parsed}
}

// complete runs one bounded LLM call and parses the two-part response. An
// empty body is reported as an error: a draft without content is not usable
// and callers must see an explicit failure rather than an empty success.
func (g *Generator) complete(ctx context.Context, user string, tier llm.ModelTier) (types.EmailDraft, error) {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	system := prompts.MustGet("drafting.json", "system")
	raw, err := g.client.Complete(ctx, system, user, tier)
	if err != nil {
		return types.EmailDraft{}, err
	}

	parsed := ParseSubjectBody(raw)
	if strings.TrimSpace(parsed.Body) == "" {
		log.Printf("[draft] model response had no usable body (%d chars raw)", len(raw))
		return types.EmailDraft{}, errEmptyCompletion
	}
	return parsed, nil
}

// buildGeneratePrompt interpolates the resume and job description verbatim
// into the generation template.
func buildGeneratePrompt(job types.JobContext) string {
	template := prompts.MustGet("drafting.json", "generate-followup")
	return prompts.Format(template, map[string]string{
		"Resume":         job.Resume,
		"JobDescription": job.JobDescription,
	})
}

// buildRevisePrompt interpolates the full drafting context, the current
// draft and the user's feedback verbatim into the revision template.
func buildRevisePrompt(job types.JobContext, current types.EmailDraft, feedback string) string {
	template := prompts.MustGet("drafting.json", "revise-followup")
	return prompts.Format(template, map[string]string{
		"Resume":         job.Resume,
		"JobDescription": job.JobDescription,
		"Subject":        current.Subject,
		"Body":           current.Body,
		"Feedback":       feedback,
	})
}
