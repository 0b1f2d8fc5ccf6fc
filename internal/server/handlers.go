package server

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/tinghuan/followup-agent/internal/db"
	"github.com/tinghuan/followup-agent/internal/extract"
	"github.com/tinghuan/followup-agent/internal/mailer"
	"github.com/tinghuan/followup-agent/internal/types"
)

// GenerateRequest represents the request body for /generate_and_modify_email.
// The extension always sends all five fields; the last three are empty on the
// first generation and populated on revision rounds.
type GenerateRequest struct {
	Resume         string `json:"resume"`
	JobDescription string `json:"job_description"`
	CurrentSubject string `json:"current_subject,omitempty"`
	CurrentBody    string `json:"current_body,omitempty"`
	UserPrompt     string `json:"user_prompt,omitempty"`
}

// isRevision reports whether the request asks to revise an existing draft.
// All three revision fields must be present; anything less is a fresh
// generation.
func (r *GenerateRequest) isRevision() bool {
	return strings.TrimSpace(r.CurrentSubject) != "" &&
		strings.TrimSpace(r.CurrentBody) != "" &&
		strings.TrimSpace(r.UserPrompt) != ""
}

// DraftResponse represents the draft returned for /generate_and_modify_email.
type DraftResponse struct {
	Subject   string `json:"subject"`
	Body      string `json:"body"`
	Recipient string `json:"recipient,omitempty"`
	Message   string `json:"message,omitempty"`
}

// NeedsSearchResponse tells the extension to request a recruiter search.
type NeedsSearchResponse struct {
	NeedsSearch bool   `json:"needs_search"`
	CompanyName string `json:"company_name,omitempty"`
	JobTitle    string `json:"job_title,omitempty"`
	Message     string `json:"message"`
}

// handleGenerate drafts a follow-up email, or revises one when the request
// carries the current draft plus revision feedback.
func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	var req GenerateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid JSON in request body.")
		return
	}
	if req.Resume == "" || req.JobDescription == "" {
		s.errorResponse(w, http.StatusBadRequest, "Missing resume or job_description")
		return
	}

	job := types.JobContext{Resume: req.Resume, JobDescription: req.JobDescription}

	if req.isRevision() {
		current := types.EmailDraft{Subject: req.CurrentSubject, Body: req.CurrentBody}
		outcome := s.drafter.Revise(r.Context(), job, current, req.UserPrompt)
		if outcome.Status != types.StatusSuccess {
			s.errorResponse(w, http.StatusInternalServerError, outcome.Message)
			return
		}

		s.recordDraft(r, db.KindRevised, job, outcome.Draft, "")
		s.jsonResponse(w, http.StatusOK, DraftResponse{
			Subject: outcome.Draft.Subject,
			Body:    outcome.Draft.Body,
			Message: "Email updated",
		})
		return
	}

	outcome := s.drafter.Generate(r.Context(), job)
	if outcome.Status != types.StatusSuccess {
		s.errorResponse(w, http.StatusInternalServerError, outcome.Message)
		return
	}
	if outcome.NeedsSearch {
		s.jsonResponse(w, http.StatusOK, NeedsSearchResponse{
			NeedsSearch: true,
			CompanyName: outcome.Resolution.Company,
			JobTitle:    outcome.Resolution.JobTitle,
			Message:     outcome.Message,
		})
		return
	}

	s.recordDraft(r, db.KindGenerated, job, outcome.Draft, outcome.Recipient)
	s.jsonResponse(w, http.StatusOK, DraftResponse{
		Subject:   outcome.Draft.Subject,
		Body:      outcome.Draft.Body,
		Recipient: outcome.Recipient,
	})
}

// FindRecruiterRequest represents the request body for /find_recruiter_email.
// Either an explicit company name or a job description to extract it from.
type FindRecruiterRequest struct {
	CompanyName    string `json:"company_name,omitempty"`
	JobTitle       string `json:"job_title,omitempty"`
	JobDescription string `json:"job_description,omitempty"`
}

// SearchResponse represents the response for /find_recruiter_email. Result
// is the found email address, or a list of relevant links when no address
// was found.
type SearchResponse struct {
	Status types.Status `json:"status"`
	Result any          `json:"result"`
}

// handleFindRecruiter runs the recruiter web search.
func (s *Server) handleFindRecruiter(w http.ResponseWriter, r *http.Request) {
	if s.finder == nil {
		s.errorResponse(w, http.StatusServiceUnavailable, "Recruiter search is not configured")
		return
	}

	var req FindRecruiterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid JSON in request body.")
		return
	}

	company, title := req.CompanyName, req.JobTitle
	if company == "" && req.JobDescription != "" {
		company = extract.CompanyName(req.JobDescription)
		if title == "" {
			title = extract.JobTitle(req.JobDescription)
		}
	}
	if company == "" {
		s.errorResponse(w, http.StatusBadRequest, "Missing company_name and no company could be extracted from job_description")
		return
	}

	result, err := s.finder.FindRecruiterEmail(r.Context(), company, title)
	if err != nil {
		log.Printf("[search] recruiter search for %q failed: %v", company, err)
		s.jsonResponse(w, http.StatusInternalServerError, SearchResponse{
			Status: types.StatusFail,
			Result: err.Error(),
		})
		return
	}

	if result.FoundEmail != "" {
		s.jsonResponse(w, http.StatusOK, SearchResponse{Status: types.StatusSuccess, Result: result.FoundEmail})
		return
	}
	s.jsonResponse(w, http.StatusOK, SearchResponse{Status: types.StatusSuccess, Result: result.RelevantURLs})
}

// SendResponse represents the response for /send-email.
type SendResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	ID      string `json:"id,omitempty"`
	Error   string `json:"error,omitempty"`
}

// handleSend delivers a composed email through Gmail with the caller's
// OAuth token.
func (s *Server) handleSend(w http.ResponseWriter, r *http.Request) {
	var env types.SendEnvelope
	if err := json.NewDecoder(r.Body).Decode(&env); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid JSON in request body.")
		return
	}

	id, err := s.mailer.Send(r.Context(), env)
	if err != nil {
		status, msg := sendFailureStatus(err)
		s.jsonResponse(w, status, SendResponse{
			Success: false,
			Message: msg,
			Error:   err.Error(),
		})
		return
	}

	s.recordSend(r, env, id)
	s.jsonResponse(w, http.StatusOK, SendResponse{
		Success: true,
		Message: "Email sent successfully",
		ID:      id,
	})
}

// sendFailureStatus maps the mailer's failure classes to HTTP statuses:
// incomplete envelopes are the caller's fault, an expired or invalid token
// must surface as 401 so the extension re-authenticates, other upstream
// rejections are a bad gateway, and everything else is internal.
func sendFailureStatus(err error) (int, string) {
	var verr *mailer.ValidationError
	if errors.As(err, &verr) {
		return http.StatusBadRequest, "Invalid email data. Please generate a proper email first."
	}

	var perr *mailer.ProviderError
	if errors.As(err, &perr) {
		if perr.Code == http.StatusUnauthorized {
			return http.StatusUnauthorized, "Gmail rejected the access token. Please sign in again."
		}
		return http.StatusBadGateway, "Failed to send email via Gmail"
	}

	return http.StatusInternalServerError, "Internal Server Error"
}

// recordDraft stores a draft in the history log when persistence is on.
// History failures are logged but never affect the response.
func (s *Server) recordDraft(r *http.Request, kind string, job types.JobContext, d types.EmailDraft, recipient string) {
	if !s.history.Enabled() {
		return
	}
	_, err := s.history.RecordDraft(r.Context(), db.DraftRecord{
		Kind:      kind,
		Company:   extract.CompanyName(job.JobDescription),
		JobTitle:  extract.JobTitle(job.JobDescription),
		Recipient: recipient,
		Subject:   d.Subject,
		Body:      d.Body,
	})
	if err != nil {
		log.Printf("[history] failed to record draft: %v", err)
	}
}

// recordSend stores a completed delivery in the history log.
func (s *Server) recordSend(r *http.Request, env types.SendEnvelope, gmailID string) {
	if !s.history.Enabled() {
		return
	}
	if err := s.history.RecordSend(r.Context(), env.To, env.Subject, gmailID); err != nil {
		log.Printf("[history] failed to record send: %v", err)
	}
}
