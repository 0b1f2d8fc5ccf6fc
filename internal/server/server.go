// Package server provides the HTTP REST API consumed by the browser extension.
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/tinghuan/followup-agent/internal/db"
	"github.com/tinghuan/followup-agent/internal/draft"
	"github.com/tinghuan/followup-agent/internal/server/middleware"
	"github.com/tinghuan/followup-agent/internal/types"
)

// Drafter generates and revises follow-up email drafts.
type Drafter interface {
	Generate(ctx context.Context, job types.JobContext) draft.GenerateOutcome
	Revise(ctx context.Context, job types.JobContext, current types.EmailDraft, feedback string) draft.ReviseOutcome
}

// RecruiterFinder searches the web for a recruiter contact.
type RecruiterFinder interface {
	FindRecruiterEmail(ctx context.Context, company, jobTitle string) (*types.SearchResult, error)
}

// MailSender delivers a send-ready envelope and returns the provider's
// message ID.
type MailSender interface {
	Send(ctx context.Context, env types.SendEnvelope) (string, error)
}

// Server represents the HTTP server
type Server struct {
	httpServer *http.Server
	drafter    Drafter
	finder     RecruiterFinder
	mailer     MailSender
	history    *db.DB
}

// Config holds server configuration
type Config struct {
	Port int
}

// Deps are the collaborators behind the endpoints. Finder may be nil when
// the recruiter search is not configured; History may be nil when no
// database URL is set.
type Deps struct {
	Drafter Drafter
	Finder  RecruiterFinder
	Mailer  MailSender
	History *db.DB
}

// New creates a new server instance
func New(cfg Config, deps Deps) *Server {
	s := &Server{
		drafter: deps.Drafter,
		finder:  deps.Finder,
		mailer:  deps.Mailer,
		history: deps.History,
	}

	mux := http.NewServeMux()
	mux.Handle("POST /generate_and_modify_email", s.fromExtension(s.handleGenerate))
	mux.Handle("POST /find_recruiter_email", s.fromExtension(s.handleFindRecruiter))
	mux.Handle("POST /send-email", s.fromExtension(s.handleSend))
	mux.Handle("GET /{$}", s.fromExtension(s.handleRoot))
	mux.HandleFunc("GET /health", s.handleHealth)

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      s.withLogging(s.withCORS(mux)),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second, // LLM drafting and web search calls are slow
		IdleTimeout:  60 * time.Second,
	}

	return s
}

// Start begins listening for requests
func (s *Server) Start() error {
	// Graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		log.Printf("Server starting on %s", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	<-stop
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	s.history.Close()
	log.Println("Server stopped")
	return nil
}

// fromExtension guards a handler with the extension-header check.
func (s *Server) fromExtension(h http.HandlerFunc) http.Handler {
	return middleware.RequireExtension(h)
}

// withCORS adds CORS headers. The extension marker header must be allowed
// or the browser's preflight will strip it.
func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, "+middleware.HeaderFromExtension)

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// withLogging adds request logging
func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		log.Printf("[%s] %s %s", r.Method, r.URL.Path, r.RemoteAddr)
		next.ServeHTTP(w, r)
		log.Printf("[%s] %s completed in %v", r.Method, r.URL.Path, time.Since(start))
	})
}

// handleRoot greets the extension so it can verify the backend is reachable.
func (s *Server) handleRoot(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]string{"message": "Aloha from the follow-up agent backend!"})
}

// handleHealth returns server health status
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}

// jsonResponse writes a JSON response
func (s *Server) jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("Error encoding JSON response: %v", err)
	}
}

// errorResponse writes an error JSON response
func (s *Server) errorResponse(w http.ResponseWriter, status int, message string) {
	s.jsonResponse(w, status, map[string]string{"error": message})
}
