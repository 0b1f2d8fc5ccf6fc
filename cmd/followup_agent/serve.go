package main

import (
	"context"
	"fmt"
	"log"

	"github.com/spf13/cobra"

	"github.com/tinghuan/followup-agent/internal/config"
	"github.com/tinghuan/followup-agent/internal/db"
	"github.com/tinghuan/followup-agent/internal/draft"
	"github.com/tinghuan/followup-agent/internal/llm"
	"github.com/tinghuan/followup-agent/internal/mailer"
	"github.com/tinghuan/followup-agent/internal/search"
	"github.com/tinghuan/followup-agent/internal/server"
)

var (
	servePort int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long:  `Start the HTTP server that the browser extension talks to for drafting, revising and sending follow-up emails.`,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 5000, "Port to listen on")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	cfg := config.FromEnv()

	llmCfg := llm.DefaultConfig()
	apiKey, err := cfg.LLMAPIKey(string(llmCfg.Provider))
	if err != nil {
		return err
	}

	client, err := llm.NewClient(ctx, llmCfg, apiKey)
	if err != nil {
		return fmt.Errorf("failed to create LLM client: %w", err)
	}
	defer client.Close()

	deps := server.Deps{
		Drafter: draft.NewGenerator(client),
		Mailer:  mailer.NewSender(),
	}

	// The recruiter search endpoint stays off without search credentials.
	if err := cfg.ValidateSearch(); err != nil {
		log.Printf("[serve] recruiter search disabled: %v", err)
	} else {
		finder, err := search.NewFinder(ctx, cfg.SearchAPIKey, cfg.SearchEngineID)
		if err != nil {
			return fmt.Errorf("failed to create search client: %w", err)
		}
		deps.Finder = finder
	}

	// Draft/send history is optional as well.
	if cfg.DatabaseURL != "" {
		history, err := db.Connect(context.Background(), cfg.DatabaseURL)
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		deps.History = history
	} else {
		log.Printf("[serve] DATABASE_URL not set, draft history disabled")
	}

	srv := server.New(server.Config{Port: servePort}, deps)
	return srv.Start()
}
