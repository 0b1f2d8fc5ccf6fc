// Package main provides the entry point for the follow-up email agent backend.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "followup_agent",
	Short: "Job application follow-up email backend",
	Long:  "Backend for a browser extension that drafts, revises and sends job application follow-up emails, with recruiter contact discovery via web search.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
