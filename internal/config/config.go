// Package config provides environment-based configuration for the backend.
package config

import (
	"fmt"
	"os"
)

// Config holds everything the serve command needs to wire its collaborators.
// DatabaseURL is optional; history recording stays off without it.
type Config struct {
	// LLM provider credentials. Which one is required depends on LLM_PROVIDER.
	GeminiAPIKey string
	OpenAIAPIKey string

	// Google Programmable Search credentials for the recruiter search.
	SearchAPIKey   string
	SearchEngineID string

	// Optional Postgres connection URL for draft/send history.
	DatabaseURL string
}

// FromEnv reads configuration from the environment.
func FromEnv() Config {
	return Config{
		GeminiAPIKey:   os.Getenv("GEMINI_API_KEY"),
		OpenAIAPIKey:   os.Getenv("OPENAI_API_KEY"),
		SearchAPIKey:   os.Getenv("SEARCH_API_KEY"),
		SearchEngineID: os.Getenv("SEARCH_ENGINE_ID"),
		DatabaseURL:    os.Getenv("DATABASE_URL"),
	}
}

// LLMAPIKey returns the API key for the given provider name ("gemini" or
// "openai") and an error when it is not set.
func (c Config) LLMAPIKey(provider string) (string, error) {
	switch provider {
	case "openai":
		if c.OpenAIAPIKey == "" {
			return "", fmt.Errorf("OPENAI_API_KEY environment variable is required")
		}
		return c.OpenAIAPIKey, nil
	default:
		if c.GeminiAPIKey == "" {
			return "", fmt.Errorf("GEMINI_API_KEY environment variable is required")
		}
		return c.GeminiAPIKey, nil
	}
}

// ValidateSearch checks that the recruiter search is fully configured.
func (c Config) ValidateSearch() error {
	if c.SearchAPIKey == "" {
		return fmt.Errorf("SEARCH_API_KEY environment variable is required")
	}
	if c.SearchEngineID == "" {
		return fmt.Errorf("SEARCH_ENGINE_ID environment variable is required")
	}
	return nil
}
