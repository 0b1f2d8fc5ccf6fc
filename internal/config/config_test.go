package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromEnv(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "gem-key")
	t.Setenv("OPENAI_API_KEY", "oai-key")
	t.Setenv("SEARCH_API_KEY", "search-key")
	t.Setenv("SEARCH_ENGINE_ID", "cx-1")
	t.Setenv("DATABASE_URL", "postgres://localhost/followup")

	cfg := FromEnv()
	assert.Equal(t, "gem-key", cfg.GeminiAPIKey)
	assert.Equal(t, "oai-key", cfg.OpenAIAPIKey)
	assert.Equal(t, "search-key", cfg.SearchAPIKey)
	assert.Equal(t, "cx-1", cfg.SearchEngineID)
	assert.Equal(t, "postgres://localhost/followup", cfg.DatabaseURL)
}

func TestLLMAPIKey(t *testing.T) {
	cfg := Config{GeminiAPIKey: "gem-key"}

	key, err := cfg.LLMAPIKey("gemini")
	require.NoError(t, err)
	assert.Equal(t, "gem-key", key)

	// Unknown provider names fall back to Gemini.
	key, err = cfg.LLMAPIKey("")
	require.NoError(t, err)
	assert.Equal(t, "gem-key", key)

	_, err = cfg.LLMAPIKey("openai")
	require.Error(t, err)

	cfg.OpenAIAPIKey = "oai-key"
	key, err = cfg.LLMAPIKey("openai")
	require.NoError(t, err)
	assert.Equal(t, "oai-key", key)
}

func TestValidateSearch(t *testing.T) {
	cfg := Config{}
	require.Error(t, cfg.ValidateSearch())

	cfg.SearchAPIKey = "search-key"
	require.Error(t, cfg.ValidateSearch())

	cfg.SearchEngineID = "cx-1"
	require.NoError(t, cfg.ValidateSearch())
}
