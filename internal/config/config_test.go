package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "sk-test")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8, cfg.MaxAudioLengthSeconds)
	assert.Equal(t, "sk-test", cfg.OpenAIAPIKey)
	assert.Equal(t, "127.0.0.1", cfg.APIHost)
	assert.Equal(t, 8009, cfg.APIPort)
	assert.Equal(t, "prepare_text", cfg.PrepareTextAPIPath)
	assert.Equal(t, "0.0.0.0", cfg.AgentHost)
	assert.Equal(t, 8010, cfg.AgentPort)
	assert.Equal(t, 5*time.Second, cfg.PrepareTextTimeout)
	assert.Equal(t, 30*time.Second, cfg.OpenAITimeout)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("MAX_AUDIO_LENGTH_SECONDS", "15")
	t.Setenv("API_HOST", "prep.internal")
	t.Setenv("API_PORT", "443")
	t.Setenv("PREPARE_TEXT_API_PATH", "v2/prepare")
	t.Setenv("PREPARE_TEXT_TIMEOUT_SECONDS", "2")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 15, cfg.MaxAudioLengthSeconds)
	assert.Equal(t, "prep.internal", cfg.APIHost)
	assert.Equal(t, 443, cfg.APIPort)
	assert.Equal(t, "v2/prepare", cfg.PrepareTextAPIPath)
	assert.Equal(t, 2*time.Second, cfg.PrepareTextTimeout)
}

func TestLoad_MissingAPIKey(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "OPENAI_API_KEY")
}

func TestLoad_BadIntFallsBack(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("MAX_AUDIO_LENGTH_SECONDS", "not-a-number")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 8, cfg.MaxAudioLengthSeconds)
}
