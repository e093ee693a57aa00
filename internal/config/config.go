// Package config loads process configuration once at startup.
// Components receive the resulting struct explicitly; nothing reads the
// environment after Load returns.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

type Config struct {
	// MaxAudioLengthSeconds is the spoken-duration threshold above which
	// the preparation service asks for a shortened rewrite.
	MaxAudioLengthSeconds int

	OpenAIAPIKey  string
	OpenAITimeout time.Duration

	// APIHost / APIPort locate the preparation service - used both for
	// binding the server and for building the agent-side client URL.
	APIHost            string
	APIPort            int
	PrepareTextAPIPath string
	PrepareTextTimeout time.Duration

	// AgentHost / AgentPort is where the voice agent accepts media
	// websocket connections.
	AgentHost string
	AgentPort int

	LogLevel string
}

// Load reads .env (best effort) and the environment. The only hard
// requirement is the OpenAI credential - without it neither shortening nor
// the voice pipeline can work, so we refuse to start.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Warn().Msg("cannot load .env file, relying on the environment")
	}

	apiKey := os.Getenv("OPENAI_API_KEY")
	if apiKey == "" {
		return nil, fmt.Errorf("OPENAI_API_KEY is not set")
	}

	return &Config{
		MaxAudioLengthSeconds: getEnvInt("MAX_AUDIO_LENGTH_SECONDS", 8),
		OpenAIAPIKey:          apiKey,
		OpenAITimeout:         getEnvSeconds("OPENAI_TIMEOUT_SECONDS", 30),
		APIHost:               getEnv("API_HOST", "127.0.0.1"),
		APIPort:               getEnvInt("API_PORT", 8009),
		PrepareTextAPIPath:    getEnv("PREPARE_TEXT_API_PATH", "prepare_text"),
		PrepareTextTimeout:    getEnvSeconds("PREPARE_TEXT_TIMEOUT_SECONDS", 5),
		AgentHost:             getEnv("AGENT_HOST", "0.0.0.0"),
		AgentPort:             getEnvInt("AGENT_PORT", 8010),
		LogLevel:              getEnv("LOG_LEVEL", "info"),
	}, nil
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		log.Warn().Str("key", key).Str("value", v).Msg("cannot parse int env var, using default")
		return def
	}
	return i
}

func getEnvSeconds(key string, def int) time.Duration {
	return time.Duration(getEnvInt(key, def)) * time.Second
}
