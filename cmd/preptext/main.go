package main

import (
	"fmt"
	"net/http"

	"github.com/rs/zerolog/log"
	"github.com/sashabaranov/go-openai"

	"github.com/voicetrim/voicetrim/internal/config"
	"github.com/voicetrim/voicetrim/internal/utils"
	"github.com/voicetrim/voicetrim/pkg/preptext"
	"github.com/voicetrim/voicetrim/pkg/shortener"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		utils.SetupZerolog("info")
		log.Fatal().Err(err).Msg("cannot load configuration")
	}
	utils.SetupZerolog(cfg.LogLevel)

	openaiConfig := openai.DefaultConfig(cfg.OpenAIAPIKey)
	openaiConfig.HTTPClient = &http.Client{Timeout: cfg.OpenAITimeout}
	client := openai.NewClientWithConfig(openaiConfig)

	service := preptext.NewService(cfg.MaxAudioLengthSeconds, shortener.NewOpenAIShortener(client))
	router := preptext.NewRouter(service, cfg.PrepareTextAPIPath)

	addr := fmt.Sprintf("%s:%d", cfg.APIHost, cfg.APIPort)
	log.Info().Str("addr", addr).Str("path", "/"+cfg.PrepareTextAPIPath).Int("max_audio_length_seconds", cfg.MaxAudioLengthSeconds).Msg("prepare-text service listening")
	if err := http.ListenAndServe(addr, router); err != nil {
		log.Fatal().Err(err).Msg("prepare-text service stopped")
	}
}
