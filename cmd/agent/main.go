package main

import (
	"context"
	"fmt"
	"net/http"

	"github.com/rs/zerolog/log"
	"github.com/sashabaranov/go-openai"

	"github.com/voicetrim/voicetrim/internal/config"
	"github.com/voicetrim/voicetrim/internal/networking"
	"github.com/voicetrim/voicetrim/internal/utils"
	"github.com/voicetrim/voicetrim/pkg/agent"
	"github.com/voicetrim/voicetrim/pkg/audioio"
	"github.com/voicetrim/voicetrim/pkg/gate"
	"github.com/voicetrim/voicetrim/pkg/models"
	"github.com/voicetrim/voicetrim/pkg/preptext"
	"github.com/voicetrim/voicetrim/pkg/synthesizer"
	"github.com/voicetrim/voicetrim/pkg/textsource"
	"github.com/voicetrim/voicetrim/pkg/transcriber"
)

const agentSystemPrompt = "You are a voice assistant. Your interface with users is voice. " +
	"Use short and concise responses, avoiding unpronounceable punctuation."

const greeting = "Hey, how can I help you today?"

// pipeline bundles the per-process collaborators every call session shares.
type pipeline struct {
	whisper    transcriber.Transcriber
	chatAgent  agent.ChatAgent
	tts        synthesizer.Synthesizer
	outputGate *gate.SpeechOutputGate
}

// newCallSession wires one websocket call: media session → transcriber →
// chat agent → speech-output gate → TTS → back onto the socket.
func (p *pipeline) newCallSession() networking.MessageHandler {
	ctx := context.Background()

	turns := make(chan models.AudioData, 16)
	prompts := make(chan string, 4)
	utterances := make(chan textsource.Source, 4)
	audioOut := make(chan models.AudioData, 16)

	session := audioio.NewSession(turns)
	go transcriber.TranscribeTurnsRoutine(ctx, p.whisper, turns, prompts)
	go p.runConversation(ctx, prompts, utterances)
	go synthesizer.SpeakUtterancesRoutine(ctx, p.tts, p.outputGate, utterances, audioOut)
	go session.WriteAudioRoutine(audioOut)

	return session
}

// runConversation keeps chat state for one call and turns each prompt into
// a streamed utterance. Turns are strictly sequential - the next prompt is
// not read until the current completion stream finishes.
func (p *pipeline) runConversation(ctx context.Context, prompts <-chan string, utterances chan<- textsource.Source) {
	defer close(utterances)

	conversation := models.NewConversation(agentSystemPrompt)
	// The greeting is scripted, already speakable - no preparation needed.
	utterances <- textsource.Complete(greeting)

	for prompt := range prompts {
		conversation.Add("user", prompt)

		fragments := make(chan textsource.Fragment, 256)
		utterances <- textsource.Streamed(fragments)
		if err := p.chatAgent.RunPrompt(ctx, conversation, fragments); err != nil {
			log.Error().Err(err).Msg("chat completion failed")
		}
	}
}

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

	prepClient := preptext.NewClient(cfg.APIHost, cfg.APIPort, cfg.PrepareTextAPIPath, cfg.PrepareTextTimeout)
	log.Info().Str("prepare_text_url", prepClient.URL()).Msg("voice agent starting")

	p := &pipeline{
		whisper:    transcriber.NewOpenAIWhisper(client),
		chatAgent:  agent.NewOpenAIChatAgent(client),
		tts:        synthesizer.NewOpenAITTS(cfg.OpenAIAPIKey, cfg.OpenAITimeout),
		outputGate: gate.NewSpeechOutputGate(prepClient),
	}

	http.HandleFunc("/media", networking.NewWebsocketHandlerFunc(p.newCallSession))

	addr := fmt.Sprintf("%s:%d", cfg.AgentHost, cfg.AgentPort)
	log.Info().Str("addr", addr).Msg("voice agent listening for media streams")
	if err := http.ListenAndServe(addr, nil); err != nil {
		log.Fatal().Err(err).Msg("voice agent stopped")
	}
}
