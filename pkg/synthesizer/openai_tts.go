package synthesizer

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"github.com/voicetrim/voicetrim/pkg/models"
)

type openAITTS struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

// NewOpenAITTS builds a speech synthesizer over the OpenAI audio/speech
// endpoint with an explicit request timeout.
func NewOpenAITTS(openAIAPIKey string, timeout time.Duration) Synthesizer {
	return &openAITTS{
		apiKey:     openAIAPIKey,
		baseURL:    "https://api.openai.com/v1/",
		httpClient: &http.Client{Timeout: timeout},
	}
}

// ttsPayload mirrors the audio/speech request body.
// TODO(devx): switch to go-openai's CreateSpeech once we upgrade past the
// version that added it.
type ttsPayload struct {
	Model          string  `json:"model"`
	Input          string  `json:"input"`
	Voice          string  `json:"voice"`
	ResponseFormat string  `json:"response_format"`
	Speed          float64 `json:"speed"`
}

func (o *openAITTS) CreateSpeech(ctx context.Context, text string, speed float64) (audioOutput models.AudioData, err error) {
	log.Debug().Str("input", text).Float64("speed", speed).Msg("sendTTSRequest start")

	payload := ttsPayload{
		Model:          "tts-1",
		Input:          text,
		Voice:          "alloy",
		ResponseFormat: "mp3", // Opus would stream better, mp3 is easier to handle.
		Speed:          speed,
	}
	reqBytes, _ := json.Marshal(payload)
	rawAudioBytes, err := o.sendRequest(ctx, http.MethodPost, "audio/speech", string(reqBytes))
	if err != nil {
		err = errors.Wrapf(err, "could not do audio/speech for %s", reqBytes)
		return
	}

	audioOutput = models.AudioData{
		Kind:     models.AssistantSpeech,
		ByteData: rawAudioBytes,
		Format:   "mp3",
		Text:     text,
		Trace:    models.NewTrace("synthesizer.openai_tts"),
	}
	return
}

func (o *openAITTS) sendRequest(ctx context.Context, method string, endpoint string, requestStr string) (result []byte, err error) {
	requestStart := time.Now()

	req, err := http.NewRequestWithContext(ctx, method, o.baseURL+endpoint, strings.NewReader(requestStr))
	if err != nil {
		return
	}
	req.Header.Add("Authorization", "Bearer "+o.apiKey)
	req.Header.Add("Content-Type", "application/json")

	resp, err := o.httpClient.Do(req)
	if err != nil {
		return
	}
	defer resp.Body.Close()

	log.Debug().Dur("request_time", time.Since(requestStart)).Str("method", method).Str("endpoint", endpoint).Int("status_code", resp.StatusCode).Msg("request done")

	if resp.StatusCode != http.StatusOK {
		errMsg, _ := io.ReadAll(resp.Body)
		err = errors.Errorf("received non-200 status %d from %s: %s", resp.StatusCode, endpoint, errMsg)
		return
	}

	result, err = io.ReadAll(resp.Body)
	if err != nil {
		err = errors.Wrap(err, "could not read response")
		return
	}
	log.Debug().Int("response_byte_size", len(result)).Str("endpoint", endpoint).Msg("request body read done")
	return
}
