// Package gate is the last stop before speech synthesis: it resolves the
// model's output into one string and gives the preparation service a single
// chance to shorten it.
package gate

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/voicetrim/voicetrim/pkg/preptext"
	"github.com/voicetrim/voicetrim/pkg/textsource"
)

// PrepareClient is the outbound half of the preparation boundary.
type PrepareClient interface {
	Prepare(ctx context.Context, text string) (preptext.Response, error)
}

type SpeechOutputGate struct {
	client PrepareClient
}

func NewSpeechOutputGate(client PrepareClient) *SpeechOutputGate {
	return &SpeechOutputGate{client: client}
}

// Resolve accumulates the source and runs it through the preparation
// service. Text that arrives already complete is speakable as-is and goes
// straight to synthesis; empty accumulated text skips the call entirely.
// One best-effort attempt, no retries; any failure keeps the original text
// so the utterance is never lost to a sidecar being down.
func (g *SpeechOutputGate) Resolve(ctx context.Context, source textsource.Source) string {
	if !source.IsStreamed() {
		return source.Resolve()
	}

	text := source.Resolve()
	if text == "" {
		return ""
	}

	response, err := g.client.Prepare(ctx, text)
	if err != nil {
		log.Error().Err(err).Msg("prepare_text call failed, speaking the original text")
		return text
	}

	log.Debug().Float64("duration", response.Duration).Bool("updated", response.Updated).Msg("prepare_text response")
	if response.Updated && response.Text != nil {
		return *response.Text
	}
	return text
}
