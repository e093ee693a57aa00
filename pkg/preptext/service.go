// Package preptext decides whether assistant text fits its speech budget and
// shortens it when it does not. It exposes the decision both as an in-process
// service and over HTTP for the voice agent.
package preptext

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/voicetrim/voicetrim/pkg/duration"
	"github.com/voicetrim/voicetrim/pkg/shortener"
)

// Response is the preparation result. DurationBefore and Text are present
// exactly when the text was rewritten (even a rewrite to the empty string
// is emitted); Duration always describes the text the caller should speak
// (the rewrite when Updated, their own input otherwise).
type Response struct {
	Duration       float64  `json:"duration"`
	Updated        bool     `json:"updated"`
	DurationBefore *float64 `json:"duration_before,omitempty"`
	Text           *string  `json:"text,omitempty"`
}

type Service struct {
	maxAudioLengthSeconds int
	shortener             shortener.Shortener
}

func NewService(maxAudioLengthSeconds int, s shortener.Shortener) *Service {
	return &Service{
		maxAudioLengthSeconds: maxAudioLengthSeconds,
		shortener:             s,
	}
}

// Prepare estimates the speech duration of text and, when above the
// configured maximum, asks the shortener for a rewrite. Stateless - every
// call stands alone. Text is assumed non-empty; the HTTP boundary rejects
// empty input before it gets here.
func (s *Service) Prepare(ctx context.Context, text string) Response {
	originalDuration := duration.Estimate(text)

	if originalDuration <= float64(s.maxAudioLengthSeconds) {
		response := Response{Duration: originalDuration}
		log.Info().Float64("duration", response.Duration).Bool("updated", false).Msg("prepared text")
		return response
	}

	optimizedText := s.shortener.Shorten(ctx, text, s.maxAudioLengthSeconds)
	response := Response{
		Duration:       duration.Estimate(optimizedText),
		Updated:        true,
		DurationBefore: &originalDuration,
		Text:           &optimizedText,
	}
	log.Info().Float64("duration", response.Duration).Float64("duration_before", originalDuration).Bool("updated", true).Msg("prepared text")
	return response
}
