package synthesizer

import (
	"context"

	"github.com/voicetrim/voicetrim/pkg/models"
	"github.com/voicetrim/voicetrim/pkg/textsource"
)

type Synthesizer interface {
	CreateSpeech(ctx context.Context, text string, speed float64) (audioOutput models.AudioData, err error)
}

// TextResolver turns an utterance source into the final string to speak.
// The speech-output gate implements it.
type TextResolver interface {
	Resolve(ctx context.Context, source textsource.Source) string
}
