package synthesizer

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/voicetrim/voicetrim/pkg/models"
	"github.com/voicetrim/voicetrim/pkg/textsource"
)

// SpeakUtterancesRoutine turns utterance sources into assistant audio.
// Each source is resolved through the duration gate right before synthesis,
// so over-long answers get one chance to be shortened. Synthesis failures
// skip the utterance rather than killing the pipeline. Closes audioOut once
// the utterance channel drains.
func SpeakUtterancesRoutine(ctx context.Context, tts Synthesizer, resolver TextResolver, utterances <-chan textsource.Source, audioOut chan<- models.AudioData) {
	log.Info().Msg("SpeakUtterancesRoutine started")
	defer close(audioOut)

	for source := range utterances {
		text := resolver.Resolve(ctx, source)
		if text == "" {
			log.Debug().Msg("utterance resolved to empty text, nothing to speak")
			continue
		}

		audioOutput, err := tts.CreateSpeech(ctx, text, 1.0)
		if err != nil {
			log.Error().Err(err).Str("text", text).Msg("cannot synthesize utterance, skipping")
			continue
		}
		audioOut <- audioOutput
	}
	log.Info().Msg("SpeakUtterancesRoutine ended")
}
