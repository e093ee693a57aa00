package transcriber

import (
	"bytes"
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/voicetrim/voicetrim/pkg/models"
)

// TranscribeTurnsRoutine runs for the lifespan of one call session. Each
// finished caller turn is transcribed as a whole and forwarded as a prompt;
// earlier transcripts are passed along as context for the next turn.
// Transcription failures drop the turn - the caller can simply repeat
// themselves, so failing the whole session would be worse.
func TranscribeTurnsRoutine(ctx context.Context, t Transcriber, turns <-chan models.AudioData, prompts chan<- string) {
	log.Info().Msg("TranscribeTurnsRoutine started")
	defer close(prompts)

	var history strings.Builder
	for turn := range turns {
		transcript, err := t.SendAudio(ctx, bytes.NewReader(turn.ByteData), turn.Format, history.String())
		if err != nil {
			log.Error().Err(err).Int("turn_byte_length", len(turn.ByteData)).Msg("cannot transcribe caller turn, skipping")
			continue
		}
		transcript = strings.TrimSpace(transcript)
		if transcript == "" {
			log.Debug().Msg("caller turn transcribed to nothing, skipping")
			continue
		}

		history.WriteString(" ")
		history.WriteString(transcript)

		turn.Text = transcript
		turn.Trace.ProcessedAt = time.Now()
		turn.Trace.Processor = "transcriber.openai_whisper"
		turn.Trace.Log()

		prompts <- transcript
	}
	log.Info().Msg("TranscribeTurnsRoutine ended")
}
