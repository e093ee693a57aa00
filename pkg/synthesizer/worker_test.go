package synthesizer

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/voicetrim/voicetrim/pkg/models"
	"github.com/voicetrim/voicetrim/pkg/textsource"
)

type fakeSynthesizer struct {
	failOn string
	spoken []string
}

func (f *fakeSynthesizer) CreateSpeech(_ context.Context, text string, _ float64) (models.AudioData, error) {
	if text == f.failOn {
		return models.AudioData{}, fmt.Errorf("synthesis backend down")
	}
	f.spoken = append(f.spoken, text)
	return models.AudioData{Kind: models.AssistantSpeech, ByteData: []byte("mp3"), Format: "mp3", Text: text}, nil
}

// passthroughResolver skips the prepare call, like the gate does for
// complete sources.
type passthroughResolver struct{}

func (passthroughResolver) Resolve(_ context.Context, source textsource.Source) string {
	return source.Resolve()
}

func collectAudio(audioOut <-chan models.AudioData) []models.AudioData {
	var result []models.AudioData
	for audio := range audioOut {
		result = append(result, audio)
	}
	return result
}

func TestSpeakUtterancesRoutine(t *testing.T) {
	utterances := make(chan textsource.Source, 3)
	utterances <- textsource.Complete("first utterance")
	utterances <- textsource.Complete("") // resolved empty, must be skipped
	utterances <- textsource.Complete("second utterance")
	close(utterances)

	tts := &fakeSynthesizer{}
	audioOut := make(chan models.AudioData, 3)

	SpeakUtterancesRoutine(context.Background(), tts, passthroughResolver{}, utterances, audioOut)

	audio := collectAudio(audioOut)
	require.Len(t, audio, 2)
	assert.Equal(t, "first utterance", audio[0].Text)
	assert.Equal(t, "second utterance", audio[1].Text)
	assert.Equal(t, models.AssistantSpeech, audio[0].Kind)
}

func TestSpeakUtterancesRoutine_SynthesisFailureSkipsUtterance(t *testing.T) {
	utterances := make(chan textsource.Source, 2)
	utterances <- textsource.Complete("doomed")
	utterances <- textsource.Complete("fine")
	close(utterances)

	tts := &fakeSynthesizer{failOn: "doomed"}
	audioOut := make(chan models.AudioData, 2)

	SpeakUtterancesRoutine(context.Background(), tts, passthroughResolver{}, utterances, audioOut)

	audio := collectAudio(audioOut)
	require.Len(t, audio, 1)
	assert.Equal(t, "fine", audio[0].Text)
}

func TestSpeakUtterancesRoutine_ClosesOutputWhenDone(t *testing.T) {
	utterances := make(chan textsource.Source)
	close(utterances)

	audioOut := make(chan models.AudioData)
	go SpeakUtterancesRoutine(context.Background(), &fakeSynthesizer{}, passthroughResolver{}, utterances, audioOut)

	_, open := <-audioOut
	assert.False(t, open)
}
