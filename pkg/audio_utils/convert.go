// Package audio_utils repackages raw telephony samples into WAV containers
// that the transcription API accepts.
package audio_utils

import (
	"io"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"
)

const mulawAudioFormat = 7

// ConvertMulawSamplesToWav wraps one-byte-per-sample mu-law audio in a WAV
// container, mono. Telephony streams arrive at 8kHz; Whisper is happier at
// 16kHz, so the output rate is separate from the input rate.
// https://github.com/go-audio/wav/issues/29
func ConvertMulawSamplesToWav(byteData []byte, inputSampleRate, outputSampleRate uint32) ([]byte, error) {
	intData := make([]int, len(byteData))
	for i, b := range byteData {
		intData[i] = int(b)
	}

	inputBuffer := &audio.IntBuffer{
		Data: intData,
		Format: &audio.Format{
			SampleRate:  int(inputSampleRate),
			NumChannels: 1,
		},
		SourceBitDepth: 8,
	}
	return encodeWav(inputBuffer, outputSampleRate, 1, mulawAudioFormat)
}

func encodeWav(inputBuffer *audio.IntBuffer, sampleRate uint32, numChannels uint32, audioFormat int) (result []byte, err error) {
	if len(inputBuffer.Data) == 0 {
		return // Nothing to do
	}

	// wav.NewEncoder needs an io.WriteSeeker to finalize headers, so we go
	// through an in-memory file.
	fs := afero.NewMemMapFs()
	inMemoryFilename := "in-memory-output.wav"
	inMemoryFile, err := fs.Create(inMemoryFilename)
	dbg(err)

	outputBitDepth := 16
	wavEncoder := wav.NewEncoder(inMemoryFile, int(sampleRate), outputBitDepth, int(numChannels), audioFormat)
	log.Debug().Int("int_data_length", len(inputBuffer.Data)).Int("sample_rate", int(sampleRate)).Int("source_bit_depth", inputBuffer.SourceBitDepth).Int("audio_format", audioFormat).Msg("encoding samples as wav")

	if err = wavEncoder.Write(inputBuffer); err != nil {
		err = errors.Wrap(err, "cannot encode samples as wav")
		return
	}
	if err = wavEncoder.Close(); err != nil {
		err = errors.Wrap(err, "cannot finish wav encoding")
		return
	}

	// Close and re-open so we read the finalized file from the start.
	dbg(inMemoryFile.Close())
	inMemoryFileReopen, err := fs.Open(inMemoryFilename)
	dbg(err)
	result, err = io.ReadAll(inMemoryFileReopen)
	dbg(err)
	if err == nil && len(result) == 0 {
		err = errors.New("wav output is empty when input was not")
	}
	return
}

func dbg(err error) {
	if err != nil {
		log.Debug().Err(err).Msg("sth non-essential failed")
	}
}
