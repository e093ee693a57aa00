// Package audioio speaks a telephony-style media protocol over one
// websocket per call: JSON events (connected, start, media, mark, stop)
// with base64 mu-law payloads. Voice-activity detection lives on the remote
// endpoint; it signals the end of a caller turn with a "mark" event.
package audioio

import (
	"encoding/base64"
	"encoding/json"
	"strconv"

	"github.com/rs/zerolog/log"

	"github.com/voicetrim/voicetrim/pkg/audio_utils"
	"github.com/voicetrim/voicetrim/pkg/models"
)

// whisperSampleRate is the rate caller turns are resampled to before
// transcription.
const whisperSampleRate = 16000

// MediaMessage is the envelope for every event on the media websocket.
type MediaMessage struct {
	// Event is one of "connected", "start", "media", "mark" or "stop".
	Event          string `json:"event"`
	SequenceNumber string `json:"sequenceNumber,omitempty"`
	StreamID       string `json:"streamId,omitempty"`

	Start *StartPayload `json:"start,omitempty"`
	Media *MediaPayload `json:"media,omitempty"`
	Mark  *MarkPayload  `json:"mark,omitempty"`
	Stop  *StopPayload  `json:"stop,omitempty"`
}

// StartPayload arrives once, right after "connected".
type StartPayload struct {
	StreamID    string      `json:"streamId"`
	MediaFormat MediaFormat `json:"mediaFormat"`
}

type MediaFormat struct {
	Encoding   string `json:"encoding"`
	SampleRate int    `json:"sampleRate"`
	Channels   int    `json:"channels"`
}

type MediaPayload struct {
	// Track is "inbound" (caller audio) or "outbound" (assistant audio).
	Track string `json:"track"`
	// Format of the payload; inbound is mu-law, outbound mp3.
	Format string `json:"format,omitempty"`
	// Payload is base64-encoded audio.
	Payload string `json:"payload"`
}

// MarkPayload ends the current caller turn.
type MarkPayload struct {
	Name string `json:"name"`
}

type StopPayload struct {
	Reason string `json:"reason,omitempty"`
}

// Session owns one media websocket. Inbound mu-law accumulates per caller
// turn; each finished turn is WAV-wrapped and emitted on the turns channel,
// which closes when the socket does.
type Session struct {
	readChan  chan []byte
	writeChan chan []byte
	turns     chan<- models.AudioData

	streamID        string
	inputSampleRate uint32
	mulawBuffer     []byte
	outSeq          int
}

func NewSession(turns chan<- models.AudioData) *Session {
	s := &Session{
		readChan:        make(chan []byte, 100),
		writeChan:       make(chan []byte, 100),
		turns:           turns,
		inputSampleRate: 8000,
	}
	go s.readMessagesUntilChanClosed()
	return s
}

func (s *Session) GetReader() chan<- []byte {
	return s.readChan
}

func (s *Session) GetWriter() <-chan []byte {
	return s.writeChan
}

func (s *Session) readMessagesUntilChanClosed() {
	for msg := range s.readChan {
		s.handleMessage(msg)
	}
	// Socket gone; whatever audio is buffered is the caller's last turn.
	s.flushTurn()
	log.Info().Str("stream_id", s.streamID).Msg("media session ended")
	close(s.turns)
}

func (s *Session) handleMessage(msg []byte) {
	var message MediaMessage
	if err := json.Unmarshal(msg, &message); err != nil {
		log.Error().Err(err).Msgf("couldn't decode media message: %s", string(msg))
		return
	}

	switch message.Event {
	case "connected":
		// Protocol handshake, nothing to keep.
	case "start":
		if message.Start == nil {
			log.Error().Msg("start event without payload")
			return
		}
		s.streamID = message.Start.StreamID
		if message.Start.MediaFormat.SampleRate > 0 {
			s.inputSampleRate = uint32(message.Start.MediaFormat.SampleRate)
		}
		log.Info().Str("stream_id", s.streamID).Int("sample_rate", int(s.inputSampleRate)).Msg("media stream started")
	case "media":
		if message.Media == nil || message.Media.Track != "inbound" {
			return
		}
		mulawAudioData, err := base64.StdEncoding.DecodeString(message.Media.Payload)
		if err != nil {
			log.Error().Err(err).Msg("failed to decode base64 audio payload")
			return
		}
		s.mulawBuffer = append(s.mulawBuffer, mulawAudioData...)
	case "mark":
		s.flushTurn()
	case "stop":
		s.flushTurn()
	default:
		log.Error().Str("event", message.Event).Msg("unknown media event")
	}
}

// flushTurn converts the buffered caller audio to WAV and emits it as one
// finished turn. Conversion failure drops the buffer - replaying broken
// audio at the transcriber would only waste a Whisper call.
func (s *Session) flushTurn() {
	if len(s.mulawBuffer) == 0 {
		return
	}
	buffered := s.mulawBuffer
	s.mulawBuffer = nil

	wavAudioBytes, err := audio_utils.ConvertMulawSamplesToWav(buffered, s.inputSampleRate, whisperSampleRate)
	if err != nil {
		log.Error().Err(err).Int("mulaw_byte_length", len(buffered)).Msg("cannot convert caller turn to wav, dropping")
		return
	}

	log.Debug().Int("wav_byte_length", len(wavAudioBytes)).Str("stream_id", s.streamID).Msg("caller turn finished")
	s.turns <- models.AudioData{
		Kind:     models.CallerTurn,
		ByteData: wavAudioBytes,
		Format:   "wav",
		Trace:    models.NewTrace("audioio.session"),
	}
}

// WriteAudioRoutine drains synthesized assistant audio into outbound media
// messages, then closes the socket writer.
func (s *Session) WriteAudioRoutine(audioIn <-chan models.AudioData) {
	for audioData := range audioIn {
		s.outSeq++
		message := MediaMessage{
			Event:          "media",
			SequenceNumber: strconv.Itoa(s.outSeq),
			StreamID:       s.streamID,
			Media: &MediaPayload{
				Track:   "outbound",
				Format:  audioData.Format,
				Payload: base64.StdEncoding.EncodeToString(audioData.ByteData),
			},
		}
		encoded, err := json.Marshal(message)
		if err != nil {
			log.Error().Err(err).Msg("cannot marshal outbound media message")
			continue
		}
		s.writeChan <- encoded
	}
	close(s.writeChan)
}
