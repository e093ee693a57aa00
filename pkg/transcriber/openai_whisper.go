package transcriber

import (
	"context"
	"fmt"
	"io"
	"regexp"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/sashabaranov/go-openai"
)

type openAIWhisper struct {
	client *openai.Client
}

func NewOpenAIWhisper(client *openai.Client) Transcriber {
	return &openAIWhisper{client: client}
}

func (o *openAIWhisper) SendAudio(ctx context.Context, input io.Reader, fileExtension string, prompt string) (result string, err error) {
	startTime := time.Now()
	req := openai.AudioRequest{
		Model:  "whisper-1",
		Reader: input,
		// The API infers the container format from the extension.
		FilePath: fmt.Sprintf("this-file-does-not-exist-just-needs-extension.%s", fileExtension),
		// Previous words improve accuracy; Whisper keeps the last 244 tokens.
		Prompt: prompt,
	}

	log.Debug().Str("model", req.Model).Str("prompt", prompt).Msg("create transcription request")
	resp, err := o.client.CreateTranscription(ctx, req)
	if err != nil {
		err = errors.Wrap(err, "cannot create transcription")
		return
	}

	result = stripNonASCII(resp.Text)
	if result != resp.Text {
		log.Info().Str("original_text", resp.Text).Str("processed_text", result).Msg("transcription post-processing removed some text")
	}

	log.Debug().Str("transcription", result).Dur("time_elapsed", time.Since(startTime)).Msg("received transcription")
	return
}

var nonASCIIRegex = regexp.MustCompile(`[^\x00-\x7F]+`)

// stripNonASCII drops non-ASCII runs. Near-silence tends to transcribe as
// random foreign-script characters, which would derail the conversation.
func stripNonASCII(text string) string {
	return nonASCIIRegex.ReplaceAllString(text, "")
}
