package shortener

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/sashabaranov/go-openai"

	"github.com/voicetrim/voicetrim/pkg/duration"
)

const systemPrompt = "You specialize in summarizing text for spoken content.\n" +
	"- Shorten text without losing core meaning.\n" +
	"- Ensure speech sounds natural and clear.\n" +
	"- Respect word count limits to match time restrictions.\n" +
	"- Keep a conversational tone suitable for TTS systems."

// completionClient is the slice of *openai.Client we actually use.
type completionClient interface {
	CreateChatCompletion(ctx context.Context, request openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

type openaiShortener struct {
	client completionClient
}

func NewOpenAIShortener(client *openai.Client) Shortener {
	return &openaiShortener{client: client}
}

// Shorten asks the model for a rewrite within the word budget derived from
// maxSeconds. Any failure is logged and the original text comes back - the
// assistant must keep talking even when summarization is down.
func (s *openaiShortener) Shorten(ctx context.Context, text string, maxSeconds int) string {
	targetWords := duration.TargetWords(maxSeconds)

	request := openai.ChatCompletionRequest{
		Model: "gpt-4o-mini",
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: fmt.Sprintf(
				"Please shorten the following text to fit within %d seconds of speech. "+
					"Limit the result to no more than %d words. "+
					"Ensure the output is clear, concise, and retains key points:\n\n%s",
				maxSeconds, targetWords, text,
			)},
		},
		Temperature: 0.7,
		MaxTokens:   1000,
	}
	log.Debug().Str("model", request.Model).Int("target_words", targetWords).Int("max_seconds", maxSeconds).Msg("shorten request")

	response, err := s.client.CreateChatCompletion(ctx, request)
	if err != nil {
		log.Error().Err(err).Msg("cannot shorten text, returning the original")
		return text
	}
	if len(response.Choices) == 0 {
		log.Error().Msg("shorten response has no choices, returning the original")
		return text
	}

	return strings.TrimSpace(response.Choices[0].Message.Content)
}
