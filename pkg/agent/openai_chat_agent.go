package agent

import (
	"context"
	"io"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/sashabaranov/go-openai"

	"github.com/voicetrim/voicetrim/pkg/models"
	"github.com/voicetrim/voicetrim/pkg/textsource"
)

type openaiChatAgent struct {
	client *openai.Client
	model  string
}

func NewOpenAIChatAgent(client *openai.Client) ChatAgent {
	return &openaiChatAgent{client: client, model: "gpt-4o-mini"}
}

func conversationToOpenAiMessages(conversation *models.Conversation) []openai.ChatCompletionMessage {
	result := make([]openai.ChatCompletionMessage, len(conversation.Messages))
	for i, message := range conversation.Messages {
		result[i].Role = message.Role
		result[i].Content = message.Content
	}
	return result
}

// RunPrompt streams completion deltas into fragments as they arrive.
func (o *openaiChatAgent) RunPrompt(ctx context.Context, conversation *models.Conversation, fragments chan<- textsource.Fragment) error {
	defer close(fragments)

	chatRequest := openai.ChatCompletionRequest{
		Model:       o.model,
		Messages:    conversationToOpenAiMessages(conversation),
		Temperature: 0,
	}
	log.Info().Str("prompt", conversation.GetLastPrompt()).Str("model", chatRequest.Model).Msg("executeChatRequest")

	startTime := time.Now()
	completionStream, err := o.client.CreateChatCompletionStream(ctx, chatRequest)
	if err != nil {
		return errors.Wrap(err, "cannot create chat completion stream")
	}
	defer completionStream.Close()

	firstContent := true
	for {
		response, streamRecvErr := completionStream.Recv()
		if firstContent {
			log.Debug().Dur("latency", time.Since(startTime)).Msg("first chat completion received")
			firstContent = false
		}

		// Deltas can ride along with the final error, so drain choices first.
		for _, choice := range response.Choices {
			fragments <- textsource.Fragment{Text: choice.Delta.Content}
		}

		if streamRecvErr != nil {
			if errors.Is(streamRecvErr, io.EOF) {
				log.Info().Dur("time_elapsed", time.Since(startTime)).Msg("chat completion stream finished")
				return nil
			}
			// Hand the error downstream - whatever streamed so far is
			// still worth speaking.
			fragments <- textsource.Fragment{Err: streamRecvErr}
			return errors.Wrap(streamRecvErr, "error reading from completion stream")
		}
	}
}
