package shortener

import (
	"context"
	"fmt"
	"testing"

	"github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCompletionClient struct {
	lastRequest openai.ChatCompletionRequest
	reply       string
	err         error
}

func (f *fakeCompletionClient) CreateChatCompletion(_ context.Context, request openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error) {
	f.lastRequest = request
	if f.err != nil {
		return openai.ChatCompletionResponse{}, f.err
	}
	return openai.ChatCompletionResponse{
		Choices: []openai.ChatCompletionChoice{
			{Message: openai.ChatCompletionMessage{Content: f.reply}},
		},
	}, nil
}

func TestShorten_TrimsModelReply(t *testing.T) {
	fake := &fakeCompletionClient{reply: "  A short answer. \n"}
	s := &openaiShortener{client: fake}

	got := s.Shorten(context.Background(), "a very long text", 8)
	assert.Equal(t, "A short answer.", got)
}

func TestShorten_RequestCarriesBudget(t *testing.T) {
	fake := &fakeCompletionClient{reply: "ok"}
	s := &openaiShortener{client: fake}

	s.Shorten(context.Background(), "the original text", 8)

	require.Len(t, fake.lastRequest.Messages, 2)
	assert.Equal(t, openai.ChatMessageRoleSystem, fake.lastRequest.Messages[0].Role)
	user := fake.lastRequest.Messages[1].Content
	assert.Contains(t, user, "8 seconds")
	assert.Contains(t, user, "24 words")
	assert.Contains(t, user, "the original text")
	assert.InDelta(t, 0.7, fake.lastRequest.Temperature, 0.001)
	assert.Equal(t, 1000, fake.lastRequest.MaxTokens)
}

func TestShorten_FailsOpenOnError(t *testing.T) {
	fake := &fakeCompletionClient{err: fmt.Errorf("backend down")}
	s := &openaiShortener{client: fake}

	got := s.Shorten(context.Background(), "keep me as I am", 8)
	assert.Equal(t, "keep me as I am", got)
}

func TestShorten_FailsOpenOnEmptyChoices(t *testing.T) {
	s := &openaiShortener{client: emptyChoicesClient{}}

	got := s.Shorten(context.Background(), "keep me as I am", 8)
	assert.Equal(t, "keep me as I am", got)
}

type emptyChoicesClient struct{}

func (emptyChoicesClient) CreateChatCompletion(context.Context, openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error) {
	return openai.ChatCompletionResponse{}, nil
}
