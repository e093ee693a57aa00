package agent

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/voicetrim/voicetrim/pkg/models"
	"github.com/voicetrim/voicetrim/pkg/textsource"
)

func newStreamingServer(t *testing.T, chunks []string) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/chat/completions", r.URL.Path)
		w.Header().Set("Content-Type", "text/event-stream")
		for _, chunk := range chunks {
			fmt.Fprintf(w, "data: {\"choices\":[{\"delta\":{\"content\":%q}}]}\n\n", chunk)
		}
		fmt.Fprint(w, "data: [DONE]\n\n")
	}))
	t.Cleanup(server.Close)
	return server
}

func agentForServer(server *httptest.Server) ChatAgent {
	config := openai.DefaultConfig("test-key")
	config.BaseURL = server.URL
	return NewOpenAIChatAgent(openai.NewClientWithConfig(config))
}

func TestRunPrompt_StreamsFragmentsInOrder(t *testing.T) {
	server := newStreamingServer(t, []string{"Hel", "lo, ", "world"})
	chatAgent := agentForServer(server)

	fragments := make(chan textsource.Fragment, 16)
	conversation := models.NewConversation("be brief")
	conversation.Add("user", "say hello")

	err := chatAgent.RunPrompt(context.Background(), conversation, fragments)
	require.NoError(t, err)

	assert.Equal(t, "Hello, world", textsource.Streamed(fragments).Resolve())
}

func TestRunPrompt_ClosesFragmentsOnFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "nope", http.StatusInternalServerError)
	}))
	defer server.Close()
	chatAgent := agentForServer(server)

	fragments := make(chan textsource.Fragment, 16)
	err := chatAgent.RunPrompt(context.Background(), models.NewConversation("system"), fragments)
	require.Error(t, err)

	// channel must be closed so an accumulator blocked on it completes
	assert.Equal(t, "", textsource.Streamed(fragments).Resolve())
}
