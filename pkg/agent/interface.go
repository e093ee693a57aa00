package agent

import (
	"context"

	"github.com/voicetrim/voicetrim/pkg/models"
	"github.com/voicetrim/voicetrim/pkg/textsource"
)

// ChatAgent produces one assistant turn as a stream of text fragments.
//
// RunPrompt owns the fragments channel and closes it when the turn is done.
// A mid-stream failure is delivered as a Fragment with Err set before the
// close, so consumers can keep the partial text.
type ChatAgent interface {
	RunPrompt(ctx context.Context, conversation *models.Conversation, fragments chan<- textsource.Fragment) error
}
