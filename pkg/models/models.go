package models

import (
	"time"

	"github.com/rs/zerolog/log"
)

// Trace carries timing breadcrumbs through the pipeline so per-stage
// latency can be read off the logs.
type Trace struct {
	CreatedAt time.Time
	Creator   string

	ProcessedAt time.Time
	Processor   string
}

func NewTrace(creator string) Trace {
	return Trace{CreatedAt: time.Now(), Creator: creator}
}

func (t Trace) Log() {
	log.Trace().Time("created_at", t.CreatedAt).Str("creator", t.Creator).Str("processor", t.Processor).Dur("dur_to_process", t.ProcessedAt.Sub(t.CreatedAt)).Msg("tracing")
}

type AudioKind int

const (
	// CallerTurn is one finished stretch of caller speech, WAV-encoded,
	// ready for transcription.
	CallerTurn AudioKind = iota
	// AssistantSpeech is synthesized assistant audio headed back out.
	AssistantSpeech
)

type AudioData struct {
	Kind     AudioKind
	ByteData []byte
	Format   string
	// Text is the transcript (CallerTurn) or the spoken text (AssistantSpeech).
	Text  string
	Trace Trace
}

type Message struct {
	Role       string
	Content    string
	FinishedAt time.Time
}

// Conversation is the chat history sent with every completion request.
type Conversation struct {
	StartedAt time.Time
	Messages  []Message
}

func NewConversation(systemPrompt string) *Conversation {
	c := &Conversation{StartedAt: time.Now()}
	c.Add("system", systemPrompt)
	return c
}

func (c *Conversation) Add(role string, content string) {
	c.Messages = append(c.Messages, Message{
		Role:       role,
		Content:    content,
		FinishedAt: time.Now(),
	})
}

func (c *Conversation) GetLastPrompt() string {
	if len(c.Messages) == 0 {
		return ""
	}
	return c.Messages[len(c.Messages)-1].Content
}
