// Package textsource models assistant output that is either a complete
// string or a stream of fragments still being produced.
package textsource

import (
	"strings"

	"github.com/rs/zerolog/log"
)

// Fragment is one piece of a streamed response. A non-nil Err means the
// producer failed mid-stream; no further text follows it.
type Fragment struct {
	Text string
	Err  error
}

// Source is a tagged variant: Complete(string) or Streamed(fragments).
// The zero value resolves to "".
type Source struct {
	text   string
	stream <-chan Fragment
}

func Complete(text string) Source {
	return Source{text: text}
}

func Streamed(fragments <-chan Fragment) Source {
	return Source{stream: fragments}
}

// IsStreamed reports whether the source still has fragments to consume.
func (s Source) IsStreamed() bool {
	return s.stream != nil
}

// Resolve produces the full text. A Complete source returns its string
// untouched. A Streamed source is consumed to exhaustion, concatenating
// fragments in arrival order; on a mid-stream error we log and keep whatever
// accumulated so far - a partial answer beats a silent assistant.
func (s Source) Resolve() string {
	if s.stream == nil {
		return s.text
	}

	var builder strings.Builder
	for fragment := range s.stream {
		if fragment.Err != nil {
			log.Error().Err(fragment.Err).Int("accumulated_bytes", builder.Len()).Msg("text stream failed, using partial text")
			break
		}
		builder.WriteString(fragment.Text)
	}
	return builder.String()
}
