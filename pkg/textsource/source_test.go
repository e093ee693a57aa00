package textsource

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func streamOf(fragments ...Fragment) <-chan Fragment {
	ch := make(chan Fragment, len(fragments))
	for _, f := range fragments {
		ch <- f
	}
	close(ch)
	return ch
}

func TestResolve_Complete(t *testing.T) {
	assert.Equal(t, "Hello", Complete("Hello").Resolve())
	assert.Equal(t, "", Complete("").Resolve())
}

func TestResolve_StreamedConcatenatesInOrder(t *testing.T) {
	source := Streamed(streamOf(
		Fragment{Text: "Hel"},
		Fragment{Text: "lo, "},
		Fragment{Text: "world"},
	))
	assert.Equal(t, "Hello, world", source.Resolve())
}

func TestResolve_StreamedEmpty(t *testing.T) {
	assert.Equal(t, "", Streamed(streamOf()).Resolve())
}

func TestResolve_ErrorKeepsPartialText(t *testing.T) {
	source := Streamed(streamOf(
		Fragment{Text: "partial "},
		Fragment{Text: "answer"},
		Fragment{Err: fmt.Errorf("stream reset")},
		Fragment{Text: "never seen"},
	))
	assert.Equal(t, "partial answer", source.Resolve())
}

func TestResolve_ErrorFirstYieldsEmpty(t *testing.T) {
	source := Streamed(streamOf(Fragment{Err: fmt.Errorf("immediate failure")}))
	assert.Equal(t, "", source.Resolve())
}

func TestResolve_ZeroValue(t *testing.T) {
	var source Source
	assert.Equal(t, "", source.Resolve())
}
