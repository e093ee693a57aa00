package shortener

import "context"

// Shortener rewrites text so it fits within maxSeconds of speech.
//
// Implementations are fail-open: when the rewrite cannot be produced they
// return the original text unchanged, so the caller always ends up with
// something speakable. Output is best-effort and non-deterministic - the
// same input may shorten differently across calls.
type Shortener interface {
	Shorten(ctx context.Context, text string, maxSeconds int) string
}
