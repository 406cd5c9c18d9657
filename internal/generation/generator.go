package generation

import (
	"context"
	"errors"
)

// ErrMissingCredential marks a generator that was never configured with an
// API key. Callers check for it before blaming the backend.
var ErrMissingCredential = errors.New("generation API key is not configured")

// Generator turns a grounding prompt into answer text. Implementations own
// their own timeout policy; the caller only sees text or an error.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}
