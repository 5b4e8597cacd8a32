// Package embedding abstracts batch text-to-vector providers behind a
// single interface so the semantic detector can run against OpenAI, Gemini,
// an Ollama server, or a deterministic stub in tests.
package embedding

import (
	"context"
	"errors"
)

// ErrProvider marks failures of the external embedding provider. Callers
// branch on it with errors.Is; it is fatal for the semantic stage only.
var ErrProvider = errors.New("embedding provider failure")

// Embedder maps a batch of texts to fixed-dimension vectors, one per input
// in input order.
type Embedder interface {
	EmbedBatch(ctx context.Context, texts []string) ([][]float32, error)
}
