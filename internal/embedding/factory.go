package embedding

import (
	"context"
	"fmt"
	"strings"

	"github.com/soukayna-thr/Supply-Chain-Traceability-OAR/internal/config"
)

// New builds an Embedder from configuration. Ollama is served through the
// OpenAI-compatible client against its /v1 API; the key is a dummy value
// the server ignores.
func New(ctx context.Context, cfg config.EmbeddingConfig) (Embedder, error) {
	switch strings.ToLower(cfg.Provider) {
	case "openai":
		return NewOpenAIClient(cfg.APIKey, cfg.Model, cfg.BaseURL), nil

	case "gemini":
		return NewGeminiClient(ctx, cfg.APIKey, cfg.Model)

	case "ollama":
		baseURL := strings.TrimRight(cfg.BaseURL, "/")
		if baseURL == "" {
			baseURL = "http://localhost:11434"
		}
		if !strings.HasSuffix(baseURL, "/v1") {
			baseURL += "/v1"
		}
		apiKey := cfg.APIKey
		if apiKey == "" {
			apiKey = "ollama"
		}
		return NewOpenAIClient(apiKey, cfg.Model, baseURL), nil

	default:
		return nil, fmt.Errorf("%w: unsupported embedding provider %q", config.ErrInvalidConfig, cfg.Provider)
	}
}
