// Package generator abstracts the text-generation backend behind a capability
// interface. The concrete backend (mock or ollama) is selected exactly once at
// startup by New; nothing downstream knows which one it is talking to.
package generator

import (
	"context"
	"fmt"

	"github.com/GowthamOleti/itelo/internal/config"
)

// Fragment is a single incremental chunk of a generated response.
type Fragment struct {
	Content string
	Done    bool
	Error   string
}

// Message is one prior turn handed to the backend as context.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// GenerateRequest describes one generation attempt.
type GenerateRequest struct {
	Model   string
	System  string
	Prompt  string
	History []Message
}

// TextGenerator is the contract every generation backend implements.
// GenerateStream sends fragments on ch in arrival order and closes ch when the
// stream is exhausted or has failed; a Fragment with a non-empty Error is
// terminal for the attempt.
type TextGenerator interface {
	GenerateStream(ctx context.Context, req *GenerateRequest, ch chan<- Fragment) error
}

// New selects the backend named in the configuration.
func New(cfg *config.Config) (TextGenerator, error) {
	switch cfg.GeneratorBackend {
	case "mock":
		return NewMockGenerator(), nil
	case "ollama":
		return NewOllamaGenerator(cfg.OllamaURL, cfg.OllamaModel), nil
	default:
		return nil, fmt.Errorf("unknown generator backend %q", cfg.GeneratorBackend)
	}
}
