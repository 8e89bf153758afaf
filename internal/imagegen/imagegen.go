// Package imagegen is the image-generation collaborator. The conversation
// flow hands it a stripped prompt and gets back raw image bytes, or a
// cancellation when the generation was dismissed.
package imagegen

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/GowthamOleti/itelo/internal/config"
	app_errors "github.com/GowthamOleti/itelo/internal/errors"
)

// Generator produces an image for a prompt. A nil-byte result never happens:
// dismissal is reported as app_errors.ErrCanceled, which callers swallow
// silently; any other error is surfaced to the user.
type Generator interface {
	Generate(ctx context.Context, prompt string) ([]byte, error)
}

// New selects the image backend named in the configuration.
func New(cfg *config.Config) (Generator, error) {
	switch cfg.ImageBackend {
	case "off":
		return &disabledGenerator{}, nil
	case "http":
		if cfg.ImageURL == "" {
			return nil, fmt.Errorf("IMAGE_URL must be set when IMAGE_BACKEND is %q", cfg.ImageBackend)
		}
		return NewHTTPGenerator(cfg.ImageURL), nil
	default:
		return nil, fmt.Errorf("unknown image backend %q", cfg.ImageBackend)
	}
}

type disabledGenerator struct{}

func (g *disabledGenerator) Generate(ctx context.Context, prompt string) ([]byte, error) {
	return nil, fmt.Errorf("%w: image generation is not configured", app_errors.ErrUnavailable)
}

// HTTPGenerator posts the prompt to an external image service and expects the
// raw image bytes back. A 204 response means the generation was dismissed.
type HTTPGenerator struct {
	client *http.Client
	url    string
}

func NewHTTPGenerator(url string) *HTTPGenerator {
	return &HTTPGenerator{client: &http.Client{}, url: url}
}

type generateImageRequest struct {
	Prompt string `json:"prompt"`
}

func (g *HTTPGenerator) Generate(ctx context.Context, prompt string) ([]byte, error) {
	body, err := json.Marshal(&generateImageRequest{Prompt: prompt})
	if err != nil {
		return nil, fmt.Errorf("could not marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.url, bytes.NewBuffer(body))
	if err != nil {
		return nil, fmt.Errorf("could not create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		data, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, fmt.Errorf("could not read image data: %w", err)
		}
		if len(data) == 0 {
			return nil, app_errors.ErrCanceled
		}
		return data, nil
	case http.StatusNoContent:
		return nil, app_errors.ErrCanceled
	default:
		bodyBytes, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("image api returned status %d: %s", resp.StatusCode, string(bodyBytes))
	}
}
