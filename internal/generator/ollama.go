package generator

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// OllamaGenerator talks to a local Ollama server over its streaming chat API.
type OllamaGenerator struct {
	client *http.Client
	url    string
	model  string
}

func NewOllamaGenerator(url, model string) *OllamaGenerator {
	return &OllamaGenerator{
		client: &http.Client{},
		url:    url,
		model:  model,
	}
}

type ollamaChatRequest struct {
	Model    string    `json:"model"`
	Messages []Message `json:"messages"`
	Stream   bool      `json:"stream"`
}

type ollamaStreamChunk struct {
	Message struct {
		Role    string `json:"role"`
		Content string `json:"content"`
	} `json:"message"`
	Done bool `json:"done"`
}

func (g *OllamaGenerator) GenerateStream(ctx context.Context, req *GenerateRequest, ch chan<- Fragment) error {
	defer close(ch)

	model := req.Model
	if model == "" {
		model = g.model
	}

	messages := make([]Message, 0, len(req.History)+2)
	if req.System != "" {
		messages = append(messages, Message{Role: "system", Content: req.System})
	}
	messages = append(messages, req.History...)
	messages = append(messages, Message{Role: "user", Content: req.Prompt})

	body, err := json.Marshal(&ollamaChatRequest{Model: model, Messages: messages, Stream: true})
	if err != nil {
		return fmt.Errorf("could not marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, g.url+"/api/chat", bytes.NewBuffer(body))
	if err != nil {
		return fmt.Errorf("could not create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := g.client.Do(httpReq)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		bodyBytes, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("api returned non-200 status %d: %s", resp.StatusCode, string(bodyBytes))
	}

	scanner := bufio.NewScanner(resp.Body)
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		var chunk ollamaStreamChunk
		if err := json.Unmarshal(line, &chunk); err != nil {
			select {
			case ch <- Fragment{Error: "failed to decode stream chunk"}:
			case <-ctx.Done():
			}
			return fmt.Errorf("could not decode stream chunk: %w", err)
		}

		select {
		case ch <- Fragment{Content: chunk.Message.Content, Done: chunk.Done}:
		case <-ctx.Done():
			return ctx.Err()
		}
		if chunk.Done {
			break
		}
	}
	return scanner.Err()
}
