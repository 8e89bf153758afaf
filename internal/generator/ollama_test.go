package generator

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestOllamaGenerator_GenerateStream verifies that the Ollama client sends a
// well-formed chat request and turns the NDJSON response lines into fragments.
//
// TECHNIQUE: an httptest server stands in for the real Ollama API, so the
// client logic is exercised without any external dependency.
func TestOllamaGenerator_GenerateStream(t *testing.T) {
	var capturedPath string
	var capturedReq ollamaChatRequest

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		capturedPath = r.URL.Path
		require.NoError(t, json.NewDecoder(r.Body).Decode(&capturedReq))

		w.Header().Set("Content-Type", "application/x-ndjson")
		_, _ = w.Write([]byte(`{"message":{"role":"assistant","content":"Hel"},"done":false}` + "\n"))
		_, _ = w.Write([]byte(`{"message":{"role":"assistant","content":"lo"},"done":false}` + "\n"))
		_, _ = w.Write([]byte(`{"message":{"role":"assistant","content":""},"done":true}` + "\n"))
	}))
	defer server.Close()

	gen := NewOllamaGenerator(server.URL, "test-model")
	ch := make(chan Fragment, 8)

	err := gen.GenerateStream(context.Background(), &GenerateRequest{
		System: "be brief",
		Prompt: "hello?",
	}, ch)
	require.NoError(t, err)

	var content string
	var sawDone bool
	for frag := range ch {
		content += frag.Content
		if frag.Done {
			sawDone = true
		}
	}

	assert.Equal(t, "/api/chat", capturedPath)
	assert.Equal(t, "Hello", content)
	assert.True(t, sawDone)

	require.Len(t, capturedReq.Messages, 2)
	assert.Equal(t, "system", capturedReq.Messages[0].Role)
	assert.Equal(t, "user", capturedReq.Messages[1].Role)
	assert.Equal(t, "test-model", capturedReq.Model)
	assert.True(t, capturedReq.Stream)
}

func TestOllamaGenerator_GenerateStream_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model not loaded", http.StatusInternalServerError)
	}))
	defer server.Close()

	gen := NewOllamaGenerator(server.URL, "test-model")
	ch := make(chan Fragment, 1)

	err := gen.GenerateStream(context.Background(), &GenerateRequest{Prompt: "hi"}, ch)
	require.Error(t, err)

	// The channel must still be closed so consumers do not hang.
	_, open := <-ch
	assert.False(t, open)
}

func TestMockGenerator_GenerateStream(t *testing.T) {
	gen := NewInstantMockGenerator()
	ch := make(chan Fragment, 256)

	err := gen.GenerateStream(context.Background(), &GenerateRequest{Prompt: "go"}, ch)
	require.NoError(t, err)

	var content string
	var sawDone bool
	for frag := range ch {
		content += frag.Content
		if frag.Done {
			sawDone = true
		}
	}

	assert.NotEmpty(t, content)
	assert.True(t, sawDone)
}
