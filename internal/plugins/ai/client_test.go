package ai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/codeclimb/codeclimb/internal/config"
)

func testAIConfig(baseURL string) config.AIConfig {
	return config.AIConfig{
		APIKey:          "test-api-key",
		Model:           "gemini-1.5-flash",
		BaseURL:         baseURL,
		Timeout:         5 * time.Second,
		MaxOutputTokens: 2048,
		Temperature:     0.7,
	}
}

func userMessage(text string) []ChatMessage {
	return []ChatMessage{{Role: "user", Parts: []ChatPart{{Text: text}}}}
}

// candidateBody builds a minimal generateContent response.
func candidateBody(texts ...string) string {
	parts := make([]map[string]string, 0, len(texts))
	for _, t := range texts {
		parts = append(parts, map[string]string{"text": t})
	}
	body, _ := json.Marshal(map[string]any{
		"candidates": []map[string]any{
			{"content": map[string]any{"parts": parts}},
		},
	})
	return string(body)
}

func TestGeminiClient_Complete(t *testing.T) {
	var gotPath, gotKey string
	var gotBody generateContentRequest

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotKey = r.Header.Get("x-goog-api-key")
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Errorf("invalid request body: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(candidateBody("Think about which data structure gives O(1) lookups.")))
	}))
	defer srv.Close()

	client := NewGeminiClient(testAIConfig(srv.URL), srv.Client())
	answer, err := client.Complete(context.Background(), "You are a tutor.", userMessage("How do I solve Two Sum?"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if answer != "Think about which data structure gives O(1) lookups." {
		t.Errorf("unexpected answer: %s", answer)
	}
	if gotPath != "/models/gemini-1.5-flash:generateContent" {
		t.Errorf("unexpected path: %s", gotPath)
	}
	if gotKey != "test-api-key" {
		t.Errorf("unexpected api key header: %s", gotKey)
	}
	if gotBody.SystemInstruction == nil || len(gotBody.SystemInstruction.Parts) != 1 {
		t.Fatal("expected a single system instruction part")
	}
	if gotBody.SystemInstruction.Parts[0].Text != "You are a tutor." {
		t.Errorf("unexpected system instruction: %s", gotBody.SystemInstruction.Parts[0].Text)
	}
	if gotBody.GenerationConfig.Temperature != 0.7 || gotBody.GenerationConfig.MaxOutputTokens != 2048 {
		t.Errorf("unexpected generation config: %+v", gotBody.GenerationConfig)
	}
	if len(gotBody.Contents) != 1 || gotBody.Contents[0].Role != "user" {
		t.Errorf("unexpected contents: %+v", gotBody.Contents)
	}
}

// A multi-part candidate is joined into one answer.
func TestGeminiClient_MultiPartCandidate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(candidateBody("Use a hash map. ", "It trades memory for speed.")))
	}))
	defer srv.Close()

	client := NewGeminiClient(testAIConfig(srv.URL), srv.Client())
	answer, err := client.Complete(context.Background(), "", userMessage("hint please"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if answer != "Use a hash map. It trades memory for speed." {
		t.Errorf("unexpected answer: %s", answer)
	}
}

func TestGeminiClient_UpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte(`{"error":{"message":"quota exceeded"}}`))
	}))
	defer srv.Close()

	client := NewGeminiClient(testAIConfig(srv.URL), srv.Client())
	_, err := client.Complete(context.Background(), "", userMessage("hint please"))
	if err == nil {
		t.Fatal("expected error for non-200 response")
	}
	if !strings.Contains(err.Error(), "status 429") {
		t.Errorf("expected status in error, got: %v", err)
	}
}

func TestGeminiClient_NoCandidates(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"candidates":[]}`))
	}))
	defer srv.Close()

	client := NewGeminiClient(testAIConfig(srv.URL), srv.Client())
	if _, err := client.Complete(context.Background(), "", userMessage("hint please")); err == nil {
		t.Fatal("expected error for empty candidate list")
	}
}

func TestGeminiClient_ContextCancelled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	client := NewGeminiClient(testAIConfig(srv.URL), srv.Client())
	if _, err := client.Complete(ctx, "", userMessage("hint please")); err == nil {
		t.Fatal("expected error for cancelled context")
	}
}
