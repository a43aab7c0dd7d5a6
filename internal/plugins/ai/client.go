package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/codeclimb/codeclimb/internal/config"
)

// TextCompleter generates a completion for a conversation under a system
// instruction. The service depends on this interface so tests can swap the
// real Gemini client for a stub.
type TextCompleter interface {
	Complete(ctx context.Context, systemInstruction string, messages []ChatMessage) (string, error)
}

// geminiClient calls the Gemini generateContent REST endpoint.
type geminiClient struct {
	httpClient      *http.Client
	baseURL         string
	model           string
	apiKey          string
	temperature     float64
	maxOutputTokens int
}

// NewGeminiClient creates a TextCompleter backed by the Gemini REST API.
// Pass nil to use a default http.Client bounded by the configured timeout.
func NewGeminiClient(cfg config.AIConfig, httpClient *http.Client) TextCompleter {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}
	return &geminiClient{
		httpClient:      httpClient,
		baseURL:         strings.TrimRight(cfg.BaseURL, "/"),
		model:           cfg.Model,
		apiKey:          cfg.APIKey,
		temperature:     cfg.Temperature,
		maxOutputTokens: cfg.MaxOutputTokens,
	}
}

// Gemini generateContent wire types. Only the fields we read or write.
type generateContentRequest struct {
	Contents          []ChatMessage      `json:"contents"`
	SystemInstruction *systemInstruction `json:"system_instruction,omitempty"`
	GenerationConfig  generationConfig   `json:"generationConfig"`
}

type systemInstruction struct {
	Parts []ChatPart `json:"parts"`
}

type generationConfig struct {
	Temperature     float64 `json:"temperature"`
	MaxOutputTokens int     `json:"maxOutputTokens"`
}

type generateContentResponse struct {
	Candidates []struct {
		Content struct {
			Parts []ChatPart `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

func (g *geminiClient) Complete(ctx context.Context, instruction string, messages []ChatMessage) (string, error) {
	payload := generateContentRequest{
		Contents: messages,
		GenerationConfig: generationConfig{
			Temperature:     g.temperature,
			MaxOutputTokens: g.maxOutputTokens,
		},
	}
	if instruction != "" {
		payload.SystemInstruction = &systemInstruction{
			Parts: []ChatPart{{Text: instruction}},
		}
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("encoding request: %w", err)
	}

	url := fmt.Sprintf("%s/models/%s:generateContent", g.baseURL, g.model)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", g.apiKey)

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("calling completion api: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		// Read a bounded slice of the body for the error message; upstream
		// error payloads are small but not trusted.
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", fmt.Errorf("completion api returned status %d: %s", resp.StatusCode, strings.TrimSpace(string(msg)))
	}

	var out generateContentResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("decoding response: %w", err)
	}

	if len(out.Candidates) == 0 || len(out.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("completion api returned no candidates")
	}

	var sb strings.Builder
	for _, part := range out.Candidates[0].Content.Parts {
		sb.WriteString(part.Text)
	}
	text := sb.String()
	if text == "" {
		return "", fmt.Errorf("completion api returned an empty answer")
	}
	return text, nil
}
