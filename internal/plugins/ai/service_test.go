package ai

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/codeclimb/codeclimb/internal/apperror"
)

// mockCompleter records the prompt it was handed.
type mockCompleter struct {
	completeFn  func(ctx context.Context, instruction string, messages []ChatMessage) (string, error)
	calls       int
	instruction string
}

func (m *mockCompleter) Complete(ctx context.Context, instruction string, messages []ChatMessage) (string, error) {
	m.calls++
	m.instruction = instruction
	if m.completeFn != nil {
		return m.completeFn(ctx, instruction, messages)
	}
	return "mock answer", nil
}

func assertAppError(t *testing.T, err error, expectedCode int) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected error with code %d, got nil", expectedCode)
	}
	var appErr *apperror.AppError
	if !errors.As(err, &appErr) {
		t.Fatalf("expected *apperror.AppError, got %T: %v", err, err)
	}
	if appErr.Code != expectedCode {
		t.Errorf("expected status %d, got %d (message: %s)", expectedCode, appErr.Code, appErr.Message)
	}
}

func validChatRequest() *ChatRequest {
	return &ChatRequest{
		Messages:    userMessage("How should I approach this?"),
		Title:       "Two Sum",
		Description: "Find two numbers that add up to the target.",
		TestCases:   "[2,7,11,15], target 9 -> [0,1]",
		StartCode:   "func twoSum(nums []int, target int) []int {}",
	}
}

func TestSolve_Success(t *testing.T) {
	completer := &mockCompleter{}
	svc := NewDoubtService(completer)

	answer, err := svc.Solve(context.Background(), validChatRequest())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if answer != "mock answer" {
		t.Errorf("unexpected answer: %s", answer)
	}
	if completer.calls != 1 {
		t.Errorf("expected 1 completion call, got %d", completer.calls)
	}

	for _, want := range []string{
		"[PROBLEM_TITLE]: Two Sum",
		"[PROBLEM_DESCRIPTION]: Find two numbers that add up to the target.",
		"[EXAMPLES]: [2,7,11,15], target 9",
		"DSA",
	} {
		if !strings.Contains(completer.instruction, want) {
			t.Errorf("system prompt missing %q:\n%s", want, completer.instruction)
		}
	}
}

func TestSolve_MissingFields(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*ChatRequest)
	}{
		{"no messages", func(r *ChatRequest) { r.Messages = nil }},
		{"empty messages", func(r *ChatRequest) { r.Messages = []ChatMessage{} }},
		{"no title", func(r *ChatRequest) { r.Title = "" }},
		{"blank title", func(r *ChatRequest) { r.Title = "   " }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			completer := &mockCompleter{}
			svc := NewDoubtService(completer)

			req := validChatRequest()
			tt.mutate(req)

			_, err := svc.Solve(context.Background(), req)
			assertAppError(t, err, 400)
			if completer.calls != 0 {
				t.Error("expected no upstream call for an invalid request")
			}
		})
	}
}

func TestSolve_NilRequest(t *testing.T) {
	svc := NewDoubtService(&mockCompleter{})
	_, err := svc.Solve(context.Background(), nil)
	assertAppError(t, err, 400)
}

// Optional problem fields fall back to a placeholder in the prompt.
func TestSolve_PlaceholderFields(t *testing.T) {
	completer := &mockCompleter{}
	svc := NewDoubtService(completer)

	req := &ChatRequest{
		Messages: userMessage("hint please"),
		Title:    "Two Sum",
	}
	if _, err := svc.Solve(context.Background(), req); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !strings.Contains(completer.instruction, "[PROBLEM_DESCRIPTION]: Not provided") {
		t.Error("expected placeholder for missing description")
	}
	if !strings.Contains(completer.instruction, "[START_CODE]: Not provided") {
		t.Error("expected placeholder for missing start code")
	}
}

// HTML in problem fields is stripped before it reaches the prompt.
func TestSolve_SanitizesProblemFields(t *testing.T) {
	completer := &mockCompleter{}
	svc := NewDoubtService(completer)

	req := validChatRequest()
	req.Description = `<script>alert("x")</script>Find the pair.`
	if _, err := svc.Solve(context.Background(), req); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if strings.Contains(completer.instruction, "<script>") {
		t.Error("expected script tags to be stripped from the prompt")
	}
	if !strings.Contains(completer.instruction, "Find the pair.") {
		t.Error("expected the text content to survive sanitization")
	}
}

func TestSolve_CompleterFailure(t *testing.T) {
	completer := &mockCompleter{
		completeFn: func(ctx context.Context, instruction string, messages []ChatMessage) (string, error) {
			return "", errors.New("completion api returned status 500")
		},
	}
	svc := NewDoubtService(completer)

	_, err := svc.Solve(context.Background(), validChatRequest())
	assertAppError(t, err, 503)

	var appErr *apperror.AppError
	if errors.As(err, &appErr) && appErr.Message != unavailableMessage {
		t.Errorf("unexpected user-facing message: %s", appErr.Message)
	}
}
