package ai

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/codeclimb/codeclimb/internal/apperror"
	"github.com/codeclimb/codeclimb/internal/sanitize"
)

// unavailableMessage is the single user-facing message for any upstream
// failure. The real cause stays in the logs.
const unavailableMessage = "AI service temporarily unavailable. Please try again."

// DoubtService answers questions about a coding problem through a tutoring
// completion model.
type DoubtService interface {
	// Solve generates a tutor answer for the conversation, scoped to the
	// problem described by the request's context fields.
	Solve(ctx context.Context, req *ChatRequest) (string, error)
}

type doubtService struct {
	completer TextCompleter
}

// NewDoubtService creates a doubt-solving service over the given completer.
func NewDoubtService(completer TextCompleter) DoubtService {
	return &doubtService{completer: completer}
}

func (s *doubtService) Solve(ctx context.Context, req *ChatRequest) (string, error) {
	if req == nil || len(req.Messages) == 0 || strings.TrimSpace(req.Title) == "" {
		return "", apperror.NewBadRequest("Missing required fields: messages and title")
	}

	answer, err := s.completer.Complete(ctx, buildSystemPrompt(req), req.Messages)
	if err != nil {
		slog.Error("doubt completion failed",
			slog.String("title", req.Title),
			slog.Any("error", err),
		)
		return "", apperror.NewServiceUnavailable(unavailableMessage, err)
	}

	return answer, nil
}

// buildSystemPrompt frames the model as a tutor restricted to the current
// problem. Problem fields are sanitized before interpolation so user HTML
// never reaches the prompt.
func buildSystemPrompt(req *ChatRequest) string {
	return fmt.Sprintf(`You are an expert Data Structures and Algorithms (DSA) tutor helping a student with a coding problem.

CURRENT PROBLEM CONTEXT:
[PROBLEM_TITLE]: %s
[PROBLEM_DESCRIPTION]: %s
[EXAMPLES]: %s
[START_CODE]: %s

YOUR ROLE:
1. Help the student understand the current problem.
2. Give hints that guide them toward the solution without revealing it outright unless they explicitly ask for the full solution.
3. Review and debug the student's code when they share it.
4. Explain the optimal approach step by step, including time and space complexity, when asked.

STRICT LIMITATIONS:
- Only discuss the current problem. Politely refuse anything unrelated to it.
- If asked about other topics, respond: "I can only help with questions related to the current problem."

RESPONSE STYLE:
- Be encouraging and clear.
- Use simple language suited to the student's level.
- Format code snippets properly.`,
		promptField(req.Title),
		promptField(req.Description),
		promptField(req.TestCases),
		promptField(req.StartCode),
	)
}

// promptField sanitizes a problem field, substituting a placeholder when
// the client sent nothing.
func promptField(value string) string {
	cleaned := sanitize.Text(value)
	if cleaned == "" {
		return "Not provided"
	}
	return cleaned
}
