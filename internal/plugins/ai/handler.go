package ai

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/codeclimb/codeclimb/internal/apperror"
)

// Handler handles HTTP requests for the doubt-solving chat.
type Handler struct {
	service DoubtService
}

// NewHandler creates a new ai handler with the given service.
func NewHandler(service DoubtService) *Handler {
	return &Handler{service: service}
}

// Chat answers a doubt about the current problem (POST /ai/chat). Unlike
// the rest of the API this endpoint shapes its own errors: the client
// renders the message verbatim in the chat window, so upstream failures
// must arrive as a well-formed chat payload rather than the generic error
// envelope.
func (h *Handler) Chat(c echo.Context) error {
	var req ChatRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{
			"message": "invalid request body",
		})
	}

	answer, err := h.service.Solve(c.Request().Context(), &req)
	if err != nil {
		var appErr *apperror.AppError
		if errors.As(err, &appErr) && appErr.Code == http.StatusBadRequest {
			return c.JSON(http.StatusBadRequest, map[string]any{
				"message": appErr.Message,
			})
		}
		return c.JSON(http.StatusInternalServerError, ChatResponse{
			Success: false,
			Message: unavailableMessage,
		})
	}

	return c.JSON(http.StatusOK, ChatResponse{
		Success: true,
		Message: answer,
	})
}
