package ai

import (
	"github.com/labstack/echo/v4"
)

// RegisterRoutes sets up the doubt-solving routes under /ai. Every route
// requires an authenticated session.
func RegisterRoutes(e *echo.Echo, h *Handler, requireAuth echo.MiddlewareFunc) {
	g := e.Group("/ai", requireAuth)
	g.POST("/chat", h.Chat)
}
