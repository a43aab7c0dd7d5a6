package auth

import (
	"time"

	"github.com/labstack/echo/v4"

	"github.com/codeclimb/codeclimb/internal/middleware"
)

// RegisterRoutes sets up all auth routes under /user. Register and login
// are public; the rest sit behind RequireAuth. The RequireAuth middleware
// is built here once and shared with other plugins via the return value.
//
// Credential endpoints are rate-limited to slow brute-force and credential
// stuffing: 10 attempts per IP per minute for login, 5 for register.
func RegisterRoutes(e *echo.Echo, h *Handler, signer TokenSigner, blocklist Blocklist) echo.MiddlewareFunc {
	requireAuth := RequireAuth(signer, blocklist)

	g := e.Group("/user")
	g.POST("/register", h.Register, middleware.RateLimit(5, time.Minute))
	g.POST("/login", h.Login, middleware.RateLimit(10, time.Minute))
	g.POST("/logout", h.Logout)
	g.GET("/check", h.Check, requireAuth)
	g.DELETE("/deleteProfile", h.DeleteProfile, requireAuth)

	// Admin-only: creating accounts with the administrator role.
	g.POST("/admin/register", h.AdminRegister, requireAuth, RequireAdmin())

	return requireAuth
}
