package app

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/codeclimb/codeclimb/internal/plugins/ai"
	"github.com/codeclimb/codeclimb/internal/plugins/auth"
)

// RegisterRoutes sets up all application routes. It constructs each
// plugin's dependency chain (repository, service, handler) and delegates
// to the plugin's route registration function.
//
// This is the single place where all routes are aggregated. When a new
// plugin is added, its routes are registered here.
func (a *App) RegisterRoutes() {
	e := a.Echo

	// Health check endpoint for Docker health monitoring.
	e.GET("/healthz", func(c echo.Context) error {
		if err := a.DB.PingContext(c.Request().Context()); err != nil {
			return c.JSON(http.StatusServiceUnavailable, map[string]string{"status": "database unreachable"})
		}
		if err := a.Redis.Ping(c.Request().Context()).Err(); err != nil {
			return c.JSON(http.StatusServiceUnavailable, map[string]string{"status": "redis unreachable"})
		}
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	// --- auth plugin ---
	signer := auth.NewJWTSigner(a.Config.Auth.JWTSecret, a.Config.Auth.TokenTTL)
	blocklist := auth.NewRedisBlocklist(a.Redis)
	authService := auth.NewAuthService(
		auth.NewUserRepository(a.DB),
		auth.NewBcryptHasher(),
		signer,
		blocklist,
	)
	authHandler := auth.NewHandler(authService, a.Config.Auth.TokenTTL, a.Config.IsProduction())
	requireAuth := auth.RegisterRoutes(e, authHandler, signer, blocklist)

	// --- ai plugin ---
	completer := ai.NewGeminiClient(a.Config.AI, nil)
	aiHandler := ai.NewHandler(ai.NewDoubtService(completer))
	ai.RegisterRoutes(e, aiHandler, requireAuth)
}
