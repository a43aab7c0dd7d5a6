package auth

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/codeclimb/codeclimb/internal/apperror"
)

// sessionCookieName is the HTTP cookie used to store the session token.
const sessionCookieName = "token"

// Handler handles HTTP requests for authentication. Handlers are thin:
// they bind the request, call the service, and render the response. No
// business logic lives here.
type Handler struct {
	service AuthService

	// tokenTTL sizes the cookie max-age to match the token lifetime.
	tokenTTL time.Duration

	// secureCookies enables the Secure flag; true only in production
	// deployments where the API sits behind TLS.
	secureCookies bool
}

// NewHandler creates a new auth handler with the given service.
func NewHandler(service AuthService, tokenTTL time.Duration, secureCookies bool) *Handler {
	return &Handler{
		service:       service,
		tokenTTL:      tokenTTL,
		secureCookies: secureCookies,
	}
}

// Register creates a standard account (POST /user/register).
// Success is 201 with the user (no password hash) and a session cookie.
func (h *Handler) Register(c echo.Context) error {
	var req RegisterRequest
	if err := c.Bind(&req); err != nil {
		return apperror.NewBadRequest("invalid request body")
	}

	user, token, _, err := h.service.Register(c.Request().Context(), registerInput(&req))
	if err != nil {
		return err
	}

	h.setSessionCookie(c, token)

	return c.JSON(http.StatusCreated, map[string]any{
		"user":    user,
		"message": "Logged in successfully",
	})
}

// AdminRegister creates an administrator account (POST /user/admin/register).
// The route is reachable only through RequireAuth + RequireAdmin.
func (h *Handler) AdminRegister(c echo.Context) error {
	var req RegisterRequest
	if err := c.Bind(&req); err != nil {
		return apperror.NewBadRequest("invalid request body")
	}

	user, token, _, err := h.service.AdminRegister(c.Request().Context(), registerInput(&req))
	if err != nil {
		return err
	}

	h.setSessionCookie(c, token)

	return c.JSON(http.StatusCreated, map[string]any{
		"user":    user,
		"message": "Logged in successfully",
	})
}

// Login authenticates credentials (POST /user/login).
func (h *Handler) Login(c echo.Context) error {
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return apperror.NewBadRequest("invalid request body")
	}

	user, token, _, err := h.service.Login(c.Request().Context(), LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return err
	}

	h.setSessionCookie(c, token)

	return c.JSON(http.StatusCreated, map[string]any{
		"user":    user,
		"message": "Logged in successfully",
	})
}

// Logout revokes the session token and clears the cookie (POST /user/logout).
// The cookie is cleared even when revocation fails: a client holding a
// token the server couldn't blocklist should still drop it locally.
func (h *Handler) Logout(c echo.Context) error {
	token := h.sessionToken(c)

	err := h.service.Logout(c.Request().Context(), token)
	h.clearSessionCookie(c)
	if err != nil {
		return err
	}

	return c.String(http.StatusOK, "Logged Out Successfully")
}

// DeleteProfile removes the authenticated user's account
// (DELETE /user/deleteProfile). RequireAuth populates the identity.
func (h *Handler) DeleteProfile(c echo.Context) error {
	identity := GetIdentity(c)
	if identity == nil {
		return apperror.NewInternal(errMissingIdentity)
	}

	if err := h.service.DeleteProfile(c.Request().Context(), identity.UserID); err != nil {
		return err
	}

	h.clearSessionCookie(c)

	return c.String(http.StatusOK, "Deleted Successfully")
}

// Check returns the authenticated identity (GET /user/check). The React
// client calls it on load to restore a session from the cookie.
func (h *Handler) Check(c echo.Context) error {
	identity := GetIdentity(c)
	if identity == nil {
		return apperror.NewInternal(errMissingIdentity)
	}

	return c.JSON(http.StatusOK, map[string]any{
		"user":    identity,
		"message": "Valid User",
	})
}

// --- Cookie helpers ---

// sessionToken reads the session token from the cookie, or "" if absent.
func (h *Handler) sessionToken(c echo.Context) string {
	cookie, err := c.Cookie(sessionCookieName)
	if err != nil || cookie.Value == "" {
		return ""
	}
	return cookie.Value
}

// setSessionCookie sets the session cookie on the response. The cookie is
// HttpOnly (JS can't read it), Secure in production, SameSite=Lax, and
// lives exactly as long as the token it carries.
func (h *Handler) setSessionCookie(c echo.Context, token string) {
	c.SetCookie(&http.Cookie{
		Name:     sessionCookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Secure:   h.secureCookies,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   int(h.tokenTTL.Seconds()),
	})
}

// clearSessionCookie removes the session cookie by setting MaxAge to -1.
func (h *Handler) clearSessionCookie(c echo.Context) {
	c.SetCookie(&http.Cookie{
		Name:     sessionCookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		MaxAge:   -1,
	})
}

// registerInput maps a bound request to the service input.
func registerInput(req *RegisterRequest) RegisterInput {
	return RegisterInput{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Password:  req.Password,
		Age:       req.Age,
	}
}
