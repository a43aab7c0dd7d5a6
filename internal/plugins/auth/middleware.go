package auth

import (
	"errors"

	"github.com/labstack/echo/v4"

	"github.com/codeclimb/codeclimb/internal/apperror"
)

// Context keys for storing the authenticated identity in Echo context.
// Other plugins use these keys (via the exported getters below) to access
// the caller's information.
const (
	contextKeyIdentity = "auth_identity"
	contextKeyUserID   = "auth_user_id"
)

// errMissingIdentity signals a handler ran behind RequireAuth but found no
// identity in context -- a wiring bug, not a client error.
var errMissingIdentity = errors.New("no authenticated identity on request")

// RequireAuth returns middleware enforcing the session invariant: the
// token must verify cryptographically, must be unexpired, and must have no
// blocklist entry. All three checks pass or the request is rejected. On
// success the identity is injected into the request context.
func RequireAuth(signer TokenSigner, blocklist Blocklist) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			cookie, err := c.Cookie(sessionCookieName)
			if err != nil || cookie.Value == "" {
				return apperror.NewUnauthorized("authentication required")
			}
			token := cookie.Value

			claims, err := signer.Verify(token)
			if err != nil {
				return apperror.NewUnauthorized("invalid or expired session")
			}

			blocked, err := blocklist.Contains(c.Request().Context(), token)
			if err != nil {
				// Can't prove the token wasn't revoked -- fail closed.
				return apperror.NewServiceUnavailable("session check unavailable", err)
			}
			if blocked {
				return apperror.NewUnauthorized("session revoked")
			}

			c.Set(contextKeyIdentity, &Identity{
				UserID: claims.Subject,
				Email:  claims.Email,
				Role:   claims.Role,
			})
			c.Set(contextKeyUserID, claims.Subject)

			return next(c)
		}
	}
}

// RequireAdmin returns middleware restricting a route to administrator
// accounts. Must run after RequireAuth.
func RequireAdmin() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			identity := GetIdentity(c)
			if identity == nil {
				return apperror.NewUnauthorized("authentication required")
			}
			if identity.Role != RoleAdmin {
				return apperror.NewForbidden("administrator access required")
			}
			return next(c)
		}
	}
}

// --- Exported getters for other plugins ---

// GetIdentity retrieves the authenticated identity from the Echo context.
// Returns nil if the request is not authenticated (middleware not applied).
func GetIdentity(c echo.Context) *Identity {
	identity, ok := c.Get(contextKeyIdentity).(*Identity)
	if !ok {
		return nil
	}
	return identity
}

// GetUserID retrieves the authenticated user's ID from the Echo context.
// Returns empty string if the request is not authenticated.
func GetUserID(c echo.Context) string {
	id, ok := c.Get(contextKeyUserID).(string)
	if !ok {
		return ""
	}
	return id
}
