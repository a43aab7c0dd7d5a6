package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Token verification failures. Wrapped jwt library errors unwrap to these
// where the distinction matters to callers.
var (
	ErrTokenInvalid   = errors.New("invalid session token")
	ErrTokenMalformed = errors.New("malformed session token")
)

// Claims is the payload embedded in every session token: the user's id
// (registered "sub" claim), email, and role, plus issued-at and expiry.
type Claims struct {
	jwt.RegisteredClaims
	Email string `json:"email"`
	Role  string `json:"role"`
}

// TokenSigner is the session token capability injected into the auth
// service and the RequireAuth middleware. The concrete implementation is
// an HS256 JWT signer; substituting any other signed-token scheme only
// requires satisfying this interface.
type TokenSigner interface {
	// Issue creates a fresh signed token for the user, valid for the
	// configured lifetime. Returns the token and its expiry instant.
	Issue(user *User) (token string, expiresAt time.Time, err error)

	// Verify checks signature and expiry and returns the claims.
	Verify(token string) (*Claims, error)

	// DecodeUnsafe parses the claims WITHOUT verifying the signature.
	// Logout uses it to recover the expiry of a token it is about to
	// revoke; never use it for authorization decisions.
	DecodeUnsafe(token string) (*Claims, error)
}

// jwtSigner implements TokenSigner with HMAC-SHA256 and a server-held
// secret from configuration.
type jwtSigner struct {
	secret []byte
	ttl    time.Duration
}

// NewJWTSigner creates the production token signer. ttl is the fixed
// token lifetime (one hour in the deployed configuration).
func NewJWTSigner(secret string, ttl time.Duration) TokenSigner {
	return &jwtSigner{secret: []byte(secret), ttl: ttl}
}

func (s *jwtSigner) Issue(user *User) (string, time.Time, error) {
	now := time.Now()
	expiresAt := now.Add(s.ttl)

	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
		Email: user.Email,
		Role:  user.Role,
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("signing token: %w", err)
	}

	return token, expiresAt, nil
}

func (s *jwtSigner) Verify(tokenString string) (*Claims, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		// Reject tokens signed with anything but HMAC -- prevents the
		// classic alg-substitution attack.
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %q", t.Method.Alg())
		}
		return s.secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrTokenInvalid, err)
	}
	if !token.Valid {
		return nil, ErrTokenInvalid
	}

	return claims, nil
}

func (s *jwtSigner) DecodeUnsafe(tokenString string) (*Claims, error) {
	claims := &Claims{}

	// ParseUnverified never checks the signature; expired tokens decode
	// fine, which is exactly what logout needs.
	if _, _, err := jwt.NewParser().ParseUnverified(tokenString, claims); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrTokenMalformed, err)
	}
	if claims.ExpiresAt == nil {
		return nil, fmt.Errorf("%w: no expiry claim", ErrTokenMalformed)
	}

	return claims, nil
}
