package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/codeclimb/codeclimb/internal/apperror"
	"github.com/codeclimb/codeclimb/internal/sanitize"
)

// AuthService defines the business logic contract for the session
// lifecycle. Handlers call these methods -- they never touch the
// repository, hasher, signer, or blocklist directly.
type AuthService interface {
	// Register creates an account with the standard role and issues a
	// session token.
	Register(ctx context.Context, input RegisterInput) (*User, string, time.Time, error)

	// AdminRegister is Register with the administrator role forced. Route
	// authorization (admin-only) is enforced by middleware, not here.
	AdminRegister(ctx context.Context, input RegisterInput) (*User, string, time.Time, error)

	// Login authenticates credentials and issues a fresh session token.
	Login(ctx context.Context, input LoginInput) (*User, string, time.Time, error)

	// Logout revokes the given token by blocklisting it until its own
	// expiry instant.
	Logout(ctx context.Context, token string) error

	// DeleteProfile removes the account identified by the authenticated
	// caller's user id.
	DeleteProfile(ctx context.Context, userID string) error
}

// authService implements AuthService over injected capabilities: the user
// store, the bcrypt hasher, the JWT signer, and the Redis blocklist.
type authService struct {
	repo      UserRepository
	hasher    Hasher
	signer    TokenSigner
	blocklist Blocklist
}

// NewAuthService creates a new auth service with the given dependencies.
func NewAuthService(repo UserRepository, hasher Hasher, signer TokenSigner, blocklist Blocklist) AuthService {
	return &authService{
		repo:      repo,
		hasher:    hasher,
		signer:    signer,
		blocklist: blocklist,
	}
}

func (s *authService) Register(ctx context.Context, input RegisterInput) (*User, string, time.Time, error) {
	return s.register(ctx, input, RoleUser)
}

func (s *authService) AdminRegister(ctx context.Context, input RegisterInput) (*User, string, time.Time, error) {
	return s.register(ctx, input, RoleAdmin)
}

// register runs the shared registration flow: validate, hash, persist,
// issue token. Validation and persistence rejections surface as 400s --
// they stem from the caller's input, not from a server fault.
func (s *authService) register(ctx context.Context, input RegisterInput, role string) (*User, string, time.Time, error) {
	req := &RegisterRequest{
		FirstName: input.FirstName,
		LastName:  input.LastName,
		Email:     input.Email,
		Password:  input.Password,
		Age:       input.Age,
	}
	if err := validateRegistration(req); err != nil {
		return nil, "", time.Time{}, apperror.NewBadRequest(err.Error())
	}

	hash, err := s.hasher.Hash(input.Password)
	if err != nil {
		return nil, "", time.Time{}, apperror.NewInternal(fmt.Errorf("hashing password: %w", err))
	}

	user := &User{
		ID:           uuid.NewString(),
		FirstName:    sanitize.Text(input.FirstName),
		Email:        strings.ToLower(strings.TrimSpace(input.Email)),
		PasswordHash: hash,
		Role:         role,
		Age:          input.Age,
		CreatedAt:    time.Now().UTC(),
	}
	if input.LastName != nil {
		last := sanitize.Text(*input.LastName)
		user.LastName = &last
	}

	if err := s.repo.Create(ctx, user); err != nil {
		// Duplicate email and any other insert rejection both map to 400:
		// the store refused the row because of what the client sent.
		var appErr *apperror.AppError
		if errors.As(err, &appErr) && appErr.Code == 409 {
			return nil, "", time.Time{}, apperror.NewBadRequest(appErr.Message)
		}
		slog.Warn("registration rejected by store",
			slog.String("email", user.Email),
			slog.Any("error", err),
		)
		return nil, "", time.Time{}, apperror.NewBadRequest("registration failed")
	}

	token, expiresAt, err := s.signer.Issue(user)
	if err != nil {
		return nil, "", time.Time{}, apperror.NewInternal(fmt.Errorf("issuing token: %w", err))
	}

	slog.Info("user registered",
		slog.String("user_id", user.ID),
		slog.String("email", user.Email),
		slog.String("role", user.Role),
	)

	return user, token, expiresAt, nil
}

func (s *authService) Login(ctx context.Context, input LoginInput) (*User, string, time.Time, error) {
	if input.Email == "" || input.Password == "" {
		return nil, "", time.Time{}, apperror.NewUnauthorized("email and password are required")
	}

	user, err := s.repo.FindByEmail(ctx, strings.ToLower(strings.TrimSpace(input.Email)))
	if err != nil {
		// Unknown email short-circuits before any password comparison.
		// Don't reveal whether the email exists -- use a generic message.
		var appErr *apperror.AppError
		if errors.As(err, &appErr) && appErr.Code == 404 {
			return nil, "", time.Time{}, apperror.NewUnauthorized("invalid credentials")
		}
		return nil, "", time.Time{}, apperror.NewInternal(fmt.Errorf("finding user: %w", err))
	}

	if !s.hasher.Compare(user.PasswordHash, input.Password) {
		return nil, "", time.Time{}, apperror.NewUnauthorized("invalid credentials")
	}

	token, expiresAt, err := s.signer.Issue(user)
	if err != nil {
		return nil, "", time.Time{}, apperror.NewInternal(fmt.Errorf("issuing token: %w", err))
	}

	slog.Info("user logged in",
		slog.String("user_id", user.ID),
		slog.String("email", user.Email),
	)

	return user, token, expiresAt, nil
}

// Logout revokes the token via the blocklist. Every failure here is a 503:
// the session cannot be revoked right now, and the caller should retry.
// The handler clears the client cookie regardless; the blocklist write and
// the cookie-clear are not atomic with each other.
func (s *authService) Logout(ctx context.Context, token string) error {
	if token == "" {
		return apperror.NewServiceUnavailable("no session token present", nil)
	}

	// Decode without signature verification: all logout needs is the
	// expiry instant to bound the blocklist entry's lifetime.
	claims, err := s.signer.DecodeUnsafe(token)
	if err != nil {
		return apperror.NewServiceUnavailable("malformed session token", err)
	}

	if err := s.blocklist.Block(ctx, token, claims.ExpiresAt.Time); err != nil {
		return apperror.NewServiceUnavailable("could not revoke session", err)
	}

	slog.Info("user logged out", slog.String("user_id", claims.Subject))

	return nil
}

func (s *authService) DeleteProfile(ctx context.Context, userID string) error {
	if userID == "" {
		return apperror.NewInternal(errors.New("no authenticated identity on request"))
	}

	if err := s.repo.Delete(ctx, userID); err != nil {
		return apperror.NewInternal(fmt.Errorf("deleting profile: %w", err))
	}

	slog.Info("user deleted", slog.String("user_id", userID))

	return nil
}
