package auth

import (
	"errors"
	"regexp"
)

// Validation failures are sentinel errors so callers (and tests) can tell
// the kinds apart. The service wraps them into client-facing 400s.
var (
	// ErrNoInput is returned when the registration payload is absent entirely.
	ErrNoInput = errors.New("no registration data provided")

	// ErrMissingField is returned when firstName, emailId, or password is
	// absent or empty.
	ErrMissingField = errors.New("required field missing: firstName, emailId and password are mandatory")

	// ErrInvalidEmail is returned when emailId is not local@domain.tld shaped.
	ErrInvalidEmail = errors.New("invalid email address")

	// ErrWeakPassword is returned when the password fails the strength rule:
	// at least 8 characters with an uppercase letter, a digit, and a special
	// character.
	ErrWeakPassword = errors.New("weak password: need 8+ characters with an uppercase letter, a digit and a special character")
)

// emailRe matches local@domain.tld shapes, case-insensitively: exactly one
// @, a non-empty local part, and a domain containing at least one dot.
var emailRe = regexp.MustCompile(`^(?i)[a-z0-9._%+-]+@[a-z0-9-]+(\.[a-z0-9-]+)+$`)

// validateRegistration enforces the registration input contract. Checks run
// in a fixed order -- presence, then email shape, then password strength --
// and the first failing check wins. Pure and deterministic; extra fields on
// the request are ignored.
func validateRegistration(req *RegisterRequest) error {
	if req == nil {
		return ErrNoInput
	}
	if req.FirstName == "" || req.Email == "" || req.Password == "" {
		return ErrMissingField
	}
	if !emailRe.MatchString(req.Email) {
		return ErrInvalidEmail
	}
	if !isStrongPassword(req.Password) {
		return ErrWeakPassword
	}
	return nil
}

// isStrongPassword reports whether the password is at least 8 characters
// and contains an uppercase letter, a digit, and a non-alphanumeric
// character.
func isStrongPassword(password string) bool {
	if len(password) < 8 {
		return false
	}
	var upper, digit, special bool
	for _, r := range password {
		switch {
		case r >= 'A' && r <= 'Z':
			upper = true
		case r >= '0' && r <= '9':
			digit = true
		case r >= 'a' && r <= 'z':
			// lowercase contributes length only
		default:
			special = true
		}
	}
	return upper && digit && special
}
