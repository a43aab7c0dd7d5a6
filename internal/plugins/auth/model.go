// Package auth handles user accounts and session lifecycle for CodeClimb:
// registration, login, logout, and account deletion. Sessions are signed
// JWTs held in an HTTP-only cookie; logout revokes a token early by
// recording it in a Redis blocklist until its natural expiry.
//
// This is a CORE plugin -- always enabled, cannot be disabled.
package auth

import (
	"time"
)

// Roles a user account can hold. Admin accounts can create other accounts
// with elevated roles; everything else is identical.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User represents a registered CodeClimb user. This is the domain model used
// throughout the application. Database scanning and JSON marshaling use this
// struct directly.
type User struct {
	ID           string    `json:"id"`
	FirstName    string    `json:"firstName"`
	LastName     *string   `json:"lastName,omitempty"`
	Email        string    `json:"emailId"`
	PasswordHash string    `json:"-"` // Never expose in JSON responses.
	Role         string    `json:"role"`
	Age          *int      `json:"age,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
}

// --- Request DTOs (bound from HTTP requests) ---

// RegisterRequest holds the data submitted when creating an account. Field
// names match the React client's payload. Unknown extra fields are ignored
// by the JSON decoder.
type RegisterRequest struct {
	FirstName string  `json:"firstName"`
	LastName  *string `json:"lastName"`
	Email     string  `json:"emailId"`
	Password  string  `json:"password"`
	Age       *int    `json:"age"`
}

// LoginRequest holds the credentials submitted at login.
type LoginRequest struct {
	Email    string `json:"emailId"`
	Password string `json:"password"`
}

// --- Service Input DTOs (passed from handler to service) ---

// RegisterInput is the input for creating a new user.
type RegisterInput struct {
	FirstName string
	LastName  *string
	Email     string
	Password  string
	Age       *int
}

// LoginInput is the input for authenticating a user.
type LoginInput struct {
	Email    string
	Password string
}

// Identity is the authenticated caller attached to the request context by
// RequireAuth. It carries exactly what the session token encodes.
type Identity struct {
	UserID string `json:"id"`
	Email  string `json:"emailId"`
	Role   string `json:"role"`
}
