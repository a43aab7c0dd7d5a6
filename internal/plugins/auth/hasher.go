package auth

import (
	"golang.org/x/crypto/bcrypt"
)

// bcryptCost matches the cost factor the platform has always used. Changing
// it only affects newly created hashes; existing hashes verify regardless.
const bcryptCost = 10

// Hasher is the password hashing capability injected into the auth service.
// Kept as an interface so tests can substitute a cheap implementation.
type Hasher interface {
	// Hash returns a salted one-way hash of the password.
	Hash(password string) (string, error)

	// Compare reports whether the password matches the stored hash.
	Compare(hash, password string) bool
}

// bcryptHasher implements Hasher with golang.org/x/crypto/bcrypt.
type bcryptHasher struct{}

// NewBcryptHasher returns the production password hasher.
func NewBcryptHasher() Hasher {
	return bcryptHasher{}
}

func (bcryptHasher) Hash(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func (bcryptHasher) Compare(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
