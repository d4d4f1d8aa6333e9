package auth

import (
	"crypto/subtle"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// BcryptCost is the cost factor for bcrypt password hashing.
const BcryptCost = 12

// ErrInvalidCredentials is returned when an email/password pair does not
// match the configured admin account.
var ErrInvalidCredentials = errors.New("invalid email or password")

// HashPassword returns the bcrypt hash of password.
func HashPassword(password string, cost int) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

// AdminCredentials holds the single configured admin account.
type AdminCredentials struct {
	email        string
	passwordHash []byte
}

// NewAdminCredentials validates the configured hash and returns the
// credentials. An empty email disables admin login.
func NewAdminCredentials(email, passwordHash string) (*AdminCredentials, error) {
	if email == "" {
		return &AdminCredentials{}, nil
	}
	if _, err := bcrypt.Cost([]byte(passwordHash)); err != nil {
		return nil, fmt.Errorf("admin password hash: %w", err)
	}
	return &AdminCredentials{
		email:        strings.ToLower(strings.TrimSpace(email)),
		passwordHash: []byte(passwordHash),
	}, nil
}

// Enabled reports whether an admin account is configured.
func (c *AdminCredentials) Enabled() bool {
	return c.email != ""
}

// IsAdminEmail reports whether email names the admin account.
func (c *AdminCredentials) IsAdminEmail(email string) bool {
	if !c.Enabled() {
		return false
	}
	normalized := strings.ToLower(strings.TrimSpace(email))
	return subtle.ConstantTimeCompare([]byte(normalized), []byte(c.email)) == 1
}

// Verify checks email and password against the admin account.
func (c *AdminCredentials) Verify(email, password string) error {
	if !c.IsAdminEmail(email) {
		return ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword(c.passwordHash, []byte(password)); err != nil {
		return ErrInvalidCredentials
	}
	return nil
}
