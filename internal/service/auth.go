package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/nobih83-prog/Nashwa01/internal/auth"
	"github.com/nobih83-prog/Nashwa01/internal/domain"
	"github.com/nobih83-prog/Nashwa01/internal/storage"
	apperrors "github.com/nobih83-prog/Nashwa01/pkg/errors"
)

// LoginInput holds the credentials submitted on the login form.
type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=1,max=128"`
}

// LoginResult is the outcome of a successful login. Admin logins carry a
// bearer token for the dashboard routes.
type LoginResult struct {
	Session   domain.Session `json:"session"`
	Token     string         `json:"token,omitempty"`
	ExpiresAt *time.Time     `json:"expires_at,omitempty"`
}

// AuthService implements storefront login on top of the session store.
type AuthService struct {
	admin  *auth.AdminCredentials
	jwt    *auth.JWTManager
	logger *slog.Logger
}

// NewAuthService creates a new auth service.
func NewAuthService(admin *auth.AdminCredentials, jwt *auth.JWTManager, logger *slog.Logger) *AuthService {
	return &AuthService{admin: admin, jwt: jwt, logger: logger}
}

// Login signs the session in. The configured admin email must present the
// admin password; any other email is accepted as a customer.
func (s *AuthService) Login(ctx context.Context, kv storage.KV, input LoginInput) (*LoginResult, error) {
	result := &LoginResult{Session: domain.Session{Authenticated: true, Role: domain.RoleCustomer}}

	if s.admin.IsAdminEmail(input.Email) {
		if err := s.admin.Verify(input.Email, input.Password); err != nil {
			if errors.Is(err, auth.ErrInvalidCredentials) {
				s.logger.WarnContext(ctx, "admin login rejected")
				return nil, apperrors.Unauthorized("invalid email or password")
			}
			return nil, err
		}
		token, expiresAt, err := s.jwt.Generate(input.Email, domain.RoleAdmin)
		if err != nil {
			return nil, fmt.Errorf("generate admin token: %w", err)
		}
		result.Session.Role = domain.RoleAdmin
		result.Token = token
		result.ExpiresAt = &expiresAt
	}

	if err := s.saveSession(ctx, kv, result.Session); err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "session logged in", slog.String("role", result.Session.Role))
	return result, nil
}

// Logout clears the session's auth flag and role.
func (s *AuthService) Logout(ctx context.Context, kv storage.KV) error {
	if err := s.saveSession(ctx, kv, domain.Session{}); err != nil {
		return err
	}
	s.logger.InfoContext(ctx, "session logged out")
	return nil
}

// Session returns the persisted login state.
func (s *AuthService) Session(ctx context.Context, kv storage.KV) (domain.Session, error) {
	var sess domain.Session
	if _, err := kv.Load(ctx, AuthKey, &sess.Authenticated); err != nil {
		return domain.Session{}, fmt.Errorf("load auth flag: %w", err)
	}
	if _, err := kv.Load(ctx, RoleKey, &sess.Role); err != nil {
		return domain.Session{}, fmt.Errorf("load role: %w", err)
	}
	return sess, nil
}

func (s *AuthService) saveSession(ctx context.Context, kv storage.KV, sess domain.Session) error {
	if err := kv.Save(ctx, AuthKey, sess.Authenticated); err != nil {
		return fmt.Errorf("save auth flag: %w", err)
	}
	if err := kv.Save(ctx, RoleKey, sess.Role); err != nil {
		return fmt.Errorf("save role: %w", err)
	}
	return nil
}
