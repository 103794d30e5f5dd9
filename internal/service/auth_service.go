// Package service contains the application services sitting between the
// HTTP handlers and the store ports.
package service

import (
	"context"
	"fmt"
	"log/slog"
	"net/mail"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/quillblog/quill/internal/auth"
	"github.com/quillblog/quill/internal/domain"
	"github.com/quillblog/quill/internal/port"
)

// AuthService handles registration and the session lifecycle.
type AuthService struct {
	users port.CredentialStore
	codec *auth.TokenCodec
	authn *auth.Authenticator
}

// NewAuthService constructs an AuthService.
func NewAuthService(users port.CredentialStore, codec *auth.TokenCodec, authn *auth.Authenticator) *AuthService {
	return &AuthService{users: users, codec: codec, authn: authn}
}

// ValidationError carries a client-facing 400 message.
type ValidationError struct{ Msg string }

func (e *ValidationError) Error() string { return e.Msg }

// Register creates a new user. Role defaults to "user"; at most one admin
// account may exist, so a second admin registration is rejected.
func (s *AuthService) Register(ctx context.Context, username, email, password, role string) (*domain.User, error) {
	username = strings.TrimSpace(username)
	email = strings.TrimSpace(email)
	password = strings.TrimSpace(password)

	if username == "" || email == "" || password == "" {
		return nil, &ValidationError{Msg: "All fields are required"}
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, &ValidationError{Msg: "Invalid email format"}
	}
	if len(password) < 6 {
		return nil, &ValidationError{Msg: "Password must be at least 6 characters long"}
	}
	if role == "" {
		role = domain.RoleUser
	}
	role = strings.ToLower(role)
	if !domain.ValidRole(role) {
		return nil, &ValidationError{Msg: "Invalid role"}
	}

	if role == domain.RoleAdmin {
		n, err := s.users.CountUsersByRole(ctx, domain.RoleAdmin)
		if err != nil {
			return nil, fmt.Errorf("count admins: %w", err)
		}
		if n > 0 {
			return nil, port.ErrAdminExists
		}
	}

	exists, err := s.users.UserExists(ctx, username, email)
	if err != nil {
		return nil, fmt.Errorf("check duplicates: %w", err)
	}
	if exists {
		return nil, port.ErrDuplicate
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user, err := s.users.CreateUser(ctx, &domain.User{
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
	})
	if err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}

	slog.Info("user registered", "user_id", user.ID, "role", user.Role)
	return user, nil
}

// Login verifies the credentials and issues a signed token plus the cookie
// name the caller should set. bcrypt's comparison is constant-time; a
// missing user and a wrong password are indistinguishable to the client.
func (s *AuthService) Login(ctx context.Context, email, password string) (token, carrierName string, user *domain.User, err error) {
	email = strings.TrimSpace(email)
	password = strings.TrimSpace(password)
	if email == "" || password == "" {
		return "", "", nil, &ValidationError{Msg: "Email and password are required"}
	}

	u, err := s.users.FindUserByEmail(ctx, email)
	if err != nil {
		// mask lookup failures as bad credentials
		return "", "", nil, port.ErrInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) != nil {
		return "", "", nil, port.ErrInvalidCredentials
	}

	token, err = s.codec.Issue(u)
	if err != nil {
		return "", "", nil, fmt.Errorf("issue token: %w", err)
	}

	carrierName = auth.DeriveCarrierName(u.DisplayName(), u.Role)
	slog.Info("user logged in", "user_id", u.ID, "carrier", carrierName)
	return token, carrierName, u, nil
}

// Logout resolves the current session and reports which carrier cookie to
// expire. The token itself stays valid until expiry: there is no
// server-side revocation, only the cookie is cleared.
func (s *AuthService) Logout(ctx context.Context, authorization string, cookies []auth.Carrier) (string, error) {
	user, err := s.authn.Authenticate(ctx, authorization, cookies)
	if err != nil {
		return "", port.ErrNoActiveSession
	}
	slog.Info("user logged out", "user_id", user.ID, "carrier", user.CarrierName)
	return user.CarrierName, nil
}

// Me re-fetches the authenticated user's row.
func (s *AuthService) Me(ctx context.Context, userID int64) (*domain.User, error) {
	u, err := s.users.FindUserByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("fetch user: %w", err)
	}
	return u, nil
}
