package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/quillblog/quill/internal/domain"
	"github.com/quillblog/quill/internal/port"
)

// Authenticator resolves an inbound request to a verified user. The user
// row is re-fetched on every call: a cryptographically valid token whose
// subject no longer exists is rejected (fail-closed).
type Authenticator struct {
	codec *TokenCodec
	users port.CredentialStore
}

// NewAuthenticator constructs an Authenticator over an explicit credential
// store handle.
func NewAuthenticator(codec *TokenCodec, users port.CredentialStore) *Authenticator {
	return &Authenticator{codec: codec, users: users}
}

// Authenticate locates a token among the request's carriers, verifies it
// and resolves the subject against the credential store.
//
// Failures are port.ErrNoToken, port.ErrInvalidToken or port.ErrUserNotFound;
// the boundary renders all three as one indistinguishable 401.
func (a *Authenticator) Authenticate(ctx context.Context, authorization string, cookies []Carrier) (*domain.AuthUser, error) {
	raw, carrierName, ok := Locate(authorization, cookies)
	if !ok {
		return nil, port.ErrNoToken
	}

	claims, err := a.codec.Verify(raw)
	if err != nil {
		return nil, err
	}
	if claims.UserID <= 0 {
		return nil, port.ErrInvalidToken
	}

	u, err := a.users.FindUserByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, port.ErrUserNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("fetch user %d: %w", claims.UserID, err)
	}

	role := u.Role
	if role == "" {
		role = domain.RoleUser
	}
	return &domain.AuthUser{
		ID:          u.ID,
		Username:    u.DisplayName(),
		Email:       u.Email,
		Role:        role,
		CarrierName: carrierName,
	}, nil
}
