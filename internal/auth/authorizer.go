package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/quillblog/quill/internal/domain"
	"github.com/quillblog/quill/internal/port"
)

// Authorizer enforces role allow-lists and resource-ownership rules on top
// of an Authenticator.
type Authorizer struct {
	authn *Authenticator
	posts port.OwnershipStore
}

// NewAuthorizer constructs an Authorizer over explicit store handles.
func NewAuthorizer(authn *Authenticator, posts port.OwnershipStore) *Authorizer {
	return &Authorizer{authn: authn, posts: posts}
}

// Authenticator exposes the underlying authenticator.
func (a *Authorizer) Authenticator() *Authenticator {
	return a.authn
}

// RequireRole authenticates the request and checks the user's role against
// the allow-list (case-insensitive). Authentication failures surface as-is,
// so a caller with no valid token gets a 401 and never a 403.
func (a *Authorizer) RequireRole(ctx context.Context, authorization string, cookies []Carrier, allowed ...string) (*domain.AuthUser, error) {
	user, err := a.authn.Authenticate(ctx, authorization, cookies)
	if err != nil {
		return nil, err
	}
	for _, r := range allowed {
		if strings.EqualFold(user.Role, r) {
			return user, nil
		}
	}
	return nil, port.ErrRoleDenied
}

// CanModifyPost reports whether the user may modify the post. Admins always
// may; anyone else must match the post's stored author id, re-derived from
// storage on every call. A nonexistent post yields false, never an error.
func (a *Authorizer) CanModifyPost(ctx context.Context, postID, userID int64, role string) (bool, error) {
	if strings.EqualFold(role, domain.RoleAdmin) {
		return true, nil
	}
	authorID, err := a.posts.FindPostAuthor(ctx, postID)
	if err != nil {
		if errors.Is(err, port.ErrPostNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("find post author: %w", err)
	}
	return authorID == userID, nil
}

// OwnershipError is returned when a non-owner attempts to modify a post.
// It names the actual owner for the client-facing message.
type OwnershipError struct {
	OwnerName string
	Role      string
}

func (e *OwnershipError) Error() string {
	return fmt.Sprintf("Forbidden: You can only modify your own posts. This post belongs to %s", e.OwnerName)
}

// Unwrap makes the error match port.ErrOwnershipDenied under errors.Is.
func (e *OwnershipError) Unwrap() error {
	return port.ErrOwnershipDenied
}

// AuthorizePostModification composes the full check for a mutating post
// operation: admin or author role, post existence, then ownership.
func (a *Authorizer) AuthorizePostModification(ctx context.Context, authorization string, cookies []Carrier, postID int64) (*domain.AuthUser, error) {
	user, err := a.RequireRole(ctx, authorization, cookies, domain.RoleAdmin, domain.RoleAuthor)
	if err != nil {
		return nil, err
	}

	exists, err := a.posts.PostExists(ctx, postID)
	if err != nil {
		return nil, fmt.Errorf("check post exists: %w", err)
	}
	if !exists {
		return nil, port.ErrPostNotFound
	}

	ok, err := a.CanModifyPost(ctx, postID, user.ID, user.Role)
	if err != nil {
		return nil, err
	}
	if !ok {
		ownerName := "Unknown"
		if owner, oerr := a.posts.FindPostOwner(ctx, postID); oerr == nil && owner != nil {
			ownerName = owner.DisplayName()
		}
		return nil, &OwnershipError{OwnerName: ownerName, Role: user.Role}
	}
	return user, nil
}
