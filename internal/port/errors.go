package port

import "errors"

// Sentinel errors used across ports. The first three all surface to the
// client as a single 401 so a caller cannot probe which step failed.
var (
	ErrNoToken      = errors.New("no token present")
	ErrInvalidToken = errors.New("token invalid")
	ErrUserNotFound = errors.New("user not found")

	ErrRoleDenied      = errors.New("role not permitted")
	ErrOwnershipDenied = errors.New("not the resource owner")

	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrNoActiveSession    = errors.New("no active session")

	ErrPostNotFound     = errors.New("post not found")
	ErrCategoryNotFound = errors.New("category not found")
	ErrCommentNotFound  = errors.New("comment not found")
	ErrLikeNotFound     = errors.New("like not found")

	ErrDuplicate   = errors.New("already exists")
	ErrAdminExists = errors.New("an admin account already exists")
)
