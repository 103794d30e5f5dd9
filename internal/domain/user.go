package domain

import (
	"strings"
	"time"
)

// Roles a user can hold. At most one admin account may exist system-wide;
// that rule is enforced at registration time by the store.
const (
	RoleAdmin  = "admin"
	RoleAuthor = "author"
	RoleUser   = "user"
)

// ValidRole reports whether r is one of the enumerated roles.
func ValidRole(r string) bool {
	switch strings.ToLower(r) {
	case RoleAdmin, RoleAuthor, RoleUser:
		return true
	}
	return false
}

// User represents a registered user in the system.
type User struct {
	ID           int64     `json:"id"          db:"id"`
	Username     string    `json:"username"    db:"username"`
	Email        string    `json:"email"       db:"email"`
	PasswordHash string    `json:"-"           db:"password"` // never serialized to JSON
	Role         string    `json:"role"        db:"role"`
	CreatedAt    time.Time `json:"created_at"  db:"created_at"`
}

// DisplayName returns the username, falling back to the email local-part
// when the username is absent.
func (u *User) DisplayName() string {
	return displayName(u.Username, u.Email)
}

// AuthUser is the resolved identity injected into request handlers.
// CarrierName records which transport slot (cookie name, or empty for the
// Authorization header) produced the token, so logout can expire it.
type AuthUser struct {
	ID          int64  `json:"id"`
	Username    string `json:"username"`
	Email       string `json:"email"`
	Role        string `json:"role"`
	CarrierName string `json:"carrier_name,omitempty"`
}

// DisplayName returns the username, falling back to the email local-part.
func (u *AuthUser) DisplayName() string {
	return displayName(u.Username, u.Email)
}

// IsAdmin reports whether the user holds the admin role.
func (u *AuthUser) IsAdmin() bool {
	return strings.EqualFold(u.Role, RoleAdmin)
}

func displayName(username, email string) string {
	if username != "" {
		return username
	}
	if at := strings.IndexByte(email, '@'); at > 0 {
		return email[:at]
	}
	return email
}
