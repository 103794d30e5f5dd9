package auth

import (
	"strings"

	"github.com/quillblog/quill/internal/domain"
)

// Carrier is one transport slot that may hold a token: a named cookie, or
// the Authorization header (Name empty).
type Carrier struct {
	Name  string
	Value string
}

// Locate finds the best candidate token on a request and reports which
// carrier produced it. Precedence, first match wins:
//
//  1. "Bearer <token>" in the Authorization header (case-insensitive prefix).
//  2. A cookie whose name contains "admintoken" (case-insensitive).
//  3. A cookie whose name contains "token" (case-insensitive).
//
// Cookies are dynamically named per user ("<name>Token", "<name>AdminToken")
// so several logged-in identities can coexist in one browser; matching is
// permissive but the order is deterministic. Among equally-ranked cookies
// the first in request order wins.
func Locate(authorization string, cookies []Carrier) (token, carrierName string, ok bool) {
	if len(authorization) > 7 && strings.EqualFold(authorization[:7], "Bearer ") {
		if v := strings.TrimSpace(authorization[7:]); v != "" {
			return v, "", true
		}
	}
	for _, c := range cookies {
		if c.Value != "" && strings.Contains(strings.ToLower(c.Name), "admintoken") {
			return c.Value, c.Name, true
		}
	}
	for _, c := range cookies {
		if c.Value != "" && strings.Contains(strings.ToLower(c.Name), "token") {
			return c.Value, c.Name, true
		}
	}
	return "", "", false
}

// DeriveCarrierName builds the cookie name a fresh login should use:
// "<name>AdminToken" for admins, "<name>Token" otherwise, where <name> is
// the user's display name with non-alphanumerics stripped.
func DeriveCarrierName(displayName, role string) string {
	var b strings.Builder
	for _, r := range displayName {
		if r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	name := b.String()
	if name == "" {
		name = "user"
	}
	if strings.EqualFold(role, domain.RoleAdmin) {
		return name + "AdminToken"
	}
	return name + "Token"
}
