// Package middleware provides the Fiber middleware wrapping the auth core,
// plus request auditing and login rate limiting.
package middleware

import (
	"errors"
	"log/slog"

	"github.com/gofiber/fiber/v3"

	"github.com/quillblog/quill/internal/auth"
	"github.com/quillblog/quill/internal/domain"
	"github.com/quillblog/quill/internal/port"
)

const userLocalsKey = "auth_user"

// Carriers collects the request's Authorization header and cookies in
// header order, the order the locator's tie-break relies on.
func Carriers(c fiber.Ctx) (authorization string, cookies []auth.Carrier) {
	authorization = c.Get("Authorization")
	c.Request().Header.VisitAllCookie(func(key, value []byte) {
		cookies = append(cookies, auth.Carrier{Name: string(key), Value: string(value)})
	})
	return authorization, cookies
}

// UserFromCtx extracts the authenticated user stored by the middleware.
func UserFromCtx(c fiber.Ctx) *domain.AuthUser {
	u, ok := c.Locals(userLocalsKey).(*domain.AuthUser)
	if !ok {
		return nil
	}
	return u
}

// RequireAuth authenticates the request and injects the resolved user into
// Locals. Every failure renders the same 401; the underlying cause is only
// logged server-side.
func RequireAuth(authn *auth.Authenticator) fiber.Handler {
	return func(c fiber.Ctx) error {
		authorization, cookies := Carriers(c)
		user, err := authn.Authenticate(c.Context(), authorization, cookies)
		if err != nil {
			return authFailure(c, err)
		}
		c.Locals(userLocalsKey, user)
		return c.Next()
	}
}

// RequireRole authenticates and enforces the role allow-list. A caller
// without a valid token gets a 401, never a 403.
func RequireRole(authz *auth.Authorizer, roles ...string) fiber.Handler {
	return func(c fiber.Ctx) error {
		authorization, cookies := Carriers(c)
		user, err := authz.RequireRole(c.Context(), authorization, cookies, roles...)
		if err != nil {
			if errors.Is(err, port.ErrRoleDenied) {
				return forbidden(c, "Forbidden: You do not have permission")
			}
			return authFailure(c, err)
		}
		c.Locals(userLocalsKey, user)
		return c.Next()
	}
}

// RequirePostModification runs the full authorization chain for a mutating
// post operation: admin|author role, post existence, then ownership against
// the stored author id.
func RequirePostModification(authz *auth.Authorizer) fiber.Handler {
	return func(c fiber.Ctx) error {
		postID, err := ParamID(c, "id")
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"status": fiber.StatusBadRequest, "error": "Valid post ID is required",
			})
		}

		authorization, cookies := Carriers(c)
		user, err := authz.AuthorizePostModification(c.Context(), authorization, cookies, postID)
		if err != nil {
			var ownErr *auth.OwnershipError
			switch {
			case errors.As(err, &ownErr):
				return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
					"status": fiber.StatusForbidden,
					"error":  ownErr.Error(),
				})
			case errors.Is(err, port.ErrRoleDenied):
				return forbidden(c, "Forbidden: You do not have permission")
			case errors.Is(err, port.ErrPostNotFound):
				return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
					"status": fiber.StatusNotFound, "error": "Post not found",
				})
			default:
				return authFailure(c, err)
			}
		}
		c.Locals(userLocalsKey, user)
		return c.Next()
	}
}

// authFailure separates "you are not authenticated" from "the backend
// could not answer": only the auth sentinels map to 401, anything else is
// an opaque 500.
func authFailure(c fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, port.ErrNoToken),
		errors.Is(err, port.ErrInvalidToken),
		errors.Is(err, port.ErrUserNotFound):
		return unauthorized(c, err)
	default:
		slog.Error("authentication backend failure", "path", c.Path(), "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"status": fiber.StatusInternalServerError,
			"error":  "Something went wrong",
		})
	}
}

func unauthorized(c fiber.Ctx, cause error) error {
	slog.Debug("request unauthorized", "path", c.Path(), "cause", cause)
	return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
		"status": fiber.StatusUnauthorized,
		"error":  "Unauthorized",
	})
}

func forbidden(c fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
		"status": fiber.StatusForbidden,
		"error":  msg,
	})
}
