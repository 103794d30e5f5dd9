// Package handler contains the Fiber HTTP handlers and the response
// envelope shared by all endpoints.
package handler

import (
	"errors"
	"log/slog"

	"github.com/gofiber/fiber/v3"

	"github.com/quillblog/quill/internal/auth"
	"github.com/quillblog/quill/internal/port"
	"github.com/quillblog/quill/internal/service"
)

// success writes the success envelope: {"status", "message", "data"}.
func success(c fiber.Ctx, status int, message string, data interface{}) error {
	return c.Status(status).JSON(fiber.Map{
		"status":  status,
		"message": message,
		"data":    data,
	})
}

// fail writes the error envelope: {"status", "error"}.
func fail(c fiber.Ctx, status int, msg string) error {
	return c.Status(status).JSON(fiber.Map{
		"status": status,
		"error":  msg,
	})
}

// failErr maps service and port errors onto the error envelope. Unknown
// errors become an opaque 500; the cause is only logged server-side.
func failErr(c fiber.Ctx, err error) error {
	var vErr *service.ValidationError
	var ownErr *auth.OwnershipError

	switch {
	case errors.As(err, &vErr):
		return fail(c, fiber.StatusBadRequest, vErr.Msg)
	case errors.As(err, &ownErr):
		return fail(c, fiber.StatusForbidden, ownErr.Error())
	case errors.Is(err, port.ErrInvalidCredentials):
		return fail(c, fiber.StatusUnauthorized, "Invalid email or password")
	case errors.Is(err, port.ErrNoActiveSession),
		errors.Is(err, port.ErrNoToken),
		errors.Is(err, port.ErrInvalidToken),
		errors.Is(err, port.ErrUserNotFound):
		return fail(c, fiber.StatusUnauthorized, "Unauthorized")
	case errors.Is(err, port.ErrAdminExists):
		return fail(c, fiber.StatusForbidden, "Only one admin account is allowed")
	case errors.Is(err, port.ErrRoleDenied), errors.Is(err, port.ErrOwnershipDenied):
		return fail(c, fiber.StatusForbidden, "Forbidden: You do not have permission")
	case errors.Is(err, port.ErrDuplicate):
		return fail(c, fiber.StatusConflict, "Already exists")
	case errors.Is(err, port.ErrPostNotFound):
		return fail(c, fiber.StatusNotFound, "Post not found")
	case errors.Is(err, port.ErrCategoryNotFound):
		return fail(c, fiber.StatusNotFound, "Category not found")
	case errors.Is(err, port.ErrCommentNotFound):
		return fail(c, fiber.StatusNotFound, "Comment not found")
	case errors.Is(err, port.ErrLikeNotFound):
		return fail(c, fiber.StatusNotFound, "Like not found")
	default:
		slog.Error("request failed", "path", c.Path(), "error", err)
		return fail(c, fiber.StatusInternalServerError, "Something went wrong")
	}
}
