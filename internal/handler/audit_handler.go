package handler

import (
	"strconv"

	"github.com/gofiber/fiber/v3"

	"github.com/quillblog/quill/internal/auth"
	"github.com/quillblog/quill/internal/domain"
	"github.com/quillblog/quill/internal/middleware"
	"github.com/quillblog/quill/internal/port"
)

// AuditHandler exposes the request audit trail to admins.
type AuditHandler struct {
	audits port.AuditStore
	authz  *auth.Authorizer
}

// NewAuditHandler creates a new audit handler.
func NewAuditHandler(audits port.AuditStore, authz *auth.Authorizer) *AuditHandler {
	return &AuditHandler{audits: audits, authz: authz}
}

// Register sets up audit routes.
func (h *AuditHandler) Register(r fiber.Router) {
	r.Get("/audit", middleware.RequireRole(h.authz, domain.RoleAdmin), h.List)
}

// List returns recent audit entries, optionally filtered by action.
func (h *AuditHandler) List(c fiber.Ctx) error {
	limit := 100
	if v := c.Query("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 && n <= 1000 {
			limit = n
		}
	}

	logs, err := h.audits.ListAuditLogs(c.Context(), limit, c.Query("action"))
	if err != nil {
		return failErr(c, err)
	}
	return success(c, fiber.StatusOK, "Audit logs fetched successfully", logs)
}
