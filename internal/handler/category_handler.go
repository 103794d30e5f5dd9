package handler

import (
	"strconv"

	"github.com/gofiber/fiber/v3"

	"github.com/quillblog/quill/internal/auth"
	"github.com/quillblog/quill/internal/domain"
	"github.com/quillblog/quill/internal/middleware"
	"github.com/quillblog/quill/internal/service"
)

// CategoryHandler handles category endpoints.
type CategoryHandler struct {
	svc   *service.CategoryService
	authz *auth.Authorizer
}

// NewCategoryHandler creates a new category handler.
func NewCategoryHandler(svc *service.CategoryService, authz *auth.Authorizer) *CategoryHandler {
	return &CategoryHandler{svc: svc, authz: authz}
}

// Register sets up category routes. Reads are public, mutations admin-only.
func (h *CategoryHandler) Register(r fiber.Router) {
	admin := middleware.RequireRole(h.authz, domain.RoleAdmin)

	r.Get("/categories", h.List)
	r.Get("/categories/:id", h.Get)
	r.Get("/categories/:id/posts", h.Posts)
	r.Post("/categories", admin, h.Create)
	r.Delete("/categories/:id", admin, h.Delete)
}

// Create makes a new category with a generated slug.
func (h *CategoryHandler) Create(c fiber.Ctx) error {
	var req struct {
		Name string `json:"name"`
	}
	if err := c.Bind().JSON(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid request body")
	}

	cat, err := h.svc.Create(c.Context(), req.Name)
	if err != nil {
		return failErr(c, err)
	}
	return success(c, fiber.StatusCreated, "Category created successfully", fiber.Map{
		"category": cat,
	})
}

// List returns all categories with post counts.
func (h *CategoryHandler) List(c fiber.Ctx) error {
	cats, err := h.svc.List(c.Context())
	if err != nil {
		return failErr(c, err)
	}
	return success(c, fiber.StatusOK, "Categories fetched successfully", cats)
}

// Get returns one category.
func (h *CategoryHandler) Get(c fiber.Ctx) error {
	id, err := middleware.ParamID(c, "id")
	if err != nil {
		return fail(c, fiber.StatusBadRequest, "Valid Category ID is required")
	}
	cat, err := h.svc.Get(c.Context(), id)
	if err != nil {
		return failErr(c, err)
	}
	return success(c, fiber.StatusOK, "Category fetched successfully", cat)
}

// Posts returns a category's published posts.
func (h *CategoryHandler) Posts(c fiber.Ctx) error {
	id, err := middleware.ParamID(c, "id")
	if err != nil {
		return fail(c, fiber.StatusBadRequest, "Valid Category ID is required")
	}
	posts, err := h.svc.Posts(c.Context(), id)
	if err != nil {
		return failErr(c, err)
	}
	return success(c, fiber.StatusOK, "Category posts fetched successfully", posts)
}

// Delete removes a category; the "strategy" query controls what happens to
// its posts (reassign_null, reassign with new_category_id, force_delete).
func (h *CategoryHandler) Delete(c fiber.Ctx) error {
	id, err := middleware.ParamID(c, "id")
	if err != nil {
		return fail(c, fiber.StatusBadRequest, "Valid Category ID is required")
	}

	strategy := c.Query("strategy")
	if strategy == "" {
		strategy = "reassign_null"
	}
	var newCategoryID *int64
	if v := c.Query("new_category_id"); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil || n <= 0 {
			return fail(c, fiber.StatusBadRequest, "Valid new category ID required for reassignment")
		}
		newCategoryID = &n
	}

	affected, err := h.svc.Delete(c.Context(), id, strategy, newCategoryID)
	if err != nil {
		return failErr(c, err)
	}
	return success(c, fiber.StatusOK, "Category deleted successfully", fiber.Map{
		"affected_posts": affected,
		"strategy":       strategy,
	})
}
