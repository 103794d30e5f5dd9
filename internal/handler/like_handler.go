package handler

import (
	"github.com/gofiber/fiber/v3"

	"github.com/quillblog/quill/internal/middleware"
	"github.com/quillblog/quill/internal/service"
)

// LikeHandler handles like endpoints. All require authentication.
type LikeHandler struct {
	svc         *service.LikeService
	requireAuth fiber.Handler
}

// NewLikeHandler creates a new like handler.
func NewLikeHandler(svc *service.LikeService, requireAuth fiber.Handler) *LikeHandler {
	return &LikeHandler{svc: svc, requireAuth: requireAuth}
}

// Register sets up like routes.
func (h *LikeHandler) Register(r fiber.Router) {
	r.Post("/posts/:id/like", h.requireAuth, h.Like)
	r.Delete("/posts/:id/like", h.requireAuth, h.Unlike)
	r.Get("/posts/:id/likes", h.requireAuth, h.Summary)
}

// Like records the caller's like on a post.
func (h *LikeHandler) Like(c fiber.Ctx) error {
	postID, err := middleware.ParamID(c, "id")
	if err != nil {
		return fail(c, fiber.StatusBadRequest, "Valid post ID is required")
	}

	user := middleware.UserFromCtx(c)
	result, err := h.svc.Like(c.Context(), postID, user)
	if err != nil {
		return failErr(c, err)
	}
	return success(c, fiber.StatusCreated, "Post liked successfully", result)
}

// Unlike removes the caller's like from a post.
func (h *LikeHandler) Unlike(c fiber.Ctx) error {
	postID, err := middleware.ParamID(c, "id")
	if err != nil {
		return fail(c, fiber.StatusBadRequest, "Valid post ID is required")
	}

	user := middleware.UserFromCtx(c)
	total, err := h.svc.Unlike(c.Context(), postID, user.ID)
	if err != nil {
		return failErr(c, err)
	}
	return success(c, fiber.StatusOK, "Post unliked successfully", fiber.Map{
		"total_likes": total,
	})
}

// Summary returns a post's like count and recent likers.
func (h *LikeHandler) Summary(c fiber.Ctx) error {
	postID, err := middleware.ParamID(c, "id")
	if err != nil {
		return fail(c, fiber.StatusBadRequest, "Valid post ID is required")
	}

	summary, err := h.svc.Summary(c.Context(), postID)
	if err != nil {
		return failErr(c, err)
	}
	return success(c, fiber.StatusOK, "Post likes fetched successfully", summary)
}
