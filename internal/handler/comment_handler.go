package handler

import (
	"github.com/gofiber/fiber/v3"

	"github.com/quillblog/quill/internal/middleware"
	"github.com/quillblog/quill/internal/service"
)

// CommentHandler handles comment endpoints. All require authentication.
type CommentHandler struct {
	svc         *service.CommentService
	requireAuth fiber.Handler
}

// NewCommentHandler creates a new comment handler.
func NewCommentHandler(svc *service.CommentService, requireAuth fiber.Handler) *CommentHandler {
	return &CommentHandler{svc: svc, requireAuth: requireAuth}
}

// Register sets up comment routes.
func (h *CommentHandler) Register(r fiber.Router) {
	r.Post("/posts/:id/comments", h.requireAuth, h.Add)
	r.Get("/posts/:id/comments", h.requireAuth, h.List)
	r.Put("/comments/:id", h.requireAuth, h.Update)
	r.Delete("/comments/:id", h.requireAuth, h.Delete)
}

type commentRequest struct {
	Comment string `json:"comment"`
}

// Add creates a comment on a published post.
func (h *CommentHandler) Add(c fiber.Ctx) error {
	postID, err := middleware.ParamID(c, "id")
	if err != nil {
		return fail(c, fiber.StatusBadRequest, "Valid post ID is required")
	}

	var req commentRequest
	if err := c.Bind().JSON(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid request body")
	}

	user := middleware.UserFromCtx(c)
	comment, err := h.svc.Add(c.Context(), postID, user.ID, req.Comment)
	if err != nil {
		return failErr(c, err)
	}
	return success(c, fiber.StatusCreated, "Comment added successfully", fiber.Map{
		"comment": comment,
	})
}

// List returns a post's comments.
func (h *CommentHandler) List(c fiber.Ctx) error {
	postID, err := middleware.ParamID(c, "id")
	if err != nil {
		return fail(c, fiber.StatusBadRequest, "Valid post ID is required")
	}
	comments, err := h.svc.List(c.Context(), postID)
	if err != nil {
		return failErr(c, err)
	}
	return success(c, fiber.StatusOK, "Comments fetched successfully", comments)
}

// Update edits a comment's body.
func (h *CommentHandler) Update(c fiber.Ctx) error {
	id, err := middleware.ParamID(c, "id")
	if err != nil {
		return fail(c, fiber.StatusBadRequest, "Valid comment ID is required")
	}

	var req commentRequest
	if err := c.Bind().JSON(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid request body")
	}

	user := middleware.UserFromCtx(c)
	comment, err := h.svc.Update(c.Context(), id, user, req.Comment)
	if err != nil {
		return failErr(c, err)
	}
	return success(c, fiber.StatusOK, "Comment updated successfully", fiber.Map{
		"comment": comment,
	})
}

// Delete removes a comment.
func (h *CommentHandler) Delete(c fiber.Ctx) error {
	id, err := middleware.ParamID(c, "id")
	if err != nil {
		return fail(c, fiber.StatusBadRequest, "Valid comment ID is required")
	}

	user := middleware.UserFromCtx(c)
	if err := h.svc.Delete(c.Context(), id, user); err != nil {
		return failErr(c, err)
	}
	return success(c, fiber.StatusOK, "Comment deleted successfully", nil)
}
