package handler

import (
	"bytes"
	"errors"
	"io"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v3"

	"github.com/quillblog/quill/internal/auth"
	"github.com/quillblog/quill/internal/domain"
	"github.com/quillblog/quill/internal/middleware"
	"github.com/quillblog/quill/internal/service"
)

var errInvalidCategoryID = errors.New("invalid category id")

// PostHandler handles post CRUD endpoints.
type PostHandler struct {
	svc   *service.PostService
	authz *auth.Authorizer
}

// NewPostHandler creates a new post handler.
func NewPostHandler(svc *service.PostService, authz *auth.Authorizer) *PostHandler {
	return &PostHandler{svc: svc, authz: authz}
}

// Register sets up post routes. Reads are public; mutations run the full
// role + ownership chain. The route chain executes in registration order,
// so guards precede their handlers.
func (h *PostHandler) Register(r fiber.Router) {
	canWrite := middleware.RequireRole(h.authz, domain.RoleAdmin, domain.RoleAuthor)
	canModify := middleware.RequirePostModification(h.authz)

	r.Get("/posts", h.List)
	r.Get("/posts/:id", h.Get)
	r.Post("/posts", canWrite, h.Create)
	r.Put("/posts/:id", canModify, h.Update)
	r.Delete("/posts/:id", canModify, h.Delete)
}

type postRequest struct {
	Title      string `json:"title"`
	Content    string `json:"content"`
	CategoryID *int64 `json:"category_id"`
	Status     string `json:"status"`
}

// List returns all posts, newest first.
func (h *PostHandler) List(c fiber.Ctx) error {
	posts, err := h.svc.List(c.Context())
	if err != nil {
		return failErr(c, err)
	}
	return success(c, fiber.StatusOK, "Posts fetched successfully", posts)
}

// Get returns one post.
func (h *PostHandler) Get(c fiber.Ctx) error {
	id, err := middleware.ParamID(c, "id")
	if err != nil {
		return fail(c, fiber.StatusBadRequest, "Valid post ID is required")
	}
	post, err := h.svc.Get(c.Context(), id)
	if err != nil {
		return failErr(c, err)
	}
	return success(c, fiber.StatusOK, "Post fetched successfully", post)
}

// Create makes a new post owned by the caller. Accepts JSON, or multipart
// form data when an image is attached.
func (h *PostHandler) Create(c fiber.Ctx) error {
	user := middleware.UserFromCtx(c)

	in, err := h.bindCreateInput(c)
	if err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid request body")
	}

	post, err := h.svc.Create(c.Context(), user.ID, *in)
	if err != nil {
		return failErr(c, err)
	}
	return success(c, fiber.StatusCreated, "Post created", post)
}

func (h *PostHandler) bindCreateInput(c fiber.Ctx) (*service.CreateInput, error) {
	if strings.HasPrefix(c.Get(fiber.HeaderContentType), fiber.MIMEMultipartForm) {
		in := &service.CreateInput{
			Title:   c.FormValue("title"),
			Content: c.FormValue("content"),
			Status:  c.FormValue("status"),
		}
		if v := c.FormValue("category_id"); v != "" {
			id, err := strconv.ParseInt(v, 10, 64)
			if err != nil || id <= 0 {
				return nil, errInvalidCategoryID
			}
			in.CategoryID = &id
		}
		if fh, err := c.FormFile("image"); err == nil && fh != nil {
			f, err := fh.Open()
			if err != nil {
				return nil, err
			}
			var buf bytes.Buffer
			_, cpErr := io.Copy(&buf, f)
			f.Close()
			if cpErr != nil {
				return nil, cpErr
			}
			in.Image = &buf
			in.ImageName = fh.Filename
		}
		return in, nil
	}

	var req postRequest
	if err := c.Bind().JSON(&req); err != nil {
		return nil, err
	}
	return &service.CreateInput{
		Title:      req.Title,
		Content:    req.Content,
		CategoryID: req.CategoryID,
		Status:     req.Status,
	}, nil
}

// Update modifies a post the caller owns (or any post for admins).
func (h *PostHandler) Update(c fiber.Ctx) error {
	id, _ := middleware.ParamID(c, "id")

	var req postRequest
	if err := c.Bind().JSON(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid request body")
	}

	post, err := h.svc.Update(c.Context(), id, service.CreateInput{
		Title:      req.Title,
		Content:    req.Content,
		CategoryID: req.CategoryID,
		Status:     req.Status,
	})
	if err != nil {
		return failErr(c, err)
	}
	return success(c, fiber.StatusOK, "Post updated successfully", post)
}

// Delete removes a post the caller owns (or any post for admins).
func (h *PostHandler) Delete(c fiber.Ctx) error {
	id, _ := middleware.ParamID(c, "id")
	if err := h.svc.Delete(c.Context(), id); err != nil {
		return failErr(c, err)
	}
	return success(c, fiber.StatusOK, "Post deleted successfully", nil)
}
