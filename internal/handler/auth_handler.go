package handler

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v3"

	"github.com/quillblog/quill/internal/middleware"
	"github.com/quillblog/quill/internal/service"
)

// AuthHandler handles registration and the session lifecycle.
type AuthHandler struct {
	svc         *service.AuthService
	requireAuth fiber.Handler
	limit       fiber.Handler // optional, applied to register/login
	tokenTTL    time.Duration
}

// NewAuthHandler creates a new auth handler. limit may be nil.
func NewAuthHandler(svc *service.AuthService, requireAuth fiber.Handler, limit fiber.Handler, tokenTTL time.Duration) *AuthHandler {
	return &AuthHandler{svc: svc, requireAuth: requireAuth, limit: limit, tokenTTL: tokenTTL}
}

// Register sets up auth routes.
func (h *AuthHandler) Register(r fiber.Router) {
	grp := r.Group("/auth")
	if h.limit != nil {
		grp.Post("/register", h.limit, h.RegisterUser)
		grp.Post("/login", h.limit, h.Login)
	} else {
		grp.Post("/register", h.RegisterUser)
		grp.Post("/login", h.Login)
	}
	grp.Post("/logout", h.Logout)
	grp.Get("/me", h.requireAuth, h.Me)
}

type registerRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

// RegisterUser creates a new account.
func (h *AuthHandler) RegisterUser(c fiber.Ctx) error {
	var req registerRequest
	if err := c.Bind().JSON(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid request body")
	}

	user, err := h.svc.Register(c.Context(), req.Username, req.Email, req.Password, req.Role)
	if err != nil {
		return failErr(c, err)
	}
	return success(c, fiber.StatusCreated, "User registered successfully", fiber.Map{
		"user": fiber.Map{
			"id":       user.ID,
			"username": user.Username,
			"email":    user.Email,
			"role":     user.Role,
		},
	})
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login verifies credentials, issues a token and sets it as an HttpOnly
// cookie under the user's carrier name.
func (h *AuthHandler) Login(c fiber.Ctx) error {
	var req loginRequest
	if err := c.Bind().JSON(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid request body")
	}

	token, carrierName, user, err := h.svc.Login(c.Context(), req.Email, req.Password)
	if err != nil {
		return failErr(c, err)
	}

	c.Cookie(&fiber.Cookie{
		Name:     carrierName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(h.tokenTTL / time.Second),
		HTTPOnly: true,
		Secure:   c.Protocol() == "https",
		SameSite: fiber.CookieSameSiteStrictMode,
	})

	return success(c, fiber.StatusOK, "Login successful", fiber.Map{
		"user": fiber.Map{
			"id":    user.ID,
			"name":  user.DisplayName(),
			"email": user.Email,
			"role":  user.Role,
		},
		"carrier_name": carrierName,
		"token":        token,
	})
}

// Logout expires the session's carrier cookie plus any other "*Token"
// cookies left by earlier logins. The token itself stays valid until its
// expiry; only the carrier is cleared.
func (h *AuthHandler) Logout(c fiber.Ctx) error {
	authorization, cookies := middleware.Carriers(c)
	carrierName, err := h.svc.Logout(c.Context(), authorization, cookies)
	if err != nil {
		return failErr(c, err)
	}

	cleared := map[string]bool{}
	expire := func(name string) {
		if name == "" || cleared[name] {
			return
		}
		cleared[name] = true
		c.Cookie(&fiber.Cookie{
			Name:     name,
			Value:    "",
			Path:     "/",
			MaxAge:   -1,
			Expires:  time.Unix(0, 0),
			HTTPOnly: true,
			Secure:   c.Protocol() == "https",
			SameSite: fiber.CookieSameSiteStrictMode,
		})
	}

	expire(carrierName)
	for _, ck := range cookies {
		if strings.HasSuffix(ck.Name, "Token") {
			expire(ck.Name)
		}
	}

	return success(c, fiber.StatusOK, "Logged out successfully", fiber.Map{
		"carrier_name_invalidated": carrierName,
	})
}

// Me returns the authenticated user's fresh row.
func (h *AuthHandler) Me(c fiber.Ctx) error {
	authUser := middleware.UserFromCtx(c)
	user, err := h.svc.Me(c.Context(), authUser.ID)
	if err != nil {
		return failErr(c, err)
	}
	return success(c, fiber.StatusOK, "User fetched successfully", fiber.Map{
		"user": fiber.Map{
			"id":          user.ID,
			"username":    user.DisplayName(),
			"email":       user.Email,
			"role":        user.Role,
			"cookie_name": authUser.CarrierName,
		},
	})
}
