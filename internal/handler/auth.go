package handler

import (
	"context" // provides context with cancellation for DB calls
	"errors"
	"net/http" // HTTP status codes and primitives
	"strings"  // string manipulation utilities

	"github.com/labstack/echo/v4" // Echo framework for HTTP routing

	"computer-club/internal/config" // app configuration
	"computer-club/internal/model"
	"computer-club/internal/repository" // DB repositories
	"computer-club/internal/utils"      // helper functions (hashing, token issuing)
	"computer-club/internal/validation"
)

// adminRole is the only role the administrative API recognizes.
const adminRole = "ADMIN"

// AuthHandler bundles dependencies for auth endpoints.
type AuthHandler struct {
	Cfg       config.Config
	Admins    repository.AdminRepository
	Validator *validation.AdminValidator
}

func NewAuthHandler(cfg config.Config, admins repository.AdminRepository, v *validation.AdminValidator) *AuthHandler {
	return &AuthHandler{Cfg: cfg, Admins: admins, Validator: v}
}

// ----- DTOs -----

type registerReq struct {
	Login    string `json:"login"`
	Email    string `json:"email"`
	Password string `json:"password"`
}
type loginReq struct {
	Login    string `json:"login"`
	Password string `json:"password"`
}

type authResp struct {
	AdminID string `json:"admin_id"`
	Login   string `json:"login"`
	Role    string `json:"role"`
	Token   string `json:"token"`
	Expires string `json:"expires"`
}

// Register: create an administrator account and return a token
// immediately so the new operator can start working.
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Login = strings.TrimSpace(req.Login)
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if req.Login == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "login/password required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	hash, err := utils.HashPassword(req.Password, h.Cfg.BcryptCost)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "hash password failed"})
	}
	admin := model.NewAdmin(req.Login, hash, req.Email)
	if errs := h.Validator.Validate(ctx, admin); !errs.Valid() {
		return writeError(c, errs.AsError())
	}
	if err := h.Admins.Save(ctx, admin); err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return c.JSON(http.StatusConflict, echo.Map{"error": "login already exists"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create admin failed"})
	}

	access, err := utils.NewAccessToken(h.Cfg.JWTSecret, admin.ID, adminRole, h.Cfg.AccessTTLMin)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "issue token failed"})
	}
	return c.JSON(http.StatusCreated, authResp{
		AdminID: admin.ID.String(),
		Login:   admin.Login,
		Role:    adminRole,
		Token:   access.Token,
		Expires: access.Exp.Format("2006-01-02T15:04:05Z07:00"),
	})
}

// Login: verify credentials and return a fresh token.
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Login = strings.TrimSpace(req.Login)
	if req.Login == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "login/password required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	admin, err := h.Admins.FindByLogin(ctx, req.Login)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid credentials"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	if !utils.VerifyPassword(admin.PasswordHash, req.Password) {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid credentials"})
	}

	access, err := utils.NewAccessToken(h.Cfg.JWTSecret, admin.ID, adminRole, h.Cfg.AccessTTLMin)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "issue token failed"})
	}
	return c.JSON(http.StatusOK, authResp{
		AdminID: admin.ID.String(),
		Login:   admin.Login,
		Role:    adminRole,
		Token:   access.Token,
		Expires: access.Exp.Format("2006-01-02T15:04:05Z07:00"),
	})
}

// Me: simple protected endpoint that echoes the token's identity.
func (h *AuthHandler) Me(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{
		"admin_id": c.Get("admin_id"),
		"role":     c.Get("role"),
	})
}
