package handler

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/gspotbarber/barbershop-booking/internal/config"
	"github.com/gspotbarber/barbershop-booking/internal/middleware"
	"github.com/gspotbarber/barbershop-booking/internal/repository"
	"github.com/gspotbarber/barbershop-booking/internal/session"
	"github.com/gspotbarber/barbershop-booking/internal/utils"
)

// AuthHandler bundles dependencies for admin authentication: login, logout,
// session check and password change.
type AuthHandler struct {
	Cfg      config.Config
	Admins   AdminStore
	Sessions session.Store
}

func NewAuthHandler(cfg config.Config, a AdminStore, s session.Store) *AuthHandler {
	return &AuthHandler{Cfg: cfg, Admins: a, Sessions: s}
}

func (h *AuthHandler) sessionTTL() time.Duration {
	return time.Duration(h.Cfg.SessionTTLHours) * time.Hour
}

type loginReq struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type changePasswordReq struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

// Login handles POST /api/admin/login. Username lookup is a case-sensitive
// exact match; an unknown user and a wrong password produce the same
// generic 401 so usernames cannot be enumerated. On success a session
// record is created and the signed session cookie is set.
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Prašome užpildyti visus privalomus laukus"})
	}
	if req.Username == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Prašome užpildyti visus privalomus laukus"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	admin, err := h.Admins.GetByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Neteisingas prisijungimo vardas arba slaptažodis"})
		}
		log.Printf("login lookup failed: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Prisijungimo klaida"})
	}
	if !utils.VerifyPassword(admin.PasswordHash, req.Password) {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Neteisingas prisijungimo vardas arba slaptažodis"})
	}

	sid, err := utils.NewSessionID()
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Prisijungimo klaida"})
	}
	if err := h.Sessions.Create(ctx, sid, admin.ID, h.sessionTTL()); err != nil {
		log.Printf("create session failed: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Prisijungimo klaida"})
	}
	tok, err := utils.NewSessionToken(h.Cfg.SessionSecret, sid, admin.ID, h.sessionTTL())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Prisijungimo klaida"})
	}
	c.SetCookie(middleware.NewSessionCookie(tok))

	return c.JSON(http.StatusOK, echo.Map{"success": true, "message": "Prisijungta sėkmingai"})
}

// Logout handles POST /api/admin/logout. It destroys the session record if
// the cookie still parses and always clears the cookie; calling it without
// a session is fine (idempotent).
func (h *AuthHandler) Logout(c echo.Context) error {
	if cookie, err := c.Cookie(middleware.SessionCookie); err == nil && cookie.Value != "" {
		if sid, _, err := utils.ParseSessionToken(h.Cfg.SessionSecret, cookie.Value); err == nil {
			ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
			defer cancel()
			_ = h.Sessions.Delete(ctx, sid)
		}
	}
	c.SetCookie(middleware.ClearSessionCookie())
	return c.JSON(http.StatusOK, echo.Map{"success": true})
}

// Check handles GET /api/admin/check. The session middleware has already
// validated (and rolled) the session by the time this runs.
func (h *AuthHandler) Check(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{"isAdmin": true})
}

// ChangePassword handles POST /api/admin/change-password. The current
// password is re-verified against the stored hash for the admin bound to
// the session before the new one is hashed and stored. No strength policy
// is applied to the new password.
func (h *AuthHandler) ChangePassword(c echo.Context) error {
	var req changePasswordReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Prašome užpildyti visus privalomus laukus"})
	}
	if req.CurrentPassword == "" || req.NewPassword == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Prašome užpildyti visus privalomus laukus"})
	}
	adminID, ok := c.Get("admin_id").(int64)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Reikia prisijungti"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	admin, err := h.Admins.GetByID(ctx, adminID)
	if err != nil {
		log.Printf("change password lookup failed: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Nepavyko pakeisti slaptažodžio"})
	}
	if !utils.VerifyPassword(admin.PasswordHash, req.CurrentPassword) {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Neteisingas dabartinis slaptažodis"})
	}

	hash, err := utils.HashPassword(req.NewPassword, h.Cfg.BcryptCost)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Nepavyko pakeisti slaptažodžio"})
	}
	if err := h.Admins.UpdatePassword(ctx, admin.ID, hash); err != nil {
		log.Printf("update password failed: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Nepavyko pakeisti slaptažodžio"})
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "message": "Slaptažodis pakeistas"})
}
