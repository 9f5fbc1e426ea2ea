package middleware // reusable HTTP middleware for the admin API

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/gspotbarber/barbershop-booking/internal/session"
	"github.com/gspotbarber/barbershop-booking/internal/utils"
)

// SessionCookie is the name of the admin session cookie.
const SessionCookie = "session_token"

// RequireAdmin returns an Echo middleware guarding admin endpoints. It
// validates the session cookie (signature and expiry), touches the
// server-side session record so the 24-hour window rolls forward, and
// re-issues the cookie with a matching fresh expiry. On success the admin
// id and session id are stored in the request context under "admin_id" and
// "session_id". Every failure is a 401 before any storage access.
func RequireAdmin(secret string, ttl time.Duration, store session.Store) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			cookie, err := c.Cookie(SessionCookie)
			if err != nil || cookie.Value == "" {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Reikia prisijungti"})
			}
			sid, adminID, err := utils.ParseSessionToken(secret, cookie.Value)
			if err != nil {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Reikia prisijungti"})
			}
			storedID, err := store.Touch(c.Request().Context(), sid, ttl)
			if err != nil || storedID != adminID {
				// Unknown, expired or logged-out session.
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Reikia prisijungti"})
			}
			if tok, err := utils.NewSessionToken(secret, sid, adminID, ttl); err == nil {
				c.SetCookie(NewSessionCookie(tok))
			}
			c.Set("admin_id", adminID)
			c.Set("session_id", sid)
			return next(c)
		}
	}
}

// NewSessionCookie builds the HttpOnly session cookie for a signed token.
func NewSessionCookie(tok utils.SessionToken) *http.Cookie {
	return &http.Cookie{
		Name:     SessionCookie,
		Value:    tok.Token,
		Path:     "/",
		Expires:  tok.Exp,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
}

// ClearSessionCookie builds an expired cookie that removes the session
// cookie from the browser.
func ClearSessionCookie() *http.Cookie {
	return &http.Cookie{
		Name:     SessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
}
