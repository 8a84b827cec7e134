// Package session manages the session-token cookie. Sessions are stateless:
// the cookie is the only artifact, and clearing it is the whole of sign-out.
package session

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

// CookieName is the cookie carrying the signed session token.
const CookieName = "token"

// Manager attaches and clears the session cookie with the required security
// attributes: HttpOnly, SameSite=Strict, and Secure in production.
type Manager struct {
	secure bool
	maxAge time.Duration
}

func NewManager(secure bool, maxAge time.Duration) *Manager {
	return &Manager{secure: secure, maxAge: maxAge}
}

// Attach sets the token cookie on the response, expiring with the token.
func (m *Manager) Attach(c echo.Context, token string) {
	c.SetCookie(&http.Cookie{
		Name:     CookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(m.maxAge.Seconds()),
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteStrictMode,
	})
}

// Clear removes the token cookie. There is no server-side state to
// invalidate; a token exfiltrated separately from the cookie stays valid
// until natural expiry.
func (m *Manager) Clear(c echo.Context) {
	c.SetCookie(&http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteStrictMode,
	})
}

// Read returns the session token from the request cookie, if present.
func Read(c echo.Context) (string, bool) {
	cookie, err := c.Cookie(CookieName)
	if err != nil || cookie.Value == "" {
		return "", false
	}
	return cookie.Value, true
}
