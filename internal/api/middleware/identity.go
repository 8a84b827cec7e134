package middleware

import (
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/acquisitions/identity-api/internal/api/session"
	"github.com/acquisitions/identity-api/internal/core/ports"
)

// Context keys set by Identity for downstream middleware and handlers.
const (
	ContextUserID = "user_id"
	ContextEmail  = "email"
	ContextRole   = "role"
)

// Identity resolves the caller's identity from the session cookie, falling
// back to an Authorization bearer header. It never rejects: a missing or
// invalid token simply leaves the request anonymous (guest), and admission
// control decides what an anonymous caller may do.
func Identity(tokens ports.TokenService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token, ok := session.Read(c)
			if !ok {
				token, ok = bearerToken(c)
			}
			if ok {
				if claims, err := tokens.Verify(token); err == nil {
					c.Set(ContextUserID, claims.ID)
					c.Set(ContextEmail, claims.Email)
					c.Set(ContextRole, claims.Role)
				}
			}
			return next(c)
		}
	}
}

func bearerToken(c echo.Context) (string, bool) {
	authHeader := c.Request().Header.Get("Authorization")
	if authHeader == "" {
		return "", false
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return "", false
	}
	return parts[1], true
}
