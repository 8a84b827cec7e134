package middleware

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/acquisitions/identity-api/internal/api/metrics"
	"github.com/acquisitions/identity-api/internal/core/domain"
	"github.com/acquisitions/identity-api/internal/core/ports"
)

type admissionError struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// Admission gates every request before its handler runs: it scopes a
// sliding-window quota to the caller's role (guest when unauthenticated),
// delegates the decision to the admission backend, and rejects bot, shield,
// and over-limit traffic with 403. A fault in the check itself rejects the
// request with 500 — the gate fails closed, never open.
func Admission(svc ports.AdmissionService, log zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role, _ := c.Get(ContextRole).(string)
			if role == "" {
				role = domain.RoleGuest
			}
			rule := domain.RuleForRole(role)

			r := c.Request()
			req := domain.RequestInfo{
				IP:        c.RealIP(),
				Method:    r.Method,
				Path:      r.URL.Path,
				Query:     r.URL.RawQuery,
				UserAgent: r.UserAgent(),
			}

			start := time.Now()
			decision, err := svc.Protect(r.Context(), req, rule)
			metrics.AdmissionCheckDuration.Observe(time.Since(start).Seconds())

			if err != nil {
				metrics.AdmissionDecisionsTotal.WithLabelValues(role, "error").Inc()
				log.Error().Err(err).
					Str("ip", req.IP).
					Str("path", req.Path).
					Msg("admission check failed")
				return c.JSON(http.StatusInternalServerError, admissionError{
					Error:   "Internal Server Error",
					Message: "Something went wrong in security middleware",
				})
			}

			if decision.Allowed {
				metrics.AdmissionDecisionsTotal.WithLabelValues(role, "allowed").Inc()
				return next(c)
			}

			metrics.AdmissionDecisionsTotal.WithLabelValues(role, string(decision.Reason)).Inc()

			switch decision.Reason {
			case domain.DenyBot:
				log.Warn().
					Str("ip", req.IP).
					Str("path", req.Path).
					Str("user_agent", req.UserAgent).
					Msg("blocked bot request")
				return c.JSON(http.StatusForbidden, admissionError{
					Error:   "Forbidden",
					Message: "Access denied for bots",
				})
			case domain.DenyShield:
				log.Warn().
					Str("ip", req.IP).
					Str("path", req.Path).
					Str("user_agent", req.UserAgent).
					Str("method", req.Method).
					Msg("blocked request by shield")
				return c.JSON(http.StatusForbidden, admissionError{
					Error:   "Forbidden",
					Message: "Access denied due to security policy",
				})
			default:
				log.Warn().
					Str("ip", req.IP).
					Str("path", req.Path).
					Str("user_agent", req.UserAgent).
					Str("role", role).
					Msg("rate limit exceeded")
				return c.JSON(http.StatusForbidden, admissionError{
					Error:   "Forbidden",
					Message: rateLimitMessage(rule),
				})
			}
		}
	}
}

// rateLimitMessage names the exceeded ceiling. The role and the ceiling both
// come from the rule, so domain.RuleForRole stays the single source of truth.
func rateLimitMessage(rule domain.Rule) string {
	role := strings.TrimSuffix(rule.Name, "-rate-limit")
	if role != "" {
		role = strings.ToUpper(role[:1]) + role[1:]
	}
	return fmt.Sprintf("%s access exceeded %d limits.", role, rule.Max)
}
