package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/acquisitions/identity-api/internal/api/metrics"
	"github.com/acquisitions/identity-api/internal/api/session"
	"github.com/acquisitions/identity-api/internal/core/domain"
	"github.com/acquisitions/identity-api/internal/core/ports"
)

type AuthHandler struct {
	authService ports.AuthService
	tokens      ports.TokenService
	cookies     *session.Manager
	log         zerolog.Logger
}

func NewAuthHandler(authService ports.AuthService, tokens ports.TokenService, cookies *session.Manager, log zerolog.Logger) *AuthHandler {
	return &AuthHandler{authService: authService, tokens: tokens, cookies: cookies, log: log}
}

// SignUp registers a new account and starts a session.
//
// @Summary      Sign up
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      signUpRequest  true  "Registration details"
// @Success      201   {object}  accountResponse
// @Failure      400   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /sign-up [post]
func (h *AuthHandler) SignUp(c echo.Context) error {
	var req signUpRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		var ve *ValidationError
		if errors.As(err, &ve) {
			return c.JSON(http.StatusBadRequest, errorResponse{Error: "Validation failed", Details: ve.Details})
		}
		return err
	}

	user, err := h.authService.SignUp(c.Request().Context(), ports.SignUpInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Role:     req.Role,
	})
	if err != nil {
		if errors.Is(err, domain.ErrUserExists) {
			metrics.AuthAttemptsTotal.WithLabelValues("sign_up", "duplicate").Inc()
			return c.JSON(http.StatusConflict, errorResponse{Error: "User already exists"})
		}
		metrics.AuthAttemptsTotal.WithLabelValues("sign_up", "error").Inc()
		return err
	}

	if err := h.startSession(c, user); err != nil {
		metrics.AuthAttemptsTotal.WithLabelValues("sign_up", "error").Inc()
		return err
	}
	metrics.AuthAttemptsTotal.WithLabelValues("sign_up", "success").Inc()

	return c.JSON(http.StatusCreated, accountResponse{
		Message: "User signed up successfully",
		ID:      user.ID,
		Name:    user.Name,
		Email:   user.Email,
		Role:    user.Role,
	})
}

// SignIn authenticates an account and starts a session.
//
// @Summary      Sign in
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      signInRequest  true  "Credentials"
// @Success      200   {object}  accountResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Router       /sign-in [post]
func (h *AuthHandler) SignIn(c echo.Context) error {
	var req signInRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		var ve *ValidationError
		if errors.As(err, &ve) {
			return c.JSON(http.StatusBadRequest, errorResponse{Error: "Validation failed", Details: ve.Details})
		}
		return err
	}

	user, err := h.authService.SignIn(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			metrics.AuthAttemptsTotal.WithLabelValues("sign_in", "invalid_credentials").Inc()
			return c.JSON(http.StatusUnauthorized, errorResponse{Error: "Invalid credentials"})
		}
		metrics.AuthAttemptsTotal.WithLabelValues("sign_in", "error").Inc()
		return err
	}

	if err := h.startSession(c, user); err != nil {
		metrics.AuthAttemptsTotal.WithLabelValues("sign_in", "error").Inc()
		return err
	}
	metrics.AuthAttemptsTotal.WithLabelValues("sign_in", "success").Inc()

	return c.JSON(http.StatusOK, accountResponse{
		Message: "User signed in successfully",
		ID:      user.ID,
		Name:    user.Name,
		Email:   user.Email,
		Role:    user.Role,
	})
}

// SignOut clears the session cookie. Sessions are stateless, so there is
// nothing to revoke server-side.
//
// @Summary      Sign out
// @Tags         auth
// @Produce      json
// @Success      200  {object}  messageResponse
// @Router       /sign-out [post]
func (h *AuthHandler) SignOut(c echo.Context) error {
	h.cookies.Clear(c)
	h.log.Info().Str("ip", c.RealIP()).Msg("user signed out")
	return c.JSON(http.StatusOK, messageResponse{Message: "Signed out successfully"})
}

func (h *AuthHandler) startSession(c echo.Context, user *domain.User) error {
	token, err := h.tokens.Issue(domain.Claims{ID: user.ID, Email: user.Email, Role: user.Role})
	if err != nil {
		h.log.Error().Err(err).Str("email", user.Email).Msg("token issuance failed")
		return err
	}
	h.cookies.Attach(c, token)
	return nil
}
