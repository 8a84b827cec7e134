package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/acquisitions/identity-api/internal/api/session"
	"github.com/acquisitions/identity-api/internal/core/domain"
	"github.com/acquisitions/identity-api/internal/core/ports"
	"github.com/acquisitions/identity-api/internal/core/service"
)

type stubAuthService struct {
	signUpFn func(ctx context.Context, input ports.SignUpInput) (*domain.User, error)
	signInFn func(ctx context.Context, email, password string) (*domain.User, error)
}

func (s *stubAuthService) SignUp(ctx context.Context, input ports.SignUpInput) (*domain.User, error) {
	return s.signUpFn(ctx, input)
}

func (s *stubAuthService) SignIn(ctx context.Context, email, password string) (*domain.User, error) {
	return s.signInFn(ctx, email, password)
}

func newTestHandler(stub *stubAuthService) (*echo.Echo, *AuthHandler) {
	e := echo.New()
	e.Validator = NewValidator()
	tokens := service.NewTokenService("secret", 24*time.Hour)
	cookies := session.NewManager(false, 24*time.Hour)
	return e, NewAuthHandler(stub, tokens, cookies, zerolog.Nop())
}

func postJSON(e *echo.Echo, path, body string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func sessionCookie(t *testing.T, rec *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, ck := range rec.Result().Cookies() {
		if ck.Name == session.CookieName {
			return ck
		}
	}
	return nil
}

func TestAuthHandler_SignUp_Success(t *testing.T) {
	stub := &stubAuthService{
		signUpFn: func(_ context.Context, input ports.SignUpInput) (*domain.User, error) {
			if input.Name != "Al" || input.Email != "a@x.com" || input.Role != "user" {
				t.Fatalf("unexpected input: %+v", input)
			}
			return &domain.User{ID: 1, Name: input.Name, Email: input.Email, Role: input.Role}, nil
		},
	}
	e, h := newTestHandler(stub)
	c, rec := postJSON(e, "/sign-up", `{"name":"Al","email":"a@x.com","password":"secret1","role":"user"}`)

	if err := h.SignUp(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["id"] != float64(1) || resp["name"] != "Al" || resp["email"] != "a@x.com" || resp["role"] != "user" {
		t.Fatalf("unexpected payload: %+v", resp)
	}
	if _, leaked := resp["password"]; leaked {
		t.Fatalf("response leaks password field")
	}

	ck := sessionCookie(t, rec)
	if ck == nil || ck.Value == "" {
		t.Fatalf("expected session cookie on sign-up")
	}
	if !ck.HttpOnly {
		t.Fatalf("session cookie must be HttpOnly")
	}
}

func TestAuthHandler_SignUp_ValidationDetails(t *testing.T) {
	stub := &stubAuthService{
		signUpFn: func(context.Context, ports.SignUpInput) (*domain.User, error) {
			t.Fatalf("service should not be called")
			return nil, nil
		},
	}
	e, h := newTestHandler(stub)
	c, rec := postJSON(e, "/sign-up", `{"name":"A","email":"nope","password":"short"}`)

	_ = h.SignUp(c)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}

	var resp struct {
		Error   string   `json:"error"`
		Details []string `json:"details"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	// One message per violated rule: name min, email format, password min.
	if len(resp.Details) != 3 {
		t.Fatalf("expected 3 detail messages, got %d: %v", len(resp.Details), resp.Details)
	}
}

func TestAuthHandler_SignUp_Duplicate(t *testing.T) {
	stub := &stubAuthService{
		signUpFn: func(context.Context, ports.SignUpInput) (*domain.User, error) {
			return nil, domain.ErrUserExists
		},
	}
	e, h := newTestHandler(stub)
	c, rec := postJSON(e, "/sign-up", `{"name":"Al","email":"a@x.com","password":"secret1"}`)

	_ = h.SignUp(c)

	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "User already exists") {
		t.Fatalf("unexpected body: %s", rec.Body.String())
	}
}

func TestAuthHandler_SignUp_InvalidPayload(t *testing.T) {
	stub := &stubAuthService{
		signUpFn: func(context.Context, ports.SignUpInput) (*domain.User, error) {
			t.Fatalf("service should not be called")
			return nil, nil
		},
	}
	e, h := newTestHandler(stub)
	c, rec := postJSON(e, "/sign-up", "not-json")

	_ = h.SignUp(c)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestAuthHandler_SignIn_Success(t *testing.T) {
	stub := &stubAuthService{
		signInFn: func(_ context.Context, email, password string) (*domain.User, error) {
			if email != "a@x.com" || password != "secret1" {
				t.Fatalf("unexpected args: %s %s", email, password)
			}
			return &domain.User{ID: 1, Name: "Al", Email: email, Role: domain.RoleUser}, nil
		},
	}
	e, h := newTestHandler(stub)
	c, rec := postJSON(e, "/sign-in", `{"email":"a@x.com","password":"secret1"}`)

	if err := h.SignIn(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	ck := sessionCookie(t, rec)
	if ck == nil || ck.Value == "" {
		t.Fatalf("expected session cookie on sign-in")
	}

	// Cookie must hold a token our verifier accepts with the right claims.
	tokens := service.NewTokenService("secret", 24*time.Hour)
	claims, err := tokens.Verify(ck.Value)
	if err != nil {
		t.Fatalf("cookie token invalid: %v", err)
	}
	if claims.ID != 1 || claims.Email != "a@x.com" || claims.Role != domain.RoleUser {
		t.Fatalf("unexpected claims: %+v", claims)
	}
}

func TestAuthHandler_SignIn_InvalidCredentials(t *testing.T) {
	stub := &stubAuthService{
		signInFn: func(context.Context, string, string) (*domain.User, error) {
			return nil, domain.ErrInvalidCredentials
		},
	}
	e, h := newTestHandler(stub)

	// Unknown email and wrong password surface identically.
	for _, body := range []string{
		`{"email":"ghost@x.com","password":"secret1"}`,
		`{"email":"a@x.com","password":"wrong1"}`,
	} {
		c, rec := postJSON(e, "/sign-in", body)
		_ = h.SignIn(c)
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", rec.Code)
		}
		if !strings.Contains(rec.Body.String(), "Invalid credentials") {
			t.Fatalf("unexpected body: %s", rec.Body.String())
		}
	}
}

func TestAuthHandler_SignOut_ClearsCookie(t *testing.T) {
	e, h := newTestHandler(&stubAuthService{})
	c, rec := postJSON(e, "/sign-out", `{}`)

	if err := h.SignOut(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	ck := sessionCookie(t, rec)
	if ck == nil {
		t.Fatalf("expected clearing cookie on sign-out")
	}
	if ck.Value != "" || ck.MaxAge >= 0 {
		t.Fatalf("cookie not cleared: value=%q maxage=%d", ck.Value, ck.MaxAge)
	}
}
