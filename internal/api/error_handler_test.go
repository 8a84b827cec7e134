package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/acquisitions/identity-api/internal/api/handler"
	"github.com/acquisitions/identity-api/internal/core/domain"
)

func handleError(t *testing.T, err error) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/sign-in", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	NewHTTPErrorHandler(zerolog.Nop())(err, c)
	return rec
}

func TestErrorHandler_DomainErrors(t *testing.T) {
	tests := []struct {
		err      error
		wantCode int
		wantMsg  string
	}{
		{domain.ErrUserExists, http.StatusConflict, "User already exists"},
		{domain.ErrInvalidCredentials, http.StatusUnauthorized, "Invalid credentials"},
		{domain.ErrUserNotFound, http.StatusUnauthorized, "Invalid credentials"},
		{domain.ErrInvalidToken, http.StatusUnauthorized, "invalid token"},
	}

	for _, tt := range tests {
		rec := handleError(t, tt.err)
		if rec.Code != tt.wantCode {
			t.Errorf("%v: expected %d, got %d", tt.err, tt.wantCode, rec.Code)
		}
		var resp map[string]string
		if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
			t.Fatalf("invalid json: %v", err)
		}
		if resp["error"] != tt.wantMsg {
			t.Errorf("%v: expected message %q, got %q", tt.err, tt.wantMsg, resp["error"])
		}
	}
}

func TestErrorHandler_ValidationDetails(t *testing.T) {
	rec := handleError(t, &handler.ValidationError{Details: []string{"email must be a valid email"}})

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
	if len(resp.Details) != 1 {
		t.Fatalf("expected details, got %+v", resp)
	}
}

func TestErrorHandler_UnknownErrorIsGeneric(t *testing.T) {
	rec := handleError(t, errors.New("pq: connection reset by peer"))

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "internal server error") {
		t.Fatalf("expected generic message, got: %s", body)
	}
	if strings.Contains(body, "connection reset") {
		t.Fatalf("internal error text leaked to the client: %s", body)
	}
}
