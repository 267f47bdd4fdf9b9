package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/agritechlabs/sahayak/internal/api/ctxkeys"
	pkgauth "github.com/agritechlabs/sahayak/pkg/auth"
)

func newTestManager(t *testing.T) *pkgauth.Manager {
	t.Helper()
	m, err := pkgauth.NewManager("test-secret", time.Hour)
	if err != nil {
		t.Fatalf("new manager: %v", err)
	}
	return m
}

func TestAuth_MissingHeader(t *testing.T) {
	t.Parallel()
	handler := Auth(newTestManager(t))(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("handler must not run without a token")
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/x", nil))
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", rec.Code)
	}
}

func TestAuth_WrongScheme(t *testing.T) {
	t.Parallel()
	handler := Auth(newTestManager(t))(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("handler must not run")
	}))

	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set("Authorization", "Basic dXNlcjpwYXNz")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", rec.Code)
	}
}

func TestAuth_InvalidToken(t *testing.T) {
	t.Parallel()
	handler := Auth(newTestManager(t))(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("handler must not run")
	}))

	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", rec.Code)
	}
}

func TestAuth_ValidTokenInjectsClaims(t *testing.T) {
	t.Parallel()
	m := newTestManager(t)
	token, err := m.Generate("meera", "admin")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	var gotUser, gotRole string
	handler := Auth(m)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUser = ctxkeys.Value(r.Context(), ctxkeys.UserID)
		gotRole = ctxkeys.Value(r.Context(), ctxkeys.Role)
	}))

	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if gotUser != "meera" || gotRole != "admin" {
		t.Errorf("claims not injected: user=%q role=%q", gotUser, gotRole)
	}
}

func TestRequireRole(t *testing.T) {
	t.Parallel()
	var ran bool
	handler := RequireRole("admin")(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ran = true
	}))

	// Matching role passes.
	req := httptest.NewRequest(http.MethodPost, "/x", nil)
	req = req.WithContext(ctxkeys.WithValue(req.Context(), ctxkeys.Role, "admin"))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if !ran || rec.Code != http.StatusOK {
		t.Errorf("admin must pass, ran=%v code=%d", ran, rec.Code)
	}

	// Non-matching role is rejected.
	ran = false
	req = httptest.NewRequest(http.MethodPost, "/x", nil)
	req = req.WithContext(ctxkeys.WithValue(req.Context(), ctxkeys.Role, "user"))
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if ran {
		t.Error("user role must not pass an admin gate")
	}
	if rec.Code != http.StatusForbidden {
		t.Errorf("expected 403, got %d", rec.Code)
	}
}
