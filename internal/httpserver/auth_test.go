package httpserver

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"rodrigues-modas/internal/auth"
	"rodrigues-modas/internal/domain"
)

func TestGuestHandler_IssuesSession(t *testing.T) {
	router, _ := newTestRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/api/auth/guest", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d body=%s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), `"token":"guest-token"`) {
		t.Fatalf("unexpected body: %s", rec.Body.String())
	}
}

func TestSignupHandler_Created(t *testing.T) {
	router, _ := newTestRouter(t)

	body := `{"email":"ana@example.com","password":"longenough","name":"Ana"}`
	req := httptest.NewRequest(http.MethodPost, "/api/auth/signup", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d body=%s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), `"email":"ana@example.com"`) {
		t.Fatalf("unexpected body: %s", rec.Body.String())
	}
}

func TestSignupHandler_DuplicateEmail(t *testing.T) {
	router, deps := newTestRouter(t)
	deps.auth.signupErr = domain.ErrAlreadyExists

	body := `{"email":"ana@example.com","password":"longenough","name":"Ana"}`
	req := httptest.NewRequest(http.MethodPost, "/api/auth/signup", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d body=%s", rec.Code, rec.Body.String())
	}
}

func TestLoginHandler_InvalidCredentials(t *testing.T) {
	router, deps := newTestRouter(t)
	deps.auth.loginErr = auth.ErrInvalidCredentials

	body := `{"email":"ana@example.com","password":"wrong"}`
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d body=%s", rec.Code, rec.Body.String())
	}
}

func TestLoginHandler_TriggersMergeWithGuestToken(t *testing.T) {
	router, deps := newTestRouter(t)
	deps.auth.loginUser = &domain.User{ID: "u1", Email: "ana@example.com"}

	body := `{"email":"ana@example.com","password":"longenough"}`
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(guestTokenHeader, "g-token")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", rec.Code, rec.Body.String())
	}
	if len(deps.cart.mergeCalls) != 1 {
		t.Fatalf("expected one merge call, got %d", len(deps.cart.mergeCalls))
	}
	if deps.cart.mergeCalls[0] != [2]string{"g1", "u1"} {
		t.Fatalf("unexpected merge call: %v", deps.cart.mergeCalls[0])
	}
	if !strings.Contains(rec.Body.String(), `"token":"signed-token"`) {
		t.Fatalf("unexpected body: %s", rec.Body.String())
	}
}

func TestLoginHandler_NoMergeWithoutGuestToken(t *testing.T) {
	router, deps := newTestRouter(t)
	deps.auth.loginUser = &domain.User{ID: "u1", Email: "ana@example.com"}

	body := `{"email":"ana@example.com","password":"longenough"}`
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", rec.Code, rec.Body.String())
	}
	if len(deps.cart.mergeCalls) != 0 {
		t.Fatalf("expected no merge calls, got %d", len(deps.cart.mergeCalls))
	}
}

func TestLoginHandler_UnknownGuestTokenSkipsMerge(t *testing.T) {
	router, deps := newTestRouter(t)
	deps.auth.loginUser = &domain.User{ID: "u1", Email: "ana@example.com"}

	body := `{"email":"ana@example.com","password":"longenough"}`
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(guestTokenHeader, "expired-token")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", rec.Code, rec.Body.String())
	}
	if len(deps.cart.mergeCalls) != 0 {
		t.Fatalf("expected no merge calls, got %d", len(deps.cart.mergeCalls))
	}
}
