package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"synctracker-backend/internal/analytics"
)

func TestMiddlewareMissingToken(t *testing.T) {
	mw := NewMiddleware(testSecret)
	h := mw.Wrap(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run without a token")
	})

	rec := httptest.NewRecorder()
	h(rec, httptest.NewRequest("GET", "/api/tasks", nil))

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestMiddlewareInvalidToken(t *testing.T) {
	mw := NewMiddleware(testSecret)
	h := mw.Wrap(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run with a bad token")
	})

	req := httptest.NewRequest("GET", "/api/tasks", nil)
	req.Header.Set("Authorization", "Bearer nope")

	rec := httptest.NewRecorder()
	h(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestMiddlewarePassesUserID(t *testing.T) {
	token, err := GenerateToken(testSecret, 99)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	mw := NewMiddleware(testSecret)
	called := false
	h := mw.Wrap(func(w http.ResponseWriter, r *http.Request) {
		called = true

		uid, ok := UserIDFromContext(r.Context())
		if !ok || uid != 99 {
			t.Fatalf("expected user 99 in context, got %d (ok=%v)", uid, ok)
		}

		// middleware also seeds the analytics context
		aid, ok := analytics.UserIDFromContext(r.Context())
		if !ok || aid != 99 {
			t.Fatalf("expected user 99 in analytics context, got %d (ok=%v)", aid, ok)
		}
	})

	req := httptest.NewRequest("GET", "/api/tasks", nil)
	req.Header.Set("Authorization", "Bearer "+token)

	rec := httptest.NewRecorder()
	h(rec, req)

	if !called {
		t.Fatal("handler was not called")
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}
