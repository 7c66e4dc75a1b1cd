package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/topupbd/topup-api/internal/middleware"
	"github.com/topupbd/topup-api/internal/pkg/jwt"
)

func newAuthedRequest(t *testing.T, svc *jwt.Service, userID uuid.UUID, blocked bool) *http.Request {
	t.Helper()
	token, err := svc.GenerateAccessToken(userID, "firebase-uid-1", blocked)
	if err != nil {
		t.Fatalf("generate token failed: %v", err)
	}
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	return req
}

func TestAuthPassesClaimsToContext(t *testing.T) {
	svc := jwt.NewService("test-secret", 15*time.Minute)
	userID := uuid.New()

	var gotID uuid.UUID
	var gotUID string
	handler := middleware.Auth(svc)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotID = middleware.GetUserID(r.Context())
		gotUID = middleware.GetUID(r.Context())
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, newAuthedRequest(t, svc, userID, false))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if gotID != userID {
		t.Fatalf("user id from context = %s, want %s", gotID, userID)
	}
	if gotUID != "firebase-uid-1" {
		t.Fatalf("uid from context = %q", gotUID)
	}
}

func TestAuthRejectsBlockedAccount(t *testing.T) {
	svc := jwt.NewService("test-secret", 15*time.Minute)

	called := false
	handler := middleware.Auth(svc)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, newAuthedRequest(t, svc, uuid.New(), true))

	if rec.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want 403", rec.Code)
	}
	if called {
		t.Fatal("blocked account must not reach the handler")
	}
}

func TestAuthRejectsMissingAndMalformedTokens(t *testing.T) {
	svc := jwt.NewService("test-secret", 15*time.Minute)
	handler := middleware.Auth(svc)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run without a valid token")
	}))

	cases := []struct {
		name   string
		header string
	}{
		{"missing header", ""},
		{"not bearer", "Basic abc123"},
		{"garbage token", "Bearer not-a-jwt"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)
			if rec.Code != http.StatusUnauthorized {
				t.Fatalf("status = %d, want 401", rec.Code)
			}
		})
	}
}

func TestAuthRejectsWrongSecret(t *testing.T) {
	issuer := jwt.NewService("other-secret", 15*time.Minute)
	verifier := jwt.NewService("test-secret", 15*time.Minute)

	handler := middleware.Auth(verifier)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run with a foreign-signed token")
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, newAuthedRequest(t, issuer, uuid.New(), false))

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
}
