package middleware

import (
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func signToken(t *testing.T, secret []byte, sub string, exp time.Time) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": sub,
		"exp": exp.Unix(),
	})
	s, err := token.SignedString(secret)
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return s
}

func TestAuthMiddleware(t *testing.T) {
	secret := []byte("test-secret")

	var gotID uint
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotID = GetAccountID(r.Context())
		w.WriteHeader(http.StatusOK)
	})
	handler := Auth(secret)(next)

	t.Run("valid token passes account id through", func(t *testing.T) {
		gotID = 0
		req := httptest.NewRequest(http.MethodGet, "/api/portfolio/user", nil)
		req.Header.Set("Authorization", "Bearer "+signToken(t, secret, "42", time.Now().Add(time.Hour)))
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)
		if rr.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rr.Code)
		}
		if gotID != 42 {
			t.Fatalf("expected account id 42, got %d", gotID)
		}
	})

	t.Run("missing header is rejected", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/portfolio/user", nil)
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)
		if rr.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", rr.Code)
		}
	})

	t.Run("expired token is rejected", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/portfolio/user", nil)
		req.Header.Set("Authorization", "Bearer "+signToken(t, secret, "42", time.Now().Add(-time.Hour)))
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)
		if rr.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", rr.Code)
		}
	})

	t.Run("wrong secret is rejected", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/portfolio/user", nil)
		req.Header.Set("Authorization", "Bearer "+signToken(t, []byte("other"), "42", time.Now().Add(time.Hour)))
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)
		if rr.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", rr.Code)
		}
	})

	t.Run("non-numeric subject is rejected", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/portfolio/user", nil)
		req.Header.Set("Authorization", "Bearer "+signToken(t, secret, "not-a-number", time.Now().Add(time.Hour)))
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)
		if rr.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", rr.Code)
		}
	})

	t.Run("large ids survive the round trip", func(t *testing.T) {
		gotID = 0
		id := uint(1<<31 + 7)
		req := httptest.NewRequest(http.MethodGet, "/api/portfolio/user", nil)
		req.Header.Set("Authorization", "Bearer "+signToken(t, secret, strconv.FormatUint(uint64(id), 10), time.Now().Add(time.Hour)))
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)
		if gotID != id {
			t.Fatalf("expected account id %d, got %d", id, gotID)
		}
	})
}
