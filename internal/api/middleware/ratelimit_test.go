package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"golang.org/x/time/rate"
)

func TestIPRateLimiter(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	t.Run("over-limit requests get 429", func(t *testing.T) {
		l := NewIPRateLimiter(rate.Every(time.Hour), 2)
		handler := l.Middleware(next)

		codes := make([]int, 0, 3)
		for i := 0; i < 3; i++ {
			req := httptest.NewRequest(http.MethodGet, "/api/portfolio/1", nil)
			req.RemoteAddr = "10.0.0.1:5555"
			rr := httptest.NewRecorder()
			handler.ServeHTTP(rr, req)
			codes = append(codes, rr.Code)
		}
		if codes[0] != http.StatusOK || codes[1] != http.StatusOK {
			t.Fatalf("burst requests should pass, got %v", codes)
		}
		if codes[2] != http.StatusTooManyRequests {
			t.Fatalf("expected 429 over the burst, got %d", codes[2])
		}
	})

	t.Run("limits are per IP", func(t *testing.T) {
		l := NewIPRateLimiter(rate.Every(time.Hour), 1)
		handler := l.Middleware(next)

		for _, addr := range []string{"10.0.0.1:5555", "10.0.0.2:5555"} {
			req := httptest.NewRequest(http.MethodGet, "/api/portfolio/1", nil)
			req.RemoteAddr = addr
			rr := httptest.NewRecorder()
			handler.ServeHTTP(rr, req)
			if rr.Code != http.StatusOK {
				t.Fatalf("first request from %s should pass, got %d", addr, rr.Code)
			}
		}
	})

	t.Run("idle entries are swept on access", func(t *testing.T) {
		l := NewIPRateLimiter(rate.Every(time.Hour), 1)
		l.ttl = time.Millisecond
		l.get("10.0.0.1")
		l.get("10.0.0.2")
		time.Sleep(5 * time.Millisecond)

		// Force the next access to sweep.
		l.mu.Lock()
		l.lastSweep = time.Now().Add(-2 * time.Minute)
		l.mu.Unlock()
		l.get("10.0.0.3")

		l.mu.Lock()
		n := len(l.limiters)
		l.mu.Unlock()
		if n != 1 {
			t.Fatalf("expected only the fresh entry to remain, got %d", n)
		}
	})
}
