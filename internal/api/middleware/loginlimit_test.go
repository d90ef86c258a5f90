package middleware

import (
	"testing"
	"time"
)

func TestLoginLimiter(t *testing.T) {
	t.Run("blocks after max failures", func(t *testing.T) {
		l := NewLoginLimiter(3, time.Hour)
		for i := 0; i < 3; i++ {
			if !l.Allowed("ada@example.com") {
				t.Fatalf("attempt %d should be allowed", i+1)
			}
			l.RecordFailure("ada@example.com")
		}
		if l.Allowed("ada@example.com") {
			t.Fatal("fourth attempt should be blocked")
		}
	})

	t.Run("email comparison ignores case and whitespace", func(t *testing.T) {
		l := NewLoginLimiter(1, time.Hour)
		l.RecordFailure("Ada@Example.com ")
		if l.Allowed("ada@example.com") {
			t.Fatal("normalized email should share the window")
		}
	})

	t.Run("other emails are unaffected", func(t *testing.T) {
		l := NewLoginLimiter(1, time.Hour)
		l.RecordFailure("ada@example.com")
		if !l.Allowed("grace@example.com") {
			t.Fatal("unrelated email should be allowed")
		}
	})

	t.Run("success clears the window", func(t *testing.T) {
		l := NewLoginLimiter(1, time.Hour)
		l.RecordFailure("ada@example.com")
		if l.Allowed("ada@example.com") {
			t.Fatal("should be blocked before success")
		}
		l.RecordSuccess("ada@example.com")
		if !l.Allowed("ada@example.com") {
			t.Fatal("should be allowed after success")
		}
	})

	t.Run("window expiry unblocks", func(t *testing.T) {
		l := NewLoginLimiter(1, 10*time.Millisecond)
		l.RecordFailure("ada@example.com")
		time.Sleep(20 * time.Millisecond)
		if !l.Allowed("ada@example.com") {
			t.Fatal("should be allowed after the window passes")
		}
	})

	t.Run("expired windows are swept on access", func(t *testing.T) {
		l := NewLoginLimiter(1, 10*time.Millisecond)
		l.RecordFailure("ada@example.com")
		l.RecordFailure("grace@example.com")
		time.Sleep(20 * time.Millisecond)
		l.Allowed("someone@example.com")

		l.mu.Lock()
		n := len(l.attempts)
		l.mu.Unlock()
		if n != 0 {
			t.Fatalf("expected expired windows to be swept, %d remain", n)
		}
	})
}
