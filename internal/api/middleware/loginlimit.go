package middleware

import (
	"strings"
	"sync"
	"time"
)

// LoginLimiter tracks failed login attempts per email in a fixed window.
// After maxAttempts failures the email is blocked until the window ends.
// Expired windows are swept lazily on access, so constructing a limiter
// starts no goroutine.
type LoginLimiter struct {
	mu          sync.Mutex
	attempts    map[string]*loginWindow
	maxAttempts int
	window      time.Duration
	lastSweep   time.Time
}

type loginWindow struct {
	count   int
	started time.Time
}

func NewLoginLimiter(maxAttempts int, window time.Duration) *LoginLimiter {
	return &LoginLimiter{
		attempts:    make(map[string]*loginWindow),
		maxAttempts: maxAttempts,
		window:      window,
		lastSweep:   time.Now(),
	}
}

// Allowed reports whether a login attempt for the email may proceed.
func (l *LoginLimiter) Allowed(email string) bool {
	key := normalizeEmail(email)
	l.mu.Lock()
	defer l.mu.Unlock()
	l.sweepLocked()
	w, ok := l.attempts[key]
	if !ok || time.Since(w.started) > l.window {
		return true
	}
	return w.count < l.maxAttempts
}

// RecordFailure counts a failed attempt for the email.
func (l *LoginLimiter) RecordFailure(email string) {
	key := normalizeEmail(email)
	l.mu.Lock()
	defer l.mu.Unlock()
	l.sweepLocked()
	w, ok := l.attempts[key]
	if !ok || time.Since(w.started) > l.window {
		l.attempts[key] = &loginWindow{count: 1, started: time.Now()}
		return
	}
	w.count++
}

// RecordSuccess clears the failure window for the email.
func (l *LoginLimiter) RecordSuccess(email string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.attempts, normalizeEmail(email))
}

// sweepLocked drops expired windows, at most once per window. Caller
// holds mu.
func (l *LoginLimiter) sweepLocked() {
	if time.Since(l.lastSweep) < l.window {
		return
	}
	l.lastSweep = time.Now()
	for k, w := range l.attempts {
		if time.Since(w.started) > l.window {
			delete(l.attempts, k)
		}
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
