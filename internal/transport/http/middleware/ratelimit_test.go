package middleware

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"lohnrechner/internal/requestctx"
)

func TestRateLimitUsesSubjectKeyBeforeIPFallback(t *testing.T) {
	limited := RateLimit(1, time.Minute)(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	ctx := requestctx.WithSubject(context.Background(), "calculator")

	first := httptest.NewRequest(http.MethodPost, "/api/v1/tax/calculations", nil).WithContext(ctx)
	first.RemoteAddr = "198.51.100.11:2222"
	firstRec := httptest.NewRecorder()
	limited.ServeHTTP(firstRec, first)
	if firstRec.Code != http.StatusNoContent {
		t.Fatalf("expected first request to pass, got %d", firstRec.Code)
	}

	second := httptest.NewRequest(http.MethodPost, "/api/v1/tax/calculations", nil).WithContext(ctx)
	second.RemoteAddr = "198.51.100.12:3333"
	secondRec := httptest.NewRecorder()
	limited.ServeHTTP(secondRec, second)
	if secondRec.Code != http.StatusTooManyRequests {
		t.Fatalf("expected second request to be throttled by subject key, got %d", secondRec.Code)
	}
}

func TestRateLimitFallsBackToIP(t *testing.T) {
	limited := RateLimit(1, time.Minute)(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	first := httptest.NewRequest(http.MethodGet, "/api/v1/tax/years", nil)
	first.RemoteAddr = "203.0.113.10:4444"
	firstRec := httptest.NewRecorder()
	limited.ServeHTTP(firstRec, first)
	if firstRec.Code != http.StatusNoContent {
		t.Fatalf("expected first request to pass, got %d", firstRec.Code)
	}

	second := httptest.NewRequest(http.MethodGet, "/api/v1/tax/years", nil)
	second.RemoteAddr = "203.0.113.10:5555"
	secondRec := httptest.NewRecorder()
	limited.ServeHTTP(secondRec, second)
	if secondRec.Code != http.StatusTooManyRequests {
		t.Fatalf("expected second request to be throttled by ip key, got %d", secondRec.Code)
	}
}

func TestRateLimitWindowReset(t *testing.T) {
	limited := RateLimit(1, 40*time.Millisecond)(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	send := func() int {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/tax/years", nil)
		req.RemoteAddr = "192.0.2.20:1111"
		rec := httptest.NewRecorder()
		limited.ServeHTTP(rec, req)
		return rec.Code
	}

	if code := send(); code != http.StatusNoContent {
		t.Fatalf("expected first request to pass, got %d", code)
	}
	if code := send(); code != http.StatusTooManyRequests {
		t.Fatalf("expected second request to be throttled, got %d", code)
	}

	time.Sleep(50 * time.Millisecond)

	if code := send(); code != http.StatusNoContent {
		t.Fatalf("expected request after window reset to pass, got %d", code)
	}
}

func TestRateLimitReturnsRetryMetadata(t *testing.T) {
	limited := RateLimit(1, time.Minute)(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	req1 := httptest.NewRequest(http.MethodGet, "/api/v1/tax/years", nil)
	req1.RemoteAddr = "192.0.2.30:1234"
	limited.ServeHTTP(httptest.NewRecorder(), req1)

	req2 := httptest.NewRequest(http.MethodGet, "/api/v1/tax/years", nil)
	req2.RemoteAddr = "192.0.2.30:1234"
	rec := httptest.NewRecorder()
	limited.ServeHTTP(rec, req2)
	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("expected throttled response, got %d", rec.Code)
	}
	if rec.Header().Get("Retry-After") == "" {
		t.Fatal("expected Retry-After header")
	}
	if rec.Header().Get("X-RateLimit-Reset") == "" {
		t.Fatal("expected X-RateLimit-Reset header")
	}
}

func TestRateLimitEvictsQuietKeys(t *testing.T) {
	rl := newRateLimiter(5, 30*time.Millisecond, clientIPKey)

	hit := func(addr string) {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/tax/years", nil)
		req.RemoteAddr = addr
		rl.enforce(httptest.NewRecorder(), req)
	}

	hit("198.51.100.50:1111")
	hit("198.51.100.51:2222")
	hit("198.51.100.52:3333")

	rl.mu.Lock()
	before := len(rl.clients)
	rl.mu.Unlock()
	if before != 3 {
		t.Fatalf("expected three tracked keys, got %d", before)
	}

	time.Sleep(50 * time.Millisecond)
	hit("198.51.100.60:4444")

	rl.mu.Lock()
	after := len(rl.clients)
	_, stale := rl.clients["198.51.100.50"]
	rl.mu.Unlock()
	if stale {
		t.Fatal("expected expired key to be evicted")
	}
	if after != 1 {
		t.Fatalf("expected only the active key to remain, got %d", after)
	}
}

func TestLoginRateLimitKeyedByAccount(t *testing.T) {
	limited := LoginRateLimit(1, time.Minute)(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	attempt := func(account, addr string) int {
		body := bytes.NewBufferString(`{"account":"` + account + `","secret":"x"}`)
		req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", body)
		req.Header.Set("Content-Type", "application/json")
		req.RemoteAddr = addr
		rec := httptest.NewRecorder()
		limited.ServeHTTP(rec, req)
		return rec.Code
	}

	if code := attempt("calculator", "198.51.100.40:1111"); code != http.StatusNoContent {
		t.Fatalf("expected first attempt to pass, got %d", code)
	}
	if code := attempt("calculator", "198.51.100.41:2222"); code != http.StatusTooManyRequests {
		t.Fatalf("expected second attempt for same account to be throttled, got %d", code)
	}
	if code := attempt("reporting", "198.51.100.42:3333"); code != http.StatusNoContent {
		t.Fatalf("expected attempt for other account to pass, got %d", code)
	}
}
