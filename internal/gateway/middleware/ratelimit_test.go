package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestRateLimiter_AllowExhaustsBurst(t *testing.T) {
	rl := NewRateLimiter(3)

	for i := 0; i < 3; i++ {
		if !rl.Allow("10.0.0.1") {
			t.Fatalf("request %d: expected to be admitted within the burst", i+1)
		}
	}
	if rl.Allow("10.0.0.1") {
		t.Fatal("expected the fourth request to be rejected")
	}
}

func TestRateLimiter_ClientsAreIndependent(t *testing.T) {
	rl := NewRateLimiter(1)

	if !rl.Allow("10.0.0.1") {
		t.Fatal("expected the first client to be admitted")
	}
	if !rl.Allow("10.0.0.2") {
		t.Fatal("expected the second client to be admitted")
	}
	if rl.Allow("10.0.0.1") {
		t.Fatal("expected the first client to be limited")
	}
}

func TestRateLimiter_Handler(t *testing.T) {
	rl := NewRateLimiter(1)
	handler := rl.Handler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/virements", nil)
	req.RemoteAddr = "10.0.0.1:52000"
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}

	rr = httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	if rr.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429, got %d", rr.Code)
	}
}
