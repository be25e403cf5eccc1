package gateway

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/d-sar/poc/internal/gateway/config"
)

func testConfig(upstream string) config.Config {
	return config.Config{
		ServerPort:             "8080",
		JWTSecret:              "test-secret",
		BeneficiaireServiceURL: upstream,
		VirementServiceURL:     upstream,
		ChatbotServiceURL:      upstream,
		RateLimitPerMinute:     1000,
	}
}

func signToken(t *testing.T, subject string) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   subject,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	})
	signed, err := token.SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatalf("failed to sign token: %v", err)
	}
	return signed
}

func TestRouter_HealthIsOpen(t *testing.T) {
	router, err := NewRouter(testConfig("http://localhost:1"))
	if err != nil {
		t.Fatalf("NewRouter returned error: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
}

func TestRouter_ProtectedRouteRequiresToken(t *testing.T) {
	router, err := NewRouter(testConfig("http://localhost:1"))
	if err != nil {
		t.Fatalf("NewRouter returned error: %v", err)
	}

	for _, path := range []string{"/beneficiaires", "/virements/5", "/chat"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		if rr.Code != http.StatusUnauthorized {
			t.Fatalf("%s: expected 401 without a token, got %d", path, rr.Code)
		}
	}
}

func TestRouter_ProxiesWithSubjectHeader(t *testing.T) {
	var gotUserID, gotPath string
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUserID = r.Header.Get("X-User-ID")
		gotPath = r.URL.Path
		w.Write([]byte("[]"))
	}))
	defer upstream.Close()

	router, err := NewRouter(testConfig(upstream.URL))
	if err != nil {
		t.Fatalf("NewRouter returned error: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/virements/5", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, "user-123"))
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200 from the upstream, got %d: %s", rr.Code, rr.Body.String())
	}
	if gotPath != "/virements/5" {
		t.Fatalf("expected the path forwarded untouched, got %q", gotPath)
	}
	if gotUserID != "user-123" {
		t.Fatalf("expected the verified subject forwarded as X-User-ID, got %q", gotUserID)
	}
}

func TestRouter_UnreachableUpstreamIs502(t *testing.T) {
	router, err := NewRouter(testConfig("http://127.0.0.1:1"))
	if err != nil {
		t.Fatalf("NewRouter returned error: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/virements", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, "user-123"))
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusBadGateway {
		t.Fatalf("expected 502, got %d", rr.Code)
	}
}
