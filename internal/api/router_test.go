package api

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"github.com/barbercommunity/marketplace/internal/core/service"
	"github.com/barbercommunity/marketplace/internal/infrastructure/memory"
)

const testSecret = "router-secret"

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()
	return NewRouter(Dependencies{
		AuthService: service.NewAuthService(memory.NewUserRepository(), testSecret, time.Hour),
		Catalog:     memory.SeedCatalog(),
		JWTSecret:   testSecret,
		Log:         zerolog.Nop(),
		Registry:    prometheus.NewRegistry(),
	})
}

func do(t *testing.T, h http.Handler, method, path, token, body string) (int, map[string]any) {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, r)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	var out map[string]any
	_ = json.Unmarshal(rec.Body.Bytes(), &out)
	return rec.Code, out
}

func register(t *testing.T, h http.Handler, email, role string) string {
	t.Helper()
	code, body := do(t, h, http.MethodPost, "/api/auth/register", "",
		`{"name":"Test","email":"`+email+`","password":"secret1","role":"`+role+`","location":"Cali"}`)
	if code != http.StatusCreated {
		t.Fatalf("register %s: status %d body %v", email, code, body)
	}
	token, _ := body["token"].(string)
	if token == "" {
		t.Fatalf("register %s: no token in %v", email, body)
	}
	return token
}

func TestRouter_RegisterLoginMe(t *testing.T) {
	h := newTestRouter(t)
	register(t, h, "ana@example.com", "CLIENTE")

	code, body := do(t, h, http.MethodPost, "/api/auth/login", "", `{"email":"ana@example.com","password":"secret1"}`)
	if code != http.StatusOK {
		t.Fatalf("login: %d %v", code, body)
	}
	token := body["token"].(string)

	code, body = do(t, h, http.MethodGet, "/api/auth/me", token, "")
	if code != http.StatusOK {
		t.Fatalf("me: %d %v", code, body)
	}
	user := body["user"].(map[string]any)
	if user["email"] != "ana@example.com" || user["role"] != "CLIENTE" {
		t.Fatalf("unexpected user: %v", user)
	}
}

func TestRouter_ErrorEnvelope(t *testing.T) {
	h := newTestRouter(t)
	register(t, h, "bob@example.com", "BARBERO")

	cases := []struct {
		name    string
		method  string
		path    string
		token   string
		body    string
		code    int
		message string
	}{
		{"bad password", http.MethodPost, "/api/auth/login", "", `{"email":"bob@example.com","password":"wrong1"}`, http.StatusUnauthorized, "Invalid credentials"},
		{"duplicate", http.MethodPost, "/api/auth/register", "", `{"name":"B","email":"bob@example.com","password":"secret1","role":"BARBERO"}`, http.StatusConflict, "user already exists"},
		{"me without token", http.MethodGet, "/api/auth/me", "", "", http.StatusUnauthorized, "missing authorization header"},
		{"me with garbage token", http.MethodGet, "/api/auth/me", "garbage", "", http.StatusUnauthorized, "invalid token"},
		{"unknown barber", http.MethodGet, "/api/barbers/99", "", "", http.StatusNotFound, "barber not found"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			code, body := do(t, h, tc.method, tc.path, tc.token, tc.body)
			if code != tc.code {
				t.Fatalf("expected %d, got %d (%v)", tc.code, code, body)
			}
			if body["message"] != tc.message {
				t.Fatalf("expected message %q, got %v", tc.message, body["message"])
			}
		})
	}
}

func TestRouter_ContactRequiresClient(t *testing.T) {
	h := newTestRouter(t)
	clientToken := register(t, h, "ana@example.com", "CLIENTE")
	providerToken := register(t, h, "bob@example.com", "BARBERO")
	msg := `{"barberId":"1","message":"hola","email":"ana@example.com"}`

	if code, _ := do(t, h, http.MethodPost, "/api/contact", "", msg); code != http.StatusUnauthorized {
		t.Fatalf("anonymous contact: expected 401, got %d", code)
	}
	if code, body := do(t, h, http.MethodPost, "/api/contact", providerToken, msg); code != http.StatusForbidden || body["message"] != "forbidden" {
		t.Fatalf("provider contact: expected 403 forbidden, got %d %v", code, body)
	}
	if code, body := do(t, h, http.MethodPost, "/api/contact", clientToken, msg); code != http.StatusCreated {
		t.Fatalf("client contact: expected 201, got %d %v", code, body)
	}

	_, body := do(t, h, http.MethodGet, "/api/barbers/1", "", "")
	stats := body["stats"].(map[string]any)
	if stats["totalContacts"].(float64) != 1 {
		t.Fatalf("expected one recorded contact, got %v", stats)
	}
}

func TestRouter_CatalogRoutes(t *testing.T) {
	h := newTestRouter(t)

	code, body := do(t, h, http.MethodGet, "/api/barbers/cities/list", "", "")
	if code != http.StatusOK {
		t.Fatalf("cities: %d", code)
	}
	cities := body["cities"].([]any)
	if len(cities) != 3 || cities[0] != "Bogotá" {
		t.Fatalf("unexpected cities: %v", cities)
	}

	code, body = do(t, h, http.MethodGet, "/api/posts?limit=1", "", "")
	if code != http.StatusOK {
		t.Fatalf("posts: %d", code)
	}
	if body["pagination"].(map[string]any)["hasMore"] != true {
		t.Fatalf("expected more posts: %v", body["pagination"])
	}
}

func TestRouter_HealthAndMetrics(t *testing.T) {
	h := newTestRouter(t)

	if code, body := do(t, h, http.MethodGet, "/health", "", ""); code != http.StatusOK || body["status"] != "ok" {
		t.Fatalf("liveness: %d %v", code, body)
	}
	if code, _ := do(t, h, http.MethodGet, "/health/ready", "", ""); code != http.StatusOK {
		t.Fatalf("readiness: %d", code)
	}

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), "marketplace_api_requests_total") {
		t.Fatalf("metrics endpoint missing request counter: %d", rec.Code)
	}
}
