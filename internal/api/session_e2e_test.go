package api_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"github.com/barbercommunity/marketplace/internal/api"
	"github.com/barbercommunity/marketplace/internal/core/domain"
	"github.com/barbercommunity/marketplace/internal/core/service"
	"github.com/barbercommunity/marketplace/internal/infrastructure/credstore"
	"github.com/barbercommunity/marketplace/internal/infrastructure/http/apiclient"
	"github.com/barbercommunity/marketplace/internal/infrastructure/memory"
)

const e2eSecret = "e2e-secret"

// authLog records the Authorization header of every request by path.
type authLog struct {
	mu   sync.Mutex
	seen map[string][]string
}

func (l *authLog) wrap(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		l.mu.Lock()
		l.seen[r.URL.Path] = append(l.seen[r.URL.Path], r.Header.Get("Authorization"))
		l.mu.Unlock()
		next.ServeHTTP(w, r)
	})
}

func (l *authLog) last(path string) string {
	l.mu.Lock()
	defer l.mu.Unlock()
	h := l.seen[path]
	if len(h) == 0 {
		return "<none>"
	}
	return h[len(h)-1]
}

type harness struct {
	srv     *httptest.Server
	log     *authLog
	users   *memory.UserRepository
	authSvc *service.AuthService
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	users := memory.NewUserRepository()
	authSvc := service.NewAuthService(users, e2eSecret, time.Hour)
	router := api.NewRouter(api.Dependencies{
		AuthService: authSvc,
		Catalog:     memory.SeedCatalog(),
		JWTSecret:   e2eSecret,
		Log:         zerolog.Nop(),
		Registry:    prometheus.NewRegistry(),
	})
	l := &authLog{seen: make(map[string][]string)}
	srv := httptest.NewServer(l.wrap(router))
	t.Cleanup(srv.Close)
	return &harness{srv: srv, log: l, users: users, authSvc: authSvc}
}

// boot mimics a process start: seed from store, bind, verify.
func (h *harness) boot(ctx context.Context, store *credstore.MemoryStore) (*service.SessionManager, *service.MarketplaceService) {
	client := apiclient.New(h.srv.URL)
	mgr := service.NewSessionManager(ctx, store, client, zerolog.Nop())
	client.BindCredentials(mgr)
	mgr.Start(ctx)
	return mgr, service.NewMarketplaceService(client, mgr, zerolog.Nop())
}

func TestSession_RegisterContactLogout(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t)
	store := credstore.NewMemoryStore()
	mgr, market := h.boot(ctx, store)

	if snap := mgr.Snapshot(); snap.State() != domain.StateAnonymous {
		t.Fatalf("expected anonymous start, got %s", snap.State())
	}

	user, err := mgr.Register(ctx, domain.Registration{
		Name: "Ana", Email: "ana@example.com", Password: "secret1", Role: domain.RoleClient, Location: "Cali",
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if user.Role != domain.RoleClient {
		t.Fatalf("unexpected role %s", user.Role)
	}

	token, _ := store.Get(ctx)
	if token == "" || token != mgr.Credential() {
		t.Fatalf("stored credential %q does not match session %q", token, mgr.Credential())
	}

	if err := market.Contact(ctx, domain.ContactMessage{BarberID: "1", Message: "hola", Email: "ana@example.com"}); err != nil {
		t.Fatalf("contact: %v", err)
	}
	if got := h.log.last("/api/contact"); got != "Bearer "+token {
		t.Fatalf("contact carried %q, want bearer token", got)
	}

	mgr.Logout(ctx)
	if _, err := market.Cities(ctx); err != nil {
		t.Fatalf("cities: %v", err)
	}
	if got := h.log.last("/api/barbers/cities/list"); got != "" {
		t.Fatalf("request after logout carried %q", got)
	}
	if stored, _ := store.Get(ctx); stored != "" {
		t.Fatalf("expected store cleared, got %q", stored)
	}
}

func TestSession_RestoresStoredCredential(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t)
	token, _, err := h.authSvc.Register(ctx, domain.Registration{
		Name: "Beto", Email: "beto@example.com", Password: "secret1", Role: domain.RoleProvider,
	})
	if err != nil {
		t.Fatalf("seed user: %v", err)
	}

	store := credstore.NewMemoryStore()
	_ = store.Set(ctx, token)
	mgr, market := h.boot(ctx, store)

	snap := mgr.Snapshot()
	if snap.State() != domain.StateAuthenticated || !snap.IsProvider() || snap.CanContact() || !snap.CanCreatePost() {
		t.Fatalf("unexpected snapshot: %+v", snap)
	}
	if got := h.log.last("/api/auth/me"); got != "Bearer "+token {
		t.Fatalf("verification carried %q", got)
	}

	err = market.Contact(ctx, domain.ContactMessage{BarberID: "1", Message: "hola", Email: "beto@example.com"})
	if !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden for provider, got %v", err)
	}
	if got := h.log.last("/api/contact"); got != "<none>" {
		t.Fatalf("gated contact must not reach the server")
	}
}

func TestSession_RejectedCredentialLogsOut(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t)

	other := service.NewAuthService(memory.NewUserRepository(), "another-secret", time.Hour)
	forged, _, err := other.Register(ctx, domain.Registration{
		Name: "Eve", Email: "eve@example.com", Password: "secret1", Role: domain.RoleClient,
	})
	if err != nil {
		t.Fatalf("forge token: %v", err)
	}

	store := credstore.NewMemoryStore()
	_ = store.Set(ctx, forged)
	mgr, _ := h.boot(ctx, store)

	snap := mgr.Snapshot()
	if snap.State() != domain.StateAnonymous || snap.Credential != "" {
		t.Fatalf("expected anonymous after rejection, got %+v", snap)
	}
	if stored, _ := store.Get(ctx); stored != "" {
		t.Fatalf("rejected credential still stored: %q", stored)
	}
}

func TestSession_LoginFailureKeepsState(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t)
	if _, _, err := h.authSvc.Register(ctx, domain.Registration{
		Name: "Ana", Email: "ana@example.com", Password: "secret1", Role: domain.RoleClient,
	}); err != nil {
		t.Fatalf("seed user: %v", err)
	}

	store := credstore.NewMemoryStore()
	mgr, _ := h.boot(ctx, store)

	_, err := mgr.Login(ctx, "ana@example.com", "wrong-password")
	var authErr *domain.AuthError
	if !errors.As(err, &authErr) || authErr.Message != "Invalid credentials" {
		t.Fatalf("expected server message, got %v", err)
	}
	if mgr.Snapshot().IsAuthenticated() {
		t.Fatalf("failed login must not authenticate")
	}

	if _, err := mgr.Login(ctx, "ANA@example.com", "secret1"); err != nil {
		t.Fatalf("login: %v", err)
	}
	if !mgr.Snapshot().CanContact() {
		t.Fatalf("client should be able to contact after login")
	}
}
