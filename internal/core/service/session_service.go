package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/barbercommunity/marketplace/internal/core/domain"
	"github.com/barbercommunity/marketplace/internal/core/ports"
	"github.com/barbercommunity/marketplace/internal/metrics"
	"github.com/barbercommunity/marketplace/internal/pkg/validate"
)

const (
	loginFallback    = "unable to sign in"
	registerFallback = "unable to register"
)

// SessionManager owns the client session for the whole process. It seeds the
// credential from the store, verifies it once at startup, commits login and
// registration results, and derives the capability flags consumers read.
//
// Network calls run outside the lock. Every credential change bumps epoch so
// a verification that finishes after a logout or login is discarded.
type SessionManager struct {
	store     ports.CredentialStore
	api       ports.AuthAPI
	validator *validate.Validator
	log       zerolog.Logger

	startOnce sync.Once

	mu         sync.Mutex
	user       *domain.User
	credential string
	loading    bool
	epoch      uint64
	version    uint64
	subs       map[int]func(domain.Session)
	nextSub    int
}

// NewSessionManager reads the stored credential and returns a manager in the
// verifying state. Call Start to resolve it.
func NewSessionManager(ctx context.Context, store ports.CredentialStore, api ports.AuthAPI, log zerolog.Logger) *SessionManager {
	credential, err := store.Get(ctx)
	if err != nil {
		metrics.CredentialStoreErrorsTotal.WithLabelValues("get").Inc()
		log.Warn().Err(err).Msg("reading stored credential failed, starting anonymous")
		credential = ""
	}
	return &SessionManager{
		store:      store,
		api:        api,
		validator:  validate.New(),
		log:        log,
		credential: credential,
		loading:    true,
		subs:       make(map[int]func(domain.Session)),
	}
}

// Start runs the startup verification. Only the first call does any work;
// later calls return immediately.
func (m *SessionManager) Start(ctx context.Context) {
	m.startOnce.Do(func() { m.verify(ctx) })
}

func (m *SessionManager) verify(ctx context.Context) {
	m.mu.Lock()
	if !m.loading {
		// A login or logout already settled the session.
		m.mu.Unlock()
		return
	}
	credential, epoch := m.credential, m.epoch
	if credential == "" {
		m.loading = false
		snap := m.publishLocked(domain.StateAnonymous, "startup")
		m.mu.Unlock()
		m.notify(snap)
		return
	}
	m.mu.Unlock()

	start := time.Now()
	user, err := m.api.Me(ctx, credential)
	if err == nil {
		err = user.Validate()
	}
	result := "ok"
	if err != nil {
		result = "rejected"
	}
	metrics.VerificationDuration.WithLabelValues(result).Observe(time.Since(start).Seconds())

	m.mu.Lock()
	if m.epoch != epoch {
		m.mu.Unlock()
		metrics.StaleVerificationsTotal.Inc()
		m.log.Debug().Msg("discarding stale verification result")
		return
	}

	var snap domain.Session
	if err != nil {
		m.log.Info().Err(err).Msg("stored credential rejected")
		snap = m.clearLocked(ctx, "verify")
	} else {
		m.user = user.Clone()
		m.loading = false
		snap = m.publishLocked(domain.StateAuthenticated, "verify")
		m.log.Info().Str("user_id", string(user.ID)).Str("role", string(user.Role)).Msg("session authenticated")
	}
	m.mu.Unlock()
	m.notify(snap)
}

// Login authenticates against the API and, on success, commits the returned
// user and token together. On failure the session is left untouched and the
// error is a *domain.AuthError carrying a message fit for display.
func (m *SessionManager) Login(ctx context.Context, email, password string) (*domain.User, error) {
	req := domain.LoginRequest{Email: strings.TrimSpace(email), Password: password}
	if err := m.validator.Struct(req); err != nil {
		return nil, m.authFailure("login", "invalid", err.Error(), err)
	}

	res, err := m.api.Login(ctx, req)
	if err != nil {
		return nil, m.authFailure("login", classify(err), apiMessage(err, loginFallback), err)
	}
	return m.commit(ctx, "login", res, loginFallback)
}

// Register creates an account and commits the session the same way Login does.
func (m *SessionManager) Register(ctx context.Context, reg domain.Registration) (*domain.User, error) {
	reg.Name = strings.TrimSpace(reg.Name)
	reg.Email = strings.TrimSpace(reg.Email)
	reg.Location = strings.TrimSpace(reg.Location)
	if err := m.validator.Struct(reg); err != nil {
		return nil, m.authFailure("register", "invalid", err.Error(), err)
	}
	if !reg.Role.Valid() {
		err := fmt.Errorf("%w: %q", domain.ErrInvalidRole, reg.Role)
		return nil, m.authFailure("register", "invalid", "role must be one of: BARBERO CLIENTE", err)
	}

	res, err := m.api.Register(ctx, reg)
	if err != nil {
		return nil, m.authFailure("register", classify(err), apiMessage(err, registerFallback), err)
	}
	return m.commit(ctx, "register", res, registerFallback)
}

// commit applies a successful auth response: durable store first, then the
// in-memory state. Nothing is applied unless both user and token are usable.
func (m *SessionManager) commit(ctx context.Context, op string, res *ports.AuthResult, fallback string) (*domain.User, error) {
	if res == nil || res.Token == "" {
		err := fmt.Errorf("%w: missing token", domain.ErrMalformedResponse)
		return nil, m.authFailure(op, "malformed", fallback, err)
	}
	if err := res.User.Validate(); err != nil {
		return nil, m.authFailure(op, "malformed", fallback, err)
	}

	m.mu.Lock()
	if err := m.store.Set(context.WithoutCancel(ctx), res.Token); err != nil {
		m.mu.Unlock()
		metrics.CredentialStoreErrorsTotal.WithLabelValues("set").Inc()
		return nil, m.authFailure(op, "store", fallback, fmt.Errorf("persist credential: %w", err))
	}
	m.credential = res.Token
	m.user = res.User.Clone()
	m.loading = false
	m.epoch++
	snap := m.publishLocked(domain.StateAuthenticated, op)
	m.mu.Unlock()

	metrics.AuthRequestsTotal.WithLabelValues(op, "ok").Inc()
	m.log.Info().Str("op", op).Str("user_id", string(res.User.ID)).Str("role", string(res.User.Role)).Msg("session authenticated")
	m.notify(snap)
	return res.User.Clone(), nil
}

// Logout clears the session, the stored credential and therefore the
// credential attached to outgoing requests. It never fails; a store error is
// logged. Calling it on an already anonymous session changes nothing.
func (m *SessionManager) Logout(ctx context.Context) {
	m.mu.Lock()
	settled := m.user == nil && m.credential == "" && !m.loading
	if settled {
		m.mu.Unlock()
		if err := m.store.Clear(ctx); err != nil {
			metrics.CredentialStoreErrorsTotal.WithLabelValues("clear").Inc()
			m.log.Warn().Err(err).Msg("clearing stored credential failed")
		}
		return
	}
	snap := m.clearLocked(ctx, "logout")
	m.mu.Unlock()
	m.notify(snap)
}

// clearLocked performs the full logout. m.mu must be held.
func (m *SessionManager) clearLocked(ctx context.Context, cause string) domain.Session {
	if err := m.store.Clear(context.WithoutCancel(ctx)); err != nil {
		metrics.CredentialStoreErrorsTotal.WithLabelValues("clear").Inc()
		m.log.Warn().Err(err).Msg("clearing stored credential failed")
	}
	m.user = nil
	m.credential = ""
	m.loading = false
	m.epoch++
	m.log.Info().Str("cause", cause).Msg("session cleared")
	return m.publishLocked(domain.StateAnonymous, cause)
}

// publishLocked bumps the version and returns the snapshot to deliver once
// the lock is released. m.mu must be held.
func (m *SessionManager) publishLocked(state domain.SessionState, cause string) domain.Session {
	m.version++
	metrics.SessionTransitionsTotal.WithLabelValues(string(state), cause).Inc()
	return m.snapshotLocked()
}

func (m *SessionManager) snapshotLocked() domain.Session {
	return domain.Session{
		User:       m.user.Clone(),
		Credential: m.credential,
		Loading:    m.loading,
		Version:    m.version,
	}
}

// Snapshot returns the current session.
func (m *SessionManager) Snapshot() domain.Session {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.snapshotLocked()
}

// Credential returns the credential to attach to the next outgoing request,
// or an empty string when anonymous.
func (m *SessionManager) Credential() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.credential
}

// Subscribe registers fn to receive every committed snapshot. Snapshots may
// arrive out of order under concurrent transitions; compare Version to drop
// older ones. The returned func removes the subscription.
func (m *SessionManager) Subscribe(fn func(domain.Session)) (cancel func()) {
	m.mu.Lock()
	id := m.nextSub
	m.nextSub++
	m.subs[id] = fn
	m.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			m.mu.Lock()
			delete(m.subs, id)
			m.mu.Unlock()
		})
	}
}

func (m *SessionManager) notify(snap domain.Session) {
	m.mu.Lock()
	subs := make([]func(domain.Session), 0, len(m.subs))
	for _, fn := range m.subs {
		subs = append(subs, fn)
	}
	m.mu.Unlock()

	for _, fn := range subs {
		fn(snap)
	}
}

func (m *SessionManager) authFailure(op, result, message string, cause error) error {
	metrics.AuthRequestsTotal.WithLabelValues(op, result).Inc()
	m.log.Warn().Err(cause).Str("op", op).Str("result", result).Msg("authentication failed")
	return &domain.AuthError{Op: op, Message: message, Err: cause}
}

// apiMessage prefers the server-provided explanation.
func apiMessage(err error, fallback string) string {
	var apiErr *ports.APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return fallback
}

func classify(err error) string {
	var apiErr *ports.APIError
	switch {
	case errors.Is(err, domain.ErrMalformedResponse), errors.Is(err, domain.ErrInvalidRole):
		return "malformed"
	case errors.As(err, &apiErr):
		switch {
		case apiErr.StatusCode == http.StatusUnauthorized, apiErr.StatusCode == http.StatusForbidden:
			return "rejected"
		case apiErr.StatusCode >= 400 && apiErr.StatusCode < 500:
			return "invalid"
		default:
			return "server"
		}
	default:
		return "transport"
	}
}
