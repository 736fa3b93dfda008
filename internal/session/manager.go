package session

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/ikyyy777/TPLM-website-wisata-desa-banjarpanepen/pkg/domain"
)

// Authenticator is the remote side of login and logout.
type Authenticator interface {
	Login(ctx context.Context, username, password string) (string, error)
	Logout(ctx context.Context, token string) error
}

// Manager is the single source of truth for the admin session. It is safe
// for concurrent use; state only changes through Login, Logout and Invalidate.
type Manager struct {
	mu     sync.RWMutex
	token  string
	store  Store
	auth   Authenticator
	logger *zap.Logger
}

// NewManager initialises the session from store. A store read failure is
// logged and treated as signed out.
func NewManager(store Store, auth Authenticator, logger *zap.Logger) *Manager {
	if logger == nil {
		logger = zap.NewNop()
	}
	m := &Manager{store: store, auth: auth, logger: logger}
	tok, err := store.Load()
	if err != nil {
		logger.Warn("load session token", zap.Error(err))
		tok = ""
	}
	m.token = tok
	return m
}

// Token returns the current token, or "" when signed out.
func (m *Manager) Token() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.token
}

// IsAuthenticated reports whether a token is held. Validity is the guard's job.
func (m *Manager) IsAuthenticated() bool {
	return m.Session().IsAuthenticated()
}

// Session returns a snapshot of the session state.
func (m *Manager) Session() domain.Session {
	return domain.Session{Token: m.Token()}
}

// Login exchanges credentials for a token. It returns false on rejected
// credentials, transport failure, or a response without a token; the previous
// state is left untouched in that case.
func (m *Manager) Login(ctx context.Context, username, password string) bool {
	tok, err := m.auth.Login(ctx, username, password)
	if err != nil {
		m.logger.Info("login failed", zap.String("username", username), zap.Error(err))
		return false
	}
	if tok == "" {
		m.logger.Info("login response carried no token", zap.String("username", username))
		return false
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.store.Save(tok); err != nil {
		// The session still works for this process.
		m.logger.Warn("persist session token", zap.Error(err))
	}
	m.token = tok
	m.logger.Info("logged in", zap.String("username", username))
	return true
}

// Logout clears local state first, then tells the API. A remote failure is
// logged and does not restore the session.
func (m *Manager) Logout(ctx context.Context) {
	m.mu.Lock()
	tok := m.token
	if tok == "" {
		m.mu.Unlock()
		m.logger.Info("logout without a session")
		return
	}
	m.clearLocked()
	m.mu.Unlock()

	if err := m.auth.Logout(ctx, tok); err != nil {
		m.logger.Warn("remote logout failed", zap.Error(err))
		return
	}
	m.logger.Info("logged out")
}

// Invalidate drops the session without contacting the API. The guard uses it
// when the remote check rejects the token.
func (m *Manager) Invalidate() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.token == "" {
		return
	}
	m.clearLocked()
	m.logger.Info("session invalidated")
}

func (m *Manager) clearLocked() {
	m.token = ""
	if err := m.store.Clear(); err != nil {
		m.logger.Warn("clear session token", zap.Error(err))
	}
}
