package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/mamadbah2/stockdesk/internal/domain/models"
	"github.com/mamadbah2/stockdesk/pkg/clients/backend"
)

var (
	// ErrNoSession is returned when no bearer token is stored.
	ErrNoSession = errors.New("no active session")
	// ErrExpired is returned when the stored token is past its expiry.
	ErrExpired = errors.New("session expired")
)

// Credentials is the persisted session state.
type Credentials struct {
	Token     string       `json:"token"`
	CSRFToken string       `json:"csrfToken,omitempty"`
	User      *models.User `json:"user,omitempty"`
}

// Manager owns the session: it is the only place credentials are read from,
// persisted, or invalidated.
type Manager struct {
	mu        sync.RWMutex
	creds     Credentials
	store     Store
	listeners []func()
}

// NewManager loads any persisted credentials from store.
func NewManager(store Store) (*Manager, error) {
	m := &Manager{store: store}
	if store == nil {
		return m, nil
	}

	creds, err := store.Load()
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}
	m.creds = creds
	return m, nil
}

// Token returns the current bearer token.
func (m *Manager) Token() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.creds.Token
}

// CSRFToken returns the current CSRF token.
func (m *Manager) CSRFToken() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.creds.CSRFToken
}

// User returns a copy of the signed-in user, if known.
func (m *Manager) User() (models.User, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.creds.User == nil {
		return models.User{}, false
	}
	return *m.creds.User, true
}

// Set replaces the credentials and persists them.
func (m *Manager) Set(creds Credentials) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.creds = creds
	if m.store == nil {
		return nil
	}
	return m.store.Save(creds)
}

// SetUser records the user returned by the whoami endpoint.
func (m *Manager) SetUser(user models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.creds.User = &user
	if m.store == nil {
		return nil
	}
	return m.store.Save(m.creds)
}

// OnInvalidate registers fn to run after the session has been cleared.
func (m *Manager) OnInvalidate(fn func()) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.listeners = append(m.listeners, fn)
}

// Invalidate clears credentials from memory and storage, then notifies listeners.
func (m *Manager) Invalidate() error {
	m.mu.Lock()
	m.creds = Credentials{}
	listeners := append([]func(){}, m.listeners...)
	var err error
	if m.store != nil {
		err = m.store.Clear()
	}
	m.mu.Unlock()

	for _, fn := range listeners {
		fn()
	}
	return err
}

// Expired reports whether the bearer token's exp claim is before now. Tokens
// that are not JWTs or carry no exp never expire locally; the API decides.
func (m *Manager) Expired(now time.Time) bool {
	token := m.Token()
	if token == "" {
		return true
	}

	claims := jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err != nil {
		return false
	}
	if claims.ExpiresAt == nil {
		return false
	}
	return !now.Before(claims.ExpiresAt.Time)
}

// WhoAmI resolves the user owning the current token.
type WhoAmI func(ctx context.Context) (*models.User, error)

// Bootstrap validates the stored session before any service call is made.
// Expired tokens and tokens the API rejects with 401 clear the session; any
// other failure is returned with the credentials left in place.
func Bootstrap(ctx context.Context, m *Manager, whoami WhoAmI, now time.Time) (*models.User, error) {
	if m.Token() == "" {
		return nil, ErrNoSession
	}

	if m.Expired(now) {
		if err := m.Invalidate(); err != nil {
			return nil, fmt.Errorf("clear expired session: %w", err)
		}
		return nil, ErrExpired
	}

	user, err := whoami(ctx)
	if err != nil {
		if !errors.Is(err, backend.ErrUnauthorized) {
			return nil, fmt.Errorf("validate session: %w", err)
		}
		if clearErr := m.Invalidate(); clearErr != nil {
			return nil, errors.Join(err, clearErr)
		}
		return nil, fmt.Errorf("validate session: %w", err)
	}

	if err := m.SetUser(*user); err != nil {
		return nil, fmt.Errorf("persist session user: %w", err)
	}
	return user, nil
}
