package store

import (
	"log/slog"
	"strings"
	"sync"

	"github.com/nikolayk812/storefront-state/internal/domain"
)

// SessionStore owns the identity of the current user.
type SessionStore struct {
	mu      sync.RWMutex
	session domain.Session

	changes *Broadcaster[domain.Session]
	metrics *Metrics
	log     *slog.Logger
}

func NewSessionStore(opts ...Option) *SessionStore {
	cfg := newConfig(opts)

	return &SessionStore{
		session: domain.Session{Username: domain.GuestUsername},
		changes: NewBroadcaster[domain.Session](cfg.buffer),
		metrics: cfg.metrics,
		log:     cfg.log.With(slog.String("store", "session")),
	}
}

// Login accepts any username, including an empty one.
func (s *SessionStore) Login(username string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if strings.TrimSpace(username) == "" {
		s.log.Warn("login with blank username")
	}

	s.session.Username = username
	s.session.IsLoggedIn = true
	s.log.Debug("logged in", slog.String("username", username))

	s.changed(opLogin)
}

// Logout resets the session to the guest user. Logging out twice is a no-op.
func (s *SessionStore) Logout() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.session.Username = domain.GuestUsername
	s.session.IsLoggedIn = false
	s.log.Debug("logged out")

	s.changed(opLogout)
}

func (s *SessionStore) SetPreferDarkMode(prefer bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.session.PreferDarkMode = prefer

	s.changed(opPreferences)
}

func (s *SessionStore) Username() string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.session.Username
}

func (s *SessionStore) IsLoggedIn() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.session.IsLoggedIn
}

func (s *SessionStore) PreferDarkMode() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.session.PreferDarkMode
}

func (s *SessionStore) Snapshot() domain.Session {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.session
}

// Subscribe delivers a snapshot after every mutation until cancel is called.
func (s *SessionStore) Subscribe() (<-chan domain.Session, func()) {
	return s.changes.Subscribe()
}

// Close ends every subscription.
func (s *SessionStore) Close() {
	s.changes.Close()
}

func (s *SessionStore) changed(op string) {
	if s.metrics != nil {
		s.metrics.sessionChanged(op)
	}

	s.changes.Publish(s.session)
}
