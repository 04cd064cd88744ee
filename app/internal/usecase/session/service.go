package session

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	cartuc "example.com/branch-cart/app/internal/usecase/cart"
	checkoutuc "example.com/branch-cart/app/internal/usecase/checkout"
)

var ErrSessionNotFound = errors.New("session not found")

// Outbox is a dispatcher whose deep links are handed back to the client.
type Outbox interface {
	checkoutuc.Dispatcher
	Drain() []string
}

// Session is one shopper's cart and checkout. Every use goes through Do.
type Session struct {
	ID string

	mu       sync.Mutex
	cart     *cartuc.Store
	checkout *checkoutuc.Sequencer
	outbox   Outbox
	lastSeen time.Time
}

// Scope is what Do hands to its callback while the session is locked.
type Scope struct {
	Cart     *cartuc.Store
	Checkout *checkoutuc.Sequencer
	// Links returns deep links produced by dispatches since the last call.
	Links func() []string
}

func (s *Session) Do(fn func(sc Scope) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(Scope{Cart: s.cart, Checkout: s.checkout, Links: s.outbox.Drain})
}

// Config.NewOutbox is required; it builds the dispatcher of each new session.
type Config struct {
	TTL            time.Duration
	NewOutbox      func(logger *zap.Logger) Outbox
	RememberBranch bool
	Logger         *zap.Logger
	Now            func() time.Time
	NewID          func() string
}

// Manager owns every live session. Idle sessions expire after TTL.
type Manager struct {
	mu       sync.Mutex
	sessions map[string]*Session
	cfg      Config
	logger   *zap.Logger
}

func NewManager(cfg Config) *Manager {
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	if cfg.NewID == nil {
		cfg.NewID = uuid.NewString
	}
	return &Manager{
		sessions: make(map[string]*Session),
		cfg:      cfg,
		logger:   cfg.Logger,
	}
}

func (m *Manager) Create(ctx context.Context) *Session {
	now := m.cfg.Now()
	id := m.cfg.NewID()

	store := cartuc.NewStore()
	logger := m.logger.With(zap.String("session_id", id))
	outbox := m.cfg.NewOutbox(logger)
	sess := &Session{
		ID:     id,
		cart:   store,
		outbox: outbox,
		checkout: checkoutuc.NewSequencer(store, outbox, checkoutuc.Config{
			RememberBranch: m.cfg.RememberBranch,
			Logger:         logger,
			Now:            m.cfg.Now,
		}),
		lastSeen: now,
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.sweepLocked(now)
	m.sessions[id] = sess
	logger.Info("session created")
	return sess
}

func (m *Manager) Get(ctx context.Context, id string) (*Session, error) {
	now := m.cfg.Now()

	m.mu.Lock()
	defer m.mu.Unlock()
	sess, ok := m.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	if m.expired(sess, now) {
		delete(m.sessions, id)
		return nil, ErrSessionNotFound
	}
	sess.lastSeen = now
	return sess, nil
}

func (m *Manager) End(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.sessions[id]; !ok {
		return ErrSessionNotFound
	}
	delete(m.sessions, id)
	m.logger.Info("session ended", zap.String("session_id", id))
	return nil
}

func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}

func (m *Manager) sweepLocked(now time.Time) {
	for id, sess := range m.sessions {
		if m.expired(sess, now) {
			delete(m.sessions, id)
		}
	}
}

func (m *Manager) expired(sess *Session, now time.Time) bool {
	return m.cfg.TTL > 0 && now.Sub(sess.lastSeen) > m.cfg.TTL
}
