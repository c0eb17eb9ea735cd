package forum

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"
	"time"
)

// DefaultAuthDelay is the simulated round trip applied to Login and Register.
const DefaultAuthDelay = time.Second

// Session holds the current identity of one viewer and keeps it in durable storage.
type Session struct {
	dir      *Directory
	storage  SessionStorage
	delay    time.Duration
	logger   *slog.Logger
	recorder Recorder

	mu      sync.RWMutex
	current *Identity
	loading bool
}

type SessionOption func(*Session)

func WithAuthDelay(d time.Duration) SessionOption {
	return func(s *Session) { s.delay = d }
}

func WithLogger(l *slog.Logger) SessionOption {
	return func(s *Session) {
		if l != nil {
			s.logger = l
		}
	}
}

func WithSessionRecorder(r Recorder) SessionOption {
	return func(s *Session) {
		if r != nil {
			s.recorder = r
		}
	}
}

// NewSession restores the identity found in storage. Missing or malformed
// data, or an identity the directory no longer knows, starts the session
// unauthenticated.
func NewSession(ctx context.Context, dir *Directory, storage SessionStorage, opts ...SessionOption) *Session {
	s := &Session{
		dir:      dir,
		storage:  storage,
		delay:    DefaultAuthDelay,
		logger:   slog.Default(),
		recorder: nopRecorder{},
		loading:  true,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.restore(ctx)
	return s
}

func (s *Session) restore(ctx context.Context) {
	defer s.setLoading(false)

	data, err := s.storage.Load(ctx)
	if err != nil {
		s.logger.Warn("session restore failed", slog.String("error", err.Error()))
		return
	}
	if len(data) == 0 {
		return
	}
	var id Identity
	if err := json.Unmarshal(data, &id); err != nil || id.Email == "" {
		s.logger.Warn("discarding malformed session")
		s.forget(ctx)
		return
	}
	if !s.dir.Known(id) {
		s.logger.Info("discarding session for unknown account", slog.Int64("user_id", id.ID))
		s.forget(ctx)
		return
	}
	s.mu.Lock()
	s.current = &id
	s.mu.Unlock()
}

// Current returns the logged in identity, if any.
func (s *Session) Current() (Identity, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.current == nil {
		return Identity{}, false
	}
	return *s.current, true
}

// Loading is true while a restore, Login or Register is in flight.
func (s *Session) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

func (s *Session) setLoading(v bool) {
	s.mu.Lock()
	s.loading = v
	s.mu.Unlock()
}

// Login reports whether email and password match a known account. The delay
// always runs to completion; ctx only reaches the storage.
func (s *Session) Login(ctx context.Context, email, password string) bool {
	s.setLoading(true)
	defer s.setLoading(false)
	time.Sleep(s.delay)

	id, ok, err := s.dir.Authenticate(email, password)
	if err != nil {
		s.logger.Error("password check failed", slog.String("error", err.Error()))
	}
	s.recorder.RecordAuthAttempt("login", ok)
	if !ok {
		return false
	}
	s.become(ctx, id)
	return true
}

// Register creates an account and logs it in. It reports false when the
// email is already registered or the role is unknown.
func (s *Session) Register(ctx context.Context, name, email, password string, role Role) bool {
	s.setLoading(true)
	defer s.setLoading(false)
	time.Sleep(s.delay)

	if !role.Valid() {
		s.recorder.RecordAuthAttempt("register", false)
		return false
	}
	id, ok, err := s.dir.Register(name, email, password, role)
	if err != nil {
		s.logger.Error("register failed", slog.String("error", err.Error()))
	}
	s.recorder.RecordAuthAttempt("register", ok)
	if !ok {
		return false
	}
	s.become(ctx, id)
	return true
}

// Logout forgets the identity here and in storage.
func (s *Session) Logout(ctx context.Context) {
	s.forget(ctx)
}

func (s *Session) become(ctx context.Context, id Identity) {
	s.mu.Lock()
	s.current = &id
	s.mu.Unlock()

	data, err := json.Marshal(id)
	if err == nil {
		err = s.storage.Save(ctx, data)
	}
	if err != nil {
		s.logger.Warn("session not persisted", slog.Int64("user_id", id.ID), slog.String("error", err.Error()))
	}
}

func (s *Session) forget(ctx context.Context) {
	s.mu.Lock()
	s.current = nil
	s.mu.Unlock()
	if err := s.storage.Remove(ctx); err != nil {
		s.logger.Warn("session not removed", slog.String("error", err.Error()))
	}
}
