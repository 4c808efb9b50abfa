package tokenstore

import (
	"context"
	"sync"

	"daily-planner-go/internal/domain/prefs"
	"daily-planner-go/pkg/logger"
)

// Store persists a single bearer token under one preferences key.
// Reads are served from memory once loaded; writes go through to storage.
type Store struct {
	mu     sync.RWMutex
	prefs  prefs.Store
	key    string
	sealer *Sealer
	log    logger.Logger

	loaded bool
	token  string
}

type Option func(*Store)

// WithSealer encrypts the token before it reaches storage.
func WithSealer(sealer *Sealer) Option {
	return func(s *Store) {
		s.sealer = sealer
	}
}

func WithLogger(log logger.Logger) Option {
	return func(s *Store) {
		s.log = log
	}
}

func New(store prefs.Store, key string, opts ...Option) *Store {
	s := &Store{
		prefs: store,
		key:   key,
		log:   logger.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Get returns the last stored token or "" when there is none. Storage
// failures read as "no token" so callers fall back to the logged-out flow.
func (s *Store) Get(ctx context.Context) string {
	s.mu.RLock()
	if s.loaded {
		token := s.token
		s.mu.RUnlock()
		return token
	}
	s.mu.RUnlock()

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.loaded {
		return s.token
	}

	raw, err := prefs.GetString(ctx, s.prefs, s.key)
	if err != nil {
		s.log.InternalError("tokenstore.get: read failed", err, "key", s.key)
		return ""
	}

	token := raw
	if raw != "" && s.sealer != nil {
		token, err = s.sealer.Open(raw)
		if err != nil {
			s.log.BusinessError("tokenstore.get: sealed token unreadable", err, "key", s.key)
			token = ""
		}
	}

	s.token = token
	s.loaded = true
	return token
}

func (s *Store) Set(ctx context.Context, token string) error {
	if token == "" {
		return s.Clear(ctx)
	}

	stored := token
	if s.sealer != nil {
		sealed, err := s.sealer.Seal(token)
		if err != nil {
			return err
		}
		stored = sealed
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.token = token
	s.loaded = true
	if err := s.prefs.Set(ctx, s.key, stored); err != nil {
		s.log.InternalError("tokenstore.set: write failed", err, "key", s.key)
		return err
	}
	return nil
}

func (s *Store) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.token = ""
	s.loaded = true
	if err := s.prefs.Delete(ctx, s.key); err != nil {
		s.log.InternalError("tokenstore.clear: delete failed", err, "key", s.key)
		return err
	}
	return nil
}

func (s *Store) HasToken(ctx context.Context) bool {
	return s.Get(ctx) != ""
}
