package inmemory

import (
	"context"
	"sync"

	prefsdomain "daily-planner-go/internal/domain/prefs"
)

type PrefsStore struct {
	mu    sync.RWMutex
	items map[string]string
}

func NewPrefsStore() *PrefsStore {
	return &PrefsStore{
		items: make(map[string]string),
	}
}

func (s *PrefsStore) Get(_ context.Context, key string) (string, error) {
	s.mu.RLock()
	value, ok := s.items[key]
	s.mu.RUnlock()
	if !ok {
		return "", prefsdomain.ErrNotFound
	}
	return value, nil
}

func (s *PrefsStore) Set(_ context.Context, key, value string) error {
	s.mu.Lock()
	s.items[key] = value
	s.mu.Unlock()
	return nil
}

func (s *PrefsStore) Delete(_ context.Context, keys ...string) error {
	s.mu.Lock()
	for _, key := range keys {
		delete(s.items, key)
	}
	s.mu.Unlock()
	return nil
}

// Keys returns a copy of the stored keys; handy for assertions.
func (s *PrefsStore) Keys() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	keys := make([]string, 0, len(s.items))
	for key := range s.items {
		keys = append(keys, key)
	}
	return keys
}
