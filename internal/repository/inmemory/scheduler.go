package inmemory

import (
	"context"
	"sort"
	"sync"

	"daily-planner-go/internal/domain/notify"
)

// Scheduler keeps pending notifications keyed by id, the way a platform
// notification center does. Scheduling an existing id replaces it.
type Scheduler struct {
	mu      sync.RWMutex
	pending map[string]notify.Notification
}

func NewScheduler() *Scheduler {
	return &Scheduler{pending: make(map[string]notify.Notification)}
}

func (s *Scheduler) Schedule(_ context.Context, n notify.Notification) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.pending[n.ID] = n
	return nil
}

func (s *Scheduler) Cancel(_ context.Context, ids ...string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, id := range ids {
		delete(s.pending, id)
	}
	return nil
}

// Pending returns the scheduled notifications ordered by id.
func (s *Scheduler) Pending() []notify.Notification {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]notify.Notification, 0, len(s.pending))
	for _, n := range s.pending {
		result = append(result, n)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})
	return result
}

func (s *Scheduler) Has(id string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, ok := s.pending[id]
	return ok
}
