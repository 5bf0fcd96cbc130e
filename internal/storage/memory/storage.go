package memory

import (
	"context"
	"sync"

	"github.com/mcoot/forceteam/internal/model"
	"github.com/mcoot/forceteam/internal/storage"
)

// DefaultCapacity is the number of reports kept when none is configured
const DefaultCapacity = 1000

// Storage is an in-memory journal holding the most recent reports
type Storage struct {
	mu sync.RWMutex

	reports []model.Report
	start   int
	size    int
}

// New creates an in-memory journal keeping at most capacity reports
func New(capacity int) *Storage {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Storage{
		reports: make([]model.Report, capacity),
	}
}

// Ensure Storage implements the interface
var _ storage.Journal = (*Storage)(nil)

func (s *Storage) Append(ctx context.Context, r model.Report) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	capacity := len(s.reports)
	if s.size < capacity {
		s.reports[(s.start+s.size)%capacity] = r
		s.size++
		return nil
	}
	// Full: overwrite the oldest
	s.reports[s.start] = r
	s.start = (s.start + 1) % capacity
	return nil
}

func (s *Storage) List(ctx context.Context, limit int) ([]model.Report, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if limit <= 0 || limit > s.size {
		limit = s.size
	}
	out := make([]model.Report, 0, limit)
	capacity := len(s.reports)
	for i := 0; i < limit; i++ {
		idx := (s.start + s.size - 1 - i) % capacity
		out = append(out, s.reports[idx])
	}
	return out, nil
}

// Len returns the number of stored reports
func (s *Storage) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.size
}
