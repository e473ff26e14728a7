package analytics

import (
	"context"
	"sync"
	"time"
)

// MockService is an in-memory Service for testing.
type MockService struct {
	mu     sync.Mutex
	clicks []Click

	// Now overrides the clock used for range cutoffs.
	Now func() time.Time

	// FailWith forces every operation to fail when set.
	FailWith error
}

// NewMockService creates an empty in-memory analytics store.
func NewMockService() *MockService {
	return &MockService{}
}

// Seed preloads clicks without going through RecordClick.
func (m *MockService) Seed(clicks ...Click) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.clicks = append(m.clicks, clicks...)
}

func (m *MockService) now() time.Time {
	if m.Now != nil {
		return m.Now()
	}
	return time.Now().UTC()
}

func (m *MockService) RecordClick(_ context.Context, click Click) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailWith != nil {
		return m.FailWith
	}
	if click.At.IsZero() {
		click.At = m.now()
	}
	m.clicks = append(m.clicks, click)
	return nil
}

func (m *MockService) BlockStats(_ context.Context, ownerID string) (map[string]int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailWith != nil {
		return nil, m.FailWith
	}
	stats := make(map[string]int)
	for _, c := range m.clicks {
		if c.OwnerID == ownerID {
			stats[c.BlockID]++
		}
	}
	return stats, nil
}

func (m *MockService) Summary(_ context.Context, ownerID string, r Range) (*Summary, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailWith != nil {
		return nil, m.FailWith
	}
	cutoff, err := r.Cutoff(m.now())
	if err != nil {
		return nil, err
	}
	owned := make([]Click, 0, len(m.clicks))
	for _, c := range m.clicks {
		if c.OwnerID == ownerID {
			owned = append(owned, c)
		}
	}
	return summarize(owned, cutoff), nil
}

func (m *MockService) DeleteAll(_ context.Context, ownerID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailWith != nil {
		return m.FailWith
	}
	kept := m.clicks[:0]
	for _, c := range m.clicks {
		if c.OwnerID != ownerID {
			kept = append(kept, c)
		}
	}
	m.clicks = kept
	return nil
}

// Compile-time interface check
var _ Service = (*MockService)(nil)
