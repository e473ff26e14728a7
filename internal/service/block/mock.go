package block

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MockService implements Service in memory for unit tests.
//
// It follows the same mutation discipline as the Firestore store, made
// explicit: snapshot the list, apply the change, and restore the snapshot
// when the commit step fails. Setting FailWith makes the next mutation fail
// at commit time, which lets tests assert rollback exactness.
type MockService struct {
	mu       sync.RWMutex
	blocks   map[string][]Block
	FailWith error
}

// NewMockService creates a new mock service.
func NewMockService() *MockService {
	return &MockService{blocks: make(map[string][]Block)}
}

func (m *MockService) snapshot(ownerID string) []Block {
	return slices.Clone(m.blocks[ownerID])
}

// commit finishes a mutation: on injected failure the pre-mutation snapshot
// is restored and the error returned.
func (m *MockService) commit(ownerID string, snapshot []Block) error {
	if m.FailWith != nil {
		m.blocks[ownerID] = snapshot
		return m.FailWith
	}
	return nil
}

func (m *MockService) List(_ context.Context, ownerID string) ([]Block, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return slices.Clone(m.blocks[ownerID]), nil
}

func (m *MockService) Add(
	_ context.Context, ownerID string, kind Kind, payload Payload, enabled bool,
) (*Block, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if payload.Kind() != kind {
		return nil, ErrKindMismatch
	}
	snap := m.snapshot(ownerID)
	now := time.Now().UTC()
	b := Block{
		ID:        uuid.NewString(),
		OwnerID:   ownerID,
		Kind:      kind,
		Payload:   payload,
		Enabled:   enabled,
		Position:  len(m.blocks[ownerID]),
		CreatedAt: now,
		UpdatedAt: now,
	}
	m.blocks[ownerID] = append(m.blocks[ownerID], b)
	if err := m.commit(ownerID, snap); err != nil {
		return nil, err
	}
	return &b, nil
}

func (m *MockService) Edit(
	_ context.Context, ownerID, blockID string, payload Payload,
) (*Block, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	snap := m.snapshot(ownerID)
	idx := slices.IndexFunc(m.blocks[ownerID], func(b Block) bool { return b.ID == blockID })
	if idx == -1 {
		return nil, ErrNotFound
	}
	if payload.Kind() != m.blocks[ownerID][idx].Kind {
		return nil, ErrKindMismatch
	}
	m.blocks[ownerID][idx].Payload = payload
	m.blocks[ownerID][idx].UpdatedAt = time.Now().UTC()
	if err := m.commit(ownerID, snap); err != nil {
		return nil, err
	}
	b := m.blocks[ownerID][idx]
	return &b, nil
}

func (m *MockService) ToggleEnabled(
	_ context.Context, ownerID, blockID string, enabled bool,
) (*Block, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	snap := m.snapshot(ownerID)
	idx := slices.IndexFunc(m.blocks[ownerID], func(b Block) bool { return b.ID == blockID })
	if idx == -1 {
		return nil, ErrNotFound
	}
	m.blocks[ownerID][idx].Enabled = enabled
	m.blocks[ownerID][idx].UpdatedAt = time.Now().UTC()
	if err := m.commit(ownerID, snap); err != nil {
		return nil, err
	}
	b := m.blocks[ownerID][idx]
	return &b, nil
}

func (m *MockService) Reorder(
	_ context.Context, ownerID string, orderedIDs []string,
) ([]Block, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	snap := m.snapshot(ownerID)
	currentIDs := make([]string, len(m.blocks[ownerID]))
	for i, b := range m.blocks[ownerID] {
		currentIDs[i] = b.ID
	}
	if !samePermutation(currentIDs, orderedIDs) {
		return nil, ErrOrderMismatch
	}
	m.blocks[ownerID] = applyOrder(m.blocks[ownerID], orderedIDs)
	if err := m.commit(ownerID, snap); err != nil {
		return nil, err
	}
	return slices.Clone(m.blocks[ownerID]), nil
}

func (m *MockService) Bulk(
	_ context.Context, ownerID string, action BulkAction, ids []string,
) ([]Block, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if len(ids) == 0 {
		return nil, ErrEmptySelection
	}
	selected := make(map[string]bool, len(ids))
	for _, id := range ids {
		selected[id] = true
	}
	found := 0
	for _, b := range m.blocks[ownerID] {
		if selected[b.ID] {
			found++
		}
	}
	if found != len(selected) {
		return nil, ErrNotFound
	}

	snap := m.snapshot(ownerID)
	switch action {
	case BulkDelete:
		survivors := slices.DeleteFunc(slices.Clone(m.blocks[ownerID]), func(b Block) bool {
			return selected[b.ID]
		})
		reindex(survivors)
		m.blocks[ownerID] = survivors
	case BulkEnable, BulkDisable:
		for i := range m.blocks[ownerID] {
			if selected[m.blocks[ownerID][i].ID] {
				m.blocks[ownerID][i].Enabled = action == BulkEnable
			}
		}
	default:
		return nil, ErrEmptySelection
	}
	if err := m.commit(ownerID, snap); err != nil {
		return nil, err
	}
	return slices.Clone(m.blocks[ownerID]), nil
}

func (m *MockService) Delete(_ context.Context, ownerID, blockID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	snap := m.snapshot(ownerID)
	idx := slices.IndexFunc(m.blocks[ownerID], func(b Block) bool { return b.ID == blockID })
	if idx == -1 {
		return ErrNotFound
	}
	m.blocks[ownerID] = slices.Delete(slices.Clone(m.blocks[ownerID]), idx, idx+1)
	reindex(m.blocks[ownerID])
	return m.commit(ownerID, snap)
}

func (m *MockService) DeleteAll(_ context.Context, ownerID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.blocks, ownerID)
	return nil
}

// Compile-time interface check
var _ Service = (*MockService)(nil)
