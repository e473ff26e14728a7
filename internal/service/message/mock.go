package message

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MockService implements Service in memory for unit tests.
type MockService struct {
	mu       sync.RWMutex
	messages map[string][]Message
	FailWith error
}

// NewMockService creates a new mock service.
func NewMockService() *MockService {
	return &MockService{messages: make(map[string][]Message)}
}

func (m *MockService) create(ownerID string, params CreateParams, fromOwner bool) (*Message, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.FailWith != nil {
		return nil, m.FailWith
	}
	clean, err := sanitize(params)
	if err != nil {
		return nil, err
	}
	msg := Message{
		ID:        uuid.NewString(),
		OwnerID:   ownerID,
		Name:      clean.Name,
		Body:      clean.Body,
		Public:    clean.Public,
		FromOwner: fromOwner,
		CreatedAt: time.Now().UTC(),
	}
	m.messages[ownerID] = append([]Message{msg}, m.messages[ownerID]...)
	return &msg, nil
}

func (m *MockService) Create(_ context.Context, ownerID string, params CreateParams) (*Message, error) {
	return m.create(ownerID, params, false)
}

func (m *MockService) Reply(_ context.Context, ownerID string, params CreateParams) (*Message, error) {
	return m.create(ownerID, params, true)
}

func (m *MockService) List(_ context.Context, ownerID string) ([]Message, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.FailWith != nil {
		return nil, m.FailWith
	}
	return slices.Clone(m.messages[ownerID]), nil
}

func (m *MockService) ListPublic(_ context.Context, ownerID string) ([]Message, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.FailWith != nil {
		return nil, m.FailWith
	}
	public := make([]Message, 0, len(m.messages[ownerID]))
	for _, msg := range m.messages[ownerID] {
		if msg.Public {
			public = append(public, msg)
		}
	}
	return public, nil
}

func (m *MockService) Delete(_ context.Context, ownerID, messageID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailWith != nil {
		return m.FailWith
	}
	idx := slices.IndexFunc(m.messages[ownerID], func(msg Message) bool { return msg.ID == messageID })
	if idx == -1 {
		return ErrNotFound
	}
	m.messages[ownerID] = slices.Delete(slices.Clone(m.messages[ownerID]), idx, idx+1)
	return nil
}

func (m *MockService) DeleteAll(_ context.Context, ownerID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.messages, ownerID)
	return nil
}

// Compile-time interface check
var _ Service = (*MockService)(nil)
