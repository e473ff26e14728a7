package profile

import (
	"context"
	"strings"
	"sync"
	"time"
)

// MockService implements Service for unit tests.
type MockService struct {
	mu       sync.RWMutex
	profiles map[string]*Profile // by owner UID
	slugs    map[string]string   // slug -> owner UID
}

// NewMockService creates a new mock service.
func NewMockService() *MockService {
	return &MockService{
		profiles: make(map[string]*Profile),
		slugs:    make(map[string]string),
	}
}

func (m *MockService) Create(_ context.Context, ownerID, slug, displayName string) (*Profile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	slug = strings.ToLower(strings.TrimSpace(slug))
	if !ValidSlug(slug) {
		return nil, ErrInvalidSlug
	}
	if _, exists := m.profiles[ownerID]; exists {
		return nil, ErrAlreadyExists
	}
	if _, taken := m.slugs[slug]; taken {
		return nil, ErrSlugTaken
	}

	now := time.Now().UTC()
	p := &Profile{
		OwnerID: ownerID,
		Slug:    slug,
		Settings: Settings{
			DisplayName: strings.TrimSpace(displayName),
			Theme:       "light",
		},
		CreatedAt: now,
		UpdatedAt: now,
	}
	m.profiles[ownerID] = p
	m.slugs[slug] = ownerID
	return p, nil
}

func (m *MockService) GetByOwner(_ context.Context, ownerID string) (*Profile, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	p, exists := m.profiles[ownerID]
	if !exists {
		return nil, ErrNotFound
	}
	clone := *p
	return &clone, nil
}

func (m *MockService) GetBySlug(_ context.Context, slug string) (*Profile, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	ownerID, ok := m.slugs[strings.ToLower(strings.TrimSpace(slug))]
	if !ok {
		return nil, ErrNotFound
	}
	clone := *m.profiles[ownerID]
	return &clone, nil
}

func (m *MockService) SaveSettings(_ context.Context, ownerID string, settings Settings) (*Profile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	p, exists := m.profiles[ownerID]
	if !exists {
		return nil, ErrNotFound
	}
	p.Settings = settings
	p.UpdatedAt = time.Now().UTC()
	clone := *p
	return &clone, nil
}

func (m *MockService) Delete(_ context.Context, ownerID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	p, exists := m.profiles[ownerID]
	if !exists {
		return ErrNotFound
	}
	delete(m.slugs, p.Slug)
	delete(m.profiles, ownerID)
	return nil
}

// Compile-time interface check
var _ Service = (*MockService)(nil)
