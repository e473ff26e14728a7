package account

import (
	"context"
	"sync"
)

// MockAdmin is an in-memory UserAdmin for testing.
type MockAdmin struct {
	mu sync.Mutex

	// Emails maps uid to sign-in email.
	Emails map[string]string

	// Passwords records UpdatePassword calls by uid.
	Passwords map[string]string

	// Deleted records DeleteUser calls.
	Deleted []string

	// FailWith forces every operation to fail when set.
	FailWith error
}

// NewMockAdmin creates a MockAdmin with a single known user.
func NewMockAdmin(uid, email string) *MockAdmin {
	return &MockAdmin{
		Emails:    map[string]string{uid: email},
		Passwords: make(map[string]string),
	}
}

func (m *MockAdmin) Email(_ context.Context, uid string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailWith != nil {
		return "", m.FailWith
	}
	email, ok := m.Emails[uid]
	if !ok {
		return "", ErrUserNotFound
	}
	return email, nil
}

func (m *MockAdmin) UpdateEmail(_ context.Context, uid, email string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailWith != nil {
		return m.FailWith
	}
	if _, ok := m.Emails[uid]; !ok {
		return ErrUserNotFound
	}
	m.Emails[uid] = email
	return nil
}

func (m *MockAdmin) UpdatePassword(_ context.Context, uid, password string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailWith != nil {
		return m.FailWith
	}
	if _, ok := m.Emails[uid]; !ok {
		return ErrUserNotFound
	}
	m.Passwords[uid] = password
	return nil
}

func (m *MockAdmin) DeleteUser(_ context.Context, uid string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailWith != nil {
		return m.FailWith
	}
	if _, ok := m.Emails[uid]; !ok {
		return ErrUserNotFound
	}
	delete(m.Emails, uid)
	m.Deleted = append(m.Deleted, uid)
	return nil
}

// Compile-time interface check
var _ UserAdmin = (*MockAdmin)(nil)
