package account

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
)

// ErrReauthFailed indicates the supplied password did not verify against the
// signed-in user's credentials.
var ErrReauthFailed = errors.New("reauthentication failed")

const defaultIdentityToolkitURL = "https://identitytoolkit.googleapis.com/v1"

// Reauthenticator verifies a user's current password before a sensitive
// account operation proceeds.
type Reauthenticator interface {
	Reauthenticate(ctx context.Context, email, password string) error
}

// IdentityToolkitClient implements Reauthenticator against the Identity
// Toolkit REST API using the project's public web API key. A successful
// signInWithPassword proves the caller knows the current password; the
// returned tokens are discarded.
type IdentityToolkitClient struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
}

// IdentityToolkitOption configures an IdentityToolkitClient.
type IdentityToolkitOption func(*IdentityToolkitClient)

// WithIdentityToolkitURL overrides the API base URL (useful for testing and
// the Auth emulator).
func WithIdentityToolkitURL(u string) IdentityToolkitOption {
	return func(c *IdentityToolkitClient) { c.baseURL = u }
}

// NewIdentityToolkitClient creates a new reauthentication client.
func NewIdentityToolkitClient(
	httpClient *http.Client, apiKey string, opts ...IdentityToolkitOption,
) *IdentityToolkitClient {
	c := &IdentityToolkitClient{
		httpClient: httpClient,
		baseURL:    defaultIdentityToolkitURL,
		apiKey:     apiKey,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *IdentityToolkitClient) Reauthenticate(ctx context.Context, email, password string) error {
	body, err := json.Marshal(map[string]any{
		"email":             email,
		"password":          password,
		"returnSecureToken": false,
	})
	if err != nil {
		return fmt.Errorf("encoding reauth request: %w", err)
	}

	endpoint := c.baseURL + "/accounts:signInWithPassword?key=" + url.QueryEscape(c.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("creating reauth request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("reauthenticating: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	switch {
	case resp.StatusCode == http.StatusOK:
		return nil
	case resp.StatusCode == http.StatusBadRequest:
		// INVALID_LOGIN_CREDENTIALS, USER_DISABLED and friends all come
		// back as 400; the distinction does not change our answer.
		return ErrReauthFailed
	default:
		return fmt.Errorf("reauth endpoint returned status %d", resp.StatusCode)
	}
}

// MockReauthenticator is a Reauthenticator for testing.
type MockReauthenticator struct {
	Err error

	// Attempts records the emails passed to Reauthenticate.
	Attempts []string
}

func (m *MockReauthenticator) Reauthenticate(_ context.Context, email, _ string) error {
	m.Attempts = append(m.Attempts, email)
	return m.Err
}

// Compile-time interface checks
var (
	_ Reauthenticator = (*IdentityToolkitClient)(nil)
	_ Reauthenticator = (*MockReauthenticator)(nil)
)
