package message

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/microcosm-cc/bluemonday"
)

// Service errors
var (
	ErrNotFound   = errors.New("message not found")
	ErrEmptyBody  = errors.New("message body is required")
	ErrEmptyName  = errors.New("author name is required")
)

// strict strips all markup from visitor-supplied text before storage.
var strict = bluemonday.StrictPolicy()

// Message is one guestbook entry on a profile. FromOwner marks the profile
// owner's own replies and is immutable once the message is created.
type Message struct {
	ID        string
	OwnerID   string
	Name      string
	Body      string
	Public    bool
	FromOwner bool
	CreatedAt time.Time
}

// CreateParams for a new message.
type CreateParams struct {
	Name   string
	Body   string
	Public bool
}

// sanitize cleans and validates visitor-supplied fields.
func sanitize(params CreateParams) (CreateParams, error) {
	params.Name = strings.TrimSpace(strict.Sanitize(params.Name))
	params.Body = strings.TrimSpace(strict.Sanitize(params.Body))
	if params.Name == "" {
		return params, ErrEmptyName
	}
	if params.Body == "" {
		return params, ErrEmptyBody
	}
	return params, nil
}

// Service defines guestbook operations for a profile.
type Service interface {
	// Create stores a visitor message (FromOwner is always false).
	Create(ctx context.Context, ownerID string, params CreateParams) (*Message, error)

	// Reply stores an owner reply (FromOwner is always true).
	Reply(ctx context.Context, ownerID string, params CreateParams) (*Message, error)

	// List returns every message for the owner, newest first.
	List(ctx context.Context, ownerID string) ([]Message, error)

	// ListPublic returns only public messages, newest first.
	ListPublic(ctx context.Context, ownerID string) ([]Message, error)

	// Delete removes one message.
	Delete(ctx context.Context, ownerID, messageID string) error

	// DeleteAll removes every message for the owner (account deletion).
	DeleteAll(ctx context.Context, ownerID string) error
}
