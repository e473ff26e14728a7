package block

import (
	"context"
	"errors"
	"time"
)

// Service errors
var (
	ErrNotFound       = errors.New("block not found")
	ErrUnknownKind    = errors.New("unknown block kind")
	ErrInvalidPayload = errors.New("invalid block payload")
	ErrKindMismatch   = errors.New("payload kind does not match block kind")
	ErrOrderMismatch  = errors.New("ordered ids are not a permutation of the current blocks")
	ErrEmptySelection = errors.New("no blocks selected")
)

// Block is one unit of content on a public page. Position is dense and unique
// among an owner's blocks; every mutation preserves that invariant.
type Block struct {
	ID        string
	OwnerID   string
	Kind      Kind
	Payload   Payload
	Enabled   bool
	Position  int
	CreatedAt time.Time
	UpdatedAt time.Time
}

// BulkAction selects the batched mutation applied to a set of blocks.
type BulkAction string

const (
	BulkEnable  BulkAction = "enable"
	BulkDisable BulkAction = "disable"
	BulkDelete  BulkAction = "delete"
)

// Valid reports whether a names a recognized bulk action.
func (a BulkAction) Valid() bool {
	switch a {
	case BulkEnable, BulkDisable, BulkDelete:
		return true
	}
	return false
}

// Service defines block-list operations for a single owner.
//
// Mutations are atomic: a failed operation leaves the stored list exactly as
// it was before the call. Implementations keep positions dense (0..n-1) and
// never disturb the relative order of blocks a mutation does not target.
type Service interface {
	// List returns the owner's blocks in position order.
	List(ctx context.Context, ownerID string) ([]Block, error)

	// Add appends a block at the end of the list and returns it with its
	// server-assigned ID.
	Add(ctx context.Context, ownerID string, kind Kind, payload Payload, enabled bool) (*Block, error)

	// Edit replaces a block's payload. The payload kind must match the
	// block's kind; position and enabled flag are untouched.
	Edit(ctx context.Context, ownerID, blockID string, payload Payload) (*Block, error)

	// ToggleEnabled sets a block's enabled flag, touching nothing else.
	ToggleEnabled(ctx context.Context, ownerID, blockID string, enabled bool) (*Block, error)

	// Reorder replaces the list order with orderedIDs, which must be an
	// exact permutation of the current IDs.
	Reorder(ctx context.Context, ownerID string, orderedIDs []string) ([]Block, error)

	// Bulk applies action to the selected IDs in one atomic step. Delete
	// reindexes the survivors, preserving their relative order.
	Bulk(ctx context.Context, ownerID string, action BulkAction, ids []string) ([]Block, error)

	// Delete removes one block and reindexes the remainder.
	Delete(ctx context.Context, ownerID, blockID string) error

	// DeleteAll removes every block owned by ownerID (account deletion).
	DeleteAll(ctx context.Context, ownerID string) error
}
