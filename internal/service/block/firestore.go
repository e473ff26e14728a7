package block

import (
	"context"
	"errors"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/google/uuid"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	applog "github.com/linkdeck/linkdeck/internal/platform/logging"
)

const (
	profilesCollection = "profiles"
	blocksCollection   = "blocks"
)

// firestoreBlock maps to the Firestore document structure. The payload is
// stored in its opaque serialized form and decoded against the kind tag.
type firestoreBlock struct {
	Kind      string    `firestore:"kind"`
	Payload   string    `firestore:"payload"`
	Enabled   bool      `firestore:"enabled"`
	Position  int       `firestore:"position"`
	CreatedAt time.Time `firestore:"created_at"`
	UpdatedAt time.Time `firestore:"updated_at"`
}

// categorizeError converts errors to audit-safe categories.
func categorizeError(err error) string {
	switch {
	case errors.Is(err, ErrNotFound):
		return "not_found"
	case errors.Is(err, ErrOrderMismatch):
		return "order_mismatch"
	case errors.Is(err, ErrKindMismatch):
		return "kind_mismatch"
	case errors.Is(err, ErrEmptySelection):
		return "empty_selection"
	default:
		return "internal_error"
	}
}

// FirestoreStore implements Service on Firestore. Every mutation runs in a
// transaction, so a failure aborts with the stored list untouched. The
// rollback contract holds for reorder and single delete exactly as it does
// for toggles and bulk actions.
type FirestoreStore struct {
	client *firestore.Client
}

// NewFirestoreStore creates a new Firestore-backed store.
func NewFirestoreStore(client *firestore.Client) *FirestoreStore {
	return &FirestoreStore{client: client}
}

func (s *FirestoreStore) blocksRef(ownerID string) *firestore.CollectionRef {
	return s.client.Collection(profilesCollection).Doc(ownerID).Collection(blocksCollection)
}

func decodeBlock(ownerID, id string, fb firestoreBlock) (Block, error) {
	payload, err := UnmarshalPayload(Kind(fb.Kind), []byte(fb.Payload))
	if err != nil {
		return Block{}, err
	}
	return Block{
		ID:        id,
		OwnerID:   ownerID,
		Kind:      Kind(fb.Kind),
		Payload:   payload,
		Enabled:   fb.Enabled,
		Position:  fb.Position,
		CreatedAt: fb.CreatedAt,
		UpdatedAt: fb.UpdatedAt,
	}, nil
}

func encodeBlock(b Block) (firestoreBlock, error) {
	raw, err := MarshalPayload(b.Payload)
	if err != nil {
		return firestoreBlock{}, err
	}
	return firestoreBlock{
		Kind:      string(b.Kind),
		Payload:   string(raw),
		Enabled:   b.Enabled,
		Position:  b.Position,
		CreatedAt: b.CreatedAt,
		UpdatedAt: b.UpdatedAt,
	}, nil
}

// readAllTx loads the owner's full block list inside a transaction, sorted by
// position.
func (s *FirestoreStore) readAllTx(tx *firestore.Transaction, ownerID string) ([]Block, error) {
	docs, err := tx.Documents(s.blocksRef(ownerID).Query).GetAll()
	if err != nil {
		return nil, err
	}
	blocks := make([]Block, 0, len(docs))
	for _, doc := range docs {
		var fb firestoreBlock
		if err := doc.DataTo(&fb); err != nil {
			return nil, err
		}
		b, err := decodeBlock(ownerID, doc.Ref.ID, fb)
		if err != nil {
			return nil, err
		}
		blocks = append(blocks, b)
	}
	sortByPosition(blocks)
	return blocks, nil
}

// writeAllTx persists position and enabled state for every block in the list.
func (s *FirestoreStore) writeAllTx(tx *firestore.Transaction, ownerID string, blocks []Block) error {
	for _, b := range blocks {
		fb, err := encodeBlock(b)
		if err != nil {
			return err
		}
		if err := tx.Set(s.blocksRef(ownerID).Doc(b.ID), fb); err != nil {
			return err
		}
	}
	return nil
}

func (s *FirestoreStore) List(ctx context.Context, ownerID string) ([]Block, error) {
	docs, err := s.blocksRef(ownerID).Documents(ctx).GetAll()
	if err != nil {
		return nil, err
	}
	blocks := make([]Block, 0, len(docs))
	for _, doc := range docs {
		var fb firestoreBlock
		if err := doc.DataTo(&fb); err != nil {
			return nil, err
		}
		b, err := decodeBlock(ownerID, doc.Ref.ID, fb)
		if err != nil {
			return nil, err
		}
		blocks = append(blocks, b)
	}
	sortByPosition(blocks)
	return blocks, nil
}

func (s *FirestoreStore) Add(
	ctx context.Context, ownerID string, kind Kind, payload Payload, enabled bool,
) (*Block, error) {
	if payload.Kind() != kind {
		return nil, ErrKindMismatch
	}
	id := uuid.NewString()
	now := time.Now().UTC()

	var result *Block
	err := s.client.RunTransaction(ctx, func(_ context.Context, tx *firestore.Transaction) error {
		blocks, err := s.readAllTx(tx, ownerID)
		if err != nil {
			return err
		}
		b := Block{
			ID:        id,
			OwnerID:   ownerID,
			Kind:      kind,
			Payload:   payload,
			Enabled:   enabled,
			Position:  len(blocks),
			CreatedAt: now,
			UpdatedAt: now,
		}
		fb, err := encodeBlock(b)
		if err != nil {
			return err
		}
		if err := tx.Set(s.blocksRef(ownerID).Doc(id), fb); err != nil {
			return err
		}
		result = &b
		return nil
	})
	if err != nil {
		applog.LogAuditEvent(ctx, "create", ownerID, "block", id, "failure",
			map[string]any{"error": categorizeError(err)})
		return nil, err
	}
	applog.LogAuditEvent(ctx, "create", ownerID, "block", id, "success",
		map[string]any{"kind": string(kind)})
	return result, nil
}

func (s *FirestoreStore) Edit(
	ctx context.Context, ownerID, blockID string, payload Payload,
) (*Block, error) {
	var result *Block
	err := s.client.RunTransaction(ctx, func(_ context.Context, tx *firestore.Transaction) error {
		docRef := s.blocksRef(ownerID).Doc(blockID)
		doc, err := tx.Get(docRef)
		if err != nil {
			if status.Code(err) == codes.NotFound {
				return ErrNotFound
			}
			return err
		}
		var fb firestoreBlock
		if err := doc.DataTo(&fb); err != nil {
			return err
		}
		b, err := decodeBlock(ownerID, blockID, fb)
		if err != nil {
			return err
		}
		if payload.Kind() != b.Kind {
			return ErrKindMismatch
		}
		b.Payload = payload
		b.UpdatedAt = time.Now().UTC()

		updated, err := encodeBlock(b)
		if err != nil {
			return err
		}
		if err := tx.Set(docRef, updated); err != nil {
			return err
		}
		result = &b
		return nil
	})
	if err != nil {
		applog.LogAuditEvent(ctx, "update", ownerID, "block", blockID, "failure",
			map[string]any{"error": categorizeError(err)})
		return nil, err
	}
	applog.LogAuditEvent(ctx, "update", ownerID, "block", blockID, "success", nil)
	return result, nil
}

func (s *FirestoreStore) ToggleEnabled(
	ctx context.Context, ownerID, blockID string, enabled bool,
) (*Block, error) {
	var result *Block
	err := s.client.RunTransaction(ctx, func(_ context.Context, tx *firestore.Transaction) error {
		docRef := s.blocksRef(ownerID).Doc(blockID)
		doc, err := tx.Get(docRef)
		if err != nil {
			if status.Code(err) == codes.NotFound {
				return ErrNotFound
			}
			return err
		}
		var fb firestoreBlock
		if err := doc.DataTo(&fb); err != nil {
			return err
		}
		fb.Enabled = enabled
		fb.UpdatedAt = time.Now().UTC()
		if err := tx.Set(docRef, fb); err != nil {
			return err
		}
		b, err := decodeBlock(ownerID, blockID, fb)
		if err != nil {
			return err
		}
		result = &b
		return nil
	})
	if err != nil {
		applog.LogAuditEvent(ctx, "toggle", ownerID, "block", blockID, "failure",
			map[string]any{"error": categorizeError(err)})
		return nil, err
	}
	applog.LogAuditEvent(ctx, "toggle", ownerID, "block", blockID, "success",
		map[string]any{"enabled": enabled})
	return result, nil
}

func (s *FirestoreStore) Reorder(
	ctx context.Context, ownerID string, orderedIDs []string,
) ([]Block, error) {
	var result []Block
	err := s.client.RunTransaction(ctx, func(_ context.Context, tx *firestore.Transaction) error {
		blocks, err := s.readAllTx(tx, ownerID)
		if err != nil {
			return err
		}
		currentIDs := make([]string, len(blocks))
		for i, b := range blocks {
			currentIDs[i] = b.ID
		}
		if !samePermutation(currentIDs, orderedIDs) {
			return ErrOrderMismatch
		}
		now := time.Now().UTC()
		reordered := applyOrder(blocks, orderedIDs)
		for i := range reordered {
			reordered[i].UpdatedAt = now
		}
		if err := s.writeAllTx(tx, ownerID, reordered); err != nil {
			return err
		}
		result = reordered
		return nil
	})
	if err != nil {
		applog.LogAuditEvent(ctx, "reorder", ownerID, "block", "", "failure",
			map[string]any{"error": categorizeError(err)})
		return nil, err
	}
	applog.LogAuditEvent(ctx, "reorder", ownerID, "block", "", "success",
		map[string]any{"count": len(orderedIDs)})
	return result, nil
}

func (s *FirestoreStore) Bulk(
	ctx context.Context, ownerID string, action BulkAction, ids []string,
) ([]Block, error) {
	if len(ids) == 0 {
		return nil, ErrEmptySelection
	}
	selected := make(map[string]bool, len(ids))
	for _, id := range ids {
		selected[id] = true
	}

	var result []Block
	err := s.client.RunTransaction(ctx, func(_ context.Context, tx *firestore.Transaction) error {
		blocks, err := s.readAllTx(tx, ownerID)
		if err != nil {
			return err
		}
		found := 0
		for _, b := range blocks {
			if selected[b.ID] {
				found++
			}
		}
		if found != len(selected) {
			return ErrNotFound
		}

		now := time.Now().UTC()
		switch action {
		case BulkDelete:
			survivors := make([]Block, 0, len(blocks))
			for _, b := range blocks {
				if selected[b.ID] {
					if err := tx.Delete(s.blocksRef(ownerID).Doc(b.ID)); err != nil {
						return err
					}
					continue
				}
				survivors = append(survivors, b)
			}
			reindex(survivors)
			for i := range survivors {
				survivors[i].UpdatedAt = now
			}
			if err := s.writeAllTx(tx, ownerID, survivors); err != nil {
				return err
			}
			result = survivors
		case BulkEnable, BulkDisable:
			for i := range blocks {
				if !selected[blocks[i].ID] {
					continue
				}
				blocks[i].Enabled = action == BulkEnable
				blocks[i].UpdatedAt = now
				fb, err := encodeBlock(blocks[i])
				if err != nil {
					return err
				}
				if err := tx.Set(s.blocksRef(ownerID).Doc(blocks[i].ID), fb); err != nil {
					return err
				}
			}
			result = blocks
		default:
			return ErrEmptySelection
		}
		return nil
	})
	if err != nil {
		applog.LogAuditEvent(ctx, "bulk_"+string(action), ownerID, "block", "", "failure",
			map[string]any{"error": categorizeError(err)})
		return nil, err
	}
	applog.LogAuditEvent(ctx, "bulk_"+string(action), ownerID, "block", "", "success",
		map[string]any{"count": len(ids)})
	return result, nil
}

func (s *FirestoreStore) Delete(ctx context.Context, ownerID, blockID string) error {
	err := s.client.RunTransaction(ctx, func(_ context.Context, tx *firestore.Transaction) error {
		blocks, err := s.readAllTx(tx, ownerID)
		if err != nil {
			return err
		}
		idx := -1
		for i, b := range blocks {
			if b.ID == blockID {
				idx = i
				break
			}
		}
		if idx == -1 {
			return ErrNotFound
		}
		if err := tx.Delete(s.blocksRef(ownerID).Doc(blockID)); err != nil {
			return err
		}
		survivors := append(blocks[:idx:idx], blocks[idx+1:]...)
		reindex(survivors)
		now := time.Now().UTC()
		for i := range survivors {
			survivors[i].UpdatedAt = now
		}
		return s.writeAllTx(tx, ownerID, survivors)
	})
	if err != nil {
		applog.LogAuditEvent(ctx, "delete", ownerID, "block", blockID, "failure",
			map[string]any{"error": categorizeError(err)})
		return err
	}
	applog.LogAuditEvent(ctx, "delete", ownerID, "block", blockID, "success", nil)
	return nil
}

func (s *FirestoreStore) DeleteAll(ctx context.Context, ownerID string) error {
	docs, err := s.blocksRef(ownerID).Documents(ctx).GetAll()
	if err != nil {
		return err
	}
	bw := s.client.BulkWriter(ctx)
	for _, doc := range docs {
		if _, err := bw.Delete(doc.Ref); err != nil {
			return err
		}
	}
	bw.End()
	return nil
}

// Compile-time interface check
var _ Service = (*FirestoreStore)(nil)
