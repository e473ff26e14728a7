package analytics

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/google/uuid"
)

const clicksCollection = "clicks"

// firestoreClick maps to the Firestore document structure. Clicks live in a
// top-level collection keyed by random ID so the public click endpoint never
// contends with the owner's profile documents.
type firestoreClick struct {
	OwnerID  string    `firestore:"owner_uid"`
	BlockID  string    `firestore:"block_id"`
	Referrer string    `firestore:"referrer"`
	Country  string    `firestore:"country"`
	At       time.Time `firestore:"at"`
}

// FirestoreStore implements Service on Firestore.
type FirestoreStore struct {
	client *firestore.Client
}

// NewFirestoreStore creates a new Firestore-backed store.
func NewFirestoreStore(client *firestore.Client) *FirestoreStore {
	return &FirestoreStore{client: client}
}

func (s *FirestoreStore) clicksRef() *firestore.CollectionRef {
	return s.client.Collection(clicksCollection)
}

func (s *FirestoreStore) RecordClick(ctx context.Context, click Click) error {
	at := click.At
	if at.IsZero() {
		at = time.Now().UTC()
	}
	_, err := s.clicksRef().Doc(uuid.NewString()).Set(ctx, firestoreClick{
		OwnerID:  click.OwnerID,
		BlockID:  click.BlockID,
		Referrer: click.Referrer,
		Country:  click.Country,
		At:       at,
	})
	return err
}

// ownerClicks loads every click for the owner, optionally bounded below by
// cutoff.
func (s *FirestoreStore) ownerClicks(
	ctx context.Context, ownerID string, cutoff time.Time,
) ([]Click, error) {
	q := s.clicksRef().Where("owner_uid", "==", ownerID)
	if !cutoff.IsZero() {
		q = q.Where("at", ">=", cutoff)
	}
	docs, err := q.Documents(ctx).GetAll()
	if err != nil {
		return nil, err
	}
	clicks := make([]Click, 0, len(docs))
	for _, doc := range docs {
		var fc firestoreClick
		if err := doc.DataTo(&fc); err != nil {
			return nil, err
		}
		clicks = append(clicks, Click{
			OwnerID:  fc.OwnerID,
			BlockID:  fc.BlockID,
			Referrer: fc.Referrer,
			Country:  fc.Country,
			At:       fc.At,
		})
	}
	return clicks, nil
}

func (s *FirestoreStore) BlockStats(ctx context.Context, ownerID string) (map[string]int, error) {
	clicks, err := s.ownerClicks(ctx, ownerID, time.Time{})
	if err != nil {
		return nil, err
	}
	stats := make(map[string]int)
	for _, c := range clicks {
		stats[c.BlockID]++
	}
	return stats, nil
}

func (s *FirestoreStore) Summary(
	ctx context.Context, ownerID string, r Range,
) (*Summary, error) {
	cutoff, err := r.Cutoff(time.Now().UTC())
	if err != nil {
		return nil, err
	}
	clicks, err := s.ownerClicks(ctx, ownerID, cutoff)
	if err != nil {
		return nil, err
	}
	return summarize(clicks, time.Time{}), nil
}

func (s *FirestoreStore) DeleteAll(ctx context.Context, ownerID string) error {
	docs, err := s.clicksRef().Where("owner_uid", "==", ownerID).Documents(ctx).GetAll()
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
