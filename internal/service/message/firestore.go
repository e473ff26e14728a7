package message

import (
	"context"
	"slices"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/google/uuid"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	applog "github.com/linkdeck/linkdeck/internal/platform/logging"
)

const (
	profilesCollection = "profiles"
	messagesCollection = "messages"
)

// firestoreMessage maps to the Firestore document structure.
type firestoreMessage struct {
	Name      string    `firestore:"name"`
	Body      string    `firestore:"body"`
	Public    bool      `firestore:"public"`
	FromOwner bool      `firestore:"from_owner"`
	CreatedAt time.Time `firestore:"created_at"`
}

// FirestoreStore implements Service using Firestore.
type FirestoreStore struct {
	client *firestore.Client
}

// NewFirestoreStore creates a new Firestore-backed store.
func NewFirestoreStore(client *firestore.Client) *FirestoreStore {
	return &FirestoreStore{client: client}
}

func (s *FirestoreStore) messagesRef(ownerID string) *firestore.CollectionRef {
	return s.client.Collection(profilesCollection).Doc(ownerID).Collection(messagesCollection)
}

func (s *FirestoreStore) create(
	ctx context.Context, ownerID string, params CreateParams, fromOwner bool,
) (*Message, error) {
	clean, err := sanitize(params)
	if err != nil {
		return nil, err
	}
	id := uuid.NewString()
	fm := firestoreMessage{
		Name:      clean.Name,
		Body:      clean.Body,
		Public:    clean.Public,
		FromOwner: fromOwner,
		CreatedAt: time.Now().UTC(),
	}
	if _, err := s.messagesRef(ownerID).Doc(id).Set(ctx, fm); err != nil {
		return nil, err
	}
	return &Message{
		ID:        id,
		OwnerID:   ownerID,
		Name:      fm.Name,
		Body:      fm.Body,
		Public:    fm.Public,
		FromOwner: fm.FromOwner,
		CreatedAt: fm.CreatedAt,
	}, nil
}

func (s *FirestoreStore) Create(ctx context.Context, ownerID string, params CreateParams) (*Message, error) {
	return s.create(ctx, ownerID, params, false)
}

func (s *FirestoreStore) Reply(ctx context.Context, ownerID string, params CreateParams) (*Message, error) {
	msg, err := s.create(ctx, ownerID, params, true)
	if err != nil {
		applog.LogAuditEvent(ctx, "reply", ownerID, "message", "", "failure", nil)
		return nil, err
	}
	applog.LogAuditEvent(ctx, "reply", ownerID, "message", msg.ID, "success", nil)
	return msg, nil
}

func (s *FirestoreStore) list(ctx context.Context, ownerID string, publicOnly bool) ([]Message, error) {
	docs, err := s.messagesRef(ownerID).Documents(ctx).GetAll()
	if err != nil {
		return nil, err
	}
	messages := make([]Message, 0, len(docs))
	for _, doc := range docs {
		var fm firestoreMessage
		if err := doc.DataTo(&fm); err != nil {
			return nil, err
		}
		if publicOnly && !fm.Public {
			continue
		}
		messages = append(messages, Message{
			ID:        doc.Ref.ID,
			OwnerID:   ownerID,
			Name:      fm.Name,
			Body:      fm.Body,
			Public:    fm.Public,
			FromOwner: fm.FromOwner,
			CreatedAt: fm.CreatedAt,
		})
	}
	slices.SortFunc(messages, func(a, b Message) int {
		return b.CreatedAt.Compare(a.CreatedAt)
	})
	return messages, nil
}

func (s *FirestoreStore) List(ctx context.Context, ownerID string) ([]Message, error) {
	return s.list(ctx, ownerID, false)
}

func (s *FirestoreStore) ListPublic(ctx context.Context, ownerID string) ([]Message, error) {
	return s.list(ctx, ownerID, true)
}

func (s *FirestoreStore) Delete(ctx context.Context, ownerID, messageID string) error {
	docRef := s.messagesRef(ownerID).Doc(messageID)
	err := s.client.RunTransaction(ctx, func(_ context.Context, tx *firestore.Transaction) error {
		if _, err := tx.Get(docRef); err != nil {
			if status.Code(err) == codes.NotFound {
				return ErrNotFound
			}
			return err
		}
		return tx.Delete(docRef)
	})
	if err != nil {
		applog.LogAuditEvent(ctx, "delete", ownerID, "message", messageID, "failure", nil)
		return err
	}
	applog.LogAuditEvent(ctx, "delete", ownerID, "message", messageID, "success", nil)
	return nil
}

func (s *FirestoreStore) DeleteAll(ctx context.Context, ownerID string) error {
	docs, err := s.messagesRef(ownerID).Documents(ctx).GetAll()
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
