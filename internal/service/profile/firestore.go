package profile

import (
	"context"
	"errors"
	"strings"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	applog "github.com/linkdeck/linkdeck/internal/platform/logging"
)

const (
	profilesCollection = "profiles"
	slugsCollection    = "slugs"
)

// categorizeError converts errors to audit-safe categories.
func categorizeError(err error) string {
	switch {
	case errors.Is(err, ErrAlreadyExists):
		return "already_exists"
	case errors.Is(err, ErrSlugTaken):
		return "slug_taken"
	case errors.Is(err, ErrInvalidSlug):
		return "invalid_slug"
	case errors.Is(err, ErrNotFound):
		return "not_found"
	default:
		return "internal_error"
	}
}

// firestoreProfile maps to the profile document structure.
type firestoreProfile struct {
	Slug        string    `firestore:"slug"`
	DisplayName string    `firestore:"display_name"`
	Description string    `firestore:"description"`
	AvatarURL   string    `firestore:"avatar_url"`
	Background  string    `firestore:"background"`
	ButtonStyle string    `firestore:"button_style"`
	ButtonShape string    `firestore:"button_shape"`
	Font        string    `firestore:"font"`
	FontColor   string    `firestore:"font_color"`
	SEOTitle    string    `firestore:"seo_title"`
	SEODesc     string    `firestore:"seo_description"`
	ShareImage  string    `firestore:"share_image"`
	AnalyticsID string    `firestore:"analytics_id"`
	Theme       string    `firestore:"theme"`
	CreatedAt   time.Time `firestore:"created_at"`
	UpdatedAt   time.Time `firestore:"updated_at"`
}

// slugIndex maps a claimed slug to its owner.
type slugIndex struct {
	OwnerID string `firestore:"owner_uid"`
}

func encodeProfile(p Profile) firestoreProfile {
	return firestoreProfile{
		Slug:        p.Slug,
		DisplayName: p.Settings.DisplayName,
		Description: p.Settings.Description,
		AvatarURL:   p.Settings.AvatarURL,
		Background:  p.Settings.Appearance.Background,
		ButtonStyle: p.Settings.Appearance.ButtonStyle,
		ButtonShape: p.Settings.Appearance.ButtonShape,
		Font:        p.Settings.Appearance.Font,
		FontColor:   p.Settings.Appearance.FontColor,
		SEOTitle:    p.Settings.SEO.Title,
		SEODesc:     p.Settings.SEO.Description,
		ShareImage:  p.Settings.SEO.ShareImage,
		AnalyticsID: p.Settings.AnalyticsID,
		Theme:       p.Settings.Theme,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

func decodeProfile(ownerID string, fp firestoreProfile) *Profile {
	return &Profile{
		OwnerID: ownerID,
		Slug:    fp.Slug,
		Settings: Settings{
			DisplayName: fp.DisplayName,
			Description: fp.Description,
			AvatarURL:   fp.AvatarURL,
			Appearance: Appearance{
				Background:  fp.Background,
				ButtonStyle: fp.ButtonStyle,
				ButtonShape: fp.ButtonShape,
				Font:        fp.Font,
				FontColor:   fp.FontColor,
			},
			SEO: SEO{
				Title:       fp.SEOTitle,
				Description: fp.SEODesc,
				ShareImage:  fp.ShareImage,
			},
			AnalyticsID: fp.AnalyticsID,
			Theme:       fp.Theme,
		},
		CreatedAt: fp.CreatedAt,
		UpdatedAt: fp.UpdatedAt,
	}
}

// FirestoreStore implements Service using Firestore with transactions. The
// slug index document is claimed in the same transaction that creates the
// profile, so two accounts cannot race for one slug.
type FirestoreStore struct {
	client *firestore.Client
}

// NewFirestoreStore creates a new Firestore-backed store.
func NewFirestoreStore(client *firestore.Client) *FirestoreStore {
	return &FirestoreStore{client: client}
}

func (s *FirestoreStore) Create(ctx context.Context, ownerID, slug, displayName string) (*Profile, error) {
	slug = strings.ToLower(strings.TrimSpace(slug))
	if !ValidSlug(slug) {
		return nil, ErrInvalidSlug
	}

	profileRef := s.client.Collection(profilesCollection).Doc(ownerID)
	slugRef := s.client.Collection(slugsCollection).Doc(slug)
	now := time.Now().UTC()

	var result *Profile
	err := s.client.RunTransaction(ctx, func(_ context.Context, tx *firestore.Transaction) error {
		doc, err := tx.Get(profileRef)
		if err == nil && doc.Exists() {
			return ErrAlreadyExists
		}
		if err != nil && status.Code(err) != codes.NotFound {
			return err
		}

		slugDoc, err := tx.Get(slugRef)
		if err == nil && slugDoc.Exists() {
			return ErrSlugTaken
		}
		if err != nil && status.Code(err) != codes.NotFound {
			return err
		}

		p := Profile{
			OwnerID: ownerID,
			Slug:    slug,
			Settings: Settings{
				DisplayName: strings.TrimSpace(displayName),
				Theme:       "light",
			},
			CreatedAt: now,
			UpdatedAt: now,
		}
		if err := tx.Set(profileRef, encodeProfile(p)); err != nil {
			return err
		}
		if err := tx.Set(slugRef, slugIndex{OwnerID: ownerID}); err != nil {
			return err
		}
		result = &p
		return nil
	})
	if err != nil {
		applog.LogAuditEvent(ctx, "create", ownerID, "profile", slug, "failure",
			map[string]any{"error": categorizeError(err)})
		return nil, err
	}
	applog.LogAuditEvent(ctx, "create", ownerID, "profile", slug, "success", nil)
	return result, nil
}

func (s *FirestoreStore) GetByOwner(ctx context.Context, ownerID string) (*Profile, error) {
	doc, err := s.client.Collection(profilesCollection).Doc(ownerID).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, ErrNotFound
		}
		return nil, err
	}
	var fp firestoreProfile
	if err := doc.DataTo(&fp); err != nil {
		return nil, err
	}
	return decodeProfile(ownerID, fp), nil
}

func (s *FirestoreStore) GetBySlug(ctx context.Context, slug string) (*Profile, error) {
	slug = strings.ToLower(strings.TrimSpace(slug))
	doc, err := s.client.Collection(slugsCollection).Doc(slug).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, ErrNotFound
		}
		return nil, err
	}
	var idx slugIndex
	if err := doc.DataTo(&idx); err != nil {
		return nil, err
	}
	return s.GetByOwner(ctx, idx.OwnerID)
}

// SaveSettings replaces the stored settings wholesale; fields absent from the
// submitted set come back empty.
func (s *FirestoreStore) SaveSettings(ctx context.Context, ownerID string, settings Settings) (*Profile, error) {
	profileRef := s.client.Collection(profilesCollection).Doc(ownerID)

	var result *Profile
	err := s.client.RunTransaction(ctx, func(_ context.Context, tx *firestore.Transaction) error {
		doc, err := tx.Get(profileRef)
		if err != nil {
			if status.Code(err) == codes.NotFound {
				return ErrNotFound
			}
			return err
		}
		var fp firestoreProfile
		if err := doc.DataTo(&fp); err != nil {
			return err
		}

		p := Profile{
			OwnerID:   ownerID,
			Slug:      fp.Slug,
			Settings:  settings,
			CreatedAt: fp.CreatedAt,
			UpdatedAt: time.Now().UTC(),
		}
		if err := tx.Set(profileRef, encodeProfile(p)); err != nil {
			return err
		}
		result = &p
		return nil
	})
	if err != nil {
		applog.LogAuditEvent(ctx, "save_settings", ownerID, "profile", ownerID, "failure",
			map[string]any{"error": categorizeError(err)})
		return nil, err
	}
	applog.LogAuditEvent(ctx, "save_settings", ownerID, "profile", ownerID, "success", nil)
	return result, nil
}

func (s *FirestoreStore) Delete(ctx context.Context, ownerID string) error {
	profileRef := s.client.Collection(profilesCollection).Doc(ownerID)

	err := s.client.RunTransaction(ctx, func(_ context.Context, tx *firestore.Transaction) error {
		doc, err := tx.Get(profileRef)
		if err != nil {
			if status.Code(err) == codes.NotFound {
				return ErrNotFound
			}
			return err
		}
		var fp firestoreProfile
		if err := doc.DataTo(&fp); err != nil {
			return err
		}
		if fp.Slug != "" {
			if err := tx.Delete(s.client.Collection(slugsCollection).Doc(fp.Slug)); err != nil {
				return err
			}
		}
		return tx.Delete(profileRef)
	})
	if err != nil {
		applog.LogAuditEvent(ctx, "delete", ownerID, "profile", ownerID, "failure",
			map[string]any{"error": categorizeError(err)})
		return err
	}
	applog.LogAuditEvent(ctx, "delete", ownerID, "profile", ownerID, "success", nil)
	return nil
}

// Compile-time interface check
var _ Service = (*FirestoreStore)(nil)
