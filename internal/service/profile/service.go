package profile

import (
	"context"
	"errors"
	"regexp"
	"time"
)

// Service errors
var (
	ErrNotFound      = errors.New("profile not found")
	ErrAlreadyExists = errors.New("profile already exists")
	ErrSlugTaken     = errors.New("slug already taken")
	ErrInvalidSlug   = errors.New("invalid slug")
)

// Slugs are 3 to 30 characters, lowercase alphanumeric with interior hyphens.
var slugRe = regexp.MustCompile(`^[a-z0-9][a-z0-9-]{1,28}[a-z0-9]$`)

// reservedSlugs are path segments the front end claims for itself.
var reservedSlugs = map[string]bool{
	"admin":     true,
	"api":       true,
	"dashboard": true,
	"login":     true,
	"signup":    true,
	"settings":  true,
}

// ValidSlug reports whether slug may identify a public page.
func ValidSlug(slug string) bool {
	return slugRe.MatchString(slug) && !reservedSlugs[slug]
}

// Appearance holds the page styling choices.
type Appearance struct {
	Background  string
	ButtonStyle string
	ButtonShape string
	Font        string
	FontColor   string
}

// SEO holds share/search metadata for the public page.
type SEO struct {
	Title       string
	Description string
	ShareImage  string
}

// Settings is the wholesale-replaceable portion of a profile. Saving settings
// replaces every field with the submitted set; absent fields become empty.
type Settings struct {
	DisplayName string
	Description string
	AvatarURL   string
	Appearance  Appearance
	SEO         SEO
	AnalyticsID string
	Theme       string // dashboard theme preference: "light" or "dark"
}

// Profile is a public page owned by exactly one authenticated account.
type Profile struct {
	OwnerID   string
	Slug      string
	Settings  Settings
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Service defines profile operations.
type Service interface {
	// Create claims slug for ownerID and creates the profile.
	Create(ctx context.Context, ownerID, slug, displayName string) (*Profile, error)

	// GetByOwner returns the profile owned by ownerID.
	GetByOwner(ctx context.Context, ownerID string) (*Profile, error)

	// GetBySlug resolves a public page by its slug.
	GetBySlug(ctx context.Context, slug string) (*Profile, error)

	// SaveSettings replaces the profile's settings with the submitted set.
	SaveSettings(ctx context.Context, ownerID string, settings Settings) (*Profile, error)

	// Delete removes the profile and releases its slug.
	Delete(ctx context.Context, ownerID string) error
}
