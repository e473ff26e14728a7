package profile

import (
	"github.com/linkdeck/linkdeck/internal/platform/timeutil"
)

// Appearance is the visual styling of the public page.
type Appearance struct {
	Background  string `json:"background,omitempty"  doc:"Page background (color or gradient token)" example:"sunset"`
	ButtonStyle string `json:"buttonStyle,omitempty" doc:"Button fill style"                         example:"solid"`
	ButtonShape string `json:"buttonShape,omitempty" doc:"Button corner shape"                       example:"rounded"`
	Font        string `json:"font,omitempty"        doc:"Font family token"                         example:"inter"`
	FontColor   string `json:"fontColor,omitempty"   doc:"Text color"                                example:"#1a1a2e"`
}

// SEO is the share/search metadata of the public page.
type SEO struct {
	Title       string `json:"title,omitempty"       maxLength:"70"  doc:"Page title for search and share cards"`
	Description string `json:"description,omitempty" maxLength:"200" doc:"Page description for search and share cards"`
	ShareImage  string `json:"shareImage,omitempty"  format:"uri"    doc:"Share card image URL"`
}

// Settings is the full replaceable settings document. Saving replaces every
// field with the submitted set.
type Settings struct {
	DisplayName string     `json:"displayName"           minLength:"1" maxLength:"100" required:"true" doc:"Name shown on the page" example:"Jane Doe"`
	Description string     `json:"description,omitempty" maxLength:"500"                               doc:"Short bio"`
	AvatarURL   string     `json:"avatarUrl,omitempty"   format:"uri"                                  doc:"Avatar image URL"`
	Appearance  Appearance `json:"appearance,omitempty"                                                doc:"Visual styling"`
	SEO         SEO        `json:"seo,omitempty"                                                       doc:"Share and search metadata"`
	AnalyticsID string     `json:"analyticsId,omitempty" maxLength:"50"                                doc:"External analytics property ID"`
	Theme       string     `json:"theme,omitempty"       enum:"light,dark"                             doc:"Dashboard theme preference"`
}

// Profile represents a profile response.
type Profile struct {
	Slug      string        `json:"slug"      doc:"URL slug of the public page" example:"jane"`
	Settings  Settings      `json:"settings"  doc:"Page settings"`
	CreatedAt timeutil.Time `json:"createdAt" doc:"Creation timestamp"          example:"2024-01-15T10:30:00.000Z"`
	UpdatedAt timeutil.Time `json:"updatedAt" doc:"Last update timestamp"       example:"2024-01-15T10:30:00.000Z"`
}
