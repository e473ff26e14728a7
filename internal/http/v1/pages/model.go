package pages

import (
	"encoding/json"

	"github.com/linkdeck/linkdeck/internal/platform/timeutil"
)

// Embed is the render-ready view of a media block. On failure only Error is
// set and the page renders the inline error for that block alone.
type Embed struct {
	VideoID  string `json:"videoId,omitempty"  doc:"YouTube video ID"`
	EmbedURL string `json:"embedUrl,omitempty" doc:"Spotify iframe URL"`
	HTML     string `json:"html,omitempty"     doc:"oEmbed markup (SoundCloud, TikTok)"`
	Error    string `json:"error,omitempty"    doc:"Inline error when the embed could not be resolved"`
}

// PageBlock is one enabled block on the public page.
type PageBlock struct {
	ID      string          `json:"id"              doc:"Block ID for click tracking"`
	Kind    string          `json:"kind"            doc:"Block kind tag"           example:"link"`
	Payload json.RawMessage `json:"payload"         doc:"Kind-specific payload"`
	Embed   *Embed          `json:"embed,omitempty" doc:"Resolved embed for media kinds"`
}

// Page is the public rendering of a profile: settings plus enabled blocks in
// position order.
type Page struct {
	Slug        string      `json:"slug"                  doc:"Page slug"              example:"jane"`
	DisplayName string      `json:"displayName"           doc:"Name shown on the page" example:"Jane Doe"`
	Description string      `json:"description,omitempty" doc:"Short bio"`
	AvatarURL   string      `json:"avatarUrl,omitempty"   doc:"Avatar image URL"`
	Appearance  PageAppearance  `json:"appearance"            doc:"Visual styling"`
	SEO         PageSEO         `json:"seo"                   doc:"Share and search metadata"`
	AnalyticsID string      `json:"analyticsId,omitempty" doc:"External analytics property ID"`
	Blocks      []PageBlock `json:"blocks"                doc:"Enabled blocks in position order"`
}

// PageAppearance mirrors the owner's styling choices for the public renderer.
type PageAppearance struct {
	Background  string `json:"background,omitempty"`
	ButtonStyle string `json:"buttonStyle,omitempty"`
	ButtonShape string `json:"buttonShape,omitempty"`
	Font        string `json:"font,omitempty"`
	FontColor   string `json:"fontColor,omitempty"`
}

// PageSEO carries share/search metadata for the public page head.
type PageSEO struct {
	Title       string `json:"title,omitempty"`
	Description string `json:"description,omitempty"`
	ShareImage  string `json:"shareImage,omitempty"`
}

// PageMessage is the public view of a guestbook entry.
type PageMessage struct {
	ID        string        `json:"id"        doc:"Message ID"`
	Name      string        `json:"name"      doc:"Author display name"           example:"A fan"`
	Body      string        `json:"body"      doc:"Message text"                  example:"Love the new album!"`
	FromOwner bool          `json:"fromOwner" doc:"True for the page owner's own replies"`
	CreatedAt timeutil.Time `json:"createdAt" doc:"Creation timestamp"            example:"2024-01-15T10:30:00.000Z"`
}
