// Package slugcheck provides an HTTP Cloud Function that validates slug
// format for the signup flow. It only checks shape and reserved words;
// uniqueness is decided by the API when the profile is created.
package slugcheck

import (
	"encoding/json"
	"net/http"
	"regexp"

	"github.com/GoogleCloudPlatform/functions-framework-go/functions"
)

// slugPattern mirrors the profile service's slug rules.
var slugPattern = regexp.MustCompile(`^[a-z0-9][a-z0-9-]{1,28}[a-z0-9]$`)

var reserved = map[string]bool{
	"admin":     true,
	"api":       true,
	"dashboard": true,
	"login":     true,
	"signup":    true,
	"settings":  true,
}

func init() {
	functions.HTTP("SlugCheck", slugCheckHandler)
}

// Request represents the optional request body.
type Request struct {
	Slug string `json:"slug"`
}

// Response reports whether the slug may be claimed.
type Response struct {
	Slug   string `json:"slug"`
	Valid  bool   `json:"valid"`
	Reason string `json:"reason,omitempty"`
}

func slugCheckHandler(w http.ResponseWriter, r *http.Request) {
	var req Request
	if r.Body != nil && r.ContentLength > 0 {
		_ = json.NewDecoder(r.Body).Decode(&req)
	}

	slug := req.Slug
	if slug == "" {
		slug = r.URL.Query().Get("slug")
	}

	resp := Response{Slug: slug, Valid: true}
	switch {
	case !slugPattern.MatchString(slug):
		resp.Valid = false
		resp.Reason = "slug must be 3-30 lowercase letters, digits or hyphens"
	case reserved[slug]:
		resp.Valid = false
		resp.Reason = "slug is reserved"
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(resp)
}
