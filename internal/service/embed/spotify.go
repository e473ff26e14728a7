package embed

import (
	"net/url"
	"strings"
)

const spotifyHost = "open.spotify.com"

// SpotifyEmbedURL rewrites an open.spotify.com content URL to its embeddable
// form by prefixing the path with /embed:
//
//	https://open.spotify.com/track/abc123 -> https://open.spotify.com/embed/track/abc123
//
// URLs on any other host produce no embeddable form. Already-embeddable URLs
// pass through unchanged.
func SpotifyEmbedURL(raw string) (string, bool) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", false
	}
	if !strings.EqualFold(u.Host, spotifyHost) {
		return "", false
	}
	path := strings.TrimPrefix(u.Path, "/")
	if path == "" {
		return "", false
	}
	if !strings.HasPrefix(path, "embed/") {
		u.Path = "/embed/" + path
	}
	u.Scheme = "https"
	return u.String(), true
}
