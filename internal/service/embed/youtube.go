package embed

import "regexp"

// youtubeIDRe matches the accepted YouTube URL shapes and captures the video
// identifier, which is always exactly 11 characters:
//
//	https://www.youtube.com/watch?v=<id>
//	https://youtube.com/embed/<id>
//	https://youtube.com/shorts/<id>
//	https://youtube.com/v/<id>
//	https://youtu.be/<id>
var youtubeIDRe = regexp.MustCompile(
	`(?:youtube\.com/(?:watch\?(?:[^#&]*&)*v=|embed/|shorts/|v/)|youtu\.be/)([A-Za-z0-9_-]{11})(?:[^A-Za-z0-9_-]|$)`,
)

// ExtractYouTubeID pulls the 11-character video identifier out of a YouTube
// URL. The second return is false when no recognized pattern matches; callers
// render an inline error state instead of a broken embed.
func ExtractYouTubeID(raw string) (string, bool) {
	m := youtubeIDRe.FindStringSubmatch(raw)
	if m == nil {
		return "", false
	}
	return m[1], true
}
