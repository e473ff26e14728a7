package embed

import (
	"context"

	"go.uber.org/zap"

	"github.com/linkdeck/linkdeck/internal/platform/logging"
	"github.com/linkdeck/linkdeck/internal/service/block"
)

// Inline error messages for failed embeds. Rendered in place of the embed;
// sibling blocks are unaffected.
const (
	errUnrecognizedVideo = "unrecognized video URL"
	errUnrecognizedHost  = "unrecognized Spotify URL"
	errEmbedUnavailable  = "embed unavailable"
)

// Embed is the render-ready view of an embeddable block. Exactly one of
// VideoID, EmbedURL, or HTML is set on success; Error carries the inline
// error text otherwise.
type Embed struct {
	VideoID  string
	EmbedURL string
	HTML     string
	Error    string
}

// Resolver turns media block payloads into render-ready embed views.
type Resolver struct {
	fetcher OEmbedFetcher
}

// NewResolver creates a resolver backed by the given oEmbed fetcher.
func NewResolver(fetcher OEmbedFetcher) *Resolver {
	return &Resolver{fetcher: fetcher}
}

// Resolve dispatches on the block kind. Non-media kinds resolve to nil.
// A failure never propagates: the returned Embed carries an inline error
// and the caller renders it for that block alone.
func (r *Resolver) Resolve(ctx context.Context, b block.Block) *Embed {
	media, ok := b.Payload.(block.MediaPayload)
	if !ok {
		return nil
	}

	switch b.Kind {
	case block.KindYouTube:
		id, ok := ExtractYouTubeID(media.URL)
		if !ok {
			return &Embed{Error: errUnrecognizedVideo}
		}
		return &Embed{VideoID: id}

	case block.KindSpotify:
		u, ok := SpotifyEmbedURL(media.URL)
		if !ok {
			return &Embed{Error: errUnrecognizedHost}
		}
		return &Embed{EmbedURL: u}

	case block.KindSoundCloud:
		oe, err := r.fetcher.SoundCloud(ctx, media.URL)
		if err != nil {
			logging.LogWarn(ctx, "soundcloud oembed failed",
				zap.String("block_id", b.ID), zap.Error(err))
			return &Embed{Error: errEmbedUnavailable}
		}
		return &Embed{HTML: oe.HTML}

	case block.KindTikTok:
		oe, err := r.fetcher.TikTok(ctx, media.URL)
		if err != nil {
			logging.LogWarn(ctx, "tiktok oembed failed",
				zap.String("block_id", b.ID), zap.Error(err))
			return &Embed{Error: errEmbedUnavailable}
		}
		return &Embed{HTML: oe.HTML}
	}
	return nil
}
