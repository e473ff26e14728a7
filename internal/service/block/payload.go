package block

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// Kind tags the closed set of block variants.
type Kind string

const (
	KindLink       Kind = "link"
	KindHeader     Kind = "header"
	KindImage      Kind = "image"
	KindFAQ        Kind = "faq"
	KindYouTube    Kind = "youtube"
	KindSpotify    Kind = "spotify"
	KindSoundCloud Kind = "soundcloud"
	KindTikTok     Kind = "tiktok"
)

// Kinds lists every recognized block kind in a stable order.
var Kinds = []Kind{
	KindLink, KindHeader, KindImage, KindFAQ,
	KindYouTube, KindSpotify, KindSoundCloud, KindTikTok,
}

// Valid reports whether k names a recognized block kind.
func (k Kind) Valid() bool {
	switch k {
	case KindLink, KindHeader, KindImage, KindFAQ,
		KindYouTube, KindSpotify, KindSoundCloud, KindTikTok:
		return true
	}
	return false
}

// Payload is the tagged union of block content. Each kind carries its own
// typed variant; nothing downstream re-parses untyped JSON.
type Payload interface {
	Kind() Kind
	validate() error
}

// socialPrefixes maps social link kinds to the URL prefix applied to bare
// handles submitted without a scheme.
var socialPrefixes = map[string]string{
	"telegram":  "https://t.me/",
	"whatsapp":  "https://wa.me/",
	"instagram": "https://instagram.com/",
	"twitter":   "https://x.com/",
	"github":    "https://github.com/",
	"tiktok":    "https://www.tiktok.com/@",
}

// LinkPayload is a link button: title plus destination URL. Social names an
// optional well-known destination whose prefix completes a bare handle.
type LinkPayload struct {
	Title     string `json:"title"               firestore:"title"`
	URL       string `json:"url"                 firestore:"url"`
	Social    string `json:"social,omitempty"    firestore:"social,omitempty"`
	Thumbnail string `json:"thumbnail,omitempty" firestore:"thumbnail,omitempty"`
}

func (LinkPayload) Kind() Kind { return KindLink }

func (p LinkPayload) validate() error {
	if strings.TrimSpace(p.Title) == "" {
		return errors.New("link title is required")
	}
	if strings.TrimSpace(p.URL) == "" {
		return errors.New("link url is required")
	}
	return nil
}

// normalize applies the social prefix to scheme-less values and defaults the
// scheme otherwise. The prefix is applied only when the submitted value lacks
// a scheme; full URLs pass through untouched.
func (p *LinkPayload) normalize() {
	p.Title = strings.TrimSpace(p.Title)
	p.URL = strings.TrimSpace(p.URL)
	if p.URL == "" || strings.Contains(p.URL, "://") {
		return
	}
	if prefix, ok := socialPrefixes[p.Social]; ok {
		p.URL = prefix + p.URL
		return
	}
	p.URL = "https://" + p.URL
}

// HeaderPayload is a section heading between blocks.
type HeaderPayload struct {
	Text string `json:"text" firestore:"text"`
}

func (HeaderPayload) Kind() Kind { return KindHeader }

func (p HeaderPayload) validate() error {
	if strings.TrimSpace(p.Text) == "" {
		return errors.New("header text is required")
	}
	return nil
}

// ImagePayload is a hosted image with an optional caption.
type ImagePayload struct {
	URL     string `json:"url"               firestore:"url"`
	Caption string `json:"caption,omitempty" firestore:"caption,omitempty"`
}

func (ImagePayload) Kind() Kind { return KindImage }

func (p ImagePayload) validate() error {
	if strings.TrimSpace(p.URL) == "" {
		return errors.New("image url is required")
	}
	return nil
}

// FAQItem is one question/answer row of a FAQ accordion.
type FAQItem struct {
	Question string `json:"question" firestore:"question"`
	Answer   string `json:"answer"   firestore:"answer"`
}

// FAQPayload is an ordered list of question/answer rows.
type FAQPayload struct {
	Items []FAQItem `json:"items" firestore:"items"`
}

func (FAQPayload) Kind() Kind { return KindFAQ }

func (p FAQPayload) validate() error {
	if len(p.Items) == 0 {
		return errors.New("faq requires at least one item")
	}
	for i, item := range p.Items {
		if strings.TrimSpace(item.Question) == "" {
			return fmt.Errorf("faq item %d: question is required", i)
		}
		if strings.TrimSpace(item.Answer) == "" {
			return fmt.Errorf("faq item %d: answer is required", i)
		}
	}
	return nil
}

// MediaPayload carries a media URL plus optional title. It backs the four
// embeddable kinds (youtube, spotify, soundcloud, tiktok); the kind tag
// decides how the URL is resolved at render time.
type MediaPayload struct {
	kind Kind

	URL   string `json:"url"             firestore:"url"`
	Title string `json:"title,omitempty" firestore:"title,omitempty"`
}

func (p MediaPayload) Kind() Kind { return p.kind }

func (p MediaPayload) validate() error {
	if strings.TrimSpace(p.URL) == "" {
		return fmt.Errorf("%s url is required", p.kind)
	}
	return nil
}

// NewMediaPayload constructs a media payload for one of the embeddable kinds.
func NewMediaPayload(kind Kind, url, title string) MediaPayload {
	return MediaPayload{kind: kind, URL: url, Title: title}
}

// UnmarshalPayload decodes raw JSON into the typed variant for kind,
// normalizes it, and validates it.
func UnmarshalPayload(kind Kind, data []byte) (Payload, error) {
	if !kind.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, kind)
	}
	var p Payload
	switch kind {
	case KindLink:
		var lp LinkPayload
		if err := json.Unmarshal(data, &lp); err != nil {
			return nil, fmt.Errorf("decoding link payload: %w", err)
		}
		lp.normalize()
		p = lp
	case KindHeader:
		var hp HeaderPayload
		if err := json.Unmarshal(data, &hp); err != nil {
			return nil, fmt.Errorf("decoding header payload: %w", err)
		}
		p = hp
	case KindImage:
		var ip ImagePayload
		if err := json.Unmarshal(data, &ip); err != nil {
			return nil, fmt.Errorf("decoding image payload: %w", err)
		}
		p = ip
	case KindFAQ:
		var fp FAQPayload
		if err := json.Unmarshal(data, &fp); err != nil {
			return nil, fmt.Errorf("decoding faq payload: %w", err)
		}
		p = fp
	default:
		var mp MediaPayload
		if err := json.Unmarshal(data, &mp); err != nil {
			return nil, fmt.Errorf("decoding %s payload: %w", kind, err)
		}
		mp.kind = kind
		p = mp
	}
	if err := p.validate(); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidPayload, err)
	}
	return p, nil
}

// MarshalPayload serializes a payload to its opaque stored form.
func MarshalPayload(p Payload) ([]byte, error) {
	return json.Marshal(p)
}
