package embed

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
)

// oEmbed errors
var (
	ErrOEmbedNotFound = errors.New("oembed resource not found")
	ErrOEmbedUpstream = errors.New("oembed upstream error")
)

const (
	defaultSoundCloudURL = "https://soundcloud.com/oembed"
	defaultTikTokURL     = "https://www.tiktok.com/oembed"
	userAgent            = "linkdeck"
)

// OEmbed is the subset of an oEmbed response the page renderer consumes.
type OEmbed struct {
	HTML         string `json:"html"`
	Title        string `json:"title"`
	ProviderName string `json:"provider_name"`
	ThumbnailURL string `json:"thumbnail_url"`
}

// OEmbedFetcher fetches embeddable markup for a content URL.
type OEmbedFetcher interface {
	SoundCloud(ctx context.Context, target string) (*OEmbed, error)
	TikTok(ctx context.Context, target string) (*OEmbed, error)
}

// OEmbedClient implements OEmbedFetcher against the public SoundCloud and
// TikTok oEmbed endpoints. Both are consumed read-only, no authentication.
type OEmbedClient struct {
	httpClient    *http.Client
	soundCloudURL string
	tikTokURL     string
}

// OEmbedOption configures an OEmbedClient.
type OEmbedOption func(*OEmbedClient)

// WithSoundCloudURL overrides the SoundCloud endpoint (useful for testing).
func WithSoundCloudURL(u string) OEmbedOption {
	return func(c *OEmbedClient) { c.soundCloudURL = u }
}

// WithTikTokURL overrides the TikTok endpoint (useful for testing).
func WithTikTokURL(u string) OEmbedOption {
	return func(c *OEmbedClient) { c.tikTokURL = u }
}

// NewOEmbedClient creates a new oEmbed client.
func NewOEmbedClient(httpClient *http.Client, opts ...OEmbedOption) *OEmbedClient {
	c := &OEmbedClient{
		httpClient:    httpClient,
		soundCloudURL: defaultSoundCloudURL,
		tikTokURL:     defaultTikTokURL,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SoundCloud fetches embeddable markup for a SoundCloud track or set URL.
func (c *OEmbedClient) SoundCloud(ctx context.Context, target string) (*OEmbed, error) {
	q := url.Values{
		"format": {"json"},
		"url":    {target},
	}
	return c.fetch(ctx, c.soundCloudURL, q)
}

// TikTok fetches embeddable markup for a TikTok video URL. The returned HTML
// includes a script tag the front end must re-attach to the document for the
// embed to activate.
func (c *OEmbedClient) TikTok(ctx context.Context, target string) (*OEmbed, error) {
	q := url.Values{
		"url": {target},
	}
	return c.fetch(ctx, c.tikTokURL, q)
}

func (c *OEmbedClient) fetch(ctx context.Context, endpoint string, query url.Values) (*OEmbed, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint+"?"+query.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("creating oembed request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching oembed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	switch {
	case resp.StatusCode == http.StatusOK:
		// fall through to decode
	case resp.StatusCode == http.StatusNotFound:
		return nil, fmt.Errorf("%w: status %d", ErrOEmbedNotFound, resp.StatusCode)
	default:
		return nil, fmt.Errorf("%w: status %d", ErrOEmbedUpstream, resp.StatusCode)
	}

	var oe OEmbed
	if err := json.NewDecoder(resp.Body).Decode(&oe); err != nil {
		return nil, fmt.Errorf("decoding oembed response: %w", err)
	}
	if oe.HTML == "" {
		return nil, fmt.Errorf("%w: response carries no embed markup", ErrOEmbedUpstream)
	}
	return &oe, nil
}

// MockOEmbedFetcher provides canned oEmbed responses for tests.
type MockOEmbedFetcher struct {
	Result *OEmbed
	Err    error
}

func (m *MockOEmbedFetcher) SoundCloud(_ context.Context, _ string) (*OEmbed, error) {
	return m.Result, m.Err
}

func (m *MockOEmbedFetcher) TikTok(_ context.Context, _ string) (*OEmbed, error) {
	return m.Result, m.Err
}

// Compile-time interface checks
var (
	_ OEmbedFetcher = (*OEmbedClient)(nil)
	_ OEmbedFetcher = (*MockOEmbedFetcher)(nil)
)
