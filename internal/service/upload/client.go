package upload

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
)

// Upload errors
var (
	ErrTooLarge        = errors.New("file exceeds the upload size limit")
	ErrUnsupportedType = errors.New("unsupported file type")
	ErrUploadFailed    = errors.New("upload provider error")
)

// MaxUploadBytes caps a single image upload.
const MaxUploadBytes = 5 << 20

// allowedTypes are the image content types accepted for avatars, block
// thumbnails and share images.
var allowedTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/webp": true,
	"image/gif":  true,
}

// AllowedType reports whether the sniffed content type can be uploaded.
func AllowedType(contentType string) bool {
	return allowedTypes[contentType]
}

// Asset is a stored image hosted by the upload provider.
type Asset struct {
	URL      string `json:"secure_url"`
	PublicID string `json:"public_id"`
	Width    int    `json:"width"`
	Height   int    `json:"height"`
	Bytes    int    `json:"bytes"`
	Format   string `json:"format"`
}

// Uploader stores an image and returns its hosted asset.
type Uploader interface {
	Upload(ctx context.Context, filename string, file io.Reader) (*Asset, error)
}

// Client implements Uploader against a Cloudinary-style unsigned upload
// endpoint. The preset carries the transformation and folder policy, so the
// server never holds an API secret.
type Client struct {
	httpClient *http.Client
	baseURL    string
	preset     string
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL overrides the upload endpoint (useful for testing).
func WithBaseURL(u string) Option {
	return func(c *Client) { c.baseURL = u }
}

// NewClient creates a new upload client. baseURL is the provider's unsigned
// upload endpoint and preset the unsigned preset name.
func NewClient(httpClient *http.Client, baseURL, preset string, opts ...Option) *Client {
	c := &Client{
		httpClient: httpClient,
		baseURL:    baseURL,
		preset:     preset,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Upload streams the file to the provider as an unsigned multipart upload.
// The caller is responsible for size and content-type checks; Upload only
// enforces the hard byte cap while copying.
func (c *Client) Upload(ctx context.Context, filename string, file io.Reader) (*Asset, error) {
	pr, pw := io.Pipe()
	mw := multipart.NewWriter(pw)

	go func() {
		part, err := mw.CreateFormFile("file", filename)
		if err != nil {
			pw.CloseWithError(err)
			return
		}
		n, err := io.Copy(part, io.LimitReader(file, MaxUploadBytes+1))
		if err != nil {
			pw.CloseWithError(err)
			return
		}
		if n > MaxUploadBytes {
			pw.CloseWithError(ErrTooLarge)
			return
		}
		if err := mw.WriteField("upload_preset", c.preset); err != nil {
			pw.CloseWithError(err)
			return
		}
		pw.CloseWithError(mw.Close())
	}()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, pr)
	if err != nil {
		return nil, fmt.Errorf("creating upload request: %w", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, ErrTooLarge) {
			return nil, ErrTooLarge
		}
		return nil, fmt.Errorf("uploading file: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: status %d", ErrUploadFailed, resp.StatusCode)
	}

	var asset Asset
	if err := json.NewDecoder(resp.Body).Decode(&asset); err != nil {
		return nil, fmt.Errorf("decoding upload response: %w", err)
	}
	if asset.URL == "" {
		return nil, fmt.Errorf("%w: response carries no asset URL", ErrUploadFailed)
	}
	return &asset, nil
}

// Compile-time interface check
var _ Uploader = (*Client)(nil)
