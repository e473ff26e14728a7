package uploads

import (
	"context"
	"errors"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/google/uuid"

	"github.com/linkdeck/linkdeck/internal/platform/auth"
	uploadsvc "github.com/linkdeck/linkdeck/internal/service/upload"
)

var security = []map[string][]string{
	{"bearerAuth": {}},
}

// extensions maps accepted content types to stored filename extensions.
var extensions = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
	"image/gif":  ".gif",
}

// UploadFormData is the multipart form shape for POST /uploads.
type UploadFormData struct {
	// Content type is checked in the handler so foreign types get a 415
	// rather than a generic validation error.
	File huma.FormFile `form:"file" required:"true" doc:"Image file"`
}

// UploadInput for POST /uploads
type UploadInput struct {
	RawBody huma.MultipartFormFiles[UploadFormData]
}

// Asset is the hosted image returned after a successful upload.
type Asset struct {
	URL    string `json:"url"    doc:"Hosted image URL"`
	Width  int    `json:"width"  doc:"Image width in pixels"`
	Height int    `json:"height" doc:"Image height in pixels"`
	Bytes  int    `json:"bytes"  doc:"Stored size in bytes"`
	Format string `json:"format" doc:"Stored image format"`
}

// UploadOutput for POST /uploads (201 Created)
type UploadOutput struct {
	Body Asset
}

// Register registers the image upload endpoint.
func Register(api huma.API, uploader uploadsvc.Uploader) {
	huma.Register(api, huma.Operation{
		OperationID:   "upload-image",
		Method:        http.MethodPost,
		Path:          "/uploads",
		Summary:       "Upload an image",
		Description:   "Accepts a single image as multipart form data and stores it with the image host. The returned URL can be used for avatars, block thumbnails and share images.",
		Tags:          []string{"Uploads"},
		DefaultStatus: http.StatusCreated,
		Security:      security,
	}, func(ctx context.Context, input *UploadInput) (*UploadOutput, error) {
		_ = auth.UserFromContext(ctx)

		form := input.RawBody.Data()
		if !form.File.IsSet {
			return nil, huma.Error422UnprocessableEntity("file is required")
		}
		ext, ok := extensions[form.File.ContentType]
		if !ok {
			return nil, huma.Error415UnsupportedMediaType("only JPEG, PNG, WebP and GIF images are accepted")
		}

		asset, err := uploader.Upload(ctx, uuid.NewString()+ext, form.File)
		if err != nil {
			return nil, mapServiceError(err)
		}
		return &UploadOutput{Body: Asset{
			URL:    asset.URL,
			Width:  asset.Width,
			Height: asset.Height,
			Bytes:  asset.Bytes,
			Format: asset.Format,
		}}, nil
	})
}

func mapServiceError(err error) error {
	switch {
	case errors.Is(err, uploadsvc.ErrTooLarge):
		return huma.NewError(http.StatusRequestEntityTooLarge, "file exceeds the upload size limit")
	case errors.Is(err, uploadsvc.ErrUnsupportedType):
		return huma.Error415UnsupportedMediaType("unsupported file type")
	default:
		return huma.Error500InternalServerError("upload failed")
	}
}
