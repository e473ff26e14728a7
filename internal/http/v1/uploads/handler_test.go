package uploads

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"strings"
	"testing"

	"github.com/danielgtaylor/huma/v2"
	humachi "github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/linkdeck/linkdeck/internal/platform/auth"
	applog "github.com/linkdeck/linkdeck/internal/platform/logging"
	appmiddleware "github.com/linkdeck/linkdeck/internal/platform/middleware"
	"github.com/linkdeck/linkdeck/internal/platform/respond"
	uploadsvc "github.com/linkdeck/linkdeck/internal/service/upload"
)

func newTestRouter(uploader uploadsvc.Uploader) chi.Router {
	router := chi.NewRouter()
	router.Use(
		appmiddleware.RequestID(),
		chimiddleware.RealIP,
		applog.RequestLogger(),
		respond.Recoverer(),
	)
	api := humachi.New(router, huma.DefaultConfig("UploadsTest", "test"))
	api.UseMiddleware(auth.NewMiddleware(api, &auth.MockVerifier{User: auth.TestUser()}))
	Register(api, uploader)
	return router
}

func multipartBody(t *testing.T, contentType string, data []byte) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", `form-data; name="file"; filename="avatar.png"`)
	header.Set("Content-Type", contentType)
	part, err := w.CreatePart(header)
	if err != nil {
		t.Fatalf("create part: %v", err)
	}
	if _, err := part.Write(data); err != nil {
		t.Fatalf("write part: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}
	return &buf, w.FormDataContentType()
}

func doUpload(router chi.Router, body *bytes.Buffer, contentType string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/uploads", body)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Authorization", "Bearer valid-token")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	return resp
}

func TestUploadImage(t *testing.T) {
	uploader := &uploadsvc.MockUploader{
		Asset: &uploadsvc.Asset{
			URL:    "https://images.example.com/abc.png",
			Width:  128,
			Height: 128,
			Bytes:  2048,
			Format: "png",
		},
	}
	router := newTestRouter(uploader)

	body, contentType := multipartBody(t, "image/png", []byte("fake png bytes"))
	resp := doUpload(router, body, contentType)
	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", resp.Code, resp.Body.String())
	}

	var asset Asset
	if err := json.Unmarshal(resp.Body.Bytes(), &asset); err != nil {
		t.Fatalf("json unmarshal: %v", err)
	}
	if asset.URL != "https://images.example.com/abc.png" || asset.Format != "png" {
		t.Errorf("unexpected asset: %+v", asset)
	}

	if len(uploader.Uploaded) != 1 {
		t.Fatalf("expected 1 upload, got %d", len(uploader.Uploaded))
	}
	if !strings.HasSuffix(uploader.Uploaded[0], ".png") {
		t.Errorf("expected generated filename with .png extension, got %q", uploader.Uploaded[0])
	}
}

func TestUploadUnsupportedType(t *testing.T) {
	uploader := &uploadsvc.MockUploader{}
	router := newTestRouter(uploader)

	body, contentType := multipartBody(t, "application/pdf", []byte("%PDF-1.4"))
	resp := doUpload(router, body, contentType)
	if resp.Code != http.StatusUnsupportedMediaType {
		t.Fatalf("expected 415, got %d: %s", resp.Code, resp.Body.String())
	}
	if len(uploader.Uploaded) != 0 {
		t.Errorf("rejected file must never reach the image host, got %v", uploader.Uploaded)
	}
}

func TestUploadTooLarge(t *testing.T) {
	router := newTestRouter(&uploadsvc.MockUploader{Err: uploadsvc.ErrTooLarge})

	body, contentType := multipartBody(t, "image/jpeg", []byte("jpeg bytes"))
	resp := doUpload(router, body, contentType)
	if resp.Code != http.StatusRequestEntityTooLarge {
		t.Fatalf("expected 413, got %d: %s", resp.Code, resp.Body.String())
	}
}

func TestUploadUnauthorized(t *testing.T) {
	router := newTestRouter(&uploadsvc.MockUploader{})

	body, contentType := multipartBody(t, "image/png", []byte("png"))
	req := httptest.NewRequest(http.MethodPost, "/uploads", body)
	req.Header.Set("Content-Type", contentType)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", resp.Code)
	}
}
