package upload

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestUploadSendsUnsignedMultipart(t *testing.T) {
	var gotPreset, gotFilename string
	var gotBytes []byte

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(MaxUploadBytes); err != nil {
			t.Errorf("parse multipart: %v", err)
		}
		gotPreset = r.FormValue("upload_preset")
		file, header, err := r.FormFile("file")
		if err != nil {
			t.Errorf("form file: %v", err)
		} else {
			gotFilename = header.Filename
			gotBytes, _ = io.ReadAll(file)
			_ = file.Close()
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"secure_url":"https://img.example/abc.png","public_id":"abc","width":10,"height":20,"bytes":3,"format":"png"}`))
	}))
	defer srv.Close()

	c := NewClient(srv.Client(), "https://unused.example", "profile-images", WithBaseURL(srv.URL))
	asset, err := c.Upload(context.Background(), "avatar.png", strings.NewReader("img"))
	if err != nil {
		t.Fatalf("upload: %v", err)
	}

	if gotPreset != "profile-images" {
		t.Errorf("expected upload_preset profile-images, got %q", gotPreset)
	}
	if gotFilename != "avatar.png" {
		t.Errorf("expected filename avatar.png, got %q", gotFilename)
	}
	if string(gotBytes) != "img" {
		t.Errorf("expected file contents forwarded, got %q", gotBytes)
	}
	if asset.URL != "https://img.example/abc.png" {
		t.Errorf("unexpected asset URL: %q", asset.URL)
	}
	if asset.Width != 10 || asset.Format != "png" {
		t.Errorf("unexpected asset metadata: %+v", asset)
	}
}

func TestUploadTooLarge(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.Copy(io.Discard, r.Body)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"secure_url":"https://img.example/x"}`))
	}))
	defer srv.Close()

	c := NewClient(srv.Client(), srv.URL, "preset")
	oversized := bytes.NewReader(make([]byte, MaxUploadBytes+1))
	_, err := c.Upload(context.Background(), "huge.png", oversized)
	if !errors.Is(err, ErrTooLarge) {
		t.Errorf("expected ErrTooLarge, got %v", err)
	}
}

func TestUploadProviderError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer srv.Close()

	c := NewClient(srv.Client(), srv.URL, "preset")
	_, err := c.Upload(context.Background(), "a.png", strings.NewReader("x"))
	if !errors.Is(err, ErrUploadFailed) {
		t.Errorf("expected ErrUploadFailed, got %v", err)
	}
}

func TestUploadMissingAssetURL(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"public_id":"abc"}`))
	}))
	defer srv.Close()

	c := NewClient(srv.Client(), srv.URL, "preset")
	_, err := c.Upload(context.Background(), "a.png", strings.NewReader("x"))
	if !errors.Is(err, ErrUploadFailed) {
		t.Errorf("expected ErrUploadFailed for missing URL, got %v", err)
	}
}

func TestAllowedType(t *testing.T) {
	for _, ct := range []string{"image/jpeg", "image/png", "image/webp", "image/gif"} {
		if !AllowedType(ct) {
			t.Errorf("expected %s allowed", ct)
		}
	}
	for _, ct := range []string{"image/svg+xml", "text/html", "application/pdf", ""} {
		if AllowedType(ct) {
			t.Errorf("expected %s rejected", ct)
		}
	}
}
