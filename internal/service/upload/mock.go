package upload

import (
	"context"
	"io"
)

// MockUploader provides canned upload results for tests.
type MockUploader struct {
	Asset *Asset
	Err   error

	// Uploaded records the filenames passed to Upload.
	Uploaded []string
}

func (m *MockUploader) Upload(_ context.Context, filename string, file io.Reader) (*Asset, error) {
	if file != nil {
		_, _ = io.Copy(io.Discard, file)
	}
	m.Uploaded = append(m.Uploaded, filename)
	return m.Asset, m.Err
}

// Compile-time interface check
var _ Uploader = (*MockUploader)(nil)
