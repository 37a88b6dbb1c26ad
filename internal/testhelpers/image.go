package testhelpers

import (
	"testing"

	"github.com/platefeed/backend/internal/service"
)

// TestImageDataURI is a minimal valid base64 data URI (PNG magic bytes)
const TestImageDataURI = "data:image/png;base64,iVBORw0KGgo="

// NewTestImageService returns an ImageService backed by a temp directory
func NewTestImageService(t *testing.T) *service.ImageService {
	t.Helper()

	store, err := service.NewLocalImageStore(t.TempDir(), "/media")
	if err != nil {
		t.Fatalf("failed to create local image store: %v", err)
	}
	return service.NewImageService(store)
}
