package service_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/platefeed/backend/internal/service"
	"github.com/platefeed/backend/internal/testhelpers"
)

func TestDecodeDataURI(t *testing.T) {
	ext, data, err := service.DecodeDataURI(testhelpers.TestImageDataURI)
	require.NoError(t, err)
	assert.Equal(t, "png", ext)
	assert.Equal(t, []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'}, data)
}

func TestDecodeDataURIRejectsNonImage(t *testing.T) {
	_, _, err := service.DecodeDataURI("data:text/plain;base64,aGVsbG8=")
	assert.Error(t, err)
}

func TestDecodeDataURIRejectsMissingPayload(t *testing.T) {
	_, _, err := service.DecodeDataURI("data:image/png")
	assert.Error(t, err)
}

func TestDecodeDataURIRejectsBadBase64(t *testing.T) {
	_, _, err := service.DecodeDataURI("data:image/png;base64,!!!not base64!!!")
	assert.Error(t, err)
}

func TestImageStoreWritesFile(t *testing.T) {
	dir := t.TempDir()
	store, err := service.NewLocalImageStore(dir, "/media")
	require.NoError(t, err)
	images := service.NewImageService(store)

	url, err := images.Store(context.Background(), testhelpers.TestImageDataURI)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(url, "/media/"))
	assert.True(t, strings.HasSuffix(url, "_recipe_image.png"))

	name := strings.TrimPrefix(url, "/media/")
	stat, err := os.Stat(filepath.Join(dir, name))
	require.NoError(t, err)
	assert.Positive(t, stat.Size())

	// Filename timestamp portion parses back
	prefix := strings.TrimSuffix(name, "_recipe_image.png")
	_, err = time.Parse("20060102_150405", prefix)
	assert.NoError(t, err)
}

func TestImageStoreRejectsPlainString(t *testing.T) {
	images := testhelpers.NewTestImageService(t)

	_, err := images.Store(context.Background(), "just-a-string")
	require.Error(t, err)
	assert.True(t, service.IsValidation(err))
}
