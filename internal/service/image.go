package service

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/platefeed/backend/config"
)

// ImageStore persists decoded image bytes and returns the public path or URL
type ImageStore interface {
	Save(ctx context.Context, name string, data []byte, contentType string) (string, error)
}

// ImageService decodes data-URI images from recipe payloads and stores
// them under a deterministic timestamp-based name.
type ImageService struct {
	store ImageStore
	now   func() time.Time
}

func NewImageService(store ImageStore) *ImageService {
	return &ImageService{store: store, now: time.Now}
}

// Store decodes a base64 data URI and writes it to the backing store
func (s *ImageService) Store(ctx context.Context, dataURI string) (string, error) {
	ext, data, err := DecodeDataURI(dataURI)
	if err != nil {
		return "", err
	}

	name := s.now().Format("20060102_150405") + "_recipe_image." + ext
	return s.store.Save(ctx, name, data, "image/"+ext)
}

// DecodeDataURI splits a "data:image/<ext>;base64,<payload>" string into
// the extension and decoded bytes.
func DecodeDataURI(dataURI string) (string, []byte, error) {
	header, payload, found := strings.Cut(dataURI, ";base64,")
	if !found {
		return "", nil, validationErrorf("image must be a base64 data URI")
	}

	ext := header[strings.LastIndex(header, "/")+1:]
	if !strings.HasPrefix(header, "data:image/") || ext == "" {
		return "", nil, validationErrorf("unsupported image format %q", header)
	}

	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return "", nil, validationErrorf("invalid base64 image payload")
	}
	return ext, data, nil
}

// LocalImageStore writes images to a directory served at baseURL
type LocalImageStore struct {
	dir     string
	baseURL string
}

func NewLocalImageStore(dir, baseURL string) (*LocalImageStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create media directory: %w", err)
	}
	return &LocalImageStore{dir: dir, baseURL: strings.TrimSuffix(baseURL, "/")}, nil
}

func (s *LocalImageStore) Save(_ context.Context, name string, data []byte, _ string) (string, error) {
	if err := os.WriteFile(filepath.Join(s.dir, name), data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write image: %w", err)
	}
	return s.baseURL + "/" + name, nil
}

// S3ImageStore uploads images to the configured bucket
type S3ImageStore struct {
	s3Config *config.S3Config
}

func NewS3ImageStore(s3Config *config.S3Config) *S3ImageStore {
	return &S3ImageStore{s3Config: s3Config}
}

func (s *S3ImageStore) Save(ctx context.Context, name string, data []byte, contentType string) (string, error) {
	key := "recipe-images/" + name
	_, err := s.s3Config.Client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.s3Config.BucketName),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload to S3: %w", err)
	}
	return s.s3Config.ObjectURL(key), nil
}
