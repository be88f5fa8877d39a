package images

import (
	"context"
	"errors"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	// ErrUploadFailed is returned when the blob store rejects a put. No todo
	// record may reference an image whose upload failed.
	ErrUploadFailed = errors.New("image upload failed")
	// ErrImageNotFound is returned when a key does not resolve.
	ErrImageNotFound = errors.New("image not found")
	// ErrImageTooLarge is returned when an upload exceeds MaxImageSize.
	ErrImageTooLarge = errors.New("image size must be less than 5MB")
	// ErrEmptyImage is returned when an upload carries no bytes.
	ErrEmptyImage = errors.New("image data is empty")
)

// MaxImageSize caps uploads at 5MB.
const MaxImageSize = 5 * 1024 * 1024

// Service stores image attachments and hands out their public URLs.
// Callers upload first and only then attach the returned URL to a todo,
// so no record ever points at a blob that was not stored.
type Service struct {
	store ObjectStore
}

// NewService creates a new image service.
func NewService(store ObjectStore) *Service {
	return &Service{store: store}
}

// Upload stores the image under a collision-free key and returns the key
// and the public URL it will be served from.
func (s *Service) Upload(ctx context.Context, name string, data []byte, contentType string) (string, string, error) {
	if len(data) == 0 {
		return "", "", ErrEmptyImage
	}
	if len(data) > MaxImageSize {
		return "", "", ErrImageTooLarge
	}
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	// Millisecond timestamp plus a uuid keeps concurrent uploads of the
	// same filename from colliding.
	key := fmt.Sprintf("%d-%s-%s", time.Now().UnixMilli(), uuid.New().String(), sanitizeName(name))

	if _, err := s.store.Put(ctx, key, data, contentType); err != nil {
		return "", "", fmt.Errorf("%w: %v", ErrUploadFailed, err)
	}

	return key, URLForKey(key), nil
}

// Get returns the stored bytes and content type for a key.
func (s *Service) Get(ctx context.Context, key string) ([]byte, string, error) {
	data, info, err := s.store.Get(ctx, key)
	if err != nil {
		return nil, "", ErrImageNotFound
	}
	return data, info.ContentType, nil
}

// Delete removes a stored image.
func (s *Service) Delete(ctx context.Context, key string) error {
	if err := s.store.Delete(ctx, key); err != nil {
		return ErrImageNotFound
	}
	return nil
}

// URLForKey returns the public download URL for a stored key.
func URLForKey(key string) string {
	return "/images/" + key
}

// sanitizeName strips any path components from an uploaded filename.
func sanitizeName(name string) string {
	name = path.Base(strings.ReplaceAll(name, "\\", "/"))
	if name == "." || name == "/" || name == "" {
		return "upload"
	}
	return name
}
