package images

import (
	"context"
)

// UploadImageRequest represents an image upload crossing the service bus.
type UploadImageRequest struct {
	Name        string `json:"name"`
	Data        []byte `json:"data"`
	ContentType string `json:"content_type"`
}

// UploadImageResponse carries the key and public URL of a stored image.
type UploadImageResponse struct {
	Key string `json:"key"`
	URL string `json:"url"`
}

// GetImageRequest represents a download request.
type GetImageRequest struct {
	Key string `json:"key"`
}

// GetImageResponse carries the stored bytes for a download.
type GetImageResponse struct {
	Data        []byte `json:"data"`
	ContentType string `json:"content_type"`
}

// ImagePort is the interface the API module uses to reach the image
// services.
type ImagePort interface {
	UploadImage(ctx context.Context, name string, data []byte, contentType string) (*UploadImageResponse, error)
	GetImage(ctx context.Context, key string) (*GetImageResponse, error)
}
