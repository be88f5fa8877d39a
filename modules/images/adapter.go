package images

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"
)

// imageAdapter wraps the images module's ServiceContainer. It implements
// ImagePort.
type imageAdapter struct {
	container mono.ServiceContainer
}

// NewImageAdapter creates a new adapter for the image services.
func NewImageAdapter(container mono.ServiceContainer) ImagePort {
	if container == nil {
		panic("image adapter requires non-nil ServiceContainer")
	}
	return &imageAdapter{container: container}
}

// UploadImage stores an image and returns its key and public URL.
func (a *imageAdapter) UploadImage(ctx context.Context, name string, data []byte, contentType string) (*UploadImageResponse, error) {
	req := UploadImageRequest{Name: name, Data: data, ContentType: contentType}
	var resp UploadImageResponse
	if err := helper.CallRequestReplyService(
		ctx,
		a.container,
		"upload-image",
		json.Marshal,
		json.Unmarshal,
		&req,
		&resp,
	); err != nil {
		return nil, fmt.Errorf("upload-image service call failed: %w", err)
	}
	return &resp, nil
}

// GetImage retrieves stored image bytes by key.
func (a *imageAdapter) GetImage(ctx context.Context, key string) (*GetImageResponse, error) {
	req := GetImageRequest{Key: key}
	var resp GetImageResponse
	if err := helper.CallRequestReplyService(
		ctx,
		a.container,
		"get-image",
		json.Marshal,
		json.Unmarshal,
		&req,
		&resp,
	); err != nil {
		return nil, fmt.Errorf("get-image service call failed: %w", err)
	}
	return &resp, nil
}
