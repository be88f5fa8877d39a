package images

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"
)

// ImagesModule provides image attachment storage services.
type ImagesModule struct {
	natsURL string
	bucket  string
	store   *JetStreamObjectStore
	service *Service
}

// Compile-time interface checks.
var _ mono.Module = (*ImagesModule)(nil)
var _ mono.ServiceProviderModule = (*ImagesModule)(nil)
var _ mono.HealthCheckableModule = (*ImagesModule)(nil)

// NewModule creates a new ImagesModule backed by the given NATS server and
// object store bucket.
func NewModule(natsURL, bucket string) *ImagesModule {
	return &ImagesModule{
		natsURL: natsURL,
		bucket:  bucket,
	}
}

// Name returns the module name.
func (m *ImagesModule) Name() string {
	return "images"
}

// Start connects to the object store and initializes the bucket.
func (m *ImagesModule) Start(ctx context.Context) error {
	store, err := NewJetStreamObjectStore(m.natsURL, m.bucket)
	if err != nil {
		return fmt.Errorf("failed to connect object store: %w", err)
	}
	if err := store.Init(ctx); err != nil {
		store.Close()
		return fmt.Errorf("failed to initialize bucket: %w", err)
	}

	m.store = store
	m.service = NewService(store)

	log.Printf("[images] Module started (bucket: %s)", m.bucket)
	return nil
}

// Stop shuts down the module.
func (m *ImagesModule) Stop(_ context.Context) error {
	if m.store != nil {
		m.store.Close()
	}
	log.Println("[images] Module stopped")
	return nil
}

// Health returns the health status of the module.
func (m *ImagesModule) Health(_ context.Context) mono.HealthStatus {
	if m.store == nil || !m.store.IsConnected() {
		return mono.HealthStatus{
			Healthy: false,
			Message: "object store not connected",
		}
	}
	return mono.HealthStatus{
		Healthy: true,
		Message: "operational",
		Details: map[string]any{
			"bucket": m.bucket,
		},
	}
}

// RegisterServices registers request-reply services in the service container.
func (m *ImagesModule) RegisterServices(container mono.ServiceContainer) error {
	if err := helper.RegisterTypedRequestReplyService(
		container,
		"upload-image",
		json.Unmarshal,
		json.Marshal,
		m.handleUpload,
	); err != nil {
		return fmt.Errorf("failed to register upload-image service: %w", err)
	}

	if err := helper.RegisterTypedRequestReplyService(
		container,
		"get-image",
		json.Unmarshal,
		json.Marshal,
		m.handleGet,
	); err != nil {
		return fmt.Errorf("failed to register get-image service: %w", err)
	}

	log.Printf("[images] Registered services: upload-image, get-image")
	return nil
}

// handleUpload handles the upload-image service request.
func (m *ImagesModule) handleUpload(ctx context.Context, req UploadImageRequest, _ *mono.Msg) (UploadImageResponse, error) {
	key, url, err := m.service.Upload(ctx, req.Name, req.Data, req.ContentType)
	if err != nil {
		return UploadImageResponse{}, err
	}
	return UploadImageResponse{Key: key, URL: url}, nil
}

// handleGet handles the get-image service request.
func (m *ImagesModule) handleGet(ctx context.Context, req GetImageRequest, _ *mono.Msg) (GetImageResponse, error) {
	data, contentType, err := m.service.Get(ctx, req.Key)
	if err != nil {
		return GetImageResponse{}, err
	}
	return GetImageResponse{Data: data, ContentType: contentType}, nil
}
