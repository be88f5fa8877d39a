package api

import (
	"io"
	"log"
	"strings"

	"github.com/example/todo-app/modules/images"
	"github.com/gofiber/fiber/v2"
)

// ImageHandlers contains the HTTP handlers for image attachments. Clients
// upload here first and put the returned URL on the todo, so image bytes
// never pass through the todo endpoints.
type ImageHandlers struct {
	images images.ImagePort
}

// NewImageHandlers creates a new ImageHandlers instance.
func NewImageHandlers(imageAdapter images.ImagePort) *ImageHandlers {
	return &ImageHandlers{images: imageAdapter}
}

// Upload handles POST /images (multipart form, field "image").
func (h *ImageHandlers) Upload(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("image")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Error:   "Invalid request",
			Details: "An image file is required",
		})
	}
	if fileHeader.Size > images.MaxImageSize {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Error:   "Image too large",
			Details: "Image size must be less than 5MB",
		})
	}

	file, err := fileHeader.Open()
	if err != nil {
		log.Printf("[api] open uploaded file failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{
			Error: "Internal Server Error",
		})
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		log.Printf("[api] read uploaded file failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{
			Error: "Internal Server Error",
		})
	}

	resp, uploadErr := h.images.UploadImage(
		c.UserContext(),
		fileHeader.Filename,
		data,
		fileHeader.Header.Get("Content-Type"),
	)
	if uploadErr != nil {
		if strings.Contains(uploadErr.Error(), images.ErrImageTooLarge.Error()) {
			return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
				Error:   "Image too large",
				Details: "Image size must be less than 5MB",
			})
		}
		log.Printf("[api] image upload failed: %v", uploadErr)
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{
			Error:   "Internal Server Error",
			Details: "Failed to upload image",
		})
	}

	return c.JSON(UploadResponse{Key: resp.Key, URL: resp.URL})
}

// Download handles GET /images/:key.
func (h *ImageHandlers) Download(c *fiber.Ctx) error {
	key := c.Params("key")

	resp, err := h.images.GetImage(c.UserContext(), key)
	if err != nil {
		if strings.Contains(err.Error(), "image not found") {
			return c.Status(fiber.StatusNotFound).JSON(ErrorResponse{
				Error: "Image not found",
			})
		}
		log.Printf("[api] image download failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{
			Error: "Internal Server Error",
		})
	}

	c.Set(fiber.HeaderContentType, resp.ContentType)
	return c.Send(resp.Data)
}
