package handler

import (
	"github.com/labstack/echo/v4"

	"immomarket/internal/usecase"
	"immomarket/pkg/errors"
	"immomarket/pkg/response"
)

const maxImageSize = 10 << 20 // 10 MiB per image

var allowedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/jpg":  true,
	"image/png":  true,
	"image/gif":  true,
	"image/webp": true,
}

type UploadHandler struct {
	storage usecase.ImageStorage
}

func NewUploadHandler(storage usecase.ImageStorage) *UploadHandler {
	return &UploadHandler{
		storage: storage,
	}
}

// UploadImages stores each image from the multipart form in order. A failure
// aborts the batch and propagates; objects already stored stay behind.
func (h *UploadHandler) UploadImages(c echo.Context) error {
	form, err := c.MultipartForm()
	if err != nil {
		return response.Error(c, errors.BadRequest("Invalid multipart form", err))
	}

	files := form.File["images"]
	if len(files) == 0 {
		return response.Error(c, errors.BadRequest("At least one image is required", nil))
	}

	urls := make([]string, 0, len(files))
	for _, file := range files {
		contentType := file.Header.Get("Content-Type")
		if !allowedImageTypes[contentType] {
			return response.Error(c, errors.BadRequest("Unsupported image type: "+contentType, nil))
		}
		if file.Size > maxImageSize {
			return response.Error(c, errors.BadRequest("Image exceeds the 10MB limit", nil))
		}

		src, err := file.Open()
		if err != nil {
			return response.Error(c, errors.Internal("Failed to read uploaded image", err))
		}

		url, err := h.storage.UploadImage(c.Request().Context(), src, contentType)
		src.Close()
		if err != nil {
			return response.Error(c, err)
		}

		urls = append(urls, url)
	}

	return response.Created(c, map[string][]string{
		"urls": urls,
	})
}

type deleteImagesRequest struct {
	URLs []string `json:"urls" validate:"required,min=1"`
}

// DeleteImages removes previously uploaded images. Deletes are best effort
// so the response is always a success once the request parses.
func (h *UploadHandler) DeleteImages(c echo.Context) error {
	var req deleteImagesRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, errors.BadRequest("Invalid request body", err))
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	h.storage.DeleteImages(c.Request().Context(), req.URLs)

	return response.Success(c, map[string]string{
		"message": "Images deleted",
	})
}
