package handlers

import (
	_ "embed"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/vacatio/backend/internal/storage"
)

//go:embed placeholder.svg
var placeholderImage []byte

// ImageHandler serves uploaded vacation images
type ImageHandler struct {
	imageStore *storage.ImageStore
}

// NewImageHandler creates a new ImageHandler
func NewImageHandler(imageStore *storage.ImageStore) *ImageHandler {
	return &ImageHandler{imageStore: imageStore}
}

// RegisterImageRoutes registers the static image route
func (h *ImageHandler) RegisterImageRoutes(e *echo.Echo) {
	e.GET("/uploads/:filename", h.GetImage)
}

// GetImage serves a stored image by file name. A missing file is a 404
// whose body is the bundled placeholder, so clients that ignore the status
// still render something.
func (h *ImageHandler) GetImage(c echo.Context) error {
	path, ok := h.imageStore.Path(c.Param("filename"))
	if !ok {
		return c.Blob(http.StatusNotFound, "image/svg+xml", placeholderImage)
	}
	return c.File(path)
}
