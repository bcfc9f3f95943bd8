package handlers

import (
	"github.com/labstack/echo/v4"
	"github.com/vacatio/backend/internal/live"
)

// LiveHandler exposes the live-update WebSocket channel
type LiveHandler struct {
	hub *live.Hub
}

// NewLiveHandler creates a new LiveHandler
func NewLiveHandler(hub *live.Hub) *LiveHandler {
	return &LiveHandler{hub: hub}
}

// RegisterLiveRoutes registers the live-update route
func (h *LiveHandler) RegisterLiveRoutes(e *echo.Echo) {
	e.GET("/api/live", h.Connect)
}

// Connect upgrades the request and streams vacation change events until the
// client disconnects
func (h *LiveHandler) Connect(c echo.Context) error {
	return h.hub.ServeWS(c.Response(), c.Request())
}
