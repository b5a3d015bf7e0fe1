package handler

import (
	"io"

	"github.com/gin-gonic/gin"
	"github.com/timmy/artglass/internal/logger"
	"github.com/timmy/artglass/internal/notify"
)

// EventsHandler streams artwork-changed events to overlay windows over
// server-sent events.
type EventsHandler struct {
	bus *notify.Bus
}

// NewEventsHandler creates a new events handler.
func NewEventsHandler(bus *notify.Bus) *EventsHandler {
	return &EventsHandler{bus: bus}
}

// Stream handles GET /api/v1/events. The connection stays open until
// the client disconnects; every artwork served by next/previous is
// relayed as an "artwork-changed" event.
func (h *EventsHandler) Stream(c *gin.Context) {
	id, ch := h.bus.Subscribe()
	defer h.bus.Unsubscribe(id)

	ctx := c.Request.Context()
	logger.CtxDebug(ctx, "Event subscriber connected: %s", id)

	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Writer.Header().Set("Connection", "keep-alive")

	c.Stream(func(w io.Writer) bool {
		select {
		case <-ctx.Done():
			return false
		case art, ok := <-ch:
			if !ok {
				return false
			}
			c.SSEvent("artwork-changed", art)
			return true
		}
	})

	logger.CtxDebug(ctx, "Event subscriber disconnected: %s", id)
}
