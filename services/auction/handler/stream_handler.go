package handler

import (
	"net/http"
	"strings"

	"moto-auction/services/auction/helpers"

	"github.com/gin-gonic/gin"
)

// Streamer upgrades a request into a live event subscription
type Streamer interface {
	ServeWS(w http.ResponseWriter, r *http.Request, userID int64, topics []string) error
}

// StreamHandler serves the real-time websocket endpoint
type StreamHandler struct {
	streamer Streamer
}

// NewStreamHandler creates a StreamHandler backed by streamer
func NewStreamHandler(streamer Streamer) *StreamHandler {
	return &StreamHandler{streamer: streamer}
}

// StreamHandler handles GET /ws?topics=auction:1,auctions:all. Anonymous callers
// may connect; invite-only auction topics need an authenticated, invited user.
func (h *StreamHandler) StreamHandler(c *gin.Context) {
	var topics []string
	if raw := c.Query("topics"); raw != "" {
		topics = strings.Split(raw, ",")
	}
	viewerID := helpers.ViewerID(c)

	// errors only come back before the upgrade, while the response is still HTTP
	if err := h.streamer.ServeWS(c.Writer, c.Request, viewerID, topics); err != nil {
		helpers.RespondError(c, "StreamHandler", err, map[string]any{
			"user_id": viewerID,
			"topics":  topics,
		})
	}
}
