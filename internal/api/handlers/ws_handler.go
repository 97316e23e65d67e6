package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/linskybing/genie-forms/internal/api/middleware"
	"github.com/linskybing/genie-forms/internal/config"
	"github.com/linskybing/genie-forms/internal/feed"
	"github.com/linskybing/genie-forms/pkg/logger"
	"go.uber.org/zap"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" {
			return true
		}
		return middleware.OriginAllowed(config.CORSAllowedOrigins, origin)
	},
}

type FeedHandler struct {
	hub *feed.Hub
}

func NewFeedHandler(hub *feed.Hub) *FeedHandler {
	return &FeedHandler{hub: hub}
}

// SubmissionFeed godoc
// @Summary Live submission feed
// @Description Upgrades to a websocket that receives submission.created events.
// @Tags submissions
// @Security BearerAuth
// @Success 101 {string} string "Switching Protocols"
// @Router /ws/submissions [get]
func (h *FeedHandler) SubmissionFeed(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logger.L().Warn("websocket upgrade failed", zap.Error(err))
		return
	}
	h.hub.Serve(conn)
}
