package controller

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
)

// SSENotifications godoc
// @Summary Stream session notifications
// @Description Server-Sent Events endpoint delivering swap notifications to the UI
// @Tags notifications
// @Produce text/event-stream
// @Success 200 {string} string "SSE stream"
// @Router /api/notifications/stream [get]
func SSENotifications(notifCh <-chan []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Content-Type", "text/event-stream")
		c.Header("Cache-Control", "no-cache")
		c.Header("Connection", "keep-alive")

		c.Stream(func(w io.Writer) bool {
			select {
			case msg, ok := <-notifCh:
				if !ok {
					return false
				}
				c.SSEvent("notification", string(msg))
				c.Writer.Flush()
				return true
			case <-c.Request.Context().Done():
				return false
			}
		})
	}
}

// Health godoc
// @Summary Health check
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func Health(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, gin.H{"status": "ok"})
}
