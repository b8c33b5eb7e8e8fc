// internal/api/websocket.go
package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/reelingo/ReelLingo/internal/utils"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// The frontend is served from arbitrary origins during development.
		return true
	},
}

const (
	wsWriteTimeout = 10 * time.Second
	wsPingInterval = 30 * time.Second
)

// ProgressWebSocket upgrades the connection and streams progress updates for
// one task until the task finishes or the client disconnects.
func (h *Handler) ProgressWebSocket(c *gin.Context) {
	taskID := c.Param("taskID")

	tracker, exists := h.ProgressService.GetTracker(taskID)
	if !exists {
		h.Response.NotFound(c, "task")
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		utils.GetLogger().Warnf("websocket upgrade failed for task %s: %v", taskID, err)
		return
	}
	defer conn.Close()

	updates := tracker.Subscribe()
	defer tracker.Unsubscribe(updates)

	// Reads are discarded; the read pump only notices the client leaving.
	clientGone := make(chan struct{})
	go func() {
		defer close(clientGone)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	pingTicker := time.NewTicker(wsPingInterval)
	defer pingTicker.Stop()

	for {
		select {
		case <-clientGone:
			return
		case <-tracker.Done:
			// Drain any final update already queued before closing.
			select {
			case update := <-updates:
				conn.SetWriteDeadline(time.Now().Add(wsWriteTimeout))
				_ = conn.WriteJSON(update)
			default:
			}
			conn.SetWriteDeadline(time.Now().Add(wsWriteTimeout))
			_ = conn.WriteMessage(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, "task finished"))
			return
		case update, ok := <-updates:
			if !ok {
				return
			}
			conn.SetWriteDeadline(time.Now().Add(wsWriteTimeout))
			if err := conn.WriteJSON(update); err != nil {
				return
			}
			if update.Status == "completed" || update.Status == "failed" {
				return
			}
		case <-pingTicker.C:
			conn.SetWriteDeadline(time.Now().Add(wsWriteTimeout))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
