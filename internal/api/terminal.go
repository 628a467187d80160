package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/kurihiro0119/github-portfolio/internal/typing"
)

const writeWait = 5 * time.Second

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// TerminalStream runs one typing scheduler per connection and streams its
// frames as JSON. The scheduler stops when the client goes away.
// GET /terminal/ws
func (h *Handler) TerminalStream(c *gin.Context) {
	logger := h.logger.WithField("session", uuid.New().String())

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logger.WithError(err).Warn("terminal: websocket upgrade failed")
		return
	}
	defer conn.Close()
	logger.Debug("terminal: stream opened")

	ctx, cancel := context.WithCancel(c.Request.Context())
	defer cancel()

	// The page never sends anything; reading only detects the close.
	go func() {
		defer cancel()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
					logger.WithError(err).Debug("terminal: websocket read")
				}
				return
			}
		}
	}()

	buf := typing.NewBuffer(h.content.Paragraphs, func(f typing.Frame) error {
		if err := conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
			return err
		}
		return conn.WriteJSON(f)
	})

	scheduler, err := typing.NewScheduler(buf, len(h.content.Paragraphs), h.content.Commands, h.timings, logger)
	if err != nil {
		logger.WithError(err).Error("terminal: cannot start typing scheduler")
		return
	}

	if err := scheduler.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logger.WithError(err).Debug("terminal: stream ended")
	}
}
