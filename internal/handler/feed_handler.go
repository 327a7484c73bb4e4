package handler

import (
	"net/http"
	"time"

	"github.com/AS-AI-CS/EndpointerSubmission/internal/middleware"
	"github.com/AS-AI-CS/EndpointerSubmission/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	feedWriteTimeout = 10 * time.Second
	feedPingInterval = 30 * time.Second
)

// FeedHandler streams a user's new predictions over a WebSocket
type FeedHandler struct {
	rdb      *redis.Client
	logger   *zap.Logger
	upgrader websocket.Upgrader
}

// NewFeedHandler creates a new FeedHandler
func NewFeedHandler(rdb *redis.Client, logger *zap.Logger) *FeedHandler {
	return &FeedHandler{
		rdb:    rdb,
		logger: logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}
}

// Stream forwards every prediction published for the caller until the client disconnects
// GET /protected/predict1/feed
func (h *FeedHandler) Stream(c *gin.Context) {
	userID := middleware.GetUserID(c)

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		// Upgrade has already written the error response
		h.logger.Warn("websocket upgrade failed", zap.Uint("user_id", userID), zap.Error(err))
		return
	}
	defer conn.Close()

	ctx := c.Request.Context()
	pubsub := h.rdb.Subscribe(ctx, service.PredictionChannel(userID))
	defer pubsub.Close()

	if _, err := pubsub.Receive(ctx); err != nil {
		h.logger.Error("prediction feed subscribe failed", zap.Uint("user_id", userID), zap.Error(err))
		_ = conn.WriteMessage(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseInternalServerErr, "subscribe failed"))
		return
	}

	// The client never sends data; reading only detects disconnects.
	closed := make(chan struct{})
	go func() {
		defer close(closed)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
					h.logger.Debug("prediction feed closed", zap.Uint("user_id", userID), zap.Error(err))
				}
				return
			}
		}
	}()

	ticker := time.NewTicker(feedPingInterval)
	defer ticker.Stop()

	messages := pubsub.Channel()
	for {
		select {
		case <-closed:
			return
		case <-ctx.Done():
			return
		case msg, ok := <-messages:
			if !ok {
				return
			}
			_ = conn.SetWriteDeadline(time.Now().Add(feedWriteTimeout))
			if err := conn.WriteMessage(websocket.TextMessage, []byte(msg.Payload)); err != nil {
				return
			}
		case <-ticker.C:
			_ = conn.SetWriteDeadline(time.Now().Add(feedWriteTimeout))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// RegisterRoutes registers routes on a group that already authenticates the user
func (h *FeedHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/protected/predict1/feed", h.Stream)
}
