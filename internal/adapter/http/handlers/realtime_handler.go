package handlers

import (
	"context"
	"io"
	"time"

	"labtracker/internal/domain/entities"
	"labtracker/internal/infrastructure/logger"
	"labtracker/internal/usecase"
	"labtracker/internal/usecase/interfaces"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const defaultHeartbeat = 25 * time.Second

// QuoteEventSubscriber hands out quote change subscriptions.
type QuoteEventSubscriber interface {
	Subscribe(ctx context.Context) (<-chan interfaces.QuoteEvent, func())
}

// RealtimeHandler streams quote changes visible to the caller as
// Server-Sent Events.
type RealtimeHandler struct {
	events    QuoteEventSubscriber
	heartbeat time.Duration
	log       *zap.Logger
}

func NewRealtimeHandler(events QuoteEventSubscriber, heartbeat time.Duration, log *zap.Logger) *RealtimeHandler {
	if heartbeat <= 0 {
		heartbeat = defaultHeartbeat
	}
	return &RealtimeHandler{events: events, heartbeat: heartbeat, log: logger.OrNop(log).Named("realtime_handler")}
}

// StreamQuotes godoc
// @Summary  Stream quote changes
// @Tags     realtime
// @Produce  text/event-stream
// @Success  200
// @Security Bearer
// @Router   /realtime/quotes [get]
func (h *RealtimeHandler) StreamQuotes(c *gin.Context) {
	rc, ok := caller(c)
	if !ok {
		return
	}
	scope := rc.Scope()
	ctx := c.Request.Context()

	events, cancel := h.events.Subscribe(ctx)
	defer cancel()

	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no")
	c.SSEvent("ready", gin.H{"user_id": rc.UserID})
	c.Writer.Flush()
	h.log.Debug("stream opened", zap.String("user_id", rc.UserID))

	ticker := time.NewTicker(h.heartbeat)
	defer ticker.Stop()

	c.Stream(func(io.Writer) bool {
		select {
		case <-ctx.Done():
			return false
		case ev, ok := <-events:
			if !ok {
				return false
			}
			if usecase.InScope(scope, entities.Quote{UserID: ev.UserID, LabID: ev.LabID}) {
				c.SSEvent("quote", ev)
			}
			return true
		case <-ticker.C:
			c.SSEvent("ping", time.Now().UTC().Format(time.RFC3339))
			return true
		}
	})
	h.log.Debug("stream closed", zap.String("user_id", rc.UserID))
}
