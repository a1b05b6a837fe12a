package middleware

import (
	"context"
	"fmt"
	"net/http"
	"runtime/debug"
	"strconv"
	"time"

	"labtracker/internal/infrastructure/logger"
	"labtracker/internal/infrastructure/metrics"
	"labtracker/pkg"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RequestLogger logs one line per request.
func RequestLogger(log *zap.Logger) gin.HandlerFunc {
	log = logger.OrNop(log).Named("http")
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		fields := []zap.Field{
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
		}
		if rc, ok := RequestContextFrom(c.Request.Context()); ok {
			fields = append(fields, zap.String("user_id", rc.UserID))
		}
		switch {
		case c.Writer.Status() >= http.StatusInternalServerError:
			log.Error("request", fields...)
		case c.Writer.Status() >= http.StatusBadRequest:
			log.Warn("request", fields...)
		default:
			log.Info("request", fields...)
		}
	}
}

// Metrics records request count and latency by route template.
func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		metrics.HTTPRequests.WithLabelValues(route, c.Request.Method, strconv.Itoa(c.Writer.Status())).Inc()
		metrics.HTTPDuration.WithLabelValues(route, c.Request.Method).Observe(time.Since(start).Seconds())
	}
}

// PanicReporter receives panics caught by Recovery.
type PanicReporter interface {
	ReportPanic(ctx context.Context, recovered any, stack []byte)
}

// LogReporter reports panics to a logger and the panic counter.
type LogReporter struct {
	Log *zap.Logger
}

func (r LogReporter) ReportPanic(_ context.Context, recovered any, stack []byte) {
	metrics.Panics.Inc()
	logger.OrNop(r.Log).Error("recovered from panic",
		zap.String("panic", fmt.Sprint(recovered)),
		zap.ByteString("stack", stack),
	)
}

var errInternal = pkg.NewDomainErrorSimple("INTERNAL_ERROR", "An internal error occurred", http.StatusInternalServerError)

// Recovery turns a panic into a generic 500 body and hands it to reporter.
func Recovery(reporter PanicReporter) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if rec := recover(); rec != nil {
				if reporter != nil {
					reporter.ReportPanic(c.Request.Context(), rec, debug.Stack())
				}
				abort(c, errInternal)
			}
		}()
		c.Next()
	}
}
