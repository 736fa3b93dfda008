package web

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ikyyy777/TPLM-website-wisata-desa-banjarpanepen/internal/logging"
)

const (
	requestIDHeader = "X-Request-ID"
	ctxLogger       = "logger"
)

// requestLogger tags each request with an ID and logs it once it completes.
// An incoming X-Request-ID is kept.
func requestLogger(log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader(requestIDHeader)
		if _, err := uuid.Parse(requestID); err != nil {
			requestID = uuid.New().String()
		}
		c.Header(requestIDHeader, requestID)

		reqLog := logging.WithRequestID(log, requestID)
		c.Set(ctxLogger, reqLog)

		start := time.Now()
		c.Next()

		reqLog.Info("request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("duration", time.Since(start)),
			zap.String("client_ip", c.ClientIP()),
		)
	}
}

func recoveryMiddleware(log *zap.Logger) gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		log.Error("panic serving request",
			zap.String("path", c.Request.URL.Path),
			zap.Any("panic", recovered),
		)
		c.AbortWithStatus(http.StatusInternalServerError)
	})
}

// requestLog returns the request-scoped logger set by requestLogger.
func requestLog(c *gin.Context, fallback *zap.Logger) *zap.Logger {
	if v, ok := c.Get(ctxLogger); ok {
		if l, ok := v.(*zap.Logger); ok {
			return l
		}
	}
	return fallback
}
