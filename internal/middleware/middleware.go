package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/yigit/nbadocs/internal/pkg/logger"
)

// RequestLogger logs every request once it has been served
func RequestLogger() gin.HandlerFunc {
	log := logger.Component("http")
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		c.Next()

		status := c.Writer.Status()
		event := log.Info()
		switch {
		case status >= 500:
			event = log.Error()
		case status >= 400:
			event = log.Warn()
		}

		userID, _ := c.Get(ContextUserID)
		event.
			Str("method", c.Request.Method).
			Str("path", path).
			Int("status", status).
			Dur("latency", time.Since(start)).
			Str("clientIP", c.ClientIP()).
			Interface("userID", userID).
			Msg("Request served")
	}
}
