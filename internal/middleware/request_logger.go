package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/Soulinho/pandawok-project/internal/logger"
)

func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		entry := logger.InfoLogger.WithFields(logrus.Fields{
			"method":  c.Request.Method,
			"path":    c.Request.URL.Path,
			"status":  c.Writer.Status(),
			"latency": time.Since(start).String(),
			"ip":      c.ClientIP(),
		})
		if uid, ok := c.Get(ContextUserID); ok {
			entry = entry.WithField("user_id", uid)
		}

		if c.Writer.Status() >= 500 {
			entry.Warn("request")
			return
		}
		entry.Info("request")
	}
}
