package web

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Zachkp/spotlight/internal/logging"
)

// requestLogger logs each request with the client address hashed.
func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		fields := []interface{}{
			"method", c.Request.Method,
			"path", c.FullPath(),
			"status", c.Writer.Status(),
			"latency", time.Since(start),
			"client", s.tracker.hashIP(c.ClientIP()),
		}
		if len(c.Errors) > 0 {
			logging.L().Warnw("request", append(fields, "errors", c.Errors.String())...)
			return
		}
		logging.L().Debugw("request", fields...)
	}
}
