package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/evelahealth/evela-backend/internal/platform/logger"
)

// RequestLog writes one structured line per request after it completes.
func RequestLog(baseLog *logger.Logger) gin.HandlerFunc {
	log := baseLog.With("component", "HTTP")
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		kvs := []interface{}{
			"method", c.Request.Method,
			"path", c.FullPath(),
			"status", c.Writer.Status(),
			"duration_ms", time.Since(start).Milliseconds(),
		}
		// Causes of 5xx responses are kept out of the body; this is where
		// the detail surfaces.
		if len(c.Errors) > 0 {
			kvs = append(kvs, "errors", c.Errors.String())
			log.Error("Request", kvs...)
			return
		}
		log.Info("Request", kvs...)
	}
}
