package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Logger returns a gin middleware that logs every request through zerolog.
// Failed requests are logged at warn level, the rest at debug.
func Logger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		raw := c.Request.URL.RawQuery

		c.Next()

		status := c.Writer.Status()
		event := log.Debug()
		if status >= 400 {
			event = log.WithLevel(zerolog.WarnLevel)
		}
		if len(c.Errors) > 0 {
			event = event.Str("error", c.Errors.String())
		}

		event.
			Str("path", path).
			Str("raw", raw).
			Int("status", status).
			Str("method", c.Request.Method).
			Str("ip", c.ClientIP()).
			Dur("latency", time.Since(start)).
			Msg("incoming request")
	}
}
