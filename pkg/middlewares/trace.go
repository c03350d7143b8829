package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sliceline/pizzeria/pkg"
	"github.com/sliceline/pizzeria/pkg/utils"
)

// TraceID returns Gin middleware that assigns every request a trace id,
// honoring one supplied by the client in X-Trace-Id.
func TraceID() gin.HandlerFunc {
	return func(c *gin.Context) {
		traceID := c.Request.Header.Get(pkg.HeaderTraceId)
		if utils.IsEmpty(traceID) {
			traceID = uuid.New().String()
		}
		// Available to handlers/services for structured logging.
		c.Set(pkg.TraceId, traceID)
		// Propagate in the response header for clients/downstream tracing.
		c.Writer.Header().Set(pkg.HeaderTraceId, traceID)
		c.Next()
	}
}
