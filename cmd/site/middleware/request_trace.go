package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"strapi-blog/cmd/internal/logger"
	"strapi-blog/cmd/site/metrics"
	"strapi-blog/cmd/site/trace"
)

const (
	headerRequestID = "X-Request-Id"
	headerSpanID    = "X-Span-Id"
)

// RequestTrace assigns every inbound request a request id (reusing the
// caller's X-Request-Id), stores it in the context for upstream calls and
// logs the completed request.
func RequestTrace() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		req := c.Request

		requestID := req.Header.Get(headerRequestID)
		if requestID == "" {
			requestID = trace.GenerateID()
		}

		// inbound is span 0; upstream calls count up from 1
		ctx := trace.WithRequestAndSpan(req.Context(), requestID, 0)
		c.Request = req.WithContext(ctx)
		c.Writer.Header().Set(headerRequestID, requestID)

		c.Next()

		status := c.Writer.Status()
		metrics.ObservePage(c.FullPath(), status)

		fields := logger.Fields{
			"method":     req.Method,
			"path":       req.URL.Path,
			"query":      req.URL.RawQuery,
			"status":     status,
			"duration":   time.Since(start).String(),
			"request_id": requestID,
			"span_id":    trace.CurrentSpanID(c.Request.Context()),
		}
		if len(c.Errors) > 0 {
			fields["errors"] = c.Errors.String()
		}
		logger.InfoWithFields("completed request", fields)
	}
}
