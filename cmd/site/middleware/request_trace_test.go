package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"strapi-blog/cmd/site/trace"
)

func newTracedEngine(seen *string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RequestTrace())
	r.GET("/ping", func(c *gin.Context) {
		*seen = trace.RequestIDFromContext(c.Request.Context())
		c.String(http.StatusOK, "pong")
	})
	return r
}

func TestRequestTraceGeneratesID(t *testing.T) {
	var seen string
	r := newTracedEngine(&seen)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ping", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, seen, 32)
	assert.Equal(t, seen, rec.Header().Get(headerRequestID))
}

func TestRequestTraceReusesInboundID(t *testing.T) {
	var seen string
	r := newTracedEngine(&seen)

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set(headerRequestID, "abc123")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, "abc123", seen)
	assert.Equal(t, "abc123", rec.Header().Get(headerRequestID))
}
