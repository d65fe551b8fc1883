package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"strapi-blog/cmd/internal/logger"
	"strapi-blog/cmd/site/clients/strapiclient"
	"strapi-blog/cmd/site/dto"
	"strapi-blog/cmd/site/render"
	"strapi-blog/cmd/site/services"
	"strapi-blog/cmd/site/trace"
)

// statusFor maps a service error to the response status and, for upstream
// HTTP failures, the status the CMS returned.
func statusFor(err error) (status int, upstream int) {
	var rf *strapiclient.RequestFailedError
	var te *strapiclient.TransportError
	switch {
	case errors.Is(err, services.ErrNotFound):
		return http.StatusNotFound, 0
	case errors.As(err, &rf):
		return http.StatusBadGateway, rf.Status
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout, 0
	case errors.As(err, &te):
		return http.StatusServiceUnavailable, 0
	default:
		return http.StatusInternalServerError, 0
	}
}

func logFailure(c *gin.Context, status int, err error) {
	if status == http.StatusNotFound {
		return
	}
	logger.ErrorWithFields("request failed", logger.Fields{
		"path":       c.Request.URL.Path,
		"status":     status,
		"request_id": trace.RequestIDFromContext(c.Request.Context()),
		"error":      err.Error(),
	})
}

func writeAPIError(c *gin.Context, err error) {
	status, upstream := statusFor(err)
	logFailure(c, status, err)
	body := dto.ErrorResponseDTO{Error: err.Error(), UpstreamStatus: upstream}
	if status == http.StatusNotFound {
		body.Error = "not found"
	}
	c.JSON(status, body)
}

func writePageError(c *gin.Context, rnd *render.Renderer, err error) {
	status, _ := statusFor(err)
	logFailure(c, status, err)
	if status == http.StatusNotFound {
		c.HTML(status, render.PageError, rnd.ErrorPage("Not found", "The page you are looking for does not exist."))
		return
	}
	c.HTML(status, render.PageError, rnd.ErrorPage("Something went wrong", "The content service is unavailable. Please try again later."))
}
