package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"strapi-blog/cmd/internal/logger"
	"strapi-blog/cmd/site/dto"
	"strapi-blog/cmd/site/render"
	"strapi-blog/cmd/site/services"
)

// navCategories loads the navigation list. A failure only costs the nav.
func navCategories(c *gin.Context, svc *services.BlogService) []dto.CategoryDTO {
	cats, err := svc.ListCategories(c.Request.Context())
	if err != nil {
		logger.WarnWithFields("navigation categories unavailable", logger.Fields{"error": err.Error()})
		return nil
	}
	return cats
}

func IndexPageHandler(svc *services.BlogService, rnd *render.Renderer) gin.HandlerFunc {
	return func(c *gin.Context) {
		posts, err := svc.ListPosts(c.Request.Context())
		if err != nil {
			writePageError(c, rnd, err)
			return
		}
		c.HTML(http.StatusOK, render.PageIndex, rnd.IndexPage(posts, navCategories(c, svc)))
	}
}

func PostPageHandler(svc *services.BlogService, rnd *render.Renderer) gin.HandlerFunc {
	return func(c *gin.Context) {
		data, err := svc.PostPage(c.Request.Context(), c.Param("slug"))
		if err != nil {
			writePageError(c, rnd, err)
			return
		}
		c.HTML(http.StatusOK, render.PagePost, rnd.PostPage(data, navCategories(c, svc)))
	}
}

func CategoryPageHandler(svc *services.BlogService, rnd *render.Renderer) gin.HandlerFunc {
	return func(c *gin.Context) {
		data, err := svc.CategoryPage(c.Request.Context(), c.Param("slug"))
		if err != nil {
			writePageError(c, rnd, err)
			return
		}
		c.HTML(http.StatusOK, render.PageCategory, rnd.CategoryPage(data, navCategories(c, svc)))
	}
}

func RSSHandler(svc *services.BlogService, rnd *render.Renderer) gin.HandlerFunc {
	return func(c *gin.Context) {
		posts, err := svc.ListPosts(c.Request.Context())
		if err != nil {
			writeAPIError(c, err)
			return
		}
		feed, err := rnd.RSS(posts)
		if err != nil {
			writeAPIError(c, err)
			return
		}
		c.Data(http.StatusOK, "application/rss+xml; charset=utf-8", []byte(feed))
	}
}

// NotFoundHandler renders the 404 page for unmatched routes.
func NotFoundHandler(rnd *render.Renderer) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.HTML(http.StatusNotFound, render.PageError, rnd.ErrorPage("Not found", "The page you are looking for does not exist."))
	}
}
