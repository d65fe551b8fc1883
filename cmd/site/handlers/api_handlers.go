package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"strapi-blog/cmd/site/dto"
	"strapi-blog/cmd/site/services"
)

// ListPostsHandler godoc
// @Summary      List posts
// @Description  List published posts in the CMS default order
// @Tags         posts
// @Produce      json
// @Success      200  {object}  dto.ListDTO[dto.PostDTO]
// @Failure      502  {object}  dto.ErrorResponseDTO
// @Failure      503  {object}  dto.ErrorResponseDTO
// @Router       /posts [get]
func ListPostsHandler(svc *services.BlogService) gin.HandlerFunc {
	return func(c *gin.Context) {
		posts, err := svc.ListPosts(c.Request.Context())
		if err != nil {
			writeAPIError(c, err)
			return
		}
		c.JSON(http.StatusOK, dto.ListDTO[dto.PostDTO]{Data: posts, Total: len(posts)})
	}
}

// GetPostHandler godoc
// @Summary      Get post by slug
// @Description  Get a single post with rendered content
// @Tags         posts
// @Param        slug  path  string  true  "Post slug"
// @Produce      json
// @Success      200  {object}  dto.PostDTO
// @Failure      404  {object}  dto.ErrorResponseDTO
// @Router       /posts/{slug} [get]
func GetPostHandler(svc *services.BlogService) gin.HandlerFunc {
	return func(c *gin.Context) {
		post, err := svc.GetPost(c.Request.Context(), c.Param("slug"))
		if err != nil {
			writeAPIError(c, err)
			return
		}
		c.JSON(http.StatusOK, post)
	}
}

// RelatedPostsHandler godoc
// @Summary      Related posts
// @Description  Posts sharing at least one category with the given post
// @Tags         posts
// @Param        slug  path  string  true  "Post slug"
// @Produce      json
// @Success      200  {object}  dto.ListDTO[dto.PostDTO]
// @Failure      404  {object}  dto.ErrorResponseDTO
// @Router       /posts/{slug}/related [get]
func RelatedPostsHandler(svc *services.BlogService) gin.HandlerFunc {
	return func(c *gin.Context) {
		posts, err := svc.RelatedPosts(c.Request.Context(), c.Param("slug"))
		if err != nil {
			writeAPIError(c, err)
			return
		}
		c.JSON(http.StatusOK, dto.ListDTO[dto.PostDTO]{Data: posts, Total: len(posts)})
	}
}

// ListCategoriesHandler godoc
// @Summary      List categories
// @Tags         categories
// @Produce      json
// @Success      200  {object}  dto.ListDTO[dto.CategoryDTO]
// @Router       /categories [get]
func ListCategoriesHandler(svc *services.BlogService) gin.HandlerFunc {
	return func(c *gin.Context) {
		cats, err := svc.ListCategories(c.Request.Context())
		if err != nil {
			writeAPIError(c, err)
			return
		}
		c.JSON(http.StatusOK, dto.ListDTO[dto.CategoryDTO]{Data: cats, Total: len(cats)})
	}
}

// CategoryPostsHandler godoc
// @Summary      Posts in a category
// @Tags         categories
// @Param        slug  path  string  true  "Category slug"
// @Produce      json
// @Success      200  {object}  dto.CategoryPageDTO
// @Failure      404  {object}  dto.ErrorResponseDTO
// @Router       /categories/{slug}/posts [get]
func CategoryPostsHandler(svc *services.BlogService) gin.HandlerFunc {
	return func(c *gin.Context) {
		page, err := svc.CategoryPage(c.Request.Context(), c.Param("slug"))
		if err != nil {
			writeAPIError(c, err)
			return
		}
		c.JSON(http.StatusOK, page)
	}
}

// HealthHandler reports whether the CMS answers its health endpoint.
func HealthHandler(svc *services.BlogService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := svc.Health(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, dto.HealthDTO{Status: "degraded", CMS: "down", Error: err.Error()})
			return
		}
		c.JSON(http.StatusOK, dto.HealthDTO{Status: "ok", CMS: "up"})
	}
}
