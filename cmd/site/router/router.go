package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "strapi-blog/docs"

	"strapi-blog/cmd/site/handlers"
	"strapi-blog/cmd/site/metrics"
	"strapi-blog/cmd/site/middleware"
	"strapi-blog/cmd/site/render"
	"strapi-blog/cmd/site/services"
)

// New wires the server-rendered pages, the JSON API and the operational
// endpoints onto one engine.
func New(svc *services.BlogService, rnd *render.Renderer) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestTrace())
	r.SetHTMLTemplate(rnd.Template())

	r.GET("/health", handlers.HealthHandler(svc))
	r.GET("/metrics", gin.WrapH(metrics.Handler()))
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// pages
	r.GET("/", handlers.IndexPageHandler(svc, rnd))
	r.GET("/blog/:slug", handlers.PostPageHandler(svc, rnd))
	r.GET("/category/:slug", handlers.CategoryPageHandler(svc, rnd))
	r.GET("/rss.xml", handlers.RSSHandler(svc, rnd))
	r.NoRoute(handlers.NotFoundHandler(rnd))

	// v1 routes
	api := r.Group("/api/v1")
	{
		api.GET("/posts", handlers.ListPostsHandler(svc))
		api.GET("/posts/:slug", handlers.GetPostHandler(svc))
		api.GET("/posts/:slug/related", handlers.RelatedPostsHandler(svc))
		api.GET("/categories", handlers.ListCategoriesHandler(svc))
		api.GET("/categories/:slug/posts", handlers.CategoryPostsHandler(svc))
	}

	r.HandleMethodNotAllowed = true
	r.NoMethod(func(c *gin.Context) {
		c.JSON(http.StatusMethodNotAllowed, gin.H{"error": "method not allowed"})
	})
	return r
}
