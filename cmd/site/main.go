package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/cors"

	"strapi-blog/cmd/internal/logger"
	"strapi-blog/cmd/site/clients/strapiclient"
	"strapi-blog/cmd/site/render"
	"strapi-blog/cmd/site/router"
	"strapi-blog/cmd/site/services"
	"strapi-blog/cmd/site/staticbuild"
	"strapi-blog/config"
)

// @title           Blog API
// @version         1.0
// @description     Normalized blog posts and categories served from the headless CMS
// @BasePath        /api/v1
func main() {
	cfg := config.GetConfig()
	logger.Init(cfg.Logging.Level)

	// "build" or "serve" on the command line overrides site.output
	mode := cfg.Site.Output
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "build":
			mode = config.OutputStatic
		case "serve":
			mode = config.OutputServer
		default:
			logger.Log.Errorf("unknown command %q (want build or serve)", os.Args[1])
			os.Exit(2)
		}
	}

	client, err := strapiclient.New(strapiclient.Options{
		BaseURL:       cfg.Strapi.BaseURL,
		Timeout:       cfg.Strapi.Timeout,
		MediaBaseURL:  cfg.Strapi.Media.BaseURL,
		MediaHostFrom: cfg.Strapi.Media.HostFrom,
		MediaHostTo:   cfg.Strapi.Media.HostTo,
		UploadsPrefix: cfg.Strapi.Media.UploadsPrefix,
	})
	if err != nil {
		logger.Log.Errorf("failed to create CMS client: %v", err)
		os.Exit(1)
	}
	svc := services.NewBlogService(client, cfg.Site.RelatedLimit)

	rnd, err := render.New(render.Site{
		Title:       cfg.Site.Title,
		Description: cfg.Site.Description,
		URL:         config.NormalizeBaseURL(cfg.Site.URL),
	})
	if err != nil {
		logger.Log.Errorf("failed to parse templates: %v", err)
		os.Exit(1)
	}

	logger.InfoWithFields("starting site", logger.Fields{
		"mode":      mode,
		"cms":       cfg.Strapi.BaseURL,
		"media_url": client.Media().BaseURL(),
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if mode == config.OutputStatic {
		if _, err := staticbuild.Build(ctx, svc, rnd, cfg.Site.StaticDir); err != nil {
			logger.Log.Errorf("static build failed: %v", err)
			os.Exit(1)
		}
		return
	}

	if err := serve(ctx, cfg, router.New(svc, rnd)); err != nil {
		logger.Log.Errorf("server error: %v", err)
		os.Exit(1)
	}
}

func serve(ctx context.Context, cfg config.AppConfig, engine *gin.Engine) error {
	origins := cfg.Server.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	handler := cors.New(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodHead},
		AllowedHeaders: []string{"Content-Type", "X-Request-Id"},
		ExposedHeaders: []string{"X-Request-Id"},
	}).Handler(engine)

	server := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           handler,
		ReadHeaderTimeout: 3 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Log.Infof("listening on %s", cfg.Server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		logger.Log.Info("received shutdown signal, shutting down server...")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}
