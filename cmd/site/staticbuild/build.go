package staticbuild

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"strapi-blog/cmd/internal/logger"
	"strapi-blog/cmd/site/render"
	"strapi-blog/cmd/site/services"
)

// Result summarizes one build.
type Result struct {
	Pages    int
	Duration time.Duration
}

// Build fetches every post and category once and writes the site under dir:
// index.html, blog/<slug>/index.html, category/<slug>/index.html and rss.xml.
// Pages are fetched one after another; the first failure aborts the build.
func Build(ctx context.Context, svc *services.BlogService, r *render.Renderer, dir string) (Result, error) {
	start := time.Now()
	res := Result{}

	posts, err := svc.ListPosts(ctx)
	if err != nil {
		return res, fmt.Errorf("staticbuild: list posts: %w", err)
	}
	categories, err := svc.ListCategories(ctx)
	if err != nil {
		return res, fmt.Errorf("staticbuild: list categories: %w", err)
	}

	if err := writePage(r, filepath.Join(dir, "index.html"), render.PageIndex, r.IndexPage(posts, categories)); err != nil {
		return res, err
	}
	res.Pages++

	for _, p := range posts {
		if !safeSlug(p.Slug) {
			logger.WarnWithFields("staticbuild skipping post with unusable slug", logger.Fields{"id": p.ID, "slug": p.Slug})
			continue
		}
		data, err := svc.PostPage(ctx, p.Slug)
		if err != nil {
			return res, fmt.Errorf("staticbuild: post %q: %w", p.Slug, err)
		}
		path := filepath.Join(dir, "blog", p.Slug, "index.html")
		if err := writePage(r, path, render.PagePost, r.PostPage(data, categories)); err != nil {
			return res, err
		}
		res.Pages++
	}

	for _, c := range categories {
		if !safeSlug(c.Slug) {
			logger.WarnWithFields("staticbuild skipping category with unusable slug", logger.Fields{"id": c.ID, "slug": c.Slug})
			continue
		}
		data, err := svc.CategoryPage(ctx, c.Slug)
		if err != nil {
			return res, fmt.Errorf("staticbuild: category %q: %w", c.Slug, err)
		}
		path := filepath.Join(dir, "category", c.Slug, "index.html")
		if err := writePage(r, path, render.PageCategory, r.CategoryPage(data, categories)); err != nil {
			return res, err
		}
		res.Pages++
	}

	if err := writePage(r, filepath.Join(dir, "404.html"), render.PageError, r.ErrorPage("Not found", "The page you are looking for does not exist.")); err != nil {
		return res, err
	}

	feed, err := r.RSS(posts)
	if err != nil {
		return res, fmt.Errorf("staticbuild: rss: %w", err)
	}
	if err := writeFile(filepath.Join(dir, "rss.xml"), []byte(feed)); err != nil {
		return res, err
	}

	res.Duration = time.Since(start)
	logger.InfoWithFields("static build finished", logger.Fields{
		"dir":      dir,
		"pages":    res.Pages,
		"duration": res.Duration.String(),
	})
	return res, nil
}

// safeSlug rejects slugs that would escape their directory.
func safeSlug(slug string) bool {
	return slug != "" && slug != "." && slug != ".." && !strings.ContainsAny(slug, `/\`)
}

func writePage(r *render.Renderer, path, name string, page render.Page) error {
	var buf bytes.Buffer
	if err := r.Render(&buf, name, page); err != nil {
		return fmt.Errorf("staticbuild: render %s: %w", path, err)
	}
	return writeFile(path, buf.Bytes())
}

func writeFile(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("staticbuild: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("staticbuild: %w", err)
	}
	return nil
}
