package services

import (
	"context"
	"errors"

	"strapi-blog/cmd/internal/logger"
	"strapi-blog/cmd/site/clients/strapiclient"
	"strapi-blog/cmd/site/content"
	"strapi-blog/cmd/site/dto"
)

// ErrNotFound is returned when the CMS has no record for a slug.
var ErrNotFound = errors.New("resource not found")

const excerptLength = 160

// Source is the subset of the CMS client the service reads from.
type Source interface {
	FetchPosts(ctx context.Context) ([]strapiclient.Post, error)
	FetchPostBySlug(ctx context.Context, slug string) (*strapiclient.Post, error)
	FetchCategories(ctx context.Context) ([]strapiclient.Category, error)
	FetchCategoryBySlug(ctx context.Context, slug string) (*strapiclient.Category, error)
	FetchPostsByCategory(ctx context.Context, categorySlug string) ([]strapiclient.Post, error)
	FetchRelatedPosts(ctx context.Context, post strapiclient.Post, limit int) ([]strapiclient.Post, error)
	Health(ctx context.Context) error
	Media() *strapiclient.MediaResolver
}

// BlogService turns normalized CMS records into page/API DTOs.
// Errors from the client are returned unchanged.
type BlogService struct {
	source       Source
	relatedLimit int
}

func NewBlogService(source Source, relatedLimit int) *BlogService {
	if relatedLimit <= 0 {
		relatedLimit = 3
	}
	return &BlogService{source: source, relatedLimit: relatedLimit}
}

func (s *BlogService) ListPosts(ctx context.Context) ([]dto.PostDTO, error) {
	posts, err := s.source.FetchPosts(ctx)
	if err != nil {
		return nil, err
	}
	return s.mapPosts(posts, false), nil
}

// GetPost returns the post with its rendered content, or ErrNotFound.
func (s *BlogService) GetPost(ctx context.Context, slug string) (*dto.PostDTO, error) {
	p, err := s.source.FetchPostBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, ErrNotFound
	}
	d := s.mapPost(*p, true)
	return &d, nil
}

// PostPage loads a post and the posts sharing one of its categories.
func (s *BlogService) PostPage(ctx context.Context, slug string) (dto.PostPageDTO, error) {
	p, err := s.source.FetchPostBySlug(ctx, slug)
	if err != nil {
		return dto.PostPageDTO{}, err
	}
	if p == nil {
		return dto.PostPageDTO{}, ErrNotFound
	}
	related, err := s.source.FetchRelatedPosts(ctx, *p, s.relatedLimit)
	if err != nil {
		return dto.PostPageDTO{}, err
	}
	return dto.PostPageDTO{
		Post:    s.mapPost(*p, true),
		Related: s.mapPosts(related, false),
	}, nil
}

func (s *BlogService) RelatedPosts(ctx context.Context, slug string) ([]dto.PostDTO, error) {
	page, err := s.PostPage(ctx, slug)
	if err != nil {
		return nil, err
	}
	return page.Related, nil
}

func (s *BlogService) ListCategories(ctx context.Context) ([]dto.CategoryDTO, error) {
	cats, err := s.source.FetchCategories(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.CategoryDTO, 0, len(cats))
	for _, c := range cats {
		out = append(out, mapCategory(c))
	}
	return out, nil
}

// CategoryPage loads a category and its posts, or ErrNotFound.
func (s *BlogService) CategoryPage(ctx context.Context, slug string) (dto.CategoryPageDTO, error) {
	cat, err := s.source.FetchCategoryBySlug(ctx, slug)
	if err != nil {
		return dto.CategoryPageDTO{}, err
	}
	if cat == nil {
		return dto.CategoryPageDTO{}, ErrNotFound
	}
	posts, err := s.source.FetchPostsByCategory(ctx, slug)
	if err != nil {
		return dto.CategoryPageDTO{}, err
	}
	return dto.CategoryPageDTO{
		Category: mapCategory(*cat),
		Posts:    s.mapPosts(posts, false),
	}, nil
}

func (s *BlogService) Health(ctx context.Context) error {
	return s.source.Health(ctx)
}

func (s *BlogService) mapPosts(posts []strapiclient.Post, withContent bool) []dto.PostDTO {
	out := make([]dto.PostDTO, 0, len(posts))
	for _, p := range posts {
		out = append(out, s.mapPost(p, withContent))
	}
	return out
}

func (s *BlogService) mapPost(p strapiclient.Post, withContent bool) dto.PostDTO {
	d := dto.PostDTO{
		ID:          p.ID,
		Slug:        p.Slug,
		Title:       p.Title,
		Description: p.Description,
		CoverURL:    s.source.Media().CoverURL(p.Cover),
		PublishedAt: p.PublishedAt,
		UpdatedAt:   p.UpdatedAt,
		Categories:  make([]dto.CategoryDTO, 0, len(p.Categories)),
	}
	if d.PublishedAt == nil {
		d.PublishedAt = p.CreatedAt
	}
	if p.Cover != nil {
		d.CoverAlt = p.Cover.AlternativeText
	}
	for _, c := range p.Categories {
		d.Categories = append(d.Categories, mapCategory(c))
	}

	if !withContent && d.Description != "" {
		return d
	}
	rendered, err := content.Markdown(p.Content)
	if err != nil {
		logger.WarnWithFields("markdown render failed", logger.Fields{"slug": p.Slug, "error": err.Error()})
		rendered = ""
	}
	if withContent {
		d.ContentHTML = rendered
	}
	if d.Description == "" {
		d.Description = content.Excerpt(rendered, excerptLength)
	}
	return d
}

func mapCategory(c strapiclient.Category) dto.CategoryDTO {
	return dto.CategoryDTO{
		ID:          c.ID,
		Name:        c.Name,
		Slug:        c.Slug,
		Description: c.Description,
	}
}
