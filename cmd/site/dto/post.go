package dto

import "time"

// PostDTO is what pages and the JSON API expose for a post. Cover URLs are
// absolute and ContentHTML is already rendered from markdown.
type PostDTO struct {
	ID          int           `json:"id"`
	Slug        string        `json:"slug"`
	Title       string        `json:"title"`
	Description string        `json:"description"`
	CoverURL    string        `json:"cover_url,omitempty"`
	CoverAlt    string        `json:"cover_alt,omitempty"`
	ContentHTML string        `json:"content_html,omitempty"`
	PublishedAt *time.Time    `json:"published_at,omitempty"`
	UpdatedAt   *time.Time    `json:"updated_at,omitempty"`
	Categories  []CategoryDTO `json:"categories"`
}

type CategoryDTO struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	Description string `json:"description,omitempty"`
}

// PostPageDTO bundles a post with the posts related to it.
type PostPageDTO struct {
	Post    PostDTO   `json:"post"`
	Related []PostDTO `json:"related"`
}

type CategoryPageDTO struct {
	Category CategoryDTO `json:"category"`
	Posts    []PostDTO   `json:"posts"`
}

// ListDTO wraps list responses so fields can be added without breaking clients.
type ListDTO[T any] struct {
	Data  []T `json:"data"`
	Total int `json:"total"`
}
