package strapiclient

import "time"

// Field names as the current blog-post content type declares them. Filters,
// populate expressions and normalized output all use this casing.
const (
	FieldID          = "id"
	FieldDocumentID  = "documentId"
	FieldTitle       = "Title"
	FieldSlug        = "Slug"
	FieldContent     = "Content"
	FieldDescription = "Description"
	FieldCover       = "Cover"
	FieldCategories  = "categories"
	FieldCreatedAt   = "createdAt"
	FieldUpdatedAt   = "updatedAt"
	FieldPublishedAt = "publishedAt"

	// category content type
	FieldCategoryName        = "name"
	FieldCategorySlug        = "slug"
	FieldCategoryDescription = "description"
)

const (
	PostsPath      = "/api/blog-posts"
	CategoriesPath = "/api/categories"
	HealthPath     = "/_health"
)

// Post is the normalized blog post.
type Post struct {
	ID          int        `json:"id"`
	DocumentID  string     `json:"documentId,omitempty"`
	Title       string     `json:"Title"`
	Slug        string     `json:"Slug"`
	Content     string     `json:"Content,omitempty"`
	Description string     `json:"Description,omitempty"`
	Cover       *Media     `json:"Cover,omitempty"`
	Categories  []Category `json:"categories"`
	CreatedAt   *time.Time `json:"createdAt,omitempty"`
	UpdatedAt   *time.Time `json:"updatedAt,omitempty"`
	PublishedAt *time.Time `json:"publishedAt,omitempty"`
}

// HasCategory reports whether one of the post's categories has the given slug.
func (p Post) HasCategory(slug string) bool {
	for _, c := range p.Categories {
		if c.Slug == slug {
			return true
		}
	}
	return false
}

type Category struct {
	ID          int    `json:"id"`
	DocumentID  string `json:"documentId,omitempty"`
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	Description string `json:"description,omitempty"`
}

// Media is an uploaded file. Formats holds the resized variants keyed by
// name (large, medium, small, thumbnail).
type Media struct {
	ID              int                    `json:"id,omitempty"`
	URL             string                 `json:"url,omitempty"`
	AlternativeText string                 `json:"alternativeText,omitempty"`
	Width           int                    `json:"width,omitempty"`
	Height          int                    `json:"height,omitempty"`
	Formats         map[string]MediaFormat `json:"formats,omitempty"`
}

type MediaFormat struct {
	URL    string `json:"url"`
	Width  int    `json:"width,omitempty"`
	Height int    `json:"height,omitempty"`
}
