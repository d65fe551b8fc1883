package render

import (
	"embed"
	"html/template"
	"io"
	"time"

	"strapi-blog/cmd/site/dto"
)

//go:embed templates/*.html
var templateFS embed.FS

// Page names, as defined in templates/.
const (
	PageIndex    = "index"
	PagePost     = "post"
	PageCategory = "category"
	PageError    = "error"
)

// Site is the site-wide metadata every page receives.
type Site struct {
	Title       string
	Description string
	URL         string
}

// Page is the data passed to every template. Unused fields stay zero.
type Page struct {
	Site        Site
	Title       string
	Description string
	Canonical   string
	Message     string
	Year        int

	Categories []dto.CategoryDTO
	Posts      []dto.PostDTO
	Post       *dto.PostDTO
	Related    []dto.PostDTO
	Category   *dto.CategoryDTO
}

var functions = template.FuncMap{
	"formatDate": func(t *time.Time) string {
		if t == nil || t.IsZero() {
			return ""
		}
		return t.Format("02 Jan 2006")
	},
	"isoDate": func(t *time.Time) string {
		if t == nil || t.IsZero() {
			return ""
		}
		return t.UTC().Format(time.RFC3339)
	},
	// safeHTML marks markdown output as trusted; the markdown renderer
	// already drops raw HTML from the source.
	"safeHTML": func(s string) template.HTML {
		return template.HTML(s)
	},
}

// Renderer holds the parsed page templates.
type Renderer struct {
	site Site
	tmpl *template.Template
}

func New(site Site) (*Renderer, error) {
	tmpl, err := template.New("site").Funcs(functions).ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, err
	}
	return &Renderer{site: site, tmpl: tmpl}, nil
}

// Template exposes the parsed set, e.g. for gin's SetHTMLTemplate.
func (r *Renderer) Template() *template.Template {
	return r.tmpl
}

func (r *Renderer) Site() Site {
	return r.site
}

// NewPage fills in the site-wide fields.
func (r *Renderer) NewPage(title string) Page {
	return Page{
		Site:        r.site,
		Title:       title,
		Description: r.site.Description,
		Year:        time.Now().Year(),
	}
}

// Render executes the named page into w.
func (r *Renderer) Render(w io.Writer, name string, page Page) error {
	return r.tmpl.ExecuteTemplate(w, name, page)
}

func (r *Renderer) IndexPage(posts []dto.PostDTO, categories []dto.CategoryDTO) Page {
	page := r.NewPage("")
	page.Posts = posts
	page.Categories = categories
	page.Canonical = r.site.URL + "/"
	return page
}

func (r *Renderer) PostPage(data dto.PostPageDTO, categories []dto.CategoryDTO) Page {
	page := r.NewPage(data.Post.Title)
	post := data.Post
	page.Post = &post
	page.Related = data.Related
	page.Categories = categories
	if post.Description != "" {
		page.Description = post.Description
	}
	page.Canonical = r.site.URL + "/blog/" + post.Slug + "/"
	return page
}

func (r *Renderer) CategoryPage(data dto.CategoryPageDTO, categories []dto.CategoryDTO) Page {
	page := r.NewPage(data.Category.Name)
	cat := data.Category
	page.Category = &cat
	page.Posts = data.Posts
	page.Categories = categories
	if cat.Description != "" {
		page.Description = cat.Description
	}
	page.Canonical = r.site.URL + "/category/" + cat.Slug + "/"
	return page
}

func (r *Renderer) ErrorPage(title, message string) Page {
	page := r.NewPage(title)
	page.Message = message
	return page
}
