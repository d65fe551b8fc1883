package render

import (
	"time"

	"github.com/gorilla/feeds"

	"strapi-blog/cmd/site/dto"
)

// RSS renders posts as an RSS 2.0 document. The channel date is the newest
// post date so repeated builds produce identical output.
func (r *Renderer) RSS(posts []dto.PostDTO) (string, error) {
	feed := &feeds.Feed{
		Title:       r.site.Title,
		Link:        &feeds.Link{Href: r.site.URL + "/"},
		Description: r.site.Description,
	}

	for _, p := range posts {
		item := &feeds.Item{
			Id:          r.site.URL + "/blog/" + p.Slug + "/",
			Title:       p.Title,
			Link:        &feeds.Link{Href: r.site.URL + "/blog/" + p.Slug + "/"},
			Description: p.Description,
		}
		if p.PublishedAt != nil {
			item.Created = *p.PublishedAt
			if p.PublishedAt.After(feed.Created) {
				feed.Created = *p.PublishedAt
			}
		}
		feed.Items = append(feed.Items, item)
	}
	if feed.Created.IsZero() {
		feed.Created = time.Unix(0, 0).UTC()
	}
	return feed.ToRss()
}
