package staticbuild_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"strapi-blog/cmd/site/clients/strapiclient"
	"strapi-blog/cmd/site/render"
	"strapi-blog/cmd/site/services"
	"strapi-blog/cmd/site/staticbuild"
)

const (
	postsBody = `{"data":[
		{"id":1,"attributes":{"Title":"Hello","Slug":"hello","Content":"Hi **there**",
			"categories":{"data":[{"id":7,"attributes":{"name":"Go","slug":"go"}}]},
			"Cover":{"data":{"id":3,"attributes":{"url":"/uploads/c.png","formats":{"small":{"url":"/uploads/small_c.png"}}}}}}},
		{"id":2,"attributes":{"Title":"Second","Slug":"second","categories":{"data":[{"id":7,"attributes":{"name":"Go","slug":"go"}}]}}},
		{"id":3,"attributes":{"Title":"Broken","Slug":"../escape"}}
	]}`
	categoriesBody = `{"data":[{"id":7,"attributes":{"name":"Go","slug":"go"}}]}`
)

// newCMS answers the handful of queries a build issues with v4-shaped bodies.
func newCMS(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case strapiclient.PostsPath:
			switch {
			case q.Get("filters[Slug][$eq]") == "hello":
				_, _ = w.Write([]byte(`{"data":[{"id":1,"attributes":{"Title":"Hello","Slug":"hello","Content":"Hi **there**","categories":{"data":[{"id":7,"attributes":{"name":"Go","slug":"go"}}]}}}]}`))
			case q.Get("filters[Slug][$eq]") == "second":
				_, _ = w.Write([]byte(`{"data":[{"id":2,"attributes":{"Title":"Second","Slug":"second","categories":{"data":[]}}}]}`))
			case q.Get("filters[categories][id][$in][0]") == "7":
				_, _ = w.Write([]byte(`{"data":[{"id":2,"attributes":{"Title":"Second","Slug":"second"}}]}`))
			default:
				_, _ = w.Write([]byte(postsBody))
			}
		case strapiclient.CategoriesPath:
			_, _ = w.Write([]byte(categoriesBody))
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestBuildWritesSite(t *testing.T) {
	cms := newCMS(t)
	client, err := strapiclient.New(strapiclient.Options{BaseURL: cms.URL})
	require.NoError(t, err)
	svc := services.NewBlogService(client, 3)
	r, err := render.New(render.Site{Title: "Notes", URL: "https://blog.example.com"})
	require.NoError(t, err)

	dir := t.TempDir()
	res, err := staticbuild.Build(context.Background(), svc, r, dir)
	require.NoError(t, err)
	assert.Equal(t, 4, res.Pages)

	for _, rel := range []string{
		"index.html",
		"blog/hello/index.html",
		"blog/second/index.html",
		"category/go/index.html",
		"404.html",
		"rss.xml",
	} {
		_, err := os.Stat(filepath.Join(dir, rel))
		assert.NoError(t, err, rel)
	}
	_, err = os.Stat(filepath.Join(dir, "escape"))
	assert.True(t, os.IsNotExist(err))

	index, err := os.ReadFile(filepath.Join(dir, "index.html"))
	require.NoError(t, err)
	assert.Contains(t, string(index), cms.URL+"/uploads/small_c.png")

	post, err := os.ReadFile(filepath.Join(dir, "blog", "hello", "index.html"))
	require.NoError(t, err)
	assert.Contains(t, string(post), "<strong>there</strong>")
	assert.Contains(t, string(post), `href="/blog/second/"`)
}

func TestBuildStopsOnUpstreamFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	client, err := strapiclient.New(strapiclient.Options{BaseURL: srv.URL})
	require.NoError(t, err)
	r, err := render.New(render.Site{Title: "Notes"})
	require.NoError(t, err)

	_, err = staticbuild.Build(context.Background(), services.NewBlogService(client, 3), r, t.TempDir())
	assert.Equal(t, http.StatusInternalServerError, strapiclient.StatusCode(err))
}
