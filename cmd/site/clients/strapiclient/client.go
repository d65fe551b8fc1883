package strapiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"strapi-blog/cmd/site/httpclient"
)

// Client is a thin client for the CMS REST API. It only reads published
// content; every call issues exactly one request and returns whatever the
// upstream sent, normalized.
type Client struct {
	base  *httpclient.BaseClient
	media *MediaResolver
}

// Options configures New. BaseURL is expected without a trailing slash.
type Options struct {
	BaseURL string
	Timeout time.Duration

	MediaBaseURL  string
	MediaHostFrom string
	MediaHostTo   string
	UploadsPrefix string

	// HTTPClient replaces the default logging client, mainly for tests.
	HTTPClient *http.Client
}

// RequestOptions are merged over the client defaults for a single call.
type RequestOptions struct {
	Method string
	Header http.Header
	Body   io.Reader
}

// Envelope is the top-level response body.
type Envelope struct {
	Data json.RawMessage `json:"data"`
	Meta json.RawMessage `json:"meta,omitempty"`
}

const maxErrorBody = 2048

func New(opts Options) (*Client, error) {
	if opts.BaseURL == "" {
		return nil, errors.New("strapiclient: base URL is required")
	}
	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = httpclient.New(httpclient.Config{Timeout: opts.Timeout})
	}
	return &Client{
		base:  httpclient.NewBaseClientWithClient(httpClient, opts.BaseURL),
		media: NewMediaResolver(opts.BaseURL, opts.MediaBaseURL, opts.MediaHostFrom, opts.MediaHostTo, opts.UploadsPrefix),
	}, nil
}

func (c *Client) Media() *MediaResolver {
	return c.media
}

// FetchAPI performs one request against target (a path or an absolute URL)
// and returns the JSON body verbatim.
func (c *Client) FetchAPI(ctx context.Context, target string, q *Query, opts RequestOptions) (json.RawMessage, error) {
	req, err := c.base.NewRequest(ctx, opts.Method, target, q.Encode(), opts.Body, opts.Header)
	if err != nil {
		return nil, err
	}
	resolved := req.URL.String()

	resp, err := c.base.Do(req)
	if err != nil {
		return nil, &TransportError{Method: req.Method, URL: resolved, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, &RequestFailedError{Method: req.Method, URL: resolved, Status: resp.StatusCode, Body: string(b)}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &TransportError{Method: req.Method, URL: resolved, Err: err}
	}
	if !json.Valid(body) {
		return nil, fmt.Errorf("%w: %s %s: body is not JSON", ErrMalformedResponse, req.Method, resolved)
	}
	return json.RawMessage(body), nil
}

// get fetches target and decodes the {data, meta} envelope.
func (c *Client) get(ctx context.Context, target string, q *Query) (Envelope, error) {
	body, err := c.FetchAPI(ctx, target, q, RequestOptions{})
	if err != nil {
		return Envelope{}, err
	}
	if _, ok := decodeObject(body); !ok {
		return Envelope{}, fmt.Errorf("%w: %s: expected an object envelope", ErrMalformedResponse, target)
	}
	var env Envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return Envelope{}, fmt.Errorf("%w: %s: %v", ErrMalformedResponse, target, err)
	}
	return env, nil
}

// -------------------- Posts --------------------

// FetchPosts lists posts in the API's default order.
func (c *Client) FetchPosts(ctx context.Context) ([]Post, error) {
	env, err := c.get(ctx, PostsPath, NewQuery().Populate(FieldCover))
	if err != nil {
		return nil, err
	}
	return NormalizePosts(env.Data), nil
}

// FetchPostBySlug returns the first post with the slug, or nil when there is none.
func (c *Client) FetchPostBySlug(ctx context.Context, slug string) (*Post, error) {
	q := NewQuery().
		Eq(FieldSlug, slug).
		Populate(FieldCover, FieldCategories)
	env, err := c.get(ctx, PostsPath, q)
	if err != nil {
		return nil, err
	}
	posts := NormalizePosts(env.Data)
	if len(posts) == 0 {
		return nil, nil
	}
	return &posts[0], nil
}

// FetchPostsByCategory lists posts that have a category with the given slug.
func (c *Client) FetchPostsByCategory(ctx context.Context, categorySlug string) ([]Post, error) {
	q := NewQuery().
		Eq(FieldCategories+"."+FieldCategorySlug, categorySlug).
		Populate(FieldCover, FieldCategories)
	env, err := c.get(ctx, PostsPath, q)
	if err != nil {
		return nil, err
	}
	return NormalizePosts(env.Data), nil
}

// FetchRelatedPosts lists up to limit posts sharing a category with post,
// post itself excluded. A post without categories yields an empty slice and
// no request. limit <= 0 means 3.
func (c *Client) FetchRelatedPosts(ctx context.Context, post Post, limit int) ([]Post, error) {
	if len(post.Categories) == 0 {
		return []Post{}, nil
	}
	if limit <= 0 {
		limit = 3
	}

	q := NewQuery()
	ids := make([]string, 0, len(post.Categories))
	for _, cat := range post.Categories {
		if cat.ID != 0 {
			ids = append(ids, strconv.Itoa(cat.ID))
		}
	}
	if len(ids) > 0 {
		q.In(FieldCategories+"."+FieldID, ids...)
	} else {
		slugs := make([]string, 0, len(post.Categories))
		for _, cat := range post.Categories {
			slugs = append(slugs, cat.Slug)
		}
		q.In(FieldCategories+"."+FieldCategorySlug, slugs...)
	}
	switch {
	case post.ID != 0:
		q.Ne(FieldID, strconv.Itoa(post.ID))
	case post.DocumentID != "":
		q.Ne(FieldDocumentID, post.DocumentID)
	}
	q.Populate(FieldCover).Limit(limit)

	env, err := c.get(ctx, PostsPath, q)
	if err != nil {
		return nil, err
	}

	out := make([]Post, 0, limit)
	for _, p := range NormalizePosts(env.Data) {
		if isSamePost(p, post) {
			continue
		}
		out = append(out, p)
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

func isSamePost(a, b Post) bool {
	if a.ID != 0 && b.ID != 0 {
		return a.ID == b.ID
	}
	if a.DocumentID != "" && b.DocumentID != "" {
		return a.DocumentID == b.DocumentID
	}
	return a.Slug != "" && a.Slug == b.Slug
}

// -------------------- Categories --------------------

func (c *Client) FetchCategories(ctx context.Context) ([]Category, error) {
	env, err := c.get(ctx, CategoriesPath, nil)
	if err != nil {
		return nil, err
	}
	return NormalizeCategories(env.Data), nil
}

// FetchCategoryBySlug returns the category with the slug, or nil.
func (c *Client) FetchCategoryBySlug(ctx context.Context, slug string) (*Category, error) {
	env, err := c.get(ctx, CategoriesPath, NewQuery().Eq(FieldCategorySlug, slug))
	if err != nil {
		return nil, err
	}
	cats := NormalizeCategories(env.Data)
	if len(cats) == 0 {
		return nil, nil
	}
	return &cats[0], nil
}

// Health calls the upstream /_health endpoint.
func (c *Client) Health(ctx context.Context) error {
	req, err := c.base.NewRequest(ctx, http.MethodGet, HealthPath, "", nil, nil)
	if err != nil {
		return err
	}
	resolved := req.URL.String()

	resp, err := c.base.Do(req)
	if err != nil {
		return &TransportError{Method: req.Method, URL: resolved, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return &RequestFailedError{Method: req.Method, URL: resolved, Status: resp.StatusCode, Body: string(bytes.TrimSpace(b))}
	}
	return nil
}
