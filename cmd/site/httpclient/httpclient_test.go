package httpclient_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"strapi-blog/cmd/site/httpclient"
	"strapi-blog/cmd/site/trace"
)

func TestResolveURL(t *testing.T) {
	c := httpclient.NewBaseClient("https://api.example.com")

	testCases := []struct {
		name     string
		target   string
		rawQuery string
		want     string
		wantErr  bool
	}{
		{name: "relative path", target: "/api/blog-posts", rawQuery: "populate=Cover", want: "https://api.example.com/api/blog-posts?populate=Cover"},
		{name: "missing leading slash", target: "api/categories", want: "https://api.example.com/api/categories"},
		{name: "absolute url untouched", target: "https://other.example.com/x?y=1", rawQuery: "ignored=1", want: "https://other.example.com/x?y=1"},
		{name: "query in relative path", target: "/api/x?y=1", wantErr: true},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			got, err := c.ResolveURL(testCase.target, testCase.rawQuery)
			if testCase.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, testCase.want, got)
		})
	}
}

func TestNewRequestMergesHeaders(t *testing.T) {
	c := httpclient.NewBaseClient("https://api.example.com")

	req, err := c.NewRequest(context.Background(), "", "/api/x", "", nil, nil)
	require.NoError(t, err)
	assert.Equal(t, http.MethodGet, req.Method)
	assert.Equal(t, "application/json", req.Header.Get("Content-Type"))

	req, err = c.NewRequest(context.Background(), http.MethodPost, "/api/x", "", nil, http.Header{
		"content-type": []string{"text/plain"},
		"Accept":       []string{"application/json"},
	})
	require.NoError(t, err)
	assert.Equal(t, http.MethodPost, req.Method)
	assert.Equal(t, "text/plain", req.Header.Get("Content-Type"))
	assert.Equal(t, "application/json", req.Header.Get("Accept"))

	// defaults are not mutated by per-request overrides
	assert.Equal(t, "application/json", c.Header.Get("Content-Type"))
}

func TestRoundTripperPropagatesTraceHeaders(t *testing.T) {
	var gotRequestID, gotSpanID string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotRequestID = r.Header.Get("X-Request-Id")
		gotSpanID = r.Header.Get("X-Span-Id")
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	c := httpclient.NewBaseClientWithClient(httpclient.New(httpclient.Config{}), srv.URL)
	ctx := trace.WithRequestAndSpan(context.Background(), "abc", 0)

	req, err := c.NewRequest(ctx, http.MethodGet, "/ping", "", nil, nil)
	require.NoError(t, err)
	resp, err := c.Do(req)
	require.NoError(t, err)
	resp.Body.Close()

	assert.Equal(t, "abc", gotRequestID)
	assert.Equal(t, "1", gotSpanID)
}
