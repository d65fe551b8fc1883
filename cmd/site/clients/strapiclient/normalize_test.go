package strapiclient_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"strapi-blog/cmd/site/clients/strapiclient"
)

func raw(s string) json.RawMessage { return json.RawMessage(s) }

func TestNormalizePostFlattensAttributes(t *testing.T) {
	p := strapiclient.NormalizePost(raw(`{
		"id": 4,
		"attributes": {
			"Title": "T",
			"Slug": "t",
			"Content": "# hello",
			"publishedAt": "2024-05-01T10:00:00.000Z",
			"categories": {"data": [{"id": 2, "attributes": {"name": "Go", "slug": "go"}}]},
			"Cover": {"data": {"id": 9, "attributes": {"url": "/uploads/c.png"}}}
		}
	}`))

	assert.Equal(t, 4, p.ID)
	assert.Equal(t, "T", p.Title)
	assert.Equal(t, "t", p.Slug)
	assert.Equal(t, "# hello", p.Content)
	require.NotNil(t, p.PublishedAt)
	assert.True(t, p.PublishedAt.Equal(time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)))
	assert.Equal(t, []strapiclient.Category{{ID: 2, Name: "Go", Slug: "go"}}, p.Categories)
	require.NotNil(t, p.Cover)
	assert.Equal(t, 9, p.Cover.ID)
	assert.Equal(t, "/uploads/c.png", p.Cover.URL)
}

func TestNormalizePostFlatRecord(t *testing.T) {
	p := strapiclient.NormalizePost(raw(`{
		"id": 1,
		"documentId": "abc",
		"Title": "Hi",
		"Slug": "hi",
		"categories": [{"id": 3, "documentId": "c3", "name": "News", "slug": "news", "description": "d"}],
		"Cover": {"url": "/uploads/x.png", "formats": {"large": {"url": "/uploads/large_x.png", "width": 1000}}}
	}`))

	assert.Equal(t, 1, p.ID)
	assert.Equal(t, "abc", p.DocumentID)
	assert.Equal(t, "Hi", p.Title)
	assert.Equal(t, []strapiclient.Category{{ID: 3, DocumentID: "c3", Name: "News", Slug: "news", Description: "d"}}, p.Categories)
	require.NotNil(t, p.Cover)
	assert.Equal(t, "/uploads/large_x.png", p.Cover.Formats["large"].URL)
	assert.Equal(t, 1000, p.Cover.Formats["large"].Width)
}

func TestNormalizePostAcceptsAnyInputCasing(t *testing.T) {
	p := strapiclient.NormalizePost(raw(`{"id": 1, "title": "lower", "slug": "s", "cover": {"url": "/uploads/a.png"}}`))

	assert.Equal(t, "lower", p.Title)
	assert.Equal(t, "s", p.Slug)
	require.NotNil(t, p.Cover)
	assert.Equal(t, "/uploads/a.png", p.Cover.URL)

	out, err := json.Marshal(p)
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":1,"Title":"lower","Slug":"s","Cover":{"url":"/uploads/a.png"},"categories":[]}`, string(out))
}

func TestNormalizeCategoriesShapes(t *testing.T) {
	testCases := []struct {
		name string
		in   string
		want []strapiclient.Category
	}{
		{name: "absent", in: ``, want: []strapiclient.Category{}},
		{name: "null", in: `null`, want: []strapiclient.Category{}},
		{name: "plain array", in: `[{"id":1,"name":"A","slug":"a"}]`, want: []strapiclient.Category{{ID: 1, Name: "A", Slug: "a"}}},
		{name: "data wrapper", in: `{"data":[{"id":1,"attributes":{"name":"A","slug":"a"}}]}`, want: []strapiclient.Category{{ID: 1, Name: "A", Slug: "a"}}},
		{name: "data null", in: `{"data":null}`, want: []strapiclient.Category{}},
		{name: "malformed", in: `"oops"`, want: []strapiclient.Category{}},
		{name: "malformed item", in: `[42]`, want: []strapiclient.Category{{}}},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			assert.Equal(t, testCase.want, strapiclient.NormalizeCategories(raw(testCase.in)))
		})
	}
}

func TestNormalizeCategoryDocumentIDFallsBackToRecord(t *testing.T) {
	c := strapiclient.NormalizeCategory(raw(`{"id": "5", "documentId": "doc5", "attributes": {"name": "N", "slug": "n"}}`))
	assert.Equal(t, strapiclient.Category{ID: 5, DocumentID: "doc5", Name: "N", Slug: "n"}, c)
}

func TestNormalizePostDegradesMalformedFields(t *testing.T) {
	p := strapiclient.NormalizePost(raw(`{"id": "x", "Title": 5, "Cover": "nope", "categories": 3, "createdAt": "yesterday"}`))

	assert.Equal(t, strapiclient.Post{Categories: []strapiclient.Category{}}, p)
	assert.Equal(t, strapiclient.Post{Categories: []strapiclient.Category{}}, strapiclient.NormalizePost(raw(`[1,2]`)))
}

func TestNormalizePosts(t *testing.T) {
	assert.Empty(t, strapiclient.NormalizePosts(raw(`null`)))
	assert.Empty(t, strapiclient.NormalizePosts(raw(`[]`)))
	assert.NotNil(t, strapiclient.NormalizePosts(nil))

	single := strapiclient.NormalizePosts(raw(`{"id": 1, "Slug": "one"}`))
	require.Len(t, single, 1)
	assert.Equal(t, "one", single[0].Slug)

	many := strapiclient.NormalizePosts(raw(`[{"id": 1}, {"id": 2, "attributes": {"Slug": "two"}}]`))
	require.Len(t, many, 2)
	assert.Equal(t, 2, many[1].ID)
	assert.Equal(t, "two", many[1].Slug)
}

func TestNormalizeMediaShapes(t *testing.T) {
	assert.Nil(t, strapiclient.NormalizeMedia(nil))
	assert.Nil(t, strapiclient.NormalizeMedia(raw(`{"data": null}`)))
	assert.Nil(t, strapiclient.NormalizeMedia(raw(`[]`)))

	m := strapiclient.NormalizeMedia(raw(`[{"url": "/uploads/first.png"}, {"url": "/uploads/second.png"}]`))
	require.NotNil(t, m)
	assert.Equal(t, "/uploads/first.png", m.URL)

	m = strapiclient.NormalizeMedia(raw(`{"data": {"url": "/uploads/wrapped.png", "alternativeText": "alt"}}`))
	require.NotNil(t, m)
	assert.Equal(t, "/uploads/wrapped.png", m.URL)
	assert.Equal(t, "alt", m.AlternativeText)

	m = strapiclient.NormalizeMedia(raw(`{"url": "/uploads/a.png", "formats": {"small": {"url": "/uploads/s.png"}, "bad": 1}}`))
	require.NotNil(t, m)
	assert.Equal(t, map[string]strapiclient.MediaFormat{"small": {URL: "/uploads/s.png"}}, m.Formats)
}
