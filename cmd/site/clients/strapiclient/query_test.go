package strapiclient_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"strapi-blog/cmd/site/clients/strapiclient"
)

func TestQueryEncode(t *testing.T) {
	testCases := []struct {
		name  string
		query *strapiclient.Query
		want  string
	}{
		{
			name:  "nil query",
			query: nil,
			want:  "",
		},
		{
			name:  "single populate",
			query: strapiclient.NewQuery().Populate("Cover"),
			want:  "populate=Cover",
		},
		{
			name:  "several populate",
			query: strapiclient.NewQuery().Populate("Cover", "categories"),
			want:  "populate[0]=Cover&populate[1]=categories",
		},
		{
			name:  "global wildcard",
			query: strapiclient.NewQuery().Populate("*"),
			want:  "populate=*",
		},
		{
			name:  "equality on nested relation",
			query: strapiclient.NewQuery().Eq("categories.slug", "go lang"),
			want:  "filters[categories][slug][$eq]=go+lang",
		},
		{
			name: "in, ne and limit combined",
			query: strapiclient.NewQuery().
				In("categories.id", "1", "2").
				Ne("id", "7").
				Populate("Cover").
				Limit(3),
			want: "filters[categories][id][$in][0]=1&filters[categories][id][$in][1]=2&filters[id][$ne]=7&populate=Cover&pagination[limit]=3",
		},
		{
			name: "nested populate",
			query: strapiclient.NewQuery().
				Populate("Cover").
				PopulateAll("SEO").
				PopulateFields("categories", "name", "slug"),
			want: "populate[Cover]=true&populate[SEO]=*&populate[categories][fields][0]=name&populate[categories][fields][1]=slug",
		},
		{
			name:  "sort",
			query: strapiclient.NewQuery().Sort("publishedAt", true).Sort("Title", false),
			want:  "sort[0]=publishedAt:desc&sort[1]=Title:asc",
		},
		{
			name:  "values are passed through unvalidated",
			query: strapiclient.NewQuery().Eq("Slug", "a&b=c"),
			want:  "filters[Slug][$eq]=a%26b%3Dc",
		},
		{
			name:  "zero limit omitted",
			query: strapiclient.NewQuery().Limit(0),
			want:  "",
		},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			assert.Equal(t, testCase.want, testCase.query.Encode())
		})
	}
}
