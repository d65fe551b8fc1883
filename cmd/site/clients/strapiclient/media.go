package strapiclient

import (
	"net/url"
	"strings"

	"strapi-blog/cmd/site/httpclient"
)

// formatPreference is the order resized variants are tried in.
var formatPreference = []string{"large", "medium", "small"}

// MediaResolver turns upload paths into absolute URLs on the media host.
type MediaResolver struct {
	baseURL       string
	uploadsPrefix string
}

// NewMediaResolver uses mediaBaseURL when set, otherwise derives the media
// host from apiBaseURL by swapping hostFrom for hostTo.
func NewMediaResolver(apiBaseURL, mediaBaseURL, hostFrom, hostTo, uploadsPrefix string) *MediaResolver {
	base := strings.TrimSuffix(mediaBaseURL, "/")
	if base == "" {
		base = DeriveMediaBaseURL(apiBaseURL, hostFrom, hostTo)
	}
	if uploadsPrefix == "" {
		uploadsPrefix = "/uploads/"
	}
	if !strings.HasPrefix(uploadsPrefix, "/") {
		uploadsPrefix = "/" + uploadsPrefix
	}
	if !strings.HasSuffix(uploadsPrefix, "/") {
		uploadsPrefix += "/"
	}
	return &MediaResolver{baseURL: base, uploadsPrefix: uploadsPrefix}
}

// DeriveMediaBaseURL rewrites the first occurrence of hostFrom in the host
// name, e.g. x.strapiapp.com -> x.media.strapiapp.com. Hosts without
// hostFrom (local development) keep the API base URL.
func DeriveMediaBaseURL(apiBaseURL, hostFrom, hostTo string) string {
	apiBaseURL = strings.TrimSuffix(apiBaseURL, "/")
	if hostFrom == "" {
		return apiBaseURL
	}
	u, err := url.Parse(apiBaseURL)
	if err != nil || u.Host == "" {
		return apiBaseURL
	}
	if !strings.Contains(u.Host, hostFrom) || strings.Contains(u.Host, hostTo) {
		return apiBaseURL
	}
	u.Host = strings.Replace(u.Host, hostFrom, hostTo, 1)
	return strings.TrimSuffix(u.String(), "/")
}

// BaseURL is the media host the resolver joins paths onto.
func (r *MediaResolver) BaseURL() string {
	return r.baseURL
}

// URL resolves an upload path. Absolute URLs pass through, paths under the
// uploads prefix are joined to the media host and anything else is treated
// as a bare file name inside the uploads prefix.
func (r *MediaResolver) URL(path string) string {
	path = strings.TrimSpace(path)
	switch {
	case path == "":
		return ""
	case strings.HasPrefix(path, "//"):
		return "https:" + path
	case httpclient.HasScheme(path):
		return path
	case strings.HasPrefix(path, r.uploadsPrefix):
		return r.baseURL + path
	default:
		return r.baseURL + r.uploadsPrefix + strings.TrimPrefix(path, "/")
	}
}

// CoverURL picks the best variant of m and resolves it. It returns "" when m
// has no usable URL.
func (r *MediaResolver) CoverURL(m *Media) string {
	return r.URL(BestFormatURL(m))
}

// BestFormatURL returns the large, medium or small variant URL, whichever is
// present first, falling back to the original file's URL.
func BestFormatURL(m *Media) string {
	if m == nil {
		return ""
	}
	for _, name := range formatPreference {
		if f, ok := m.Formats[name]; ok && f.URL != "" {
			return f.URL
		}
	}
	return m.URL
}
