package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"strapi-blog/config"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, config.CONFIG_FILE), []byte(body), 0o644))
	return dir
}

func TestLoadAppliesDefaults(t *testing.T) {
	t.Setenv("STRAPI_URL", "")
	dir := writeConfig(t, `
strapi:
  base_url: https://supreme-bubble.strapiapp.com/
`)

	c, err := config.Load(dir)
	require.NoError(t, err)

	assert.Equal(t, "https://supreme-bubble.strapiapp.com", c.Strapi.BaseURL)
	assert.Equal(t, 10*time.Second, c.Strapi.Timeout)
	assert.Equal(t, ".strapiapp.com", c.Strapi.Media.HostFrom)
	assert.Equal(t, ".media.strapiapp.com", c.Strapi.Media.HostTo)
	assert.Equal(t, "/uploads/", c.Strapi.Media.UploadsPrefix)
	assert.Equal(t, config.OutputStatic, c.Site.Output)
	assert.Equal(t, 3, c.Site.RelatedLimit)
	assert.Equal(t, ":8080", c.Server.Addr)
	assert.Equal(t, "info", c.Logging.Level)
}

func TestLoadEnvOverridesFile(t *testing.T) {
	t.Setenv("STRAPI_URL", "http://localhost:1337/")
	t.Setenv("SITE_OUTPUT", "SERVER")
	dir := writeConfig(t, `
strapi:
  base_url: https://ignored.example.com
  timeout: 3s
`)

	c, err := config.Load(dir)
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:1337", c.Strapi.BaseURL)
	assert.Equal(t, 3*time.Second, c.Strapi.Timeout)
	assert.Equal(t, config.OutputServer, c.Site.Output)
}

func TestLoadWithoutConfigFile(t *testing.T) {
	t.Setenv("STRAPI_URL", "https://api.example.com")

	c, err := config.Load(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, "https://api.example.com", c.Strapi.BaseURL)
}

func TestLoadRejectsInvalidConfig(t *testing.T) {
	t.Setenv("STRAPI_URL", "")

	testCases := []struct {
		name string
		body string
	}{
		{name: "missing base url", body: "site:\n  title: x\n"},
		{name: "unknown output", body: "strapi:\n  base_url: https://a.example.com\nsite:\n  output: hybrid\n"},
		{name: "malformed yaml", body: "strapi: [\n"},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			_, err := config.Load(writeConfig(t, testCase.body))
			assert.Error(t, err)
		})
	}
}

func TestNormalizeBaseURLStripsOnce(t *testing.T) {
	assert.Equal(t, "https://api.example.com", config.NormalizeBaseURL("https://api.example.com/"))
	assert.Equal(t, "https://api.example.com/", config.NormalizeBaseURL("https://api.example.com//"))
	assert.Equal(t, "", config.NormalizeBaseURL(""))
}
