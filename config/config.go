package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const ENV_FILE = ".env"
const CONFIG_FILE = "config.yaml"

const (
	OutputServer = "server"
	OutputStatic = "static"
)

type AppConfig struct {
	Logging LoggingConfig `yaml:"logging"`
	Strapi  StrapiConfig  `yaml:"strapi"`
	Site    SiteConfig    `yaml:"site"`
	Server  ServerConfig  `yaml:"server"`
}

type LoggingConfig struct {
	Level string `yaml:"level"`
}

// StrapiConfig describes the upstream CMS. BaseURL is kept without a trailing slash.
type StrapiConfig struct {
	BaseURL string        `yaml:"base_url"`
	Timeout time.Duration `yaml:"timeout"`
	Media   MediaConfig   `yaml:"media"`
}

// MediaConfig controls how upload paths become absolute URLs.
// When BaseURL is empty the media host is derived from the CMS host by
// replacing HostFrom with HostTo.
type MediaConfig struct {
	BaseURL       string `yaml:"base_url"`
	HostFrom      string `yaml:"host_from"`
	HostTo        string `yaml:"host_to"`
	UploadsPrefix string `yaml:"uploads_prefix"`
}

type SiteConfig struct {
	Title        string `yaml:"title"`
	Description  string `yaml:"description"`
	URL          string `yaml:"url"`
	Output       string `yaml:"output"`
	StaticDir    string `yaml:"static_dir"`
	RelatedLimit int    `yaml:"related_limit"`
}

type ServerConfig struct {
	Addr           string   `yaml:"addr"`
	AllowedOrigins []string `yaml:"allowed_origins"`
}

var config *AppConfig

// Load reads dir/.env (optional) and dir/config.yaml, applies environment
// overrides and defaults, and validates the result.
func Load(dir string) (AppConfig, error) {
	_ = godotenv.Load(filepath.Join(dir, ENV_FILE))

	var c AppConfig
	data, err := os.ReadFile(filepath.Join(dir, CONFIG_FILE))
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &c); err != nil {
			return AppConfig{}, fmt.Errorf("config: parse %s: %w", CONFIG_FILE, err)
		}
	case errors.Is(err, os.ErrNotExist):
		// env-only deployments are allowed
	default:
		return AppConfig{}, fmt.Errorf("config: read %s: %w", CONFIG_FILE, err)
	}

	c.applyEnv()
	c.applyDefaults()
	if err := c.Validate(); err != nil {
		return AppConfig{}, err
	}
	return c, nil
}

func (c *AppConfig) applyEnv() {
	if v := os.Getenv("STRAPI_URL"); v != "" {
		c.Strapi.BaseURL = v
	}
	if v := os.Getenv("STRAPI_MEDIA_URL"); v != "" {
		c.Strapi.Media.BaseURL = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
	if v := os.Getenv("SITE_OUTPUT"); v != "" {
		c.Site.Output = v
	}
	if v := os.Getenv("PORT"); v != "" {
		c.Server.Addr = ":" + v
	}
}

func (c *AppConfig) applyDefaults() {
	c.Strapi.BaseURL = NormalizeBaseURL(c.Strapi.BaseURL)
	c.Strapi.Media.BaseURL = NormalizeBaseURL(c.Strapi.Media.BaseURL)
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.Strapi.Timeout == 0 {
		c.Strapi.Timeout = 10 * time.Second
	}
	if c.Strapi.Media.HostFrom == "" && c.Strapi.Media.HostTo == "" {
		c.Strapi.Media.HostFrom = ".strapiapp.com"
		c.Strapi.Media.HostTo = ".media.strapiapp.com"
	}
	if c.Strapi.Media.UploadsPrefix == "" {
		c.Strapi.Media.UploadsPrefix = "/uploads/"
	}
	if c.Site.Output == "" {
		c.Site.Output = OutputStatic
	}
	c.Site.Output = strings.ToLower(c.Site.Output)
	if c.Site.StaticDir == "" {
		c.Site.StaticDir = "dist"
	}
	if c.Site.RelatedLimit <= 0 {
		c.Site.RelatedLimit = 3
	}
	if c.Site.Title == "" {
		c.Site.Title = "Blog"
	}
	if c.Server.Addr == "" {
		c.Server.Addr = ":8080"
	}
}

// Validate fails fast on settings the site cannot run without.
func (c AppConfig) Validate() error {
	if c.Strapi.BaseURL == "" {
		return errors.New("config: strapi.base_url (or STRAPI_URL) is required")
	}
	if c.Strapi.Timeout < 0 {
		return fmt.Errorf("config: strapi.timeout must be positive, got %s", c.Strapi.Timeout)
	}
	switch c.Site.Output {
	case OutputServer, OutputStatic:
	default:
		return fmt.Errorf("config: site.output must be %q or %q, got %q", OutputServer, OutputStatic, c.Site.Output)
	}
	return nil
}

// NormalizeBaseURL strips a single trailing slash.
func NormalizeBaseURL(raw string) string {
	raw = strings.TrimSpace(raw)
	return strings.TrimSuffix(raw, "/")
}

func InitApp() {
	c, err := Load(GetBasePath())
	if err != nil {
		panic(err)
	}
	config = &c
}

func GetConfig() AppConfig {
	if config == nil {
		InitApp()
	}

	return *config
}

func GetBasePath() string {
	cwd, err := os.Getwd()
	if err != nil {
		return ""
	}

	dir := cwd
	for {
		cfgPath := filepath.Join(dir, CONFIG_FILE)
		if info, err := os.Stat(cfgPath); err == nil && !info.IsDir() {
			return dir
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return cwd
}
