package config

import (
	"embed"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
	"gopkg.in/yaml.v3"
)

//go:embed default_config.yaml
var defaultConfigFS embed.FS

type Config struct {
	// BaseURL points at the backend API root, e.g.
	// http://localhost:8000/api/v1.
	BaseURL        string `yaml:"base_url"`
	PageSize       int    `yaml:"page_size,omitempty"`
	CacheTTL       string `yaml:"cache_ttl,omitempty"`
	RequestTimeout string `yaml:"request_timeout,omitempty"`
	// RateLimit caps outgoing requests per second; 0 disables it.
	RateLimit float64 `yaml:"rate_limit,omitempty"`
	Offline   Offline `yaml:"offline,omitempty"`
}

// Offline configures the local snapshot of public posts.
type Offline struct {
	Enabled   bool   `yaml:"enabled"`
	Retention string `yaml:"retention,omitempty"`
}

// ResolvedBaseURL prefers the BLOGCTL_API_URL env var over the file.
func (c *Config) ResolvedBaseURL() string {
	if v := os.Getenv("BLOGCTL_API_URL"); v != "" {
		return v
	}
	return c.BaseURL
}

func (c *Config) GetPageSize() int {
	if c.PageSize <= 0 {
		return 10
	}
	return c.PageSize
}

func (c *Config) CacheTTLDuration() time.Duration {
	d, err := time.ParseDuration(c.CacheTTL)
	if err != nil || d <= 0 {
		return 5 * time.Minute
	}
	return d
}

func (c *Config) RequestTimeoutDuration() time.Duration {
	d, err := time.ParseDuration(c.RequestTimeout)
	if err != nil || d <= 0 {
		return 30 * time.Second
	}
	return d
}

func (c *Config) RetentionDuration() time.Duration {
	r := c.Offline.Retention
	if r == "" {
		return 7 * 24 * time.Hour
	}
	// Support "Nd" day syntax
	if len(r) > 1 && r[len(r)-1] == 'd' {
		var days int
		if _, err := fmt.Sscanf(r, "%dd", &days); err == nil {
			return time.Duration(days) * 24 * time.Hour
		}
	}
	d, err := time.ParseDuration(r)
	if err != nil {
		return 7 * 24 * time.Hour
	}
	return d
}

func DefaultConfigPath() string {
	return filepath.Join(xdg.ConfigHome, "blogctl", "config.yaml")
}

func OfflineCachePath() string {
	return filepath.Join(xdg.CacheHome, "blogctl", "offline.db")
}

func loadDefaults() (*Config, error) {
	data, err := defaultConfigFS.ReadFile("default_config.yaml")
	if err != nil {
		return nil, fmt.Errorf("reading embedded config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded config: %w", err)
	}
	return &cfg, nil
}

func Load(path string) (*Config, error) {
	defaults, err := loadDefaults()
	if err != nil {
		return nil, err
	}

	if path == "" {
		path = DefaultConfigPath()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			// Write defaults to config path on first run
			if err := writeDefaults(path); err != nil {
				// Non-fatal: just use embedded defaults
				return defaults, nil
			}
			return defaults, nil
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	if err := validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func writeDefaults(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, _ := defaultConfigFS.ReadFile("default_config.yaml")
	return os.WriteFile(path, data, 0o644)
}

func validate(cfg *Config) error {
	if cfg.BaseURL == "" {
		return fmt.Errorf("base_url is required")
	}
	u, err := url.Parse(cfg.BaseURL)
	if err != nil {
		return fmt.Errorf("invalid base_url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("base_url scheme must be http or https, got %q", u.Scheme)
	}
	if cfg.PageSize < 0 {
		return fmt.Errorf("page_size must be >= 1")
	}
	if cfg.RateLimit < 0 {
		return fmt.Errorf("rate_limit must be >= 0")
	}
	return nil
}
