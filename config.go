package stagepage

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// SiteConfig holds the server configuration of a stagepage site.
type SiteConfig struct {
	URL  string `koanf:"url"`  // Canonical URL (default "http://localhost:3000")
	Addr string `koanf:"addr"` // Listen address (default ":3000")

	ContentPath string `koanf:"content"`    // Content YAML; empty uses the built-in content
	Theme       string `koanf:"theme"`      // Overrides the content file's theme when set
	AssetsDir   string `koanf:"assets_dir"` // Local images served under /assets/ (default "assets")

	FailureLogPath    string        `koanf:"failure_log"`         // Asset failure SQLite path (default "data/failures.db")
	DisableFailureLog bool          `koanf:"disable_failure_log"` // Skip recording asset failures
	FailureRetention  time.Duration `koanf:"failure_retention"`   // Age at which failures are pruned (default 90 days)

	SessionSecret string `koanf:"session_secret"` // Required: session cookie secret
	CookieSecure  bool   `koanf:"cookie_secure"`  // Set true for HTTPS

	ViewTTL       time.Duration `koanf:"view_ttl"`        // Idle time before a view is dropped (default 30m)
	MaxViews      int           `koanf:"max_views"`       // Views held at once; the least recently seen is dropped (default 10000)
	AssetCacheTTL time.Duration `koanf:"asset_cache_ttl"` // Processed image cache TTL (default 1h)
	MaxImageWidth int           `koanf:"max_image_width"` // Downscale wider images (default 1600)
	EventsPerMin  int           `koanf:"events_per_min"`  // Per-IP UI event budget (default 240)
	PagesPerMin   int           `koanf:"pages_per_min"`   // Per-IP page load budget (default 60)

	LogLevel  string `koanf:"log_level"`  // debug, info, warn, error (default info)
	LogPretty bool   `koanf:"log_pretty"` // Console log output
}

func (c *SiteConfig) setDefaults() {
	if c.URL == "" {
		c.URL = "http://localhost:3000"
	}
	c.URL = strings.TrimSuffix(c.URL, "/")
	if c.Addr == "" {
		c.Addr = ":3000"
	}
	if c.AssetsDir == "" {
		c.AssetsDir = "assets"
	}
	if c.FailureLogPath == "" {
		c.FailureLogPath = "data/failures.db"
	}
	if c.FailureRetention == 0 {
		c.FailureRetention = 90 * 24 * time.Hour
	}
	if c.ViewTTL == 0 {
		c.ViewTTL = 30 * time.Minute
	}
	if c.MaxViews == 0 {
		c.MaxViews = 10000
	}
	if c.AssetCacheTTL == 0 {
		c.AssetCacheTTL = time.Hour
	}
	if c.MaxImageWidth == 0 {
		c.MaxImageWidth = 1600
	}
	if c.EventsPerMin == 0 {
		c.EventsPerMin = 240
	}
	if c.PagesPerMin == 0 {
		c.PagesPerMin = 60
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
}

// LoadConfig reads path (if it exists) and overlays STAGEPAGE_* environment
// variables, e.g. STAGEPAGE_SESSION_SECRET -> session_secret.
func LoadConfig(path string) (SiteConfig, error) {
	k := koanf.New(".")
	var cfg SiteConfig

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
				return cfg, fmt.Errorf("stagepage: reading config %s: %w", path, err)
			}
		} else if !os.IsNotExist(err) {
			return cfg, fmt.Errorf("stagepage: accessing config %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider("STAGEPAGE_", ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, "STAGEPAGE_"))
	}), nil); err != nil {
		return cfg, fmt.Errorf("stagepage: loading env overrides: %w", err)
	}

	if err := k.Unmarshal("", &cfg); err != nil {
		return cfg, fmt.Errorf("stagepage: unmarshalling config: %w", err)
	}
	cfg.setDefaults()
	return cfg, nil
}

// Option configures additional App behavior.
type Option func(*App)

// WithCustomRoutes registers additional routes on the Echo instance.
// The callback runs after the built-in routes are registered.
func WithCustomRoutes(fn func(*App)) Option {
	return func(a *App) {
		a.customRoutes = append(a.customRoutes, fn)
	}
}

// WithFailureLog injects an already opened failure log.
func WithFailureLog(s *FailureLog) Option {
	return func(a *App) {
		a.Failures = s
	}
}
