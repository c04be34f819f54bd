package folio

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"go.uber.org/zap"

	"github.com/eringen/folio/content"
	"github.com/eringen/folio/views"
)

// EnvPrefix prefixes every environment override, e.g. FOLIO_BACKEND_URL.
const EnvPrefix = "FOLIO_"

// ConfigFile is the conventional config file name inside a site directory.
const ConfigFile = "config.yaml"

// SiteConfig holds all configuration for a folio site.
type SiteConfig struct {
	Name        string `koanf:"name" yaml:"name"`               // Site name (default "Portfolio")
	URL         string `koanf:"url" yaml:"url"`                 // Canonical URL (default "http://localhost:3000")
	Description string `koanf:"description" yaml:"description"` // Meta, RSS and JSON-LD description
	Owner       string `koanf:"owner" yaml:"owner"`             // Person the portfolio is about

	Addr          string `koanf:"addr" yaml:"addr"`                     // Listen address (default ":3000")
	SiteDir       string `koanf:"site_dir" yaml:"site_dir"`             // Site directory (default ".")
	ContentSource string `koanf:"content_source" yaml:"content_source"` // Path in SiteDir or http(s) URL
	BackendURL    string `koanf:"backend_url" yaml:"backend_url"`       // Query/project API; empty disables it
	BasePath      string `koanf:"base_path" yaml:"base_path"`           // URL prefix; derived from URL when empty
	ComponentsURL string `koanf:"components_url" yaml:"components_url"` // Origin serving /components/; empty reads SiteDir

	ChatDatabasePath string        `koanf:"chat_database_path" yaml:"chat_database_path"` // SQLite path (default "data/chat.db")
	ChatRateLimit    int           `koanf:"chat_rate_limit" yaml:"chat_rate_limit"`       // Queries per IP per minute (default 10)
	SessionSecret    string        `koanf:"session_secret" yaml:"session_secret"`         // Required by serve
	CookieSecure     bool          `koanf:"cookie_secure" yaml:"cookie_secure"`           // Set true for HTTPS
	ContentCacheTTL  time.Duration `koanf:"content_cache_ttl" yaml:"content_cache_ttl"`   // Content cache TTL (default 5m)
	RequestTimeout   time.Duration `koanf:"request_timeout" yaml:"request_timeout"`       // Outbound HTTP timeout (default 10s)
	RevealDisabled   bool          `koanf:"reveal_disabled" yaml:"reveal_disabled"`       // Render .fade-in visible server-side
	Debug            bool          `koanf:"debug" yaml:"debug"`                           // Development logging
}

func (c *SiteConfig) setDefaults() {
	if c.Name == "" {
		c.Name = "Portfolio"
	}
	if c.URL == "" {
		c.URL = "http://localhost:3000"
	}
	if c.Owner == "" {
		c.Owner = c.Name
	}
	if c.Addr == "" {
		c.Addr = ":3000"
	}
	if c.SiteDir == "" {
		c.SiteDir = "."
	}
	if c.ContentSource == "" {
		c.ContentSource = content.DefaultSource
	}
	if c.ChatDatabasePath == "" {
		c.ChatDatabasePath = filepath.Join("data", "chat.db")
	}
	if c.ChatRateLimit <= 0 {
		c.ChatRateLimit = 10
	}
	if c.ContentCacheTTL == 0 {
		c.ContentCacheTTL = 5 * time.Minute
	}
	if c.RequestTimeout == 0 {
		c.RequestTimeout = 10 * time.Second
	}
	c.BasePath = strings.TrimRight(c.BasePath, "/")
}

// Site returns the subset of the config views render with.
func (c SiteConfig) Site() views.Site {
	return views.Site{
		Name:        c.Name,
		URL:         c.URL,
		Description: c.Description,
		Owner:       c.Owner,
		BasePath:    c.BasePath,
	}
}

// LoadConfig reads siteDir/config.yaml when it exists, then overlays FOLIO_*
// environment variables (FOLIO_BACKEND_URL -> backend_url).
func LoadConfig(siteDir string) (SiteConfig, error) {
	k := koanf.New(".")
	cfg := SiteConfig{SiteDir: siteDir}

	path := filepath.Join(siteDir, ConfigFile)
	if _, err := os.Stat(path); err == nil {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return cfg, fmt.Errorf("reading config %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return cfg, fmt.Errorf("accessing config %s: %w", path, err)
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	}), nil); err != nil {
		return cfg, fmt.Errorf("loading env overrides: %w", err)
	}

	if err := k.Unmarshal("", &cfg); err != nil {
		return cfg, fmt.Errorf("unmarshalling config: %w", err)
	}
	if cfg.SiteDir == "" {
		cfg.SiteDir = siteDir
	}
	cfg.setDefaults()
	return cfg, nil
}

// Option configures additional App behavior.
type Option func(*App)

// WithCustomRoutes registers additional routes on the Echo instance.
// The callback receives the App before the server starts.
func WithCustomRoutes(fn func(*App)) Option {
	return func(a *App) {
		a.customRoutes = append(a.customRoutes, fn)
	}
}

// WithLogger sets the logger (default: production zap logger, or development
// with Debug).
func WithLogger(logger *zap.Logger) Option {
	return func(a *App) {
		a.Logger = logger
	}
}

// WithStaticDir sets the directory of static assets, relative to the site
// directory (default "public").
func WithStaticDir(dir string) Option {
	return func(a *App) {
		a.staticDir = dir
	}
}
