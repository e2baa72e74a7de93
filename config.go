package docsite

import (
	"log/slog"
	"time"

	"github.com/eringen/docsite/layout"
	"github.com/eringen/docsite/metrics"
)

// SiteConfig holds all configuration for a documentation site.
type SiteConfig struct {
	Name        string // Site name, suffixed to every title (default "Consul by HashiCorp")
	URL         string // Canonical URL (default "http://localhost:3000")
	Description string // Site description for meta tags
	Product     string // Product identity passed to the renderer (default "consul")
	Category    string // Navigation category and route prefix (default "docs")
	EditBaseURL string // Prefix of edit links (default the consul repository pages dir)

	Addr         string // Listen address (default ":3000")
	DatabasePath string // SQLite page index (default "data/pages.db")
	PagesDir     string // Documentation sources root (default "pages")
	NavPath      string // Navigation order YAML (default "data/docs-navigation.yaml")

	SearchAppID string // Hosted search application id; empty disables the search bar
	SearchKey   string // Public search-only key
	SearchIndex string // Hosted search index name

	ReindexToken string // Bearer token of POST /api/reindex; empty disables the hook

	FilterEnabled  bool          // Render the side-navigation filter
	Watch          bool          // Reindex when sources or the navigation file change
	ReindexOnStart bool          // Index on Start even when the store has pages
	PageCacheTTL   time.Duration // Page cache TTL (default 5min)
}

func (c *SiteConfig) setDefaults() {
	if c.Name == "" {
		c.Name = layout.DefaultSiteName
	}
	if c.URL == "" {
		c.URL = "http://localhost:3000"
	}
	if c.Product == "" {
		c.Product = layout.DefaultProduct
	}
	if c.Category == "" {
		c.Category = layout.DefaultCategory
	}
	if c.EditBaseURL == "" {
		c.EditBaseURL = layout.DefaultEditBaseURL
	}
	if c.Addr == "" {
		c.Addr = ":3000"
	}
	if c.DatabasePath == "" {
		c.DatabasePath = "data/pages.db"
	}
	if c.PagesDir == "" {
		c.PagesDir = "pages"
	}
	if c.NavPath == "" {
		c.NavPath = "data/docs-navigation.yaml"
	}
	if c.PageCacheTTL == 0 {
		c.PageCacheTTL = 5 * time.Minute
	}
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

// WithStaticDir sets the directory for user-owned static assets (default "public").
func WithStaticDir(dir string) Option {
	return func(a *App) {
		a.staticDir = dir
	}
}

// WithRenderer replaces the default documentation-page renderer.
func WithRenderer(r layout.Renderer) Option {
	return func(a *App) {
		a.renderer = r
	}
}

// WithRecorder sets the metrics recorder. The /metrics route is served only
// when the recorder is a *metrics.PrometheusRecorder.
func WithRecorder(r metrics.Recorder) Option {
	return func(a *App) {
		a.recorder = r
	}
}

// WithLogger sets the structured logger used by the indexer and watcher
// (default slog.Default()).
func WithLogger(l *slog.Logger) Option {
	return func(a *App) {
		a.logger = l
	}
}
