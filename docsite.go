// Package docsite serves a product documentation site built with Go, Echo,
// and templ. Pages are indexed from Markdown/MDX sources into SQLite and
// composed by the layout package into full documentation pages with side
// navigation, search and an edit link.
package docsite

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"log/slog"
	"net/http"
	"os"
	"sync/atomic"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/eringen/docsite/layout"
	"github.com/eringen/docsite/markdown"
	"github.com/eringen/docsite/metrics"
	"github.com/eringen/docsite/nav"
	"github.com/eringen/docsite/search"
	"github.com/eringen/docsite/views"
)

// App is the central docsite application. It wires together the store,
// cache, indexer, layout, handlers and middleware.
type App struct {
	Config  SiteConfig
	Echo    *echo.Echo
	Store   *Store
	Cache   *PageCache
	Layout  *layout.Layout
	Partial *layout.Layout

	order        atomic.Pointer[nav.Order]
	hookLimiter  *AttemptLimiter
	renderer     layout.Renderer
	recorder     metrics.Recorder
	logger       *slog.Logger
	customRoutes []func(*App)
	staticDir    string
}

// New creates a new docsite App with the given configuration.
func New(cfg SiteConfig, opts ...Option) *App {
	cfg.setDefaults()

	a := &App{
		Config:    cfg,
		Echo:      echo.New(),
		staticDir: "public",
		logger:    slog.Default(),
	}
	a.Echo.HideBanner = true

	for _, opt := range opts {
		opt(a)
	}
	if a.recorder == nil {
		a.recorder = metrics.NewPrometheusRecorder(nil)
	}
	if a.renderer == nil {
		a.renderer = views.NewDocsPage(a.viewConfig())
	}

	empty := nav.Order{}
	a.order.Store(&empty)

	lc := layout.Config{
		Product:       cfg.Product,
		SiteName:      cfg.Name,
		Category:      cfg.Category,
		EditBaseURL:   cfg.EditBaseURL,
		FilterEnabled: cfg.FilterEnabled,
	}
	sp := search.NewProvider(search.Config{
		AppID:     cfg.SearchAppID,
		SearchKey: cfg.SearchKey,
		IndexName: cfg.SearchIndex,
	})
	mp := markdown.NewProvider(cfg.Product)
	a.Layout = layout.New(lc, a, a.renderer, sp, mp)
	a.Partial = layout.New(lc, a, views.ContentOnly{}, sp, mp)
	return a
}

func (a *App) viewConfig() views.SiteConfig {
	return views.SiteConfig{
		Name:        a.Config.Name,
		URL:         a.Config.URL,
		Description: a.Config.Description,
		DocsPath:    "/" + a.Config.Category,
	}
}

// SiteData implements layout.DataSource with the current navigation order
// and the cached front matter of every page.
func (a *App) SiteData() layout.SiteData {
	data := layout.SiteData{Order: *a.order.Load()}
	if a.Cache == nil {
		return data
	}
	pages, err := a.Cache.Metas(context.Background())
	if err != nil {
		a.Echo.Logger.Errorf("load navigation data: %v", err)
		return data
	}
	data.Pages = pages
	return data
}

// Order returns the navigation order currently in use.
func (a *App) Order() nav.Order {
	return *a.order.Load()
}

// ReloadNav reads the navigation order file again. A missing file yields an
// empty order.
func (a *App) ReloadNav() error {
	order, err := nav.LoadOrder(a.Config.NavPath)
	if errors.Is(err, fs.ErrNotExist) {
		a.logger.Warn("navigation order not found", "path", a.Config.NavPath)
		order = nav.Order{}
	} else if err != nil {
		return err
	}
	a.order.Store(&order)
	return nil
}

// Open opens the store and cache and loads the navigation order. It is the
// part of Setup the index command needs.
func (a *App) Open() error {
	store, err := NewStore(a.Config.DatabasePath)
	if err != nil {
		return fmt.Errorf("docsite: init store: %w", err)
	}
	a.Store = store
	a.Cache = NewPageCache(a.Store, a.Config.PageCacheTTL)

	if err := a.ReloadNav(); err != nil {
		return fmt.Errorf("docsite: load navigation: %w", err)
	}
	return nil
}

// Setup opens the app, indexes pages when needed and registers middleware
// and routes. Start calls it; tests may call it directly and drive a.Echo
// with httptest.
func (a *App) Setup(ctx context.Context) error {
	if err := a.Open(); err != nil {
		return err
	}

	n, err := a.Store.CountPages(ctx)
	if err != nil {
		return fmt.Errorf("docsite: count pages: %w", err)
	}
	if n == 0 || a.Config.ReindexOnStart {
		if _, err := a.Index(ctx); err != nil {
			return err
		}
	}

	a.setupMiddleware()
	a.setupRoutes()

	for _, fn := range a.customRoutes {
		fn(a)
	}
	return nil
}

// Start sets the app up and runs the server until ctx is cancelled.
func (a *App) Start(ctx context.Context) error {
	if err := a.Setup(ctx); err != nil {
		return err
	}

	if a.Config.Watch {
		stop, err := a.Watch(ctx)
		if err != nil {
			return fmt.Errorf("docsite: watch: %w", err)
		}
		defer stop()
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := a.Echo.Shutdown(shutdownCtx); err != nil {
			a.Echo.Logger.Errorf("shutdown: %v", err)
		}
	}()

	if err := a.Echo.Start(a.Config.Addr); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (a *App) setupRoutes() {
	e := a.Echo

	// Framework assets are embedded and served under /public/, falling
	// through to the user's static dir for everything else.
	embeddedFS, _ := fs.Sub(EmbeddedAssets, "embedded")
	embeddedHandler := http.FileServer(http.FS(embeddedFS))
	e.GET("/public/docs.css", echo.WrapHandler(http.StripPrefix("/public/", embeddedHandler)))
	e.GET("/public/search.js", echo.WrapHandler(http.StripPrefix("/public/", embeddedHandler)))

	e.Static("/public", a.staticDir)
	e.GET("/favicon.svg", a.handleFavicon)
	e.GET("/robots.txt", a.handleRobots)
	e.GET("/sitemap.xml", a.handleSitemap)

	if p, ok := a.recorder.(*metrics.PrometheusRecorder); ok {
		e.GET("/metrics", echo.WrapHandler(p.Handler()))
	}

	docs := "/" + a.Config.Category
	if a.Config.ReindexToken != "" {
		a.hookLimiter = NewAttemptLimiter(5, time.Minute)
		e.POST("/api/reindex", a.handleReindex)
	}

	e.GET("/", a.handleRoot)
	e.GET(docs, a.handleDocs)
	e.GET(docs+"/*", a.handleDocs)
}

// Close cleans up resources. Call this when the app is shutting down.
func (a *App) Close() error {
	if a.hookLimiter != nil {
		a.hookLimiter.Stop()
	}
	if a.Store != nil {
		return a.Store.Close()
	}
	return nil
}

// EnvOr returns the value of the environment variable key, or fallback if empty.
// This is a convenience function for use in scaffolded main.go files.
func EnvOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// MustEnv returns the value of the environment variable key, or fatally exits if empty.
func MustEnv(key string) string {
	v := os.Getenv(key)
	if v == "" {
		log.Fatalf("docsite: required environment variable %s is not set", key)
	}
	return v
}
