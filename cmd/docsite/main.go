package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alecthomas/kong"
	"github.com/joho/godotenv"

	"github.com/eringen/docsite"
)

// version is set at build time via ldflags.
var version = "dev"

// CLI is the docsite command line.
type CLI struct {
	Verbose bool `short:"v" help:"Enable verbose logging"`

	Serve      ServeCmd   `cmd:"" help:"Serve the documentation site"`
	Index      IndexCmd   `cmd:"" help:"Index page sources into the page store"`
	New        NewCmd     `cmd:"" help:"Create a new documentation project"`
	VersionCmd VersionCmd `cmd:"" name:"version" help:"Print the docsite version"`
}

// AfterApply runs after flag parsing; setup logging once.
func (c *CLI) AfterApply() error {
	level := slog.LevelInfo
	if c.Verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
	return nil
}

// SiteFlags are the site settings shared by serve and index.
type SiteFlags struct {
	Pages    string `name:"pages" env:"DOCSITE_PAGES" default:"pages" help:"Documentation sources root."`
	Nav      string `name:"nav" env:"DOCSITE_NAV" default:"data/docs-navigation.yaml" help:"Navigation order file."`
	DB       string `name:"db" env:"DOCSITE_DB" default:"data/pages.db" help:"SQLite page store."`
	Category string `name:"category" env:"DOCSITE_CATEGORY" default:"docs" help:"Navigation category and route prefix."`
}

// ServeCmd runs the HTTP server.
type ServeCmd struct {
	SiteFlags `embed:""`

	Addr        string        `name:"addr" env:"DOCSITE_ADDR" default:":3000" help:"Listen address."`
	URL         string        `name:"url" env:"DOCSITE_URL" default:"http://localhost:3000" help:"Canonical site URL."`
	Name        string        `name:"name" env:"DOCSITE_NAME" default:"Consul by HashiCorp" help:"Site name appended to titles."`
	Description string        `name:"description" env:"DOCSITE_DESCRIPTION" help:"Site description."`
	Product     string        `name:"product" env:"DOCSITE_PRODUCT" default:"consul" help:"Product identity."`
	EditBaseURL string        `name:"edit-base-url" env:"DOCSITE_EDIT_BASE_URL" help:"Prefix of the edit-this-page link."`
	Static      string        `name:"static" env:"DOCSITE_STATIC" default:"public" help:"User static assets directory."`
	Watch       bool          `name:"watch" env:"DOCSITE_WATCH" help:"Reindex when sources change."`
	Reindex     bool          `name:"reindex" env:"DOCSITE_REINDEX" help:"Index pages on start even when the store has pages."`
	Filter      bool          `name:"filter" env:"DOCSITE_FILTER" help:"Enable the side navigation filter."`
	CacheTTL    time.Duration `name:"cache-ttl" env:"DOCSITE_CACHE_TTL" default:"5m" help:"Page cache TTL."`

	SearchAppID string `name:"search-app-id" env:"DOCSITE_SEARCH_APP_ID" help:"Hosted search application id."`
	SearchKey   string `name:"search-key" env:"DOCSITE_SEARCH_KEY" help:"Hosted search public key."`
	SearchIndex string `name:"search-index" env:"DOCSITE_SEARCH_INDEX" help:"Hosted search index name."`

	ReindexToken string `name:"reindex-token" env:"DOCSITE_REINDEX_TOKEN" help:"Enable POST /api/reindex with this bearer token."`
}

func (s *ServeCmd) config() docsite.SiteConfig {
	return docsite.SiteConfig{
		Name:           s.Name,
		URL:            s.URL,
		Description:    s.Description,
		Product:        s.Product,
		Category:       s.Category,
		EditBaseURL:    s.EditBaseURL,
		Addr:           s.Addr,
		DatabasePath:   s.DB,
		PagesDir:       s.Pages,
		NavPath:        s.Nav,
		SearchAppID:    s.SearchAppID,
		SearchKey:      s.SearchKey,
		SearchIndex:    s.SearchIndex,
		FilterEnabled:  s.Filter,
		Watch:          s.Watch,
		ReindexOnStart: s.Reindex,
		ReindexToken:   s.ReindexToken,
		PageCacheTTL:   s.CacheTTL,
	}
}

func (s *ServeCmd) Run() error {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	app := docsite.New(s.config(),
		docsite.WithStaticDir(s.Static),
		docsite.WithLogger(slog.Default()),
	)
	defer app.Close()

	slog.Info("starting server", "addr", s.Addr, "pages", s.Pages, "watch", s.Watch)
	return app.Start(ctx)
}

// IndexCmd indexes page sources without serving.
type IndexCmd struct {
	SiteFlags `embed:""`
}

func (i *IndexCmd) Run() error {
	app := docsite.New(docsite.SiteConfig{
		Category:     i.Category,
		DatabasePath: i.DB,
		PagesDir:     i.Pages,
		NavPath:      i.Nav,
	}, docsite.WithLogger(slog.Default()))
	if err := app.Open(); err != nil {
		return err
	}
	defer app.Close()

	report, err := app.Index(context.Background())
	if err != nil {
		return err
	}
	fmt.Printf("indexed %d pages in %s\n", report.Pages, report.Duration.Round(time.Millisecond))
	for _, m := range report.Missing {
		fmt.Printf("  missing: %s\n", m)
	}
	return nil
}

// VersionCmd prints the version.
type VersionCmd struct{}

func (VersionCmd) Run() error {
	fmt.Printf("docsite %s\n", version)
	return nil
}

// loadDotEnv loads .env into the environment when present so kong env
// defaults see it. Variables already set win.
func loadDotEnv() error {
	err := godotenv.Load()
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}

func main() {
	if err := loadDotEnv(); err != nil {
		fmt.Fprintf(os.Stderr, "docsite: load .env: %v\n", err)
		os.Exit(1)
	}

	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("docsite"),
		kong.Description("A documentation site server built with Go, Echo, and templ"),
		kong.UsageOnError(),
	)
	if err := ctx.Run(); err != nil {
		slog.Error("command failed", "command", ctx.Command(), "error", err)
		os.Exit(1)
	}
}
