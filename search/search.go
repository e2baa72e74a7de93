// Package search provides the search context wrapper and search bar for
// documentation pages. Queries run in the browser against a hosted index;
// nothing here indexes or searches content.
package search

import (
	"context"
	"io"

	"github.com/a-h/templ"
)

// Config identifies the hosted search index.
type Config struct {
	AppID       string
	SearchKey   string // public, search-only key
	IndexName   string
	Placeholder string
}

// Provider wraps page bodies in a search context and renders the bar.
type Provider struct {
	cfg Config
}

// NewProvider creates a Provider. An empty Placeholder defaults to
// "Search documentation".
func NewProvider(cfg Config) *Provider {
	if cfg.Placeholder == "" {
		cfg.Placeholder = "Search documentation"
	}
	return &Provider{cfg: cfg}
}

// Config returns the provider configuration.
func (p *Provider) Config() Config { return p.cfg }

// Enabled reports whether a hosted index is configured.
func (p *Provider) Enabled() bool {
	return p.cfg.AppID != "" && p.cfg.IndexName != ""
}

type configKey struct{}

// FromContext returns the configuration of the enclosing Provide call.
func FromContext(ctx context.Context) (Config, bool) {
	cfg, ok := ctx.Value(configKey{}).(Config)
	return cfg, ok
}

// Provide renders children inside the search context element.
func (p *Provider) Provide(children templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		open := `<div class="g-search" data-search-provider`
		if p.Enabled() {
			open += ` data-app-id="` + templ.EscapeString(p.cfg.AppID) + `"` +
				` data-search-key="` + templ.EscapeString(p.cfg.SearchKey) + `"` +
				` data-index="` + templ.EscapeString(p.cfg.IndexName) + `"`
		}
		if _, err := io.WriteString(w, open+">"); err != nil {
			return err
		}
		if err := children.Render(context.WithValue(ctx, configKey{}, p.cfg), w); err != nil {
			return err
		}
		_, err := io.WriteString(w, "</div>")
		return err
	})
}

// Bar renders the search input. Without a hosted index it still renders,
// disabled, so layouts stay stable.
func (p *Provider) Bar() templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		cfg := p.cfg
		if c, ok := FromContext(ctx); ok {
			cfg = c
		}
		disabled := ""
		if cfg.AppID == "" || cfg.IndexName == "" {
			disabled = " disabled"
		}
		_, err := io.WriteString(w, `<form class="g-search-bar" role="search">`+
			`<input type="search" name="q" autocomplete="off" aria-label="`+templ.EscapeString(cfg.Placeholder)+
			`" placeholder="`+templ.EscapeString(cfg.Placeholder)+`"`+disabled+`/>`+
			`<ul class="g-search-results" hidden></ul></form>`)
		return err
	})
}
