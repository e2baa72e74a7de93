// Package layout composes one documentation page: head metadata, side
// navigation configuration, edit link and body, handed to an injected
// documentation-page renderer.
//
// Layout holds no per-request state. Every call to Compose or Render is
// independent; the navigation order and front matter aggregate are read-only
// inputs supplied by a DataSource.
package layout

import (
	"context"
	"io"
	"net/http"

	"github.com/a-h/templ"

	"github.com/eringen/docsite/frontmatter"
	"github.com/eringen/docsite/nav"
)

// Defaults used when Config leaves a field empty.
const (
	DefaultProduct     = "consul"
	DefaultSiteName    = "Consul by HashiCorp"
	DefaultCategory    = "docs"
	DefaultEditBaseURL = "https://github.com/hashicorp/consul/blob/master/website/pages/"
)

// PageMeta is the metadata a page supplies to the layout.
type PageMeta struct {
	PageTitle   string
	Description string
	// SourcePath locates the page source below the pages root and is used
	// for the edit link.
	SourcePath string
}

// RouteContext carries the current navigation path.
type RouteContext struct {
	Path string
}

// RouteFromRequest resolves the route context of r: the path plus query, as
// the browser addressed it.
func RouteFromRequest(r *http.Request) RouteContext {
	return RouteContext{Path: r.URL.RequestURI()}
}

// LinkFunc renders a navigation link around children.
type LinkFunc func(href string, children templ.Component) templ.Component

// Head is the head metadata object given to the renderer.
type Head struct {
	Title       string
	Description string
	SiteName    string
}

// Sidenav is the side navigation configuration given to the renderer.
type Sidenav struct {
	Link           LinkFunc
	Category       string
	CurrentPath    string
	NavigationData []frontmatter.Meta
	FilterDisabled bool
	Order          nav.Order
}

// Page is the fully composed structure handed to the renderer.
type Page struct {
	Product     string
	Head        Head
	Sidenav     Sidenav
	ResourceURL string
	// Body is the search context wrapping the search bar and the page
	// content.
	Body templ.Component
}

// Renderer is the documentation-page renderer: it owns the page chrome and
// places Page.Body in its content slot.
type Renderer interface {
	Render(page Page) templ.Component
}

// SearchProvider supplies the search context and the search bar.
type SearchProvider interface {
	Provide(children templ.Component) templ.Component
	Bar() templ.Component
}

// ContentTransform enables rich content inside page bodies for everything it
// wraps.
type ContentTransform interface {
	Wrap(children templ.Component) templ.Component
}

// SiteData is the static site-wide input of every render.
type SiteData struct {
	Order nav.Order
	Pages []frontmatter.Meta
}

// DataSource returns the current site data.
type DataSource interface {
	SiteData() SiteData
}

// Static is a DataSource that never changes.
type Static SiteData

// SiteData implements DataSource.
func (s Static) SiteData() SiteData { return SiteData(s) }

// Config holds the site identity used in every page.
type Config struct {
	Product       string
	SiteName      string
	Category      string
	EditBaseURL   string
	FilterEnabled bool
	Link          LinkFunc
}

func (c *Config) setDefaults() {
	if c.Product == "" {
		c.Product = DefaultProduct
	}
	if c.SiteName == "" {
		c.SiteName = DefaultSiteName
	}
	if c.Category == "" {
		c.Category = DefaultCategory
	}
	if c.EditBaseURL == "" {
		c.EditBaseURL = DefaultEditBaseURL
	}
	if c.Link == nil {
		c.Link = Anchor
	}
}

// Layout is DocsLayout with its collaborators injected.
type Layout struct {
	cfg       Config
	data      DataSource
	renderer  Renderer
	search    SearchProvider
	transform ContentTransform
}

// New creates a Layout. search and transform may be nil; renderer and data
// may not.
func New(cfg Config, data DataSource, renderer Renderer, search SearchProvider, transform ContentTransform) *Layout {
	if renderer == nil {
		panic("layout: nil renderer")
	}
	if data == nil {
		panic("layout: nil data source")
	}
	cfg.setDefaults()
	return &Layout{
		cfg:       cfg,
		data:      data,
		renderer:  renderer,
		search:    search,
		transform: transform,
	}
}

// Config returns the effective configuration.
func (l *Layout) Config() Config { return l.cfg }

// Compose builds the page structure for meta at route with children as the
// page content. Missing metadata yields blank values.
func (l *Layout) Compose(meta PageMeta, route RouteContext, children templ.Component) Page {
	if children == nil {
		children = templ.NopComponent
	}
	site := l.data.SiteData()

	body := children
	if l.search != nil {
		body = l.search.Provide(join(l.search.Bar(), children))
	}

	return Page{
		Product: l.cfg.Product,
		Head: Head{
			Title:       Title(meta.PageTitle, l.cfg.SiteName),
			Description: meta.Description,
			SiteName:    l.cfg.SiteName,
		},
		Sidenav: Sidenav{
			Link:           l.cfg.Link,
			Category:       l.cfg.Category,
			CurrentPath:    route.Path,
			NavigationData: site.Pages,
			FilterDisabled: !l.cfg.FilterEnabled,
			Order:          site.Order,
		},
		ResourceURL: EditURL(l.cfg.EditBaseURL, meta.SourcePath),
		Body:        body,
	}
}

// Render composes the page and renders it through the renderer, inside the
// content transform.
func (l *Layout) Render(meta PageMeta, route RouteContext, children templ.Component) templ.Component {
	out := l.renderer.Render(l.Compose(meta, route, children))
	if l.transform != nil {
		out = l.transform.Wrap(out)
	}
	return out
}

// Title formats the head title of a page.
func Title(pageTitle, siteName string) string {
	return pageTitle + " | " + siteName
}

// EditURL returns the link to a page's source.
func EditURL(base, sourcePath string) string {
	return base + sourcePath
}

// Anchor is the default LinkFunc.
func Anchor(href string, children templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := io.WriteString(w, `<a href="`+templ.EscapeString(href)+`">`); err != nil {
			return err
		}
		if err := children.Render(ctx, w); err != nil {
			return err
		}
		_, err := io.WriteString(w, "</a>")
		return err
	})
}

func join(components ...templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		for _, c := range components {
			if err := c.Render(ctx, w); err != nil {
				return err
			}
		}
		return nil
	})
}
