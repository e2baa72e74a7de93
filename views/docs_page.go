package views

import (
	"context"
	"io"

	"github.com/a-h/templ"

	"github.com/eringen/docsite/layout"
	"github.com/eringen/docsite/nav"
)

// DocsPage is the default documentation-page renderer: document head, side
// navigation, breadcrumbs, edit link and the content slot.
type DocsPage struct {
	cfg SiteConfig
}

// NewDocsPage creates a DocsPage for the site.
func NewDocsPage(cfg SiteConfig) *DocsPage {
	if cfg.DocsPath == "" {
		cfg.DocsPath = "/docs"
	}
	return &DocsPage{cfg: cfg}
}

// Render implements layout.Renderer.
func (d *DocsPage) Render(page layout.Page) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		sn := page.Sidenav
		tree := nav.Build(nav.BuildOptions{
			Category:    sn.Category,
			CurrentPath: sn.CurrentPath,
			Data:        sn.NavigationData,
			Order:       sn.Order,
		})
		nodes := tree.Nodes
		if !sn.FilterDisabled {
			nodes = nav.Filter(nodes, filterTerm(sn.CurrentPath))
		}
		crumbs := Breadcrumbs(d.cfg, tree.Nodes)

		h := &htmlWriter{ctx: ctx, w: w}
		h.raw(`<!DOCTYPE html><html lang="en"><head><meta charset="utf-8"/>`)
		h.raw(`<meta name="viewport" content="width=device-width, initial-scale=1"/>`)
		h.raw(`<title>`)
		h.text(page.Head.Title)
		h.raw(`</title>`)
		d.meta(h, "name", "description", page.Head.Description)
		d.meta(h, "property", "og:title", page.Head.Title)
		d.meta(h, "property", "og:description", page.Head.Description)
		d.meta(h, "property", "og:site_name", page.Head.SiteName)
		d.meta(h, "property", "og:type", "article")
		if d.cfg.URL != "" {
			canonical := CanonicalURL(d.cfg, sn.CurrentPath)
			d.meta(h, "property", "og:url", canonical)
			h.raw(`<link rel="canonical"`)
			h.attr("href", canonical)
			h.raw(`/>`)
		}
		h.raw(`<link rel="stylesheet" href="/public/docs.css"/>`)
		h.raw(`<script type="application/ld+json">` + TechArticleJsonLD(d.cfg, page) + `</script>`)
		h.raw(`<script type="application/ld+json">` + BreadcrumbJsonLD(d.cfg, crumbs) + `</script>`)
		h.raw(`</head><body class="g-docs"`)
		h.attr("data-product", page.Product)
		h.raw(`><div class="g-docs-layout">`)

		h.raw(`<nav class="g-sidenav" aria-label="Documentation"`)
		h.attr("data-category", sn.Category)
		h.raw(`>`)
		if !sn.FilterDisabled {
			h.raw(`<form class="g-sidenav-filter" method="get"><input type="search" name="filter" placeholder="Filter"`)
			h.attr("value", filterTerm(sn.CurrentPath))
			h.raw(`/></form>`)
		}
		d.sidenav(h, sn.Link, nodes)
		h.raw(`</nav>`)

		h.raw(`<div class="g-docs-main"><nav class="g-breadcrumbs" aria-label="Breadcrumb"><ol>`)
		for i, c := range crumbs {
			h.raw(`<li>`)
			if c.Href != "" && i < len(crumbs)-1 {
				h.component(sn.Link(c.Href, Text(c.Title)))
			} else {
				h.text(c.Title)
			}
			h.raw(`</li>`)
		}
		h.raw(`</ol></nav>`)
		h.raw(`<div id="content" class="g-docs-content">`)
		h.component(page.Body)
		h.raw(`</div>`)
		if page.ResourceURL != "" {
			h.raw(`<a class="g-edit-link" rel="noopener noreferrer" target="_blank"`)
			h.attr("href", page.ResourceURL)
			h.raw(`>Edit this page on GitHub</a>`)
		}
		h.raw(`</div></div><script src="/public/search.js" defer></script></body></html>`)
		return h.err
	})
}

func (d *DocsPage) meta(h *htmlWriter, key, name, content string) {
	h.raw(`<meta`)
	h.attr(key, name)
	h.attr("content", content)
	h.raw(`/>`)
}

func (d *DocsPage) sidenav(h *htmlWriter, link layout.LinkFunc, nodes []*nav.Node) {
	if link == nil {
		link = layout.Anchor
	}
	h.raw(`<ul class="g-sidenav-list">`)
	for _, n := range nodes {
		switch {
		case n.Divider:
			h.raw(`<li class="g-sidenav-divider" role="separator"><hr/></li>`)
		case n.External:
			h.raw(`<li class="g-sidenav-link"><a rel="noopener noreferrer" target="_blank"`)
			h.attr("href", n.Href)
			h.raw(`>`)
			h.text(n.Title)
			h.raw(`</a></li>`)
		case n.IsCategory():
			h.raw(`<li`)
			h.attr("class", nodeClass("g-sidenav-category", n))
			h.raw(`><details`)
			if n.Open {
				h.raw(` open`)
			}
			h.raw(`><summary>`)
			if n.Href != "" {
				h.component(link(n.Href, Text(n.Title)))
			} else {
				h.text(n.Title)
			}
			h.raw(`</summary>`)
			d.sidenav(h, link, n.Children)
			h.raw(`</details></li>`)
		default:
			h.raw(`<li`)
			h.attr("class", nodeClass("g-sidenav-page", n))
			if n.Active {
				h.raw(` aria-current="page"`)
			}
			h.raw(`>`)
			h.component(link(n.Href, Text(n.Title)))
			h.raw(`</li>`)
		}
	}
	h.raw(`</ul>`)
}

func nodeClass(base string, n *nav.Node) string {
	if n.Active {
		base += " active"
	}
	if n.Open {
		base += " open"
	}
	return base
}

// ContentOnly renders just the content slot of a page. It serves HTMX
// partial requests that swap the page body without the chrome.
type ContentOnly struct{}

// Render implements layout.Renderer.
func (ContentOnly) Render(page layout.Page) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := &htmlWriter{ctx: ctx, w: w}
		h.raw(`<title>`)
		h.text(page.Head.Title)
		h.raw(`</title><div id="content" class="g-docs-content">`)
		h.component(page.Body)
		h.raw(`</div>`)
		return h.err
	})
}
