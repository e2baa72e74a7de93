package views

import (
	"context"
	"encoding/json"
	"io"
	"net/url"
	"path"
	"strings"

	"github.com/a-h/templ"

	"github.com/eringen/docsite/layout"
	"github.com/eringen/docsite/nav"
)

// buildURL joins path segments onto a base URL.
func buildURL(base string, pathSegments ...string) string {
	u, err := url.Parse(base)
	if err != nil {
		return base
	}
	u.Path = path.Join(u.Path, path.Join(pathSegments...))
	return u.String()
}

// CanonicalURL returns the absolute URL of currentPath on the site, without
// query or fragment.
func CanonicalURL(cfg SiteConfig, currentPath string) string {
	p := nav.NormalizePath(currentPath)
	if p == "" {
		return buildURL(cfg.URL)
	}
	return buildURL(cfg.URL, p)
}

// Breadcrumbs returns the chain of navigation entries leading to the active
// node, starting with the documentation root.
func Breadcrumbs(cfg SiteConfig, nodes []*nav.Node) []Crumb {
	crumbs := []Crumb{{Title: "Docs", Href: cfg.DocsPath}}
	var walk func([]*nav.Node, []Crumb) []Crumb
	walk = func(ns []*nav.Node, trail []Crumb) []Crumb {
		for _, n := range ns {
			if n.Divider || n.External {
				continue
			}
			next := append(append([]Crumb{}, trail...), Crumb{Title: n.Title, Href: n.Href})
			if n.Active {
				return next
			}
			if found := walk(n.Children, next); found != nil {
				return found
			}
		}
		return nil
	}
	if found := walk(nodes, nil); found != nil {
		crumbs = append(crumbs, found...)
	}
	return crumbs
}

// filterTerm extracts the "filter" query parameter from currentPath.
func filterTerm(currentPath string) string {
	i := strings.IndexByte(currentPath, '?')
	if i < 0 {
		return ""
	}
	q, err := url.ParseQuery(currentPath[i+1:])
	if err != nil {
		return ""
	}
	return q.Get("filter")
}

// TechArticleJsonLD produces a Schema.org TechArticle JSON-LD block for a
// documentation page.
func TechArticleJsonLD(cfg SiteConfig, page layout.Page) string {
	data := map[string]interface{}{
		"@context": "https://schema.org",
		"@type":    "TechArticle",
		"headline": page.Head.Title,
		"url":      CanonicalURL(cfg, page.Sidenav.CurrentPath),
		"publisher": map[string]string{
			"@type": "Organization",
			"name":  page.Head.SiteName,
		},
	}
	if page.Head.Description != "" {
		data["description"] = page.Head.Description
	}
	b, err := json.Marshal(data)
	if err != nil {
		return "{}"
	}
	return string(b)
}

// BreadcrumbJsonLD produces a Schema.org BreadcrumbList for crumbs that
// have a link.
func BreadcrumbJsonLD(cfg SiteConfig, crumbs []Crumb) string {
	items := make([]map[string]interface{}, 0, len(crumbs))
	for _, c := range crumbs {
		if c.Href == "" {
			continue
		}
		items = append(items, map[string]interface{}{
			"@type":    "ListItem",
			"position": len(items) + 1,
			"name":     c.Title,
			"item":     buildURL(cfg.URL, c.Href),
		})
	}
	b, err := json.Marshal(map[string]interface{}{
		"@context":        "https://schema.org",
		"@type":           "BreadcrumbList",
		"itemListElement": items,
	})
	if err != nil {
		return "{}"
	}
	return string(b)
}

// Text renders s escaped.
func Text(s string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := io.WriteString(w, templ.EscapeString(s))
		return err
	})
}

// htmlWriter accumulates the first write error so templates read top to
// bottom.
type htmlWriter struct {
	ctx context.Context
	w   io.Writer
	err error
}

func (h *htmlWriter) raw(s string) {
	if h.err != nil {
		return
	}
	_, h.err = io.WriteString(h.w, s)
}

func (h *htmlWriter) text(s string) {
	h.raw(templ.EscapeString(s))
}

func (h *htmlWriter) attr(name, value string) {
	h.raw(" " + name + `="` + templ.EscapeString(value) + `"`)
}

func (h *htmlWriter) component(c templ.Component) {
	if h.err != nil || c == nil {
		return
	}
	h.err = c.Render(h.ctx, h.w)
}
