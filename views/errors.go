package views

import (
	"context"
	"io"

	"github.com/a-h/templ"
)

// NotFound renders the styled 404 page.
func NotFound(cfg SiteConfig) templ.Component {
	return errorPage(cfg, "Page not found", "The page you are looking for does not exist or has moved.")
}

// ServerError renders the styled 500 page.
func ServerError(cfg SiteConfig) templ.Component {
	return errorPage(cfg, "Something went wrong", "The page could not be rendered. Please try again later.")
}

func errorPage(cfg SiteConfig, heading, message string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		docs := cfg.DocsPath
		if docs == "" {
			docs = "/docs"
		}
		h := &htmlWriter{ctx: ctx, w: w}
		h.raw(`<!DOCTYPE html><html lang="en"><head><meta charset="utf-8"/><title>`)
		h.text(heading + " | " + cfg.Name)
		h.raw(`</title><meta name="robots" content="noindex"/><link rel="stylesheet" href="/public/docs.css"/></head>`)
		h.raw(`<body class="g-docs g-error"><main><h1>`)
		h.text(heading)
		h.raw(`</h1><p>`)
		h.text(message)
		h.raw(`</p><p><a`)
		h.attr("href", docs)
		h.raw(`>Back to the documentation</a></p></main></body></html>`)
		return h.err
	})
}
