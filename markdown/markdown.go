// Package markdown renders documentation bodies to sanitized HTML and exposes
// the renderer to page components through a context provider.
package markdown

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"regexp"

	"github.com/a-h/templ"
	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	gmhtml "github.com/yuin/goldmark/renderer/html"
)

var (
	// -> info, => success, ~> warning, !> danger
	reAlert = regexp.MustCompile(`(?s)<p>([=\-~!])&gt; (.*?)</p>`)

	reAlertClass = regexp.MustCompile(`^alert alert-(success|info|warning|danger)$`)
	reLangClass  = regexp.MustCompile(`^language-[a-zA-Z0-9_+\-]+$`)
)

var alertKinds = map[string]string{
	"=": "success",
	"-": "info",
	"~": "warning",
	"!": "danger",
}

// Provider renders markdown for one product. Components below Wrap pick it
// up from the context.
type Provider struct {
	Product string

	md     goldmark.Markdown
	policy *bluemonday.Policy
}

// NewProvider creates a Provider tagging rendered content with product.
func NewProvider(product string) *Provider {
	md := goldmark.New(
		goldmark.WithExtensions(extension.GFM, extension.Typographer),
		goldmark.WithParserOptions(parser.WithAutoHeadingID()),
		// Raw HTML is allowed through goldmark and removed by the policy.
		goldmark.WithRendererOptions(gmhtml.WithUnsafe()),
	)
	return &Provider{Product: product, md: md, policy: newPolicy()}
}

func newPolicy() *bluemonday.Policy {
	p := bluemonday.UGCPolicy()
	p.AllowElements("div")
	p.AllowAttrs("id").OnElements("h1", "h2", "h3", "h4", "h5", "h6")
	p.AllowAttrs("class").Matching(reAlertClass).OnElements("div")
	p.AllowAttrs("role").Matching(regexp.MustCompile(`^alert$`)).OnElements("div")
	p.AllowAttrs("class").Matching(reLangClass).OnElements("code")
	p.AllowAttrs("loading").OnElements("img")
	return p
}

var defaultProvider = NewProvider("")

type providerKey struct{}

// FromContext returns the provider installed by Wrap, or a default one.
func FromContext(ctx context.Context) *Provider {
	if p, ok := ctx.Value(providerKey{}).(*Provider); ok && p != nil {
		return p
	}
	return defaultProvider
}

// Wrap renders children with p available to Markdown components.
func (p *Provider) Wrap(children templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		return children.Render(context.WithValue(ctx, providerKey{}, p), w)
	})
}

// Render converts md to sanitized HTML.
func (p *Provider) Render(md string) (string, error) {
	var buf bytes.Buffer
	if err := p.md.Convert([]byte(md), &buf); err != nil {
		return "", fmt.Errorf("markdown: convert: %w", err)
	}
	out := reAlert.ReplaceAllStringFunc(buf.String(), func(m string) string {
		match := reAlert.FindStringSubmatch(m)
		return `<div class="alert alert-` + alertKinds[match[1]] + `" role="alert"><p>` + match[2] + `</p></div>`
	})
	return p.policy.Sanitize(out), nil
}

// Markdown returns a templ.Component that renders content with the
// provider found in the render context.
func Markdown(content string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		p := FromContext(ctx)
		out, err := p.Render(content)
		if err != nil {
			return err
		}
		if _, err := io.WriteString(w, `<div class="g-content"`); err != nil {
			return err
		}
		if p.Product != "" {
			if _, err := io.WriteString(w, ` data-product="`+templ.EscapeString(p.Product)+`"`); err != nil {
				return err
			}
		}
		_, err = io.WriteString(w, ">"+out+"</div>")
		return err
	})
}

// RenderMarkdown writes the HTML representation of md to w using the
// default provider.
func RenderMarkdown(w io.Writer, md string) error {
	out, err := defaultProvider.Render(md)
	if err != nil {
		return err
	}
	_, err = io.WriteString(w, out)
	return err
}
