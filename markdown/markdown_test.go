package markdown

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/a-h/templ"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func render(t *testing.T, md string) string {
	t.Helper()
	out, err := NewProvider("consul").Render(md)
	require.NoError(t, err)
	return out
}

func TestRenderHeadingIDs(t *testing.T) {
	got := render(t, "# Service Mesh\n\n## Getting Started")
	assert.Contains(t, got, `<h1 id="service-mesh">Service Mesh</h1>`)
	assert.Contains(t, got, `<h2 id="getting-started">Getting Started</h2>`)
}

func TestRenderAlerts(t *testing.T) {
	tests := []struct {
		input string
		class string
	}{
		{"=> It worked.", "alert alert-success"},
		{"-> **Note:** Read this.", "alert alert-info"},
		{"~> Be careful.", "alert alert-warning"},
		{"!> Do not do this.", "alert alert-danger"},
	}
	for _, tt := range tests {
		got := render(t, tt.input)
		assert.Contains(t, got, `class="`+tt.class+`"`, tt.input)
		assert.Contains(t, got, `role="alert"`, tt.input)
		assert.NotContains(t, got, "&gt; ", tt.input)
	}

	got := render(t, "-> **Note:** Read this.")
	assert.Contains(t, got, "<strong>Note:</strong> Read this.")
}

func TestRenderLeavesPlainParagraphs(t *testing.T) {
	got := render(t, "x -> y")
	assert.NotContains(t, got, "alert")
	assert.Contains(t, got, "<p>")
}

func TestRenderSanitizes(t *testing.T) {
	got := render(t, "Hello <script>alert(1)</script>\n\n<div onclick=\"steal()\" class=\"evil\">x</div>\n\n[bad](javascript:alert(1))")
	assert.NotContains(t, got, "<script")
	assert.NotContains(t, got, "onclick")
	assert.NotContains(t, got, `class="evil"`)
	assert.NotContains(t, got, "javascript:")
}

func TestRenderCodeBlockWithLanguage(t *testing.T) {
	got := render(t, "```go\nfmt.Println(\"hi\")\n```")
	assert.Contains(t, got, `<code class="language-go">`)
	assert.Contains(t, got, "fmt.Println")
}

func TestRenderTable(t *testing.T) {
	got := render(t, "| Flag | Default |\n|---|---|\n| `-dev` | false |")
	assert.Contains(t, got, "<table>")
	assert.Contains(t, got, "<th>Flag</th>")
	assert.Contains(t, got, "<code>-dev</code>")
}

func TestMarkdownUsesProviderFromContext(t *testing.T) {
	p := NewProvider("consul")
	var buf bytes.Buffer
	require.NoError(t, p.Wrap(Markdown("Hello")).Render(context.Background(), &buf))
	got := buf.String()
	assert.True(t, strings.HasPrefix(got, `<div class="g-content" data-product="consul">`), got)
	assert.Contains(t, got, "<p>Hello</p>")
}

func TestMarkdownWithoutProvider(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Markdown("Hello").Render(context.Background(), &buf))
	assert.Equal(t, "<div class=\"g-content\"><p>Hello</p>\n</div>", buf.String())
}

func TestWrapPassesChildrenThrough(t *testing.T) {
	var buf bytes.Buffer
	child := templ.Raw("<section>unchanged</section>")
	require.NoError(t, NewProvider("consul").Wrap(child).Render(context.Background(), &buf))
	assert.Equal(t, "<section>unchanged</section>", buf.String())
}

func TestFromContextDefault(t *testing.T) {
	assert.NotNil(t, FromContext(context.Background()))
}

func TestRenderMarkdown(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, RenderMarkdown(&buf, "*emphasis*"))
	assert.Contains(t, buf.String(), "<em>emphasis</em>")
}
