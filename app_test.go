package docsite

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

const testNav = `
- category: agent
  content:
    - options
- "---"
- title: Community
  href: https://discuss.hashicorp.com
- unknown
`

var testPages = map[string]string{
	"docs/index.mdx":         "---\npage_title: Documentation\ndescription: Consul docs\n---\n# Consul\n",
	"docs/agent/index.mdx":   "---\npage_title: Agent\n---\n# Agent\n\n-> Agents run on every node.\n",
	"docs/agent/options.mdx": "---\npage_title: Configuration Options\nsidebar_title: Options\ndescription: Agent flags\n---\n# Options\n",
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

// newTestApp builds an App over a temporary pages tree and sets it up
// without starting the listener.
func newTestApp(t *testing.T, cfg SiteConfig, opts ...Option) *App {
	t.Helper()
	dir := t.TempDir()
	for rp, content := range testPages {
		writeFile(t, filepath.Join(dir, "pages", rp), content)
	}
	writeFile(t, filepath.Join(dir, "data", "docs-navigation.yaml"), testNav)

	cfg.PagesDir = filepath.Join(dir, "pages")
	cfg.NavPath = filepath.Join(dir, "data", "docs-navigation.yaml")
	cfg.DatabasePath = filepath.Join(dir, "data", "pages.db")
	if cfg.URL == "" {
		cfg.URL = "https://www.consul.io"
	}

	opts = append([]Option{
		WithStaticDir(filepath.Join(dir, "public")),
		WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
	}, opts...)
	a := New(cfg, opts...)
	a.Echo.Logger.SetOutput(io.Discard)
	require.NoError(t, a.Setup(context.Background()))
	t.Cleanup(func() { a.Close() })
	return a
}

func doRequest(a *App, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	a.Echo.ServeHTTP(rec, req)
	return rec
}

func get(a *App, target string) *httptest.ResponseRecorder {
	return doRequest(a, httptest.NewRequest(http.MethodGet, target, nil))
}
