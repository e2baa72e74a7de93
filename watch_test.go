package docsite

import (
	"context"
	"net/http"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShouldIgnoreEvent(t *testing.T) {
	tests := []struct {
		path string
		want bool
	}{
		{"pages/docs/agent.mdx", false},
		{"pages/docs/agent.MD", false},
		{"pages/docs/newdir", false},
		{"pages/docs/.agent.mdx.swp", true},
		{"pages/docs/agent.mdx~", true},
		{"pages/docs/image.png", true},
		{"pages/.DS_Store", true},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, shouldIgnoreEvent(tt.path), tt.path)
	}
}

func TestWatchReindexes(t *testing.T) {
	a := newTestApp(t, SiteConfig{})
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	stop, err := a.Watch(ctx)
	require.NoError(t, err)
	defer stop()

	writeFile(t, filepath.Join(a.Config.PagesDir, "docs", "unknown.mdx"), "---\npage_title: Unknown\n---\n")
	require.Eventually(t, func() bool {
		return get(a, "/docs/unknown").Code == http.StatusOK
	}, 5*time.Second, 50*time.Millisecond)

	writeFile(t, a.Config.NavPath, "- unknown\n")
	require.Eventually(t, func() bool {
		return len(a.Order()) == 1
	}, 5*time.Second, 50*time.Millisecond)
}

func TestWatchMissingPagesDir(t *testing.T) {
	a := New(SiteConfig{PagesDir: filepath.Join(t.TempDir(), "none")})
	_, err := a.Watch(context.Background())
	assert.Error(t, err)
}
