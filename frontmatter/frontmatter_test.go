package frontmatter

import (
	"errors"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplit(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		wantFront string
		wantBody  string
		wantHad   bool
	}{
		{"no front matter", "# Title\n\nHello\n", "", "# Title\n\nHello\n", false},
		{"yaml block", "---\npage_title: Agent\n---\n# Agent\n", "page_title: Agent\n", "# Agent\n", true},
		{"crlf", "---\r\npage_title: Agent\r\n---\r\nbody\r\n", "page_title: Agent\r\n", "body\r\n", true},
		{"empty block", "---\n---\nbody\n", "", "body\n", true},
		{"closing on last line", "---\npage_title: Agent\n---", "page_title: Agent\n", "", true},
		{"byte order mark", "\ufeff---\na: b\n---\nx", "a: b\n", "x", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			front, body, had, err := Split([]byte(tt.input))
			require.NoError(t, err)
			assert.Equal(t, tt.wantHad, had)
			assert.Equal(t, tt.wantFront, string(front))
			assert.Equal(t, tt.wantBody, string(body))
		})
	}
}

func TestSplitMissingClosingDelimiter(t *testing.T) {
	_, _, had, err := Split([]byte("---\npage_title: Agent\n# Agent\n"))
	require.Error(t, err)
	assert.False(t, had)
	assert.True(t, errors.Is(err, ErrMissingClosingDelimiter))
}

func TestParse(t *testing.T) {
	meta, err := Parse([]byte("page_title: ' Service Mesh '\nsidebar_title: Mesh\ndescription: Connect services\nlayout: docs\n"))
	require.NoError(t, err)
	assert.Equal(t, "Service Mesh", meta.PageTitle)
	assert.Equal(t, "Mesh", meta.SidebarTitle)
	assert.Equal(t, "Connect services", meta.Description)
	assert.Equal(t, "docs", meta.Layout)

	empty, err := Parse(nil)
	require.NoError(t, err)
	assert.Equal(t, Meta{}, empty)

	_, err = Parse([]byte("page_title: [unterminated"))
	require.Error(t, err)
}

func TestParseDocumentNamesFileOnError(t *testing.T) {
	_, err := ParseDocument("docs/broken.mdx", []byte("---\npage_title: x\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "docs/broken.mdx")
	assert.True(t, errors.Is(err, ErrMissingClosingDelimiter))
}

func TestScan(t *testing.T) {
	fsys := fstest.MapFS{
		"pages/docs/index.mdx":         {Data: []byte("---\npage_title: Documentation\n---\nWelcome\n")},
		"pages/docs/agent/index.mdx":   {Data: []byte("---\npage_title: Agent\nsidebar_title: Agent\n---\nAgents\n")},
		"pages/docs/agent/options.md":  {Data: []byte("---\npage_title: Options\n---\n")},
		"pages/docs/agent/diagram.png": {Data: []byte{0x89}},
		"pages/docs/.drafts/wip.mdx":   {Data: []byte("---\npage_title: Draft\n---\n")},
	}

	docs, err := Scan(fsys, "pages")
	require.NoError(t, err)
	require.Len(t, docs, 3)

	assert.Equal(t, "docs/agent/index.mdx", docs[0].ResourcePath)
	assert.Equal(t, "Agent", docs[0].PageTitle)
	assert.Equal(t, "Agents\n", docs[0].Body)
	assert.Equal(t, "docs/agent/options.md", docs[1].ResourcePath)
	assert.Equal(t, "docs/index.mdx", docs[2].ResourcePath)

	metas := Metas(docs)
	require.Len(t, metas, 3)
	assert.Equal(t, "Documentation", metas[2].PageTitle)
}

func TestScanPropagatesParseErrors(t *testing.T) {
	fsys := fstest.MapFS{
		"docs/bad.mdx": {Data: []byte("---\npage_title: x\n")},
	}
	_, err := Scan(fsys, ".")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "docs/bad.mdx")
}
