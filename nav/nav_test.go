package nav

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eringen/docsite/frontmatter"
)

const sampleOrder = `
- category: intro
  content:
    - getting-started
- agent
- category: connect
  name: Service Mesh
  content:
    - proxies
    - category: native
      content:
        - go
- "-----"
- title: Community
  href: https://discuss.hashicorp.com
- title: API
  href: /api
- unknown-page
`

func sampleData() []frontmatter.Meta {
	return []frontmatter.Meta{
		{PageTitle: "Introduction", ResourcePath: "docs/intro/index.mdx"},
		{PageTitle: "Getting Started with Consul", SidebarTitle: "Getting Started", ResourcePath: "docs/intro/getting-started.mdx"},
		{PageTitle: "Agent", ResourcePath: "docs/agent/index.mdx"},
		{PageTitle: "Service Mesh", ResourcePath: "docs/connect/index.mdx"},
		{PageTitle: "Proxies", ResourcePath: "docs/connect/proxies.md"},
		{ResourcePath: "docs/connect/native/go.mdx"},
	}
}

func TestParseOrder(t *testing.T) {
	order, err := ParseOrder([]byte(sampleOrder))
	require.NoError(t, err)
	require.Len(t, order, 7)

	assert.True(t, order[0].IsCategory())
	assert.Equal(t, "intro", order[0].Category)
	assert.Equal(t, []Item{{Slug: "getting-started"}}, order[0].Content)
	assert.Equal(t, "agent", order[1].Slug)
	assert.Equal(t, "Service Mesh", order[2].Name)
	assert.True(t, order[2].Content[1].IsCategory())
	assert.True(t, order[3].Divider)
	assert.True(t, order[4].IsLink())
	assert.Equal(t, "Community", order[4].Title)
}

func TestParseOrderRejectsInvalidEntries(t *testing.T) {
	tests := []string{
		"- {}",
		"- title: x\n  href: /x\n  category: y",
		"- href: /x",
		"- [nested, list]",
	}
	for _, input := range tests {
		_, err := ParseOrder([]byte(input))
		assert.Error(t, err, "input %q", input)
	}
}

func TestLoadOrder(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "docs-navigation.yaml")
	require.NoError(t, os.WriteFile(p, []byte(sampleOrder), 0o644))

	order, err := LoadOrder(p)
	require.NoError(t, err)
	assert.Len(t, order, 7)

	_, err = LoadOrder(filepath.Join(dir, "missing.yaml"))
	require.Error(t, err)
}

func TestBuild(t *testing.T) {
	order, err := ParseOrder([]byte(sampleOrder))
	require.NoError(t, err)

	tree := Build(BuildOptions{
		Category:    "docs",
		CurrentPath: "/docs/connect/native/go/",
		Data:        sampleData(),
		Order:       order,
	})

	assert.Equal(t, []string{"docs/unknown-page"}, tree.Missing)
	require.Len(t, tree.Nodes, 6)

	intro := tree.Nodes[0]
	assert.Equal(t, "Introduction", intro.Title)
	assert.Equal(t, "/docs/intro", intro.Href)
	assert.False(t, intro.Open)
	require.Len(t, intro.Children, 1)
	assert.Equal(t, "Getting Started", intro.Children[0].Title)
	assert.Equal(t, "/docs/intro/getting-started", intro.Children[0].Href)

	agent := tree.Nodes[1]
	assert.Equal(t, "Agent", agent.Title)
	assert.Equal(t, "/docs/agent", agent.Href)

	connect := tree.Nodes[2]
	assert.Equal(t, "Service Mesh", connect.Title)
	assert.True(t, connect.Open)
	native := connect.Children[1]
	assert.Equal(t, "Native", native.Title)
	assert.Empty(t, native.Href)
	assert.True(t, native.Open)
	goPage := native.Children[0]
	assert.Equal(t, "Go", goPage.Title)
	assert.True(t, goPage.Active)

	assert.True(t, tree.Nodes[3].Divider)
	assert.True(t, tree.Nodes[4].External)
	assert.False(t, tree.Nodes[5].External)
	assert.Equal(t, "/api", tree.Nodes[5].Href)
}

func TestBuildActiveCategoryIndex(t *testing.T) {
	order, err := ParseOrder([]byte(sampleOrder))
	require.NoError(t, err)

	tree := Build(BuildOptions{Category: "docs", CurrentPath: "/docs/intro", Data: sampleData(), Order: order})
	assert.True(t, tree.Nodes[0].Active)
	assert.True(t, tree.Nodes[0].Open)
	assert.False(t, tree.Nodes[0].Children[0].Active)
}

func TestBuildEmptyCurrentPath(t *testing.T) {
	order, err := ParseOrder([]byte(sampleOrder))
	require.NoError(t, err)

	tree := Build(BuildOptions{Category: "docs", Data: sampleData(), Order: order})
	for _, n := range tree.Nodes {
		assert.False(t, n.Active, n.Title)
		assert.False(t, n.Open, n.Title)
	}
}

func TestFilter(t *testing.T) {
	order, err := ParseOrder([]byte(sampleOrder))
	require.NoError(t, err)
	tree := Build(BuildOptions{Category: "docs", Data: sampleData(), Order: order})

	got := Filter(tree.Nodes, "GO")
	require.Len(t, got, 1)
	assert.Equal(t, "Service Mesh", got[0].Title)
	assert.True(t, got[0].Open)
	require.Len(t, got[0].Children, 1)
	assert.Equal(t, "Native", got[0].Children[0].Title)

	assert.False(t, tree.Nodes[2].Open, "filter must not mutate the input tree")
	assert.Len(t, tree.Nodes[2].Children, 2)

	assert.Equal(t, tree.Nodes, Filter(tree.Nodes, "  "))
}

func TestNormalizePath(t *testing.T) {
	tests := map[string]string{
		"":                 "",
		"/":                "/",
		"/docs/":           "/docs",
		"/docs/agent?x=1":  "/docs/agent",
		"/docs/agent#anch": "/docs/agent",
	}
	for in, want := range tests {
		assert.Equal(t, want, NormalizePath(in), in)
	}
}

func TestPrettify(t *testing.T) {
	assert.Equal(t, "Service Mesh", Prettify("service-mesh"))
	assert.Equal(t, "Go", Prettify("go"))
}
