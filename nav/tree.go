package nav

import (
	"path"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/eringen/docsite/frontmatter"
)

// Node is one rendered entry of the side navigation.
type Node struct {
	Title    string
	Href     string // empty for a category without an index page
	Active   bool   // Href is the current page
	Open     bool   // category containing the current page
	Divider  bool
	External bool
	Children []*Node
}

// IsCategory reports whether the node has nested entries.
func (n *Node) IsCategory() bool { return len(n.Children) > 0 }

// Tree is the result of Build.
type Tree struct {
	Nodes []*Node
	// Missing lists order entries with no matching page, as resource paths
	// without extension.
	Missing []string
}

// BuildOptions are the inputs of Build.
type BuildOptions struct {
	Category    string
	CurrentPath string
	Data        []frontmatter.Meta
	Order       Order
}

// Build resolves the navigation order against the front matter aggregate
// and marks the entry matching CurrentPath.
func Build(opts BuildOptions) Tree {
	b := builder{
		pages:   indexPages(opts.Data),
		current: NormalizePath(opts.CurrentPath),
	}
	category := strings.Trim(opts.Category, "/")
	nodes := b.items(category, opts.Order)
	return Tree{Nodes: nodes, Missing: b.missing}
}

type builder struct {
	pages   map[string]frontmatter.Meta
	current string
	missing []string
}

func (b *builder) items(base string, items []Item) []*Node {
	nodes := make([]*Node, 0, len(items))
	for _, it := range items {
		switch {
		case it.Divider:
			nodes = append(nodes, &Node{Divider: true})
		case it.IsLink():
			external := !strings.HasPrefix(it.Href, "/")
			nodes = append(nodes, &Node{
				Title:    it.Title,
				Href:     it.Href,
				External: external,
				Active:   !external && NormalizePath(it.Href) == b.current,
			})
		case it.IsCategory():
			nodes = append(nodes, b.category(base, it))
		default:
			if n := b.page(base, it.Slug); n != nil {
				nodes = append(nodes, n)
			}
		}
	}
	return nodes
}

func (b *builder) category(base string, it Item) *Node {
	dir := path.Join(base, it.Category)
	n := &Node{Title: it.Name}
	if meta, ok := b.pages[dir+"/index"]; ok {
		n.Href = "/" + dir
		if n.Title == "" {
			n.Title = sidebarTitle(meta, it.Category)
		}
	}
	if n.Title == "" {
		n.Title = Prettify(it.Category)
	}
	n.Active = n.Href != "" && n.Href == b.current
	n.Children = b.items(dir, it.Content)
	n.Open = n.Active || strings.HasPrefix(b.current, "/"+dir+"/")
	return n
}

func (b *builder) page(base, slug string) *Node {
	slug = strings.Trim(slug, "/")
	p := path.Join(base, slug)
	meta, ok := b.pages[p]
	if !ok {
		meta, ok = b.pages[p+"/index"]
	}
	if !ok {
		b.missing = append(b.missing, p)
		return nil
	}
	href := "/" + p
	return &Node{
		Title:  sidebarTitle(meta, path.Base(slug)),
		Href:   href,
		Active: href == b.current,
	}
}

func indexPages(data []frontmatter.Meta) map[string]frontmatter.Meta {
	pages := make(map[string]frontmatter.Meta, len(data))
	for _, m := range data {
		key := strings.TrimSuffix(m.ResourcePath, path.Ext(m.ResourcePath))
		pages[strings.Trim(key, "/")] = m
	}
	return pages
}

func sidebarTitle(m frontmatter.Meta, slug string) string {
	if m.SidebarTitle != "" {
		return m.SidebarTitle
	}
	if m.PageTitle != "" {
		return m.PageTitle
	}
	return Prettify(slug)
}

// Prettify turns a slug like "service-mesh" into "Service Mesh".
func Prettify(slug string) string {
	// Casers keep state between calls and cannot be shared across goroutines.
	return cases.Title(language.English).String(strings.ReplaceAll(strings.TrimSpace(slug), "-", " "))
}

// NormalizePath strips the query, fragment and trailing slash from p.
func NormalizePath(p string) string {
	if i := strings.IndexAny(p, "?#"); i >= 0 {
		p = p[:i]
	}
	if len(p) > 1 {
		p = strings.TrimRight(p, "/")
	}
	return p
}

// Filter returns the entries whose title contains term (case-insensitive),
// keeping the categories that lead to them. Dividers are dropped while a
// term is set. The input tree is not modified.
func Filter(nodes []*Node, term string) []*Node {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return nodes
	}
	var out []*Node
	for _, n := range nodes {
		if n.Divider {
			continue
		}
		if strings.Contains(strings.ToLower(n.Title), term) {
			out = append(out, n)
			continue
		}
		if kids := Filter(n.Children, term); len(kids) > 0 {
			cp := *n
			cp.Children = kids
			cp.Open = true
			out = append(out, &cp)
		}
	}
	return out
}
