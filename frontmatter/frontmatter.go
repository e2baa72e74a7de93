// Package frontmatter splits YAML front matter from documentation sources and
// builds the aggregate listing of every page's metadata.
package frontmatter

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrMissingClosingDelimiter indicates the document opened a front matter
// block but never closed it.
var ErrMissingClosingDelimiter = errors.New("front matter start delimiter found but closing delimiter is missing")

// Meta is the front matter of one documentation page.
type Meta struct {
	PageTitle    string `yaml:"page_title"`
	SidebarTitle string `yaml:"sidebar_title"`
	Description  string `yaml:"description"`
	Layout       string `yaml:"layout"`

	// ResourcePath is relative to the pages root, e.g. "docs/agent/index.mdx".
	ResourcePath string `yaml:"-"`
}

// Document is a page source with its front matter parsed out.
type Document struct {
	Meta
	Body string
}

// Split separates a `---` delimited front matter block from the body.
// Documents without front matter return had=false and the full input as body.
func Split(content []byte) (front []byte, body []byte, had bool, err error) {
	content = bytes.TrimPrefix(content, []byte("\ufeff"))
	nl := []byte("\n")
	if i := bytes.IndexByte(content, '\n'); i > 0 && content[i-1] == '\r' {
		nl = []byte("\r\n")
	}

	open := append([]byte("---"), nl...)
	if !bytes.HasPrefix(content, open) {
		return nil, content, false, nil
	}
	start := len(open)
	if bytes.HasPrefix(content[start:], open) {
		return []byte{}, content[start+len(open):], true, nil
	}

	closing := append(append([]byte{}, nl...), open...)
	idx := bytes.Index(content[start:], closing)
	if idx < 0 {
		// A closing delimiter on the final line has no trailing newline.
		tail := append(append([]byte{}, nl...), "---"...)
		if bytes.HasSuffix(content, tail) {
			return content[start : len(content)-len(tail)+len(nl)], []byte{}, true, nil
		}
		return nil, nil, false, ErrMissingClosingDelimiter
	}
	end := start + idx + len(nl)
	return content[start:end], content[start+idx+len(closing):], true, nil
}

// Parse decodes raw front matter (without delimiters) into Meta.
func Parse(front []byte) (Meta, error) {
	var m Meta
	if len(bytes.TrimSpace(front)) == 0 {
		return m, nil
	}
	if err := yaml.Unmarshal(front, &m); err != nil {
		return Meta{}, err
	}
	m.PageTitle = strings.TrimSpace(m.PageTitle)
	m.SidebarTitle = strings.TrimSpace(m.SidebarTitle)
	m.Description = strings.TrimSpace(m.Description)
	m.Layout = strings.TrimSpace(m.Layout)
	return m, nil
}

// ParseDocument splits and parses a full page source.
func ParseDocument(resourcePath string, content []byte) (Document, error) {
	front, body, _, err := Split(content)
	if err != nil {
		return Document{}, fmt.Errorf("frontmatter: %s: %w", resourcePath, err)
	}
	meta, err := Parse(front)
	if err != nil {
		return Document{}, fmt.Errorf("frontmatter: %s: %w", resourcePath, err)
	}
	meta.ResourcePath = resourcePath
	return Document{Meta: meta, Body: string(body)}, nil
}

// IsSource reports whether name has a documentation source extension.
func IsSource(name string) bool {
	switch strings.ToLower(path.Ext(name)) {
	case ".md", ".mdx":
		return true
	}
	return false
}

// Scan walks root within fsys and parses every documentation source.
// Results are sorted by ResourcePath.
func Scan(fsys fs.FS, root string) ([]Document, error) {
	var docs []Document
	err := fs.WalkDir(fsys, root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if p != root && strings.HasPrefix(d.Name(), ".") {
				return fs.SkipDir
			}
			return nil
		}
		if !IsSource(d.Name()) {
			return nil
		}
		data, err := fs.ReadFile(fsys, p)
		if err != nil {
			return err
		}
		rel := p
		if root != "." {
			rel = strings.TrimPrefix(p, root+"/")
		}
		doc, err := ParseDocument(rel, data)
		if err != nil {
			return err
		}
		docs = append(docs, doc)
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Slice(docs, func(i, j int) bool {
		return docs[i].ResourcePath < docs[j].ResourcePath
	})
	return docs, nil
}

// Metas returns the aggregate front matter of docs.
func Metas(docs []Document) []Meta {
	out := make([]Meta, len(docs))
	for i, d := range docs {
		out[i] = d.Meta
	}
	return out
}
