package docsite

import (
	"net/url"
	"path"
	"strings"
)

// sourceExts lists the accepted page source extensions in resolution order.
var sourceExts = []string{".mdx", ".md"}

// BuildURL joins a base URL with path segments.
func BuildURL(base string, pathSegments ...string) string {
	u, err := url.Parse(base)
	if err != nil {
		return base
	}
	u.Path = path.Join(u.Path, path.Join(pathSegments...))
	if u.Path == "." {
		u.Path = ""
	}
	return u.String()
}

// ResourceCandidates returns the resource paths that may hold the page at
// rest below the category route, most specific first. rest is the URL path
// after "/<category>/". Paths escaping the category yield no candidates.
func ResourceCandidates(category, rest string) []string {
	rest = strings.Trim(rest, "/")
	for _, seg := range strings.Split(rest, "/") {
		if seg == ".." || seg == "." {
			return nil
		}
	}
	if rest == "" {
		return []string{category + "/index.mdx", category + "/index.md"}
	}
	base := category + "/" + rest
	out := make([]string, 0, 2*len(sourceExts))
	for _, ext := range sourceExts {
		out = append(out, base+ext)
	}
	for _, ext := range sourceExts {
		out = append(out, base+"/index"+ext)
	}
	return out
}

// RoutePath returns the URL path serving a resource path, the inverse of
// ResourceCandidates: "docs/agent/index.mdx" is served at "/docs/agent".
func RoutePath(resourcePath string) string {
	p := resourcePath
	for _, ext := range sourceExts {
		if strings.HasSuffix(p, ext) {
			p = strings.TrimSuffix(p, ext)
			break
		}
	}
	p = strings.TrimSuffix(p, "/index")
	if p == "index" {
		p = ""
	}
	return "/" + p
}
