package docsite

import (
	"encoding/xml"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/eringen/docsite/frontmatter"
)

type sitemapURLSet struct {
	XMLName xml.Name     `xml:"urlset"`
	XMLNS   string       `xml:"xmlns,attr"`
	URLs    []sitemapURL `xml:"url"`
}

type sitemapURL struct {
	Loc string `xml:"loc"`
}

// sitemapURLs lists the absolute URLs of every page served under the
// category route.
func sitemapURLs(base, category string, docs []frontmatter.Document) []sitemapURL {
	var urls []sitemapURL
	for _, d := range docs {
		if !strings.HasPrefix(d.ResourcePath, category+"/") {
			continue
		}
		urls = append(urls, sitemapURL{Loc: BuildURL(base, RoutePath(d.ResourcePath))})
	}
	return urls
}

func (a *App) renderSitemap(c echo.Context, docs []frontmatter.Document) error {
	sitemap := sitemapURLSet{
		XMLNS: "http://www.sitemaps.org/schemas/sitemap/0.9",
		URLs:  sitemapURLs(a.Config.URL, a.Config.Category, docs),
	}
	c.Response().Header().Set(echo.HeaderContentType, "application/xml; charset=utf-8")
	c.Response().WriteHeader(http.StatusOK)
	c.Response().Write([]byte(xml.Header))
	return xml.NewEncoder(c.Response()).Encode(sitemap)
}
