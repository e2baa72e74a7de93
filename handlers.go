package docsite

import (
	"crypto/subtle"
	"errors"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/eringen/docsite/layout"
	"github.com/eringen/docsite/markdown"
	"github.com/eringen/docsite/metrics"
	"github.com/eringen/docsite/views"
)

func (a *App) handleRoot(c echo.Context) error {
	return c.Redirect(http.StatusMovedPermanently, "/"+a.Config.Category)
}

func (a *App) handleDocs(c echo.Context) error {
	ctx := c.Request().Context()
	cat := a.Config.Category

	doc, err := a.Cache.Resolve(ctx, ResourceCandidates(cat, c.Param("*")))
	if errors.Is(err, ErrNotFound) {
		a.recorder.IncPageRender(cat, metrics.ResultNotFound)
		return RenderStatus(c, http.StatusNotFound, views.NotFound(a.viewConfig()))
	}
	if err != nil {
		a.recorder.IncPageRender(cat, metrics.ResultError)
		return err
	}
	// Warm the navigation data so SiteData reads from the cache.
	if _, err := a.Cache.Metas(ctx); err != nil {
		a.recorder.IncPageRender(cat, metrics.ResultError)
		return err
	}

	meta := layout.PageMeta{
		PageTitle:   doc.PageTitle,
		Description: doc.Description,
		SourcePath:  doc.ResourcePath,
	}
	route := layout.RouteFromRequest(c.Request())
	body := markdown.Markdown(doc.Body)

	l := a.Layout
	if c.Request().Header.Get("HX-Request") == "true" && c.QueryParam("partial") == "content" {
		l = a.Partial
	}
	if err := Render(c, l.Render(meta, route, body)); err != nil {
		a.recorder.IncPageRender(cat, metrics.ResultError)
		return err
	}
	a.recorder.IncPageRender(cat, metrics.ResultOK)
	return nil
}

type reindexResponse struct {
	Pages      int      `json:"pages"`
	Missing    []string `json:"missing"`
	DurationMS int64    `json:"duration_ms"`
}

// handleReindex lets a CI job or repository webhook refresh the page index
// after sources change. Failed authentications are rate-limited per IP.
func (a *App) handleReindex(c echo.Context) error {
	ip := c.RealIP()
	if !a.hookLimiter.Check(ip) {
		return c.JSON(http.StatusTooManyRequests, map[string]string{"error": "too many attempts"})
	}
	token := strings.TrimPrefix(c.Request().Header.Get(echo.HeaderAuthorization), "Bearer ")
	if subtle.ConstantTimeCompare([]byte(token), []byte(a.Config.ReindexToken)) != 1 {
		a.hookLimiter.Record(ip)
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "invalid token"})
	}

	if err := a.ReloadNav(); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, map[string]string{"error": err.Error()})
	}
	report, err := a.Index(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusUnprocessableEntity, map[string]string{"error": err.Error()})
	}
	missing := report.Missing
	if missing == nil {
		missing = []string{}
	}
	return c.JSON(http.StatusOK, reindexResponse{
		Pages:      report.Pages,
		Missing:    missing,
		DurationMS: report.Duration.Milliseconds(),
	})
}

func (a *App) handleSitemap(c echo.Context) error {
	docs, err := a.Cache.ListPages(c.Request().Context())
	if err != nil {
		return err
	}
	return a.renderSitemap(c, docs)
}

func (a *App) handleFavicon(c echo.Context) error {
	return c.File(filepath.Join(a.staticDir, "favicon.svg"))
}

// handleRobots serves the user's robots.txt when present and a permissive
// default pointing at the sitemap otherwise.
func (a *App) handleRobots(c echo.Context) error {
	p := filepath.Join(a.staticDir, "robots.txt")
	if _, err := os.Stat(p); err == nil {
		return c.File(p)
	}
	var b strings.Builder
	b.WriteString("User-agent: *\nAllow: /\n")
	b.WriteString("Sitemap: " + BuildURL(a.Config.URL, "sitemap.xml") + "\n")
	return c.String(http.StatusOK, b.String())
}

func (a *App) httpErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	var he *echo.HTTPError
	ok := errors.As(err, &he)
	if ok && he.Code == http.StatusNotFound {
		_ = RenderStatus(c, http.StatusNotFound, views.NotFound(a.viewConfig()))
		return
	}
	code := http.StatusInternalServerError
	if ok {
		code = he.Code
	}
	if code >= 500 {
		c.Logger().Errorf("server error: %v", err)
		_ = RenderStatus(c, code, views.ServerError(a.viewConfig()))
		return
	}
	a.Echo.DefaultHTTPErrorHandler(err, c)
}
