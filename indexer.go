package docsite

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/eringen/docsite/frontmatter"
	"github.com/eringen/docsite/nav"
)

// Index scans the pages directory, replaces the stored page set and
// invalidates the cache. Navigation entries that resolve to no page are
// reported, not treated as errors.
func (a *App) Index(ctx context.Context) (IndexReport, error) {
	start := time.Now()
	report, err := a.index(ctx)
	report.Duration = time.Since(start)
	a.recorder.ObserveIndex(report.Duration, report.Pages, err)
	if err != nil {
		a.logger.Error("index failed", "dir", a.Config.PagesDir, "error", err)
		return report, err
	}
	a.logger.Info("indexed pages",
		"dir", a.Config.PagesDir,
		"pages", report.Pages,
		"missing", len(report.Missing),
		"duration", report.Duration)
	for _, m := range report.Missing {
		a.logger.Warn("navigation entry has no page", "entry", m)
	}
	return report, nil
}

func (a *App) index(ctx context.Context) (IndexReport, error) {
	docs, err := frontmatter.Scan(os.DirFS(a.Config.PagesDir), ".")
	if err != nil {
		return IndexReport{}, fmt.Errorf("docsite: scan %s: %w", a.Config.PagesDir, err)
	}
	if err := a.Store.ReplacePages(ctx, docs); err != nil {
		return IndexReport{}, fmt.Errorf("docsite: store pages: %w", err)
	}
	a.Cache.Invalidate()

	tree := nav.Build(nav.BuildOptions{
		Category: a.Config.Category,
		Data:     frontmatter.Metas(docs),
		Order:    a.Order(),
	})
	return IndexReport{Pages: len(docs), Missing: tree.Missing}, nil
}
