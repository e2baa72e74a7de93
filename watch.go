package docsite

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
)

// watchDebounce collapses bursts of file events (editor saves, git checkouts)
// into one reindex.
const watchDebounce = 300 * time.Millisecond

// Watch reindexes pages and reloads navigation whenever a source below the
// pages directory or the navigation file changes. It returns a stop function;
// cancelling ctx stops the watcher as well.
func (a *App) Watch(ctx context.Context) (stop func(), err error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("fsnotify: %w", err)
	}
	if err := addDirsRecursive(w, a.Config.PagesDir); err != nil {
		_ = w.Close()
		return nil, err
	}
	// Editors replace files by rename, so watch the directory holding the
	// navigation file rather than the file itself.
	navDir := filepath.Dir(a.Config.NavPath)
	if err := w.Add(navDir); err != nil {
		a.logger.Warn("watch add failed", "dir", navDir, "error", err)
	}

	ctx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	go func() {
		defer close(done)
		a.watchLoop(ctx, w)
	}()

	a.logger.Info("watching for changes", "pages", a.Config.PagesDir, "nav", a.Config.NavPath)
	return func() {
		cancel()
		<-done
		_ = w.Close()
	}, nil
}

func (a *App) watchLoop(ctx context.Context, w *fsnotify.Watcher) {
	timer := time.NewTimer(watchDebounce)
	if !timer.Stop() {
		<-timer.C
	}
	navChanged := false

	for {
		select {
		case <-ctx.Done():
			timer.Stop()
			return
		case ev, ok := <-w.Events:
			if !ok {
				return
			}
			if ev.Has(fsnotify.Create) {
				if fi, err := os.Stat(ev.Name); err == nil && fi.IsDir() {
					_ = addDirsRecursive(w, ev.Name)
				}
			}
			isNav := a.isNavFile(ev.Name)
			if !isNav && shouldIgnoreEvent(ev.Name) {
				continue
			}
			navChanged = navChanged || isNav
			timer.Reset(watchDebounce)
		case err, ok := <-w.Errors:
			if !ok {
				return
			}
			a.logger.Warn("watcher error", "error", err)
		case <-timer.C:
			a.refresh(ctx, navChanged)
			navChanged = false
		}
	}
}

// refresh reloads navigation when it changed and reindexes the pages.
func (a *App) refresh(ctx context.Context, navChanged bool) {
	if navChanged {
		if err := a.ReloadNav(); err != nil {
			a.logger.Error("reload navigation failed", "path", a.Config.NavPath, "error", err)
		}
	}
	// Index logs its own failures.
	_, _ = a.Index(ctx)
}

func (a *App) isNavFile(name string) bool {
	return filepath.Clean(name) == filepath.Clean(a.Config.NavPath)
}

func addDirsRecursive(w *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != root && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			if err := w.Add(path); err != nil {
				return fmt.Errorf("watch %s: %w", path, err)
			}
		}
		return nil
	})
}

// shouldIgnoreEvent reports whether a file event cannot affect any page:
// hidden files, editor swap files and non-source files.
func shouldIgnoreEvent(path string) bool {
	base := filepath.Base(path)
	if strings.HasPrefix(base, ".") || strings.HasSuffix(base, "~") ||
		strings.HasSuffix(base, ".swp") || strings.HasSuffix(base, ".swx") {
		return true
	}
	// Removed or renamed directories carry no extension; let them through.
	if filepath.Ext(base) == "" {
		return false
	}
	ext := strings.ToLower(filepath.Ext(base))
	return ext != ".md" && ext != ".mdx"
}
