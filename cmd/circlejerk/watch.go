package main

import (
	"context"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/CTAG07/circlejerk/pkg/fixture"
	"github.com/CTAG07/circlejerk/pkg/pages"
	"github.com/fsnotify/fsnotify"
)

// Watcher reloads templates and invalidates the fixture cache when their files
// change on disk. Bursts of events are coalesced over one debounce interval.
type Watcher struct {
	watcher      *fsnotify.Watcher
	logger       *slog.Logger
	loader       *fixture.Loader
	pm           *pages.Manager
	templateDir  string
	fixtureFiles map[string]struct{}
	debounce     time.Duration
}

// NewWatcher watches the template dir and, for file sources, the fixture files.
func NewWatcher(logger *slog.Logger, loader *fixture.Loader, pm *pages.Manager, fixtureCfg *fixture.Config) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	w := &Watcher{
		watcher:      fw,
		logger:       logger,
		loader:       loader,
		pm:           pm,
		templateDir:  filepath.Clean(pm.TemplateDir()),
		fixtureFiles: make(map[string]struct{}),
		debounce:     200 * time.Millisecond,
	}

	if err = fw.Add(w.templateDir); err != nil {
		_ = fw.Close()
		return nil, err
	}

	if fixtureCfg.Source == fixture.SourceFile || fixtureCfg.Source == "" {
		// Watch the parent dirs: editors usually replace files instead of writing in place.
		dirs := make(map[string]struct{})
		for _, path := range []string{fixtureCfg.Path, fixtureCfg.PostsPath} {
			if path == "" {
				continue
			}
			clean := filepath.Clean(path)
			w.fixtureFiles[clean] = struct{}{}
			dirs[filepath.Dir(clean)] = struct{}{}
		}
		for dir := range dirs {
			if dir == w.templateDir {
				continue
			}
			if err = fw.Add(dir); err != nil {
				logger.Warn("Failed to watch fixture dir", "dir", dir, "error", err)
			}
		}
	}

	return w, nil
}

// Run processes events until ctx is done.
func (w *Watcher) Run(ctx context.Context) {
	ticker := time.NewTicker(w.debounce)
	defer ticker.Stop()

	var reloadPages, reloadFixture bool
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if event.Has(fsnotify.Chmod) {
				continue
			}
			path := filepath.Clean(event.Name)
			if _, ok := w.fixtureFiles[path]; ok {
				reloadFixture = true
			} else if filepath.Dir(path) == w.templateDir && strings.HasSuffix(path, ".html") {
				reloadPages = true
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Error("File watcher error", "error", err)
		case <-ticker.C:
			if reloadFixture {
				w.loader.Invalidate()
				w.logger.Info("Fixture changed on disk, cache invalidated")
				reloadFixture = false
			}
			if reloadPages {
				if err := w.pm.Refresh(); err != nil {
					w.logger.Error("Failed to reload templates after change", "error", err)
				}
				reloadPages = false
			}
		}
	}
}

// Close stops watching.
func (w *Watcher) Close() error {
	return w.watcher.Close()
}
