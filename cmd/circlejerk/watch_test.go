package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/CTAG07/circlejerk/pkg/pages"
)

// waitFor polls cond until it holds or the deadline passes.
func waitFor(t *testing.T, cond func() bool) bool {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return true
		}
		time.Sleep(50 * time.Millisecond)
	}
	return false
}

func TestWatcher(t *testing.T) {
	dir := t.TempDir()
	templateDir := filepath.Join(dir, "templates")
	if err := os.Mkdir(templateDir, 0755); err != nil {
		t.Fatalf("failed to create template dir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(templateDir, "feed.tmpl.html"), []byte(`feed`), 0644); err != nil {
		t.Fatalf("failed to write page: %v", err)
	}
	fixturePath := filepath.Join(dir, "data.json")
	if err := os.WriteFile(fixturePath, []byte(`{"characters": []}`), 0644); err != nil {
		t.Fatalf("failed to write fixture: %v", err)
	}

	cfg := testConfig(t)
	cfg.Server.TemplateDir = templateDir
	cfg.Fixture.Path = fixturePath
	loader, _ := setupTestDeps(t, cfg)
	pm, err := pages.NewManager(discardLogger(), templateDir)
	if err != nil {
		t.Fatalf("NewManager failed: %v", err)
	}

	w, err := NewWatcher(discardLogger(), loader, pm, cfg.Fixture)
	if err != nil {
		t.Fatalf("NewWatcher failed: %v", err)
	}
	t.Cleanup(func() { _ = w.Close() })
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	go w.Run(ctx)

	if _, err = loader.Load(ctx); err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if err = os.WriteFile(fixturePath, []byte(`{"characters": [{"id": "new"}]}`), 0644); err != nil {
		t.Fatalf("failed to rewrite fixture: %v", err)
	}
	if !waitFor(t, func() bool { _, ok := loader.Cached(); return !ok }) {
		t.Error("changing the fixture should invalidate the cache")
	}

	if err = os.WriteFile(filepath.Join(templateDir, "jobs.tmpl.html"), []byte(`jobs`), 0644); err != nil {
		t.Fatalf("failed to write new page: %v", err)
	}
	if !waitFor(t, func() bool { return pm.HasPage("jobs.tmpl.html") }) {
		t.Error("a new page should be picked up")
	}
}
