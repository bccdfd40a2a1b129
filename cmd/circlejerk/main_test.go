package main

import (
	"io"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/CTAG07/circlejerk/pkg/fixture"
	"github.com/CTAG07/circlejerk/pkg/pages"
)

var (
	shippedTemplates = filepath.Join("..", "..", "data", "templates")
	shippedStatic    = filepath.Join("..", "..", "data", "static")
	shippedFixture   = filepath.Join("..", "..", "data", "data.json")
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// testConfig returns defaults pointed at the shipped data dir and a temp output dir.
func testConfig(tb testing.TB) *Config {
	tb.Helper()
	cfg := DefaultConfig()
	cfg.Server.TemplateDir = shippedTemplates
	cfg.Server.StaticDir = shippedStatic
	cfg.Fixture.Path = shippedFixture
	cfg.Build.OutDir = filepath.Join(tb.TempDir(), "public")
	return cfg
}

// setupTestDeps opens the loader and page manager described by cfg.
func setupTestDeps(tb testing.TB, cfg *Config) (*fixture.Loader, *pages.Manager) {
	tb.Helper()
	loader, closeSource, err := openLoader(cfg.Fixture, discardLogger())
	if err != nil {
		tb.Fatalf("openLoader failed: %v", err)
	}
	tb.Cleanup(func() { _ = closeSource() })

	pm, err := pages.NewManager(discardLogger(), cfg.Server.TemplateDir)
	if err != nil {
		tb.Fatalf("NewManager failed: %v", err)
	}
	return loader, pm
}
