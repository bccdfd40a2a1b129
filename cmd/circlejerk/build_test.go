package main

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/CTAG07/circlejerk/pkg/fixture"
	"github.com/CTAG07/circlejerk/pkg/render"
)

func TestBuilder_Build(t *testing.T) {
	cfg := testConfig(t)
	loader, pm := setupTestDeps(t, cfg)

	n, err := NewBuilder(cfg, discardLogger(), loader, pm).Build(context.Background())
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	out := cfg.Build.OutDir
	want := []string{
		"index.html", "feed.html", "profiles.html", "articles.html", "jobs.html",
		"profile-chad.html", "profile-priya.html",
		"article-a1.html", "article-a2.html",
		filepath.Join("static", "circlejerk.css"),
	}
	for _, file := range want {
		if _, err := os.Stat(filepath.Join(out, file)); err != nil {
			t.Errorf("expected %s to be written: %v", file, err)
		}
	}
	// 5 plain pages, 5 profiles, 2 articles and the stylesheet.
	if n != 13 {
		t.Errorf("Build wrote %d files, want 13", n)
	}
	for _, unwanted := range []string{"profile.html", "article.html", "article-p1.html"} {
		if _, err := os.Stat(filepath.Join(out, unwanted)); err == nil {
			t.Errorf("%s should not be written", unwanted)
		}
	}

	feed, err := os.ReadFile(filepath.Join(out, "feed.html"))
	if err != nil {
		t.Fatalf("failed to read feed: %v", err)
	}
	if !strings.Contains(string(feed), `href="profile-chad.html"`) {
		t.Error("static pages should use static links")
	}
	if strings.Contains(string(feed), "profile.html?id=") {
		t.Error("static pages should not use query links")
	}

	profile, err := os.ReadFile(filepath.Join(out, "profile-kyle.html"))
	if err != nil {
		t.Fatalf("failed to read profile: %v", err)
	}
	if !strings.Contains(string(profile), "Kyle Hustle") || strings.Contains(string(profile), "Profile not found.") {
		t.Error("each profile file should render its own character")
	}
}

func TestBuilder_LoadFailure(t *testing.T) {
	cfg := testConfig(t)
	cfg.Fixture.Path = filepath.Join(t.TempDir(), "missing.json")
	loader, pm := setupTestDeps(t, cfg)

	_, err := NewBuilder(cfg, discardLogger(), loader, pm).Build(context.Background())
	if !errors.Is(err, fixture.ErrLoad) || !isLoadError(err) {
		t.Fatalf("Build error = %v, want ErrLoad", err)
	}

	index, err := os.ReadFile(filepath.Join(cfg.Build.OutDir, "index.html"))
	if err != nil {
		t.Fatalf("the error page should be written as index.html: %v", err)
	}
	if string(index) != string(render.LoadErrorPage()) {
		t.Error("index.html should hold the load error page")
	}
}

func TestSafeFileID(t *testing.T) {
	for id, want := range map[string]bool{"chad": true, "a-1": true, "": false, "..": false, "a/b": false, `a\b`: false} {
		if got := safeFileID(id); got != want {
			t.Errorf("safeFileID(%q) = %v, want %v", id, got, want)
		}
	}
}

func BenchmarkBuilder_Build(b *testing.B) {
	cfg := testConfig(b)
	cfg.Build.CopyStatic = false
	loader, pm := setupTestDeps(b, cfg)
	builder := NewBuilder(cfg, discardLogger(), loader, pm)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := builder.Build(context.Background()); err != nil {
			b.Fatalf("Build failed: %v", err)
		}
	}
}
