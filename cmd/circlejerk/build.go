package main

import (
	"bytes"
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"

	"github.com/CTAG07/circlejerk/pkg/fixture"
	"github.com/CTAG07/circlejerk/pkg/pages"
	"github.com/CTAG07/circlejerk/pkg/render"
	natomic "github.com/natefinch/atomic"
	"golang.org/x/sync/errgroup"
)

// Builder renders every page into a directory of static files.
type Builder struct {
	config *Config
	logger *slog.Logger
	loader *fixture.Loader
	pm     *pages.Manager
}

// buildJob is one output file.
type buildJob struct {
	page  string
	file  string
	query url.Values
}

// NewBuilder returns a Builder writing to config.Build.OutDir.
func NewBuilder(config *Config, logger *slog.Logger, loader *fixture.Loader, pm *pages.Manager) *Builder {
	return &Builder{
		config: config,
		logger: logger,
		loader: loader,
		pm:     pm,
	}
}

// Build renders all pages and returns the number of files written. If the
// fixture cannot be loaded, index.html is replaced by the load error page and
// the load error is returned.
func (b *Builder) Build(ctx context.Context) (int, error) {
	outDir := b.config.Build.OutDir
	if err := os.MkdirAll(outDir, 0755); err != nil {
		return 0, fmt.Errorf("failed to create output dir: %w", err)
	}

	ds, err := b.loader.Load(ctx)
	if err != nil {
		index := filepath.Join(outDir, "index.html")
		if werr := natomic.WriteFile(index, strings.NewReader(string(render.LoadErrorPage()))); werr != nil {
			b.logger.Error("Failed to write load error page", "path", index, "error", werr)
		}
		return 0, err
	}

	renderer := render.NewRenderer(ds, b.config.Render, render.WithLinks(render.StaticLinks{}))
	jobs := b.plan(ds)

	var written atomic.Int32
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(b.config.Build.Concurrency, 1))
	for _, job := range jobs {
		job := job
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			var buf bytes.Buffer
			if err := b.pm.Execute(&buf, job.page, pages.NewPageData(job.page, renderer, job.query)); err != nil {
				return fmt.Errorf("failed to render %s: %w", job.file, err)
			}
			path := filepath.Join(outDir, job.file)
			if err := natomic.WriteFile(path, &buf); err != nil {
				return fmt.Errorf("failed to write %s: %w", path, err)
			}
			written.Add(1)
			b.logger.Debug("Wrote page", "page", job.page, "file", job.file)
			return nil
		})
	}
	if err = g.Wait(); err != nil {
		return int(written.Load()), err
	}

	if b.config.Build.CopyStatic {
		n, err := b.copyStatic(filepath.Join(outDir, "static"))
		written.Add(int32(n))
		if err != nil {
			return int(written.Load()), err
		}
	}

	b.logger.Info("Build complete", "out_dir", outDir, "files", written.Load())
	return int(written.Load()), nil
}

// plan lists every file to render. Detail pages are expanded once per entity.
func (b *Builder) plan(ds *fixture.Dataset) []buildJob {
	var jobs []buildJob
	for _, name := range b.pm.PageNames() {
		switch name {
		case b.config.Build.ProfilePage:
			for _, c := range ds.Characters {
				if !safeFileID(c.ID) {
					b.logger.Warn("Skipping profile with unsafe id", "id", c.ID)
					continue
				}
				jobs = append(jobs, buildJob{page: name, file: "profile-" + c.ID + ".html", query: url.Values{"id": {c.ID}}})
			}
		case b.config.Build.ArticlePage:
			for _, p := range ds.Articles() {
				if !safeFileID(p.ID) {
					b.logger.Warn("Skipping article with unsafe id", "id", p.ID)
					continue
				}
				jobs = append(jobs, buildJob{page: name, file: "article-" + p.ID + ".html", query: url.Values{"id": {p.ID}}})
			}
		default:
			jobs = append(jobs, buildJob{page: name, file: pages.PageHref(name)})
		}
	}
	return jobs
}

// copyStatic mirrors the static asset dir into dst.
func (b *Builder) copyStatic(dst string) (int, error) {
	src := b.config.Server.StaticDir
	if _, err := os.Stat(src); os.IsNotExist(err) {
		return 0, nil
	}

	copied := 0
	err := filepath.WalkDir(src, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}
		target := filepath.Join(dst, rel)
		if d.IsDir() {
			return os.MkdirAll(target, 0755)
		}
		file, err := os.Open(path)
		if err != nil {
			return err
		}
		defer func(file *os.File) {
			_ = file.Close()
		}(file)
		if err = natomic.WriteFile(target, file); err != nil {
			return err
		}
		copied++
		return nil
	})
	if err != nil {
		return copied, fmt.Errorf("failed to copy static assets: %w", err)
	}
	return copied, nil
}

func safeFileID(id string) bool {
	return id != "" && !strings.ContainsAny(id, `/\`) && id != "." && id != ".."
}
