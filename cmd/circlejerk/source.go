package main

import (
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/CTAG07/circlejerk/pkg/fixture"
)

// openLoader builds the fixture loader described by cfg. The returned close
// function releases the database of a sqlite source and is never nil.
func openLoader(cfg *fixture.Config, logger *slog.Logger) (*fixture.Loader, func() error, error) {
	noop := func() error { return nil }

	var src fixture.Source
	closeFn := noop
	switch cfg.Source {
	case fixture.SourceFile, "":
		src = fixture.FileSource{Path: cfg.Path, PostsPath: cfg.PostsPath}
	case fixture.SourceHTTP:
		if cfg.URL == "" {
			return nil, noop, fmt.Errorf("fixture source %q requires a url", cfg.Source)
		}
		src = fixture.HTTPSource{URL: cfg.URL}
	case fixture.SourceSQLite:
		db, err := openFixtureDB(cfg.DatabasePath)
		if err != nil {
			return nil, noop, err
		}
		src = fixture.SQLSource{DB: db, Label: cfg.DatabasePath}
		closeFn = db.Close
	default:
		return nil, noop, fmt.Errorf("unknown fixture source %q", cfg.Source)
	}

	return fixture.NewLoader(src, logger, fixture.WithStrict(cfg.Strict)), closeFn, nil
}

func openFixtureDB(path string) (*sql.DB, error) {
	db, err := initDB(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open fixture database: %w", err)
	}
	if err = fixture.SetupSchema(db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to set up fixture schema: %w", err)
	}
	return db, nil
}
