package fixture

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"golang.org/x/sync/singleflight"
)

const flightKey = "fixture"

// ErrLoad wraps every transport, parse or validation failure returned by Load.
var ErrLoad = errors.New("fixture: load failed")

// Loader caches the dataset of a single Source. The first successful Load
// fetches from the source; every later Load returns the same pointer until
// Invalidate is called. Failures are not cached.
// All methods are concurrent-safe.
type Loader struct {
	source Source
	logger *slog.Logger
	strict bool

	group singleflight.Group
	mu    sync.RWMutex
	data  *Dataset
	// gen is bumped by Invalidate; a fetch only caches its result if gen is
	// unchanged since it started.
	gen uint64
}

// LoaderOption configures a Loader.
type LoaderOption func(*Loader)

// WithStrict makes Load reject datasets whose references do not resolve.
func WithStrict(strict bool) LoaderOption {
	return func(l *Loader) {
		l.strict = strict
	}
}

// NewLoader returns a Loader for the given source.
func NewLoader(source Source, logger *slog.Logger, opts ...LoaderOption) *Loader {
	l := &Loader{
		source: source,
		logger: logger,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Load returns the cached dataset, fetching it first if needed. Concurrent
// callers that miss the cache share a single fetch. The shared fetch is not
// tied to any one caller's context; a caller whose ctx ends stops waiting and
// gets its ctx error wrapped in ErrLoad while the others keep waiting.
func (l *Loader) Load(ctx context.Context) (*Dataset, error) {
	if ds, ok := l.Cached(); ok {
		return ds, nil
	}

	ch := l.group.DoChan(flightKey, func() (interface{}, error) {
		return l.fetch(context.WithoutCancel(ctx))
	})
	select {
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.(*Dataset), nil
	case <-ctx.Done():
		return nil, fmt.Errorf("%w: %w", ErrLoad, ctx.Err())
	}
}

func (l *Loader) fetch(ctx context.Context) (*Dataset, error) {
	// Another flight may have filled the cache between our check and DoChan.
	l.mu.RLock()
	ds, gen := l.data, l.gen
	l.mu.RUnlock()
	if ds != nil {
		return ds, nil
	}

	ds, err := l.source.Fetch(ctx)
	if err != nil {
		l.logger.ErrorContext(ctx, "Failed to load fixture", "source", l.source.Name(), "error", err)
		return nil, fmt.Errorf("%w: %w", ErrLoad, err)
	}
	if l.strict {
		if err = ds.Validate(); err != nil {
			l.logger.ErrorContext(ctx, "Fixture failed validation", "source", l.source.Name(), "error", err)
			return nil, fmt.Errorf("%w: %w", ErrLoad, err)
		}
	}

	l.mu.Lock()
	stale := l.gen != gen
	if !stale {
		l.data = ds
	}
	l.mu.Unlock()
	if stale {
		l.logger.DebugContext(ctx, "Fixture invalidated during fetch, not caching", "source", l.source.Name())
		return ds, nil
	}

	l.logger.InfoContext(ctx, "Fixture loaded",
		slog.String("source", l.source.Name()),
		slog.Int("characters", len(ds.Characters)),
		slog.Int("posts", len(ds.Posts)),
	)
	return ds, nil
}

// Cached returns the cached dataset without touching the source.
func (l *Loader) Cached() (*Dataset, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.data, l.data != nil
}

// Invalidate drops the cached dataset so the next Load fetches again. A fetch
// already in flight still answers its callers but is not cached, and later
// Loads start a new fetch instead of joining it.
func (l *Loader) Invalidate() {
	l.mu.Lock()
	l.data = nil
	l.gen++
	l.mu.Unlock()
	l.group.Forget(flightKey)
	l.logger.Debug("Fixture cache invalidated", "source", l.source.Name())
}

// Source returns the source the loader reads from.
func (l *Loader) Source() Source {
	return l.source
}
