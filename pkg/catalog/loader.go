package catalog

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/benbot/benbot/pkg/specifier"
)

// Loader populates a Registry from the remote catalogs. Each category
// loads independently: a failed category is marked not-loaded while the
// rest still replace their lists.
type Loader struct {
	client   *Client
	registry *specifier.Registry
	logger   *zap.Logger
}

func NewLoader(client *Client, registry *specifier.Registry, logger *zap.Logger) *Loader {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Loader{client: client, registry: registry, logger: logger}
}

// Load fetches one category and installs the result: a wholesale replace
// on success, not-loaded on any fetch or parse failure. The returned
// error is the fetch error, for callers that report per-category status.
func (l *Loader) Load(ctx context.Context, cat specifier.Category) error {
	records, err := l.client.Fetch(ctx, cat)
	if err != nil {
		l.registry.MarkNotLoaded(cat)
		l.logger.Warn("catalog load failed",
			zap.String("category", cat.String()),
			zap.Error(err))
		return err
	}
	l.registry.Replace(cat, records)
	return nil
}

// LoadAll loads every category through a worker pool and returns the
// per-category outcome (nil on success). It never returns early: all
// four loads are always attempted.
func (l *Loader) LoadAll(ctx context.Context) map[specifier.Category]error {
	cats := specifier.Categories()
	pool := newWorkerPool(len(cats), len(cats))
	pool.Start(ctx)

	var mu sync.Mutex
	results := make(map[specifier.Category]error, len(cats))

	for _, cat := range cats {
		cat := cat
		_ = pool.Submit(func(ctx context.Context) error {
			err := l.Load(ctx, cat)
			mu.Lock()
			results[cat] = err
			mu.Unlock()
			return err
		})
	}
	pool.Close()
	return results
}
