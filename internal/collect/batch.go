package collect

import (
	"context"

	"github.com/MiracleSNeko/dapper-alco-boost/internal/ctxlog"
	"github.com/MiracleSNeko/dapper-alco-boost/internal/manifest"
	"github.com/MiracleSNeko/dapper-alco-boost/internal/naming"
	"golang.org/x/sync/errgroup"
)

// CollectAll collects every declaration concurrently, bounded by
// Options.Workers. Results are returned in input order. The first failure
// cancels the remaining work and is returned; records already written stay
// in the store.
func (s *Stage) CollectAll(ctx context.Context, decls []Declaration) ([]*Result, error) {
	if s.opts.Strictness == manifest.Strict {
		if err := checkBatchNames(decls); err != nil {
			return nil, err
		}
	}

	logger := ctxlog.FromContext(ctx)
	logger.Debug("Collecting command batch.", "count", len(decls), "workers", s.opts.Workers)

	results := make([]*Result, len(decls))
	g, gctx := errgroup.WithContext(ctx)
	if s.opts.Workers > 0 {
		g.SetLimit(s.opts.Workers)
	}
	for i, decl := range decls {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			res, err := s.Collect(gctx, decl)
			if err != nil {
				return err
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// checkBatchNames rejects two declarations in one batch sharing a storage
// key, which would otherwise race for the same record.
func checkBatchNames(decls []Declaration) error {
	seen := make(map[string]string, len(decls))
	for _, decl := range decls {
		key := naming.Snake(decl.Name)
		if key == "" {
			continue
		}
		if prev, ok := seen[key]; ok {
			return &NameCollisionError{Key: key, Existing: prev, Name: decl.Name}
		}
		seen[key] = decl.Name
	}
	return nil
}
