package libhess

import (
	"context"
	"runtime"
	"sync/atomic"

	"github.com/fine-structures/hess/hess"
	"github.com/pkg/errors"
	"github.com/plan-systems/klog"
	"golang.org/x/sync/errgroup"
)

// RunOpts specifies a batch of tables to compute.
type RunOpts struct {
	Sizes        []int            // path sizes to enumerate
	Kinds        []hess.TableKind // table kinds to compute for each path
	Workers      int              // max concurrent paths (<= 0 means GOMAXPROCS)
	SkipExisting bool             // skip (kind, path) pairs the catalog already has
}

// RunStats reports what a Run did.
type RunStats struct {
	Computed int64
	Skipped  int64
}

// Run computes every table named by opts and stores each into cat.
//
// Paths are fanned out over opts.Workers goroutines.  The first error cancels the
// remaining work and is returned along with the stats gathered so far.
func (ctx *Context) Run(runCtx context.Context, opts RunOpts, cat hess.Catalog) (RunStats, error) {
	var stats RunStats

	if cat.IsReadOnly() {
		return stats, hess.ErrReadOnly
	}
	for _, n := range opts.Sizes {
		if n < 1 || n > hess.MaxSize {
			return stats, errors.Wrapf(hess.ErrBadSize, "size %d", n)
		}
	}
	for _, kind := range opts.Kinds {
		if !kind.IsValid() {
			return stats, errors.Wrapf(hess.ErrBadKind, "kind %d", kind)
		}
	}

	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	group, groupCtx := errgroup.WithContext(runCtx)
	group.SetLimit(workers)

	var computed, skipped atomic.Int64
	for _, n := range opts.Sizes {
		paths := hess.EnumPaths(n)
		klog.Infof("size %d: %d paths x %d kinds", n, len(paths), len(opts.Kinds))

	enumerate:
		for _, path := range paths {
			for _, kind := range opts.Kinds {
				if groupCtx.Err() != nil {
					break enumerate
				}
				if opts.SkipExisting && cat.HasTable(kind, path) {
					skipped.Add(1)
					continue
				}
				kind, path := kind, path
				group.Go(func() error {
					if err := groupCtx.Err(); err != nil {
						return err
					}
					T, err := ctx.ComputeTable(kind, path)
					if err != nil {
						return err
					}
					if err = cat.PutTable(T); err != nil {
						return errors.Wrapf(err, "storing %v[%v]", kind, path)
					}
					if c := computed.Add(1); c%1000 == 0 {
						klog.Infof("computed %d tables", c)
					}
					return nil
				})
			}
		}
	}

	err := group.Wait()
	if err == nil {
		err = runCtx.Err()
	}
	stats.Computed = computed.Load()
	stats.Skipped = skipped.Load()
	klog.Infof("run done: %d computed, %d skipped", stats.Computed, stats.Skipped)
	return stats, err
}
