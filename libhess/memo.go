package libhess

import (
	"github.com/dgraph-io/ristretto"
	"github.com/fine-structures/hess/hess"
	"github.com/pkg/errors"
)

// ContextOpts configures a Context.
type ContextOpts struct {
	CacheCost   int64 // total cost budget of the memo cache
	NumCounters int64 // admission counters (ristretto recommends ~10x the item count)
}

// DefaultContextOpts suits sizes through 7 or so.
var DefaultContextOpts = ContextOpts{
	CacheCost:   1 << 26,
	NumCounters: 1e7,
}

// Context owns the memo caches shared by computations: boxes below a path, flowup
// fragments and offset index maps.  Every cached value is a pure function of its key,
// so a Context may be shared by concurrent computations.
//
// Values returned from a Context are shared and must not be modified.
type Context struct {
	cache *ristretto.Cache
}

// NewContext allocates a Context.  Call Close() when done with it.
func NewContext(opts ContextOpts) (*Context, error) {
	if opts.CacheCost <= 0 {
		opts.CacheCost = DefaultContextOpts.CacheCost
	}
	if opts.NumCounters <= 0 {
		opts.NumCounters = DefaultContextOpts.NumCounters
	}
	cache, err := ristretto.NewCache(&ristretto.Config{
		NumCounters: opts.NumCounters,
		MaxCost:     opts.CacheCost,
		BufferItems: 64,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to initialize memo cache")
	}
	return &Context{
		cache: cache,
	}, nil
}

// Close releases the cache.
func (ctx *Context) Close() {
	if ctx.cache != nil {
		ctx.cache.Close()
		ctx.cache = nil
	}
}

// getOrCompute returns the cached value for key, calling compute and caching its result on a miss.
//
// The cache may drop entries at any time; a dropped entry is simply recomputed.
func getOrCompute[V any](ctx *Context, key string, cost int64, compute func() V) V {
	if val, found := ctx.cache.Get(key); found {
		return val.(V)
	}
	val := compute()
	ctx.cache.Set(key, val, cost)
	return val
}

// Boxes returns path.Boxes().
func (ctx *Context) Boxes(path hess.Path) hess.Boxes {
	return getOrCompute(ctx, "B"+path.Key(), int64(len(path)), func() hess.Boxes {
		return path.Boxes()
	})
}

// Flowup returns BuildFlowup(code, path).
func (ctx *Context) Flowup(code hess.Code, path hess.Path) Fragment {
	key := "F" + code.Key() + "/" + path.Key()
	return getOrCompute(ctx, key, int64(NumOffsets(len(code))), func() Fragment {
		return BuildFlowup(code, path)
	})
}

// IndicesAbove returns IndicesAbove(code).
func (ctx *Context) IndicesAbove(code hess.Code) IndexMap {
	return getOrCompute(ctx, "A"+code.Key(), int64(NumOffsets(len(code))), func() IndexMap {
		return IndicesAbove(code)
	})
}

// IndicesBelow returns IndicesBelow(code).
func (ctx *Context) IndicesBelow(code hess.Code) IndexMap {
	return getOrCompute(ctx, "U"+code.Key(), int64(NumOffsets(len(code))), func() IndexMap {
		return IndicesBelow(code)
	})
}
