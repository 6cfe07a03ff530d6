package catalog

import (
	"runtime"
	"sync"

	"github.com/dgraph-io/badger/v3"
	"github.com/fine-structures/hess/hess"
	"github.com/gogo/protobuf/proto"
	"github.com/pkg/errors"
	"github.com/plan-systems/klog"
)

/***

Catalog database format:

	gCatalogStateKey => CatalogState

	TableKind (byte), n (byte), path[0..n) (bytes)  => TableRecord
	...

Table kinds start at 1, so no table key collides with the state key.  Keys for a
given kind and size share a two byte prefix and sort in path order, so Select is
a single prefix scan.

***/

var (
	gCatalogStateKey = []byte{0x00, 0x00, 0x01}
)

const (
	kMajorVers = 2024
	kMinorVers = 1
)

// catalog is a badger wrapper storing computed tables.
type catalog struct {
	mu         sync.Mutex // guards state and serializes writes
	readOnly   bool
	stateDirty bool
	state      CatalogState
	db         *badger.DB
}

// OpenCatalog opens (or creates) the catalog at opts.DbPathName, or an in-memory
// catalog if no path is given.
func OpenCatalog(opts hess.CatalogOpts) (hess.Catalog, error) {
	cat := &catalog{
		readOnly: opts.ReadOnly,
	}

	dbOpts := badger.DefaultOptions(opts.DbPathName)
	dbOpts.ReadOnly = opts.ReadOnly
	dbOpts.DetectConflicts = false // writes are serialized by cat.mu
	dbOpts.Logger = nil
	dbOpts.MetricsEnabled = false

	// Badger for windows currently does not support read-only mode
	if runtime.GOOS == "windows" {
		dbOpts.ReadOnly = false
	}

	if len(opts.DbPathName) == 0 {
		if opts.ReadOnly {
			return nil, errors.Wrap(hess.ErrBadCatalogParam, "DbPathName must be specified for read-only catalog")
		}
		dbOpts.InMemory = true
	}

	var err error
	cat.db, err = badger.Open(dbOpts)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open catalog %q", opts.DbPathName)
	}

	err = cat.loadState()
	if err == badger.ErrKeyNotFound {
		err = nil
		cat.stateDirty = !cat.readOnly
		cat.state.MajorVers = kMajorVers
		cat.state.MinorVers = kMinorVers
	}
	if err == nil && (cat.state.MajorVers != kMajorVers || cat.state.MinorVers != kMinorVers) {
		err = errors.Wrapf(hess.ErrBadCatalogParam, "catalog version %d.%d is incompatible", cat.state.MajorVers, cat.state.MinorVers)
	}
	if err != nil {
		cat.Close()
		return nil, err
	}

	if numCounters := len(hess.AllKinds) + 1; len(cat.state.NumTables) < numCounters*(hess.MaxSize+1) {
		grown := make([]uint64, numCounters*(hess.MaxSize+1))
		copy(grown, cat.state.NumTables)
		cat.state.NumTables = grown
	}

	klog.V(1).Infof("opened catalog %q (read-only: %v)", opts.DbPathName, cat.readOnly)
	return cat, nil
}

func counterIndex(kind hess.TableKind, n int) int {
	return int(kind)*(hess.MaxSize+1) + n
}

func formTableKey(kind hess.TableKind, path hess.Path) []byte {
	key := make([]byte, 0, 2+len(path))
	key = append(key, byte(kind), byte(len(path)))
	for _, pi := range path {
		key = append(key, byte(pi))
	}
	return key
}

func checkKey(kind hess.TableKind, n int) error {
	if !kind.IsValid() {
		return errors.Wrapf(hess.ErrBadKind, "kind %d", kind)
	}
	if n < 1 || n > hess.MaxSize {
		return errors.Wrapf(hess.ErrBadSize, "size %d", n)
	}
	return nil
}

func (cat *catalog) loadState() error {
	err := cat.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(gCatalogStateKey)
		if err == nil {
			err = item.Value(func(val []byte) error {
				return proto.Unmarshal(val, &cat.state)
			})
		}
		return err
	})
	return err
}

// setState writes the current state within txn.  cat.mu must be held.
func (cat *catalog) setState(txn *badger.Txn) error {
	stateBuf, err := proto.Marshal(&cat.state)
	if err != nil {
		return err
	}
	return txn.Set(gCatalogStateKey, stateBuf)
}

func (cat *catalog) flushState() {
	cat.mu.Lock()
	defer cat.mu.Unlock()

	if cat.stateDirty && cat.db != nil {
		err := cat.db.Update(cat.setState)
		if err != nil {
			panic(err)
		}
		cat.stateDirty = false
	}
}

func (cat *catalog) Close() error {
	cat.flushState()

	cat.mu.Lock()
	defer cat.mu.Unlock()

	var err error
	if cat.db != nil {
		err = cat.db.Close()
		cat.db = nil
	}
	return err
}

func (cat *catalog) IsReadOnly() bool {
	return cat.readOnly
}

func (cat *catalog) NumTables(kind hess.TableKind, n int) int64 {
	if checkKey(kind, n) != nil {
		return 0
	}
	cat.mu.Lock()
	defer cat.mu.Unlock()
	return int64(cat.state.NumTables[counterIndex(kind, n)])
}

func (cat *catalog) HasTable(kind hess.TableKind, path hess.Path) bool {
	if checkKey(kind, len(path)) != nil {
		return false
	}
	err := cat.db.View(func(txn *badger.Txn) error {
		_, err := txn.Get(formTableKey(kind, path))
		return err
	})
	return err == nil
}

func (cat *catalog) GetTable(kind hess.TableKind, path hess.Path) (*hess.Table, error) {
	if err := checkKey(kind, len(path)); err != nil {
		return nil, err
	}

	var T *hess.Table
	err := cat.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(formTableKey(kind, path))
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			T, err = UnmarshalTable(val)
			return err
		})
	})
	if err == badger.ErrKeyNotFound {
		return nil, errors.Wrapf(hess.ErrTableNotFound, "%v[%v]", kind, path)
	}
	if err != nil {
		return nil, err
	}
	return T, nil
}

func (cat *catalog) PutTable(T *hess.Table) error {
	if cat.readOnly {
		return hess.ErrReadOnly
	}
	if err := checkKey(T.Kind, len(T.Path)); err != nil {
		return err
	}
	if err := T.Path.Validate(); err != nil {
		return err
	}

	val, err := MarshalTable(T)
	if err != nil {
		return err
	}
	key := formTableKey(T.Kind, T.Path)

	cat.mu.Lock()
	defer cat.mu.Unlock()

	idx := counterIndex(T.Kind, len(T.Path))
	added := false
	err = cat.db.Update(func(txn *badger.Txn) error {
		_, err := txn.Get(key)
		isNew := err == badger.ErrKeyNotFound
		if err != nil && !isNew {
			return err
		}
		if err = txn.Set(key, val); err != nil {
			return err
		}
		if isNew {
			cat.state.NumTables[idx]++
			added = true
			return cat.setState(txn)
		}
		return nil
	})
	if err != nil && added {
		cat.state.NumTables[idx]--
	}
	return err
}

// Select sends every stored table of the given kind and size to onHit, in path order.
func (cat *catalog) Select(kind hess.TableKind, n int, onHit chan<- *hess.Table) error {
	if err := checkKey(kind, n); err != nil {
		return err
	}

	txn := cat.db.NewTransaction(false)
	defer txn.Discard()

	prefix := [2]byte{byte(kind), byte(n)}
	it := txn.NewIterator(badger.IteratorOptions{
		PrefetchValues: true,
		PrefetchSize:   100,
		Prefix:         prefix[:],
	})
	defer it.Close()

	for it.Rewind(); it.Valid(); it.Next() {
		var T *hess.Table
		err := it.Item().Value(func(val []byte) error {
			var err error
			T, err = UnmarshalTable(val)
			return err
		})
		if err != nil {
			return err
		}
		onHit <- T
	}
	return nil
}
