package hess

import (
	"strings"
)

// MaxSize is the largest path size the engine accepts.
// Work grows factorially in n, so this is a practical rather than a structural bound.
const MaxSize = 10

// TableKind names which graded table is being computed or stored.
type TableKind byte

const (
	LeftTable  TableKind = 1 // left Hessenberg character (evaluated at L_i = i)
	RightTable TableKind = 2 // right Hessenberg character (evaluated at R_i = i)
	QChromatic TableKind = 3 // q-chromatic symmetric function, monomial basis
)

// AllKinds lists every TableKind in storage order.
var AllKinds = []TableKind{LeftTable, RightTable, QChromatic}

func (kind TableKind) String() string {
	switch kind {
	case LeftTable:
		return "hess_left"
	case RightTable:
		return "hess_right"
	case QChromatic:
		return "csf"
	}
	return "unknown"
}

// IsValid returns true if kind is one of the known table kinds.
func (kind TableKind) IsValid() bool {
	return kind >= LeftTable && kind <= QChromatic
}

// ParseTableKind accepts "left", "right", "csf" (or the String() forms).
func ParseTableKind(name string) (TableKind, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "left", "hess_left", "l":
		return LeftTable, nil
	case "right", "hess_right", "r":
		return RightTable, nil
	case "csf", "qcsf", "q", "chromatic":
		return QChromatic, nil
	}
	return 0, ErrBadKind
}

// Catalog stores computed tables keyed by (kind, path).
type Catalog interface {

	// IsReadOnly returns true if PutTable will fail.
	IsReadOnly() bool

	// HasTable returns true if a table for the given kind and path has been stored.
	HasTable(kind TableKind, path Path) bool

	// GetTable loads the table for the given kind and path (or ErrTableNotFound).
	GetTable(kind TableKind, path Path) (*Table, error)

	// PutTable stores T, replacing any previous table for T's kind and path.
	PutTable(T *Table) error

	// NumTables returns how many tables of the given kind and size are stored.
	NumTables(kind TableKind, n int) int64

	// Select sends each stored table of the given kind and size to onHit in path order.
	// onHit is not closed.
	Select(kind TableKind, n int, onHit chan<- *Table) error

	// Close flushes catalog state and releases the underlying db.
	Close() error
}

// CatalogOpts specifies how a Catalog is opened.
type CatalogOpts struct {
	DbPathName string // if empty, the catalog lives in memory
	ReadOnly   bool
}
