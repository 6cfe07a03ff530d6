package hess

import "errors"

// Errors
var (
	ErrBadPath         = errors.New("bad path")
	ErrBadPerm         = errors.New("bad permutation")
	ErrBadCode         = errors.New("bad permutation code")
	ErrBadPartition    = errors.New("bad partition")
	ErrBadSize         = errors.New("unsupported size")
	ErrBadKind         = errors.New("bad table kind")
	ErrBadTuple        = errors.New("bad tuple expression")
	ErrInexact         = errors.New("nonzero remainder in triangular reduction")
	ErrZeroLead        = errors.New("zero leading coefficient in basis stalk")
	ErrMissingBasis    = errors.New("no basis stalk for shifted code")
	ErrOverflow        = errors.New("coefficient exceeds int64")
	ErrLatticeOrder    = errors.New("offset visited before one of its subsets")
	ErrUnmarshal       = errors.New("unmarshal failed")
	ErrBadCatalogParam = errors.New("bad catalog param")
	ErrTableNotFound   = errors.New("table not found")
	ErrReadOnly        = errors.New("catalog is read-only")
)
