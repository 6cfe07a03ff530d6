package libhess

import (
	"math/big"

	"github.com/fine-structures/hess/hess"
	"github.com/pkg/errors"
)

// Offset is a corner of the hypercube around a code of size n.
//
// Coordinate 0 of a code always stays put, so an Offset only carries bits for coordinates
// 1..n-1.  Coordinate k lives at bit (n-1-k), making coordinate 1 the most significant bit:
// ascending numeric order is then the lexicographic product order, and every subset of an
// offset's bits compares no greater than the offset itself.
type Offset uint32

// NumOffsets returns 2^(n-1), the number of corners for size n.
func NumOffsets(n int) int {
	if n <= 1 {
		return 1
	}
	return 1 << (n - 1)
}

// MaxOffset returns the corner with every coordinate raised.
func MaxOffset(n int) Offset {
	return Offset(NumOffsets(n) - 1)
}

// Coord returns 0 or 1, the value of coordinate k of o for size n.
func (o Offset) Coord(k, n int) int {
	if k <= 0 {
		return 0
	}
	return int(o>>(n-1-k)) & 1
}

// Covers returns true if every bit of sub is also set in o.
func (o Offset) Covers(sub Offset) bool {
	return o&sub == sub
}

// shiftCode returns code + o, or code + o - MaxOffset when below is set.
// The result may not be a valid code.
func shiftCode(code hess.Code, o Offset, below bool) hess.Code {
	n := len(code)
	out := make(hess.Code, n)
	for k, v := range code {
		out[k] = v + o.Coord(k, n)
		if below && k > 0 {
			out[k]--
		}
	}
	return out
}

// IndexMap maps each offset to the permutation key of the shifted code.
// Offsets whose shifted code is not valid hold the empty key.
type IndexMap []hess.PermKey

func buildIndexMap(code hess.Code, below bool) IndexMap {
	n := len(code)
	idx := make(IndexMap, NumOffsets(n))
	for o := range idx {
		shifted := shiftCode(code, Offset(o), below)
		if shifted.IsValid() {
			idx[o] = shifted.Perm().Key()
		}
	}
	return idx
}

// IndicesAbove maps each offset o to code + o.
func IndicesAbove(code hess.Code) IndexMap {
	return buildIndexMap(code, false)
}

// IndicesBelow maps each offset o to code + o - MaxOffset.
func IndicesBelow(code hess.Code) IndexMap {
	return buildIndexMap(code, true)
}

// Stalk holds the values of an evaluated fragment on the corners of one hypercube.
//
// Eliminate must be called with strictly ascending offsets so that the corrections for
// every subset of an offset are in place before the offset itself is read.
type Stalk struct {
	cells   []*big.Int
	last    Offset
	started bool
}

// NewStalk returns an all-zero stalk for size n.
func NewStalk(n int) *Stalk {
	s := &Stalk{
		cells: make([]*big.Int, NumOffsets(n)),
	}
	for i := range s.cells {
		s.cells[i] = new(big.Int)
	}
	return s
}

// StalkOf places vals[idx[o]] at each offset o; offsets with no value stay zero.
func StalkOf(n int, vals Evaluated, idx IndexMap) *Stalk {
	s := NewStalk(n)
	for o, key := range idx {
		if key == "" {
			continue
		}
		if v, found := vals[key]; found {
			s.cells[o].Set(v)
		}
	}
	return s
}

// Len returns the number of corners.
func (s *Stalk) Len() int {
	return len(s.cells)
}

// At returns the cell at o.  The returned value is owned by s.
func (s *Stalk) At(o Offset) *big.Int {
	return s.cells[o]
}

// Lead returns the cell at the zero offset.
func (s *Stalk) Lead() *big.Int {
	return s.cells[0]
}

// Eliminate subtracts quo * basis[w - o] from every cell w that covers o.
//
// Returns ErrLatticeOrder if o does not follow the previously eliminated offset.
func (s *Stalk) Eliminate(o Offset, quo *big.Int, basis *Stalk) error {
	if s.started && o <= s.last {
		return errors.Wrapf(hess.ErrLatticeOrder, "offset %b after %b", o, s.last)
	}
	if basis.Len() != s.Len() {
		panic("Eliminate: stalk size mismatch")
	}
	s.started = true
	s.last = o

	var term big.Int
	N := Offset(len(s.cells))
	for w := o; w < N; w = (w + 1) | o {
		term.Mul(quo, basis.cells[w&^o])
		s.cells[w].Sub(s.cells[w], &term)
	}
	return nil
}
