package hess

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// Path is a Dyck path given as the number of missing boxes in each row.
// It encodes a unit interval order on {0..n-1}.
type Path []int

// Len returns n, the size of the poset this path describes.
func (p Path) Len() int {
	return len(p)
}

// IsValid returns true if p is weakly increasing and p[i] lies in [0, i].
func (p Path) IsValid() bool {
	for i, pi := range p {
		if pi < 0 || pi > i {
			return false
		}
		if i > 0 && pi < p[i-1] {
			return false
		}
	}
	return true
}

// Validate returns ErrBadPath (with context) if p is not a valid path.
func (p Path) Validate() error {
	if !p.IsValid() {
		return errors.Wrapf(ErrBadPath, "%v", p)
	}
	return nil
}

// Key returns a compact string suitable for map and cache keys.
func (p Path) Key() string {
	return string(appendEntries(nil, p))
}

func (p Path) String() string {
	return formatTuple(p)
}

// Boxes returns the set of boxes below p.
func (p Path) Boxes() Boxes {
	n := len(p)
	B := Boxes{
		n:   n,
		has: make([]bool, n*n),
	}
	for j, k := range p {
		for i := k; i < j; i++ {
			B.has[i*n+j] = true
			B.count++
		}
	}
	return B
}

// Box is an ordered pair (I, J) with I < J.
type Box struct {
	I, J int
}

// Boxes is the set of boxes (i, j), i < j, below a path.
type Boxes struct {
	n     int
	count int
	has   []bool
}

// Has returns true if (i, j) is a box below the path.
func (B Boxes) Has(i, j int) bool {
	if i < 0 || j < 0 || i >= B.n || j >= B.n {
		return false
	}
	return B.has[i*B.n+j]
}

// Len returns the number of boxes.
func (B Boxes) Len() int {
	return B.count
}

// Pairs returns the boxes in sorted order.
func (B Boxes) Pairs() []Box {
	pairs := make([]Box, 0, B.count)
	for i := 0; i < B.n; i++ {
		for j := i + 1; j < B.n; j++ {
			if B.has[i*B.n+j] {
				pairs = append(pairs, Box{i, j})
			}
		}
	}
	return pairs
}

// Inversions returns the number of boxes (i, j) with perm[i] > perm[j].
func (B Boxes) Inversions(perm Perm) int {
	inv := 0
	for i := 0; i < B.n; i++ {
		for j := i + 1; j < B.n; j++ {
			if B.has[i*B.n+j] && perm[i] > perm[j] {
				inv++
			}
		}
	}
	return inv
}

// EnumPaths returns all valid paths of size n.
//
// Each new entry ranges from the previous entry up to its own index, so the
// paths come out in lexicographic order.
func EnumPaths(n int) []Path {
	switch {
	case n <= 0:
		return []Path{{}}
	case n == 1:
		return []Path{{0}}
	}

	heads := EnumPaths(n - 1)
	paths := make([]Path, 0, 2*len(heads))
	for _, head := range heads {
		for tail := head[n-2]; tail < n; tail++ {
			p := make(Path, n)
			copy(p, head)
			p[n-1] = tail
			paths = append(paths, p)
		}
	}
	return paths
}

func appendEntries(dst []byte, entries []int) []byte {
	for _, e := range entries {
		dst = append(dst, byte(e))
	}
	return dst
}

func formatTuple(entries []int) string {
	var b strings.Builder
	b.WriteByte('(')
	for i, e := range entries {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(strconv.Itoa(e))
	}
	if len(entries) == 1 {
		b.WriteByte(',')
	}
	b.WriteByte(')')
	return b.String()
}

func formatList(entries []int) string {
	var b strings.Builder
	b.WriteByte('[')
	for i, e := range entries {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(strconv.Itoa(e))
	}
	b.WriteByte(']')
	return b.String()
}
