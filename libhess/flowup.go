package libhess

import (
	"fmt"

	"github.com/fine-structures/hess/hess"
)

// MobileRoot is a root whose lower index is read, at insertion step Row, from
// whatever value sits at position Pos of the growing permutation.
type MobileRoot struct {
	Pos, Row int
}

// RootSpec is the fixed/mobile classification of roots for one code and path.
// It is shared by every code in that code's neighborhood.
type RootSpec struct {
	Fixed  []Root       // value pairs, independent of the code being evaluated
	Mobile []MobileRoot // resolved against each code's own insertion order
}

// NewRootSpec inserts each value i of code in turn and scans the entries placed after it.
//
// A scanned entry below path[i] marks the row as crossed.  Every other (smaller) entry
// after it yields a root with i: mobile (keyed by position) until the row is crossed,
// fixed (keyed by value) afterwards.
func NewRootSpec(code hess.Code, path hess.Path) RootSpec {
	if len(code) != len(path) {
		panic("NewRootSpec: size mismatch")
	}

	var spec RootSpec
	bl := make([]int, 0, len(code))
	for i, inv := range code {
		j := len(bl) - inv
		bl = insertAt(bl, j, i)

		crossed := false
		for jj := j + 1; jj < len(bl); jj++ {
			v := bl[jj]
			switch {
			case v < path[i]:
				crossed = true
			case v < i:
				if crossed {
					spec.Fixed = append(spec.Fixed, Root{v, i})
				} else {
					spec.Mobile = append(spec.Mobile, MobileRoot{Pos: jj, Row: i})
				}
			}
		}
	}
	return spec
}

// RootProduct resolves spec for the given code (normally one of the neighbors of the
// code spec was built from).
func (spec RootSpec) RootProduct(code hess.Code) RootProduct {
	raw := make([]Root, 0, len(spec.Fixed)+len(spec.Mobile))
	raw = append(raw, spec.Fixed...)

	bl := make([]int, 0, len(code))
	for i, inv := range code {
		bl = insertAt(bl, len(bl)-inv, i)
		for _, m := range spec.Mobile {
			if m.Row == i {
				raw = append(raw, Root{bl[m.Pos], i})
			}
		}
	}
	return NormalizeRoots(raw)
}

// Neighborhood returns the codes obtained by raising any subset of the entries of code
// that are below their maximum by one, in product order.
func Neighborhood(code hess.Code) []hess.Code {
	out := []hess.Code{make(hess.Code, 0, len(code))}
	for k, v := range code {
		next := make([]hess.Code, 0, 2*len(out))
		for _, head := range out {
			next = append(next, append(append(hess.Code(nil), head...), v))
			if v < k {
				next = append(next, append(append(hess.Code(nil), head...), v+1))
			}
		}
		out = next
	}
	return out
}

// BuildFlowup returns the flowup basis fragment for code below path.
// Context.Flowup is the memoized form.
func BuildFlowup(code hess.Code, path hess.Path) Fragment {
	spec := NewRootSpec(code, path)
	neighbors := Neighborhood(code)
	F := make(Fragment, len(neighbors))
	for _, c := range neighbors {
		if !c.IsValid() {
			panic(fmt.Sprintf("flowup neighbor %v of %v is not a valid code", c, code))
		}
		F[c.Perm().Key()] = spec.RootProduct(c)
	}
	return F
}

// insertAt inserts v into bl at index j, growing bl by one.
func insertAt(bl []int, j, v int) []int {
	bl = append(bl, 0)
	copy(bl[j+1:], bl[j:len(bl)-1])
	bl[j] = v
	return bl
}
