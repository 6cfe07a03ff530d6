package libhess

import (
	"math/big"
	"sort"
	"strconv"
	"strings"

	"github.com/fine-structures/hess/hess"
)

// Root is the difference factor x_I - x_J.  Normalized roots have I < J.
type Root struct {
	I, J int
}

// RootProduct is a signed product of roots.
//
// A normalized RootProduct has Sign in {-1, 0, +1} and Roots sorted with I < J in each.
// The zero product has Sign 0 and no roots.
type RootProduct struct {
	Sign  int
	Roots []Root
}

var (
	rpOne  = RootProduct{Sign: 1}
	rpZero = RootProduct{}
)

// NormalizeRoots returns the canonic product of the given raw roots.
//
// Each out-of-order root (J < I) is flipped and negates the sign; a degenerate root (I == J)
// makes the whole product zero.
func NormalizeRoots(raw []Root) RootProduct {
	rp := RootProduct{
		Sign: 1,
	}
	if len(raw) > 0 {
		rp.Roots = make([]Root, 0, len(raw))
	}
	for _, r := range raw {
		switch {
		case r.I < r.J:
			rp.Roots = append(rp.Roots, r)
		case r.I > r.J:
			rp.Roots = append(rp.Roots, Root{r.J, r.I})
			rp.Sign = -rp.Sign
		default:
			return rpZero
		}
	}
	sort.Slice(rp.Roots, func(a, b int) bool {
		ra, rb := rp.Roots[a], rp.Roots[b]
		if ra.I != rb.I {
			return ra.I < rb.I
		}
		return ra.J < rb.J
	})
	return rp
}

// IsZero returns true for the zero product.
func (rp RootProduct) IsZero() bool {
	return rp.Sign == 0
}

// Degree returns the number of root factors.
func (rp RootProduct) Degree() int {
	return len(rp.Roots)
}

// Equal returns true if both products have the same sign and roots (both assumed normalized).
func (rp RootProduct) Equal(other RootProduct) bool {
	if rp.Sign != other.Sign || len(rp.Roots) != len(other.Roots) {
		return false
	}
	for i, r := range rp.Roots {
		if other.Roots[i] != r {
			return false
		}
	}
	return true
}

// Project replaces every occurrence of index from by index to and renormalizes.
func (rp RootProduct) Project(from, to int) RootProduct {
	if rp.IsZero() {
		return rpZero
	}
	raw := make([]Root, len(rp.Roots))
	for i, r := range rp.Roots {
		if r.I == from {
			r.I = to
		}
		if r.J == from {
			r.J = to
		}
		raw[i] = r
	}
	out := NormalizeRoots(raw)
	out.Sign *= rp.Sign
	return out
}

// EvalLeft evaluates rp at L_i = i: each root (i, j) becomes the difference of the
// positions of i and j in the permutation whose inverse is pos.
func (rp RootProduct) EvalLeft(pos []int) *big.Int {
	val := big.NewInt(int64(rp.Sign))
	var diff big.Int
	for _, r := range rp.Roots {
		diff.SetInt64(int64(pos[r.I] - pos[r.J]))
		val.Mul(val, &diff)
	}
	return val
}

// EvalRight evaluates rp at R_i = i: each root (i, j) becomes i - j.
func (rp RootProduct) EvalRight() *big.Int {
	val := big.NewInt(int64(rp.Sign))
	var diff big.Int
	for _, r := range rp.Roots {
		diff.SetInt64(int64(r.I - r.J))
		val.Mul(val, &diff)
	}
	return val
}

// Evaluate applies the evaluation homomorphism for kind at the given key permutation.
func (rp RootProduct) Evaluate(kind hess.TableKind, perm hess.Perm) *big.Int {
	switch kind {
	case hess.LeftTable:
		return rp.EvalLeft(perm.Positions())
	case hess.RightTable:
		return rp.EvalRight()
	}
	panic("no evaluation for " + kind.String())
}

func (rp RootProduct) String() string {
	var b strings.Builder
	switch rp.Sign {
	case 0:
		return "0"
	case -1:
		b.WriteByte('-')
	}
	if len(rp.Roots) == 0 {
		b.WriteByte('1')
	}
	for _, r := range rp.Roots {
		b.WriteString("(")
		b.WriteString(strconv.Itoa(r.I))
		b.WriteString("-")
		b.WriteString(strconv.Itoa(r.J))
		b.WriteString(")")
	}
	return b.String()
}
