package libhess

import (
	"math/big"

	"github.com/fine-structures/hess/hess"
)

// Fragment is a partial assignment of root products to permutations of one size.
// A missing key stands for zero (or don't-care).
//
// Fragments returned by a Context are shared and must not be modified.
type Fragment map[hess.PermKey]RootProduct

// Evaluated is a Fragment with every root product evaluated to an integer.
type Evaluated map[hess.PermKey]*big.Int

// IsValid checks the divisibility conditions a flowup vector must satisfy below path.
//
// For each key bl and positions i < j with bl[i] > bl[j] where (bl[j], bl[i]) is a box
// below path, the values at bl and at bl with i and j swapped must agree once bl[i] is
// projected onto bl[j].  A missing swapped key is taken as zero.
func (F Fragment) IsValid(path hess.Path) bool {
	boxes := path.Boxes()
	n := len(path)
	for key, above := range F {
		bl := key.Perm()
		if len(bl) != n || !bl.IsValid() {
			return false
		}
		for i := 0; i < n; i++ {
			for j := i + 1; j < n; j++ {
				hi, lo := bl[i], bl[j]
				if hi <= lo || !boxes.Has(lo, hi) {
					continue
				}
				bl[i], bl[j] = lo, hi
				below, found := F[bl.Key()]
				bl[i], bl[j] = hi, lo
				if !found {
					below = rpZero
				}
				if !above.Project(hi, lo).Equal(below.Project(hi, lo)) {
					return false
				}
			}
		}
	}
	return true
}

// Translate acts on F by the permutation t: the value at key bl moves to the key
// whose i-th entry is bl[t[i]].
//
// Translating by y and then by x equals translating by x.Compose(y).
func (F Fragment) Translate(t hess.Perm) Fragment {
	out := make(Fragment, len(F))
	moved := make(hess.Perm, len(t))
	for key, rp := range F {
		bl := key.Perm()
		for i, ti := range t {
			moved[i] = bl[ti]
		}
		out[moved.Key()] = rp
	}
	return out
}

// Evaluate applies the evaluation homomorphism for kind to every entry of F.
func (F Fragment) Evaluate(kind hess.TableKind) Evaluated {
	out := make(Evaluated, len(F))
	for key, rp := range F {
		out[key] = rp.Evaluate(kind, key.Perm())
	}
	return out
}
