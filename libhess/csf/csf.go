// Package csf counts the q-chromatic symmetric function of a unit interval order
// in the monomial basis by brute force over all permutations.
package csf

import (
	"github.com/fine-structures/hess/hess"
)

// Contractible checks whether merging the colouring given by perm according to
// composition leaves a valid chain colouring of the poset below the path.
//
// Within each part, consecutive colours c and c+1 must sit at positions p1 < p2
// such that (p1, p2) is not a box.
func Contractible(boxes hess.Boxes, perm hess.Perm, composition []int) bool {
	if hess.Partition(composition).Size() != len(perm) {
		return false
	}
	pos := perm.Positions()
	total := 0
	for _, part := range composition {
		for c := total; c < total+part-1; c++ {
			p1, p2 := pos[c], pos[c+1]
			if p1 > p2 || boxes.Has(p1, p2) {
				return false
			}
		}
		total += part
	}
	return true
}

// Compute returns the QChromatic table for path: for every permutation and partition
// where the permutation is contractible, 1 is added at the permutation's inversion count.
//
// boxes must be path.Boxes() (passed in so callers can share a cached copy).
func Compute(path hess.Path, boxes hess.Boxes) *hess.Table {
	n := len(path)
	parts := hess.EnumPartitions(n)
	T := hess.NewTable(hess.QChromatic, path)
	for _, perm := range hess.EnumPerms(n) {
		degree := boxes.Inversions(perm)
		for _, part := range parts {
			if Contractible(boxes, perm, part) {
				T.Add(part, degree, 1)
			}
		}
	}
	return T
}
