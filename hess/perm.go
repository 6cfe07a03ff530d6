package hess

import (
	"sort"

	"github.com/pkg/errors"
)

// Perm is a bijection on {0..n-1} in image-list (blist) form: Perm[i] = j if L_i maps to R_j.
type Perm []int

// PermKey is the comparable form of a Perm, used as a fragment key.
type PermKey string

// Code is a permutation in factorial-base (bfact) form:
// Code[i] is the number of values j < i that appear after i in the Perm.
type Code []int

// IdentityPerm returns (0, 1, .., n-1).
func IdentityPerm(n int) Perm {
	bl := make(Perm, n)
	for i := range bl {
		bl[i] = i
	}
	return bl
}

// IsValid returns true if bl is a permutation of 0..n-1.
func (bl Perm) IsValid() bool {
	n := len(bl)
	if n > 255 {
		return false
	}
	var seen [256]bool
	for _, v := range bl {
		if v < 0 || v >= n || seen[v] {
			return false
		}
		seen[v] = true
	}
	return true
}

// Validate returns ErrBadPerm (with context) if bl is not a permutation.
func (bl Perm) Validate() error {
	if !bl.IsValid() {
		return errors.Wrapf(ErrBadPerm, "%v", bl)
	}
	return nil
}

func (bl Perm) Key() PermKey {
	return PermKey(appendEntries(nil, bl))
}

// Perm decodes a PermKey into a newly allocated Perm.
func (key PermKey) Perm() Perm {
	bl := make(Perm, len(key))
	for i := 0; i < len(key); i++ {
		bl[i] = int(key[i])
	}
	return bl
}

func (bl Perm) String() string {
	return formatTuple(bl)
}

// Equal returns true if bl and other have the same images.
func (bl Perm) Equal(other Perm) bool {
	if len(bl) != len(other) {
		return false
	}
	for i, v := range bl {
		if other[i] != v {
			return false
		}
	}
	return true
}

// Positions returns the inverse of bl, so that Positions()[v] is the index of v in bl.
func (bl Perm) Positions() []int {
	pos := make([]int, len(bl))
	for i, v := range bl {
		pos[v] = i
	}
	return pos
}

// Compose returns the permutation i -> y[bl[i]].
//
// Translating a fragment by y and then by bl equals translating it once by bl.Compose(y).
func (bl Perm) Compose(y Perm) Perm {
	if len(bl) != len(y) {
		panic("Compose: size mismatch")
	}
	out := make(Perm, len(bl))
	for i, v := range bl {
		out[i] = y[v]
	}
	return out
}

// Code returns the bfact form of bl.
func (bl Perm) Code() Code {
	bf := make(Code, len(bl))
	for a := 0; a < len(bl); a++ {
		for b := a + 1; b < len(bl); b++ {
			if bl[b] < bl[a] {
				bf[bl[a]]++
			}
		}
	}
	return bf
}

// CycleType returns the cycle lengths of bl in weakly decreasing order.
func (bl Perm) CycleType() Partition {
	var parts Partition
	var seen [256]bool
	for i := range bl {
		if seen[i] {
			continue
		}
		length := 0
		for j := i; !seen[j]; j = bl[j] {
			seen[j] = true
			length++
		}
		parts = append(parts, length)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(parts)))
	return parts
}

// EnumPerms returns all permutations of size n in lexicographic order.
func EnumPerms(n int) []Perm {
	bl := IdentityPerm(n)
	perms := []Perm{append(Perm(nil), bl...)}
	for nextPerm(bl) {
		perms = append(perms, append(Perm(nil), bl...))
	}
	return perms
}

// nextPerm advances bl to its lexicographic successor, returning false after the last one.
func nextPerm(bl Perm) bool {
	i := len(bl) - 2
	for i >= 0 && bl[i] >= bl[i+1] {
		i--
	}
	if i < 0 {
		return false
	}
	j := len(bl) - 1
	for bl[j] <= bl[i] {
		j--
	}
	bl[i], bl[j] = bl[j], bl[i]
	for a, b := i+1, len(bl)-1; a < b; a, b = a+1, b-1 {
		bl[a], bl[b] = bl[b], bl[a]
	}
	return true
}

// IsValid returns true if bf[i] lies in [0, i] for every i.
func (bf Code) IsValid() bool {
	for i, v := range bf {
		if v < 0 || v > i {
			return false
		}
	}
	return true
}

// Validate returns ErrBadCode (with context) if bf is not a valid code.
func (bf Code) Validate() error {
	if !bf.IsValid() {
		return errors.Wrapf(ErrBadCode, "%v", bf)
	}
	return nil
}

func (bf Code) Key() string {
	return string(appendEntries(nil, bf))
}

func (bf Code) String() string {
	return formatTuple(bf)
}

// Perm converts bf to blist form by inserting each value i at position (len - bf[i]).
//
// This is the one conversion between the two forms; everything that relates codes
// to permutations goes through it.
func (bf Code) Perm() Perm {
	bl := make(Perm, 0, len(bf))
	for i, inv := range bf {
		bl = insertAt(bl, len(bl)-inv, i)
	}
	return bl
}

// insertAt inserts v into bl at index j, growing bl by one.
func insertAt(bl []int, j, v int) []int {
	bl = append(bl, 0)
	copy(bl[j+1:], bl[j:len(bl)-1])
	bl[j] = v
	return bl
}

// EnumCodes returns all valid codes of size n in product order (last entry varies fastest).
func EnumCodes(n int) []Code {
	total := 1
	for i := 2; i <= n; i++ {
		total *= i
	}
	codes := make([]Code, 0, total)
	bf := make(Code, n)
	for {
		codes = append(codes, append(Code(nil), bf...))

		// odometer step
		k := n - 1
		for k >= 0 {
			if bf[k] < k {
				bf[k]++
				break
			}
			bf[k] = 0
			k--
		}
		if k < 0 {
			break
		}
	}
	return codes
}
