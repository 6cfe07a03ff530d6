package hess

import (
	"github.com/pkg/errors"
)

// Partition is an integer partition given as weakly decreasing positive parts.
// A partition of n is also the cycle type of a permutation of size n.
type Partition []int

// Size returns the sum of the parts.
func (part Partition) Size() int {
	sum := 0
	for _, p := range part {
		sum += p
	}
	return sum
}

// IsValid returns true if all parts are positive and weakly decreasing.
func (part Partition) IsValid() bool {
	for i, p := range part {
		if p <= 0 {
			return false
		}
		if i > 0 && p > part[i-1] {
			return false
		}
	}
	return true
}

// Validate returns ErrBadPartition (with context) if part is not a partition.
func (part Partition) Validate() error {
	if !part.IsValid() {
		return errors.Wrapf(ErrBadPartition, "%v", part)
	}
	return nil
}

// IsTrivial returns true for [1, 1, .., 1], the cycle type of the identity.
func (part Partition) IsTrivial() bool {
	for _, p := range part {
		if p != 1 {
			return false
		}
	}
	return true
}

func (part Partition) Key() string {
	return string(appendEntries(nil, part))
}

func (part Partition) String() string {
	return formatList(part)
}

// Equal returns true if part and other have the same parts.
func (part Partition) Equal(other Partition) bool {
	return ComparePartitions(part, other) == 0
}

// ComparePartitions orders partitions as tuples: entry by entry, then shorter first.
func ComparePartitions(A, B Partition) int {
	for i, ai := range A {
		if i == len(B) {
			return 1
		}
		if d := ai - B[i]; d != 0 {
			return d
		}
	}
	if len(A) < len(B) {
		return -1
	}
	return 0
}

// PartitionComparator adapts ComparePartitions to gods' untyped Comparator.
func PartitionComparator(a, b interface{}) int {
	return ComparePartitions(a.(Partition), b.(Partition))
}

// Compositions returns the compositions of n, head part ascending, recursively.
func Compositions(n int) [][]int {
	if n == 0 {
		return [][]int{{}}
	}
	var comps [][]int
	for head := 1; head <= n; head++ {
		for _, tail := range Compositions(n - head) {
			c := make([]int, 0, 1+len(tail))
			c = append(c, head)
			c = append(c, tail...)
			comps = append(comps, c)
		}
	}
	return comps
}

// EnumPartitions returns the compositions of n that are weakly decreasing, in composition order.
func EnumPartitions(n int) []Partition {
	var parts []Partition
	for _, c := range Compositions(n) {
		if Partition(c).IsValid() {
			parts = append(parts, Partition(c))
		}
	}
	return parts
}

// BoundedPartitions returns the partitions of n with no part exceeding bound (bound <= 0 means n).
// Each head part is followed by a partition of the remainder bounded by that head.
func BoundedPartitions(n, bound int) []Partition {
	if n == 0 {
		return []Partition{{}}
	}
	if bound <= 0 || bound > n {
		bound = n
	}
	var out []Partition
	for head := 1; head <= bound; head++ {
		for _, tail := range BoundedPartitions(n-head, head) {
			part := make(Partition, 0, 1+len(tail))
			part = append(part, head)
			part = append(part, tail...)
			out = append(out, part)
		}
	}
	return out
}
