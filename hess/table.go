package hess

import (
	"fmt"
	"io"

	"github.com/emirpasic/gods/trees/redblacktree"
)

// Row is one partition's coefficients indexed by degree, with trailing zeros trimmed.
type Row struct {
	Partition Partition
	Coeffs    []int64
}

// Table maps (partition, degree) to an integer coefficient for one path.
// Degrees range over 0..n(n-1)/2.
//
// Partitions are kept in tuple order so that Rows() and WriteTo() are canonic.
type Table struct {
	Kind TableKind
	Path Path

	rows *redblacktree.Tree // Partition => []int64
}

// NewTable returns an empty table of the given kind for path.
func NewTable(kind TableKind, path Path) *Table {
	return &Table{
		Kind: kind,
		Path: append(Path(nil), path...),
		rows: redblacktree.NewWith(PartitionComparator),
	}
}

// MaxDegree returns n(n-1)/2, the largest degree a coefficient can have.
func (T *Table) MaxDegree() int {
	n := len(T.Path)
	return n * (n - 1) / 2
}

func (T *Table) row(part Partition, autoAdd bool) []int64 {
	val, found := T.rows.Get(part)
	if found {
		return val.([]int64)
	}
	if !autoAdd {
		return nil
	}
	coeffs := make([]int64, T.MaxDegree()+1)
	T.rows.Put(append(Partition(nil), part...), coeffs)
	return coeffs
}

// Add accumulates coeff at (part, degree).
func (T *Table) Add(part Partition, degree int, coeff int64) {
	if degree < 0 || degree > T.MaxDegree() {
		panic(fmt.Sprintf("degree %d out of range for %v", degree, T.Path))
	}
	T.row(part, true)[degree] += coeff
}

// Coeff returns the coefficient at (part, degree), or 0 if none was added.
func (T *Table) Coeff(part Partition, degree int) int64 {
	coeffs := T.row(part, false)
	if degree < 0 || degree >= len(coeffs) {
		return 0
	}
	return coeffs[degree]
}

// Sum returns the sum of the coefficients for part over all degrees.
func (T *Table) Sum(part Partition) int64 {
	sum := int64(0)
	for _, c := range T.row(part, false) {
		sum += c
	}
	return sum
}

// Partitions returns every partition that has been added to, in tuple order.
func (T *Table) Partitions() []Partition {
	keys := T.rows.Keys()
	parts := make([]Partition, len(keys))
	for i, key := range keys {
		parts[i] = key.(Partition)
	}
	return parts
}

// Rows returns the nonzero rows in tuple order, trailing zeros trimmed.
func (T *Table) Rows() []Row {
	var rows []Row
	for it := T.rows.Iterator(); it.Next(); {
		coeffs := it.Value().([]int64)
		N := len(coeffs)
		for N > 0 && coeffs[N-1] == 0 {
			N--
		}
		if N == 0 {
			continue
		}
		rows = append(rows, Row{
			Partition: it.Key().(Partition),
			Coeffs:    append([]int64(nil), coeffs[:N]...),
		})
	}
	return rows
}

// SetRow replaces the coefficients of one row (used when loading a stored table).
func (T *Table) SetRow(part Partition, coeffs []int64) {
	row := T.row(part, true)
	for i := range row {
		row[i] = 0
	}
	copy(row, coeffs)
}

// Equal returns true if T and other have the same kind, path and nonzero rows.
func (T *Table) Equal(other *Table) bool {
	if T.Kind != other.Kind || T.Path.Key() != other.Path.Key() {
		return false
	}
	A, B := T.Rows(), other.Rows()
	if len(A) != len(B) {
		return false
	}
	for i := range A {
		if !A[i].Partition.Equal(B[i].Partition) || len(A[i].Coeffs) != len(B[i].Coeffs) {
			return false
		}
		for j, c := range A[i].Coeffs {
			if B[i].Coeffs[j] != c {
				return false
			}
		}
	}
	return true
}

// RegularSum checks that the ungraded table is the regular representation: the
// identity row sums to n! and every other row sums to 0.
//
// Returns the identity row sum and whether the check passed.
func (T *Table) RegularSum() (int64, bool) {
	n := len(T.Path)
	total := int64(0)
	ok := true
	for _, part := range T.Partitions() {
		sum := T.Sum(part)
		if part.IsTrivial() && part.Size() == n {
			total = sum
		} else if sum != 0 {
			ok = false
		}
	}
	fact := int64(1)
	for i := 2; i <= n; i++ {
		fact *= int64(i)
	}
	return total, ok && total == fact
}

// WriteTo writes T as one "(partition, coeffs)" line per nonzero row.
func (T *Table) WriteTo(w io.Writer) (int64, error) {
	total := int64(0)
	n, err := fmt.Fprintf(w, "%v[%v]\n", T.Kind, T.Path)
	total += int64(n)
	for _, row := range T.Rows() {
		if err != nil {
			break
		}
		n, err = fmt.Fprintf(w, "    (%v, %v),\n", row.Partition, formatCoeffs(row.Coeffs))
		total += int64(n)
	}
	return total, err
}

func formatCoeffs(coeffs []int64) string {
	entries := make([]int, len(coeffs))
	for i, c := range coeffs {
		entries[i] = int(c)
	}
	return formatList(entries)
}
