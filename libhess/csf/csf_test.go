package csf

import (
	"testing"

	"github.com/fine-structures/hess/hess"
	"github.com/stretchr/testify/require"
)

func TestContractible(t *testing.T) {
	perms := hess.EnumPerms(3)

	B := hess.Path{0, 0, 0}.Boxes()
	for _, perm := range perms {
		require.False(t, Contractible(B, perm, []int{2, 1}), "%v", perm)
	}

	// perms in order: 012 021 102 120 201 210
	B = hess.Path{0, 0, 1}.Boxes()
	expect := []bool{false, true, false, false, false, false}
	for i, perm := range perms {
		require.Equal(t, expect[i], Contractible(B, perm, []int{2, 1}), "%v", perm)
	}

	B = hess.Path{0, 1, 2}.Boxes()
	expect = []bool{true, false, false, false, false, false}
	for i, perm := range perms {
		require.Equal(t, expect[i], Contractible(B, perm, []int{3}), "%v", perm)
	}

	require.False(t, Contractible(B, perms[0], []int{2}))
}

func TestComputeSize3(t *testing.T) {
	expect := map[string][]hess.Row{
		hess.Path{0, 0, 0}.Key(): {
			{Partition: hess.Partition{1, 1, 1}, Coeffs: []int64{1, 2, 2, 1}},
		},
		hess.Path{0, 0, 1}.Key(): {
			{Partition: hess.Partition{1, 1, 1}, Coeffs: []int64{1, 4, 1}},
			{Partition: hess.Partition{2, 1}, Coeffs: []int64{0, 1}},
		},
		hess.Path{0, 0, 2}.Key(): {
			{Partition: hess.Partition{1, 1, 1}, Coeffs: []int64{3, 3}},
			{Partition: hess.Partition{2, 1}, Coeffs: []int64{1, 1}},
		},
		hess.Path{0, 1, 2}.Key(): {
			{Partition: hess.Partition{1, 1, 1}, Coeffs: []int64{6}},
			{Partition: hess.Partition{2, 1}, Coeffs: []int64{3}},
			{Partition: hess.Partition{3}, Coeffs: []int64{1}},
		},
	}
	for _, path := range hess.EnumPaths(3) {
		rows, found := expect[path.Key()]
		if !found {
			continue
		}
		T := Compute(path, path.Boxes())
		require.Equal(t, hess.QChromatic, T.Kind)
		require.Equal(t, rows, T.Rows(), "%v", path)
	}
}

func TestComputeIdentityRow(t *testing.T) {
	// The [1, .., 1] row counts every permutation once, graded by inversions.
	for n := 1; n <= 5; n++ {
		fact := int64(1)
		for i := 2; i <= n; i++ {
			fact *= int64(i)
		}
		ones := make(hess.Partition, n)
		for i := range ones {
			ones[i] = 1
		}
		for _, path := range hess.EnumPaths(n) {
			T := Compute(path, path.Boxes())
			require.Equal(t, fact, T.Sum(ones), "%v", path)
		}
	}
}
