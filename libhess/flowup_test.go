package libhess

import (
	"testing"

	"github.com/fine-structures/hess/hess"
	"github.com/stretchr/testify/require"
)

func TestNeighborhood(t *testing.T) {
	require.Equal(t, []hess.Code{{0, 1, 1}, {0, 1, 2}}, Neighborhood(hess.Code{0, 1, 1}))
	require.Equal(t, []hess.Code{{0, 0, 2}, {0, 1, 2}}, Neighborhood(hess.Code{0, 0, 2}))
	require.Equal(t, []hess.Code{{0, 0}, {0, 1}}, Neighborhood(hess.Code{0, 0}))
	require.Len(t, Neighborhood(hess.Code{0, 0, 0, 0}), 8)
	require.Len(t, Neighborhood(hess.Code{0, 1, 2, 3}), 1)
}

func TestRootSpec(t *testing.T) {
	spec := NewRootSpec(hess.Code{0, 1, 2}, hess.Path{0, 0, 0})
	require.Empty(t, spec.Fixed)
	require.Equal(t, []MobileRoot{{1, 1}, {1, 2}, {2, 2}}, spec.Mobile)

	spec = NewRootSpec(hess.Code{0, 0, 2}, hess.Path{0, 0, 1})
	require.Equal(t, []Root{{1, 2}}, spec.Fixed)
	require.Empty(t, spec.Mobile)

	spec = NewRootSpec(hess.Code{0, 0, 0, 1}, hess.Path{0, 0, 0, 3})
	require.Equal(t, []Root{{1, 3}, {2, 3}}, spec.Fixed)

	require.Panics(t, func() {
		NewRootSpec(hess.Code{0, 0}, hess.Path{0, 0, 0})
	})
}

func TestBuildFlowup(t *testing.T) {
	require.Equal(t, Fragment{
		key(0, 1): rpOne,
		key(1, 0): rpOne,
	}, BuildFlowup(hess.Code{0, 0}, hess.Path{0, 0}))

	require.Equal(t, Fragment{
		key(1, 0): roots(Root{0, 1}),
	}, BuildFlowup(hess.Code{0, 1}, hess.Path{0, 0}))

	require.Equal(t, Fragment{
		key(1, 2, 0): roots(Root{0, 1}),
		key(2, 1, 0): roots(Root{0, 1}),
	}, BuildFlowup(hess.Code{0, 1, 1}, hess.Path{0, 0, 1}))

	require.Equal(t, Fragment{
		key(0, 2, 1): roots(Root{1, 2}),
		key(2, 0, 1): roots(Root{1, 2}),
		key(1, 2, 0): roots(Root{0, 2}),
		key(2, 1, 0): roots(Root{0, 2}),
	}, BuildFlowup(hess.Code{0, 0, 1}, hess.Path{0, 0, 0}))

	require.Equal(t, Fragment{
		key(2, 1, 0): roots(Root{0, 1}, Root{0, 2}, Root{1, 2}),
	}, BuildFlowup(hess.Code{0, 1, 2}, hess.Path{0, 0, 0}))

	require.Equal(t, Fragment{
		key(2, 1, 0): roots(Root{1, 2}),
	}, BuildFlowup(hess.Code{0, 1, 2}, hess.Path{0, 1, 1}))

	F := BuildFlowup(hess.Code{0, 0, 2}, hess.Path{0, 0, 1})
	require.Equal(t, Fragment{
		key(2, 0, 1): roots(Root{1, 2}),
		key(2, 1, 0): roots(Root{1, 2}),
	}, F)
}

func TestFlowupsAreValid(t *testing.T) {
	for n := 1; n <= 4; n++ {
		for _, path := range hess.EnumPaths(n) {
			for _, code := range hess.EnumCodes(n) {
				F := BuildFlowup(code, path)
				require.True(t, F.IsValid(path), "flowup %v below %v", code, path)

				own, found := F[code.Perm().Key()]
				require.True(t, found)
				require.False(t, own.IsZero())
			}
		}
	}
}

func TestFlowupDegree(t *testing.T) {
	// Every inversion sits on a box when all boxes are present, and none do when there are none.
	full, empty := hess.Path{0, 0, 0, 0}, hess.Path{0, 1, 2, 3}
	for _, code := range hess.EnumCodes(4) {
		inv := 0
		for _, v := range code {
			inv += v
		}
		key := code.Perm().Key()
		require.Equal(t, inv, BuildFlowup(code, full)[key].Degree(), "%v", code)
		require.Equal(t, 0, BuildFlowup(code, empty)[key].Degree(), "%v", code)
	}
}
