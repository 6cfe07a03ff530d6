package libhess

import (
	"testing"

	"github.com/fine-structures/hess/hess"
	"github.com/stretchr/testify/require"
)

func newTestContext(t *testing.T) *Context {
	ctx, err := NewContext(ContextOpts{
		CacheCost:   1 << 22,
		NumCounters: 1e5,
	})
	require.NoError(t, err)
	t.Cleanup(ctx.Close)
	return ctx
}

type row = hess.Row

func r(part hess.Partition, coeffs ...int64) row {
	return row{Partition: part, Coeffs: coeffs}
}

var (
	p1    = hess.Partition{1}
	p11   = hess.Partition{1, 1}
	p2    = hess.Partition{2}
	p111  = hess.Partition{1, 1, 1}
	p21   = hess.Partition{2, 1}
	p3    = hess.Partition{3}
	p1111 = hess.Partition{1, 1, 1, 1}
	p211  = hess.Partition{2, 1, 1}
	p22   = hess.Partition{2, 2}
	p31   = hess.Partition{3, 1}
	p4    = hess.Partition{4}
)

var rightTables = []struct {
	path hess.Path
	rows []row
}{
	{hess.Path{0}, []row{r(p1, 1)}},
	{hess.Path{0, 0}, []row{r(p11, 1, 1), r(p2, 1, -1)}},
	{hess.Path{0, 1}, []row{r(p11, 2)}},
	{hess.Path{0, 0, 0}, []row{r(p111, 1, 2, 2, 1), r(p21, 1, 0, 0, -1), r(p3, 1, -1, -1, 1)}},
	{hess.Path{0, 0, 1}, []row{r(p111, 1, 4, 1), r(p21, 1, 0, -1), r(p3, 1, -2, 1)}},
	{hess.Path{0, 0, 2}, []row{r(p111, 3, 3), r(p21, 1, -1)}},
	{hess.Path{0, 1, 1}, []row{r(p111, 3, 3), r(p21, 1, -1)}},
	{hess.Path{0, 1, 2}, []row{r(p111, 6)}},
	{hess.Path{0, 0, 0, 0}, []row{
		r(p1111, 1, 3, 5, 6, 5, 3, 1),
		r(p211, 1, 1, 1, 0, -1, -1, -1),
		r(p22, 1, -1, 1, -2, 1, -1, 1),
		r(p31, 1, 0, -1, 0, -1, 0, 1),
		r(p4, 1, -1, -1, 0, 1, 1, -1),
	}},
	{hess.Path{0, 0, 1, 2}, []row{
		r(p1111, 1, 11, 11, 1),
		r(p211, 1, 3, -3, -1),
		r(p22, 1, -1, -1, 1),
		r(p31, 1, -1, -1, 1),
		r(p4, 1, -3, 3, -1),
	}},
	{hess.Path{0, 0, 0, 3}, []row{r(p1111, 4, 8, 8, 4), r(p211, 2, 0, 0, -2), r(p31, 1, -1, -1, 1)}},
	{hess.Path{0, 0, 2, 2}, []row{r(p1111, 6, 12, 6), r(p211, 2, 0, -2), r(p22, 2, -4, 2)}},
	{hess.Path{0, 1, 2, 3}, []row{r(p1111, 24)}},
}

var leftTables = []struct {
	path hess.Path
	rows []row
}{
	{hess.Path{0}, []row{r(p1, 1)}},
	{hess.Path{0, 0}, []row{r(p11, 1, 1), r(p2, 1, 1)}},
	{hess.Path{0, 1}, []row{r(p11, 2)}},
	{hess.Path{0, 0, 0}, []row{r(p111, 1, 2, 2, 1), r(p21, 1, 2, 2, 1), r(p3, 1, 2, 2, 1)}},
	{hess.Path{0, 0, 1}, []row{r(p111, 1, 4, 1), r(p21, 1, 2, 1), r(p3, 1, 1, 1)}},
	{hess.Path{0, 0, 2}, []row{r(p111, 3, 3), r(p21, 1, 1)}},
	{hess.Path{0, 1, 1}, []row{r(p111, 3, 3), r(p21, 1, 1)}},
	{hess.Path{0, 1, 2}, []row{r(p111, 6)}},
	{hess.Path{0, 0, 0, 0}, []row{
		r(p1111, 1, 3, 5, 6, 5, 3, 1),
		r(p211, 1, 3, 5, 6, 5, 3, 1),
		r(p22, 1, 3, 5, 6, 5, 3, 1),
		r(p31, 1, 3, 5, 6, 5, 3, 1),
		r(p4, 1, 3, 5, 6, 5, 3, 1),
	}},
	{hess.Path{0, 0, 0, 1}, []row{
		r(p1111, 1, 3, 8, 8, 3, 1),
		r(p211, 1, 3, 6, 6, 3, 1),
		r(p22, 1, 3, 4, 4, 3, 1),
		r(p31, 1, 3, 5, 5, 3, 1),
		r(p4, 1, 3, 4, 4, 3, 1),
	}},
	{hess.Path{0, 0, 0, 3}, []row{r(p1111, 4, 8, 8, 4), r(p211, 2, 4, 4, 2), r(p31, 1, 2, 2, 1)}},
	{hess.Path{0, 1, 2, 3}, []row{r(p1111, 24)}},
}

func TestRightTables(t *testing.T) {
	ctx := newTestContext(t)
	for _, tc := range rightTables {
		T, err := ctx.ComputeTable(hess.RightTable, tc.path)
		require.NoError(t, err)
		require.Equal(t, hess.RightTable, T.Kind)
		require.Equal(t, tc.rows, T.Rows(), "hess_right%v", tc.path)
	}
}

func TestLeftTables(t *testing.T) {
	ctx := newTestContext(t)
	for _, tc := range leftTables {
		T, err := ctx.ComputeTable(hess.LeftTable, tc.path)
		require.NoError(t, err)
		require.Equal(t, tc.rows, T.Rows(), "hess_left%v", tc.path)
	}
}

func TestLeftRightAgreeOnIdentity(t *testing.T) {
	ctx := newTestContext(t)
	ones := hess.Partition{1, 1, 1, 1}
	for _, path := range hess.EnumPaths(4) {
		L, err := ctx.ComputeTable(hess.LeftTable, path)
		require.NoError(t, err)
		R, err := ctx.ComputeTable(hess.RightTable, path)
		require.NoError(t, err)
		for d := 0; d <= L.MaxDegree(); d++ {
			require.Equal(t, L.Coeff(ones, d), R.Coeff(ones, d), "%v degree %d", path, d)
		}
	}
}

func TestCheckRegular(t *testing.T) {
	ctx := newTestContext(t)
	fact := int64(1)
	for n := 1; n <= 5; n++ {
		fact *= int64(n)
		for _, path := range hess.EnumPaths(n) {
			sum, ok, err := ctx.CheckRegular(path)
			require.NoError(t, err)
			require.True(t, ok, "%v", path)
			require.Equal(t, fact, sum)
		}
	}
}

// TestExactSize6 runs the full reduction for both kinds over every path of size 6:
// each division must be exact, and every right table must be regular.
func TestExactSize6(t *testing.T) {
	if testing.Short() {
		t.Skip("size 6 sweep")
	}
	ctx := newTestContext(t)
	paths := hess.EnumPaths(6)
	require.Len(t, paths, 132)
	for _, path := range paths {
		_, err := ctx.ComputeTable(hess.LeftTable, path)
		require.NoError(t, err, "%v", path)

		R, err := ctx.ComputeTable(hess.RightTable, path)
		require.NoError(t, err, "%v", path)
		sum, ok := R.RegularSum()
		require.True(t, ok, "%v", path)
		require.Equal(t, int64(720), sum)
	}
}

func TestComputeQChromatic(t *testing.T) {
	ctx := newTestContext(t)
	T, err := ctx.ComputeTable(hess.QChromatic, hess.Path{0, 1, 2})
	require.NoError(t, err)
	require.Equal(t, []row{r(p111, 6), r(p21, 3), r(p3, 1)}, T.Rows())
}

func TestComputeErrors(t *testing.T) {
	ctx := newTestContext(t)

	_, err := ctx.ComputeTable(hess.RightTable, hess.Path{})
	require.ErrorIs(t, err, hess.ErrBadSize)

	_, err = ctx.ComputeTable(hess.RightTable, make(hess.Path, hess.MaxSize+1))
	require.ErrorIs(t, err, hess.ErrBadSize)

	_, err = ctx.ComputeTable(hess.RightTable, hess.Path{0, 2})
	require.ErrorIs(t, err, hess.ErrBadPath)

	_, err = ctx.ComputeTable(hess.RightTable, hess.Path{0, 1, 0})
	require.ErrorIs(t, err, hess.ErrBadPath)

	_, err = ctx.ComputeTable(hess.TableKind(9), hess.Path{0, 0})
	require.ErrorIs(t, err, hess.ErrBadKind)

	_, _, err = ctx.CheckRegular(hess.Path{1})
	require.ErrorIs(t, err, hess.ErrBadPath)
}

func TestReduceViolation(t *testing.T) {
	ctx := newTestContext(t)
	path := hess.Path{0, 0}
	red := ctx.newReduction(hess.RightTable, path)

	// code (0, 0) reads its one nonzero cell against the basis of (0, 0) itself
	red.basis[hess.Code{0, 0}.Key()] = NewStalk(2)
	_, _, err := red.reduce(Translators(2)[0], hess.Code{0, 0})
	require.ErrorIs(t, err, hess.ErrZeroLead)

	red = ctx.newReduction(hess.RightTable, path)
	delete(red.basis, hess.Code{0, 0}.Key())
	_, _, err = red.reduce(Translators(2)[0], hess.Code{0, 0})
	require.ErrorIs(t, err, hess.ErrMissingBasis)

	red = ctx.newReduction(hess.RightTable, path)
	lead := NewStalk(2)
	lead.cells[0].SetInt64(2)
	red.basis[hess.Code{0, 0}.Key()] = lead
	_, _, err = red.reduce(Translators(2)[0], hess.Code{0, 0})
	require.ErrorIs(t, err, hess.ErrInexact)
}
