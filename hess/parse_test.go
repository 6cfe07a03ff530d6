package hess

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseTuple(t *testing.T) {
	for _, expr := range []string{"(0, 0, 1)", "[0,0,1]", "0,0,1", "0 0 1", "001", " ( 0 ,0, 1, ) "} {
		entries, err := ParseTuple(expr)
		require.NoError(t, err, expr)
		require.Equal(t, []int{0, 0, 1}, entries, expr)
	}

	entries, err := ParseTuple("()")
	require.NoError(t, err)
	require.Empty(t, entries)

	_, err = ParseTuple("(0; 1)")
	require.ErrorIs(t, err, ErrBadTuple)
}

func TestParseMultiDigit(t *testing.T) {
	entries, err := ParseTuple("(10, 0)")
	require.NoError(t, err)
	require.Equal(t, []int{10, 0}, entries)

	entries, err = ParseTuple("[10]")
	require.NoError(t, err)
	require.Equal(t, []int{10}, entries)

	// unbracketed digit runs stay compact
	entries, err = ParseTuple("10")
	require.NoError(t, err)
	require.Equal(t, []int{1, 0}, entries)

	entries, err = ParseTuple("0123456789")
	require.NoError(t, err)
	require.Len(t, entries, MaxSize)
	require.Equal(t, 9, entries[9])

	part, err := ParsePartition("[10]")
	require.NoError(t, err)
	require.Equal(t, Partition{10}, part)

	part, err = ParsePartition("[1, 1, 1, 1, 1, 1, 1, 1, 1, 1]")
	require.NoError(t, err)
	require.Len(t, part, MaxSize)
	require.Equal(t, MaxSize, part.Size())

	path, err := ParsePath("0 0 0 0 0 0 0 0 0 9")
	require.NoError(t, err)
	require.Len(t, path, MaxSize)
}

func TestParseTyped(t *testing.T) {
	path, err := ParsePath("(0, 0, 2)")
	require.NoError(t, err)
	require.Equal(t, Path{0, 0, 2}, path)

	_, err = ParsePath("021")
	require.ErrorIs(t, err, ErrBadPath)

	perm, err := ParsePerm("201")
	require.NoError(t, err)
	require.Equal(t, Perm{2, 0, 1}, perm)

	_, err = ParsePerm("211")
	require.ErrorIs(t, err, ErrBadPerm)

	code, err := ParseCode("012")
	require.NoError(t, err)
	require.Equal(t, Code{0, 1, 2}, code)

	part, err := ParsePartition("[2, 1, 1]")
	require.NoError(t, err)
	require.Equal(t, Partition{2, 1, 1}, part)

	_, err = ParsePartition("[1, 2]")
	require.ErrorIs(t, err, ErrBadPartition)
}

func TestParseTableKind(t *testing.T) {
	kind, err := ParseTableKind("Right")
	require.NoError(t, err)
	require.Equal(t, RightTable, kind)

	kind, err = ParseTableKind(LeftTable.String())
	require.NoError(t, err)
	require.Equal(t, LeftTable, kind)

	_, err = ParseTableKind("middle")
	require.ErrorIs(t, err, ErrBadKind)
}
