package merkle

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func leavesOf(n int) [][]byte {
	out := make([][]byte, n)
	for i := range out {
		out[i] = []byte{byte(i), byte(i * 7)}
	}
	return out
}

func TestProveBulkVerifyBulkRoundTrips(t *testing.T) {
	leaves := leavesOf(7) // odd count exercises the duplicate-last-node path
	tree, err := New(leaves)
	require.NoError(t, err)

	indices := []int{0, 3, 6}
	paths, err := tree.ProveBulk(indices)
	require.NoError(t, err)

	queried := make([][]byte, len(indices))
	for i, idx := range indices {
		queried[i] = leaves[idx]
	}
	require.True(t, VerifyBulk(queried, tree.Root(), paths, indices))
}

func TestVerifyBulkRejectsTamperedLeaf(t *testing.T) {
	leaves := leavesOf(4)
	tree, err := New(leaves)
	require.NoError(t, err)

	paths, err := tree.ProveBulk([]int{1})
	require.NoError(t, err)

	tampered := [][]byte{{0xff, 0xff}}
	require.False(t, VerifyBulk(tampered, tree.Root(), paths, []int{1}))
}

func TestVerifyBulkRejectsWrongRoot(t *testing.T) {
	leaves := leavesOf(4)
	tree, err := New(leaves)
	require.NoError(t, err)

	paths, err := tree.ProveBulk([]int{0})
	require.NoError(t, err)

	other, err := New(leavesOf(4))
	require.NoError(t, err)
	other.leafHashes[0][0] ^= 0xff // perturb to get a different root deterministically
	other.rebuild()

	require.False(t, VerifyBulk([][]byte{leaves[0]}, other.Root(), paths, []int{0}))
}

func TestProveRejectsOutOfRangeIndex(t *testing.T) {
	tree, err := New(leavesOf(3))
	require.NoError(t, err)

	_, err = tree.ProveBulk([]int{5})
	require.Error(t, err)
}

func TestNewRejectsEmptyLeafSet(t *testing.T) {
	_, err := New(nil)
	require.Error(t, err)
}
