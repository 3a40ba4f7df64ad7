package polynomial

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/proteus-stark/proteus/field"
)

func TestFoldDomainComposesWithSquaredFactor(t *testing.T) {
	f := field.Toy193()
	omega, err := f.PrimitiveRootOfUnity(16)
	require.NoError(t, err)
	d := NewDomain(f.One(), omega, 16)

	foldedTwice, err := d.FoldDomain(2)
	require.NoError(t, err)
	foldedTwice, err = foldedTwice.FoldDomain(2)
	require.NoError(t, err)

	foldedBySquare, err := d.FoldDomain(4)
	require.NoError(t, err)

	require.True(t, foldedTwice.Offset.Equal(foldedBySquare.Offset))
	require.True(t, foldedTwice.Generator.Equal(foldedBySquare.Generator))
	require.Equal(t, foldedTwice.Length, foldedBySquare.Length)
}

func TestExtendIndicesFoldIndicesAreInverse(t *testing.T) {
	n, k := 16, 2
	m := n / k
	indices := []int{0, 5, 1, 9}

	folded := FoldIndices(indices, m) // sort(dedup(I mod m))

	var preimages []int
	for _, i := range folded {
		preimages = append(preimages, ExtendIndices([]int{i}, n, k)[0]...)
	}

	require.Equal(t, folded, FoldIndices(preimages, m))
}
