package fri

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/proteus-stark/proteus/field"
	"github.com/proteus-stark/proteus/polynomial"
)

// TestSeededToy193ConsistencyStep exercises the per-round consistency
// check by hand against the scenario fixed in spec.md §8: the fold at
// randomness phi=14 of the given ascending coefficient list, checked at
// the queried positions, must agree with what fold_polynomial produces.
func TestSeededToy193ConsistencyStep(t *testing.T) {
	f := field.Toy193()
	coeffsInt := []int64{62, 0, 107, 46, 171, 87, 127, 10, 86, 100, 8, 119, 31, 37, 22, 52}
	g := polynomial.NewFromInt64(f, coeffsInt)
	phi := f.NewElementFromInt64(14)
	k := 2

	folded, err := polynomial.FoldPolynomial(g, phi, k)
	require.NoError(t, err)

	omega, err := f.PrimitiveRootOfUnity(64)
	require.NoError(t, err)
	offset, err := f.PrimitiveElement()
	require.NoError(t, err)
	domain := polynomial.NewDomain(offset, omega, 64)

	foldedDomain, err := domain.FoldDomain(k)
	require.NoError(t, err)

	for _, idx := range []int{8, 25} {
		preimage := polynomial.ExtendIndices([]int{idx}, domain.Length, k)[0]
		domainElems := domain.Elements()
		xs := make([]field.Element, k)
		ys := make([]field.Element, k)
		for c, p := range preimage {
			xs[c] = domainElems[p]
			ys[c] = g.Eval(xs[c])
		}
		p, err := polynomial.Interpolate(f, xs, ys)
		require.NoError(t, err)

		foldedElems := foldedDomain.Elements()
		require.True(t, p.Eval(phi).Equal(folded.Eval(foldedElems[idx])))
	}
}
