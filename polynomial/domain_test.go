package polynomial

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/proteus-stark/proteus/field"
)

func toy8Domain(t *testing.T) (*field.Field, *Domain) {
	t.Helper()
	f := field.Toy193()
	omega, err := f.PrimitiveRootOfUnity(8)
	require.NoError(t, err)
	return f, NewDomain(f.One(), omega, 8)
}

func TestFoldDomainHalvesAndSquares(t *testing.T) {
	_, d := toy8Domain(t)

	folded, err := d.FoldDomain(2)
	require.NoError(t, err)
	require.Equal(t, 4, folded.Length)
	require.True(t, folded.Generator.Equal(d.Generator.Mul(d.Generator)))
}

func TestFoldDomainRejectsNonDivisor(t *testing.T) {
	_, d := toy8Domain(t)
	_, err := d.FoldDomain(3)
	require.Error(t, err)
}

func TestStackReshapesColumnMajor(t *testing.T) {
	f := field.Toy193()
	v := make([]field.Element, 6)
	for i := range v {
		v[i] = f.NewElementFromInt64(int64(i))
	}
	rows, err := Stack(v, 2)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	// S[i][j] = v[i + j*3]
	require.True(t, rows[0][0].Equal(v[0]))
	require.True(t, rows[0][1].Equal(v[3]))
	require.True(t, rows[2][1].Equal(v[5]))
}

func TestExtendIndicesMapsBackToFoldedIndex(t *testing.T) {
	rows := ExtendIndices([]int{1}, 8, 2)
	require.Equal(t, [][]int{{1, 5}}, rows)
}

func TestFoldIndicesSortsAndDedups(t *testing.T) {
	// 5 mod 4 = 1, 1 mod 4 = 1, 9 mod 4 = 1: all collide into {1}.
	out := FoldIndices([]int{5, 1, 1, 9}, 4)
	require.Equal(t, []int{1}, out)

	out = FoldIndices([]int{6, 2, 11}, 4)
	require.Equal(t, []int{2, 3}, out) // 6 mod 4=2, 2 mod 4=2, 11 mod 4=3
}

func TestFoldSortGenerateDedupsByNewIndex(t *testing.T) {
	f := field.Toy193()
	indices := []int{5, 1, 9}
	values := []field.Element{f.NewElementFromInt64(50), f.NewElementFromInt64(10), f.NewElementFromInt64(90)}

	newIdx, checkIdx, folded, err := FoldSortGenerate(indices, 4, values)
	require.NoError(t, err)

	// indices mod 4: 5->1, 1->1, 9->1 -- all collide, first occurrence (5) wins.
	require.Equal(t, []int{1}, newIdx)
	require.Equal(t, []int{5 / 4}, checkIdx)
	require.True(t, folded[0].Equal(values[0]))
}

func TestDegreeCorrectRestoresLength(t *testing.T) {
	f := field.Toy193()
	g := NewFromInt64(f, []int64{1, 2}) // degree 1, 2 coefficients
	r := f.NewElementFromInt64(3)

	corrected, c, err := DegreeCorrect(g, r, 5)
	require.NoError(t, err)
	require.Len(t, corrected.Coefficients(), 5) // deg(g*c)+1 = (1+3)+1
	require.Len(t, c.Coefficients(), 4)          // gap+1 = 5-2+1

	x := f.NewElementFromInt64(7)
	require.True(t, corrected.Eval(x).Equal(g.Eval(x).Mul(c.Eval(x))))
}

func TestDegreeCorrectRejectsTooSmallTarget(t *testing.T) {
	f := field.Toy193()
	g := NewFromInt64(f, []int64{1, 2, 3, 4})
	_, _, err := DegreeCorrect(g, f.One(), 1)
	require.Error(t, err)
}
