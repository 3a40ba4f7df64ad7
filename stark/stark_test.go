package stark_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/proteus-stark/proteus/field"
	"github.com/proteus-stark/proteus/fri"
	"github.com/proteus-stark/proteus/internal/fixtures"
	"github.com/proteus-stark/proteus/sponge"
	"github.com/proteus-stark/proteus/stark"
)

func testParams(t *testing.T, f *field.Field, numRows int) *stark.Params {
	t.Helper()
	friParams, err := fri.NewParams(f, 2, 2, 32, 4, 8)
	require.NoError(t, err)
	params, err := stark.NewParams(f, numRows, friParams)
	require.NoError(t, err)
	return params
}

func TestProveVerifyFibonacci(t *testing.T) {
	f := field.Toy193()
	air, err := fixtures.Fibonacci(f, 16)
	require.NoError(t, err)
	params := testParams(t, f, 16)

	proof, err := stark.Prove(params, air, sponge.New())
	require.NoError(t, err)

	require.NoError(t, stark.Verify(params, air.Statement(), proof, sponge.New()))
}

// TestVerifyRejectsFlippedFibonacciBoundary exercises spec.md §8 scenario
// 4's negative case: flipping the claimed F(15) from 610 to 611 must make
// verification fail.
func TestVerifyRejectsFlippedFibonacciBoundary(t *testing.T) {
	f := field.Toy193()
	air, err := fixtures.Fibonacci(f, 16)
	require.NoError(t, err)
	params := testParams(t, f, 16)

	proof, err := stark.Prove(params, air, sponge.New())
	require.NoError(t, err)

	other, err := fixtures.Fibonacci(f, 16)
	require.NoError(t, err)
	last := len(other.Boundary) - 1
	require.Equal(t, 15, other.Boundary[last].Row)
	require.True(t, other.Boundary[last].Value.Equal(f.NewElementFromInt64(610)))
	other.Boundary[last].Value = f.NewElementFromInt64(611)

	err = stark.Verify(params, other.Statement(), proof, sponge.New())
	require.Error(t, err)
}

func TestProveVerifyFactorial(t *testing.T) {
	f := field.Toy193()
	air, err := fixtures.Factorial(f, 5)
	require.NoError(t, err)
	params := testParams(t, f, 6) // n+1 rows

	wantBoundary := []struct {
		row, register int
		value         int64
	}{
		{0, 0, 0},
		{0, 1, 1},
		{5, 0, 5},
		{5, 1, 120},
	}
	require.Len(t, air.Boundary, len(wantBoundary))
	for i, want := range wantBoundary {
		got := air.Boundary[i]
		require.Equal(t, want.row, got.Row)
		require.Equal(t, want.register, got.Register)
		require.True(t, got.Value.Equal(f.NewElementFromInt64(want.value)))
	}

	proof, err := stark.Prove(params, air, sponge.New())
	require.NoError(t, err)

	require.NoError(t, stark.Verify(params, air.Statement(), proof, sponge.New()))
}

func TestProveVerifyCounter(t *testing.T) {
	f := field.Toy193()
	air, err := fixtures.Counter(f, 8)
	require.NoError(t, err)
	params := testParams(t, f, 8)

	proof, err := stark.Prove(params, air, sponge.New())
	require.NoError(t, err)

	require.NoError(t, stark.Verify(params, air.Statement(), proof, sponge.New()))
}

func TestVerifyRejectsTamperedBoundaryQuotientOpening(t *testing.T) {
	f := field.Toy193()
	air, err := fixtures.Counter(f, 8)
	require.NoError(t, err)
	params := testParams(t, f, 8)

	proof, err := stark.Prove(params, air, sponge.New())
	require.NoError(t, err)
	require.NotEmpty(t, proof.BQCurrent.StackedRows[0])

	proof.BQCurrent.StackedRows[0][0][0] = proof.BQCurrent.StackedRows[0][0][0].Add(f.One())

	err = stark.Verify(params, air.Statement(), proof, sponge.New())
	require.Error(t, err)
}

func TestVerifyRejectsWrongStatement(t *testing.T) {
	f := field.Toy193()
	air, err := fixtures.Counter(f, 8)
	require.NoError(t, err)
	params := testParams(t, f, 8)

	proof, err := stark.Prove(params, air, sponge.New())
	require.NoError(t, err)

	other, err := fixtures.Counter(f, 8)
	require.NoError(t, err)
	// Mutate the public boundary claim so it no longer matches the proof.
	other.Boundary[0].Value = other.Boundary[0].Value.Add(f.One())

	err = stark.Verify(params, other.Statement(), proof, sponge.New())
	require.Error(t, err)
}

func TestMarshalCanonicalRoundTrips(t *testing.T) {
	f := field.Toy193()
	air, err := fixtures.Counter(f, 8)
	require.NoError(t, err)
	params := testParams(t, f, 8)

	proof, err := stark.Prove(params, air, sponge.New())
	require.NoError(t, err)

	encoded := proof.MarshalCanonical()
	decoded, err := stark.UnmarshalCanonical(f, encoded)
	require.NoError(t, err)

	require.NoError(t, stark.Verify(params, air.Statement(), decoded, sponge.New()))
}
