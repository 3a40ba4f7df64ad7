package field

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestArithmeticOverToy193(t *testing.T) {
	f := Toy193()

	a := f.NewElementFromInt64(150)
	b := f.NewElementFromInt64(100)

	t.Run("addition wraps modulo p", func(t *testing.T) {
		require.True(t, a.Add(b).Equal(f.NewElementFromInt64(57))) // 250 mod 193
	})

	t.Run("subtraction wraps modulo p", func(t *testing.T) {
		require.True(t, b.Sub(a).Equal(f.NewElementFromInt64(193-50)))
	})

	t.Run("negation is additive inverse", func(t *testing.T) {
		require.True(t, a.Add(a.Neg()).IsZero())
	})

	t.Run("multiplicative inverse", func(t *testing.T) {
		inv, err := a.Inv()
		require.NoError(t, err)
		require.True(t, a.Mul(inv).IsOne())
	})

	t.Run("zero has no inverse", func(t *testing.T) {
		_, err := f.Zero().Inv()
		require.Error(t, err)
	})

	t.Run("division matches inverse multiplication", func(t *testing.T) {
		quot, err := a.Div(b)
		require.NoError(t, err)
		inv, err := b.Inv()
		require.NoError(t, err)
		require.True(t, quot.Equal(a.Mul(inv)))
	})

	t.Run("exp matches repeated multiplication", func(t *testing.T) {
		require.True(t, a.Exp(big.NewInt(3)).Equal(a.Mul(a).Mul(a)))
	})
}

func TestPrimitiveRootOfUnity(t *testing.T) {
	f := Goldilocks()

	omega, err := f.PrimitiveRootOfUnity(16)
	require.NoError(t, err)

	require.True(t, omega.ExpUint64(16).IsOne())
	require.False(t, omega.ExpUint64(8).IsOne())
}

func TestPrimitiveRootOfUnityRejectsNonDivisor(t *testing.T) {
	f := Toy193()
	// 193 - 1 = 192 = 2^6 * 3, so 5 does not divide the group order.
	_, err := f.PrimitiveRootOfUnity(5)
	require.Error(t, err)
}

func TestBatchInversion(t *testing.T) {
	f := Toy193()
	elems := []Element{f.NewElementFromInt64(2), f.NewElementFromInt64(5), f.NewElementFromInt64(17)}

	inverted, err := BatchInversion(elems)
	require.NoError(t, err)

	for i, e := range elems {
		individual, err := e.Inv()
		require.NoError(t, err)
		require.True(t, inverted[i].Equal(individual))
	}
}

func TestBatchInversionRejectsZero(t *testing.T) {
	f := Toy193()
	_, err := BatchInversion([]Element{f.One(), f.Zero()})
	require.Error(t, err)
}

func TestNewElementFromBytesRoundTrips(t *testing.T) {
	f := Goldilocks()
	e := f.NewElementFromUint64(123456789)
	require.True(t, f.NewElementFromBytes(e.Bytes()).Equal(e))
}

func TestFieldPresetsAreDistinct(t *testing.T) {
	require.False(t, Goldilocks().Equal(BabyBear()))
	require.False(t, BabyBear().Equal(Toy193()))
}
