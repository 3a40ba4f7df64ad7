package fri

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/proteus-stark/proteus/field"
)

func TestNewParamsRejectsNonPowerOfTwoFoldingFactor(t *testing.T) {
	f := field.Toy193()
	_, err := NewParams(f, 3, 4, 16, 2, 8)
	require.Error(t, err)
}

func TestNewParamsRejectsInitialShorterThanFinal(t *testing.T) {
	f := field.Toy193()
	_, err := NewParams(f, 2, 4, 4, 8, 8)
	require.Error(t, err)
}

func TestNewParamsRejectsNonPositiveSecurity(t *testing.T) {
	f := field.Toy193()
	_, err := NewParams(f, 2, 4, 16, 2, 0)
	require.Error(t, err)
}

func TestNewParamsDerivesRoundsAndDomain(t *testing.T) {
	f := field.Toy193()
	params, err := NewParams(f, 2, 4, 16, 2, 8)
	require.NoError(t, err)

	require.Equal(t, 2, params.Rounds) // floor(log2(16/2)) - 1 = 3 - 1
	require.Equal(t, 64, params.Domain.Length)
}
