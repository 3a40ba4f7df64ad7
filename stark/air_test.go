package stark

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/proteus-stark/proteus/field"
	"github.com/proteus-stark/proteus/polynomial"
)

func TestNewAIRRejectsZeroRegisters(t *testing.T) {
	f := field.Toy193()
	_, err := NewAIR(f, 0, [][]field.Element{{f.Zero()}}, nil, nil)
	require.Error(t, err)
}

func TestNewAIRRejectsEmptyTrace(t *testing.T) {
	f := field.Toy193()
	_, err := NewAIR(f, 1, nil, nil, nil)
	require.Error(t, err)
}

func TestNewAIRRejectsMismatchedRowWidth(t *testing.T) {
	f := field.Toy193()
	trace := [][]field.Element{{f.Zero(), f.One()}, {f.One()}}
	_, err := NewAIR(f, 2, trace, nil, nil)
	require.Error(t, err)
}

func TestNewAIRRejectsWrongTransitionArity(t *testing.T) {
	f := field.Toy193()
	trace := [][]field.Element{{f.Zero()}, {f.One()}}
	constraint := polynomial.NewMultivariate(f, 1) // should be 2*numRegisters = 2
	require.NoError(t, constraint.AddTerm(f.One(), []int{1}))

	_, err := NewAIR(f, 1, trace, nil, []*polynomial.Multivariate{constraint})
	require.Error(t, err)
}

func TestNewAIRRejectsOutOfRangeBoundary(t *testing.T) {
	f := field.Toy193()
	trace := [][]field.Element{{f.Zero()}, {f.One()}}
	boundary := []BoundaryConstraint{{Row: 5, Register: 0, Value: f.Zero()}}

	_, err := NewAIR(f, 1, trace, boundary, nil)
	require.Error(t, err)
}

func TestStatementWithholdsTrace(t *testing.T) {
	f := field.Toy193()
	trace := [][]field.Element{{f.Zero()}, {f.One()}}
	air, err := NewAIR(f, 1, trace, nil, nil)
	require.NoError(t, err)

	statement := air.Statement()
	require.Equal(t, air.NumRegisters, statement.NumRegisters)
}
