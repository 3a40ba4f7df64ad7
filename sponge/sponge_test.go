package sponge

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/proteus-stark/proteus/field"
)

func TestSqueezeIsDeterministicGivenSameAbsorbs(t *testing.T) {
	a := New()
	b := New()
	a.Absorb([]byte("root-0"))
	b.Absorb([]byte("root-0"))

	f := field.Toy193()
	require.True(t, a.SqueezeFieldElement(f).Equal(b.SqueezeFieldElement(f)))
}

func TestSuccessiveSqueezesDiffer(t *testing.T) {
	s := New()
	s.Absorb([]byte("seed"))

	f := field.Toy193()
	first := s.SqueezeFieldElement(f)
	second := s.SqueezeFieldElement(f)
	require.False(t, first.Equal(second))
}

func TestAbsorbResetsCounterButChangesOutput(t *testing.T) {
	s := New()
	s.Absorb([]byte("seed"))
	f := field.Toy193()
	_ = s.SqueezeFieldElement(f) // advance the counter once

	s.Absorb([]byte("more")) // resets counter to 0

	other := New()
	other.Absorb([]byte("seed"))
	other.Absorb([]byte("more"))

	require.True(t, s.SqueezeFieldElement(f).Equal(other.SqueezeFieldElement(f)))
}

func TestSqueezeDistinctIndicesAreUnique(t *testing.T) {
	s := New()
	s.Absorb([]byte("domain"))

	indices, err := s.SqueezeDistinctIndices(10, 100)
	require.NoError(t, err)
	require.Len(t, indices, 10)

	seen := make(map[int]bool)
	for _, idx := range indices {
		require.False(t, seen[idx], "index %d repeated", idx)
		require.GreaterOrEqual(t, idx, 0)
		require.Less(t, idx, 100)
		seen[idx] = true
	}
}

func TestSqueezeDistinctIndicesRejectsOversizedRequest(t *testing.T) {
	s := New()
	_, err := s.SqueezeDistinctIndices(5, 3)
	require.Error(t, err)
}

func TestSqueezeIntIsWithinBound(t *testing.T) {
	s := New()
	s.Absorb([]byte("x"))
	for i := 0; i < 20; i++ {
		v := s.SqueezeInt(17)
		require.Less(t, v, uint64(17))
	}
}
