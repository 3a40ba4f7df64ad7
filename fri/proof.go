package fri

import (
	"github.com/proteus-stark/proteus/field"
	"github.com/proteus-stark/proteus/merkle"
	"github.com/proteus-stark/proteus/polynomial"
)

// RoundProof is one round's worth of opened data: the stacked evaluation
// rows at the queried indices, their Merkle paths, and the indices
// themselves (spec.md §3).
type RoundProof struct {
	Indices     []int
	StackedRows [][]field.Element
	Paths       []merkle.Path
}

// Proof is a complete FRI proof: per-round commitments and openings, the
// final polynomial, and the degree-correction polynomial carried from
// round 0's expand_ext call.
type Proof struct {
	Roots            [][]byte
	Rounds           []RoundProof
	FinalPolynomial  *polynomial.Polynomial
	DegreeCorrection *polynomial.Polynomial
}
