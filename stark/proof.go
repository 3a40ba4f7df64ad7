package stark

import (
	"github.com/proteus-stark/proteus/field"
	"github.com/proteus-stark/proteus/fri"
	"github.com/proteus-stark/proteus/merkle"
)

// BoundaryQuotientOpenings carries one Merkle commitment and its openings
// at the FRI round-0 query indices, per register, for either the current-
// domain or the omega_trace-shifted-domain boundary quotient commitment.
type BoundaryQuotientOpenings struct {
	Roots       [][]byte          // one root per register
	StackedRows [][][]field.Element // StackedRows[register][queryPos] = stacked row
	Paths       [][]merkle.Path   // Paths[register][queryPos]
}

// Proof is a complete STARK proof: the combination polynomial's FRI proof
// plus the boundary-quotient openings needed to reconstruct trace values
// at the queried positions (spec.md §4.5 step 9).
type Proof struct {
	Combination *fri.Proof
	BQCurrent   BoundaryQuotientOpenings
	BQNext      BoundaryQuotientOpenings
}
