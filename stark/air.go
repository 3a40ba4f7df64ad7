// Package stark reduces AIR execution-trace correctness to a single FRI
// proof over a random linear combination of constraint quotients.
package stark

import (
	"github.com/proteus-stark/proteus/errs"
	"github.com/proteus-stark/proteus/field"
	"github.com/proteus-stark/proteus/polynomial"
)

// BoundaryConstraint asserts trace[row][register] == value.
type BoundaryConstraint struct {
	Row      int
	Register int
	Value    field.Element
}

// AIR is the externally supplied Algebraic Intermediate Representation: an
// execution trace, its boundary constraints, and its transition
// constraints (spec.md §3's AIR contract).
type AIR struct {
	Field       *field.Field
	NumRegisters int
	Trace       [][]field.Element // n_rows x n_registers

	Boundary   []BoundaryConstraint
	Transition []*polynomial.Multivariate // each of arity 2*NumRegisters
}

// NewAIR validates and builds an AIR instance. Transition constraints must
// each have arity exactly 2*numRegisters (current row concatenated with
// next row) — spec.md §9's resolved Open Question makes a mismatched arity
// a ParameterError at registration time rather than undefined behavior.
func NewAIR(f *field.Field, numRegisters int, trace [][]field.Element, boundary []BoundaryConstraint, transition []*polynomial.Multivariate) (*AIR, error) {
	if numRegisters <= 0 {
		return nil, errs.NewParameterError("AIR must declare at least one register", nil)
	}
	if len(trace) == 0 {
		return nil, errs.NewParameterError("AIR trace must have at least one row", nil)
	}
	for i, row := range trace {
		if len(row) != numRegisters {
			return nil, errs.NewParameterError("trace row has the wrong width", nil)
		}
		_ = i
	}
	for _, t := range transition {
		if t.Arity() != 2*numRegisters {
			return nil, errs.NewParameterError("transition constraint arity must equal 2*numRegisters", nil)
		}
	}
	for _, b := range boundary {
		if b.Register < 0 || b.Register >= numRegisters {
			return nil, errs.NewParameterError("boundary constraint references an out-of-range register", nil)
		}
		if b.Row < 0 || b.Row >= len(trace) {
			return nil, errs.NewParameterError("boundary constraint references an out-of-range row", nil)
		}
	}
	return &AIR{
		Field:        f,
		NumRegisters: numRegisters,
		Trace:        trace,
		Boundary:     boundary,
		Transition:   transition,
	}, nil
}

// Statement is the public portion of an AIR contract: everything the
// verifier is given, with the trace withheld. The verifier never sees
// air.Trace — only the claim that some trace satisfying these constraints
// exists.
type Statement struct {
	NumRegisters int
	Boundary     []BoundaryConstraint
	Transition   []*polynomial.Multivariate
}

// Statement extracts the public statement a verifier checks a proof against.
func (air *AIR) Statement() *Statement {
	return &Statement{
		NumRegisters: air.NumRegisters,
		Boundary:     air.Boundary,
		Transition:   air.Transition,
	}
}
