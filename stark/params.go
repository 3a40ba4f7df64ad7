package stark

import (
	"github.com/proteus-stark/proteus/errs"
	"github.com/proteus-stark/proteus/field"
	"github.com/proteus-stark/proteus/fri"
	"github.com/proteus-stark/proteus/polynomial"
)

// Params is Pi_S of spec.md §3: (F, omega_FRI, omega_trace), plus the FRI
// parameters the STARK prover/verifier delegate to.
type Params struct {
	Field *field.Field
	FRI   *fri.Params

	TraceHeight int // next power of two >= n_rows
	OmegaTrace  field.Element
	TraceDomain *polynomial.Domain // H = {omega_trace^i : 0 <= i < TraceHeight}
}

// NewParams derives omega_trace from the trace row count and wraps the
// supplied FRI parameters; fri.NewParams should already have been called to
// produce friParams against the same field.
func NewParams(f *field.Field, numRows int, friParams *fri.Params) (*Params, error) {
	if numRows <= 0 {
		return nil, errs.NewParameterError("trace must have at least one row", nil)
	}
	height := nextPowerOfTwo(numRows)
	omega, err := f.PrimitiveRootOfUnity(uint64(height))
	if err != nil {
		return nil, errs.NewParameterError("failed to find a primitive root of unity for the trace domain", err)
	}
	traceDomain := polynomial.NewDomain(f.One(), omega, height)

	return &Params{
		Field:       f,
		FRI:         friParams,
		TraceHeight: height,
		OmegaTrace:  omega,
		TraceDomain: traceDomain,
	}, nil
}

func nextPowerOfTwo(n int) int {
	p := 1
	for p < n {
		p <<= 1
	}
	return p
}
