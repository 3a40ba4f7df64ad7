// Package fri implements the FRI low-degree test: prover, verifier, and
// the parameter derivation tying folding factor, expansion factor, and
// security level to a concrete round count and evaluation domain.
package fri

import (
	"math"

	"github.com/proteus-stark/proteus/errs"
	"github.com/proteus-stark/proteus/field"
	"github.com/proteus-stark/proteus/polynomial"
)

// Params is Pi_F of spec.md §3: (k, rho, d0, df, lambda, F, omega, h, D).
type Params struct {
	Field              *field.Field
	FoldingFactor      int // k
	ExpansionFactor    int // rho
	InitialCoeffLen    int // d0
	FinalCoeffLen      int // df
	SecurityBits       int // lambda

	Domain *polynomial.Domain // D: the full FRI evaluation domain

	Repetitions int // R
	Rounds      int // r
}

// NewParams derives R and r from (k, rho, d0, df, lambda) and builds the
// initial evaluation domain D = [h*omega^i], rejecting inconsistent
// parameters with a ParameterError at construction time, before any proof
// state exists (spec.md §7).
func NewParams(f *field.Field, foldingFactor, expansionFactor, initialCoeffLen, finalCoeffLen, securityBits int) (*Params, error) {
	if foldingFactor < 2 || !isPowerOfTwo(foldingFactor) {
		return nil, errs.NewParameterError("folding factor must be a power of two >= 2", nil)
	}
	if expansionFactor < 2 || !isPowerOfTwo(expansionFactor) {
		return nil, errs.NewParameterError("expansion factor must be a power of two >= 2", nil)
	}
	if finalCoeffLen < 1 || !isPowerOfTwo(finalCoeffLen) {
		return nil, errs.NewParameterError("final coefficient length must be a power of two >= 1", nil)
	}
	if initialCoeffLen <= finalCoeffLen || !isPowerOfTwo(initialCoeffLen) {
		return nil, errs.NewParameterError("initial coefficient length must be a power of two strictly greater than the final coefficient length", nil)
	}
	if securityBits <= 0 {
		return nil, errs.NewParameterError("security level must be positive", nil)
	}

	// rounds = floor(log_k(d0/df)) - 1, following the teacher's "not sure
	// why exactly" STIR-derived convention (spec.md §9 Open Questions).
	ratio := math.Log(float64(initialCoeffLen)/float64(finalCoeffLen)) / math.Log(float64(foldingFactor))
	rounds := int(math.Floor(ratio)) - 1
	if rounds < 0 {
		return nil, errs.NewParameterError("derived round count is negative; widen the d0/df ratio or lower the folding factor", nil)
	}

	repetitions := int(math.Ceil(float64(securityBits) / math.Log2(float64(expansionFactor))))

	domainSize := initialCoeffLen * expansionFactor
	h, err := f.PrimitiveElement()
	if err != nil {
		return nil, errs.NewParameterError("failed to find a coset offset", err)
	}
	omega, err := f.PrimitiveRootOfUnity(uint64(domainSize))
	if err != nil {
		return nil, errs.NewParameterError("failed to find a primitive root of unity for the FRI domain", err)
	}
	domain := polynomial.NewDomain(h, omega, domainSize)

	return &Params{
		Field:           f,
		FoldingFactor:   foldingFactor,
		ExpansionFactor: expansionFactor,
		InitialCoeffLen: initialCoeffLen,
		FinalCoeffLen:   finalCoeffLen,
		SecurityBits:    securityBits,
		Domain:          domain,
		Repetitions:     repetitions,
		Rounds:          rounds,
	}, nil
}

func isPowerOfTwo(n int) bool { return n > 0 && n&(n-1) == 0 }
