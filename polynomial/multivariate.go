package polynomial

import (
	"fmt"

	"github.com/proteus-stark/proteus/field"
)

// Multivariate is a sparse multivariate polynomial: a map from an exponent
// tuple to its coefficient. All terms must have the same tuple length
// (the polynomial's arity).
type Multivariate struct {
	field *field.Field
	arity int
	terms map[string]term
}

type term struct {
	exponents []int
	coeff     field.Element
}

// NewMultivariate builds a multivariate polynomial with the given arity
// (number of variables) and no terms (the zero polynomial).
func NewMultivariate(f *field.Field, arity int) *Multivariate {
	return &Multivariate{field: f, arity: arity, terms: map[string]term{}}
}

// AddTerm adds coeff * prod(X_i^exponents[i]) to the polynomial. exponents
// must have length == arity.
func (m *Multivariate) AddTerm(coeff field.Element, exponents []int) error {
	if len(exponents) != m.arity {
		return fmt.Errorf("multivariate: exponent tuple has length %d, want arity %d", len(exponents), m.arity)
	}
	key := exponentKey(exponents)
	if existing, ok := m.terms[key]; ok {
		coeff = coeff.Add(existing.coeff)
	}
	if coeff.IsZero() {
		delete(m.terms, key)
		return nil
	}
	m.terms[key] = term{exponents: append([]int(nil), exponents...), coeff: coeff}
	return nil
}

func exponentKey(exponents []int) string {
	key := make([]byte, 0, len(exponents)*4)
	for _, e := range exponents {
		key = append(key, byte(e>>24), byte(e>>16), byte(e>>8), byte(e))
	}
	return string(key)
}

// Arity returns the number of variables the polynomial is declared over.
func (m *Multivariate) Arity() int { return m.arity }

// Eval evaluates the polynomial at a single point (one value per variable).
func (m *Multivariate) Eval(point []field.Element) (field.Element, error) {
	if len(point) != m.arity {
		return field.Element{}, fmt.Errorf("multivariate: point has %d coordinates, want %d", len(point), m.arity)
	}
	result := m.field.Zero()
	for _, t := range m.terms {
		v := t.coeff
		for i, e := range t.exponents {
			if e == 0 {
				continue
			}
			v = v.Mul(point[i].ExpUint64(uint64(e)))
		}
		result = result.Add(v)
	}
	return result, nil
}

// EvalMany evaluates the polynomial at each row of points (broadcast:
// points[k] is one full assignment of all `arity` variables).
func (m *Multivariate) EvalMany(points [][]field.Element) ([]field.Element, error) {
	out := make([]field.Element, len(points))
	for i, p := range points {
		v, err := m.Eval(p)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

// Substitute replaces every variable X_i with the univariate polynomial
// substitutions[i], re-expanding the whole expression into a single
// univariate polynomial over the shared domain variable. This is the
// "symbolic substitution" spec.md §3 requires for transition-constraint
// composition: current/next trace columns are each a univariate polynomial
// in X, and a transition constraint (multivariate in 2*n_registers
// variables) is composed with them to produce one univariate polynomial.
func (m *Multivariate) Substitute(substitutions []*Polynomial) (*Polynomial, error) {
	if len(substitutions) != m.arity {
		return nil, fmt.Errorf("multivariate: got %d substitutions, want %d", len(substitutions), m.arity)
	}
	result := Zero(m.field)
	for _, t := range m.terms {
		termPoly := New(m.field, []field.Element{t.coeff})
		for i, e := range t.exponents {
			if e == 0 {
				continue
			}
			powered := powPoly(substitutions[i], e)
			termPoly = termPoly.Mul(powered)
		}
		result = result.Add(termPoly)
	}
	return result, nil
}

func powPoly(p *Polynomial, exponent int) *Polynomial {
	result := New(p.field, []field.Element{p.field.One()})
	base := p
	for exponent > 0 {
		if exponent&1 == 1 {
			result = result.Mul(base)
		}
		base = base.Mul(base)
		exponent >>= 1
	}
	return result
}
