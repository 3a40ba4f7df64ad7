// Package polynomial implements univariate and sparse multivariate
// polynomial arithmetic over a field.Field, plus the domain-folding
// primitives the FRI protocol is built on.
package polynomial

import (
	"fmt"

	"github.com/proteus-stark/proteus/field"
)

// Polynomial is a univariate polynomial with coefficients in ascending
// order: coefficients[i] is the coefficient of X^i.
type Polynomial struct {
	coefficients []field.Element
	field        *field.Field
}

// New builds a polynomial from coefficients in ascending order, trimming
// leading zero coefficients.
func New(f *field.Field, coefficients []field.Element) *Polynomial {
	trimmed := trim(coefficients, f)
	return &Polynomial{coefficients: trimmed, field: f}
}

// NewFromInt64 builds a polynomial from int64 coefficients.
func NewFromInt64(f *field.Field, coefficients []int64) *Polynomial {
	elems := make([]field.Element, len(coefficients))
	for i, c := range coefficients {
		elems[i] = f.NewElementFromInt64(c)
	}
	return New(f, elems)
}

func trim(coefficients []field.Element, f *field.Field) []field.Element {
	last := len(coefficients) - 1
	for last >= 0 && coefficients[last].IsZero() {
		last--
	}
	if last < 0 {
		return []field.Element{f.Zero()}
	}
	out := make([]field.Element, last+1)
	copy(out, coefficients[:last+1])
	return out
}

// Zero returns the zero polynomial over f.
func Zero(f *field.Field) *Polynomial { return New(f, []field.Element{f.Zero()}) }

// Field returns the field the polynomial is defined over.
func (p *Polynomial) Field() *field.Field { return p.field }

// Degree returns the polynomial's degree. The zero polynomial has degree 0
// by this library's convention (matching teacher's single-zero-coefficient
// representation); callers that need "degree -1 for the zero polynomial"
// semantics should check IsZero first.
func (p *Polynomial) Degree() int { return len(p.coefficients) - 1 }

// IsZero reports whether p is the zero polynomial.
func (p *Polynomial) IsZero() bool {
	return len(p.coefficients) == 1 && p.coefficients[0].IsZero()
}

// Coefficient returns the coefficient of X^degree, or zero if out of range.
func (p *Polynomial) Coefficient(degree int) field.Element {
	if degree < 0 || degree >= len(p.coefficients) {
		return p.field.Zero()
	}
	return p.coefficients[degree]
}

// Coefficients returns a copy of the coefficient list (ascending order).
func (p *Polynomial) Coefficients() []field.Element {
	out := make([]field.Element, len(p.coefficients))
	copy(out, p.coefficients)
	return out
}

// LeadingCoefficient returns the coefficient of the highest-degree term.
func (p *Polynomial) LeadingCoefficient() field.Element {
	return p.coefficients[len(p.coefficients)-1]
}

// Eval evaluates p(x) using Horner's method.
func (p *Polynomial) Eval(x field.Element) field.Element {
	result := p.field.Zero()
	for i := len(p.coefficients) - 1; i >= 0; i-- {
		result = result.Mul(x).Add(p.coefficients[i])
	}
	return result
}

// EvalMany evaluates p at every point in xs.
func (p *Polynomial) EvalMany(xs []field.Element) []field.Element {
	out := make([]field.Element, len(xs))
	for i, x := range xs {
		out[i] = p.Eval(x)
	}
	return out
}

// Add returns p + other.
func (p *Polynomial) Add(other *Polynomial) *Polynomial {
	n := max(len(p.coefficients), len(other.coefficients))
	out := make([]field.Element, n)
	for i := 0; i < n; i++ {
		out[i] = p.Coefficient(i).Add(other.Coefficient(i))
	}
	return New(p.field, out)
}

// Sub returns p - other.
func (p *Polynomial) Sub(other *Polynomial) *Polynomial {
	n := max(len(p.coefficients), len(other.coefficients))
	out := make([]field.Element, n)
	for i := 0; i < n; i++ {
		out[i] = p.Coefficient(i).Sub(other.Coefficient(i))
	}
	return New(p.field, out)
}

// Mul returns p * other.
func (p *Polynomial) Mul(other *Polynomial) *Polynomial {
	if p.IsZero() || other.IsZero() {
		return Zero(p.field)
	}
	out := make([]field.Element, len(p.coefficients)+len(other.coefficients)-1)
	for i := range out {
		out[i] = p.field.Zero()
	}
	for i, a := range p.coefficients {
		if a.IsZero() {
			continue
		}
		for j, b := range other.coefficients {
			out[i+j] = out[i+j].Add(a.Mul(b))
		}
	}
	return New(p.field, out)
}

// MulScalar returns p scaled by a.
func (p *Polynomial) MulScalar(a field.Element) *Polynomial {
	out := make([]field.Element, len(p.coefficients))
	for i, c := range p.coefficients {
		out[i] = c.Mul(a)
	}
	return New(p.field, out)
}

// Scale returns g(a*X): the i-th coefficient scaled by a^i.
func (p *Polynomial) Scale(a field.Element) *Polynomial {
	out := make([]field.Element, len(p.coefficients))
	power := p.field.One()
	for i, c := range p.coefficients {
		out[i] = c.Mul(power)
		power = power.Mul(a)
	}
	return New(p.field, out)
}

// QuotientExact divides p by other (in this library, a zerofier
// prod(X - xi) built by FromRoots) and requires the remainder be exactly
// zero, returning a plain error otherwise; the STARK prover wraps that error
// in a ProtocolViolation. This is the "quotient" primitive of spec.md §4.1.
func (p *Polynomial) QuotientExact(other *Polynomial) (*Polynomial, error) {
	q, r, err := p.DivMod(other)
	if err != nil {
		return nil, err
	}
	if !r.IsZero() {
		return nil, fmt.Errorf("polynomial: division by %v left nonzero remainder %v", other, r)
	}
	return q, nil
}

// DivMod performs polynomial long division, returning quotient and
// remainder such that p = quotient*other + remainder.
func (p *Polynomial) DivMod(other *Polynomial) (*Polynomial, *Polynomial, error) {
	if other.IsZero() {
		return nil, nil, fmt.Errorf("polynomial: division by zero polynomial")
	}
	if other.Degree() > p.Degree() || p.IsZero() {
		return Zero(p.field), New(p.field, p.Coefficients()), nil
	}

	remainder := p.Coefficients()
	quotient := make([]field.Element, p.Degree()-other.Degree()+1)
	for i := range quotient {
		quotient[i] = p.field.Zero()
	}
	leadInv, err := other.LeadingCoefficient().Inv()
	if err != nil {
		return nil, nil, fmt.Errorf("polynomial: divisor leading coefficient not invertible: %w", err)
	}

	for deg := len(remainder) - 1; deg >= other.Degree(); deg-- {
		coeff := remainder[deg]
		if coeff.IsZero() {
			continue
		}
		factor := coeff.Mul(leadInv)
		quotient[deg-other.Degree()] = factor
		for j, oc := range other.coefficients {
			idx := deg - other.Degree() + j
			remainder[idx] = remainder[idx].Sub(factor.Mul(oc))
		}
	}
	return New(p.field, quotient), New(p.field, remainder), nil
}

// FromRoots builds prod(X - xi) for the given roots — the zerofier
// construction spec.md §3 calls Z(X).
func FromRoots(f *field.Field, roots []field.Element) *Polynomial {
	result := New(f, []field.Element{f.One()})
	for _, r := range roots {
		linear := New(f, []field.Element{r.Neg(), f.One()})
		result = result.Mul(linear)
	}
	return result
}

// Interpolate performs Lagrange interpolation through the given (x, y)
// pairs, returning the unique polynomial of degree < len(xs) passing
// through all of them.
func Interpolate(f *field.Field, xs, ys []field.Element) (*Polynomial, error) {
	if len(xs) != len(ys) {
		return nil, fmt.Errorf("polynomial: interpolation needs equal-length x/y slices")
	}
	if len(xs) == 0 {
		return nil, fmt.Errorf("polynomial: need at least one point to interpolate")
	}

	// denominators[i] = prod_{j != i} (xs[i] - xs[j]), batch-inverted together.
	denominators := make([]field.Element, len(xs))
	for i := range xs {
		d := f.One()
		for j := range xs {
			if i == j {
				continue
			}
			diff := xs[i].Sub(xs[j])
			if diff.IsZero() {
				return nil, fmt.Errorf("polynomial: duplicate x-coordinate %v", xs[i])
			}
			d = d.Mul(diff)
		}
		denominators[i] = d
	}
	invDenominators, err := field.BatchInversion(denominators)
	if err != nil {
		return nil, fmt.Errorf("polynomial: interpolation failed: %w", err)
	}

	result := Zero(f)
	for i := range xs {
		basis := New(f, []field.Element{f.One()})
		for j := range xs {
			if i == j {
				continue
			}
			linear := New(f, []field.Element{xs[j].Neg(), f.One()})
			basis = basis.Mul(linear)
		}
		term := basis.MulScalar(ys[i].Mul(invDenominators[i]))
		result = result.Add(term)
	}
	return result, nil
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// String renders the polynomial in descending-degree form, e.g. "3x^2 + 1x + 1".
func (p *Polynomial) String() string {
	if p.IsZero() {
		return "0"
	}
	out := ""
	for i := p.Degree(); i >= 0; i-- {
		c := p.Coefficient(i)
		if c.IsZero() {
			continue
		}
		if out != "" {
			out += " + "
		}
		switch i {
		case 0:
			out += c.String()
		case 1:
			out += c.String() + "x"
		default:
			out += fmt.Sprintf("%sx^%d", c.String(), i)
		}
	}
	return out
}
