// Package field implements prime-field arithmetic over an arbitrary modulus.
//
// Elements are backed by math/big so the same code serves the toy p=193
// field, the 31-bit BabyBear field, and the 64-bit Goldilocks field without
// separate fixed-width implementations.
package field

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

// Field is a prime field F_p.
type Field struct {
	modulus   *big.Int
	generator *Element // cached primitive element of F_p*, if known
}

// Element is a value in a Field.
type Element struct {
	field *Field
	value *big.Int
}

// New creates a prime field with the given modulus. The caller is
// responsible for modulus being prime; New does not test primality.
func New(modulus *big.Int) (*Field, error) {
	if modulus.Cmp(big.NewInt(2)) <= 0 {
		return nil, fmt.Errorf("field: modulus must be greater than 2")
	}
	return &Field{modulus: new(big.Int).Set(modulus)}, nil
}

// NewFromUint64 creates a prime field from a uint64 modulus.
func NewFromUint64(modulus uint64) (*Field, error) {
	return New(new(big.Int).SetUint64(modulus))
}

// Modulus returns a copy of the field modulus.
func (f *Field) Modulus() *big.Int {
	return new(big.Int).Set(f.modulus)
}

// Equal reports whether two fields share the same modulus.
func (f *Field) Equal(other *Field) bool {
	return f.modulus.Cmp(other.modulus) == 0
}

// NewElement reduces value modulo the field's modulus.
func (f *Field) NewElement(value *big.Int) Element {
	normalized := new(big.Int).Mod(value, f.modulus)
	return Element{field: f, value: normalized}
}

// NewElementFromInt64 creates an element from an int64.
func (f *Field) NewElementFromInt64(value int64) Element {
	return f.NewElement(big.NewInt(value))
}

// NewElementFromUint64 creates an element from a uint64.
func (f *Field) NewElementFromUint64(value uint64) Element {
	return f.NewElement(new(big.Int).SetUint64(value))
}

// NewElementFromBytes reduces an arbitrary-length big-endian byte string
// modulo the field's modulus. This is the rejection-free "sample via
// modulo of a large accumulator" construction spec.md §3 describes for
// uniform sampling from a byte string.
func (f *Field) NewElementFromBytes(data []byte) Element {
	acc := new(big.Int).SetBytes(data)
	return f.NewElement(acc)
}

// Zero returns the additive identity.
func (f *Field) Zero() Element { return f.NewElement(big.NewInt(0)) }

// One returns the multiplicative identity.
func (f *Field) One() Element { return f.NewElement(big.NewInt(1)) }

// RandomElement draws a cryptographically random element.
func (f *Field) RandomElement() (Element, error) {
	v, err := rand.Int(rand.Reader, f.modulus)
	if err != nil {
		return Element{}, fmt.Errorf("field: failed to sample random element: %w", err)
	}
	return f.NewElement(v), nil
}

// WithGenerator attaches a known primitive element of F_p* to the field,
// avoiding an expensive search in PrimitiveElement.
func (f *Field) WithGenerator(g int64) *Field {
	gen := f.NewElementFromInt64(g)
	f.generator = &gen
	return f
}

// PrimitiveElement returns the field's primitive element. If a generator
// was registered via WithGenerator it is returned directly; otherwise the
// first candidate in 2..999 that passes hasFullOrder is returned. That
// check only establishes that the candidate's order is not a divisor of
// (p-1)/2; odd prime factors of p-1 are not checked, so the fallback result
// is not guaranteed to generate all of F_p*. It does carry the full power
// of two dividing p-1, which is what PrimitiveRootOfUnity relies on.
func (f *Field) PrimitiveElement() (Element, error) {
	if f.generator != nil {
		return *f.generator, nil
	}
	pMinus1 := new(big.Int).Sub(f.modulus, big.NewInt(1))
	for g := int64(2); g < 1000; g++ {
		candidate := f.NewElementFromInt64(g)
		if hasFullOrder(candidate, pMinus1) {
			return candidate, nil
		}
	}
	return Element{}, fmt.Errorf("field: no primitive element found below 1000; register one with WithGenerator")
}

// hasFullOrder reports whether candidate^pMinus1 == 1 and candidate has no
// smaller order among the small set of divisors we can cheaply probe
// (powers of two, since every field this library targets has a 2-adic
// multiplicative group of high order).
func hasFullOrder(candidate Element, pMinus1 *big.Int) bool {
	if candidate.Exp(pMinus1).value.Cmp(big.NewInt(1)) != 0 {
		return false
	}
	half := new(big.Int).Div(pMinus1, big.NewInt(2))
	if candidate.Exp(half).value.Cmp(big.NewInt(1)) == 0 {
		return false
	}
	return true
}

// PrimitiveRootOfUnity returns a primitive n-th root of unity, where n must
// divide p-1 and (in this library's usage) is always a power of two.
func (f *Field) PrimitiveRootOfUnity(n uint64) (Element, error) {
	if n == 0 {
		return Element{}, fmt.Errorf("field: order must be positive")
	}
	pMinus1 := new(big.Int).Sub(f.modulus, big.NewInt(1))
	nBig := new(big.Int).SetUint64(n)
	if new(big.Int).Mod(pMinus1, nBig).Sign() != 0 {
		return Element{}, fmt.Errorf("field: %d does not divide p-1", n)
	}
	g, err := f.PrimitiveElement()
	if err != nil {
		return Element{}, err
	}
	exponent := new(big.Int).Div(pMinus1, nBig)
	omega := g.Exp(exponent)
	return omega, nil
}

// Field returns the field this element belongs to.
func (e Element) Field() *Field { return e.field }

// Big returns a copy of the element's value as a big.Int.
func (e Element) Big() *big.Int { return new(big.Int).Set(e.value) }

// Add returns e + other.
func (e Element) Add(other Element) Element {
	return e.field.NewElement(new(big.Int).Add(e.value, other.value))
}

// Sub returns e - other.
func (e Element) Sub(other Element) Element {
	return e.field.NewElement(new(big.Int).Sub(e.value, other.value))
}

// Neg returns -e.
func (e Element) Neg() Element {
	return e.field.NewElement(new(big.Int).Neg(e.value))
}

// Mul returns e * other.
func (e Element) Mul(other Element) Element {
	return e.field.NewElement(new(big.Int).Mul(e.value, other.value))
}

// Square returns e * e.
func (e Element) Square() Element { return e.Mul(e) }

// Inv returns the multiplicative inverse of e.
func (e Element) Inv() (Element, error) {
	if e.IsZero() {
		return Element{}, fmt.Errorf("field: cannot invert zero")
	}
	inv := new(big.Int).ModInverse(e.value, e.field.modulus)
	if inv == nil {
		return Element{}, fmt.Errorf("field: inverse does not exist")
	}
	return e.field.NewElement(inv), nil
}

// Div returns e / other.
func (e Element) Div(other Element) (Element, error) {
	inv, err := other.Inv()
	if err != nil {
		return Element{}, fmt.Errorf("field: division failed: %w", err)
	}
	return e.Mul(inv), nil
}

// Exp returns e^exponent.
func (e Element) Exp(exponent *big.Int) Element {
	return e.field.NewElement(new(big.Int).Exp(e.value, exponent, e.field.modulus))
}

// ExpUint64 returns e^exponent for a uint64 exponent.
func (e Element) ExpUint64(exponent uint64) Element {
	return e.Exp(new(big.Int).SetUint64(exponent))
}

// Equal reports value equality (the fields must also match).
func (e Element) Equal(other Element) bool {
	return e.field.Equal(other.field) && e.value.Cmp(other.value) == 0
}

// IsZero reports whether e is the additive identity.
func (e Element) IsZero() bool { return e.value.Sign() == 0 }

// IsOne reports whether e is the multiplicative identity.
func (e Element) IsOne() bool { return e.value.Cmp(big.NewInt(1)) == 0 }

// String renders the element's value in decimal.
func (e Element) String() string { return e.value.String() }

// Bytes returns the big-endian byte representation, unpadded.
func (e Element) Bytes() []byte { return e.value.Bytes() }

// BatchInversion inverts many elements using a single field inversion
// (Montgomery's trick), the optimization teacher's barycentric evaluator
// relies on for repeated denominators.
func BatchInversion(elems []Element) ([]Element, error) {
	if len(elems) == 0 {
		return nil, nil
	}
	fld := elems[0].field
	prefix := make([]Element, len(elems))
	acc := fld.One()
	for i, e := range elems {
		if e.IsZero() {
			return nil, fmt.Errorf("field: cannot batch-invert a zero element at index %d", i)
		}
		prefix[i] = acc
		acc = acc.Mul(e)
	}
	accInv, err := acc.Inv()
	if err != nil {
		return nil, err
	}
	result := make([]Element, len(elems))
	for i := len(elems) - 1; i >= 0; i-- {
		result[i] = accInv.Mul(prefix[i])
		accInv = accInv.Mul(elems[i])
	}
	return result, nil
}
