package polynomial

import (
	"fmt"
	"sort"

	"github.com/proteus-stark/proteus/field"
)

// Domain is an evaluation domain D = [h*omega^i : i=0..N-1], a coset of a
// multiplicative subgroup of order N generated by omega. h is the coset
// offset (spec.md §3's "primitive_element" h, chosen so D never meets the
// roots of a constraint zerofier).
type Domain struct {
	Offset    field.Element
	Generator field.Element
	Length    int
}

// NewDomain builds the coset {offset * generator^i : i=0..length-1}.
func NewDomain(offset, generator field.Element, length int) *Domain {
	return &Domain{Offset: offset, Generator: generator, Length: length}
}

// Elements materializes every point of the domain, in order.
func (d *Domain) Elements() []field.Element {
	out := make([]field.Element, d.Length)
	current := d.Offset
	for i := 0; i < d.Length; i++ {
		out[i] = current
		current = current.Mul(d.Generator)
	}
	return out
}

// FoldDomain returns fold_domain(D, k): the first N/k entries of D raised
// to the k-th power. Taking the first N/k entries (rather than any other
// representative set) is load-bearing — spec.md §4.1 requires it so the
// verifier's extended-index mapping stays in sync with the prover's.
func (d *Domain) FoldDomain(k int) (*Domain, error) {
	if d.Length%k != 0 {
		return nil, fmt.Errorf("polynomial: domain length %d not divisible by folding factor %d", d.Length, k)
	}
	kBig := uint64(k)
	return &Domain{
		Offset:    d.Offset.ExpUint64(kBig),
		Generator: d.Generator.ExpUint64(kBig),
		Length:    d.Length / k,
	}, nil
}

// FoldPolynomial implements fold_polynomial(g, r, k) of spec.md §4.1:
// reshape g's coefficients into an (m x k) matrix (ascending, row-major by
// degree-div-k / degree-mod-k) and right-multiply by [1, r, r^2, ..., r^(k-1)].
// deg(g)+1 must be a multiple of k.
func FoldPolynomial(g *Polynomial, r field.Element, k int) (*Polynomial, error) {
	coeffs := g.Coefficients()
	n := len(coeffs)
	if n%k != 0 {
		return nil, fmt.Errorf("polynomial: coefficient count %d not a multiple of folding factor %d", n, k)
	}
	m := n / k
	f := g.field

	powers := make([]field.Element, k)
	powers[0] = f.One()
	for j := 1; j < k; j++ {
		powers[j] = powers[j-1].Mul(r)
	}

	out := make([]field.Element, m)
	for i := 0; i < m; i++ {
		acc := f.Zero()
		for j := 0; j < k; j++ {
			acc = acc.Add(coeffs[i*k+j].Mul(powers[j]))
		}
		out[i] = acc
	}
	return New(f, out), nil
}

// Stack reshapes evaluation vector v (length N) into an N/k x k matrix
// where S[i][j] = v[i + j*(N/k)] — spec.md §3's "stacked evaluations".
func Stack(v []field.Element, k int) ([][]field.Element, error) {
	n := len(v)
	if n%k != 0 {
		return nil, fmt.Errorf("polynomial: evaluation vector length %d not a multiple of folding factor %d", n, k)
	}
	rows := n / k
	out := make([][]field.Element, rows)
	for i := 0; i < rows; i++ {
		row := make([]field.Element, k)
		for j := 0; j < k; j++ {
			row[j] = v[i+j*rows]
		}
		out[i] = row
	}
	return out, nil
}

// ExtendIndices maps each folded-domain index i in I to the k original-
// domain indices [i + j*(N/k) : j=0..k-1] whose k-th powers all land on i.
func ExtendIndices(indices []int, n, k int) [][]int {
	rows := n / k
	out := make([][]int, len(indices))
	for idx, i := range indices {
		row := make([]int, k)
		for j := 0; j < k; j++ {
			row[j] = i + j*rows
		}
		out[idx] = row
	}
	return out
}

// FoldIndices returns sort(dedup(I mod m)).
func FoldIndices(indices []int, m int) []int {
	seen := make(map[int]bool, len(indices))
	out := make([]int, 0, len(indices))
	for _, i := range indices {
		folded := i % m
		if !seen[folded] {
			seen[folded] = true
			out = append(out, folded)
		}
	}
	sort.Ints(out)
	return out
}

// FoldSortGenerate implements fold_sort_generate of spec.md §4.1: for every
// (index, value) pair in the current round, compute
// (index mod m, index/m, value), sort+dedup on the first component keeping
// the first occurrence, and return parallel arrays.
func FoldSortGenerate(indices []int, m int, values []field.Element) (newIndices, checkIndices []int, foldedValues []field.Element, err error) {
	if len(indices) != len(values) {
		return nil, nil, nil, fmt.Errorf("polynomial: indices/values length mismatch (%d vs %d)", len(indices), len(values))
	}
	type triple struct {
		newIndex   int
		checkIndex int
		value      field.Element
	}
	triples := make([]triple, len(indices))
	for i, idx := range indices {
		triples[i] = triple{newIndex: idx % m, checkIndex: idx / m, value: values[i]}
	}
	sort.SliceStable(triples, func(a, b int) bool { return triples[a].newIndex < triples[b].newIndex })

	seen := make(map[int]bool, len(triples))
	for _, t := range triples {
		if seen[t.newIndex] {
			continue
		}
		seen[t.newIndex] = true
		newIndices = append(newIndices, t.newIndex)
		checkIndices = append(checkIndices, t.checkIndex)
		foldedValues = append(foldedValues, t.value)
	}
	return newIndices, checkIndices, foldedValues, nil
}

// DegreeCorrect implements expand_ext of spec.md §4.1: builds
// c(X) = sum_{i=0}^{targetLen-deg(g)-1} r^i X^i (a non-binding random
// polynomial whose degree equals the coefficient gap targetLen-deg(g)-1)
// and returns (g*c, c). targetLen is the number of coefficients g
// should have after correction.
func DegreeCorrect(g *Polynomial, r field.Element, targetLen int) (*Polynomial, *Polynomial, error) {
	gap := targetLen - (g.Degree() + 1)
	if gap < 0 {
		return nil, nil, fmt.Errorf("polynomial: target length %d smaller than g's %d coefficients", targetLen, g.Degree()+1)
	}
	f := g.field
	cCoeffs := make([]field.Element, gap+1)
	power := f.One()
	for i := 0; i <= gap; i++ {
		cCoeffs[i] = power
		power = power.Mul(r)
	}
	c := New(f, cCoeffs)
	return g.Mul(c), c, nil
}
