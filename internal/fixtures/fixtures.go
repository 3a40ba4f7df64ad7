// Package fixtures provides small reference AIRs used by the tests and by
// the proteus-prove command: a Fibonacci recurrence, a factorial
// accumulator, and a simple counter. None of this is part of the public API.
package fixtures

import (
	"github.com/proteus-stark/proteus/field"
	"github.com/proteus-stark/proteus/polynomial"
	"github.com/proteus-stark/proteus/stark"
)

// Fibonacci builds an AIR over n rows with two registers (a, b) satisfying
// a_0=0, b_0=1, a_{i+1}=b_i, b_{i+1}=a_i+b_i.
func Fibonacci(f *field.Field, n int) (*stark.AIR, error) {
	trace := make([][]field.Element, n)
	a, b := f.Zero(), f.One()
	for i := 0; i < n; i++ {
		trace[i] = []field.Element{a, b}
		a, b = b, a.Add(b)
	}

	one := f.One()
	negOne := f.NewElementFromInt64(-1)

	t1 := polynomial.NewMultivariate(f, 4)
	must(t1.AddTerm(one, []int{0, 0, 1, 0}))    // a'
	must(t1.AddTerm(negOne, []int{0, 1, 0, 0})) // -b

	t2 := polynomial.NewMultivariate(f, 4)
	must(t2.AddTerm(one, []int{0, 0, 0, 1}))    // b'
	must(t2.AddTerm(negOne, []int{1, 0, 0, 0})) // -a
	must(t2.AddTerm(negOne, []int{0, 1, 0, 0})) // -b

	// Register 0 carries F(i); at the final row it equals F(n-1), the
	// value the original source calls out by name in its own boundary
	// fixture.
	boundary := []stark.BoundaryConstraint{
		{Row: 0, Register: 0, Value: f.Zero()},
		{Row: n - 1, Register: 0, Value: trace[n-1][0]},
	}

	return stark.NewAIR(f, 2, trace, boundary, []*polynomial.Multivariate{t1, t2})
}

// Factorial builds an AIR over n+1 rows with two registers (idx, acc)
// satisfying idx_0=0, acc_0=1, idx_i=idx_{i-1}+1, acc_i=acc_{i-1}*idx_i,
// so that row n holds idx_n=n and acc_n=n!.
func Factorial(f *field.Field, n int) (*stark.AIR, error) {
	trace := make([][]field.Element, n+1)
	idx, acc := f.Zero(), f.One()
	trace[0] = []field.Element{idx, acc}
	for i := 1; i <= n; i++ {
		idx = idx.Add(f.One())
		acc = acc.Mul(idx)
		trace[i] = []field.Element{idx, acc}
	}

	one := f.One()
	negOne := f.NewElementFromInt64(-1)

	t1 := polynomial.NewMultivariate(f, 4)
	must(t1.AddTerm(one, []int{0, 0, 1, 0}))    // idx'
	must(t1.AddTerm(negOne, []int{1, 0, 0, 0})) // -idx
	must(t1.AddTerm(negOne, []int{0, 0, 0, 0})) // -1

	t2 := polynomial.NewMultivariate(f, 4)
	must(t2.AddTerm(one, []int{0, 0, 0, 1}))    // acc'
	must(t2.AddTerm(negOne, []int{0, 1, 1, 0})) // -acc*idx'

	boundary := []stark.BoundaryConstraint{
		{Row: 0, Register: 0, Value: trace[0][0]},
		{Row: 0, Register: 1, Value: trace[0][1]},
		{Row: n, Register: 0, Value: trace[n][0]},
		{Row: n, Register: 1, Value: trace[n][1]},
	}

	return stark.NewAIR(f, 2, trace, boundary, []*polynomial.Multivariate{t1, t2})
}

// Counter builds an AIR over n rows with a single register incrementing by
// one each row: value_0=0, value_{i+1}=value_i+1.
func Counter(f *field.Field, n int) (*stark.AIR, error) {
	trace := make([][]field.Element, n)
	v := f.Zero()
	for i := 0; i < n; i++ {
		trace[i] = []field.Element{v}
		v = v.Add(f.One())
	}

	one := f.One()
	negOne := f.NewElementFromInt64(-1)

	t1 := polynomial.NewMultivariate(f, 2)
	must(t1.AddTerm(one, []int{0, 1}))    // value'
	must(t1.AddTerm(negOne, []int{1, 0})) // -value
	must(t1.AddTerm(negOne, []int{0, 0})) // -1

	boundary := []stark.BoundaryConstraint{
		{Row: 0, Register: 0, Value: f.Zero()},
		{Row: n - 1, Register: 0, Value: f.NewElementFromInt64(int64(n - 1))},
	}

	return stark.NewAIR(f, 1, trace, boundary, []*polynomial.Multivariate{t1})
}

func must(err error) {
	if err != nil {
		panic(err)
	}
}
