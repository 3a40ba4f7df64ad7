package fri

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/proteus-stark/proteus/field"
	"github.com/proteus-stark/proteus/polynomial"
	"github.com/proteus-stark/proteus/sponge"
)

func lowDegreePoly(f *field.Field, degree int) *polynomial.Polynomial {
	coeffs := make([]field.Element, degree+1)
	for i := range coeffs {
		coeffs[i] = f.NewElementFromInt64(int64(i + 1))
	}
	return polynomial.New(f, coeffs)
}

func testParams(t *testing.T) (*field.Field, *Params) {
	t.Helper()
	f := field.Toy193()
	params, err := NewParams(f, 2, 4, 16, 2, 8)
	require.NoError(t, err)
	return f, params
}

func TestProveVerifyAcceptsGenuineLowDegreePolynomial(t *testing.T) {
	f, params := testParams(t)
	poly := lowDegreePoly(f, 10)

	proof, err := Prove(params, poly, sponge.New())
	require.NoError(t, err)

	err = Verify(params, proof, sponge.New())
	require.NoError(t, err)
}

func TestVerifyRejectsTamperedFinalPolynomial(t *testing.T) {
	f, params := testParams(t)
	poly := lowDegreePoly(f, 10)

	proof, err := Prove(params, poly, sponge.New())
	require.NoError(t, err)

	tamperedCoeffs := proof.FinalPolynomial.Coefficients()
	tamperedCoeffs[0] = tamperedCoeffs[0].Add(f.One())
	proof.FinalPolynomial = polynomial.New(f, tamperedCoeffs)

	err = Verify(params, proof, sponge.New())
	require.Error(t, err)
}

func TestVerifyRejectsTamperedRoundValue(t *testing.T) {
	f, params := testParams(t)
	poly := lowDegreePoly(f, 10)

	proof, err := Prove(params, poly, sponge.New())
	require.NoError(t, err)
	require.NotEmpty(t, proof.Rounds[0].StackedRows)

	row := proof.Rounds[0].StackedRows[0]
	row[0] = row[0].Add(f.One())

	err = Verify(params, proof, sponge.New())
	require.Error(t, err)
}

func TestVerifyRejectsMismatchedTranscript(t *testing.T) {
	f, params := testParams(t)
	poly := lowDegreePoly(f, 10)

	transcript := sponge.New()
	transcript.Absorb([]byte("unrelated prior context"))
	proof, err := Prove(params, poly, transcript)
	require.NoError(t, err)

	// Verifying against a fresh transcript (missing the prior absorb)
	// desynchronizes the replayed randomness and must be rejected.
	err = Verify(params, proof, sponge.New())
	require.Error(t, err)
}

func TestMarshalCanonicalRoundTrips(t *testing.T) {
	f, params := testParams(t)
	poly := lowDegreePoly(f, 10)

	proof, err := Prove(params, poly, sponge.New())
	require.NoError(t, err)

	encoded := proof.MarshalCanonical()
	decoded, err := UnmarshalCanonical(f, encoded)
	require.NoError(t, err)

	require.NoError(t, Verify(params, decoded, sponge.New()))
}
