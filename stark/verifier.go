package stark

import (
	"time"

	"github.com/sirupsen/logrus"

	"github.com/proteus-stark/proteus/errs"
	"github.com/proteus-stark/proteus/field"
	"github.com/proteus-stark/proteus/fri"
	"github.com/proteus-stark/proteus/merkle"
	"github.com/proteus-stark/proteus/metrics"
	"github.com/proteus-stark/proteus/polynomial"
	"github.com/proteus-stark/proteus/sponge"
)

// Verify runs the STARK verifier of spec.md §4.6 against statement (the
// public half of an AIR contract) and proof, sharing transcript with the
// embedded FRI verification so both protocols draw from one transcript.
func Verify(params *Params, statement *Statement, proof *Proof, transcript *sponge.Sponge) (err error) {
	start := time.Now()
	defer func() { metrics.Stark.RecordVerify(time.Since(start), err) }()

	log := logrus.WithFields(logrus.Fields{"component": "stark.verifier", "registers": statement.NumRegisters})

	f := params.Field
	k := params.FRI.FoldingFactor
	m := statement.NumRegisters

	if len(proof.Combination.Rounds) == 0 {
		return errs.NewVerificationFailure(errs.StageBoundaryMerkle, "combination proof has no rounds", nil)
	}
	indices := proof.Combination.Rounds[0].Indices

	if len(proof.BQCurrent.Roots) != m || len(proof.BQNext.Roots) != m ||
		len(proof.BQCurrent.StackedRows) != m || len(proof.BQNext.StackedRows) != m {
		return errs.NewVerificationFailure(errs.StageBoundaryMerkle, "boundary quotient opening count does not match register count", nil)
	}

	// 1. Per-register Merkle verification, current then next, absorbing as
	// we go so the transcript order matches the prover's.
	for j := 0; j < m; j++ {
		curLeaves := stackedFieldRowsToLeaves(proof.BQCurrent.StackedRows[j])
		if !merkle.VerifyBulk(curLeaves, proof.BQCurrent.Roots[j], proof.BQCurrent.Paths[j], indices) {
			log.WithField("register", j).Debug("current boundary quotient Merkle verification failed")
			return errs.NewVerificationFailure(errs.StageBoundaryMerkle, "boundary quotient opening failed", nil)
		}
		transcript.Absorb(proof.BQCurrent.Roots[j])

		nextLeaves := stackedFieldRowsToLeaves(proof.BQNext.StackedRows[j])
		if !merkle.VerifyBulk(nextLeaves, proof.BQNext.Roots[j], proof.BQNext.Paths[j], indices) {
			log.WithField("register", j).Debug("next boundary quotient Merkle verification failed")
			return errs.NewVerificationFailure(errs.StageBoundaryMerkle, "shifted boundary quotient opening failed", nil)
		}
		transcript.Absorb(proof.BQNext.Roots[j])
	}

	// 2. Recompute boundary polynomials and zerofiers from the public
	// boundary-constraint list.
	h := params.TraceDomain.Elements()
	boundaryPolys := make([]*polynomial.Polynomial, m)
	zerofiers := make([]*polynomial.Polynomial, m)
	for j := 0; j < m; j++ {
		var xs, ys []field.Element
		for _, b := range statement.Boundary {
			if b.Register != j {
				continue
			}
			xs = append(xs, h[b.Row])
			ys = append(ys, b.Value)
		}
		if len(xs) == 0 {
			boundaryPolys[j] = polynomial.Zero(f)
		} else {
			bj, err := polynomial.Interpolate(f, xs, ys)
			if err != nil {
				return errs.NewVerificationFailure(errs.StageBoundaryMerkle, "failed to recompute a boundary polynomial", err)
			}
			boundaryPolys[j] = bj
		}
		zerofiers[j] = polynomial.FromRoots(f, xs)
	}
	zHStar := polynomial.FromRoots(f, h[:len(h)-1])

	// 3. Squeeze weights: one per transition constraint, then one per
	// register, matching the prover's committed order.
	weights := make([]field.Element, len(statement.Transition)+m)
	for i := range weights {
		weights[i] = transcript.SqueezeFieldElement(f)
	}

	// 4. FRI verification over the shared transcript.
	if err := fri.Verify(params.FRI, proof.Combination, transcript); err != nil {
		return err
	}

	// 5. Consistency across layers: preimages of the queried positions.
	n0 := params.FRI.Domain.Length
	domainElems := params.FRI.Domain.Elements()
	preimages := polynomial.ExtendIndices(indices, n0, k)

	round0 := proof.Combination.Rounds[0]
	combinationByIndex := make(map[int][]field.Element, len(round0.Indices))
	for i, idx := range round0.Indices {
		combinationByIndex[idx] = round0.StackedRows[i]
	}

	for qi, idx := range indices {
		xsCurrent := make([]field.Element, k)
		xsNext := make([]field.Element, k)
		for c, p := range preimages[qi] {
			xsCurrent[c] = domainElems[p]
			xsNext[c] = xsCurrent[c].Mul(params.OmegaTrace)
		}

		// 6. Reconstruct trace evaluations at these positions from the
		// opened boundary-quotient rows.
		traceCurrent := make([][]field.Element, m)
		traceNext := make([][]field.Element, m)
		for j := 0; j < m; j++ {
			traceCurrent[j] = make([]field.Element, k)
			traceNext[j] = make([]field.Element, k)
			for c := 0; c < k; c++ {
				bqc := proof.BQCurrent.StackedRows[j][qi][c]
				traceCurrent[j][c] = bqc.Mul(zerofiers[j].Eval(xsCurrent[c])).Add(boundaryPolys[j].Eval(xsCurrent[c]))
				bqn := proof.BQNext.StackedRows[j][qi][c]
				traceNext[j][c] = bqn.Mul(zerofiers[j].Eval(xsNext[c])).Add(boundaryPolys[j].Eval(xsNext[c]))
			}
		}

		combinationRow, ok := combinationByIndex[idx]
		if !ok {
			return errs.NewVerificationFailure(errs.StageCombination, "combination proof is missing a queried row", nil)
		}

		for c := 0; c < k; c++ {
			point := make([]field.Element, 2*m)
			for j := 0; j < m; j++ {
				point[j] = traceCurrent[j][c]
				point[m+j] = traceNext[j][c]
			}

			// 7. Transition quotient evaluations at this position.
			zVal := zHStar.Eval(xsCurrent[c])
			if zVal.IsZero() {
				return errs.NewVerificationFailure(errs.StageCombination, "transition zerofier vanished at a query point", nil)
			}

			// 8. Weighted sum: transition quotients then boundary quotients.
			expected := f.Zero()
			for t, constraint := range statement.Transition {
				pVal, err := constraint.Eval(point)
				if err != nil {
					return errs.NewVerificationFailure(errs.StageCombination, "failed to evaluate a transition constraint", err)
				}
				tqVal, err := pVal.Div(zVal)
				if err != nil {
					return errs.NewVerificationFailure(errs.StageCombination, "failed to divide a transition evaluation", err)
				}
				expected = expected.Add(weights[t].Mul(tqVal))
			}
			for j := 0; j < m; j++ {
				expected = expected.Add(weights[len(statement.Transition)+j].Mul(proof.BQCurrent.StackedRows[j][qi][c]))
			}

			// 9. Compare against the combination proof's opened value.
			if !expected.Equal(combinationRow[c]) {
				return errs.NewVerificationFailure(errs.StageCombination, "combination value disagrees with the weighted constraint sum", nil)
			}
		}
	}

	log.Debug("STARK proof accepted")
	return nil
}
