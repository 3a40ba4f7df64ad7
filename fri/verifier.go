package fri

import (
	"time"

	"github.com/sirupsen/logrus"

	"github.com/proteus-stark/proteus/errs"
	"github.com/proteus-stark/proteus/field"
	"github.com/proteus-stark/proteus/merkle"
	"github.com/proteus-stark/proteus/metrics"
	"github.com/proteus-stark/proteus/polynomial"
	"github.com/proteus-stark/proteus/sponge"
)

// Verify replays the transcript and checks a FRI proof per spec.md §4.4,
// using the caller-supplied sponge so a STARK verifier's weight squeezes
// and this FRI verifier's folding-randomness squeezes come from the same
// extended transcript as the prover's.
func Verify(params *Params, proof *Proof, transcript *sponge.Sponge) (err error) {
	start := time.Now()
	defer func() { metrics.FRI.RecordVerify(time.Since(start), err) }()

	log := logrus.WithFields(logrus.Fields{"component": "fri.verifier", "rounds": params.Rounds})

	// 1. Final-degree gate.
	if proof.FinalPolynomial.Degree()+1 > params.FinalCoeffLen {
		return errs.NewVerificationFailure(errs.StageFinalDegree, "final polynomial exceeds the allowed degree", nil)
	}
	if len(proof.Roots) != params.Rounds+1 || len(proof.Rounds) != params.Rounds+1 {
		return errs.NewVerificationFailure(errs.StageMerkle, "proof does not have the expected number of rounds", nil)
	}

	// 2. Merkle gate, for every round.
	for i, round := range proof.Rounds {
		leaves := stackedRowsToLeaves(round.StackedRows)
		if !merkle.VerifyBulk(leaves, proof.Roots[i], round.Paths, round.Indices) {
			log.WithField("round", i).Debug("Merkle verification failed")
			return errs.NewVerificationFailure(errs.StageMerkle, "Merkle opening failed", nil)
		}
	}

	// 3. Replay randomness in exactly the order the prover produced it:
	// absorb(root0), squeeze(r0), [squeeze(r_i); absorb(root_i)] for
	// i=1..rounds, squeeze(rFinal).
	transcript.Absorb(proof.Roots[0])
	r0 := transcript.SqueezeFieldElement(params.Field)
	if err := checkDegreeCorrection(proof, r0); err != nil {
		return err
	}

	// evalPoints[i] is the randomness the round-i opened value must be
	// evaluated at: r_{i+1} for i<rounds (the randomness that folded it
	// into round i+1), and rFinal for i==rounds.
	evalPoints := make([]field.Element, params.Rounds+1)
	for i := 1; i <= params.Rounds; i++ {
		ri := transcript.SqueezeFieldElement(params.Field)
		evalPoints[i-1] = ri
		transcript.Absorb(proof.Roots[i])
	}
	evalPoints[params.Rounds] = transcript.SqueezeFieldElement(params.Field)

	// 4. Query set.
	k := params.FoldingFactor
	n0 := params.InitialCoeffLen * params.ExpansionFactor
	q0 := n0 / k
	indices, err := transcript.SqueezeDistinctIndices(params.Repetitions, uint64(q0))
	if err != nil {
		return errs.NewVerificationFailure(errs.StageConsistency, "failed to replay query indices", err)
	}
	if !sameIndexSet(indices, proof.Rounds[0].Indices) {
		return errs.NewVerificationFailure(errs.StageConsistency, "proof's round-0 query indices do not match the replayed transcript", nil)
	}

	// Reconstruct every round's domain, one past the last committed round
	// so the final polynomial's domain is available too.
	domains := make([]*polynomial.Domain, params.Rounds+2)
	domains[0] = params.Domain
	for i := 1; i <= params.Rounds+1; i++ {
		folded, err := domains[i-1].FoldDomain(k)
		if err != nil {
			return errs.NewVerificationFailure(errs.StageConsistency, "failed to fold domain", err)
		}
		domains[i] = folded
	}

	// 5/6. Per-round consistency checks.
	currentIndices := proof.Rounds[0].Indices
	for i := 0; i <= params.Rounds; i++ {
		domainElems := domains[i].Elements()
		round := proof.Rounds[i]
		rowByIndex := make(map[int][]field.Element, len(round.Indices))
		for j, idx := range round.Indices {
			rowByIndex[idx] = round.StackedRows[j]
		}

		values := make([]field.Element, len(currentIndices))
		for j, idx := range currentIndices {
			row, ok := rowByIndex[idx]
			if !ok {
				return errs.NewVerificationFailure(errs.StageConsistency, "queried index missing from round proof", nil)
			}
			preimage := polynomial.ExtendIndices([]int{idx}, domains[i].Length, k)[0]
			xs := make([]field.Element, k)
			for c, p := range preimage {
				xs[c] = domainElems[p]
			}
			ys := append([]field.Element(nil), row...)
			if i == 0 {
				for c := range ys {
					ys[c] = ys[c].Mul(proof.DegreeCorrection.Eval(xs[c]))
				}
			}
			p, err := polynomial.Interpolate(params.Field, xs, ys)
			if err != nil {
				return errs.NewVerificationFailure(errs.StageConsistency, "failed to interpolate folded value", err)
			}
			values[j] = p.Eval(evalPoints[i])
		}

		if i < params.Rounds {
			nextQ := domains[i+1].Length / k
			newIndices, checkIndices, foldedValues, err := polynomial.FoldSortGenerate(currentIndices, nextQ, values)
			if err != nil {
				return errs.NewVerificationFailure(errs.StageConsistency, "fold_sort_generate failed", err)
			}

			nextRound := proof.Rounds[i+1]
			nextRowByIndex := make(map[int][]field.Element, len(nextRound.Indices))
			for j, idx := range nextRound.Indices {
				nextRowByIndex[idx] = nextRound.StackedRows[j]
			}
			for j, newIdx := range newIndices {
				nextRow, ok := nextRowByIndex[newIdx]
				if !ok {
					return errs.NewVerificationFailure(errs.StageConsistency, "next round missing a required index", nil)
				}
				col := checkIndices[j]
				if col < 0 || col >= len(nextRow) {
					return errs.NewVerificationFailure(errs.StageConsistency, "check index out of range", nil)
				}
				if !nextRow[col].Equal(foldedValues[j]) {
					return errs.NewVerificationFailure(errs.StageConsistency, "round consistency check failed", nil)
				}
			}
			currentIndices = newIndices
		} else {
			// 7. Final check: the last round's folded value must equal the
			// final polynomial evaluated at the matching point of the next
			// (uncommitted) folded domain.
			finalDomainElems := domains[i+1].Elements()
			for j, idx := range currentIndices {
				x := finalDomainElems[idx]
				if !proof.FinalPolynomial.Eval(x).Equal(values[j]) {
					return errs.NewVerificationFailure(errs.StageFinalCheck, "final polynomial disagrees with folded evaluation", nil)
				}
			}
		}
	}

	log.Debug("FRI proof accepted")
	return nil
}

// checkDegreeCorrection binds the proof's degree-correction polynomial to
// r0: it must be the geometric sequence 1, r0, r0^2, ... that expand_ext
// produces, so a prover cannot substitute an unrelated correction term.
func checkDegreeCorrection(proof *Proof, r0 field.Element) error {
	if proof.DegreeCorrection == nil {
		return errs.NewVerificationFailure(errs.StageConsistency, "proof is missing its degree-correction polynomial", nil)
	}
	f := proof.DegreeCorrection.Field()
	power := f.One()
	for i := 0; i <= proof.DegreeCorrection.Degree(); i++ {
		if !proof.DegreeCorrection.Coefficient(i).Equal(power) {
			return errs.NewVerificationFailure(errs.StageConsistency, "degree-correction polynomial was not derived from the round-0 challenge", nil)
		}
		power = power.Mul(r0)
	}
	return nil
}

func sameIndexSet(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
