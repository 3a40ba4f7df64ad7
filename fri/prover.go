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

// Prove runs the FRI prover of spec.md §4.3 on f (degree < params.InitialCoeffLen),
// absorbing into and squeezing from the supplied transcript. The caller
// owns the sponge and may continue using it afterward (e.g. a STARK
// prover that delegates to FRI mid-transcript).
func Prove(params *Params, f *polynomial.Polynomial, transcript *sponge.Sponge) (proof *Proof, err error) {
	start := time.Now()
	defer func() { metrics.FRI.RecordProve(time.Since(start), err) }()

	log := logrus.WithFields(logrus.Fields{"component": "fri.prover", "rounds": params.Rounds})
	log.Debug("starting FRI proof")

	k := params.FoldingFactor
	domain := params.Domain
	g := f

	var roots [][]byte
	var roundTrees []*merkle.Tree
	var roundStacks [][][]field.Element

	// Round 0: commit to f on the full domain.
	evals := domain.Elements()
	valuesAtDomain := g.EvalMany(evals)
	stacked, err := polynomial.Stack(valuesAtDomain, k)
	if err != nil {
		return nil, errs.NewProtocolViolation("failed to stack round-0 evaluations", err)
	}
	tree, err := merkle.New(stackedRowsToLeaves(stacked))
	if err != nil {
		return nil, errs.NewProtocolViolation("failed to commit round-0 stacked evaluations", err)
	}
	transcript.Absorb(tree.Root())
	roots = append(roots, tree.Root())
	roundTrees = append(roundTrees, tree)
	roundStacks = append(roundStacks, stacked)

	// Degree correction: squeeze r0, expand g to exactly d0 coefficients.
	r0 := transcript.SqueezeFieldElement(params.Field)
	correctedG, degreeCorrection, err := polynomial.DegreeCorrect(g, r0, params.InitialCoeffLen)
	if err != nil {
		return nil, errs.NewProtocolViolation("round-0 degree correction failed", err)
	}
	g = correctedG

	// Rounds 1..r: fold, commit, absorb.
	for i := 1; i <= params.Rounds; i++ {
		ri := transcript.SqueezeFieldElement(params.Field)

		folded, err := polynomial.FoldPolynomial(g, ri, k)
		if err != nil {
			return nil, errs.NewProtocolViolation("failed to fold polynomial", err)
		}
		g = folded

		domain, err = domain.FoldDomain(k)
		if err != nil {
			return nil, errs.NewProtocolViolation("failed to fold domain", err)
		}

		evals = domain.Elements()
		valuesAtDomain = g.EvalMany(evals)
		stacked, err = polynomial.Stack(valuesAtDomain, k)
		if err != nil {
			return nil, errs.NewProtocolViolation("failed to stack round evaluations", err)
		}
		tree, err = merkle.New(stackedRowsToLeaves(stacked))
		if err != nil {
			return nil, errs.NewProtocolViolation("failed to commit round stacked evaluations", err)
		}
		transcript.Absorb(tree.Root())

		roots = append(roots, tree.Root())
		roundTrees = append(roundTrees, tree)
		roundStacks = append(roundStacks, stacked)
	}

	// Final randomness, folds g one more time into the final polynomial.
	rFinal := transcript.SqueezeFieldElement(params.Field)
	finalPoly, err := polynomial.FoldPolynomial(g, rFinal, k)
	if err != nil {
		return nil, errs.NewProtocolViolation("failed to fold final polynomial", err)
	}

	// Query phase.
	n0 := params.InitialCoeffLen * params.ExpansionFactor
	q0 := n0 / k
	indices, err := transcript.SqueezeDistinctIndices(params.Repetitions, uint64(q0))
	if err != nil {
		return nil, errs.NewProtocolViolation("failed to sample distinct query indices", err)
	}

	var roundProofs []RoundProof
	currentIndices := indices
	currentQ := q0
	for i := 0; i <= params.Rounds; i++ {
		stacked := roundStacks[i]
		rows := make([][]field.Element, len(currentIndices))
		for j, idx := range currentIndices {
			rows[j] = stacked[idx]
		}
		paths, err := roundTrees[i].ProveBulk(currentIndices)
		if err != nil {
			return nil, errs.NewProtocolViolation("failed to build Merkle openings", err)
		}
		roundProofs = append(roundProofs, RoundProof{
			Indices:     append([]int(nil), currentIndices...),
			StackedRows: rows,
			Paths:       paths,
		})

		if i < params.Rounds {
			currentQ /= k
			currentIndices = polynomial.FoldIndices(currentIndices, currentQ)
		}
	}

	log.WithField("queries", len(indices)).Debug("FRI proof complete")

	return &Proof{
		Roots:            roots,
		Rounds:           roundProofs,
		FinalPolynomial:  finalPoly,
		DegreeCorrection: degreeCorrection,
	}, nil
}

func stackedRowsToLeaves(rows [][]field.Element) [][]byte {
	leaves := make([][]byte, len(rows))
	for i, row := range rows {
		var buf []byte
		for _, e := range row {
			b := e.Bytes()
			var lenPrefix [4]byte
			lenPrefix[0] = byte(len(b) >> 24)
			lenPrefix[1] = byte(len(b) >> 16)
			lenPrefix[2] = byte(len(b) >> 8)
			lenPrefix[3] = byte(len(b))
			buf = append(buf, lenPrefix[:]...)
			buf = append(buf, b...)
		}
		leaves[i] = buf
	}
	return leaves
}
