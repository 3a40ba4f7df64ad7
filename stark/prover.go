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

// Prove runs the STARK prover of spec.md §4.5 against an AIR, delegating
// its final combination polynomial to the FRI prover over the same
// transcript (spec.md §9's shared-sponge design).
func Prove(params *Params, air *AIR, transcript *sponge.Sponge) (proof *Proof, err error) {
	start := time.Now()
	defer func() { metrics.Stark.RecordProve(time.Since(start), err) }()

	log := logrus.WithFields(logrus.Fields{"component": "stark.prover", "registers": air.NumRegisters})
	log.Debug("starting STARK proof")

	f := params.Field
	k := params.FRI.FoldingFactor
	h := params.TraceDomain.Elements()

	// 2. Trace polynomials.
	tracePolys := make([]*polynomial.Polynomial, air.NumRegisters)
	for j := 0; j < air.NumRegisters; j++ {
		column := make([]field.Element, len(h))
		for i := range h {
			if i < len(air.Trace) {
				column[i] = air.Trace[i][j]
			} else {
				column[i] = f.Zero() // pad to the next power of two
			}
		}
		p, err := polynomial.Interpolate(f, h, column)
		if err != nil {
			return nil, errs.NewProtocolViolation("failed to interpolate a trace polynomial", err)
		}
		tracePolys[j] = p
	}

	// 3. Boundary interpolation and boundary quotients.
	boundaryQuotients := make([]*polynomial.Polynomial, air.NumRegisters)
	zerofiers := make([]*polynomial.Polynomial, air.NumRegisters)
	boundaryPolys := make([]*polynomial.Polynomial, air.NumRegisters)
	for j := 0; j < air.NumRegisters; j++ {
		var xs, ys []field.Element
		for _, b := range air.Boundary {
			if b.Register != j {
				continue
			}
			xs = append(xs, h[b.Row])
			ys = append(ys, b.Value)
		}
		var bj *polynomial.Polynomial
		var err error
		if len(xs) == 0 {
			bj = polynomial.Zero(f)
		} else {
			bj, err = polynomial.Interpolate(f, xs, ys)
			if err != nil {
				return nil, errs.NewProtocolViolation("failed to interpolate a boundary polynomial", err)
			}
		}
		zj := polynomial.FromRoots(f, xs)
		qj, err := tracePolys[j].Sub(bj).QuotientExact(zj)
		if err != nil {
			return nil, errs.NewProtocolViolation("boundary quotient division left a nonzero remainder", err)
		}
		boundaryQuotients[j] = qj
		zerofiers[j] = zj
		boundaryPolys[j] = bj
	}

	// 4. Commit boundary quotients on the current and omega_trace-shifted
	// FRI domains, absorbing current then next per register.
	currentDomain := params.FRI.Domain
	nextDomain := polynomial.NewDomain(currentDomain.Offset.Mul(params.OmegaTrace), currentDomain.Generator, currentDomain.Length)

	currentTrees := make([]*merkle.Tree, air.NumRegisters)
	nextTrees := make([]*merkle.Tree, air.NumRegisters)
	currentRoots := make([][]byte, air.NumRegisters)
	nextRoots := make([][]byte, air.NumRegisters)
	currentStackedAll := make([][][]field.Element, air.NumRegisters)
	nextStackedAll := make([][][]field.Element, air.NumRegisters)

	currentElems := currentDomain.Elements()
	nextElems := nextDomain.Elements()

	for j := 0; j < air.NumRegisters; j++ {
		curStacked, err := polynomial.Stack(boundaryQuotients[j].EvalMany(currentElems), k)
		if err != nil {
			return nil, errs.NewProtocolViolation("failed to stack boundary quotient evaluations", err)
		}
		curTree, err := merkle.New(stackedFieldRowsToLeaves(curStacked))
		if err != nil {
			return nil, errs.NewProtocolViolation("failed to commit a boundary quotient", err)
		}
		transcript.Absorb(curTree.Root())
		currentTrees[j] = curTree
		currentRoots[j] = curTree.Root()
		currentStackedAll[j] = curStacked

		nextStacked, err := polynomial.Stack(boundaryQuotients[j].EvalMany(nextElems), k)
		if err != nil {
			return nil, errs.NewProtocolViolation("failed to stack shifted boundary quotient evaluations", err)
		}
		nextTree, err := merkle.New(stackedFieldRowsToLeaves(nextStacked))
		if err != nil {
			return nil, errs.NewProtocolViolation("failed to commit a shifted boundary quotient", err)
		}
		transcript.Absorb(nextTree.Root())
		nextTrees[j] = nextTree
		nextRoots[j] = nextTree.Root()
		nextStackedAll[j] = nextStacked
	}

	// 5. Transition composition.
	shiftedTracePolys := make([]*polynomial.Polynomial, air.NumRegisters)
	for j := 0; j < air.NumRegisters; j++ {
		shiftedTracePolys[j] = tracePolys[j].Scale(params.OmegaTrace)
	}
	substitutions := append(append([]*polynomial.Polynomial(nil), tracePolys...), shiftedTracePolys...)

	zHStar := polynomial.FromRoots(f, h[:len(h)-1])
	transitionQuotients := make([]*polynomial.Polynomial, len(air.Transition))
	for t, constraint := range air.Transition {
		pt, err := constraint.Substitute(substitutions)
		if err != nil {
			return nil, errs.NewProtocolViolation("failed to compose a transition constraint", err)
		}
		tq, err := pt.QuotientExact(zHStar)
		if err != nil {
			return nil, errs.NewProtocolViolation("transition quotient division left a nonzero remainder", err)
		}
		transitionQuotients[t] = tq
	}

	// 6. Random linear combination. Committed list order is
	// (TQ_1..TQ_tau, Q_1..Q_m), one weight squeezed per entry.
	committed := append(append([]*polynomial.Polynomial(nil), transitionQuotients...), boundaryQuotients...)
	combination := polynomial.Zero(f)
	for _, poly := range committed {
		w := transcript.SqueezeFieldElement(f)
		combination = combination.Add(poly.MulScalar(w))
	}

	// 7. FRI delegation over the shared transcript.
	friProof, err := fri.Prove(params.FRI, combination, transcript)
	if err != nil {
		return nil, errs.NewProtocolViolation("FRI delegation failed", err)
	}

	// 8. BQ openings at the FRI round-0 query indices.
	queryIndices := friProof.Rounds[0].Indices
	bqCurrent := BoundaryQuotientOpenings{
		Roots:       currentRoots,
		StackedRows: make([][][]field.Element, air.NumRegisters),
		Paths:       make([][]merkle.Path, air.NumRegisters),
	}
	bqNext := BoundaryQuotientOpenings{
		Roots:       nextRoots,
		StackedRows: make([][][]field.Element, air.NumRegisters),
		Paths:       make([][]merkle.Path, air.NumRegisters),
	}
	for j := 0; j < air.NumRegisters; j++ {
		rows := make([][]field.Element, len(queryIndices))
		for i, idx := range queryIndices {
			rows[i] = currentStackedAll[j][idx]
		}
		paths, err := currentTrees[j].ProveBulk(queryIndices)
		if err != nil {
			return nil, errs.NewProtocolViolation("failed to open a boundary quotient commitment", err)
		}
		bqCurrent.StackedRows[j] = rows
		bqCurrent.Paths[j] = paths

		nRows := make([][]field.Element, len(queryIndices))
		for i, idx := range queryIndices {
			nRows[i] = nextStackedAll[j][idx]
		}
		nPaths, err := nextTrees[j].ProveBulk(queryIndices)
		if err != nil {
			return nil, errs.NewProtocolViolation("failed to open a shifted boundary quotient commitment", err)
		}
		bqNext.StackedRows[j] = nRows
		bqNext.Paths[j] = nPaths
	}

	log.WithField("queries", len(queryIndices)).Debug("STARK proof complete")

	return &Proof{
		Combination: friProof,
		BQCurrent:   bqCurrent,
		BQNext:      bqNext,
	}, nil
}

func stackedFieldRowsToLeaves(rows [][]field.Element) [][]byte {
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
