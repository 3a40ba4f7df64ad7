package proteus

import (
	"github.com/proteus-stark/proteus/sponge"
	"github.com/proteus-stark/proteus/stark"
)

// ProveAIR runs the STARK prover against air using a fresh transcript,
// convenient for callers who don't need to interleave this proof with any
// other protocol's sponge state.
func (s *Session) ProveAIR(air *AIR) (*StarkProof, error) {
	return stark.Prove(s.Stark, air, sponge.New())
}

// VerifyAIR runs the STARK verifier against statement and proof using a
// fresh transcript. statement must be the public half of the same AIR
// contract the prover used (see AIR.Statement).
func (s *Session) VerifyAIR(statement *Statement, proof *StarkProof) error {
	return stark.Verify(s.Stark, statement, proof, sponge.New())
}
