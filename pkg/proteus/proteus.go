// Package proteus is the public facade for the FRI low-degree test and the
// STARK prover/verifier built on top of it. It re-exports the internal
// subpackages' types and constructors to give callers a single import path.
package proteus

import (
	"github.com/proteus-stark/proteus/errs"
	"github.com/proteus-stark/proteus/field"
	"github.com/proteus-stark/proteus/fri"
	"github.com/proteus-stark/proteus/merkle"
	"github.com/proteus-stark/proteus/polynomial"
	"github.com/proteus-stark/proteus/sponge"
	"github.com/proteus-stark/proteus/stark"
)

// Re-export field types and constructors.
type (
	Field   = field.Field
	Element = field.Element
)

var (
	NewField           = field.New
	NewFieldFromUint64 = field.NewFromUint64
	Goldilocks         = field.Goldilocks
	BabyBear           = field.BabyBear
	Toy193             = field.Toy193
	BatchInversion     = field.BatchInversion
)

// Re-export polynomial types and constructors.
type (
	Polynomial   = polynomial.Polynomial
	Multivariate = polynomial.Multivariate
	Domain       = polynomial.Domain
)

var (
	NewPolynomial    = polynomial.New
	ZeroPolynomial   = polynomial.Zero
	Interpolate      = polynomial.Interpolate
	FromRoots        = polynomial.FromRoots
	NewMultivariate  = polynomial.NewMultivariate
	NewDomain        = polynomial.NewDomain
)

// Re-export the Merkle commitment.
type (
	MerkleTree = merkle.Tree
	MerklePath = merkle.Path
)

var NewMerkleTree = merkle.New

// Re-export the Fiat-Shamir sponge.
type Sponge = sponge.Sponge

var NewSponge = sponge.New

// Re-export FRI types, parameters, and the prover/verifier entry points.
type (
	FRIParams = fri.Params
	FRIProof  = fri.Proof
)

var (
	NewFRIParams       = fri.NewParams
	Prove              = fri.Prove
	Verify             = fri.Verify
	UnmarshalFRIProof  = fri.UnmarshalCanonical
)

// Re-export STARK types and the AIR-level prover/verifier entry points.
type (
	AIR                = stark.AIR
	Statement          = stark.Statement
	BoundaryConstraint = stark.BoundaryConstraint
	StarkParams        = stark.Params
	StarkProof         = stark.Proof
)

var (
	NewAIR              = stark.NewAIR
	NewStarkParams      = stark.NewParams
	ProveStatement      = stark.Prove
	VerifyStatement     = stark.Verify
	UnmarshalStarkProof = stark.UnmarshalCanonical
)

// Re-export the error taxonomy.
type (
	ParameterError      = errs.ParameterError
	ProtocolViolation   = errs.ProtocolViolation
	VerificationFailure = errs.VerificationFailure
	Stage               = errs.Stage
)

var (
	NewParameterError      = errs.NewParameterError
	NewProtocolViolation   = errs.NewProtocolViolation
	NewVerificationFailure = errs.NewVerificationFailure
)
