package proteus

import (
	"github.com/proteus-stark/proteus/errs"
	"github.com/proteus-stark/proteus/field"
	"github.com/proteus-stark/proteus/fri"
	"github.com/proteus-stark/proteus/stark"
)

// Config collects the knobs needed to build a proving/verifying Session:
// which field to work over, the FRI tuning parameters, and the trace
// height the STARK layer should pad to.
type Config struct {
	FieldPreset string // "goldilocks", "babybear", or "toy193"

	FoldingFactor   int // k
	ExpansionFactor int // rho
	InitialCoeffLen int // d0
	FinalCoeffLen   int // df
	SecurityBits    int // lambda

	TraceRows int // n_rows, padded up to the next power of two
}

// DefaultConfig returns parameters tuned for the Goldilocks field at a
// moderate security level, sized for the bundled reference AIRs.
func DefaultConfig() *Config {
	return &Config{
		FieldPreset:     "goldilocks",
		FoldingFactor:   2,
		ExpansionFactor: 4,
		InitialCoeffLen: 32,
		FinalCoeffLen:   4,
		SecurityBits:    96,
		TraceRows:       16,
	}
}

// WithTraceRows sets the trace row count.
func (c *Config) WithTraceRows(n int) *Config {
	c.TraceRows = n
	return c
}

// WithSecurityBits sets the target security level.
func (c *Config) WithSecurityBits(bits int) *Config {
	c.SecurityBits = bits
	return c
}

// Clone returns a copy of c.
func (c *Config) Clone() *Config {
	clone := *c
	return &clone
}

func (c *Config) resolveField() (*field.Field, error) {
	switch c.FieldPreset {
	case "", "goldilocks":
		return field.Goldilocks(), nil
	case "babybear":
		return field.BabyBear(), nil
	case "toy193":
		return field.Toy193(), nil
	default:
		return nil, errs.NewParameterError("unknown field preset: "+c.FieldPreset, nil)
	}
}

// Session binds a field, FRI parameters, and STARK parameters built from a
// Config, mirroring the teacher's NewVM(config) construction step: build
// once, then reuse across many Prove/Verify calls.
type Session struct {
	Field  *field.Field
	FRI    *fri.Params
	Stark  *stark.Params
}

// NewSession builds the field and parameter set a Config describes.
func NewSession(config *Config) (*Session, error) {
	f, err := config.resolveField()
	if err != nil {
		return nil, err
	}

	friParams, err := fri.NewParams(f, config.FoldingFactor, config.ExpansionFactor, config.InitialCoeffLen, config.FinalCoeffLen, config.SecurityBits)
	if err != nil {
		return nil, err
	}

	starkParams, err := stark.NewParams(f, config.TraceRows, friParams)
	if err != nil {
		return nil, err
	}

	return &Session{Field: f, FRI: friParams, Stark: starkParams}, nil
}
