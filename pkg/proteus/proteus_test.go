package proteus_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/proteus-stark/proteus/internal/fixtures"
	"github.com/proteus-stark/proteus/pkg/proteus"
)

func TestSessionProveVerifyCounter(t *testing.T) {
	config := proteus.DefaultConfig().WithTraceRows(8)
	session, err := proteus.NewSession(config)
	require.NoError(t, err)

	air, err := fixtures.Counter(session.Field, 8)
	require.NoError(t, err)

	proof, err := session.ProveAIR(air)
	require.NoError(t, err)

	require.NoError(t, session.VerifyAIR(air.Statement(), proof))
}

func TestNewSessionRejectsUnknownFieldPreset(t *testing.T) {
	config := proteus.DefaultConfig()
	config.FieldPreset = "not-a-real-field"

	_, err := proteus.NewSession(config)
	require.Error(t, err)
}
