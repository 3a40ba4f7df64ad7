// Command proteus-prove is a thin CLI exercising the proteus engine end to
// end: it reads a JSON claim from stdin, proves it against one of the
// bundled reference AIRs, verifies the proof it just produced, and reports
// accept/reject on stdout. It is deliberately minimal — a general
// JSON-encoded AIR/constraint format is out of scope for this library.
package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"

	"github.com/proteus-stark/proteus/internal/fixtures"
	"github.com/proteus-stark/proteus/pkg/proteus"
)

// Claim mirrors the teacher CLI's JSON-lines protocol, trimmed to what a
// FRI/STARK-only engine needs: which reference AIR to run and over how
// many rows.
type Claim struct {
	AIR  string `json:"air"`  // "fibonacci", "factorial", or "counter"
	Rows int    `json:"rows"` // trace row count
}

func main() {
	scanner := bufio.NewScanner(os.Stdin)
	if !scanner.Scan() {
		fatal("failed to read claim")
	}

	var claim Claim
	if err := json.Unmarshal(scanner.Bytes(), &claim); err != nil {
		fatal(fmt.Sprintf("failed to parse claim: %v", err))
	}
	if claim.Rows <= 0 {
		fatal("claim.rows must be positive")
	}

	config := proteus.DefaultConfig().WithTraceRows(claim.Rows)
	session, err := proteus.NewSession(config)
	if err != nil {
		fatal(fmt.Sprintf("failed to build session: %v", err))
	}

	air, err := buildAIR(claim.AIR, session.Field, claim.Rows)
	if err != nil {
		fatal(fmt.Sprintf("failed to build AIR %q: %v", claim.AIR, err))
	}

	// Factorial produces claim.Rows+1 trace rows (row 0 is idx=0; it
	// takes claim.Rows further rows to reach idx=claim.Rows), so the
	// STARK parameters' trace height may need to be rebuilt against the
	// AIR's actual row count rather than the claim's row count.
	if rows := len(air.Trace); rows != claim.Rows {
		starkParams, err := proteus.NewStarkParams(session.Field, rows, session.FRI)
		if err != nil {
			fatal(fmt.Sprintf("failed to resize session for AIR %q: %v", claim.AIR, err))
		}
		session.Stark = starkParams
	}

	logStderr("proving...")
	proof, err := session.ProveAIR(air)
	if err != nil {
		fatal(fmt.Sprintf("proving failed: %v", err))
	}

	logStderr("verifying...")
	verifyErr := session.VerifyAIR(air.Statement(), proof)

	result := map[string]any{
		"air":     claim.AIR,
		"rows":    claim.Rows,
		"proven":  true,
		"accepts": verifyErr == nil,
	}
	if verifyErr != nil {
		result["reject_reason"] = verifyErr.Error()
	}

	out, err := json.Marshal(result)
	if err != nil {
		fatal(fmt.Sprintf("failed to serialize result: %v", err))
	}
	os.Stdout.Write(out)
	os.Stdout.Write([]byte("\n"))
}

func buildAIR(name string, f *proteus.Field, rows int) (*proteus.AIR, error) {
	switch name {
	case "", "fibonacci":
		return fixtures.Fibonacci(f, rows)
	case "factorial":
		return fixtures.Factorial(f, rows)
	case "counter":
		return fixtures.Counter(f, rows)
	default:
		return nil, fmt.Errorf("unknown AIR %q", name)
	}
}

func logStderr(msg string) {
	fmt.Fprintln(os.Stderr, "proteus-prove:", msg)
}

func fatal(msg string) {
	logStderr("error: " + msg)
	os.Exit(1)
}
