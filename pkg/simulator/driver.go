// Package simulator provides a pluggable content source for the loom
// system.
//
// A simulator is the external generative process whose branching and
// merging history the hypergraph records. The graph never interprets the
// simulator's output; it only stores what the simulator proposes. The
// [Driver] interface is intentionally minimal: Propose turns a prompt into
// one candidate continuation, and Close releases resources.
//
// Drivers are pluggable via configuration:
//
//	[simulator]
//	provider = "ollama"   # or "script"
package simulator

import (
	"context"
	"errors"
)

// ErrNoProposal indicates the driver produced no usable continuation for a
// prompt. Callers treat it as an empty result, not a transport failure.
var ErrNoProposal = errors.New("simulator returned no proposal")

// Driver produces candidate content continuations.
type Driver interface {
	// Name identifies the driver, e.g. for logging and stats.
	Name() string

	// Propose generates one continuation for the given prompt.
	Propose(ctx context.Context, prompt string) (string, error)

	// Close releases driver resources.
	Close() error
}
