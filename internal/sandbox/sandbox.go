// Package sandbox defines the boundary to the script execution engine
// that solves challenges.  The orchestration never depends on a concrete
// engine; it only consumes this interface.
package sandbox

import (
	"github.com/attestware/potoken/internal/attest"
	"github.com/attestware/potoken/internal/minter"
)

// Engine runs challenge programs and derives mint capabilities.  Making
// this an interface helps with testing and keeps the pipeline free of any
// script-engine dependency: an implementation may embed a scripting
// engine or shell out to a helper process.
type Engine interface {
	// Execute runs the challenge program in the given host environment and
	// returns the signal bundle it emits.  Execution is synchronous and
	// performs no network I/O.
	Execute(challenge *attest.Challenge, env *Environment) (attest.SignalBundle, error)

	// Minter derives the local mint capability bound to the given
	// integrity token.
	Minter(token *attest.IntegrityToken) (minter.MintFunc, error)
}
