// Package errs defines the error taxonomy of the token pipeline.
package errs

import (
	"errors"
	"fmt"
)

var (
	// AttestationUnavailable is returned once both the primary and the
	// fallback challenge path have failed.
	AttestationUnavailable = errors.New("attestation service unavailable")
	ContextUnavailable     = errors.New("no session context available")
	EmptyToken             = errors.New("minted token is empty")
	IdentifierUnavailable  = errors.New("no identifier available")
	IntegrityExchange      = errors.New("integrity token exchange failed")
	MintingFailed          = errors.New("token minting failed")
	SandboxExecution       = errors.New("sandbox execution failed")
)

func Wrap(err *error, str string, args ...any) {
	if *err != nil {
		*err = fmt.Errorf("%s: %w", fmt.Sprintf(str, args...), *err)
	}
}

// WrapErr wraps the given error in the given wrapper error.
func WrapErr(err *error, wrapper error) {
	if *err != nil {
		*err = fmt.Errorf("%w: %w", wrapper, *err)
	}
}
