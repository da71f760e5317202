// Package attest talks to the remote attestation service: it fetches
// challenge descriptors and trades solved challenges for integrity tokens.
package attest

import "errors"

// Challenge describes one interpreter program issued by the attestation
// service.  It is immutable and produced once per refresh cycle.
type Challenge struct {
	// Program is the opaque program blob that the interpreter executes.
	Program []byte
	// EntryPoint is the global name under which the program registers its
	// entry function.
	EntryPoint string
	// Hash identifies the program version.
	Hash string
	// Interpreter is the interpreter source, fetched from the URL that the
	// challenge envelope references.
	Interpreter []byte
	// ExperimentState is an opaque experiment-state blob that the program
	// consumes.
	ExperimentState []byte
}

// Validate returns an error if any field required for execution is absent.
// A partial challenge must never reach the sandbox.
func (c *Challenge) Validate() error {
	switch {
	case len(c.Program) == 0:
		return errors.New("challenge carries no program")
	case c.EntryPoint == "":
		return errors.New("challenge carries no entry point")
	case c.Hash == "":
		return errors.New("challenge carries no program hash")
	case len(c.Interpreter) == 0:
		return errors.New("challenge carries no interpreter source")
	case len(c.ExperimentState) == 0:
		return errors.New("challenge carries no experiment state")
	}
	return nil
}

// SignalBundle is the opaque output of executing a challenge program.
// Only the attestation service can interpret it; never inspect or log it.
type SignalBundle []byte

// IntegrityToken is a medium-lived credential obtained by solving a
// challenge.  It is immutable once created.
type IntegrityToken struct {
	// Token is the opaque integrity token.
	Token string
	// TTL is the estimated validity of the token in seconds.
	TTL int
	// RefreshThreshold is the number of seconds before expiry at which the
	// token should be refreshed.
	RefreshThreshold int
	// Fallback is an alternate token carried for forward compatibility.
	// Nothing consumes it today.
	Fallback string
}
