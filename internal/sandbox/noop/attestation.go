package noop

import (
	"context"

	"github.com/attestware/potoken/internal/attest"
	"github.com/attestware/potoken/internal/session"
	"github.com/fxamacker/cbor/v2"
	"github.com/google/uuid"
)

// Attestation stands in for the remote attestation service.  Fetch and
// Exchange complete locally, so neither needs a session context or a
// reachable host.
type Attestation struct{}

// NewAttestation returns a new local attestation stub.
func NewAttestation() *Attestation {
	return &Attestation{}
}

// Fetch returns a synthetic challenge with every field populated.
func (*Attestation) Fetch(context.Context, *session.Context) (*attest.Challenge, error) {
	return &attest.Challenge{
		Program:         []byte("noop program"),
		EntryPoint:      "noopEntry",
		Hash:            "noop-" + uuid.NewString(),
		Interpreter:     []byte("noop interpreter"),
		ExperimentState: []byte("noop experiment state"),
	}, nil
}

// Exchange validates that the bundle is one of ours and issues a local
// integrity token.
func (*Attestation) Exchange(_ context.Context, bundle attest.SignalBundle) (*attest.IntegrityToken, error) {
	var signals map[string]any
	if err := cbor.Unmarshal(bundle, &signals); err != nil {
		return nil, err
	}
	return &attest.IntegrityToken{
		Token:            "noop-integrity-" + uuid.NewString(),
		TTL:              43200,
		RefreshThreshold: 600,
	}, nil
}
