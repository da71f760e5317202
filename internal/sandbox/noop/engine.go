// Package noop implements a self-contained stand-in for the remote
// attestation stack.  It solves challenges and mints tokens locally,
// which makes the full pipeline exercisable without network access.
// Tokens minted this way prove nothing about the client environment.
package noop

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"time"

	"github.com/attestware/potoken/internal/attest"
	"github.com/attestware/potoken/internal/errs"
	"github.com/attestware/potoken/internal/minter"
	"github.com/attestware/potoken/internal/sandbox"
	"github.com/fxamacker/cbor/v2"
	"github.com/golang-jwt/jwt/v5"
)

var _ = sandbox.Engine(&Engine{})

// Engine executes challenge programs without a script interpreter.
type Engine struct {
	signKey []byte
}

// NewEngine returns a new noop engine.
func NewEngine() *Engine {
	return &Engine{signKey: []byte("insecure-noop-signing-key")}
}

// Execute emits a CBOR-encoded bundle describing the challenge it was
// given.  A real engine runs the challenge program, which collects its
// signals from the host environment.
func (e *Engine) Execute(challenge *attest.Challenge, env *sandbox.Environment) (_ attest.SignalBundle, err error) {
	defer errs.WrapErr(&err, errs.SandboxExecution)

	if challenge == nil {
		return nil, errors.New("no challenge given")
	}
	if err := challenge.Validate(); err != nil {
		return nil, err
	}
	if env == nil {
		return nil, errors.New("no host environment given")
	}

	bundle, err := cbor.Marshal(map[string]any{
		"program_hash": challenge.Hash,
		"entry_point":  challenge.EntryPoint,
		"globals":      len(env.Globals),
		"executed_at":  time.Now().Unix(),
	})
	if err != nil {
		return nil, err
	}
	return bundle, nil
}

// Minter derives a mint capability that signs the input together with a
// digest of the integrity token.  The capability is purely local.
func (e *Engine) Minter(token *attest.IntegrityToken) (minter.MintFunc, error) {
	if token == nil || token.Token == "" {
		return nil, errors.New("no integrity token given")
	}
	digest := sha256.Sum256([]byte(token.Token))
	binding := hex.EncodeToString(digest[:8])

	return func(input string) (string, error) {
		claims := jwt.MapClaims{
			"sub": input,
			"itb": binding,
			"iat": jwt.NewNumericDate(time.Now()),
		}
		t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
		return t.SignedString(e.signKey)
	}, nil
}
