// Package potoken orchestrates the proof-of-origin token pipeline:
// challenge fetch, sandbox execution, integrity exchange, and minting,
// amortized through an expiry-aware minter cache.
package potoken

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/attestware/potoken/internal/attest"
	"github.com/attestware/potoken/internal/errs"
	"github.com/attestware/potoken/internal/minter"
	"github.com/attestware/potoken/internal/sandbox"
	"github.com/attestware/potoken/internal/session"
)

// resultTTL is the caller-facing validity horizon of a generated token.
// It is deliberately independent of the integrity token's own TTL: result
// freshness and minting-capability freshness are different trust
// boundaries.
const resultTTL = 6 * time.Hour

// Result is what callers receive for one generate call.
type Result struct {
	PrimaryToken   string    `json:"primaryToken"`
	Identifier     string    `json:"identifier"`
	SecondaryToken string    `json:"secondaryToken,omitempty"`
	ExpiresAt      time.Time `json:"expiresAt"`
}

// ChallengeFetcher obtains a challenge descriptor from the attestation
// service.
type ChallengeFetcher interface {
	Fetch(ctx context.Context, sctx *session.Context) (*attest.Challenge, error)
}

// IntegrityExchanger trades a signal bundle for an integrity token.
type IntegrityExchanger interface {
	Exchange(ctx context.Context, bundle attest.SignalBundle) (*attest.IntegrityToken, error)
}

// Generator runs the token pipeline.  It is the only component that
// external callers invoke.
type Generator struct {
	fetcher   ChallengeFetcher
	engine    sandbox.Engine
	exchanger IntegrityExchanger
	sessions  session.Provider
	cache     *minter.Cache
	now       func() time.Time
}

// NewGenerator wires the pipeline from its collaborators.
func NewGenerator(
	fetcher ChallengeFetcher,
	engine sandbox.Engine,
	exchanger IntegrityExchanger,
	sessions session.Provider,
) *Generator {
	return &Generator{
		fetcher:   fetcher,
		engine:    engine,
		exchanger: exchanger,
		sessions:  sessions,
		cache:     minter.NewCache(),
		now:       time.Now,
	}
}

// Generate mints a proof-of-origin token for the given identifier,
// obtaining one from the session provider if the identifier is empty.
// The sub identifier is minted best-effort: its failure degrades to an
// absent field rather than failing the request.
func (g *Generator) Generate(ctx context.Context, identifier, subIdentifier string) (_ *Result, err error) {
	defer errs.Wrap(&err, "failed to generate token")

	sctx := &session.Context{Identifier: identifier}
	if identifier == "" {
		sc, err := g.sessions.Context(ctx)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", errs.IdentifierUnavailable, err)
		}
		if sc.Identifier == "" {
			return nil, errs.IdentifierUnavailable
		}
		sctx, identifier = sc, sc.Identifier
	}

	m, err := g.cache.GetOrRefresh(ctx, minter.DefaultKey,
		func(ctx context.Context) (*minter.Minter, error) {
			return g.build(ctx, sctx)
		})
	if err != nil {
		return nil, err
	}

	primary, err := g.mint(m, identifier)
	if err != nil {
		return nil, err
	}

	result := &Result{
		PrimaryToken: primary,
		Identifier:   identifier,
		ExpiresAt:    g.now().Add(resultTTL),
	}
	if subIdentifier != "" {
		secondary, err := g.mint(m, subIdentifier)
		if err != nil {
			// The primary token is already minted and remains valid; a
			// failed secondary mint degrades to an absent field.
			log.Printf("Failed to mint secondary token: %v", err)
		} else {
			result.SecondaryToken = secondary
		}
	}
	return result, nil
}

// build runs one full refresh cycle.  Challenge fetch strictly precedes
// the exchange, which strictly precedes any minting.
func (g *Generator) build(ctx context.Context, sctx *session.Context) (*minter.Minter, error) {
	challenge, err := g.fetcher.Fetch(ctx, sctx)
	if err != nil {
		return nil, err
	}
	bundle, err := g.engine.Execute(challenge, sandbox.Host())
	if err != nil {
		return nil, err
	}
	token, err := g.exchanger.Exchange(ctx, bundle)
	if err != nil {
		return nil, err
	}
	mint, err := g.engine.Minter(token)
	if err != nil {
		return nil, err
	}
	log.Printf("Built fresh minter; integrity token is good for %ds.", token.TTL)
	return minter.New(token, mint, g.now()), nil
}

// mint derives one token and evicts the cached minter if its capability
// turns out to be poisoned, so the next call rebuilds instead of failing
// the same way again.
func (g *Generator) mint(m *minter.Minter, input string) (string, error) {
	out, err := m.Mint(input)
	if err != nil {
		if errors.Is(err, errs.MintingFailed) {
			g.cache.Evict(minter.DefaultKey)
		}
		return "", err
	}
	if out == "" {
		return "", errs.EmptyToken
	}
	return out, nil
}
