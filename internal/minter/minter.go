// Package minter mints identifier-bound tokens from a live integrity
// token and caches minters until they expire.
package minter

import (
	"errors"
	"time"

	"github.com/attestware/potoken/internal/attest"
	"github.com/attestware/potoken/internal/errs"
)

// Key identifies one attestation session in the cache.
type Key string

// DefaultKey is used while the service manages a single attestation
// session.  Multi-session deployments key by session identity instead.
const DefaultKey Key = "default"

// MintFunc derives an identifier-bound token.  It is purely local and
// performs no network I/O.
type MintFunc func(input string) (string, error)

// Minter wraps one integrity token and mints tokens cheaply until the
// token expires.  Minters are owned exclusively by the cache.
type Minter struct {
	expiry    time.Time
	integrity *attest.IntegrityToken
	mint      MintFunc
}

// New returns a minter for the given integrity token.  The expiry leaves
// refresh headroom: the minter counts as expired RefreshThreshold seconds
// before the integrity token itself lapses.
func New(token *attest.IntegrityToken, mint MintFunc, now time.Time) *Minter {
	ttl := token.TTL - token.RefreshThreshold
	if ttl < 0 {
		ttl = 0
	}
	return &Minter{
		expiry:    now.Add(time.Duration(ttl) * time.Second),
		integrity: token,
		mint:      mint,
	}
}

// Expiry returns the time after which the minter must not be used.
func (m *Minter) Expiry() time.Time {
	return m.expiry
}

// Expired reports whether the minter must no longer be used.
func (m *Minter) Expired(now time.Time) bool {
	return !now.Before(m.expiry)
}

// Mint derives a token bound to the given input.  Minting may be
// non-deterministic, but an empty result for a non-empty input means the
// underlying capability is corrupted or expired; the caller must then
// evict this minter.
func (m *Minter) Mint(input string) (_ string, err error) {
	defer errs.WrapErr(&err, errs.MintingFailed)

	out, err := m.mint(input)
	if err != nil {
		return "", err
	}
	if out == "" && input != "" {
		return "", errors.New("capability returned empty output")
	}
	return out, nil
}
