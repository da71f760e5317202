// Package session provides the session context that scopes a challenge
// request: a visitor identifier plus opaque client metadata.
package session

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/google/uuid"
)

// Context carries the caller identity and request metadata that the
// attestation service binds a challenge to.
type Context struct {
	Identifier     string          `json:"identifier"`
	ClientMetadata json.RawMessage `json:"clientMetadata,omitempty"`
}

// Provider yields the current session context.  Implementations may fail
// with errs.ContextUnavailable if no context can be produced.
type Provider interface {
	Context(ctx context.Context) (*Context, error)
}

// EphemeralProvider issues one random visitor identifier per process and
// returns it for the process's lifetime.  It is the default provider when
// no external identity source is wired in.
type EphemeralProvider struct {
	once sync.Once
	sctx *Context
}

func NewEphemeralProvider() *EphemeralProvider {
	return &EphemeralProvider{}
}

func (p *EphemeralProvider) Context(context.Context) (*Context, error) {
	p.once.Do(func() {
		p.sctx = &Context{
			Identifier:     "visitor-" + uuid.NewString(),
			ClientMetadata: json.RawMessage(`{"client":"potokend"}`),
		}
	})
	return p.sctx, nil
}
