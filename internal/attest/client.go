package attest

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"log"

	"github.com/attestware/potoken/internal/errs"
	"github.com/attestware/potoken/internal/httpx"
	"github.com/attestware/potoken/internal/session"
)

const (
	// RequestKey is the fixed, process-wide key that identifies this client
	// generation to the attestation service.
	RequestKey = "pXgQxFwnL0eyUvxtZ4jl"

	// engagementType marks what the requested challenge is bound to.  We
	// only ever request unbound challenges.
	engagementType = "ENGAGEMENT_TYPE_UNBOUND"

	createPath   = "/v1/challenge/create"
	fallbackPath = "/v1/challenge/fallback"
)

// Client fetches challenge descriptors from the attestation service.
type Client struct {
	host   string
	client httpx.Doer
}

// NewClient returns a client that talks to the attestation service at the
// given base URL using the given transport.
func NewClient(host string, client httpx.Doer) *Client {
	return &Client{host: host, client: client}
}

// Fetch obtains a challenge.  The primary path carries the caller's
// session context; if it fails for any reason we fall back, without
// retrying, to the self-contained fallback path.  Only when both paths
// fail does Fetch return errs.AttestationUnavailable.
func (c *Client) Fetch(ctx context.Context, sctx *session.Context) (*Challenge, error) {
	challenge, err := c.create(ctx, sctx)
	if err != nil {
		log.Printf("Primary challenge path failed, falling back: %v", err)
		challenge, err = c.fallback(ctx)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %w", errs.AttestationUnavailable, err)
	}
	return challenge, nil
}

func (c *Client) create(ctx context.Context, sctx *session.Context) (*Challenge, error) {
	body, err := httpx.Post(ctx, c.client, c.host+createPath,
		[]any{RequestKey, engagementType, sctx})
	if err != nil {
		return nil, err
	}
	return c.parseEnvelope(ctx, body)
}

// fallback constructs a challenge without a session context.
func (c *Client) fallback(ctx context.Context) (*Challenge, error) {
	body, err := httpx.Post(ctx, c.client, c.host+fallbackPath, []any{RequestKey})
	if err != nil {
		return nil, err
	}
	return c.parseEnvelope(ctx, body)
}

// parseEnvelope decodes the challenge envelope and fetches the interpreter
// source it references.  The envelope is the fixed-order tuple
// [interpreterURL, hash, program, entryPoint, experimentState] with the
// blob fields in Base64.
func (c *Client) parseEnvelope(ctx context.Context, body []byte) (_ *Challenge, err error) {
	defer errs.Wrap(&err, "failed to parse challenge envelope")

	var tuple []json.RawMessage
	if err := json.Unmarshal(body, &tuple); err != nil {
		return nil, err
	}
	if len(tuple) < 5 {
		return nil, fmt.Errorf("envelope has %d of 5 fields", len(tuple))
	}

	var interpreterURL, hash, program, entryPoint, expState string
	for i, field := range []*string{&interpreterURL, &hash, &program, &entryPoint, &expState} {
		if err := json.Unmarshal(tuple[i], field); err != nil {
			return nil, fmt.Errorf("envelope field %d: %w", i, err)
		}
	}
	if interpreterURL == "" {
		return nil, errors.New("envelope references no interpreter")
	}

	challenge := &Challenge{
		EntryPoint: entryPoint,
		Hash:       hash,
	}
	if challenge.Program, err = base64.StdEncoding.DecodeString(program); err != nil {
		return nil, err
	}
	if challenge.ExperimentState, err = base64.StdEncoding.DecodeString(expState); err != nil {
		return nil, err
	}
	if challenge.Interpreter, err = httpx.Get(ctx, c.client, interpreterURL); err != nil {
		return nil, err
	}
	return challenge, challenge.Validate()
}
