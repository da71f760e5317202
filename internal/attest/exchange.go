package attest

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/attestware/potoken/internal/errs"
	"github.com/attestware/potoken/internal/httpx"
)

const generatePath = "/v1/integrity/generate"

// Exchanger trades signal bundles for integrity tokens.
type Exchanger struct {
	host   string
	client httpx.Doer
}

// NewExchanger returns an exchanger that talks to the attestation service
// at the given base URL using the given transport.
func NewExchanger(host string, client httpx.Doer) *Exchanger {
	return &Exchanger{host: host, client: client}
}

// Exchange sends the signal bundle to the token-generation endpoint and
// returns the integrity token it yields.  The response is the fixed-order
// tuple [token, ttlSeconds, refreshThreshold, fallbackToken].  An empty
// token field is an error, not a valid-but-null result.
func (e *Exchanger) Exchange(ctx context.Context, bundle SignalBundle) (_ *IntegrityToken, err error) {
	defer errs.WrapErr(&err, errs.IntegrityExchange)

	body, err := httpx.Post(ctx, e.client, e.host+generatePath,
		[]any{RequestKey, base64.StdEncoding.EncodeToString(bundle)})
	if err != nil {
		return nil, err
	}

	var tuple []json.RawMessage
	if err := json.Unmarshal(body, &tuple); err != nil {
		return nil, err
	}
	if len(tuple) < 3 {
		return nil, fmt.Errorf("token tuple has %d of 3 required fields", len(tuple))
	}

	token := new(IntegrityToken)
	if err := json.Unmarshal(tuple[0], &token.Token); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(tuple[1], &token.TTL); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(tuple[2], &token.RefreshThreshold); err != nil {
		return nil, err
	}
	if len(tuple) > 3 {
		if err := json.Unmarshal(tuple[3], &token.Fallback); err != nil {
			return nil, err
		}
	}

	if token.Token == "" {
		return nil, errors.New("response carries no integrity token")
	}
	if token.TTL < 0 {
		return nil, errors.New("response carries a negative ttl")
	}
	return token, nil
}
