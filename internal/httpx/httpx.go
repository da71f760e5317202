// Package httpx implements the outbound HTTP transport used to reach the
// attestation service.
package httpx

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/attestware/potoken/internal/errs"
)

// Doer issues HTTP requests.  *http.Client satisfies it; tests inject
// in-memory transports instead.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// maxBodyLen caps how much of a response body we are willing to read.
// Challenge envelopes and interpreter sources are well below this.
const maxBodyLen = 1 << 22

// NewClient returns the HTTP client used for outbound attestation calls.
func NewClient() *http.Client {
	return &http.Client{
		Timeout: 30 * time.Second,
	}
}

// Post sends the given value as a JSON POST body and returns the response
// body.  A non-200 response is an error.
func Post(ctx context.Context, client Doer, url string, v any) (_ []byte, err error) {
	defer errs.Wrap(&err, "failed to post to %s", url)

	body, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	return do(client, req)
}

// Get fetches the given URL and returns the response body.  A non-200
// response is an error.
func Get(ctx context.Context, client Doer, url string) (_ []byte, err error) {
	defer errs.Wrap(&err, "failed to get %s", url)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	return do(client, req)
}

// WaitForSvc waits for the service at the given URL to become available
// by making repeated HTTP GET requests.  It blocks until the service
// responds or the given context expires.
func WaitForSvc(ctx context.Context, client Doer, url string) (err error) {
	defer errs.Wrap(&err, "failed to wait for service")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	for {
		if resp, err := client.Do(req); err == nil {
			resp.Body.Close()
			return nil
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(10 * time.Millisecond):
		}
	}
}

func do(client Doer, req *http.Request) ([]byte, error) {
	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("got status %d", resp.StatusCode)
	}
	return io.ReadAll(io.LimitReader(resp.Body, maxBodyLen))
}
