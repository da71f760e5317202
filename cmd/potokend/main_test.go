package main

import (
	"bytes"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/attestware/potoken/internal/httpx"
	"github.com/attestware/potoken/internal/service"
	"github.com/attestware/potoken/internal/service/potoken"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testAddr = "127.0.0.1:8990"

func srvURL(path string) string {
	return fmt.Sprintf("http://%s%s", testAddr, path)
}

func startSvc(t *testing.T, flags ...string) (context.CancelFunc, *sync.WaitGroup) {
	t.Helper()

	var (
		ctx, cancel = context.WithCancel(context.Background())
		wg          = new(sync.WaitGroup)
	)
	flags = append([]string{"-insecure", "-addr", testAddr}, flags...)

	wg.Add(1)
	go func() {
		defer wg.Done()
		// run blocks until the context is cancelled.
		assert.NoError(t, run(ctx, io.Discard, flags))
	}()

	deadline, cancelDl := context.WithTimeout(ctx, time.Second)
	defer cancelDl()
	require.NoError(t, httpx.WaitForSvc(deadline, http.DefaultClient, srvURL(service.PathIndex)))
	return cancel, wg
}

func stopSvc(cancel context.CancelFunc, wg *sync.WaitGroup) {
	cancel()
	wg.Wait()
}

func TestBadConfig(t *testing.T) {
	require.Error(t, run(context.Background(), io.Discard, []string{
		// Not running insecure, so the attestation host is required.
		"-addr", testAddr,
	}))
}

func TestHelp(t *testing.T) {
	require.ErrorIs(t,
		run(context.Background(), io.Discard, []string{
			"-help",
		}),
		flag.ErrHelp,
	)
}

func TestPages(t *testing.T) {
	defer stopSvc(startSvc(t))

	cases := []struct {
		name     string
		url      string
		wantBody string
	}{
		{
			name:     "index",
			url:      srvURL(service.PathIndex),
			wantBody: "proof-of-origin",
		},
		{
			name:     "config",
			url:      srvURL(service.PathConfig),
			wantBody: `"Testing":true`,
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			resp, err := http.Get(c.url)
			require.NoError(t, err)
			defer resp.Body.Close()
			require.Equal(t, http.StatusOK, resp.StatusCode)

			body, err := io.ReadAll(resp.Body)
			require.NoError(t, err)
			require.Contains(t, string(body), c.wantBody)
		})
	}
}

func TestTokenEndToEnd(t *testing.T) {
	defer stopSvc(startSvc(t))

	reqBody := `{"identifier": "visitor-123", "subIdentifier": "video-abc"}`
	resp, err := http.Post(srvURL(service.PathToken), "application/json",
		bytes.NewBufferString(reqBody))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var result potoken.Result
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&result))
	require.Equal(t, "visitor-123", result.Identifier)
	require.NotEmpty(t, result.PrimaryToken)
	require.NotEmpty(t, result.SecondaryToken)
	require.True(t, result.ExpiresAt.After(time.Now()))
}
