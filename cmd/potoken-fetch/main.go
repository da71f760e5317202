// potoken-fetch requests a proof-of-origin token from a running potokend
// and prints it.  It doubles as a smoke test for deployments.
package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"

	"github.com/attestware/potoken/internal/errs"
	"github.com/attestware/potoken/internal/httperr"
	"github.com/attestware/potoken/internal/httpx"
	"github.com/attestware/potoken/internal/service/potoken"
	"github.com/fatih/color"
)

var errFailedToParse = errors.New("failed to parse flags")

type config struct {
	addr          string
	identifier    string
	subIdentifier string
	verbose       bool
}

func parseFlags(out io.Writer, args []string) (_ *config, err error) {
	defer errs.WrapErr(&err, errFailedToParse)

	fs := flag.NewFlagSet("potoken-fetch", flag.ContinueOnError)
	fs.SetOutput(out)

	addr := fs.String(
		"addr",
		"",
		"Address of the token service, e.g.: http://localhost:8979",
	)
	identifier := fs.String(
		"identifier",
		"",
		"Identifier to bind the token to; the service picks one if empty",
	)
	subIdentifier := fs.String(
		"sub-identifier",
		"",
		"Optional content identifier for a secondary token",
	)
	verbose := fs.Bool(
		"verbose",
		false,
		"Enable verbose output",
	)
	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	if *addr == "" {
		return nil, errors.New("flag -addr must be provided")
	}

	return &config{
		addr:          *addr,
		identifier:    *identifier,
		subIdentifier: *subIdentifier,
		verbose:       *verbose,
	}, nil
}

func fetch(ctx context.Context, cfg *config) (*potoken.Result, error) {
	body, err := json.Marshal(map[string]string{
		"identifier":    cfg.identifier,
		"subIdentifier": cfg.subIdentifier,
	})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		cfg.addr+"/v1/token", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := httpx.NewClient().Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		if msg := httperr.FromBody(resp); msg != "" {
			return nil, fmt.Errorf("service returned: %s", msg)
		}
		return nil, fmt.Errorf("got status %d from service", resp.StatusCode)
	}

	var result potoken.Result
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, err
	}
	return &result, nil
}

func run(ctx context.Context, out io.Writer, args []string) error {
	cfg, err := parseFlags(out, args)
	if err != nil {
		return err
	}

	result, err := fetch(ctx, cfg)
	if err != nil {
		color.Red("Failed to fetch token!")
		return err
	}

	color.Green("Token minted for %q, valid until %s.",
		result.Identifier, result.ExpiresAt.Format("2006-01-02 15:04:05 MST"))
	fmt.Fprintln(out, result.PrimaryToken)
	if result.SecondaryToken != "" {
		if cfg.verbose {
			color.Green("Secondary token bound to the content identifier:")
		}
		fmt.Fprintln(out, result.SecondaryToken)
	}
	return nil
}

func main() {
	if err := run(context.Background(), os.Stdout, os.Args[1:]); err != nil {
		log.Fatalf("Failed to fetch token: %v", err)
	}
}
