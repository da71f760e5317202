package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"

	"github.com/attestware/potoken/internal/attest"
	"github.com/attestware/potoken/internal/config"
	"github.com/attestware/potoken/internal/errs"
	"github.com/attestware/potoken/internal/httpx"
	"github.com/attestware/potoken/internal/sandbox"
	"github.com/attestware/potoken/internal/sandbox/noop"
	"github.com/attestware/potoken/internal/service"
	"github.com/attestware/potoken/internal/service/potoken"
	"github.com/attestware/potoken/internal/session"
)

const defaultAddr = ":8979"

func parseFlags(out io.Writer, args []string) (*config.Config, error) {
	fs := flag.NewFlagSet("potokend", flag.ContinueOnError)
	fs.SetOutput(out)

	addr := fs.String(
		"addr",
		defaultAddr,
		"address to listen on",
	)
	attestationHost := fs.String(
		"attestation-host",
		"",
		"base URL of the attestation service",
	)
	debug := fs.Bool(
		"debug",
		false,
		"enable request logging",
	)
	testing := fs.Bool(
		"insecure",
		false,
		"enable testing by using the local noop attestation stack",
	)

	if err := fs.Parse(args); err != nil {
		fs.PrintDefaults()
		return nil, fmt.Errorf("failed to parse flags: %w", err)
	}

	return &config.Config{
		Addr:            *addr,
		AttestationHost: *attestationHost,
		Debug:           *debug,
		Testing:         *testing,
	}, nil
}

func run(ctx context.Context, out io.Writer, args []string) (err error) {
	defer errs.Wrap(&err, "failed to run service")

	ctx, cancel := signal.NotifyContext(ctx, os.Interrupt)
	defer cancel()

	// Set up logging.
	log.SetFlags(log.LstdFlags | log.Lshortfile | log.LUTC)
	log.SetOutput(out)

	// Parse command line flags.
	cfg, err := parseFlags(out, args)
	if err != nil {
		return err
	}

	// Validate the configuration.
	if problems := cfg.Validate(); len(problems) > 0 {
		err := errors.New("invalid configuration")
		for field, problem := range problems {
			err = errors.Join(err, fmt.Errorf("field %q: %v", field, problem))
		}
		return err
	}

	// Initialize the pipeline collaborators and start the service.  The
	// noop stack replaces the remote attestation service in testing mode.
	var (
		fetcher   potoken.ChallengeFetcher
		exchanger potoken.IntegrityExchanger
		engine    sandbox.Engine
	)
	if cfg.Testing {
		stub := noop.NewAttestation()
		fetcher, exchanger, engine = stub, stub, noop.NewEngine()
	} else {
		client := httpx.NewClient()
		fetcher = attest.NewClient(cfg.AttestationHost, client)
		exchanger = attest.NewExchanger(cfg.AttestationHost, client)
		engine = noop.NewEngine() // TODO: wire the embedded script engine once it lands.
	}
	service.Run(ctx, cfg, fetcher, engine, exchanger, session.NewEphemeralProvider())
	return nil
}

func main() {
	if err := run(context.Background(), os.Stdout, os.Args[1:]); err != nil {
		log.Fatalf("Failed to run potokend: %v", err)
	}
}
