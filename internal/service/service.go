// Package service assembles the token pipeline and serves its HTTP API.
package service

import (
	"context"
	"log"
	"net/http"
	"sync"

	"github.com/attestware/potoken/internal/config"
	"github.com/attestware/potoken/internal/sandbox"
	"github.com/attestware/potoken/internal/service/potoken"
	"github.com/attestware/potoken/internal/session"
)

// Run wires the generator from the given collaborators and serves the
// token API until the context is canceled.
func Run(
	ctx context.Context,
	cfg *config.Config,
	fetcher potoken.ChallengeFetcher,
	engine sandbox.Engine,
	exchanger potoken.IntegrityExchanger,
	sessions session.Provider,
) {
	gen := potoken.NewGenerator(fetcher, engine, exchanger, sessions)
	srv := &http.Server{
		Addr:    cfg.Addr,
		Handler: newRouter(cfg, gen),
	}

	var wg sync.WaitGroup
	defer wg.Wait()

	go func() {
		log.Printf("Starting web server: %v", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Error listening and serving: %v", err)
		}
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		<-ctx.Done()
		log.Printf("Got signal, shutting down: %s", srv.Addr)
		if err := srv.Shutdown(context.Background()); err != nil {
			log.Printf("Error shutting down server: %v", err)
		}
	}()
}
