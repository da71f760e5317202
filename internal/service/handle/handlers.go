// Package handle implements the HTTP handlers of the token API.
package handle

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"

	"github.com/attestware/potoken/internal/config"
	"github.com/attestware/potoken/internal/httperr"
	"github.com/attestware/potoken/internal/service/potoken"
)

// maxRequestLen caps the token request body.  Requests carry two short
// identifiers at most.
const maxRequestLen = 4096

type tokenRequest struct {
	Identifier    string `json:"identifier"`
	SubIdentifier string `json:"subIdentifier"`
}

// Index informs the visitor what this host does.  This is useful for
// testing.
func Index(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		page := "This host issues proof-of-origin tokens."
		if cfg.Testing {
			page += "\nThe service runs in testing mode; tokens are not attested."
		}
		fmt.Fprintln(w, page)
	}
}

// Config returns the service's configuration.  Nothing in it is secret.
func Config(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		encode(w, http.StatusOK, cfg)
	}
}

// Token mints a proof-of-origin token for the identifiers in the request
// body.  Any pipeline failure surfaces as a single opaque 500.
func Token(gen *potoken.Generator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		body, err := io.ReadAll(io.LimitReader(r.Body, maxRequestLen))
		if err != nil {
			encode(w, http.StatusInternalServerError, httperr.New(err.Error()))
			return
		}

		var req tokenRequest
		if len(body) > 0 {
			if err := json.Unmarshal(body, &req); err != nil {
				encode(w, http.StatusBadRequest, httperr.New(err.Error()))
				return
			}
		}

		result, err := gen.Generate(r.Context(), req.Identifier, req.SubIdentifier)
		if err != nil {
			log.Print(err)
			encode(w, http.StatusInternalServerError, httperr.New(err.Error()))
			return
		}
		encode(w, http.StatusOK, result)
	}
}
