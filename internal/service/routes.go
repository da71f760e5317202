package service

import (
	"github.com/attestware/potoken/internal/config"
	"github.com/attestware/potoken/internal/service/handle"
	"github.com/attestware/potoken/internal/service/potoken"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// The token API's URL paths.
const (
	PathIndex  = "/"
	PathConfig = "/v1/config"
	PathToken  = "/v1/token"
)

func newRouter(cfg *config.Config, gen *potoken.Generator) *chi.Mux {
	r := chi.NewRouter()
	if cfg.Debug {
		r.Use(middleware.Logger)
	}

	r.Get(PathIndex, handle.Index(cfg))
	r.Get(PathConfig, handle.Config(cfg))
	r.Post(PathToken, handle.Token(gen))
	return r
}
