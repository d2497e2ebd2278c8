// Package server assembles the compile-as-a-service HTTP API: chi
// routing, JWT auth middleware, and the persistence backend an
// operator selects via config.
package server

import (
	"context"
	"net/http"
	"time"

	"github.com/dekarrin/slrc/server/api"
	"github.com/dekarrin/slrc/server/csvc"
	"github.com/dekarrin/slrc/server/dao"
	"github.com/dekarrin/slrc/server/middle"
	"github.com/go-chi/chi/v5"
)

// Server is a compile-as-a-service HTTP server bound to a persistence
// store. The zero value is not ready to use; build one with New.
type Server struct {
	db         dao.Store
	httpServer *http.Server
}

// New builds a Server listening on addr, backed by store, signing and
// validating JWTs with secret, and delaying unauthorized/forbidden/
// errored responses by unauthDelay.
func New(addr string, store dao.Store, secret []byte, unauthDelay time.Duration) *Server {
	a := api.API{
		Backend:     csvc.Service{DB: store},
		Secret:      secret,
		UnauthDelay: unauthDelay,
	}

	r := chi.NewRouter()
	r.Use(middle.DontPanic())

	r.Route(api.PathPrefix, func(r chi.Router) {
		r.Post("/clients", a.HTTPRegisterClient())
		r.Post("/login", a.HTTPCreateLogin())

		r.Group(func(r chi.Router) {
			r.Use(middle.RequireAuth(store.Clients(), secret, unauthDelay))
			r.Post("/artifacts", a.HTTPCompile())
			r.Get("/artifacts", a.HTTPListArtifacts())
			r.Get("/artifacts/{id}", a.HTTPGetArtifact())
			r.Get("/artifacts/{id}/table", a.HTTPGetArtifactTable())
		})
	})

	return &Server{
		db: store,
		httpServer: &http.Server{
			Addr:    addr,
			Handler: r,
		},
	}
}

// ListenAndServe starts the server and blocks until it stops due to an
// error or a call to Shutdown.
func (s *Server) ListenAndServe() error {
	err := s.httpServer.ListenAndServe()
	if err == http.ErrServerClosed {
		return nil
	}
	return err
}

// Shutdown gracefully stops the server and closes its persistence
// store.
func (s *Server) Shutdown(ctx context.Context) error {
	if err := s.httpServer.Shutdown(ctx); err != nil {
		return err
	}
	return s.db.Close()
}
