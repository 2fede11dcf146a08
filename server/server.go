// Package server provides the Elops analysis server: a small HTTP API that
// analyzes submitted grammars and keeps a history of the results in a
// configurable store.
package server

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/dekarrin/elops/internal/render"
	"github.com/dekarrin/elops/server/dao"
)

// PathPrefix is the prefix of all paths in the API.
const PathPrefix = "/api/v1"

// Server serves the analysis API. Create one with New and start it with
// ServeForever.
type Server struct {
	router chi.Router
	store  dao.Store
	opts   render.Options
}

// New creates a Server that records analyses in the given store and renders
// HTML artifacts with the given options.
func New(store dao.Store, opts render.Options) *Server {
	s := &Server{
		store: store,
		opts:  opts,
	}

	r := chi.NewRouter()
	r.Use(middleware.Logger)

	r.Route(PathPrefix+"/analyses", func(r chi.Router) {
		r.Post("/", s.handlePostAnalysis)
		r.Get("/", s.handleGetAllAnalyses)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", s.handleGetAnalysis)
			r.Get("/html", s.handleGetAnalysisHTML)
			r.Delete("/", s.handleDeleteAnalysis)
		})
	})

	s.router = r
	return s
}

// Handler returns the server's root handler, for mounting in tests or an
// enclosing mux.
func (s *Server) Handler() http.Handler {
	return s.router
}

// ServeForever begins listening on the given address and port and blocks
// until the server fails.
func (s *Server) ServeForever(address string, port int) error {
	listenAddr := fmt.Sprintf("%s:%d", address, port)
	return http.ListenAndServe(listenAddr, s.router)
}
