// Package server exposes viewer sessions over HTTP.
//
// Clients upload a JSON document once and then page through its tree view,
// search, toggle rows and fetch graph layouts by document id. Documents live
// in memory only; the least recently used one is dropped when the store is
// full.
package server

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"golang.org/x/time/rate"

	"github.com/matzehuels/jsonscope/pkg/cache"
	"github.com/matzehuels/jsonscope/pkg/viewer"
)

// Options configures a Server.
type Options struct {
	Addr            string
	AllowAllOrigins bool
	AllowedOrigins  []string // empty means local origins only
	MaxDocuments    int
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	RateLimit       float64 // requests per second across all clients; 0 disables
	RateBurst       int
	Viewer          viewer.Options
	Cache           cache.Cache
	Logger          *log.Logger
}

var defaultOrigins = []string{"http://localhost:*", "http://127.0.0.1:*"}

// Server is the jsonscope HTTP API.
type Server struct {
	opts    Options
	log     *log.Logger
	keyer   cache.Keyer
	store   *store
	limiter *rate.Limiter
	router  chi.Router

	mu         sync.Mutex
	httpServer *http.Server
}

// New creates a server. It does not start listening.
func New(opts Options) *Server {
	if opts.MaxDocuments <= 0 {
		opts.MaxDocuments = 64
	}
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}
	if opts.Cache == nil {
		opts.Cache = cache.NewNullCache()
	}
	opts.Viewer.Logger = opts.Logger
	s := &Server{
		opts:    opts,
		log:     opts.Logger,
		keyer:   cache.NewDefaultKeyer(),
		store:   newStore(opts.MaxDocuments),
		limiter: newLimiter(opts.RateLimit, opts.RateBurst),
	}
	s.router = s.buildRouter()
	return s
}

func newLimiter(rps float64, burst int) *rate.Limiter {
	if rps <= 0 {
		return rate.NewLimiter(rate.Inf, 1)
	}
	if burst < 1 {
		burst = 1
	}
	return rate.NewLimiter(rate.Limit(rps), burst)
}

// Handler returns the root HTTP handler.
func (s *Server) Handler() http.Handler { return s.router }

func (s *Server) buildRouter() chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.requestLogger)
	r.Use(middleware.Recoverer)

	corsOpts := cors.Options{
		AllowedOrigins: defaultOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}
	if len(s.opts.AllowedOrigins) > 0 {
		corsOpts.AllowedOrigins = s.opts.AllowedOrigins
	}
	if s.opts.AllowAllOrigins {
		corsOpts.AllowedOrigins = []string{"*"}
	}
	r.Use(cors.Handler(corsOpts))
	r.Use(s.rateLimit)

	r.Get("/healthz", s.handleHealth)

	r.Route("/documents", func(r chi.Router) {
		r.Post("/", s.handleCreate)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", s.withSession(s.handleSummary))
			r.Delete("/", s.handleDelete)

			r.Get("/rows", s.withSession(s.handleRows))
			r.Put("/search", s.withSession(s.handleSearch))
			r.Post("/toggle", s.withSession(s.handleToggle))
			r.Post("/reveal", s.withSession(s.handleReveal))
			r.Post("/expand-all", s.withSession(s.handleExpandAll))
			r.Post("/collapse-all", s.withSession(s.handleCollapseAll))
			r.Get("/query", s.withSession(s.handleQuery))
			r.Get("/skeleton", s.withSession(s.handleSkeleton))

			r.Get("/graph", s.withSession(s.handleGraph))
			r.Get("/graph.{format}", s.withSession(s.handleGraphRender))
			r.Post("/graph/toggle", s.withSession(s.handleGraphToggle))
			r.Post("/graph/expand-all", s.withSession(s.handleGraphExpandAll))
			r.Post("/graph/collapse-all", s.withSession(s.handleGraphCollapseAll))
		})
	})
	return r
}

// Start listens on the configured address until Shutdown.
func (s *Server) Start() error {
	srv := &http.Server{
		Addr:              s.opts.Addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       s.opts.ReadTimeout,
		WriteTimeout:      s.opts.WriteTimeout,
		IdleTimeout:       120 * time.Second,
	}
	s.mu.Lock()
	s.httpServer = srv
	s.mu.Unlock()

	s.log.Info("jsonscope server listening", "addr", s.opts.Addr)
	if err := srv.ListenAndServe(); err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.mu.Lock()
	srv := s.httpServer
	s.mu.Unlock()
	if srv == nil {
		return nil
	}
	return srv.Shutdown(ctx)
}
