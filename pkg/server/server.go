package server

import (
	"context"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/treedump/pkg/errors"
	"github.com/matzehuels/treedump/pkg/pipeline"
	"github.com/matzehuels/treedump/pkg/script"
	"github.com/matzehuels/treedump/pkg/toolkit"
)

// DefaultAddr is the listen address used when none is configured.
const DefaultAddr = "127.0.0.1:7411"

const (
	shutdownTimeout = 5 * time.Second
	maxEvalBody     = 1 << 20
)

// Options configures a Server.
type Options struct {
	Addr string
	// Prefix of synthetic ids in every dump.
	Prefix string
	// Runner renders dumps. Defaults to an uncached runner.
	Runner *pipeline.Runner
	Logger *log.Logger
}

// Server serves one live tree.
type Server struct {
	mu     sync.Mutex // guards root and every traversal or script run
	root   *toolkit.Widget
	script *script.Interpreter

	addr   string
	prefix string
	runner *pipeline.Runner
	hub    *hub
	logger *log.Logger
}

// New creates a server for root.
func New(root *toolkit.Widget, opts Options) (*Server, error) {
	logger := opts.Logger
	if logger == nil {
		logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	runner := opts.Runner
	if runner == nil {
		runner = pipeline.NewRunner(nil, nil, logger)
	}
	addr := opts.Addr
	if addr == "" {
		addr = DefaultAddr
	}
	in, err := script.New(script.Options{Root: root, Prefix: opts.Prefix, Logger: logger})
	if err != nil {
		return nil, err
	}
	return &Server{
		root:   root,
		script: in,
		addr:   addr,
		prefix: opts.Prefix,
		runner: runner,
		hub:    newHub(logger),
		logger: logger,
	}, nil
}

// Handler returns the router.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.observe)

	r.Get("/healthz", s.handleHealth)
	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/dump", s.handleDump)
		r.Post("/eval", s.handleEval)
		r.Get("/watch", s.handleWatch)
	})
	return r
}

// SetRoot swaps the live tree and notifies watchers.
func (s *Server) SetRoot(ctx context.Context, root *toolkit.Widget) {
	s.mu.Lock()
	s.root = root
	s.script.SetRoot(root)
	s.mu.Unlock()
	s.broadcast(ctx)
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("inspector listening", "addr", s.addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && err != http.ErrServerClosed {
			return errors.Wrap(errors.ErrCodeNetwork, err, "listen %s", s.addr)
		}
		return nil
	case <-ctx.Done():
	}

	s.hub.closeAll()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return errors.Wrap(errors.ErrCodeNetwork, err, "shutdown")
	}
	s.logger.Info("inspector stopped")
	return nil
}

// render dumps the live tree under the tree lock.
func (s *Server) render(ctx context.Context, opts pipeline.Options) (map[string][]byte, int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if opts.Prefix == "" {
		opts.Prefix = s.prefix
	}
	doc, artifacts, err := s.runner.Render(ctx, s.root, opts)
	if err != nil {
		return nil, 0, err
	}
	return artifacts, doc.Stats.Widgets, nil
}
