// Package gateway serves the console's remote commands over HTTP. Every
// endpoint is stateless: it validates the JSON body, makes one upstream
// call or one local generation, and answers with a single JSON envelope.
package gateway

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/quocvuong92/operator-console/internal/api"
	"github.com/quocvuong92/operator-console/internal/constants"
	"github.com/quocvuong92/operator-console/internal/fabricate"
	"github.com/quocvuong92/operator-console/internal/logging"
	"github.com/quocvuong92/operator-console/internal/protocol"
	"github.com/quocvuong92/operator-console/internal/webpage"
)

// Options configures a Server
type Options struct {
	// Completer answers ask, find_exit and generate_code
	Completer api.Completer
	// Fetcher downloads pages for find_exit; nil uses the default fetcher
	Fetcher *webpage.Fetcher
	// Registry backs fabricate_data; nil creates a clock-seeded registry
	Registry *fabricate.Registry
	// Logger receives access logs and upstream failures; nil uses the default
	Logger *logging.Logger
	// PublicDir holds static assets; when missing the embedded page is served
	PublicDir string
}

// Server is the command gateway
type Server struct {
	completer api.Completer
	fetcher   *webpage.Fetcher
	registry  *fabricate.Registry
	logger    *logging.Logger
	publicDir string
}

// New creates a Server
func New(opts Options) *Server {
	s := &Server{
		completer: opts.Completer,
		fetcher:   opts.Fetcher,
		registry:  opts.Registry,
		logger:    opts.Logger,
		publicDir: opts.PublicDir,
	}
	if s.fetcher == nil {
		s.fetcher = webpage.NewFetcher(nil)
	}
	if s.registry == nil {
		s.registry = fabricate.NewRegistry(0)
	}
	if s.logger == nil {
		s.logger = logging.DefaultLogger
	}
	return s
}

// Handler returns the routed handler wrapped in the access-log middleware
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST "+protocol.PathAsk, s.handleAsk)
	mux.HandleFunc("POST "+protocol.PathFindExit, s.handleFindExit)
	mux.HandleFunc("POST "+protocol.PathGenerateCode, s.handleGenerateCode)
	mux.HandleFunc("POST "+protocol.PathFabricateData, s.handleFabricateData)
	mux.HandleFunc("GET "+protocol.PathHealth, s.handleHealth)
	mux.Handle("/", s.staticHandler())
	return logging.Middleware(s.logger, mux)
}

// Serve answers requests on ln until ctx is done, then shuts down
// gracefully. It returns nil after a clean shutdown.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: constants.DefaultReadHeaderTimeout,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), constants.DefaultShutdownTimeout)
		defer cancel()
		start := time.Now()
		err := srv.Shutdown(shutdownCtx)
		s.logger.Info("Gateway stopped", logging.Fields{"shutdown_ms": time.Since(start).Milliseconds()})
		return err
	})
	return g.Wait()
}
