// Package server provides the local development server: JSON views of the
// discovered patterns, the generated global stylesheet, and a WebSocket feed
// of registry changes so a connected preview can refresh itself.
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/spacedmonkey/blockpress/internal/logging"
	"github.com/spacedmonkey/blockpress/internal/registry"
	"github.com/spacedmonkey/blockpress/internal/styles"
)

// DevServer serves the development endpoints for one theme.
type DevServer struct {
	host           string
	port           int
	allowedOrigins []string
	registry       *registry.PatternRegistry
	resolver       *styles.Resolver
	logger         logging.Logger
	httpServer     *http.Server
}

// New creates a development server.
func New(host string, port int, allowedOrigins []string, reg *registry.PatternRegistry, resolver *styles.Resolver, logger logging.Logger) *DevServer {
	if logger == nil {
		logger = logging.Discard()
	}
	return &DevServer{
		host:           host,
		port:           port,
		allowedOrigins: allowedOrigins,
		registry:       reg,
		resolver:       resolver,
		logger:         logger.WithComponent("server"),
	}
}

// Addr returns the listen address.
func (s *DevServer) Addr() string {
	return net.JoinHostPort(s.host, fmt.Sprintf("%d", s.port))
}

// Start runs the server until the context is cancelled.
func (s *DevServer) Start(ctx context.Context) error {
	mux := http.NewServeMux()
	mux.HandleFunc("/patterns", s.handlePatterns)
	mux.HandleFunc("/stylesheet", s.handleStylesheet)
	mux.HandleFunc("/svg-filters", s.handleSVGFilters)
	mux.HandleFunc("/ws", s.handleWebSocket)

	s.httpServer = &http.Server{
		Addr:              s.Addr(),
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- s.httpServer.ListenAndServe()
	}()

	s.logger.Info(ctx, "development server listening", "addr", s.Addr())

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return s.httpServer.Shutdown(shutdownCtx)
	case err := <-errCh:
		if err == http.ErrServerClosed {
			return nil
		}
		return err
	}
}

func (s *DevServer) handlePatterns(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(s.registry.GetAll()); err != nil {
		s.logger.Error(r.Context(), err, "encoding pattern list")
	}
}

func (s *DevServer) handleStylesheet(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	w.Header().Set("Content-Type", "text/css; charset=utf-8")
	fmt.Fprint(w, s.resolver.GetStylesheet())
}

func (s *DevServer) handleSVGFilters(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	w.Header().Set("Content-Type", "image/svg+xml")
	fmt.Fprint(w, s.resolver.GetStylesSVGFilters())
}
