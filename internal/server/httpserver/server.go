package httpserver

import (
	"context"
	"net"
	"net/http"
	"time"
)

// Server represents the HTTP server.
type Server struct {
	httpServer *http.Server
	handler    http.Handler
}

// New creates a new HTTP server for handler wrapped in the standard
// middleware chain.
func New(handler http.Handler, cfg *MiddlewareConfig) *Server {
	wrapped := Wrap(handler, cfg)
	return &Server{
		httpServer: &http.Server{
			Handler:           wrapped,
			ReadHeaderTimeout: 10 * time.Second,
		},
		handler: wrapped,
	}
}

// Handler returns the wrapped handler.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Serve accepts connections on ln until Shutdown.
func (s *Server) Serve(ln net.Listener) error {
	return s.httpServer.Serve(ln)
}

// ServeTLS accepts TLS connections on ln until Shutdown.
func (s *Server) ServeTLS(ln net.Listener, certFile, keyFile string) error {
	return s.httpServer.ServeTLS(ln, certFile, keyFile)
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
