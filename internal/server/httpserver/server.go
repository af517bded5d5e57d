// Package httpserver provides the HTTP server for the MeterMesh
// exposition endpoint.
//
// It uses the Go standard library net/http, serving the pull-based
// exposition format to scraping collectors.
package httpserver

import (
	"context"
	"net"
	"net/http"
)

// Server represents the HTTP server.
type Server struct {
	httpServer *http.Server
	handler    http.Handler
}

// New creates a new HTTP server.
func New(addr string, handler http.Handler) *Server {
	return &Server{
		httpServer: &http.Server{
			Addr:    addr,
			Handler: handler,
		},
		handler: handler,
	}
}

// Serve accepts connections on a pre-bound listener. The exposer binds
// the listener itself so that bind failures surface at open time.
func (s *Server) Serve(ln net.Listener) error {
	return s.httpServer.Serve(ln)
}

// ListenAndServe binds and starts the HTTP server.
func (s *Server) ListenAndServe() error {
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
