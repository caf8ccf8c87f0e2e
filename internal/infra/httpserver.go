package infra

import (
	"context"
	"net"
	"net/http"
	"time"
)

// Slow-loris guard: request bodies may stream for a while (video uploads),
// but headers must arrive promptly.
const httpReadHeaderTimeout = 5 * time.Second

// HTTPServer owns the listener lifecycle. Shutdown drains in-flight requests
// only; background batch generation runs on detached contexts and is not
// waited for.
type HTTPServer struct {
	srv *http.Server
}

// NewHTTPServer builds the server around the router with the configured
// timeouts.
func NewHTTPServer(cfg *Config, handler http.Handler) *HTTPServer {
	return &HTTPServer{srv: &http.Server{
		Addr:              net.JoinHostPort("", cfg.Port),
		Handler:           handler,
		ReadHeaderTimeout: httpReadHeaderTimeout,
		ReadTimeout:       cfg.HTTPReadTimeout,
		WriteTimeout:      cfg.HTTPWriteTimeout,
		IdleTimeout:       cfg.HTTPIdleTimeout,
	}}
}

// Start blocks serving connections until Shutdown or a listener error.
func (s *HTTPServer) Start() error {
	return s.srv.ListenAndServe()
}

// Shutdown stops accepting connections and waits for in-flight requests
// until ctx expires.
func (s *HTTPServer) Shutdown(ctx context.Context) error {
	return s.srv.Shutdown(ctx)
}
