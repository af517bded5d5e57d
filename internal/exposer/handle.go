// Package exposer manages the shared exposition handle: one live
// network binding plus one metric registry, published by name so that
// independent operations can find and bind against the same backend.
package exposer

import (
	"context"
	"crypto/rand"
	"errors"
	"net"
	"net/http"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/yndnr/metermesh-go/internal/core/domain"
	"github.com/yndnr/metermesh-go/internal/metric"
	"github.com/yndnr/metermesh-go/internal/server/httpserver"
	"github.com/yndnr/metermesh-go/internal/telemetry/logger"
)

const (
	// DefaultEndpoint is the default exposition endpoint.
	DefaultEndpoint = "127.0.0.1:9090"

	// MetricsPath is the exposition path served on the endpoint.
	MetricsPath = "/metrics"

	// shutdownTimeout bounds the HTTP drain on Close.
	shutdownTimeout = 5 * time.Second
)

// Handle bundles a live exposition endpoint with its registry.
type Handle struct {
	id       string
	endpoint string
	addr     string

	registry *metric.Registry
	server   *httpserver.Server
	listener net.Listener

	// Publication slot, set by Hub.Publish.
	mu   sync.Mutex
	hub  *Hub
	name string

	closed    atomic.Bool
	closeOnce sync.Once

	log logger.Logger
}

// Option configures a Handle at open time.
type Option func(*options)

type options struct {
	log       logger.Logger
	rateLimit int
}

// WithLogger sets the logger used for the handle and its scrape path.
func WithLogger(l logger.Logger) Option {
	return func(o *options) {
		o.log = l
	}
}

// WithScrapeRateLimit enables per-IP rate limiting on the scrape path
// at the given requests per second. Zero disables limiting.
func WithScrapeRateLimit(requestsPerSecond int) Option {
	return func(o *options) {
		o.rateLimit = requestsPerSecond
	}
}

// Open binds a pull-style exposition endpoint and allocates a fresh
// empty registry for it.
//
// The listener is bound synchronously: a bind failure is returned here
// and aborts setup of whatever depends on the handle. Metric mutation
// and exposition serving then proceed on independent paths.
func Open(endpoint string, opts ...Option) (*Handle, error) {
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}

	o := &options{log: logger.Default()}
	for _, opt := range opts {
		opt(o)
	}

	ln, err := net.Listen("tcp", endpoint)
	if err != nil {
		return nil, domain.ErrEndpointBind.WithDetails(endpoint).Wrap(err)
	}

	h := &Handle{
		id:       newHandleID(),
		endpoint: endpoint,
		addr:     ln.Addr().String(),
		registry: metric.NewRegistry(),
		listener: ln,
	}
	h.log = o.log.With("exposer_id", h.id, "endpoint", h.addr)

	// InstrumentMetricHandler adds a scrape counter to the registry it
	// serves, so every exposition carries at least one family.
	mux := http.NewServeMux()
	mux.Handle(MetricsPath, promhttp.InstrumentMetricHandler(
		h.registry.Registerer(),
		promhttp.HandlerFor(h.registry.Gatherer(), promhttp.HandlerOpts{
			ErrorHandling: promhttp.ContinueOnError,
		}),
	))

	middlewares := []httpserver.Middleware{
		httpserver.Recover(h.log),
		httpserver.ScrapeID(),
	}
	if o.rateLimit > 0 {
		middlewares = append(middlewares, httpserver.RateLimit(o.rateLimit))
	}
	middlewares = append(middlewares, httpserver.Logging(h.log))

	h.server = httpserver.New(endpoint, httpserver.Chain(mux, middlewares...))

	go func() {
		if err := h.server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			h.log.Error("exposition server stopped", "error", err)
		}
	}()

	h.log.Info("exposer opened")
	return h, nil
}

// ID returns the unique identity of this handle.
func (h *Handle) ID() string { return h.id }

// Addr returns the bound listen address. It may differ from the
// requested endpoint when a port of 0 was requested.
func (h *Handle) Addr() string { return h.addr }

// Registry returns the registry owned by this handle.
func (h *Handle) Registry() *metric.Registry { return h.registry }

// Closed reports whether the handle has been closed.
func (h *Handle) Closed() bool { return h.closed.Load() }

// Close unregisters the endpoint binding, stops serving the registry
// and clears the published name slot. Closing twice is a no-op.
func (h *Handle) Close() error {
	var err error
	h.closeOnce.Do(func() {
		h.closed.Store(true)

		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		err = h.server.Shutdown(ctx)

		h.mu.Lock()
		hub, name := h.hub, h.name
		h.hub, h.name = nil, ""
		h.mu.Unlock()

		if hub != nil {
			hub.release(name, h)
		}

		h.log.Info("exposer closed")
	})
	return err
}

// attach records the publication slot so Close can clear it.
func (h *Handle) attach(hub *Hub, name string) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.hub != nil {
		return domain.ErrPublishConflict.WithDetails("handle already published as " + h.name)
	}
	h.hub, h.name = hub, name
	return nil
}

// newHandleID generates a ULID-based handle identity.
func newHandleID() string {
	id, err := ulid.New(ulid.Timestamp(time.Now()), rand.Reader)
	if err != nil {
		return "expo-unknown"
	}
	return "expo-" + strings.ToLower(id.String())
}
