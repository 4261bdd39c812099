// internal/endpoint/engine.go
//
// Discovery and registration engine.
//
/*
Context
--------
`Engine.Initialize` runs exactly once per process, before the listener
starts.  For every catalogued handler, in registration order, it:

  1. Skips the handler if its identifier is disabled in configuration.
  2. Skips it silently (DEBUG log) if it does not implement Initializer.
  3. Records "/" + Context() + Endpoint() in the Routes registry.
  4. Calls Initialize with a Host bound to that route.  Any REST route the
     handler mounts at exactly that path is claimed by the registry, which
     is what the permission bypass later checks.

Failure policy
--------------
An Initialize error aborts the pass.  No retry, no partial recovery; the
error goes back to main, which exits.

Repeat calls
------------
The pass is guarded by sync.Once.  A second call logs a warning and returns
the first result without touching any handler.
*/
package endpoint

import (
	"context"
	"fmt"
	"net/http"
	"sync"

	"go.uber.org/zap"

	"github.com/yanizio/doofinder-wp/internal/metrics"
	"github.com/yanizio/doofinder-wp/internal/options"
	"github.com/yanizio/doofinder-wp/internal/rest"
	"github.com/yanizio/doofinder-wp/internal/secret"
)

// Engine turns a Catalog into mounted REST routes plus a Routes registry.
type Engine struct {
	catalog  *Catalog
	server   *rest.Server
	store    options.Store
	guard    *secret.Gate
	disabled map[string]struct{}
	log      *zap.SugaredLogger

	once   sync.Once
	routes *Routes
	err    error
}

// EngineOption customises an Engine.
type EngineOption func(*Engine)

// WithOptions exposes store to handlers through Host.Options.
func WithOptions(store options.Store) EngineOption {
	return func(e *Engine) { e.store = store }
}

// WithGuard exposes the shared-secret gate through Host.Guard.
func WithGuard(g *secret.Gate) EngineOption {
	return func(e *Engine) { e.guard = g }
}

// WithDisabled skips the listed handler identifiers (CanonicalName form).
func WithDisabled(ids ...string) EngineOption {
	return func(e *Engine) {
		for _, id := range ids {
			e.disabled[id] = struct{}{}
		}
	}
}

// WithLogger sets the engine logger (default zap.S()).
func WithLogger(l *zap.SugaredLogger) EngineOption {
	return func(e *Engine) {
		if l != nil {
			e.log = l
		}
	}
}

// NewEngine binds a catalog to the REST server it will populate.
func NewEngine(c *Catalog, srv *rest.Server, opts ...EngineOption) *Engine {
	if c == nil || srv == nil {
		panic("endpoint.NewEngine: nil catalog or server")
	}
	e := &Engine{
		catalog:  c,
		server:   srv,
		disabled: make(map[string]struct{}),
		log:      zap.S(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(e)
		}
	}
	return e
}

// Initialize runs the discovery pass once and returns the registry.
func (e *Engine) Initialize(ctx context.Context) (*Routes, error) {
	ran := false
	e.once.Do(func() {
		ran = true
		e.routes, e.err = e.discover(ctx)
	})
	if !ran {
		e.log.Warnw("endpoint discovery already ran, ignoring repeat call",
			"routes", e.routes.Len())
	}
	return e.routes, e.err
}

func (e *Engine) discover(ctx context.Context) (*Routes, error) {
	routes := newRoutes()

	for _, d := range e.catalog.All() {
		if err := ctx.Err(); err != nil {
			return routes, err
		}

		if _, off := e.disabled[d.ID]; off {
			e.log.Infow("endpoint disabled by config", "handler", d.ID)
			continue
		}

		ini, ok := d.Handler.(Initializer)
		if !ok {
			e.log.Debugw("endpoint skipped, no Initialize", "handler", d.ID, "file", d.File)
			continue
		}

		path := "/" + d.Handler.Context() + d.Handler.Endpoint()
		routes.add(path, d.ID)

		h := &host{engine: e, routes: routes, route: path}
		if err := ini.Initialize(h); err != nil {
			metrics.EndpointInitTotal.WithLabelValues(d.ID, "error").Inc()
			e.log.Errorw("endpoint initialize failed", "handler", d.ID, "route", path, "err", err)
			return routes, fmt.Errorf("endpoint %s: initialize: %w", d.ID, err)
		}
		metrics.EndpointInitTotal.WithLabelValues(d.ID, "ok").Inc()
		e.log.Infow("endpoint registered", "handler", d.ID, "route", path)
	}

	metrics.EndpointRoutesRegistered.Set(float64(routes.Len()))
	e.log.Infow("endpoint discovery complete",
		"catalogued", e.catalog.Len(),
		"routes", routes.Len())
	return routes, nil
}

//
// Host bound to one handler
//

type host struct {
	engine *Engine
	routes *Routes
	route  string
}

func (h *host) Handle(route string, fn http.HandlerFunc, opts ...rest.RouteOption) error {
	rt, err := h.engine.server.Register(route, fn, opts...)
	if err != nil {
		return err
	}
	if route == h.route {
		rt.Claim(h.routes)
	}
	return nil
}

func (h *host) Route() string          { return h.route }
func (h *host) Options() options.Store { return h.engine.store }
func (h *host) Guard() *secret.Gate    { return h.engine.guard }
func (h *host) Registry() *Routes      { return h.routes }
