// internal/rest/server.go
//
// Minimal REST host built on chi.
//
/*
Context
--------
The REST server owns route dispatch and the generic permission check that
every route runs before its handler.  Two request shapes reach a route:

  1. Pretty paths below Prefix, e.g. `/wp-json/doofinder/v1/settings`.
  2. Plain requests carrying `?rest_route=/doofinder/v1/settings`.

The second shape is rewritten onto the first before chi matches, the same
way the alias middleware rewrote friendly paths.  Either way the handler
receives a Match in its request context.

Permission pipeline
-------------------
  • Base decision: Authorizer.Allowed(ctx, route.Capability).
  • Filters: every PermissionFilter, in ascending priority and then
    registration order, may override the running decision.
  • Denied requests get 403 and the route handler never runs.

A route registered WithPermission skips the pipeline entirely.

Notes
-----
  • Registration is a startup activity; the route table is read-only once
    the listener starts.
  • Oxford commas, two spaces after periods.
*/
package rest

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strings"
	"sync"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

const (
	// Prefix is the mount point for pretty REST paths.
	Prefix = "/wp-json"

	// RouteParam is the query parameter carrying the declared route.
	RouteParam = "rest_route"

	// DefaultCapability is checked when a route does not declare one.
	DefaultCapability = "read"
)

// ErrDuplicateRoute is returned when a path is registered twice.
var ErrDuplicateRoute = errors.New("rest: duplicate route")

// Authorizer computes the base permission decision for a capability.
type Authorizer interface {
	Allowed(ctx context.Context, capability string) (bool, error)
}

// PermissionFilter may override the running permission decision.
type PermissionFilter func(decision bool, capability string, r *http.Request, m Match) bool

type filterEntry struct {
	name     string
	priority int
	seq      int
	fn       PermissionFilter
}

// Server dispatches REST routes and runs the permission pipeline.
type Server struct {
	auth   Authorizer
	router chi.Router

	mu      sync.RWMutex
	routes  map[string]*Route
	order   []*Route
	filters []filterEntry
}

// NewServer returns an empty server.  A nil Authorizer denies by default.
func NewServer(auth Authorizer) *Server {
	return &Server{
		auth:   auth,
		router: chi.NewRouter(),
		routes: make(map[string]*Route),
	}
}

/*──────────────────────────── registration ─────────────────────────────────*/

// Register mounts h at Prefix+path for every method in the route options.
func (s *Server) Register(path string, h http.HandlerFunc, opts ...RouteOption) (*Route, error) {
	if !strings.HasPrefix(path, "/") {
		return nil, fmt.Errorf("rest: route %q must start with /", path)
	}
	if h == nil {
		return nil, fmt.Errorf("rest: route %q has nil handler", path)
	}

	rt := &Route{
		Path:       path,
		Methods:    []string{http.MethodGet},
		Capability: DefaultCapability,
		Handler:    h,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(rt)
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, dup := s.routes[path]; dup {
		return nil, fmt.Errorf("%w: %s", ErrDuplicateRoute, path)
	}
	s.routes[path] = rt
	s.order = append(s.order, rt)

	for _, m := range rt.Methods {
		s.router.Method(m, Prefix+path, s.serveRoute(rt))
	}

	zap.L().Debug("rest route registered",
		zap.String("path", path),
		zap.Strings("methods", rt.Methods))
	return rt, nil
}

// AddPermissionFilter installs fn at priority.  Lower priorities run first;
// equal priorities run in registration order.
func (s *Server) AddPermissionFilter(name string, fn PermissionFilter, priority int) {
	if fn == nil {
		panic("rest.AddPermissionFilter: nil filter")
	}
	s.mu.Lock()
	s.filters = append(s.filters, filterEntry{
		name:     name,
		priority: priority,
		seq:      len(s.filters),
		fn:       fn,
	})
	sort.SliceStable(s.filters, func(i, j int) bool {
		if s.filters[i].priority != s.filters[j].priority {
			return s.filters[i].priority < s.filters[j].priority
		}
		return s.filters[i].seq < s.filters[j].seq
	})
	s.mu.Unlock()
}

// Lookup returns the route registered at path, or nil.
func (s *Server) Lookup(path string) *Route {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.routes[path]
}

// Routes returns every route in registration order.
func (s *Server) Routes() []*Route {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*Route, len(s.order))
	copy(out, s.order)
	return out
}

/*──────────────────────────── permissions ──────────────────────────────────*/

// CheckPermissions computes the base decision for capability and runs it
// through every installed filter.
func (s *Server) CheckPermissions(r *http.Request, capability string, m Match) bool {
	decision := false
	if s.auth != nil {
		ok, err := s.auth.Allowed(r.Context(), capability)
		if err != nil {
			zap.L().Error("rest base permission check", zap.Error(err))
		}
		decision = ok && err == nil
	}

	s.mu.RLock()
	filters := s.filters
	s.mu.RUnlock()

	for _, f := range filters {
		decision = f.fn(decision, capability, r, m)
	}
	return decision
}

func (s *Server) permitted(r *http.Request, rt *Route, m Match) bool {
	if rt.permission != nil {
		return rt.permission(r, m)
	}
	return s.CheckPermissions(r, rt.Capability, m)
}

/*──────────────────────────── dispatch ─────────────────────────────────────*/

// ServeHTTP rewrites `?rest_route=` requests onto Prefix and dispatches.
// The caller's request is never modified; the rewrite happens on a copy.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	declared := strings.TrimPrefix(r.URL.Path, Prefix)
	rewrite := !strings.HasPrefix(r.URL.Path, Prefix+"/")
	if rewrite {
		declared = r.URL.Query().Get(RouteParam)
		if declared == "" {
			http.NotFound(w, r)
			return
		}
	}

	ctx := context.WithValue(r.Context(), declaredKey{}, declared)
	// Drop any parent chi route context so our router matches the
	// rewritten path instead of reusing a stale RoutePath.
	ctx = context.WithValue(ctx, chi.RouteCtxKey, nil)
	r2 := r.WithContext(ctx)

	if rewrite {
		u := *r.URL
		u.Path = Prefix + declared
		u.RawPath = ""
		r2.URL = &u
	}
	s.router.ServeHTTP(w, r2)
}

func (s *Server) serveRoute(rt *Route) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		m := Match{Route: rt, Declared: declaredRoute(r)}
		r = r.WithContext(WithMatch(r.Context(), m))

		if !s.permitted(r, rt, m) {
			zap.L().Info("rest permission denied",
				zap.String("route", rt.Path),
				zap.String("declared", m.Declared))
			http.Error(w, http.StatusText(http.StatusForbidden), http.StatusForbidden)
			return
		}
		rt.Handler(w, r)
	}
}

type declaredKey struct{}

// declaredRoute returns the route string recorded by ServeHTTP.  Handlers
// mounted elsewhere fall back to the path below Prefix.
func declaredRoute(r *http.Request) string {
	if v, ok := r.Context().Value(declaredKey{}).(string); ok {
		return v
	}
	return strings.TrimPrefix(r.URL.Path, Prefix)
}
