// internal/rest/route.go
//
// Route records, route options, and ownership claims.
//
// Context
// -------
// Every route mounted on the REST server is backed by one *Route.  The
// record carries the declared path, the accepted methods, an optional
// per-route permission callback, and a set of ownership claims.  A claim is
// an opaque comparable token attached by whoever registered the route, so a
// permission filter can later ask "is this route mine?" without comparing
// path strings.
//
// Notes
// -----
//   - Routes are created only through Server.Register.
//   - Claims are attached during startup and read on every request.
//   - Oxford commas, two spaces after periods.
package rest

import (
	"context"
	"net/http"
	"sync"
)

// PermissionFunc decides whether a matched request may reach its handler.
type PermissionFunc func(r *http.Request, m Match) bool

// Route is one registered REST route.
type Route struct {
	Path       string
	Methods    []string
	Capability string
	Handler    http.HandlerFunc

	permission PermissionFunc

	mu     sync.RWMutex
	claims map[any]struct{}
}

// Claim attaches an ownership token.  owner must be comparable; a pointer
// to the registering object is the usual choice.
func (rt *Route) Claim(owner any) {
	rt.mu.Lock()
	if rt.claims == nil {
		rt.claims = make(map[any]struct{}, 1)
	}
	rt.claims[owner] = struct{}{}
	rt.mu.Unlock()
}

// Claimed reports whether owner previously claimed rt.
func (rt *Route) Claimed(owner any) bool {
	if rt == nil || owner == nil {
		return false
	}
	rt.mu.RLock()
	defer rt.mu.RUnlock()
	_, ok := rt.claims[owner]
	return ok
}

// RouteOption customises a route at registration time.
type RouteOption func(*Route)

// Methods overrides the accepted HTTP methods (default GET).
func Methods(methods ...string) RouteOption {
	return func(rt *Route) {
		if len(methods) > 0 {
			rt.Methods = append([]string(nil), methods...)
		}
	}
}

// WithPermission replaces the server-wide permission check for this route.
func WithPermission(fn PermissionFunc) RouteOption {
	return func(rt *Route) { rt.permission = fn }
}

// WithCapability sets the capability passed to the server-wide check.
func WithCapability(capability string) RouteOption {
	return func(rt *Route) { rt.Capability = capability }
}

// Public lets every request through the permission stage.
func Public() RouteOption {
	return WithPermission(func(*http.Request, Match) bool { return true })
}

//
// Match
//

// Match describes how an inbound request resolved to a route.
//
// Declared is the route string the client asked for, either the
// `rest_route` query value or the path below Prefix.
type Match struct {
	Route    *Route
	Declared string
}

type matchKey struct{}

// WithMatch stores m in ctx.
func WithMatch(ctx context.Context, m Match) context.Context {
	return context.WithValue(ctx, matchKey{}, m)
}

// MatchFromContext returns the Match attached by the server, if any.
func MatchFromContext(ctx context.Context) (Match, bool) {
	m, ok := ctx.Value(matchKey{}).(Match)
	return m, ok
}
