// internal/gate/bypass.go
//
// Permission bypass for registry-owned routes.
//
// Context
// -------
// The REST server denies a request when the authorizer says the caller
// lacks the route's capability.  Doofinder endpoints are called by the
// Doofinder backend, which has no user session, so their own handlers (or
// the shared-secret gate) decide access instead.  Bypass is the permission
// filter that flips a denial to an allow when both hold:
//
//  1. the matched route was claimed by the endpoint registry, and
//  2. the declared route string is one the registry recorded.
//
// Every other request keeps the decision it arrived with.
package gate

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/yanizio/doofinder-wp/internal/endpoint"
	"github.com/yanizio/doofinder-wp/internal/metrics"
	"github.com/yanizio/doofinder-wp/internal/rest"
)

const (
	// FilterName identifies the filter on the REST server.
	FilterName = "doofinder_endpoints"

	// Priority is the filter's slot in the permission pipeline.
	Priority = 10
)

// Bypass grants access to routes owned by one endpoint registry.
type Bypass struct {
	routes *endpoint.Routes
}

// NewBypass binds the filter to routes.  A nil registry never bypasses.
func NewBypass(routes *endpoint.Routes) *Bypass {
	return &Bypass{routes: routes}
}

// Filter implements rest.PermissionFilter.
func (b *Bypass) Filter(decision bool, _ string, r *http.Request, m rest.Match) bool {
	if decision {
		return true
	}
	if !b.routes.Owns(m.Route) || !b.routes.Contains(m.Declared) {
		return decision
	}
	metrics.PermissionBypassTotal.Inc()
	zap.L().Debug("permission bypass",
		zap.String("declared", m.Declared),
		zap.String("method", r.Method))
	return true
}

// Install registers the filter on s at Priority.
func (b *Bypass) Install(s *rest.Server) {
	s.AddPermissionFilter(FilterName, b.Filter, Priority)
}
