// internal/endpoint/handler.go
//
// Endpoint handler contract.
//
// Each concrete endpoint lives under endpoints/<name> and calls
// endpoint.Register() in an init() function.  During startup the Engine
// walks the catalog in registration order, records
// "/" + Context() + Endpoint() for every handler that implements
// Initializer, and then calls Initialize so the handler can mount its own
// REST routes through the Host.

package endpoint

import (
	"net/http"

	"github.com/yanizio/doofinder-wp/internal/options"
	"github.com/yanizio/doofinder-wp/internal/rest"
	"github.com/yanizio/doofinder-wp/internal/secret"
)

// Handler contract.
//
// Context is the namespace segment without a leading slash, e.g.
// "doofinder/v1".  Endpoint is the path segment with its leading slash,
// e.g. "/settings".
type Handler interface {
	Context() string
	Endpoint() string
}

// Initializer is optional.  Handlers without it are catalogued but never
// initialized and contribute no routes.
type Initializer interface {
	Initialize(Host) error
}

// Host is what a handler may use while initializing.
type Host interface {
	// Handle registers a REST route.  Use rest.Methods to accept verbs
	// other than GET.
	Handle(route string, h http.HandlerFunc, opts ...rest.RouteOption) error

	// Route returns "/" + Context() + Endpoint() for the handler being
	// initialized.
	Route() string

	// Options is the durable settings store.
	Options() options.Store

	// Guard is the shared-secret gate for routes needing a token.
	Guard() *secret.Gate

	// Registry is the registry being filled by the current pass.  It is
	// complete once the listener starts, so handlers read it at request
	// time, not during Initialize.
	Registry() *Routes
}
