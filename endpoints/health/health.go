// endpoints/health/health.go
//
// Health endpoint – GET /wp-json/doofinder/v1/health.
//
// Answers the Doofinder backend's liveness probe with the number of routes
// the endpoint registry recorded at startup.  The route declares no
// permission of its own; anonymous callers reach it through the endpoint
// registry's permission bypass.
package health

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/yanizio/doofinder-wp/internal/endpoint"
)

// compile-time assertions
var (
	_ endpoint.Handler     = (*Endpoint)(nil)
	_ endpoint.Initializer = (*Endpoint)(nil)
)

// Endpoint implements endpoint.Handler.
type Endpoint struct {
	now    func() time.Time
	routes *endpoint.Routes
}

func (e *Endpoint) Context() string  { return "doofinder/v1" }
func (e *Endpoint) Endpoint() string { return "/health" }

func (e *Endpoint) Initialize(h endpoint.Host) error {
	e.routes = h.Registry()
	return h.Handle(h.Route(), e.serve)
}

type status struct {
	Status string    `json:"status"`
	Routes int       `json:"routes"`
	Time   time.Time `json:"time"`
}

func (e *Endpoint) serve(w http.ResponseWriter, _ *http.Request) {
	now := time.Now
	if e.now != nil {
		now = e.now
	}
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(status{
		Status: "ok",
		Routes: e.routes.Len(),
		Time:   now().UTC(),
	}); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// Register endpoint at package init.
func init() {
	endpoint.Register(&Endpoint{})
}
