package health

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yanizio/doofinder-wp/internal/endpoint"
	"github.com/yanizio/doofinder-wp/internal/gate"
	"github.com/yanizio/doofinder-wp/internal/rest"
)

type denyAll struct{}

func (denyAll) Allowed(context.Context, string) (bool, error) { return false, nil }

// search is a second catalogued handler so the route count is not trivial.
type search struct{}

func (search) Context() string  { return "doofinder/v1" }
func (search) Endpoint() string { return "/search" }
func (search) Initialize(h endpoint.Host) error {
	return h.Handle(h.Route(), func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestRegisteredAtInit(t *testing.T) {
	var found bool
	for _, d := range endpoint.Default().All() {
		if d.ID == "Health" {
			found = true
		}
	}
	assert.True(t, found)
}

func TestHealth_AnonymousThroughBypass(t *testing.T) {
	fixed := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

	c := endpoint.NewCatalog()
	c.Add("health.go", &Endpoint{now: func() time.Time { return fixed }})
	c.Add("class-search.php", search{})

	srv := rest.NewServer(denyAll{})
	routes, err := endpoint.NewEngine(c, srv).Initialize(context.Background())
	require.NoError(t, err)
	gate.NewBypass(routes).Install(srv)

	rr := httptest.NewRecorder()
	srv.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/?rest_route=/doofinder/v1/health", nil))
	require.Equal(t, http.StatusOK, rr.Code)

	var got status
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
	assert.Equal(t, "ok", got.Status)
	assert.Equal(t, 2, got.Routes)
	assert.True(t, fixed.Equal(got.Time))
}
