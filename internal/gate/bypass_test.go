package gate

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yanizio/doofinder-wp/internal/endpoint"
	"github.com/yanizio/doofinder-wp/internal/rest"
)

type denyAll struct{}

func (denyAll) Allowed(context.Context, string) (bool, error) { return false, nil }

type search struct{}

func (search) Context() string  { return "doofinder/v1" }
func (search) Endpoint() string { return "/search" }
func (search) Initialize(h endpoint.Host) error {
	return h.Handle(h.Route(), func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

// setup returns a deny-by-default server with the search endpoint
// discovered and an unowned "/other" route next to it.
func setup(t *testing.T) (*rest.Server, *endpoint.Routes) {
	t.Helper()
	srv := rest.NewServer(denyAll{})

	c := endpoint.NewCatalog()
	c.Add("class-search.php", search{})
	routes, err := endpoint.NewEngine(c, srv).Initialize(context.Background())
	require.NoError(t, err)

	_, err = srv.Register("/other", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	require.NoError(t, err)
	return srv, routes
}

func get(srv http.Handler, target string) int {
	rr := httptest.NewRecorder()
	srv.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, target, nil))
	return rr.Code
}

func TestBypass_OwnedRoute(t *testing.T) {
	srv, routes := setup(t)
	NewBypass(routes).Install(srv)

	assert.Equal(t, http.StatusOK, get(srv, "/wp-json/doofinder/v1/search"))
	assert.Equal(t, http.StatusOK, get(srv, "/?rest_route=/doofinder/v1/search"))
}

func TestBypass_OtherRouteKeepsDecision(t *testing.T) {
	srv, routes := setup(t)
	NewBypass(routes).Install(srv)

	assert.Equal(t, http.StatusForbidden, get(srv, "/wp-json/other"))
}

func TestBypass_WithoutFilter(t *testing.T) {
	srv, _ := setup(t)
	assert.Equal(t, http.StatusForbidden, get(srv, "/wp-json/doofinder/v1/search"))
}

func TestBypass_Filter(t *testing.T) {
	srv, routes := setup(t)
	owned := srv.Lookup("/doofinder/v1/search")
	other := srv.Lookup("/other")
	req := httptest.NewRequest(http.MethodGet, "/", nil)

	b := NewBypass(routes)
	cases := []struct {
		name     string
		decision bool
		m        rest.Match
		want     bool
	}{
		{"owned and declared", false, rest.Match{Route: owned, Declared: "/doofinder/v1/search"}, true},
		{"allowed stays allowed", true, rest.Match{Route: other, Declared: "/other"}, true},
		{"unowned route", false, rest.Match{Route: other, Declared: "/doofinder/v1/search"}, false},
		{"owned but undeclared", false, rest.Match{Route: owned, Declared: "/doofinder/v1/Search"}, false},
		{"nil route", false, rest.Match{Declared: "/doofinder/v1/search"}, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, b.Filter(tc.decision, "read", req, tc.m))
		})
	}
}

func TestBypass_EmptyRegistry(t *testing.T) {
	srv, _ := setup(t)
	owned := srv.Lookup("/doofinder/v1/search")
	req := httptest.NewRequest(http.MethodGet, "/", nil)

	b := NewBypass(nil)
	assert.False(t, b.Filter(false, "read", req, rest.Match{Route: owned, Declared: "/doofinder/v1/search"}))
	assert.True(t, b.Filter(true, "read", req, rest.Match{Route: owned, Declared: "/doofinder/v1/search"}))
}

func TestBypass_UnclaimedSamePath(t *testing.T) {
	// A route mounted at a registry path by someone other than the engine
	// is not owned.
	srv := rest.NewServer(denyAll{})
	c := endpoint.NewCatalog()
	routes, err := endpoint.NewEngine(c, srv).Initialize(context.Background())
	require.NoError(t, err)

	rt, err := srv.Register("/doofinder/v1/search", func(http.ResponseWriter, *http.Request) {})
	require.NoError(t, err)

	b := NewBypass(routes)
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	assert.False(t, b.Filter(false, "read", req, rest.Match{Route: rt, Declared: "/doofinder/v1/search"}))
}
