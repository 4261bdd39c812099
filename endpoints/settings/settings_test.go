package settings

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yanizio/doofinder-wp/internal/endpoint"
	"github.com/yanizio/doofinder-wp/internal/gate"
	"github.com/yanizio/doofinder-wp/internal/options"
	"github.com/yanizio/doofinder-wp/internal/rest"
	"github.com/yanizio/doofinder-wp/internal/secret"
)

type denyAll struct{}

func (denyAll) Allowed(context.Context, string) (bool, error) { return false, nil }

const token = "0123456789abcdef"

func setup(t *testing.T, store options.Store) *rest.Server {
	t.Helper()
	c := endpoint.NewCatalog()
	c.Add("settings.go", &Endpoint{})

	srv := rest.NewServer(denyAll{})
	routes, err := endpoint.NewEngine(c, srv,
		endpoint.WithOptions(store),
		endpoint.WithGuard(secret.New(store)),
	).Initialize(context.Background())
	require.NoError(t, err)
	gate.NewBypass(routes).Install(srv)
	return srv
}

func do(srv http.Handler, method, body, tok string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, "/wp-json/doofinder/v1/settings", strings.NewReader(body))
	if tok != "" {
		req.Header.Set("Doofinder-Token", tok)
	}
	rr := httptest.NewRecorder()
	srv.ServeHTTP(rr, req)
	return rr
}

func TestSettings_Get(t *testing.T) {
	store := options.NewMemory(map[string]string{
		options.KeyToken:   token,
		options.KeyAPIHost: "eu1-search.doofinder.com",
		options.KeyEnabled: "true",
	})
	srv := setup(t, store)

	rr := do(srv, http.MethodGet, "", token)
	require.Equal(t, http.StatusOK, rr.Code)

	var got Settings
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
	assert.Equal(t, Settings{APIHost: "eu1-search.doofinder.com", Enabled: true}, got)
}

func TestSettings_RequiresToken(t *testing.T) {
	srv := setup(t, options.NewMemory(map[string]string{options.KeyToken: token}))

	for _, tok := range []string{"", "wrong"} {
		rr := do(srv, http.MethodGet, "", tok)
		assert.Equal(t, http.StatusForbidden, rr.Code)
		assert.Equal(t, secret.ForbiddenMessage+"\n", rr.Body.String())
	}
}

func TestSettings_Post(t *testing.T) {
	store := options.NewMemory(map[string]string{options.KeyToken: token})
	srv := setup(t, store)

	rr := do(srv, http.MethodPost, `{"api_host":"us1-search.doofinder.com","enabled":true}`, token)
	require.Equal(t, http.StatusOK, rr.Code)

	host, err := store.Get(context.Background(), options.KeyAPIHost)
	require.NoError(t, err)
	assert.Equal(t, "us1-search.doofinder.com", host)

	enabled, err := store.Get(context.Background(), options.KeyEnabled)
	require.NoError(t, err)
	assert.Equal(t, "true", enabled)
}

func TestSettings_PostBadBody(t *testing.T) {
	srv := setup(t, options.NewMemory(map[string]string{options.KeyToken: token}))

	rr := do(srv, http.MethodPost, `{"unknown":1}`, token)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

// readOnly wraps Memory and refuses writes.
type readOnly struct{ *options.Memory }

func (readOnly) Set(context.Context, string, string) error { return options.ErrReadOnly }

func TestSettings_PostReadOnly(t *testing.T) {
	srv := setup(t, readOnly{options.NewMemory(map[string]string{options.KeyToken: token})})

	rr := do(srv, http.MethodPost, `{"enabled":false}`, token)
	assert.Equal(t, http.StatusConflict, rr.Code)
}

func TestSettings_InitializeNeedsStore(t *testing.T) {
	c := endpoint.NewCatalog()
	c.Add("settings.go", &Endpoint{})

	_, err := endpoint.NewEngine(c, rest.NewServer(denyAll{})).Initialize(context.Background())
	assert.Error(t, err)
}
