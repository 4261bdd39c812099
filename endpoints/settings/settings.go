// endpoints/settings/settings.go
//
// Settings endpoint – /wp-json/doofinder/v1/settings.
//
//	GET   returns the Doofinder API host and the enabled flag.
//	POST  updates either value from a JSON body.
//
// Both verbs require the Doofinder-Token header.  The generic permission
// check is bypassed for this route, so the shared-secret gate is the only
// authentication the Doofinder backend needs.
package settings

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"github.com/yanizio/doofinder-wp/internal/endpoint"
	"github.com/yanizio/doofinder-wp/internal/options"
	"github.com/yanizio/doofinder-wp/internal/rest"
)

// compile-time assertions
var (
	_ endpoint.Handler     = (*Endpoint)(nil)
	_ endpoint.Initializer = (*Endpoint)(nil)
)

// Endpoint implements endpoint.Handler.
type Endpoint struct {
	store options.Store
}

func (e *Endpoint) Context() string  { return "doofinder/v1" }
func (e *Endpoint) Endpoint() string { return "/settings" }

// Initialize mounts the route behind the host's token gate.
func (e *Endpoint) Initialize(h endpoint.Host) error {
	if h.Options() == nil || h.Guard() == nil {
		return errors.New("settings: option store and token gate are required")
	}
	e.store = h.Options()
	return h.Handle(h.Route(), h.Guard().Require(e.serve),
		rest.Methods(http.MethodGet, http.MethodPost))
}

// Settings is the wire shape for both verbs.
type Settings struct {
	APIHost string `json:"api_host"`
	Enabled bool   `json:"enabled"`
}

type update struct {
	APIHost *string `json:"api_host"`
	Enabled *bool   `json:"enabled"`
}

func (e *Endpoint) serve(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodPost {
		if !e.update(w, r) {
			return
		}
	}

	s, err := e.read(r)
	if err != nil {
		zap.S().Errorw("settings read failed", "err", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(s)
}

func (e *Endpoint) read(r *http.Request) (Settings, error) {
	var s Settings
	host, err := e.store.Get(r.Context(), options.KeyAPIHost)
	if err != nil && !errors.Is(err, options.ErrNotFound) {
		return s, err
	}
	s.APIHost = host

	enabled, err := e.store.Get(r.Context(), options.KeyEnabled)
	if err != nil && !errors.Is(err, options.ErrNotFound) {
		return s, err
	}
	s.Enabled, _ = strconv.ParseBool(enabled)
	return s, nil
}

// update applies a POST body.  It writes the error response itself and
// reports false when the caller must stop.
func (e *Endpoint) update(w http.ResponseWriter, r *http.Request) bool {
	var in update
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, 4<<10))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&in); err != nil {
		http.Error(w, "invalid JSON body", http.StatusBadRequest)
		return false
	}

	set := func(key, val string) error { return e.store.Set(r.Context(), key, val) }

	var err error
	if in.APIHost != nil {
		err = set(options.KeyAPIHost, *in.APIHost)
	}
	if err == nil && in.Enabled != nil {
		err = set(options.KeyEnabled, strconv.FormatBool(*in.Enabled))
	}
	switch {
	case err == nil:
		return true
	case errors.Is(err, options.ErrReadOnly):
		http.Error(w, "settings are read-only on this backend", http.StatusConflict)
	default:
		zap.S().Errorw("settings write failed", "err", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
	}
	return false
}

// Register endpoint at package init.
func init() {
	endpoint.Register(&Endpoint{})
}
