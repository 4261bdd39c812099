// internal/secret/gate.go
//
// Shared-secret gate for endpoints that need more than the generic
// permission check.
//
/*
Context
--------
An installation owns one random token, stored under the option key
`doofinder_for_wp_token`.  Callers from the Doofinder side send it in the
`Doofinder-Token` header.  A handler opts in by wrapping itself with
Gate.Require (or mounting Gate.Middleware); the wrapped code then runs only
when the header matches the stored token exactly.

Rules
-----
  • Missing header, empty or unset stored token, a failed option read, or
    any mismatch all deny.  Nothing is allowed while the token is
    unconfigured.
  • Comparison is exact, case-sensitive, and constant-time.
  • A denial writes 403 with a fixed plain-text body and the wrapped
    handler never runs.

Notes
-----
  • Check returns *AuthorizationError so non-HTTP callers can decide what
    to do; Require and Middleware convert it to the 403 response.
  • Oxford commas, two spaces after periods.
*/
package secret

import (
	"crypto/subtle"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/yanizio/doofinder-wp/internal/metrics"
	"github.com/yanizio/doofinder-wp/internal/options"
	"github.com/yanizio/doofinder-wp/internal/requestinfo"
)

const (
	// DefaultHeader carries the token on inbound requests.
	DefaultHeader = "Doofinder-Token"

	// ForbiddenMessage is the body of every denial.
	ForbiddenMessage = "Forbidden access. Maybe security token missed."
)

// Gate compares an inbound header against the stored shared secret.
type Gate struct {
	store  options.Store
	header string
	key    string
	log    *zap.SugaredLogger
}

// Option customises a Gate.
type Option func(*Gate)

// WithHeader overrides the header name.  Blank names are ignored.
func WithHeader(name string) Option {
	return func(g *Gate) {
		if name != "" {
			g.header = name
		}
	}
}

// WithOptionKey overrides the option key holding the secret.
func WithOptionKey(key string) Option {
	return func(g *Gate) {
		if key != "" {
			g.key = key
		}
	}
}

// WithLogger sets the denial logger (default zap.S()).
func WithLogger(l *zap.SugaredLogger) Option {
	return func(g *Gate) {
		if l != nil {
			g.log = l
		}
	}
}

// New returns a Gate reading the secret from store.  A nil store is an
// assembly error and panics.
func New(store options.Store, opts ...Option) *Gate {
	if store == nil {
		panic("secret.New: nil option store")
	}
	g := &Gate{
		store:  store,
		header: DefaultHeader,
		key:    options.KeyToken,
		log:    zap.S(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(g)
		}
	}
	return g
}

// Check returns nil when r carries the stored secret, or an
// *AuthorizationError describing why it does not.
func (g *Gate) Check(r *http.Request) error {
	// Header lookup is case-insensitive; absence differs from "".
	vals, present := r.Header[http.CanonicalHeaderKey(g.header)]
	var token string
	if present && len(vals) > 0 {
		token = sanitizeText(vals[0])
	}

	stored, err := g.store.Get(r.Context(), g.key)
	switch {
	case errors.Is(err, options.ErrNotFound):
		return &AuthorizationError{Reason: ReasonSecretUnset}
	case err != nil:
		return &AuthorizationError{Reason: ReasonStoreError, Err: err}
	case stored == "":
		return &AuthorizationError{Reason: ReasonSecretUnset}
	case !present:
		return &AuthorizationError{Reason: ReasonHeaderMissing}
	}

	if subtle.ConstantTimeCompare([]byte(stored), []byte(token)) != 1 {
		return &AuthorizationError{Reason: ReasonMismatch}
	}
	return nil
}

// Require wraps next so it runs only after a successful Check.
func (g *Gate) Require(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !g.Allow(w, r) {
			return
		}
		next(w, r)
	}
}

// Middleware is the http.Handler form of Require.
func (g *Gate) Middleware(next http.Handler) http.Handler {
	return g.Require(next.ServeHTTP)
}

// Allow runs Check and, on failure, logs, counts, and writes the 403.  The
// caller must return immediately when Allow reports false.
func (g *Gate) Allow(w http.ResponseWriter, r *http.Request) bool {
	err := g.Check(r)
	if err == nil {
		return true
	}

	var aerr *AuthorizationError
	reason := ReasonStoreError
	if errors.As(err, &aerr) {
		reason = aerr.Reason
	}
	metrics.SecureTokenDeniedTotal.WithLabelValues(string(reason)).Inc()

	fields := append([]any{"reason", reason, "header", g.header}, requestinfo.LogFields(r)...)
	if reason == ReasonStoreError {
		g.log.Errorw("secure token check failed", append(fields, "err", err)...)
	} else {
		g.log.Warnw("secure token rejected", fields...)
	}

	Forbidden(w)
	return false
}

// Forbidden writes the fixed 403 denial.
func Forbidden(w http.ResponseWriter) {
	http.Error(w, ForbiddenMessage, http.StatusForbidden)
}
