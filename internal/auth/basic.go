package auth

import (
	"context"
	"errors"
	"net/http"

	"go.uber.org/zap"
)

// Verifier resolves login credentials to a user ID.
type Verifier interface {
	Verify(ctx context.Context, login, password string) (int64, error)
}

// Basic authenticates HTTP Basic credentials with v and attaches the user
// ID to the request context.
//
// Requests without an Authorization header continue anonymously, so the
// permission pipeline (and any route bypass) decides what they may reach.
// Wrong credentials get 401.  A verifier failure other than bad
// credentials, as reported by isBad, gets 503.
func Basic(v Verifier, isBad func(error) bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			login, password, ok := r.BasicAuth()
			if !ok {
				next.ServeHTTP(w, r)
				return
			}

			uid, err := v.Verify(r.Context(), login, password)
			switch {
			case err == nil:
				next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), uid)))
			case isBad != nil && isBad(err):
				w.Header().Set("WWW-Authenticate", `Basic realm="doofinder"`)
				http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
			default:
				zap.L().Error("basic auth verify", zap.String("login", login), zap.Error(err))
				http.Error(w, http.StatusText(http.StatusServiceUnavailable), http.StatusServiceUnavailable)
			}
		})
	}
}

// IsErr returns an isBad predicate matching target with errors.Is.
func IsErr(target error) func(error) bool {
	return func(err error) bool { return errors.Is(err, target) }
}
