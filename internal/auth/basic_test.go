package auth

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

var errBad = errors.New("bad credentials")

type verifierFunc func(ctx context.Context, login, password string) (int64, error)

func (f verifierFunc) Verify(ctx context.Context, login, password string) (int64, error) {
	return f(ctx, login, password)
}

func fixed(login, password string, id int64) Verifier {
	return verifierFunc(func(_ context.Context, l, p string) (int64, error) {
		if l == login && p == password {
			return id, nil
		}
		return 0, errBad
	})
}

func run(v Verifier, req *http.Request) (*httptest.ResponseRecorder, int64, bool) {
	var (
		uid  int64
		seen bool
	)
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		uid, seen = UserID(r.Context())
		w.WriteHeader(http.StatusOK)
	})
	rr := httptest.NewRecorder()
	Basic(v, IsErr(errBad))(next).ServeHTTP(rr, req)
	return rr, uid, seen
}

func TestBasic_Anonymous(t *testing.T) {
	rr, _, seen := run(fixed("u", "p", 1), httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.False(t, seen)
}

func TestBasic_Valid(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.SetBasicAuth("u", "p")

	rr, uid, seen := run(fixed("u", "p", 9), req)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.True(t, seen)
	assert.Equal(t, int64(9), uid)
}

func TestBasic_Invalid(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.SetBasicAuth("u", "wrong")

	rr, _, seen := run(fixed("u", "p", 9), req)
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	assert.NotEmpty(t, rr.Header().Get("WWW-Authenticate"))
	assert.False(t, seen)
}

func TestBasic_VerifierFailure(t *testing.T) {
	broken := verifierFunc(func(context.Context, string, string) (int64, error) {
		return 0, errors.New("db down")
	})
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.SetBasicAuth("u", "p")

	rr, _, _ := run(broken, req)
	assert.Equal(t, http.StatusServiceUnavailable, rr.Code)
}

func TestUserID(t *testing.T) {
	_, ok := UserID(context.Background())
	assert.False(t, ok)
	assert.True(t, Anonymous(context.Background()))
	assert.False(t, Anonymous(WithUser(context.Background(), 1)))

	id, ok := UserID(WithUser(context.Background(), 123))
	assert.True(t, ok)
	assert.Equal(t, int64(123), id)
}
