package middleware

import (
	"crypto/tls"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

var ok = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
})

func TestForceHTTPS(t *testing.T) {
	cases := []struct {
		name     string
		enabled  bool
		host     string
		tls      bool
		proto    string
		wantCode int
	}{
		{"disabled", false, "shop.example.com", false, "", http.StatusOK},
		{"redirects plain http", true, "shop.example.com", false, "", http.StatusPermanentRedirect},
		{"already tls", true, "shop.example.com", true, "", http.StatusOK},
		{"proxy says https", true, "shop.example.com", false, "https", http.StatusOK},
		{"localhost", true, "localhost:8080", false, "", http.StatusOK},
		{"loopback ip", true, "127.0.0.1:8080", false, "", http.StatusOK},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/wp-json/doofinder/v1/health?x=1", nil)
			req.Host = tc.host
			if tc.tls {
				req.TLS = &tls.ConnectionState{}
			}
			if tc.proto != "" {
				req.Header.Set("X-Forwarded-Proto", tc.proto)
			}

			rr := httptest.NewRecorder()
			ForceHTTPS(tc.enabled, ok).ServeHTTP(rr, req)

			assert.Equal(t, tc.wantCode, rr.Code)
			if tc.wantCode == http.StatusPermanentRedirect {
				assert.Equal(t, "https://shop.example.com/wp-json/doofinder/v1/health?x=1",
					rr.Header().Get("Location"))
			}
		})
	}
}

func TestSecurity(t *testing.T) {
	custom := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Cache-Control", "max-age=60")
		w.WriteHeader(http.StatusOK)
	})

	rr := httptest.NewRecorder()
	Security(custom).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, "nosniff", rr.Header().Get("X-Content-Type-Options"))
	assert.Equal(t, "DENY", rr.Header().Get("X-Frame-Options"))
	assert.Equal(t, "max-age=60", rr.Header().Get("Cache-Control"))
}
