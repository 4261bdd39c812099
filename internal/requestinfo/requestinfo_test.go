package requestinfo

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClientIP(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.RemoteAddr = "10.0.0.9:4321"
	assert.Equal(t, "10.0.0.9", ClientIP(r).String())

	r.Header.Set("X-Real-Ip", "192.0.2.7")
	assert.Equal(t, "192.0.2.7", ClientIP(r).String())

	r.Header.Set("X-Forwarded-For", "garbage, 203.0.113.5, 10.0.0.1")
	assert.Equal(t, "203.0.113.5", ClientIP(r).String())
}

func TestLogFields_Pairs(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/wp-json/x?y=1", nil)
	fields := LogFields(r)

	assert.Equal(t, 0, len(fields)%2, "fields must be key/value pairs")
	assert.Contains(t, fields, "raw_query")
	assert.Contains(t, fields, "y=1")
}
