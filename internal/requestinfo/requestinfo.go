// internal/requestinfo/requestinfo.go
//
// Per-request audit helpers.
//
/*
Context
--------
Authorization gates log every denial.  These helpers turn a request into a
flat list of zap key/value pairs so each gate writes the same fields:

  • client IP (left-most X-Forwarded-For, then X-Real-Ip, then RemoteAddr)
  • browser family, OS, device class, and bot flag
  • request path and raw query string

Notes
-----
  • Header values are untrusted; they are logged, never acted on.
  • Oxford commas, two spaces after periods.  No em dash.
*/
package requestinfo

import (
	"net"
	"net/http"
	"strings"

	"github.com/yanizio/doofinder-wp/internal/ua"
)

// ClientIP extracts the left-most parseable address from X-Forwarded-For or
// X-Real-Ip, falling back to r.RemoteAddr ("ip:port").
func ClientIP(r *http.Request) net.IP {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		for _, part := range strings.Split(xff, ",") {
			if ip := net.ParseIP(strings.TrimSpace(part)); ip != nil {
				return ip
			}
		}
	}
	if xrip := r.Header.Get("X-Real-Ip"); xrip != "" {
		if ip := net.ParseIP(strings.TrimSpace(xrip)); ip != nil {
			return ip
		}
	}
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return net.ParseIP(host)
	}
	return net.ParseIP(r.RemoteAddr)
}

// LogFields returns sugared-logger key/value pairs describing r.
func LogFields(r *http.Request) []any {
	info := ua.Parse(r.UserAgent())
	return []any{
		"ip", ClientIP(r).String(),
		"browser", info.Browser,
		"os", info.OS,
		"device", info.Device,
		"bot", info.IsBot,
		"path", r.URL.Path,
		"raw_query", r.URL.RawQuery,
	}
}
