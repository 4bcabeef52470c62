package devtools

import (
	"net"
	"net/http"
	"strings"
)

// Proxy headers consulted by ClientIP, most trusted first.
const (
	HeaderVercelForwardedFor = "X-Vercel-Forwarded-For"
	HeaderForwardedFor       = "X-Forwarded-For"
	HeaderRealIP             = "X-Real-IP"
)

// ClientIP returns the originating client address of r.
func ClientIP(r *http.Request) string {
	if ip := strings.TrimSpace(r.Header.Get(HeaderVercelForwardedFor)); ip != "" {
		return ip
	}
	if fwd := r.Header.Get(HeaderForwardedFor); fwd != "" {
		if first := strings.TrimSpace(strings.Split(fwd, ",")[0]); first != "" {
			return first
		}
	}
	if ip := strings.TrimSpace(r.Header.Get(HeaderRealIP)); ip != "" {
		return ip
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

// IsPublicIP reports whether ip is a routable unicast address worth
// geolocating.
func IsPublicIP(ip string) bool {
	parsed := net.ParseIP(ip)
	if parsed == nil {
		return false
	}
	return !(parsed.IsLoopback() || parsed.IsPrivate() || parsed.IsUnspecified() ||
		parsed.IsLinkLocalUnicast() || parsed.IsMulticast())
}
