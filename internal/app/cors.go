package app

import (
	"net/url"
	"strings"
)

// extractOriginHost reduces an Origin header value to "host[:port]". Values
// that do not parse as a URL are matched as-is.
func extractOriginHost(origin string) string {
	u, err := url.Parse(origin)
	if err != nil || u.Host == "" {
		return origin
	}
	return u.Host
}

// matchOriginPattern checks a request host against one allowed-origin
// pattern. "*.example.com" covers any subdomain, "localhost:*" any port.
func matchOriginPattern(pattern, host string) bool {
	switch {
	case pattern == host:
		return true
	case strings.HasPrefix(pattern, "*."):
		return strings.HasSuffix(host, pattern[1:])
	case strings.HasSuffix(pattern, ":*"):
		return strings.HasPrefix(host, pattern[:len(pattern)-1])
	}
	return false
}
