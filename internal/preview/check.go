package preview

import (
	"net/http"
	"net/url"
	"strings"
)

// Status represents the health of a previewed URL.
type Status int

const (
	Healthy     Status = iota // 2xx or 3xx response
	Dead                      // 404 or 410 Gone
	Unreachable               // timeout, DNS failure, connection refused, etc.
)

// String returns a short label for the status.
func (s Status) String() string {
	switch s {
	case Healthy:
		return "ok"
	case Dead:
		return "dead"
	default:
		return "unreachable"
	}
}

// classify maps an HTTP status code to a Status and a readable reason.
// excludeMap holds domains where 404s mean "possibly private" instead of dead.
func classify(rawURL string, code int, excludeMap map[string]bool) (Status, string) {
	switch {
	case code >= 200 && code < 400:
		return Healthy, ""
	case code == http.StatusNotFound || code == http.StatusGone:
		if isExcludedDomain(rawURL, excludeMap) {
			return Unreachable, "Possibly private (auth required)"
		}
		return Dead, http.StatusText(code)
	default:
		// 500, 403, etc. may be temporary or auth-required
		return Unreachable, http.StatusText(code)
	}
}

// isExcludedDomain checks if the URL's domain is in the exclude list.
func isExcludedDomain(rawURL string, excludeMap map[string]bool) bool {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	host := strings.ToLower(parsed.Hostname())
	if excludeMap[host] {
		return true
	}
	// "api.github.com" matches "github.com"
	for domain := range excludeMap {
		if strings.HasSuffix(host, "."+domain) {
			return true
		}
	}
	return false
}

// normalizeError simplifies verbose error messages into readable categories.
func normalizeError(errStr string) string {
	lower := strings.ToLower(errStr)

	switch {
	case strings.Contains(lower, "no such host"):
		return "DNS failure"
	case strings.Contains(lower, "context deadline exceeded"),
		strings.Contains(lower, "timeout"):
		return "Timeout"
	case strings.Contains(lower, "connection refused"):
		return "Connection refused"
	case strings.Contains(lower, "certificate"):
		return "TLS/certificate error"
	case strings.Contains(lower, "network is unreachable"):
		return "Network unreachable"
	case strings.Contains(lower, "tls:"):
		return "TLS error"
	case strings.Contains(lower, "unsupported protocol scheme"):
		return "Unsupported URL"
	default:
		return errStr
	}
}
