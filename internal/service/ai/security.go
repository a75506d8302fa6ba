package ai

import (
	"errors"
	"fmt"
	"net"
	"net/url"
)

// ErrSecurity wraps every request-override validation failure so handlers can
// map the whole class to 403.
var ErrSecurity = errors.New("security validation failed")

// ValidateCustomEndpoint enforces the SSRF rule for client-supplied base URLs:
// a custom endpoint must come with the client's own API key, otherwise the
// request would redirect the server's key to an arbitrary host.
func ValidateCustomEndpoint(baseURL, apiKey, providerName string) error {
	if baseURL != "" && apiKey == "" {
		return fmt.Errorf("%w: API key is required when using a custom base URL for %s", ErrSecurity, providerName)
	}
	return nil
}

// ValidateURLSafety reports whether url is acceptable as an LLM endpoint:
// well formed, https for external hosts (plain http allowed for localhost),
// and not pointing at private address space.
func ValidateURLSafety(raw string) bool {
	parsed, err := url.Parse(raw)
	if err != nil {
		return false
	}
	if parsed.Scheme == "" || parsed.Host == "" {
		return false
	}

	hostname := parsed.Hostname()
	if hostname == "localhost" || hostname == "127.0.0.1" || hostname == "::1" || hostname == "0.0.0.0" {
		return true
	}

	if parsed.Scheme != "https" {
		return false
	}

	if ip := net.ParseIP(hostname); ip != nil {
		if ip.IsLoopback() || ip.IsPrivate() || ip.IsLinkLocalUnicast() || ip.IsUnspecified() {
			return false
		}
	}
	return true
}
