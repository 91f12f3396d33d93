package steps

import (
	"fmt"
	"net"
	"net/url"
	"strings"
)

// internalTLDs are hostname suffixes that conventionally resolve inside a
// private network and must never be reachable from a request step.
var internalTLDs = []string{".local", ".internal", ".corp", ".lan", ".home"}

// localhostNames are hostnames that always point back at the engine host.
var localhostNames = map[string]bool{
	"localhost": true,
	"127.0.0.1": true,
	"::1":       true,
	"0.0.0.0":   true,
}

// ValidateSafeURL checks that rawURL is safe for a server-side request:
// http/https scheme, a hostname present, and neither localhost, a private,
// loopback, link-local, multicast, or unspecified IP, nor an internal TLD.
// It returns an error describing the first violation found.
func ValidateSafeURL(rawURL string) error {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("invalid URL: %w", err)
	}

	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return fmt.Errorf("invalid URL scheme: %q, must be http or https", parsed.Scheme)
	}

	hostname := parsed.Hostname()
	if hostname == "" {
		return fmt.Errorf("URL must have a hostname")
	}

	lower := strings.ToLower(hostname)
	if localhostNames[lower] {
		return fmt.Errorf("URLs pointing to localhost are not allowed")
	}

	if ip := net.ParseIP(hostname); ip != nil {
		switch {
		case ip.IsLoopback():
			return fmt.Errorf("URLs pointing to loopback addresses are not allowed")
		case ip.IsPrivate():
			return fmt.Errorf("URLs pointing to private IP addresses are not allowed")
		case ip.IsLinkLocalUnicast(), ip.IsLinkLocalMulticast():
			return fmt.Errorf("URLs pointing to link-local addresses are not allowed")
		case ip.IsMulticast():
			return fmt.Errorf("URLs pointing to multicast addresses are not allowed")
		case ip.IsUnspecified():
			return fmt.Errorf("URLs pointing to unspecified addresses are not allowed")
		}
		return nil
	}

	for _, tld := range internalTLDs {
		if strings.HasSuffix(lower, tld) {
			return fmt.Errorf("URLs with internal TLD %q are not allowed", tld)
		}
	}

	return nil
}
