// Package upstreams provides DNS upstream clients used by the upstream resolver.
package upstreams

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/miekg/dns"
)

// Upstream represents a DNS upstream server.
type Upstream interface {
	// Query sends a DNS query to the upstream and returns the response.
	Query(ctx context.Context, req *dns.Msg) (*dns.Msg, error)
	// Close closes any resources held by the upstream.
	Close() error
	// GetDomain returns the domain this upstream is restricted to (empty = all domains).
	GetDomain() string
	// MatchesDomain returns true if this upstream should handle the given domain.
	MatchesDomain(domain string) bool
	String() string
}

// BaseUpstream provides common functionality for all upstreams.
type BaseUpstream struct {
	// Domain restricts this upstream to a specific domain and its subdomains.
	// Empty string means this upstream can be used for any domain.
	Domain string
	// normalizedDomain is Domain in lowercase without the trailing dot.
	normalizedDomain string
}

// NewBaseUpstream creates a BaseUpstream with pre-normalized domain.
func NewBaseUpstream(domain string) BaseUpstream {
	normalized := ""
	if domain != "" {
		normalized = strings.ToLower(strings.TrimSuffix(domain, "."))
	}
	return BaseUpstream{
		Domain:           domain,
		normalizedDomain: normalized,
	}
}

// GetDomain returns the domain this upstream is restricted to.
func (b *BaseUpstream) GetDomain() string {
	return b.Domain
}

// MatchesDomain returns true if this upstream should handle the given domain.
func (b *BaseUpstream) MatchesDomain(queryDomain string) bool {
	if b.normalizedDomain == "" {
		return true
	}

	normalizedQuery := strings.ToLower(strings.TrimSuffix(queryDomain, "."))
	if normalizedQuery == b.normalizedDomain {
		return true
	}
	return strings.HasSuffix(normalizedQuery, "."+b.normalizedDomain)
}

func (b *BaseUpstream) describe(address string) string {
	if b.Domain != "" {
		return fmt.Sprintf("%s (domain: %s)", address, b.Domain)
	}
	return address
}

// ParseUpstream parses an upstream URL.
// Supported formats:
//   - udp://ip[:port] - plain UDP DNS (port defaults to 53)
//   - ip[:port] - same as udp://
//   - doh://host/path, https://host/path - DNS-over-HTTPS
//
// A "domain" query parameter restricts the upstream to that domain and its
// subdomains, e.g. udp://10.0.0.53?domain=corp.example.
// A zero timeout selects the built-in default.
func ParseUpstream(upstreamURL string, timeout time.Duration) (Upstream, error) {
	u, err := url.Parse(upstreamURL)
	// "8.8.8.8:53" fails to parse and "8.8.8.8" has no scheme: both are UDP
	if err != nil || u.Scheme == "" {
		return NewUDPUpstream(upstreamURL, "", timeout)
	}

	restrictedDomain := u.Query().Get("domain")

	switch u.Scheme {
	case "udp":
		if u.Host == "" {
			return nil, fmt.Errorf("upstream %q has no address", upstreamURL)
		}
		return NewUDPUpstream(u.Host, restrictedDomain, timeout)
	case "doh", "https":
		if u.Host == "" {
			return nil, fmt.Errorf("upstream %q has no host", upstreamURL)
		}
		q := u.Query()
		q.Del("domain")
		u.RawQuery = q.Encode()
		return NewDoHUpstream(u.String(), restrictedDomain, timeout), nil
	default:
		return nil, fmt.Errorf("unsupported upstream scheme: %s", u.Scheme)
	}
}

// ParseUpstreams parses every URL and combines them into a MultiUpstream.
func ParseUpstreams(upstreamURLs []string, timeout time.Duration) (*MultiUpstream, error) {
	parsed := make([]Upstream, 0, len(upstreamURLs))
	for _, upstreamURL := range upstreamURLs {
		upstream, err := ParseUpstream(upstreamURL, timeout)
		if err != nil {
			for _, u := range parsed {
				_ = u.Close()
			}
			return nil, fmt.Errorf("invalid upstream %q: %w", upstreamURL, err)
		}
		parsed = append(parsed, upstream)
	}
	return NewMultiUpstream(parsed), nil
}
