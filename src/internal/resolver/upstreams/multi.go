package upstreams

import (
	"context"
	"fmt"
	"strings"

	"github.com/miekg/dns"

	"github.com/maksimkurb/bigip-sd/src/internal/log"
)

// MultiUpstream queries several upstreams in order until one answers.
// Upstreams restricted to the queried domain are tried before general ones.
type MultiUpstream struct {
	upstreams []Upstream
}

// NewMultiUpstream creates a new multi-upstream.
func NewMultiUpstream(upstreams []Upstream) *MultiUpstream {
	return &MultiUpstream{upstreams: upstreams}
}

// Upstreams returns the wrapped upstreams in query order.
func (m *MultiUpstream) Upstreams() []Upstream {
	return m.upstreams
}

// Query sends req to the first upstream that answers without a transport error.
func (m *MultiUpstream) Query(ctx context.Context, req *dns.Msg) (*dns.Msg, error) {
	if len(m.upstreams) == 0 {
		return nil, fmt.Errorf("no upstreams configured")
	}

	var queryDomain string
	if len(req.Question) > 0 {
		queryDomain = req.Question[0].Name
	}

	var lastErr error
	tried := 0
	try := func(upstream Upstream) (*dns.Msg, bool) {
		tried++
		resp, err := upstream.Query(ctx, req)
		if err != nil {
			lastErr = err
			log.Debugf("Upstream %s failed: %v", upstream, err)
			return nil, false
		}
		return resp, true
	}

	for _, upstream := range m.upstreams {
		if upstream.GetDomain() == "" || !upstream.MatchesDomain(queryDomain) {
			continue
		}
		if resp, ok := try(upstream); ok {
			return resp, nil
		}
	}

	for _, upstream := range m.upstreams {
		if upstream.GetDomain() != "" {
			continue
		}
		if resp, ok := try(upstream); ok {
			return resp, nil
		}
	}

	if tried == 0 {
		return nil, fmt.Errorf("no upstream configured for %s", queryDomain)
	}
	return nil, fmt.Errorf("all upstreams failed, last error: %w", lastErr)
}

// String returns a human-readable representation of all upstreams.
func (m *MultiUpstream) String() string {
	var parts []string
	for _, upstream := range m.upstreams {
		parts = append(parts, upstream.String())
	}
	return strings.Join(parts, ", ")
}

// Close closes all upstreams.
func (m *MultiUpstream) Close() error {
	for _, upstream := range m.upstreams {
		_ = upstream.Close()
	}
	return nil
}

// GetDomain returns empty string as MultiUpstream doesn't have a single domain.
func (m *MultiUpstream) GetDomain() string {
	return ""
}

// MatchesDomain always returns true as MultiUpstream handles routing internally.
func (m *MultiUpstream) MatchesDomain(domain string) bool {
	return true
}
