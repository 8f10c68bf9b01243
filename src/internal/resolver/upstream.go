package resolver

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/netip"

	"github.com/miekg/dns"

	"github.com/maksimkurb/bigip-sd/src/internal/resolver/upstreams"
)

// UpstreamResolver resolves hosts by querying DNS upstreams directly.
type UpstreamResolver struct {
	upstream  upstreams.Upstream
	queryAAAA bool
}

// NewUpstreamResolver creates a resolver that sends an A query, then an AAAA
// query when queryAAAA is set, to upstream.
func NewUpstreamResolver(upstream upstreams.Upstream, queryAAAA bool) *UpstreamResolver {
	return &UpstreamResolver{
		upstream:  upstream,
		queryAAAA: queryAAAA,
	}
}

// LookupHost returns the A answers followed by the AAAA answers for host.
// NXDOMAIN is reported as a *net.DNSError with IsNotFound set.
func (r *UpstreamResolver) LookupHost(ctx context.Context, host string) ([]netip.Addr, error) {
	qtypes := []uint16{dns.TypeA}
	if r.queryAAAA {
		qtypes = append(qtypes, dns.TypeAAAA)
	}

	var (
		addrs    []netip.Addr
		firstErr error
	)
	for _, qtype := range qtypes {
		answers, err := r.query(ctx, host, qtype)
		if err != nil {
			var dnsErr *net.DNSError
			if errors.As(err, &dnsErr) && dnsErr.IsNotFound && len(addrs) == 0 {
				return nil, err
			}
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		addrs = append(addrs, answers...)
	}

	if len(addrs) > 0 {
		return addrs, nil
	}
	if firstErr != nil {
		return nil, firstErr
	}
	return nil, fmt.Errorf("%s: %w", host, ErrNoAddresses)
}

func (r *UpstreamResolver) query(ctx context.Context, host string, qtype uint16) ([]netip.Addr, error) {
	req := new(dns.Msg)
	req.SetQuestion(dns.Fqdn(host), qtype)
	req.RecursionDesired = true

	resp, err := r.upstream.Query(ctx, req)
	if err != nil {
		return nil, err
	}

	switch resp.Rcode {
	case dns.RcodeSuccess:
	case dns.RcodeNameError:
		return nil, &net.DNSError{Err: "no such host", Name: host, IsNotFound: true}
	default:
		return nil, fmt.Errorf("%s %s: server returned %s", host, dns.TypeToString[qtype], dns.RcodeToString[resp.Rcode])
	}

	var addrs []netip.Addr
	for _, rr := range resp.Answer {
		switch v := rr.(type) {
		case *dns.A:
			if addr, ok := netip.AddrFromSlice(v.A); ok {
				addrs = append(addrs, addr.Unmap())
			}
		case *dns.AAAA:
			if addr, ok := netip.AddrFromSlice(v.AAAA); ok {
				addrs = append(addrs, addr.Unmap())
			}
		}
	}
	return addrs, nil
}

func (r *UpstreamResolver) String() string {
	return "upstreams: " + r.upstream.String()
}

func (r *UpstreamResolver) Close() error {
	return r.upstream.Close()
}
