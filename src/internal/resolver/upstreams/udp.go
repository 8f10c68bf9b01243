package upstreams

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strings"
	"time"

	"github.com/miekg/dns"

	"github.com/maksimkurb/bigip-sd/src/internal/log"
)

const (
	defaultDNSPort   = "53"
	udpClientTimeout = 3 * time.Second
)

// UDPUpstream implements Upstream using plain UDP DNS.
type UDPUpstream struct {
	BaseUpstream
	address string
	client  *dns.Client
}

// NewUDPUpstream creates a new UDP DNS upstream.
// The domain parameter restricts the upstream to a specific domain (empty = all domains).
func NewUDPUpstream(address string, restrictedDomain string, timeout time.Duration) (*UDPUpstream, error) {
	host := address
	if !containsPort(host) {
		host = net.JoinHostPort(strings.Trim(host, "[]"), defaultDNSPort)
	}

	ip, _, err := net.SplitHostPort(host)
	if err != nil {
		return nil, fmt.Errorf("invalid UDP address: %w", err)
	}
	if net.ParseIP(ip) == nil {
		return nil, fmt.Errorf("invalid UDP address: %q is not an IP address", ip)
	}

	if timeout <= 0 {
		timeout = udpClientTimeout
	}

	return &UDPUpstream{
		BaseUpstream: NewBaseUpstream(restrictedDomain),
		address:      host,
		client: &dns.Client{
			Net:     "udp",
			Timeout: timeout,
		},
	}, nil
}

// Query sends a DNS query to the UDP upstream.
func (u *UDPUpstream) Query(ctx context.Context, req *dns.Msg) (*dns.Msg, error) {
	queryInfo := "unknown"
	if len(req.Question) > 0 {
		q := req.Question[0]
		queryInfo = fmt.Sprintf("%s %s", q.Name, dns.TypeToString[q.Qtype])
	}

	log.Debugf("[%04x] Querying upstream: %s for %s", req.Id, u, queryInfo)

	resp, _, err := u.client.ExchangeContext(ctx, req, u.address)
	if err != nil {
		var netErr net.Error
		if errors.As(err, &netErr) && netErr.Timeout() {
			log.Debugf("[%04x] Upstream timeout for query: %s (upstream: %s)", req.Id, queryInfo, u)
		} else {
			log.Debugf("[%04x] Upstream error for query %s (upstream: %s): %v", req.Id, queryInfo, u, err)
		}
		return nil, err
	}
	return resp, nil
}

// Close closes any resources held by the upstream.
func (u *UDPUpstream) Close() error {
	return nil
}

func (u *UDPUpstream) String() string {
	return u.describe("udp://" + u.address)
}

// containsPort checks if the address contains a port number.
func containsPort(address string) bool {
	// [::1]:53
	if idx := strings.LastIndexByte(address, ']'); idx != -1 {
		return len(address) > idx+1 && address[idx+1] == ':'
	}
	// a bare IPv6 address has several colons and no port
	return strings.Count(address, ":") == 1
}
