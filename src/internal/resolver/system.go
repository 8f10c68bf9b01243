package resolver

import (
	"context"
	"net"
	"net/netip"
)

// SystemResolver resolves hosts with the operating system's resolver.
type SystemResolver struct {
	resolver *net.Resolver
}

func NewSystemResolver() *SystemResolver {
	return &SystemResolver{resolver: net.DefaultResolver}
}

// LookupHost returns the IPv4 and IPv6 addresses of host. IPv4-mapped IPv6
// addresses are returned as plain IPv4.
func (s *SystemResolver) LookupHost(ctx context.Context, host string) ([]netip.Addr, error) {
	addrs, err := s.resolver.LookupNetIP(ctx, "ip", host)
	if err != nil {
		return nil, err
	}
	for i := range addrs {
		addrs[i] = addrs[i].Unmap()
	}
	return addrs, nil
}

func (s *SystemResolver) String() string {
	return "system resolver"
}

func (s *SystemResolver) Close() error {
	return nil
}
