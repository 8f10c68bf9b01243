// Package mocks provides mock implementations for testing.
//
// This package should ONLY be imported in test files (_test.go).
package mocks

import (
	"context"
	"net"
	"net/netip"
	"sync"
)

// MockResolver is a mock implementation of the resolver.Resolver interface.
//
// If LookupHostFunc is set it is called for every lookup. Otherwise hosts are
// answered from Hosts, and unknown hosts fail with a not-found *net.DNSError.
//
// Example usage:
//
//	mock := mocks.NewMockResolver(map[string][]netip.Addr{
//	    "espn.com": {netip.MustParseAddr("199.181.132.250")},
//	})
//	addrs, err := mock.LookupHost(ctx, "espn.com")
type MockResolver struct {
	// LookupHostFunc is called by LookupHost if not nil
	LookupHostFunc func(ctx context.Context, host string) ([]netip.Addr, error)

	// Hosts is the default answer table
	Hosts map[string][]netip.Addr

	mu      sync.Mutex
	lookups []string
	closed  bool
}

// NewMockResolver creates a mock that answers from hosts.
func NewMockResolver(hosts map[string][]netip.Addr) *MockResolver {
	return &MockResolver{Hosts: hosts}
}

// LookupHost records the host and returns the configured answer.
func (m *MockResolver) LookupHost(ctx context.Context, host string) ([]netip.Addr, error) {
	m.mu.Lock()
	m.lookups = append(m.lookups, host)
	m.mu.Unlock()

	if m.LookupHostFunc != nil {
		return m.LookupHostFunc(ctx, host)
	}
	if addrs, ok := m.Hosts[host]; ok {
		return append([]netip.Addr(nil), addrs...), nil
	}
	return nil, &net.DNSError{Err: "no such host", Name: host, IsNotFound: true}
}

// Lookups returns the hosts looked up so far, in call order.
func (m *MockResolver) Lookups() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.lookups...)
}

// Closed reports whether Close was called.
func (m *MockResolver) Closed() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.closed
}

func (m *MockResolver) String() string {
	return "mock resolver"
}

func (m *MockResolver) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}
