package mocks

import (
	"context"

	"github.com/miekg/dns"
)

// MockUpstream is a mock implementation of the upstreams.Upstream interface.
//
// If QueryFunc is nil, Query replies with an empty successful answer.
type MockUpstream struct {
	// QueryFunc is called by Query if not nil
	QueryFunc func(ctx context.Context, req *dns.Msg) (*dns.Msg, error)

	// Domain is returned by GetDomain
	Domain string

	// Queries collects every request passed to Query
	Queries []*dns.Msg
}

func (m *MockUpstream) Query(ctx context.Context, req *dns.Msg) (*dns.Msg, error) {
	m.Queries = append(m.Queries, req)
	if m.QueryFunc != nil {
		return m.QueryFunc(ctx, req)
	}
	resp := new(dns.Msg)
	resp.SetReply(req)
	return resp, nil
}

func (m *MockUpstream) Close() error {
	return nil
}

func (m *MockUpstream) GetDomain() string {
	return m.Domain
}

func (m *MockUpstream) MatchesDomain(domain string) bool {
	return m.Domain == "" || dns.IsSubDomain(m.Domain, domain)
}

func (m *MockUpstream) String() string {
	return "mock upstream"
}
