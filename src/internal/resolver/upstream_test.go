package resolver

import (
	"context"
	stderrors "errors"
	"fmt"
	"net"
	"net/netip"
	"strings"
	"testing"
	"time"

	"github.com/miekg/dns"

	"github.com/maksimkurb/bigip-sd/src/internal/mocks"
	"github.com/maksimkurb/bigip-sd/src/internal/resolver/upstreams"
)

func answer(req *dns.Msg, records ...string) *dns.Msg {
	resp := new(dns.Msg)
	resp.SetReply(req)
	for _, r := range records {
		rr, err := dns.NewRR(fmt.Sprintf("%s 60 IN %s", req.Question[0].Name, r))
		if err != nil {
			panic(err)
		}
		resp.Answer = append(resp.Answer, rr)
	}
	return resp
}

func TestUpstreamResolver_LookupHost(t *testing.T) {
	upstream := &mocks.MockUpstream{
		QueryFunc: func(ctx context.Context, req *dns.Msg) (*dns.Msg, error) {
			switch req.Question[0].Qtype {
			case dns.TypeA:
				return answer(req, "CNAME edge.example.", "A 192.168.0.5", "A 192.168.0.6"), nil
			case dns.TypeAAAA:
				return answer(req, "AAAA 2001:db8::5"), nil
			}
			return answer(req), nil
		},
	}

	r := NewUpstreamResolver(upstream, true)
	got, err := r.LookupHost(context.Background(), "www.example.com")
	if err != nil {
		t.Fatalf("LookupHost() error: %v", err)
	}

	want := addrs("192.168.0.5", "192.168.0.6", "2001:db8::5")
	if len(got) != len(want) {
		t.Fatalf("LookupHost() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("address %d = %s, want %s", i, got[i], want[i])
		}
	}

	if len(upstream.Queries) != 2 || upstream.Queries[0].Question[0].Name != "www.example.com." {
		t.Errorf("Expected A and AAAA queries for the FQDN, got %d queries", len(upstream.Queries))
	}
	if !upstream.Queries[0].RecursionDesired {
		t.Error("Expected recursion desired")
	}
}

func TestUpstreamResolver_AAAADisabled(t *testing.T) {
	upstream := &mocks.MockUpstream{
		QueryFunc: func(ctx context.Context, req *dns.Msg) (*dns.Msg, error) {
			return answer(req, "A 10.0.0.1"), nil
		},
	}

	r := NewUpstreamResolver(upstream, false)
	if _, err := r.LookupHost(context.Background(), "www.example.com"); err != nil {
		t.Fatalf("LookupHost() error: %v", err)
	}
	if len(upstream.Queries) != 1 || upstream.Queries[0].Question[0].Qtype != dns.TypeA {
		t.Errorf("Expected a single A query, got %d queries", len(upstream.Queries))
	}
}

func TestUpstreamResolver_Errors(t *testing.T) {
	transportErr := stderrors.New("connection refused")

	tests := []struct {
		name   string
		query  func(ctx context.Context, req *dns.Msg) (*dns.Msg, error)
		check  func(t *testing.T, err error)
		nQuery int
	}{
		{
			name: "nxdomain",
			query: func(ctx context.Context, req *dns.Msg) (*dns.Msg, error) {
				resp := new(dns.Msg)
				resp.SetRcode(req, dns.RcodeNameError)
				return resp, nil
			},
			check: func(t *testing.T, err error) {
				var dnsErr *net.DNSError
				if !stderrors.As(err, &dnsErr) || !dnsErr.IsNotFound {
					t.Errorf("Expected not-found DNS error, got %v", err)
				}
			},
			nQuery: 1,
		},
		{
			name: "servfail",
			query: func(ctx context.Context, req *dns.Msg) (*dns.Msg, error) {
				resp := new(dns.Msg)
				resp.SetRcode(req, dns.RcodeServerFailure)
				return resp, nil
			},
			check: func(t *testing.T, err error) {
				if err == nil || !strings.Contains(err.Error(), "SERVFAIL") {
					t.Errorf("Expected error naming SERVFAIL, got %v", err)
				}
			},
			nQuery: 2,
		},
		{
			name: "no answers",
			query: func(ctx context.Context, req *dns.Msg) (*dns.Msg, error) {
				return answer(req), nil
			},
			check: func(t *testing.T, err error) {
				if !stderrors.Is(err, ErrNoAddresses) {
					t.Errorf("Expected ErrNoAddresses, got %v", err)
				}
			},
			nQuery: 2,
		},
		{
			name: "transport error",
			query: func(ctx context.Context, req *dns.Msg) (*dns.Msg, error) {
				return nil, transportErr
			},
			check: func(t *testing.T, err error) {
				if !stderrors.Is(err, transportErr) {
					t.Errorf("Expected transport error, got %v", err)
				}
			},
			nQuery: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			upstream := &mocks.MockUpstream{QueryFunc: tt.query}
			r := NewUpstreamResolver(upstream, true)

			got, err := r.LookupHost(context.Background(), "www.example.com")
			if got != nil {
				t.Errorf("Expected no addresses, got %v", got)
			}
			tt.check(t, err)
			if len(upstream.Queries) != tt.nQuery {
				t.Errorf("Expected %d queries, got %d", tt.nQuery, len(upstream.Queries))
			}
		})
	}
}

func TestUpstreamResolver_PartialAAAAFailure(t *testing.T) {
	upstream := &mocks.MockUpstream{
		QueryFunc: func(ctx context.Context, req *dns.Msg) (*dns.Msg, error) {
			if req.Question[0].Qtype == dns.TypeAAAA {
				return nil, stderrors.New("timeout")
			}
			return answer(req, "A 10.0.0.1"), nil
		},
	}

	got, err := NewUpstreamResolver(upstream, true).LookupHost(context.Background(), "www.example.com")
	if err != nil {
		t.Fatalf("Expected A answers to win over AAAA failure, got %v", err)
	}
	if len(got) != 1 || got[0] != netip.MustParseAddr("10.0.0.1") {
		t.Errorf("Unexpected addresses: %v", got)
	}
}

func startTestDNSServer(t *testing.T) string {
	t.Helper()

	pc, err := net.ListenPacket("udp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("failed to listen packet: %v", err)
	}

	started := make(chan struct{})
	server := &dns.Server{
		PacketConn: pc,
		Handler: dns.HandlerFunc(func(w dns.ResponseWriter, r *dns.Msg) {
			q := r.Question[0]
			if q.Name != "espn.com." {
				resp := new(dns.Msg)
				resp.SetRcode(r, dns.RcodeNameError)
				_ = w.WriteMsg(resp)
				return
			}
			if q.Qtype == dns.TypeA {
				_ = w.WriteMsg(answer(r, "A 199.181.132.250"))
				return
			}
			_ = w.WriteMsg(answer(r))
		}),
		NotifyStartedFunc: func() { close(started) },
	}

	go func() {
		_ = server.ActivateAndServe()
	}()
	<-started
	t.Cleanup(func() { _ = server.Shutdown() })

	return pc.LocalAddr().String()
}

func TestResolveSites_ThroughUDPUpstream(t *testing.T) {
	addr := startTestDNSServer(t)

	multi, err := upstreams.ParseUpstreams([]string{"udp://" + addr}, time.Second)
	if err != nil {
		t.Fatalf("ParseUpstreams() error: %v", err)
	}
	r := NewUpstreamResolver(multi, true)
	defer r.Close()

	sites, record := ResolveSites(context.Background(), r, mustURLs(t, "http://espn.com", "https://nx.example"), Options{})

	if len(sites) != 1 || sites[0].URL.String() != "http://espn.com" {
		t.Fatalf("Expected only espn.com to resolve, got %v", sites)
	}
	if len(sites[0].IPs) != 1 || sites[0].IPs[0] != netip.MustParseAddr("199.181.132.250") {
		t.Errorf("Unexpected IPs: %v", sites[0].IPs)
	}
	if record.Len() != 1 || record.Entries[0].Input != "https://nx.example" {
		t.Errorf("Expected one diagnostic for nx.example, got %v", record.Entries)
	}
}

func TestSystemResolver_String(t *testing.T) {
	r := NewSystemResolver()
	if r.String() != "system resolver" {
		t.Errorf("Unexpected String(): %s", r.String())
	}
	if err := r.Close(); err != nil {
		t.Errorf("Close() error: %v", err)
	}
}
