package resolver

import (
	"context"
	stderrors "errors"
	"net"
	"net/netip"
	"net/url"
	"testing"
	"time"

	"github.com/maksimkurb/bigip-sd/src/internal/diagnostics"
	"github.com/maksimkurb/bigip-sd/src/internal/errors"
	"github.com/maksimkurb/bigip-sd/src/internal/log"
	"github.com/maksimkurb/bigip-sd/src/internal/mocks"
)

func init() {
	log.DisableLogs()
}

func mustURLs(t *testing.T, raw ...string) []*url.URL {
	t.Helper()
	urls := make([]*url.URL, 0, len(raw))
	for _, r := range raw {
		u, err := url.Parse(r)
		if err != nil {
			t.Fatalf("bad fixture URL %q: %v", r, err)
		}
		urls = append(urls, u)
	}
	return urls
}

func addrs(s ...string) []netip.Addr {
	out := make([]netip.Addr, 0, len(s))
	for _, a := range s {
		out = append(out, netip.MustParseAddr(a))
	}
	return out
}

func TestResolveSites_PartialFailure(t *testing.T) {
	mock := mocks.NewMockResolver(map[string][]netip.Addr{
		"google.com": addrs("142.250.74.46", "2a00:1450:400f:80d::200e"),
		"espn.com":   addrs("199.181.132.250"),
	})
	urls := mustURLs(t,
		"https://google.com",
		"https://nx.example",
		"http://espn.com/scores",
	)

	sites, record := ResolveSites(context.Background(), mock, urls, Options{})

	if len(sites) != 2 {
		t.Fatalf("Expected 2 sites, got %d", len(sites))
	}
	if sites[0].URL != urls[0] || sites[1].URL != urls[2] {
		t.Errorf("Expected sites to keep the original URL values in order")
	}
	if len(sites[0].IPs) != 2 || sites[0].IPs[1] != netip.MustParseAddr("2a00:1450:400f:80d::200e") {
		t.Errorf("Expected lookup order preserved, got %v", sites[0].IPs)
	}

	if record.Len() != 1 {
		t.Fatalf("Expected 1 diagnostic, got %d", record.Len())
	}
	d := record.Entries[0]
	if d.Stage != diagnostics.StageResolve || d.Input != "https://nx.example" {
		t.Errorf("Unexpected diagnostic: %+v", d)
	}
	if errors.CodeOf(d.Err) != errors.ErrCodeResolve {
		t.Errorf("Expected RESOLVE_ERROR, got %v", d.Err)
	}
	var dnsErr *net.DNSError
	if !stderrors.As(d.Err, &dnsErr) || !dnsErr.IsNotFound {
		t.Errorf("Expected underlying not-found error, got %v", d.Err)
	}
}

func TestResolveSites_MissingHost(t *testing.T) {
	mock := mocks.NewMockResolver(nil)
	urls := mustURLs(t, "mailto:ops@example.com", "file:///etc/hosts")

	sites, record := ResolveSites(context.Background(), mock, urls, Options{})

	if len(sites) != 0 {
		t.Errorf("Expected no sites, got %d", len(sites))
	}
	if record.Len() != 2 {
		t.Fatalf("Expected a diagnostic per host-less URL, got %d", record.Len())
	}
	for _, d := range record.Entries {
		if !stderrors.Is(d.Err, ErrNoHost) {
			t.Errorf("Expected ErrNoHost, got %v", d.Err)
		}
	}
	if len(mock.Lookups()) != 0 {
		t.Errorf("Expected no lookups, got %v", mock.Lookups())
	}
}

func TestResolveSites_IPLiteralHosts(t *testing.T) {
	mock := mocks.NewMockResolver(nil)
	urls := mustURLs(t, "http://192.168.0.5:8080/", "http://[::ffff:10.0.0.1]/", "http://[2001:db8::1]/")

	sites, record := ResolveSites(context.Background(), mock, urls, Options{})

	if record.Len() != 0 {
		t.Errorf("Expected no diagnostics, got %v", record.Entries)
	}
	want := addrs("192.168.0.5", "10.0.0.1", "2001:db8::1")
	if len(sites) != len(want) {
		t.Fatalf("Expected %d sites, got %d", len(want), len(sites))
	}
	for i, site := range sites {
		if len(site.IPs) != 1 || site.IPs[0] != want[i] {
			t.Errorf("Site %d IPs = %v, want [%s]", i, site.IPs, want[i])
		}
	}
	if len(mock.Lookups()) != 0 {
		t.Errorf("Expected IP literals to skip lookups, got %v", mock.Lookups())
	}
}

func TestResolveSites_EmptyAnswer(t *testing.T) {
	mock := mocks.NewMockResolver(map[string][]netip.Addr{"empty.example": {}})

	sites, record := ResolveSites(context.Background(), mock, mustURLs(t, "https://empty.example"), Options{})

	if len(sites) != 0 {
		t.Errorf("Expected no sites for an empty answer, got %d", len(sites))
	}
	if record.Len() != 1 || !stderrors.Is(record.Entries[0].Err, ErrNoAddresses) {
		t.Errorf("Expected ErrNoAddresses diagnostic, got %v", record.Entries)
	}
}

func TestResolveSites_NoDeduplication(t *testing.T) {
	mock := mocks.NewMockResolver(map[string][]netip.Addr{"espn.com": addrs("199.181.132.250")})
	urls := mustURLs(t, "http://espn.com", "http://espn.com")

	sites, _ := ResolveSites(context.Background(), mock, urls, Options{})

	if len(sites) != 2 {
		t.Errorf("Expected duplicates to resolve independently, got %d sites", len(sites))
	}
	if len(mock.Lookups()) != 2 {
		t.Errorf("Expected one lookup per URL, got %d", len(mock.Lookups()))
	}
}

func TestResolveSites_Pacing(t *testing.T) {
	mock := mocks.NewMockResolver(map[string][]netip.Addr{
		"a.example": addrs("10.0.0.1"),
		"b.example": addrs("10.0.0.2"),
		"c.example": addrs("10.0.0.3"),
	})
	urls := mustURLs(t, "http://a.example", "http://b.example", "http://c.example")

	start := time.Now()
	sites, _ := ResolveSites(context.Background(), mock, urls, Options{QueriesPerSecond: 20})
	elapsed := time.Since(start)

	if len(sites) != 3 {
		t.Fatalf("Expected 3 sites, got %d", len(sites))
	}
	// burst of one: the second and third lookups each wait ~50ms
	if elapsed < 80*time.Millisecond {
		t.Errorf("Expected paced lookups to take at least 80ms, took %v", elapsed)
	}
}

func TestResolveSites_CanceledContext(t *testing.T) {
	mock := mocks.NewMockResolver(map[string][]netip.Addr{"a.example": addrs("10.0.0.1")})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	sites, record := ResolveSites(ctx, mock, mustURLs(t, "http://a.example"), Options{QueriesPerSecond: 1})

	if len(sites) != 0 || record.Len() != 1 {
		t.Errorf("Expected canceled pacing to record a diagnostic, got %d sites %d diagnostics", len(sites), record.Len())
	}
}
