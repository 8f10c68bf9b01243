package classifier

import (
	"net/netip"
	"net/url"
	"testing"

	"github.com/maksimkurb/bigip-sd/src/internal/resolver"
)

func prefixes(s ...string) []netip.Prefix {
	out := make([]netip.Prefix, 0, len(s))
	for _, p := range s {
		out = append(out, netip.MustParsePrefix(p))
	}
	return out
}

func addrs(s ...string) []netip.Addr {
	out := make([]netip.Addr, 0, len(s))
	for _, a := range s {
		out = append(out, netip.MustParseAddr(a))
	}
	return out
}

func site(t *testing.T, rawURL string, ips ...string) resolver.Site {
	t.Helper()
	u, err := url.Parse(rawURL)
	if err != nil {
		t.Fatalf("bad fixture URL %q: %v", rawURL, err)
	}
	return resolver.Site{URL: u, IPs: addrs(ips...)}
}

func TestMatches(t *testing.T) {
	tests := []struct {
		name    string
		addrs   []netip.Addr
		subnets []netip.Prefix
		want    bool
	}{
		{"outside", addrs("199.181.132.250"), prefixes("192.168.0.0/24"), false},
		{"inside", addrs("192.168.0.5"), prefixes("192.168.0.0/24"), true},
		{"any address", addrs("8.8.8.8", "192.168.0.5"), prefixes("192.168.0.0/24"), true},
		{"any subnet", addrs("10.1.2.3"), prefixes("192.168.0.0/24", "172.16.0.0/24", "10.0.0.0/8"), true},
		{"slash 32 equal", addrs("192.168.0.5"), prefixes("192.168.0.5/32"), true},
		{"slash 32 other", addrs("192.168.0.6"), prefixes("192.168.0.5/32"), false},
		{"first outside /24", addrs("192.168.1.0"), prefixes("192.168.0.0/24"), false},
		{"last inside /24", addrs("192.168.0.255"), prefixes("192.168.0.0/24"), true},
		{"one bit outside /23", addrs("192.168.2.0"), prefixes("192.168.0.0/23"), false},
		{"host bits in subnet", addrs("192.168.0.200"), prefixes("192.168.0.5/24"), true},
		{"default route", addrs("1.1.1.1"), prefixes("0.0.0.0/0"), true},
		{"ipv4 mapped", addrs("::ffff:192.168.0.5"), prefixes("192.168.0.0/24"), true},
		{"ipv6 only", addrs("2001:db8::1"), prefixes("0.0.0.0/0"), false},
		{"no subnets", addrs("192.168.0.5"), nil, false},
		{"no addresses", nil, prefixes("0.0.0.0/0"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Matches(tt.addrs, tt.subnets); got != tt.want {
				t.Errorf("Matches(%v, %v) = %v, want %v", tt.addrs, tt.subnets, got, tt.want)
			}
		})
	}
}

func TestMatches_OrderIndependent(t *testing.T) {
	ips := addrs("192.168.0.5")
	orders := [][]netip.Prefix{
		prefixes("192.168.0.0/24", "172.16.0.0/24", "10.0.0.0/8"),
		prefixes("172.16.0.0/24", "192.168.0.0/24", "10.0.0.0/8"),
		prefixes("10.0.0.0/8", "172.16.0.0/24", "192.168.0.0/24"),
	}

	for _, subnets := range orders {
		if !Matches(ips, subnets) {
			t.Errorf("Expected match regardless of position in %v", subnets)
		}
	}
}

func TestClassify(t *testing.T) {
	sites := []resolver.Site{
		site(t, "http://espn.com", "199.181.132.250"),
		site(t, "https://internal.example", "192.168.0.5"),
		site(t, "https://v6.example", "2001:db8::1"),
		site(t, "https://mixed.example", "2001:db8::2", "10.20.30.40"),
	}
	subnets := prefixes("192.168.0.0/24", "172.16.0.0/24", "10.0.0.0/8")

	targets := Classify(sites, subnets)

	wantMatched := []string{"https://internal.example", "https://mixed.example"}
	wantUnmatched := []string{"http://espn.com", "https://v6.example"}

	assertURLs(t, "matched", targets.Matched, wantMatched)
	assertURLs(t, "unmatched", targets.Unmatched, wantUnmatched)
}

func TestClassify_CoverageAndDisjointness(t *testing.T) {
	sites := []resolver.Site{
		site(t, "http://a.example", "10.0.0.1"),
		site(t, "http://b.example", "11.0.0.1"),
		site(t, "http://a.example", "10.0.0.1"),
		site(t, "http://c.example", "10.255.255.255"),
	}

	targets := Classify(sites, prefixes("10.0.0.0/8"))

	if len(targets.Matched)+len(targets.Unmatched) != len(sites) {
		t.Fatalf("Expected every site in exactly one group, got %d + %d for %d sites",
			len(targets.Matched), len(targets.Unmatched), len(sites))
	}

	inMatched := make(map[*url.URL]bool)
	for _, u := range targets.Matched {
		inMatched[u] = true
	}
	for _, u := range targets.Unmatched {
		if inMatched[u] {
			t.Errorf("URL %s present in both groups", u)
		}
	}
	for _, s := range sites {
		found := inMatched[s.URL]
		for _, u := range targets.Unmatched {
			if u == s.URL {
				found = true
			}
		}
		if !found {
			t.Errorf("Site %s missing from both groups", s.URL)
		}
	}
}

func TestClassify_Idempotent(t *testing.T) {
	sites := []resolver.Site{
		site(t, "http://espn.com", "199.181.132.250"),
		site(t, "https://internal.example", "192.168.0.5"),
	}
	subnets := prefixes("192.168.0.0/24")

	first := Classify(sites, subnets)
	second := Classify(sites, subnets)

	assertURLs(t, "matched", second.Matched, urlStrings(first.Matched))
	assertURLs(t, "unmatched", second.Unmatched, urlStrings(first.Unmatched))
}

func TestClassify_Empty(t *testing.T) {
	targets := Classify(nil, prefixes("10.0.0.0/8"))
	if len(targets.Matched) != 0 || len(targets.Unmatched) != 0 {
		t.Errorf("Expected empty groups, got %+v", targets)
	}
}

func urlStrings(urls []*url.URL) []string {
	out := make([]string, 0, len(urls))
	for _, u := range urls {
		out = append(out, u.String())
	}
	return out
}

func assertURLs(t *testing.T, group string, got []*url.URL, want []string) {
	t.Helper()
	gotStrings := urlStrings(got)
	if len(gotStrings) != len(want) {
		t.Fatalf("%s = %v, want %v", group, gotStrings, want)
	}
	for i := range want {
		if gotStrings[i] != want[i] {
			t.Errorf("%s[%d] = %s, want %s", group, i, gotStrings[i], want[i])
		}
	}
}
