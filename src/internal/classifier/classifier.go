// Package classifier splits resolved sites into those reachable through a BigIP
// range and those that are not.
package classifier

import (
	"net/netip"
	"net/url"

	"github.com/maksimkurb/bigip-sd/src/internal/resolver"
)

// Targets holds the two disjoint groups of site URLs. Both keep resolver order.
type Targets struct {
	Matched   []*url.URL
	Unmatched []*url.URL
}

// Matches reports whether any IPv4 address in addrs lies inside any of subnets.
// IPv4-mapped IPv6 addresses count as IPv4; other IPv6 addresses are ignored.
func Matches(addrs []netip.Addr, subnets []netip.Prefix) bool {
	for _, addr := range addrs {
		addr = addr.Unmap()
		if !addr.Is4() {
			continue
		}
		for _, subnet := range subnets {
			if subnet.Contains(addr) {
				return true
			}
		}
	}
	return false
}

// Classify places every site's URL in exactly one group.
func Classify(sites []resolver.Site, subnets []netip.Prefix) Targets {
	var targets Targets
	for _, site := range sites {
		if Matches(site.IPs, subnets) {
			targets.Matched = append(targets.Matched, site.URL)
		} else {
			targets.Unmatched = append(targets.Unmatched, site.URL)
		}
	}
	return targets
}
