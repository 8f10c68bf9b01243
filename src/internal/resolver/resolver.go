package resolver

import (
	"context"
	stderrors "errors"
	"fmt"
	"net/netip"
	"net/url"

	"golang.org/x/time/rate"

	"github.com/maksimkurb/bigip-sd/src/internal/diagnostics"
	"github.com/maksimkurb/bigip-sd/src/internal/errors"
	"github.com/maksimkurb/bigip-sd/src/internal/log"
)

var (
	ErrNoHost      = stderrors.New("URL has no host")
	ErrNoAddresses = stderrors.New("no addresses")
)

// Resolver looks up the addresses of a host name.
type Resolver interface {
	LookupHost(ctx context.Context, host string) ([]netip.Addr, error)
	String() string
	Close() error
}

// Site is a URL whose host resolved to at least one address.
type Site struct {
	URL *url.URL
	// IPs are in the order returned by the lookup.
	IPs []netip.Addr
}

// Options tune ResolveSites.
type Options struct {
	// QueriesPerSecond paces lookups; 0 disables pacing.
	QueriesPerSecond float64
}

// ResolveSites resolves the host of every URL in order. URLs without a host, and
// hosts that fail to resolve, are left out of the result and recorded.
func ResolveSites(ctx context.Context, r Resolver, urls []*url.URL, opts Options) ([]Site, diagnostics.Record) {
	var (
		sites   []Site
		record  diagnostics.Record
		limiter *rate.Limiter
	)
	if opts.QueriesPerSecond > 0 {
		limiter = rate.NewLimiter(rate.Limit(opts.QueriesPerSecond), 1)
	}

	skip := func(u *url.URL, host string, err error) {
		log.Warnf("Could not resolve host %q, skipping %s: %v", host, u, err)
		record.Add(diagnostics.Diagnostic{
			Stage: diagnostics.StageResolve,
			Input: u.String(),
			Err:   err,
		})
	}

	for _, u := range urls {
		host := u.Hostname()
		if host == "" {
			skip(u, host, errors.NewResolveError("cannot resolve "+u.String(), ErrNoHost))
			continue
		}

		if addr, err := netip.ParseAddr(host); err == nil {
			sites = append(sites, Site{URL: u, IPs: []netip.Addr{addr.Unmap()}})
			continue
		}

		if limiter != nil {
			if err := limiter.Wait(ctx); err != nil {
				skip(u, host, errors.NewResolveError("lookup of "+host+" not started", err))
				continue
			}
		}

		addrs, err := r.LookupHost(ctx, host)
		if err == nil && len(addrs) == 0 {
			err = fmt.Errorf("%s: %w", host, ErrNoAddresses)
		}
		if err != nil {
			skip(u, host, errors.NewResolveError("failed to resolve "+host, err))
			continue
		}

		log.Debugf("Resolved %s to %v", host, addrs)
		sites = append(sites, Site{URL: u, IPs: addrs})
	}

	return sites, record
}
