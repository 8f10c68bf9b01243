// Package resolver turns validated URLs into resolved sites.
//
// Each URL's host is looked up once, sequentially, in input order. A lookup that
// fails or returns no addresses drops the URL from the result and records a
// diagnostic; it never aborts the run. Lookups are not retried or cached.
//
// Two Resolver implementations exist: SystemResolver uses the operating
// system's resolver, UpstreamResolver queries configured DNS servers over UDP or
// DNS-over-HTTPS.
//
// # Example Usage
//
//	r := resolver.NewSystemResolver()
//	sites, diags := resolver.ResolveSites(ctx, r, urls.URLs, resolver.Options{})
//	for _, site := range sites {
//	    fmt.Println(site.URL, site.IPs)
//	}
package resolver
