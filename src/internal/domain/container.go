// Package domain wires the runtime dependencies of bigip-sd.
package domain

import (
	"github.com/maksimkurb/bigip-sd/src/internal/config"
	"github.com/maksimkurb/bigip-sd/src/internal/errors"
	"github.com/maksimkurb/bigip-sd/src/internal/log"
	"github.com/maksimkurb/bigip-sd/src/internal/resolver"
	"github.com/maksimkurb/bigip-sd/src/internal/resolver/upstreams"
)

// AppDependencies is a dependency injection container that holds all application dependencies.
//
// Usage:
//
//	deps, err := domain.NewAppDependencies(cfg)
//	if err != nil {
//	    return err
//	}
//	defer deps.Close()
//	addrs, err := deps.Resolver().LookupHost(ctx, "example.com")
type AppDependencies struct {
	resolver resolver.Resolver
}

// NewAppDependencies creates a new dependency container with production implementations.
//
// The system resolver is used unless the configuration lists upstreams. For
// testing, use NewTestDependencies.
func NewAppDependencies(cfg *config.Config) (*AppDependencies, error) {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}

	if !cfg.Resolver.UseUpstreams() {
		log.Debugf("Using system resolver")
		return &AppDependencies{resolver: resolver.NewSystemResolver()}, nil
	}

	multi, err := upstreams.ParseUpstreams(cfg.Resolver.Upstreams, cfg.Resolver.Timeout())
	if err != nil {
		return nil, errors.NewConfigError("failed to create DNS upstreams", err)
	}
	r := resolver.NewUpstreamResolver(multi, cfg.Resolver.IsQueryAAAA())
	log.Debugf("Using %s", r)

	return &AppDependencies{resolver: r}, nil
}

// NewTestDependencies creates a dependency container around the given resolver.
func NewTestDependencies(r resolver.Resolver) *AppDependencies {
	return &AppDependencies{resolver: r}
}

// Resolver returns the host resolver.
func (d *AppDependencies) Resolver() resolver.Resolver {
	return d.resolver
}

// Close releases the resolver.
func (d *AppDependencies) Close() error {
	if d.resolver == nil {
		return nil
	}
	return d.resolver.Close()
}
