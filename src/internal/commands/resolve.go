package commands

import (
	"context"
	"flag"
	"fmt"
	"strings"

	"github.com/maksimkurb/bigip-sd/src/internal/config"
	"github.com/maksimkurb/bigip-sd/src/internal/domain"
	"github.com/maksimkurb/bigip-sd/src/internal/resolver"
	"github.com/maksimkurb/bigip-sd/src/internal/service"
	"github.com/maksimkurb/bigip-sd/src/internal/utils"
)

const resolveUsage = "resolve URLS"

func CreateResolveCommand() *ResolveCommand {
	return &ResolveCommand{
		fs: flag.NewFlagSet("resolve", flag.ExitOnError),
	}
}

// ResolveCommand prints every resolved URL with its addresses.
type ResolveCommand struct {
	fs  *flag.FlagSet
	ctx *AppContext
	cfg *config.Config

	// Resolver replaces the configured resolver when set.
	Resolver resolver.Resolver

	urlsPath string
}

func (g *ResolveCommand) Name() string {
	return g.fs.Name()
}

func (g *ResolveCommand) Init(args []string, ctx *AppContext) error {
	g.ctx = ctx

	if err := g.fs.Parse(args); err != nil {
		return err
	}

	paths, err := positionalArgs(g.fs.Args(), resolveUsage, 1)
	if err != nil {
		return err
	}
	g.urlsPath = paths[0]

	if cfg, err := loadAndValidateConfigOrFail(ctx.ConfigPath); err != nil {
		return err
	} else {
		g.cfg = cfg
	}

	return nil
}

func (g *ResolveCommand) Run() error {
	var deps *domain.AppDependencies
	if g.Resolver != nil {
		deps = domain.NewTestDependencies(g.Resolver)
	} else {
		var err error
		if deps, err = domain.NewAppDependencies(g.cfg); err != nil {
			return err
		}
	}
	defer utils.CloseOrWarn(deps)

	svc := service.NewTargetService(deps.Resolver(), g.cfg)
	sites, record, err := svc.Resolve(context.Background(), g.urlsPath)
	if err != nil {
		return err
	}

	out := g.ctx.stdout()
	for _, site := range sites {
		ips := make([]string, 0, len(site.IPs))
		for _, ip := range site.IPs {
			ips = append(ips, ip.String())
		}
		fmt.Fprintf(out, "%s\t%s\n", site.URL, strings.Join(ips, ", "))
	}
	printDiagnostics(out, record)

	return nil
}
