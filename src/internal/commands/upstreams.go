package commands

import (
	"flag"
	"fmt"

	"github.com/maksimkurb/bigip-sd/src/internal/config"
	"github.com/maksimkurb/bigip-sd/src/internal/resolver/upstreams"
	"github.com/maksimkurb/bigip-sd/src/internal/utils"
)

func CreateUpstreamsCommand() *UpstreamsCommand {
	return &UpstreamsCommand{
		fs: flag.NewFlagSet("upstreams", flag.ExitOnError),
	}
}

// UpstreamsCommand shows which resolver lookups go to.
type UpstreamsCommand struct {
	fs  *flag.FlagSet
	ctx *AppContext
	cfg *config.Config
}

func (g *UpstreamsCommand) Name() string {
	return g.fs.Name()
}

func (g *UpstreamsCommand) Init(args []string, ctx *AppContext) error {
	g.ctx = ctx

	if err := g.fs.Parse(args); err != nil {
		return err
	}

	if cfg, err := loadAndValidateConfigOrFail(ctx.ConfigPath); err != nil {
		return err
	} else {
		g.cfg = cfg
	}

	return nil
}

func (g *UpstreamsCommand) Run() error {
	out := g.ctx.stdout()

	if !g.cfg.Resolver.UseUpstreams() {
		fmt.Fprintln(out, "System resolver")
		return nil
	}

	fmt.Fprintln(out, "Upstreams:")
	for _, upstreamURL := range g.cfg.Resolver.Upstreams {
		upstream, err := upstreams.ParseUpstream(upstreamURL, g.cfg.Resolver.Timeout())
		if err != nil {
			fmt.Fprintf(out, "  - Error parsing %s: %v\n", upstreamURL, err)
			continue
		}
		fmt.Fprintf(out, "  - %s\n", upstream)
		utils.CloseOrWarn(upstream)
	}

	aaaa := "enabled"
	if !g.cfg.Resolver.IsQueryAAAA() {
		aaaa = "disabled"
	}
	fmt.Fprintf(out, "AAAA queries: %s\n", aaaa)

	return nil
}
