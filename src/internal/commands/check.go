package commands

import (
	"flag"
	"fmt"

	"github.com/maksimkurb/bigip-sd/src/internal/config"
	"github.com/maksimkurb/bigip-sd/src/internal/service"
)

const checkUsage = "check URLS SUBNETS"

func CreateCheckCommand() *CheckCommand {
	return &CheckCommand{
		fs: flag.NewFlagSet("check", flag.ExitOnError),
	}
}

// CheckCommand parses both lists and reports what would be skipped, without DNS.
type CheckCommand struct {
	fs  *flag.FlagSet
	ctx *AppContext
	cfg *config.Config

	urlsPath    string
	subnetsPath string
}

func (g *CheckCommand) Name() string {
	return g.fs.Name()
}

func (g *CheckCommand) Init(args []string, ctx *AppContext) error {
	g.ctx = ctx

	if err := g.fs.Parse(args); err != nil {
		return err
	}

	paths, err := positionalArgs(g.fs.Args(), checkUsage, 2)
	if err != nil {
		return err
	}
	g.urlsPath, g.subnetsPath = paths[0], paths[1]

	if cfg, err := loadAndValidateConfigOrFail(ctx.ConfigPath); err != nil {
		return err
	} else {
		g.cfg = cfg
	}

	return nil
}

func (g *CheckCommand) Run() error {
	svc := service.NewTargetService(nil, g.cfg)
	result, err := svc.Check(g.urlsPath, g.subnetsPath)
	if err != nil {
		return err
	}

	out := g.ctx.stdout()
	fmt.Fprintf(out, "URLs:    %d valid (%s)\n", result.Stats.URLs, g.urlsPath)
	fmt.Fprintf(out, "Subnets: %d valid (%s)\n", result.Stats.Subnets, g.subnetsPath)
	printDiagnostics(out, result.Diagnostics)

	return nil
}
