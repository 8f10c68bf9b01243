package commands

import (
	"context"
	"flag"
	"fmt"

	"github.com/maksimkurb/bigip-sd/src/internal/config"
	"github.com/maksimkurb/bigip-sd/src/internal/domain"
	"github.com/maksimkurb/bigip-sd/src/internal/export"
	"github.com/maksimkurb/bigip-sd/src/internal/log"
	"github.com/maksimkurb/bigip-sd/src/internal/resolver"
	"github.com/maksimkurb/bigip-sd/src/internal/service"
	"github.com/maksimkurb/bigip-sd/src/internal/utils"
)

const generateUsage = "generate [-format json|yaml] [-output path] [-diagnostics path] URLS SUBNETS"

func CreateGenerateCommand() *GenerateCommand {
	gc := &GenerateCommand{
		fs: flag.NewFlagSet("generate", flag.ExitOnError),
	}

	gc.fs.StringVar(&gc.Format, "format", "", "Output format: json or yaml (overrides export.format)")
	gc.fs.StringVar(&gc.Output, "output", "", "Output file, supports {{format}} (overrides export.output; default: stdout)")
	gc.fs.StringVar(&gc.DiagnosticsOutput, "diagnostics", "", "Write skipped entries to this TOML file (overrides export.diagnostics_output)")

	return gc
}

type GenerateCommand struct {
	fs  *flag.FlagSet
	ctx *AppContext
	cfg *config.Config

	// Resolver replaces the configured resolver when set.
	Resolver resolver.Resolver

	Format            string
	Output            string
	DiagnosticsOutput string

	urlsPath    string
	subnetsPath string
	format      export.Format
}

func (g *GenerateCommand) Name() string {
	return g.fs.Name()
}

func (g *GenerateCommand) Init(args []string, ctx *AppContext) error {
	g.ctx = ctx

	if err := g.fs.Parse(args); err != nil {
		return err
	}

	paths, err := positionalArgs(g.fs.Args(), generateUsage, 2)
	if err != nil {
		return err
	}
	g.urlsPath, g.subnetsPath = paths[0], paths[1]

	if cfg, err := loadAndValidateConfigOrFail(ctx.ConfigPath); err != nil {
		return err
	} else {
		g.cfg = cfg
	}

	// Flags are relative to the working directory, config values to the config file.
	if g.Format == "" {
		g.Format = g.cfg.Export.Format
	}
	if g.Output == "" {
		g.Output = g.cfg.ResolvePath(g.cfg.Export.Output)
	}
	if g.DiagnosticsOutput == "" {
		g.DiagnosticsOutput = g.cfg.ResolvePath(g.cfg.Export.DiagnosticsOutput)
	}

	if g.format, err = export.ParseFormat(g.Format); err != nil {
		return err
	}

	return nil
}

func (g *GenerateCommand) Run() error {
	deps, err := g.dependencies()
	if err != nil {
		return err
	}
	defer utils.CloseOrWarn(deps)

	svc := service.NewTargetService(deps.Resolver(), g.cfg)
	result, err := svc.Generate(context.Background(), g.urlsPath, g.subnetsPath)
	if err != nil {
		return err
	}

	data, err := export.Encode(result.Records, g.format)
	if err != nil {
		return err
	}

	if g.Output == "" {
		if _, err := g.ctx.stdout().Write(data); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	} else {
		path, err := export.OutputPath(g.Output, g.format)
		if err != nil {
			return err
		}
		if _, err := export.WriteFile(path, data); err != nil {
			return err
		}
	}

	if g.DiagnosticsOutput != "" {
		if err := export.WriteDiagnostics(g.DiagnosticsOutput, result.Diagnostics); err != nil {
			return err
		}
		log.Infof("Written %d diagnostics to '%s'", result.Diagnostics.Len(), g.DiagnosticsOutput)
	}

	return nil
}

func (g *GenerateCommand) dependencies() (*domain.AppDependencies, error) {
	if g.Resolver != nil {
		return domain.NewTestDependencies(g.Resolver), nil
	}
	return domain.NewAppDependencies(g.cfg)
}
