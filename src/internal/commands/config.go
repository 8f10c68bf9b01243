package commands

import (
	"flag"
	"fmt"

	"github.com/maksimkurb/bigip-sd/src/internal/config"
)

func CreateConfigCommand() *ConfigCommand {
	return &ConfigCommand{
		fs: flag.NewFlagSet("config", flag.ExitOnError),
	}
}

// ConfigCommand prints the effective configuration as TOML.
type ConfigCommand struct {
	fs  *flag.FlagSet
	ctx *AppContext
	cfg *config.Config
}

func (g *ConfigCommand) Name() string {
	return g.fs.Name()
}

func (g *ConfigCommand) Init(args []string, ctx *AppContext) error {
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

func (g *ConfigCommand) Run() error {
	buf, err := g.cfg.SerializeConfig()
	if err != nil {
		return fmt.Errorf("failed to serialize configuration: %w", err)
	}

	_, err = buf.WriteTo(g.ctx.stdout())
	return err
}
