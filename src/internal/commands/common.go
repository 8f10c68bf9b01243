package commands

import (
	"fmt"
	"io"
	"os"

	"github.com/maksimkurb/bigip-sd/src/internal/config"
	"github.com/maksimkurb/bigip-sd/src/internal/diagnostics"
	"github.com/maksimkurb/bigip-sd/src/internal/log"
)

type Runner interface {
	Init(args []string, globalArgs *AppContext) error
	Run() error
	Name() string
}

type AppContext struct {
	ConfigPath string
	Verbose    bool
	// Stdout receives command output; nil means os.Stdout.
	Stdout io.Writer
}

func (c *AppContext) stdout() io.Writer {
	if c.Stdout == nil {
		return os.Stdout
	}
	return c.Stdout
}

// loadAndValidateConfigOrFail loads configuration from file and validates it.
// An empty path yields the built-in defaults.
func loadAndValidateConfigOrFail(configPath string) (*config.Config, error) {
	if configPath == "" {
		log.Debugf("No configuration file given, using defaults")
		return config.DefaultConfig(), nil
	}

	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	if err := cfg.ValidateConfig(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// positionalArgs returns exactly n positional arguments or a usage error.
func positionalArgs(args []string, usage string, n int) ([]string, error) {
	if len(args) != n {
		return nil, fmt.Errorf("expected %d argument(s), got %d; usage: %s", n, len(args), usage)
	}
	return args, nil
}

func printDiagnostics(w io.Writer, record diagnostics.Record) {
	if record.Len() == 0 {
		return
	}
	fmt.Fprintf(w, "Skipped entries (%d):\n", record.Len())
	for _, d := range record.Entries {
		fmt.Fprintf(w, "  - %s\n", d)
	}
}
