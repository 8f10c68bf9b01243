package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/maksimkurb/bigip-sd/src/internal/commands"
	"github.com/maksimkurb/bigip-sd/src/internal/log"
)

var (
	version = "dev"
	commit  = "n/a"
	date    = "n/a"
)

func main() {
	ctx := &commands.AppContext{}

	// Define flags
	flag.StringVar(&ctx.ConfigPath, "config", "", "Path to configuration file (default: built-in defaults)")
	flag.BoolVar(&ctx.Verbose, "verbose", false, "Enable debug logging")

	// Custom usage message
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "BigIP Prometheus target generator\n")
		fmt.Fprintf(os.Stderr, "Version: %s (Commit: %s, Date: %s)\n\n", version, commit, date)
		fmt.Fprintf(os.Stderr, "Usage: %s [options] [command] <args>\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Commands:\n")
		fmt.Fprintf(os.Stderr, "  generate URLS SUBNETS   Resolve and classify URLs, write file_sd targets (default command)\n")
		fmt.Fprintf(os.Stderr, "  check URLS SUBNETS      Parse both lists and report skipped lines, without DNS\n")
		fmt.Fprintf(os.Stderr, "  resolve URLS            Resolve URL hosts and print their addresses\n")
		fmt.Fprintf(os.Stderr, "  upstreams               Show the effective DNS resolver\n")
		fmt.Fprintf(os.Stderr, "  config                  Print the effective configuration\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
	}

	flag.Parse()

	// stdout carries the exported targets
	log.SetForceStdErr(true)
	if ctx.Verbose {
		log.SetVerbose(true)
	}

	cmds := []commands.Runner{
		commands.CreateGenerateCommand(),
		commands.CreateCheckCommand(),
		commands.CreateResolveCommand(),
		commands.CreateUpstreamsCommand(),
		commands.CreateConfigCommand(),
	}

	args := flag.Args()

	if len(args) < 1 {
		flag.Usage()
		os.Exit(1)
	}

	// "bigip-sd URLS SUBNETS" is shorthand for "bigip-sd generate URLS SUBNETS"
	cmd := cmds[0]
	cmdArgs := args
	for _, c := range cmds {
		if c.Name() == args[0] {
			cmd = c
			cmdArgs = args[1:]
			break
		}
	}

	if err := cmd.Init(cmdArgs, ctx); err != nil {
		log.Fatalf("Failed to initialize command: %v", err)
	}

	if err := cmd.Run(); err != nil {
		log.Fatalf("Failed to run command: %v", err)
	}
}
