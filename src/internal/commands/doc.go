// Package commands implements CLI command handlers for bigip-sd.
//
// Each command implements the Runner interface and delegates business logic to
// the service layer.
//
// # Command Structure
//
// All commands follow a consistent pattern:
//   - Init(): Parse arguments and load configuration
//   - Run(): Execute command using service layer
//   - Name(): Return command name for routing
//
// # Available Commands
//
//   - generate: Resolve and classify URLs and write the file_sd document
//   - check: Parse both input lists without resolving anything
//   - resolve: Resolve URL hosts and print their addresses
//   - upstreams: Show the effective DNS resolver
//   - config: Print the effective configuration
//
// # Example Usage
//
//	cmd := commands.CreateGenerateCommand()
//	ctx := &commands.AppContext{
//	    ConfigPath: "/etc/bigip-sd/config.toml",
//	    Verbose:    true,
//	}
//	if err := cmd.Init([]string{"urls.txt", "subnets.txt"}, ctx); err != nil {
//	    log.Fatalf("%v", err)
//	}
//	if err := cmd.Run(); err != nil {
//	    log.Fatalf("%v", err)
//	}
package commands
