// Package config handles the optional TOML configuration file of bigip-sd.
//
// Without a configuration file the tool runs with built-in defaults: the system
// resolver, JSON output to stdout and the label location="BigIP" on matched
// targets. A configuration file can override any of these.
//
// # Configuration Structure
//
//	[resolver]
//	upstreams = ["udp://10.0.0.53", "https://dns.google/dns-query"]
//	timeout_seconds = 5
//	query_aaaa = true
//	queries_per_second = 0
//
//	[export]
//	format = "json"
//	output = "/etc/prometheus/sd/bigip.{{format}}"
//	diagnostics_output = ""
//
//	[export.matched_labels]
//	location = "BigIP"
//
//	[export.unmatched_labels]
//
// Relative paths are resolved against the directory of the configuration file.
//
// # Example Usage
//
//	cfg, err := config.LoadConfig("/etc/bigip-sd/config.toml")
//	if err != nil {
//	    return err
//	}
//	if err := cfg.ValidateConfig(); err != nil {
//	    return err
//	}
package config
