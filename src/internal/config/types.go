package config

import (
	"path/filepath"
	"time"

	"github.com/maksimkurb/bigip-sd/src/internal/utils"
)

type Config struct {
	// Resolver holds DNS resolution settings.
	Resolver *ResolverConfig `toml:"resolver"`
	// Export holds output settings.
	Export *ExportConfig `toml:"export"`

	_absConfigFilePath string
}

type ResolverConfig struct {
	// Upstreams lists DNS servers to query instead of the system resolver. Supported: udp://ip[:port], ip[:port], doh://host/path, https://host/path. Append ?domain=example.com to restrict an upstream to one domain (default: [] = system resolver).
	Upstreams []string `toml:"upstreams" json:"upstreams" validate:"dive,upstream_url"`
	// TimeoutSeconds is the per-query timeout for upstreams (default: 0 = built-in default).
	TimeoutSeconds int `toml:"timeout_seconds" json:"timeout_seconds" validate:"gte=0,lte=300"`
	// QueryAAAA also asks upstreams for IPv6 addresses (default: true).
	QueryAAAA *bool `toml:"query_aaaa" json:"query_aaaa"`
	// QueriesPerSecond paces lookups (default: 0 = unpaced).
	QueriesPerSecond float64 `toml:"queries_per_second" json:"queries_per_second" validate:"gte=0"`
}

type ExportConfig struct {
	// Format is the output encoding: json or yaml (default: json).
	Format string `toml:"format" json:"format" validate:"required,oneof=json yaml yml"`
	// Output is the output file path. Available variables: {{format}} (default: "" = stdout).
	Output string `toml:"output" json:"output"`
	// DiagnosticsOutput is the path of a TOML record of skipped entries (default: "" = none).
	DiagnosticsOutput string `toml:"diagnostics_output" json:"diagnostics_output"`
	// MatchedLabels are attached to targets inside a BigIP subnet (default: location = "BigIP").
	MatchedLabels map[string]string `toml:"matched_labels" json:"matched_labels" validate:"dive,keys,label_name,endkeys"`
	// UnmatchedLabels are attached to all other targets (default: none).
	UnmatchedLabels map[string]string `toml:"unmatched_labels" json:"unmatched_labels" validate:"dive,keys,label_name,endkeys"`
}

// GetConfigDir returns the directory of the loaded configuration file, or an
// empty string for the built-in defaults.
func (c *Config) GetConfigDir() string {
	if c._absConfigFilePath == "" {
		return ""
	}
	return filepath.Dir(c._absConfigFilePath)
}

// GetConfigPath returns the absolute path of the loaded configuration file.
func (c *Config) GetConfigPath() string {
	return c._absConfigFilePath
}

// ResolvePath resolves a path from the configuration against the config directory.
func (c *Config) ResolvePath(path string) string {
	if path == "" {
		return ""
	}
	return utils.GetAbsolutePath(path, c.GetConfigDir())
}

// UseUpstreams reports whether lookups go to configured upstreams rather than the system resolver.
func (r *ResolverConfig) UseUpstreams() bool {
	return len(r.Upstreams) > 0
}

func (r *ResolverConfig) Timeout() time.Duration {
	return time.Duration(r.TimeoutSeconds) * time.Second
}

func (r *ResolverConfig) IsQueryAAAA() bool {
	return r.QueryAAAA == nil || *r.QueryAAAA
}
