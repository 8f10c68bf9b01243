package config

import (
	"bytes"
	stderrors "errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"

	"github.com/maksimkurb/bigip-sd/src/internal/errors"
	"github.com/maksimkurb/bigip-sd/src/internal/log"
)

const (
	DefaultFormat        = "json"
	DefaultLocationLabel = "location"
	DefaultLocationValue = "BigIP"
)

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

func (c *Config) applyDefaults() {
	if c.Resolver == nil {
		c.Resolver = &ResolverConfig{}
	}
	if c.Resolver.Upstreams == nil {
		c.Resolver.Upstreams = []string{}
	}
	if c.Resolver.QueryAAAA == nil {
		queryAAAA := true
		c.Resolver.QueryAAAA = &queryAAAA
	}

	if c.Export == nil {
		c.Export = &ExportConfig{}
	}
	if c.Export.Format == "" {
		c.Export.Format = DefaultFormat
	}
	if c.Export.MatchedLabels == nil {
		c.Export.MatchedLabels = map[string]string{DefaultLocationLabel: DefaultLocationValue}
	}
	if c.Export.UnmatchedLabels == nil {
		c.Export.UnmatchedLabels = map[string]string{}
	}
}

func LoadConfig(configPath string) (*Config, error) {
	configFile := filepath.Clean(configPath)

	if !filepath.IsAbs(configFile) {
		if path, err := filepath.Abs(configFile); err != nil {
			return nil, errors.NewConfigError("failed to get absolute path", err)
		} else {
			configFile = path
		}
	}

	content, err := os.ReadFile(configFile)
	if err != nil {
		return nil, errors.NewConfigError(fmt.Sprintf("failed to read config file '%s'", configFile), err)
	}

	var config Config
	dec := toml.NewDecoder(bytes.NewReader(content))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&config); err != nil {
		var derr *toml.DecodeError
		var serr *toml.StrictMissingError
		switch {
		case stderrors.As(err, &derr):
			log.Errorf("%s", derr.String())
			row, col := derr.Position()
			return nil, errors.NewConfigError(
				fmt.Sprintf("failed to parse config file '%s' at line %d, column %d", configFile, row, col), err)
		case stderrors.As(err, &serr):
			log.Errorf("%s", serr.String())
			return nil, errors.NewConfigError(
				fmt.Sprintf("unknown fields in config file '%s'", configFile), err)
		default:
			return nil, errors.NewConfigError(fmt.Sprintf("failed to parse config file '%s'", configFile), err)
		}
	}

	config._absConfigFilePath = configFile
	config.applyDefaults()

	log.Debugf("Configuration file path: %s", configFile)

	return &config, nil
}

func (c *Config) SerializeConfig() (*bytes.Buffer, error) {
	buf := bytes.Buffer{}
	enc := toml.NewEncoder(&buf)
	enc.SetIndentTables(true)
	if err := enc.Encode(c); err != nil {
		return nil, err
	}
	return &buf, nil
}
