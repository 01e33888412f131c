// Package config loads tool configuration from a .genfn.toml file.
package config

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml"

	"github.com/genfn/genfn/check"
	"github.com/genfn/genfn/codegen"
)

// DefaultFile is the configuration file name looked up next to the input.
const DefaultFile = ".genfn.toml"

// tomlConfig is the configuration as it is encoded in TOML.
type tomlConfig struct {
	Package    string `toml:"package"`
	CoroImport string `toml:"coro-import"`
	SelfRef    string `toml:"self-reference"`
	Verbose    bool   `toml:"verbose"`
}

// Config is the resolved tool configuration.
type Config struct {
	// Package names the emitted Go package.
	Package string

	// CoroImport overrides the runtime import path in emitted code.
	CoroImport string

	// SelfRef selects how address-of-local captures across suspension
	// points are treated.
	SelfRef check.SelfRefPolicy

	// Verbose enables debug logging throughout the pipeline.
	Verbose bool
}

// Default returns the configuration used when no file is present.
func Default() Config {
	return Config{
		Package:    "main",
		CoroImport: codegen.DefaultCoroImport,
		SelfRef:    check.Reject,
	}
}

// Load reads a configuration file, filling unset values from Default.
func Load(path string) (Config, error) {
	buff, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("unable to open config file at `%s`: %w", path, err)
	}
	return Parse(buff)
}

// Parse decodes configuration bytes, filling unset values from Default.
func Parse(buff []byte) (Config, error) {
	tc := &tomlConfig{}
	if err := toml.Unmarshal(buff, tc); err != nil {
		return Config{}, fmt.Errorf("error parsing config file: %w", err)
	}

	cfg := Default()
	if tc.Package != "" {
		cfg.Package = tc.Package
	}
	if tc.CoroImport != "" {
		cfg.CoroImport = tc.CoroImport
	}
	cfg.Verbose = tc.Verbose

	switch tc.SelfRef {
	case "", "reject":
		cfg.SelfRef = check.Reject
	case "pin":
		cfg.SelfRef = check.Pin
	default:
		return Config{}, fmt.Errorf("invalid self-reference policy %q: want \"reject\" or \"pin\"", tc.SelfRef)
	}

	return cfg, nil
}
