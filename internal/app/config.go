package app

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"
)

// Output formats.
const (
	OutputText = "text"
	OutputJSON = "json"
)

// DefaultAddr is the listen address of the inspection server.
const DefaultAddr = ":8080"

var (
	logLevels  = []string{"debug", "info", "warn", "error"}
	logFormats = []string{"text", "json"}
	outputs    = []string{OutputText, OutputJSON}
)

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	Paths      []string // graph files or directories
	GraphID    string   // empty selects every loaded graph
	Output     string
	BestEffort bool
	EnableNet  bool // registers the side-effecting network blocks

	LogFormat string
	LogLevel  string

	Addr string
}

// NewConfig fills defaults and validates cfg.
func NewConfig(cfg Config) (*Config, error) {
	if cfg.Output == "" {
		cfg.Output = OutputText
	}
	if cfg.LogFormat == "" {
		cfg.LogFormat = "text"
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
	if cfg.Addr == "" {
		cfg.Addr = DefaultAddr
	}
	cfg.Output = strings.ToLower(cfg.Output)
	cfg.LogFormat = strings.ToLower(cfg.LogFormat)
	cfg.LogLevel = strings.ToLower(cfg.LogLevel)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate reports every invalid field at once.
func (c *Config) Validate() error {
	var errs []error
	if !slices.Contains(logLevels, c.LogLevel) {
		errs = append(errs, fmt.Errorf("invalid log-level %q: must be one of %s", c.LogLevel, strings.Join(logLevels, ", ")))
	}
	if !slices.Contains(logFormats, c.LogFormat) {
		errs = append(errs, fmt.Errorf("invalid log-format %q: must be one of %s", c.LogFormat, strings.Join(logFormats, ", ")))
	}
	if !slices.Contains(outputs, c.Output) {
		errs = append(errs, fmt.Errorf("invalid output %q: must be one of %s", c.Output, strings.Join(outputs, ", ")))
	}
	return errors.Join(errs...)
}

// RequirePaths fails when no graph path was given.
func (c *Config) RequirePaths() error {
	if len(c.Paths) == 0 {
		return errors.New("at least one graph file or directory is required")
	}
	return nil
}

// FileConfig is the optional TOML configuration file.
type FileConfig struct {
	LogLevel   string       `toml:"log_level"`
	LogFormat  string       `toml:"log_format"`
	Output     string       `toml:"output"`
	BestEffort bool         `toml:"best_effort"`
	Net        bool         `toml:"net"`
	Server     ServerConfig `toml:"server"`
}

// ServerConfig is the [server] table.
type ServerConfig struct {
	Addr string `toml:"addr"`
}

// LoadFileConfig decodes a TOML file. Unknown keys are rejected.
func LoadFileConfig(path string) (*FileConfig, error) {
	var fc FileConfig
	md, err := toml.DecodeFile(path, &fc)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, fmt.Errorf("config file %s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	return &fc, nil
}

// Apply copies the file's values into cfg for every setting whose flag was
// not given explicitly. flagSet reports whether a flag was set.
func (fc *FileConfig) Apply(cfg *Config, flagSet func(name string) bool) {
	setString := func(flag string, dst *string, v string) {
		if v != "" && !flagSet(flag) {
			*dst = v
		}
	}
	setBool := func(flag string, dst *bool, v bool) {
		if v && !flagSet(flag) {
			*dst = v
		}
	}
	setString("log-level", &cfg.LogLevel, fc.LogLevel)
	setString("log-format", &cfg.LogFormat, fc.LogFormat)
	setString("output", &cfg.Output, fc.Output)
	setString("addr", &cfg.Addr, fc.Server.Addr)
	setBool("best-effort", &cfg.BestEffort, fc.BestEffort)
	setBool("net", &cfg.EnableNet, fc.Net)
}
