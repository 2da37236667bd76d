// Package config reads and writes oktags configuration.
// Supports both global (~/.oktags/config.yaml) and local (.oktags/config.yaml).
// Reading: uses local if it exists, otherwise global.
// Writing: defaults to global, use --local for local.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/jpl-au/oktags/internal/validate"
)

var (
	// ErrNoConfigPath is returned when the config path cannot be determined.
	ErrNoConfigPath = errors.New("cannot determine config path")
	// ErrUnknownKey is returned when getting/setting an unknown config key.
	ErrUnknownKey = errors.New("unknown config key")
	// ErrInvalidValue is returned when a config value is invalid.
	ErrInvalidValue = errors.New("invalid config value")
)

// Dir is the name of the oktags directory in both scopes.
const Dir = ".oktags"

// DefaultPattern is the walk pattern used when none is configured.
const DefaultPattern = "**/*"

// Scope represents the configuration scope (global or local).
type Scope int

const (
	// ScopeGlobal is user-wide config in ~/.oktags/config.yaml (default)
	ScopeGlobal Scope = iota
	// ScopeLocal is directory-specific config in .oktags/config.yaml
	ScopeLocal
)

// Search holds options for commands that walk a tree.
type Search struct {
	Pattern string `yaml:"pattern,omitempty"`
}

// Decode holds filename decoding options.
type Decode struct {
	Legacy *bool `yaml:"legacy,omitempty"`
}

// Walk holds directory walk options.
type Walk struct {
	Hidden *bool `yaml:"hidden,omitempty"`
}

// Audit holds audit log options.
type Audit struct {
	Enabled *bool `yaml:"enabled,omitempty"`
}

// Config contains configuration for oktags.
type Config struct {
	Search Search `yaml:"search,omitempty"`
	Decode Decode `yaml:"decode,omitempty"`
	Walk   Walk   `yaml:"walk,omitempty"`
	Audit  Audit  `yaml:"audit,omitempty"`

	// path is the file this config was loaded from (for Save)
	path  string
	scope Scope
}

// Validate checks configured values. Unset values are valid; defaults apply.
func (c *Config) Validate() error {
	if c.Search.Pattern != "" {
		if err := validate.Pattern(c.Search.Pattern); err != nil {
			return fmt.Errorf("%w: search.pattern: %w", ErrInvalidValue, err)
		}
	}
	return nil
}

// Pattern returns the default walk pattern (defaults to "**/*").
func (c *Config) Pattern() string {
	if c.Search.Pattern == "" {
		return DefaultPattern
	}
	return c.Search.Pattern
}

// Legacy reports whether unbracketed names are decoded (defaults to false).
func (c *Config) Legacy() bool {
	return c.Decode.Legacy != nil && *c.Decode.Legacy
}

// Hidden reports whether walks include dot files (defaults to false).
func (c *Config) Hidden() bool {
	return c.Walk.Hidden != nil && *c.Walk.Hidden
}

// AuditEnabled reports whether the audit log is written (defaults to true).
func (c *Config) AuditEnabled() bool {
	return c.Audit.Enabled == nil || *c.Audit.Enabled
}

// LocalPath returns the path to the local config file.
func LocalPath() string {
	return filepath.Join(Dir, "config.yaml")
}

// GlobalPath returns the path to the global (user) config file: ~/.oktags/config.yaml
func GlobalPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, Dir, "config.yaml")
}

// Load reads configuration: uses local if it exists, otherwise global.
func Load() (*Config, error) {
	if _, err := os.Stat(LocalPath()); err == nil {
		return LoadScope(ScopeLocal)
	}
	return LoadScope(ScopeGlobal)
}

// LoadScope reads configuration from a specific scope.
func LoadScope(scope Scope) (*Config, error) {
	path := pathForScope(scope)
	if path == "" {
		return &Config{scope: scope}, nil
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return &Config{path: path, scope: scope}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("cannot read config file %s: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("malformed config file %s: %w\n\nTo fix: edit the file to correct the YAML syntax, or delete it to use defaults", path, err)
	}
	cfg.path = path
	cfg.scope = scope

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config file %s: %w", path, err)
	}
	return &cfg, nil
}

// Scope returns which scope this config was loaded from.
func (c *Config) Scope() Scope {
	return c.scope
}

// Save writes the configuration to its original location.
func (c *Config) Save() error {
	if c.path == "" {
		c.path = pathForScope(c.scope)
	}
	if c.path == "" {
		return ErrNoConfigPath
	}
	return c.saveToPath(c.path)
}

// SaveScope writes the configuration to the specified scope.
func (c *Config) SaveScope(scope Scope) error {
	path := pathForScope(scope)
	if path == "" {
		return ErrNoConfigPath
	}
	return c.saveToPath(path)
}

// saveToPath writes configuration to path, creating parent directories.
func (c *Config) saveToPath(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}

func pathForScope(scope Scope) string {
	switch scope {
	case ScopeLocal:
		return LocalPath()
	case ScopeGlobal:
		return GlobalPath()
	default:
		return ""
	}
}
