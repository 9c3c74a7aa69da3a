// Package config provides reading and writing of tgrep configuration.
// Supports both global (~/.config/tgrep/config.yaml) and local
// (.tgrep/config.yaml).
// Reading: uses local if it exists, otherwise global.
// Writing: Save writes to the file the config was loaded from (the
// global file when none was loaded); SaveScope writes to a given scope.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

var (
	// ErrNoConfigPath is returned when the config path cannot be determined.
	ErrNoConfigPath = errors.New("cannot determine config path")
	// ErrUnknownKey is returned when getting/setting an unknown config key.
	ErrUnknownKey = errors.New("unknown config key")
	// ErrInvalidValue is returned when a config value is invalid.
	ErrInvalidValue = errors.New("invalid config value")
)

// Scope represents the configuration scope (global or local).
type Scope int

const (
	// ScopeGlobal is user-wide config in ~/.config/tgrep/config.yaml (default)
	ScopeGlobal Scope = iota
	// ScopeLocal is repository-specific config in .tgrep/config.yaml
	ScopeLocal
)

// Display holds the rendering defaults spec.md section 6 exposes as
// CLI flags; a config file supplies fallbacks for whichever of these a
// given invocation doesn't pass explicitly.
type Display struct {
	CharStyle      *string `yaml:"char_style,omitempty"`
	PrefixLen      *int    `yaml:"prefix_len,omitempty"`
	MaxLength      *int    `yaml:"max_length,omitempty"`
	LongBranchEach *int    `yaml:"long_branch_each,omitempty"`
	NoColor        *bool   `yaml:"no_color,omitempty"`
	NoBold         *bool   `yaml:"no_bold,omitempty"`
	LineNumber     *bool   `yaml:"line_number,omitempty"`
	Trim           *bool   `yaml:"trim,omitempty"`
}

// Search holds default search behaviour, independent of display.
type Search struct {
	Searcher *string `yaml:"searcher,omitempty"`
	Threads  *int    `yaml:"threads,omitempty"`
	Hidden   *bool   `yaml:"hidden,omitempty"`
	Links    *bool   `yaml:"links,omitempty"`
}

// Editor holds the default editor invocation.
type Editor struct {
	Command  *string `yaml:"command,omitempty"`
	OpenLike *string `yaml:"open_like,omitempty"`
}

// Default display values applied when not configured, per spec.md
// section 6.
const (
	DefaultCharStyle      = "single"
	DefaultPrefixLen      = 3
	DefaultLongBranchEach = 5
)

// Validation bounds for configuration values.
var validCharStyles = map[string]bool{
	"ascii": true, "single": true, "double": true,
	"heavy": true, "rounded": true, "none": true,
}

const (
	MinPrefixLen      = 0
	MaxPrefixLen      = 64
	MinLongBranchEach = 1
	MaxLongBranchEach = 10000
	MinThreads        = 1
	MaxThreads        = 1024
)

// Config contains configuration for tgrep.
type Config struct {
	Display Display `yaml:"display,omitempty"`
	Search  Search  `yaml:"search,omitempty"`
	Editor  Editor  `yaml:"editor,omitempty"`

	// path is the file this config was loaded from (for Save)
	path  string
	scope Scope
}

// Validate checks that all configured values are within acceptable
// bounds. Returns nil if all values are valid or not set (defaults
// will be used).
func (c *Config) Validate() error {
	if c.Display.CharStyle != nil && !validCharStyles[*c.Display.CharStyle] {
		return fmt.Errorf("%w: char_style must be one of ascii/single/double/heavy/rounded/none, got %q",
			ErrInvalidValue, *c.Display.CharStyle)
	}
	if c.Display.PrefixLen != nil {
		v := *c.Display.PrefixLen
		if v < MinPrefixLen || v > MaxPrefixLen {
			return fmt.Errorf("%w: prefix_len must be between %d and %d, got %d",
				ErrInvalidValue, MinPrefixLen, MaxPrefixLen, v)
		}
	}
	if c.Display.LongBranchEach != nil {
		v := *c.Display.LongBranchEach
		if v < MinLongBranchEach || v > MaxLongBranchEach {
			return fmt.Errorf("%w: long_branch_each must be between %d and %d, got %d",
				ErrInvalidValue, MinLongBranchEach, MaxLongBranchEach, v)
		}
	}
	if c.Search.Threads != nil {
		v := *c.Search.Threads
		if v < MinThreads || v > MaxThreads {
			return fmt.Errorf("%w: threads must be between %d and %d, got %d",
				ErrInvalidValue, MinThreads, MaxThreads, v)
		}
	}
	if c.Search.Searcher != nil && *c.Search.Searcher != "tgrep" && *c.Search.Searcher != "rg" {
		return fmt.Errorf("%w: searcher must be \"tgrep\" or \"rg\", got %q", ErrInvalidValue, *c.Search.Searcher)
	}
	return nil
}

// CharStyle returns the configured char style, defaulting to "single".
func (c *Config) CharStyle() string {
	if c.Display.CharStyle == nil {
		return DefaultCharStyle
	}
	return *c.Display.CharStyle
}

// PrefixLen returns the configured prefix length, defaulting to 3.
func (c *Config) PrefixLen() int {
	if c.Display.PrefixLen == nil {
		return DefaultPrefixLen
	}
	return *c.Display.PrefixLen
}

// LongBranchEach returns the configured long-branch chunk size,
// defaulting to 5.
func (c *Config) LongBranchEach() int {
	if c.Display.LongBranchEach == nil {
		return DefaultLongBranchEach
	}
	return *c.Display.LongBranchEach
}

// NoColor reports whether color is disabled (defaults to false).
func (c *Config) NoColor() bool {
	return c.Display.NoColor != nil && *c.Display.NoColor
}

// NoBold reports whether bold styling is disabled (defaults to false).
func (c *Config) NoBold() bool {
	return c.Display.NoBold != nil && *c.Display.NoBold
}

// Searcher returns the configured default searcher, defaulting to
// "tgrep".
func (c *Config) Searcher() string {
	if c.Search.Searcher == nil {
		return "tgrep"
	}
	return *c.Search.Searcher
}

// EditorCommand returns the configured default editor command, or ""
// when unset (the caller falls back to $EDITOR / platform default).
func (c *Config) EditorCommand() string {
	if c.Editor.Command == nil {
		return ""
	}
	return *c.Editor.Command
}

// LocalPath returns the path to the local (repository) config file.
func LocalPath() string {
	return filepath.Join(".tgrep", "config.yaml")
}

// GlobalPath returns the path to the global (user) config file:
// ~/.config/tgrep/config.yaml
func GlobalPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "tgrep", "config.yaml")
}

// Path returns the local config path (for backwards compatibility).
func Path() string {
	return LocalPath()
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

// saveToPath writes configuration to a specific filesystem path.
// Creates parent directories as needed with mode 0755.
func (c *Config) saveToPath(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
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

// pathForScope returns the filesystem path for a given scope.
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
