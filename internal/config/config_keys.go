// config_keys.go provides key-value access to configuration settings.
//
// Separated from config.go to isolate the key enumeration and
// string-based get/set logic, the way the teacher's package splits
// YAML structure (config.go) from the MCP/CLI string-keyed interface
// (this file).
package config

import (
	"fmt"
	"slices"
	"strconv"
)

// ValidKeys returns all valid configuration keys.
func ValidKeys() []string {
	return []string{
		"display.char_style", "display.prefix_len", "display.max_length",
		"display.long_branch_each", "display.no_color", "display.no_bold",
		"display.line_number", "display.trim",
		"search.searcher", "search.threads", "search.hidden", "search.links",
		"editor.command", "editor.open_like",
	}
}

// IsValidKey returns true if the key is a valid configuration key.
func IsValidKey(key string) bool {
	return slices.Contains(ValidKeys(), key)
}

// Get returns the value of a configuration key as a string.
func (c *Config) Get(key string) (string, error) {
	switch key {
	case "display.char_style":
		return c.CharStyle(), nil
	case "display.prefix_len":
		return strconv.Itoa(c.PrefixLen()), nil
	case "display.max_length":
		return intPtrString(c.Display.MaxLength), nil
	case "display.long_branch_each":
		return strconv.Itoa(c.LongBranchEach()), nil
	case "display.no_color":
		return strconv.FormatBool(c.NoColor()), nil
	case "display.no_bold":
		return strconv.FormatBool(c.NoBold()), nil
	case "display.line_number":
		return strconv.FormatBool(c.Display.LineNumber != nil && *c.Display.LineNumber), nil
	case "display.trim":
		return strconv.FormatBool(c.Display.Trim != nil && *c.Display.Trim), nil
	case "search.searcher":
		return c.Searcher(), nil
	case "search.threads":
		return intPtrString(c.Search.Threads), nil
	case "search.hidden":
		return strconv.FormatBool(c.Search.Hidden != nil && *c.Search.Hidden), nil
	case "search.links":
		return strconv.FormatBool(c.Search.Links != nil && *c.Search.Links), nil
	case "editor.command":
		return c.EditorCommand(), nil
	case "editor.open_like":
		if c.Editor.OpenLike == nil {
			return "", nil
		}
		return *c.Editor.OpenLike, nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnknownKey, key)
	}
}

// Set sets the value of a configuration key.
func (c *Config) Set(key, value string) error {
	switch key {
	case "display.char_style":
		if !validCharStyles[value] {
			return fmt.Errorf("%w: display.char_style must be one of ascii/single/double/heavy/rounded/none", ErrInvalidValue)
		}
		c.Display.CharStyle = &value
	case "display.prefix_len":
		n, err := parseBoundedInt(value, MinPrefixLen, MaxPrefixLen)
		if err != nil {
			return fmt.Errorf("%w: display.prefix_len must be an integer between %d and %d", ErrInvalidValue, MinPrefixLen, MaxPrefixLen)
		}
		c.Display.PrefixLen = &n
	case "display.max_length":
		n, err := strconv.Atoi(value)
		if err != nil || n < 0 {
			return fmt.Errorf("%w: display.max_length must be a non-negative integer", ErrInvalidValue)
		}
		c.Display.MaxLength = &n
	case "display.long_branch_each":
		n, err := parseBoundedInt(value, MinLongBranchEach, MaxLongBranchEach)
		if err != nil {
			return fmt.Errorf("%w: display.long_branch_each must be an integer between %d and %d", ErrInvalidValue, MinLongBranchEach, MaxLongBranchEach)
		}
		c.Display.LongBranchEach = &n
	case "display.no_color":
		b, err := parseBool(value)
		if err != nil {
			return fmt.Errorf("%w: display.no_color must be true or false", ErrInvalidValue)
		}
		c.Display.NoColor = &b
	case "display.no_bold":
		b, err := parseBool(value)
		if err != nil {
			return fmt.Errorf("%w: display.no_bold must be true or false", ErrInvalidValue)
		}
		c.Display.NoBold = &b
	case "display.line_number":
		b, err := parseBool(value)
		if err != nil {
			return fmt.Errorf("%w: display.line_number must be true or false", ErrInvalidValue)
		}
		c.Display.LineNumber = &b
	case "display.trim":
		b, err := parseBool(value)
		if err != nil {
			return fmt.Errorf("%w: display.trim must be true or false", ErrInvalidValue)
		}
		c.Display.Trim = &b
	case "search.searcher":
		if value != "tgrep" && value != "rg" {
			return fmt.Errorf("%w: search.searcher must be \"tgrep\" or \"rg\"", ErrInvalidValue)
		}
		c.Search.Searcher = &value
	case "search.threads":
		n, err := parseBoundedInt(value, MinThreads, MaxThreads)
		if err != nil {
			return fmt.Errorf("%w: search.threads must be an integer between %d and %d", ErrInvalidValue, MinThreads, MaxThreads)
		}
		c.Search.Threads = &n
	case "search.hidden":
		b, err := parseBool(value)
		if err != nil {
			return fmt.Errorf("%w: search.hidden must be true or false", ErrInvalidValue)
		}
		c.Search.Hidden = &b
	case "search.links":
		b, err := parseBool(value)
		if err != nil {
			return fmt.Errorf("%w: search.links must be true or false", ErrInvalidValue)
		}
		c.Search.Links = &b
	case "editor.command":
		c.Editor.Command = &value
	case "editor.open_like":
		c.Editor.OpenLike = &value
	default:
		return fmt.Errorf("%w: %s", ErrUnknownKey, key)
	}
	return nil
}

// All returns all configuration values as a map.
func (c *Config) All() map[string]string {
	m := make(map[string]string, len(ValidKeys()))
	for _, k := range ValidKeys() {
		v, _ := c.Get(k)
		m[k] = v
	}
	return m
}

// IsSet returns true if the key has an explicit value (not just defaults).
func (c *Config) IsSet(key string) bool {
	switch key {
	case "display.char_style":
		return c.Display.CharStyle != nil
	case "display.prefix_len":
		return c.Display.PrefixLen != nil
	case "display.max_length":
		return c.Display.MaxLength != nil
	case "display.long_branch_each":
		return c.Display.LongBranchEach != nil
	case "display.no_color":
		return c.Display.NoColor != nil
	case "display.no_bold":
		return c.Display.NoBold != nil
	case "display.line_number":
		return c.Display.LineNumber != nil
	case "display.trim":
		return c.Display.Trim != nil
	case "search.searcher":
		return c.Search.Searcher != nil
	case "search.threads":
		return c.Search.Threads != nil
	case "search.hidden":
		return c.Search.Hidden != nil
	case "search.links":
		return c.Search.Links != nil
	case "editor.command":
		return c.Editor.Command != nil
	case "editor.open_like":
		return c.Editor.OpenLike != nil
	default:
		return false
	}
}

func parseBool(value string) (bool, error) {
	switch value {
	case "true":
		return true, nil
	case "false":
		return false, nil
	default:
		return false, fmt.Errorf("not a bool: %s", value)
	}
}

func parseBoundedInt(value string, min, max int) (int, error) {
	n, err := strconv.Atoi(value)
	if err != nil || n < min || n > max {
		return 0, fmt.Errorf("out of range")
	}
	return n, nil
}

func intPtrString(p *int) string {
	if p == nil {
		return "0"
	}
	return strconv.Itoa(*p)
}
