// config_keys.go provides key-value access to configuration settings.
//
// The CLI and MCP surfaces address settings by dotted string keys
// ("walk.hidden"); config.go owns the YAML structure behind them. Optional
// booleans are pointers so an explicit false is distinguishable from unset.

package config

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/jpl-au/oktags/internal/validate"
)

const (
	KeySearchPattern = "search.pattern"
	KeyDecodeLegacy  = "decode.legacy"
	KeyWalkHidden    = "walk.hidden"
	KeyAuditEnabled  = "audit.enabled"
)

// ValidKeys returns all valid configuration keys.
func ValidKeys() []string {
	return []string{KeySearchPattern, KeyDecodeLegacy, KeyWalkHidden, KeyAuditEnabled}
}

// IsValidKey returns true if the key is a valid configuration key.
func IsValidKey(key string) bool {
	return slices.Contains(ValidKeys(), key)
}

// Get returns the effective value of a configuration key as a string.
func (c *Config) Get(key string) (string, error) {
	switch key {
	case KeySearchPattern:
		return c.Pattern(), nil
	case KeyDecodeLegacy:
		return strconv.FormatBool(c.Legacy()), nil
	case KeyWalkHidden:
		return strconv.FormatBool(c.Hidden()), nil
	case KeyAuditEnabled:
		return strconv.FormatBool(c.AuditEnabled()), nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnknownKey, key)
	}
}

// Set sets the value of a configuration key.
func (c *Config) Set(key, value string) error {
	switch key {
	case KeySearchPattern:
		if err := validate.Pattern(value); err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidValue, err)
		}
		c.Search.Pattern = value
		return nil
	case KeyDecodeLegacy:
		return setBool(&c.Decode.Legacy, key, value)
	case KeyWalkHidden:
		return setBool(&c.Walk.Hidden, key, value)
	case KeyAuditEnabled:
		return setBool(&c.Audit.Enabled, key, value)
	default:
		return fmt.Errorf("%w: %s", ErrUnknownKey, key)
	}
}

func setBool(dst **bool, key, value string) error {
	v := strings.ToLower(value)
	if v != "true" && v != "false" {
		return fmt.Errorf("%w: %s must be true or false", ErrInvalidValue, key)
	}
	b := v == "true"
	*dst = &b
	return nil
}

// All returns all effective configuration values as a map.
func (c *Config) All() map[string]string {
	m := make(map[string]string, len(ValidKeys()))
	for _, k := range ValidKeys() {
		m[k], _ = c.Get(k)
	}
	return m
}

// IsSet returns true if the key has an explicit value (not just defaults).
func (c *Config) IsSet(key string) bool {
	switch key {
	case KeySearchPattern:
		return c.Search.Pattern != ""
	case KeyDecodeLegacy:
		return c.Decode.Legacy != nil
	case KeyWalkHidden:
		return c.Walk.Hidden != nil
	case KeyAuditEnabled:
		return c.Audit.Enabled != nil
	default:
		return false
	}
}
