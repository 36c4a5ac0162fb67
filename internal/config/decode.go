package config

import (
	"bytes"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/pelletier/go-toml/v2"
)

// MaxInputSize limits config input to prevent memory exhaustion (default 1MB).
var MaxInputSize = 1 << 20

var (
	ErrEmptyData         = errors.New("nil or empty data")
	ErrInputTooLarge     = errors.New("input exceeds maximum size")
	ErrUnsupportedFormat = errors.New("unsupported config format")
)

// extensions are tried in this order when resolving a config name.
var extensions = []string{".yaml", ".yml", ".toml"}

// decode strictly unmarshals data into v, choosing the format from path's
// extension. Fields absent from data keep their current value in v.
func decode(path string, data []byte, v any) error {
	if len(data) == 0 {
		return ErrEmptyData
	}
	if len(data) > MaxInputSize {
		return fmt.Errorf("%w: %d bytes (max %d)", ErrInputTooLarge, len(data), MaxInputSize)
	}

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		if err := yaml.UnmarshalWithOptions(data, v, yaml.Strict()); err != nil {
			return fmt.Errorf("yaml: %w", err)
		}
	case ".toml":
		dec := toml.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(v); err != nil {
			return fmt.Errorf("toml: %w", err)
		}
	default:
		return fmt.Errorf("%w: %q (use .yaml, .yml or .toml)", ErrUnsupportedFormat, ext)
	}
	return nil
}

// EncodeYAML renders cfg as YAML, for `mdmirror config`.
func EncodeYAML(cfg *Config) ([]byte, error) {
	out, err := yaml.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("yaml: %w", err)
	}
	return out, nil
}

// EncodeTOML renders cfg as TOML, for `mdmirror config --toml`.
func EncodeTOML(cfg *Config) ([]byte, error) {
	out, err := toml.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("toml: %w", err)
	}
	return out, nil
}
