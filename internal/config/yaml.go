package config

import (
	"fmt"

	"github.com/goccy/go-yaml"
)

// maxConfigSize bounds the config file read into memory.
const maxConfigSize = 1 << 20

// decode fills cfg from data. Unknown keys are errors so typos surface
// instead of silently keeping a default.
func decode(data []byte, cfg *Config) error {
	if len(data) == 0 {
		return fmt.Errorf("%w: file is empty", ErrConfigParse)
	}
	if len(data) > maxConfigSize {
		return fmt.Errorf("%w: %d bytes (max %d)", ErrConfigTooLarge, len(data), maxConfigSize)
	}
	if err := yaml.UnmarshalWithOptions(data, cfg, yaml.Strict()); err != nil {
		// FormatError prints the offending source lines with a caret.
		return fmt.Errorf("%w:\n%s", ErrConfigParse, yaml.FormatError(err, false, true))
	}
	return nil
}

// Encode returns cfg as YAML with two-space indentation.
func Encode(cfg *Config) ([]byte, error) {
	data, err := yaml.MarshalWithOptions(cfg, yaml.Indent(2), yaml.UseLiteralStyleIfMultiline(true))
	if err != nil {
		return nil, fmt.Errorf("encoding config: %w", err)
	}
	return data, nil
}
