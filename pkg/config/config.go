// Package config loads YAML configuration files into typed structs.
//
// `${VAR}` and `$VAR` references are expanded from the environment before
// parsing, and targets implementing Validator are checked after.
package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Validator is implemented by configuration types that can check themselves.
type Validator interface {
	Validate() error
}

// Load reads filename and decodes it over target. Fields absent from the
// file keep the values target already holds, so callers pass pre-filled defaults.
func Load[T any](filename string, target *T) error {
	data, err := os.ReadFile(filename)
	if err != nil {
		return fmt.Errorf("read config %s: %w", filename, err)
	}
	if err := Decode(data, target); err != nil {
		return fmt.Errorf("config %s: %w", filename, err)
	}
	return nil
}

// Decode expands environment references in data, unmarshals it over target
// and validates the result.
func Decode[T any](data []byte, target *T) error {
	if err := yaml.Unmarshal([]byte(os.ExpandEnv(string(data))), target); err != nil {
		return fmt.Errorf("parse: %w", err)
	}
	if v, ok := any(target).(Validator); ok {
		if err := v.Validate(); err != nil {
			return fmt.Errorf("validation failed: %w", err)
		}
	}
	return nil
}

// LoadWithDefaults loads filename, or defaultFile when filename does not
// exist, and reports which file was read.
func LoadWithDefaults[T any](filename, defaultFile string, target *T) (string, error) {
	if _, err := os.Stat(filename); errors.Is(err, os.ErrNotExist) {
		if defaultFile == "" || defaultFile == filename {
			return "", fmt.Errorf("config file not found: %s", filename)
		}
		filename = defaultFile
	}
	return filename, Load(filename, target)
}
