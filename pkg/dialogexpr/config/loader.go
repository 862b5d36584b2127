package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Load reads settings from path, applies environment overrides and
// validates the result. An empty path skips the file.
func Load(path string) (Settings, error) {
	s := Default()
	if path != "" {
		var err error
		if s, err = FromFile(path); err != nil {
			return Settings{}, err
		}
	}
	if err := s.ApplyEnv(); err != nil {
		return Settings{}, err
	}
	if err := s.Validate(); err != nil {
		return Settings{}, err
	}
	return s, nil
}

// FromFile loads settings from a file, auto-detecting format by extension.
// Supported extensions: .yaml, .yml, .json
func FromFile(path string) (Settings, error) {
	data, format, err := readFile(path)
	if err != nil {
		return Settings{}, err
	}
	if format == formatJSON {
		return FromJSON(data)
	}
	return FromYAML(data)
}

// FromYAML parses YAML data over Default.
func FromYAML(data []byte) (Settings, error) {
	s := Default()
	if err := yaml.Unmarshal(data, &s); err != nil {
		return Settings{}, fmt.Errorf("parse yaml: %w", err)
	}
	return s, nil
}

// FromJSON parses JSON data over Default.
func FromJSON(data []byte) (Settings, error) {
	s := Default()
	if err := json.Unmarshal(data, &s); err != nil {
		return Settings{}, fmt.Errorf("parse json: %w", err)
	}
	return s, nil
}

// LoadScope reads a YAML or JSON record to use as an evaluation scope.
func LoadScope(path string) (map[string]any, error) {
	data, format, err := readFile(path)
	if err != nil {
		return nil, err
	}

	var scope map[string]any
	if format == formatJSON {
		err = json.Unmarshal(data, &scope)
	} else {
		err = yaml.Unmarshal(data, &scope)
	}
	if err != nil {
		return nil, fmt.Errorf("parse scope %s: %w", filepath.Base(path), err)
	}
	if scope == nil {
		scope = map[string]any{}
	}
	return scope, nil
}

type fileFormat int

const (
	formatYAML fileFormat = iota
	formatJSON
)

func readFile(path string) ([]byte, fileFormat, error) {
	var format fileFormat
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".yaml", ".yml":
		format = formatYAML
	case ".json":
		format = formatJSON
	default:
		return nil, 0, fmt.Errorf("unsupported config file extension: %s", ext)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, 0, fmt.Errorf("read config file: %w", err)
	}
	return data, format, nil
}
