package lang

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds language-map overrides loaded from a YAML file:
//
//	languages:
//	  .proto: protobuf
//	  BUILD: starlark
type Config struct {
	Languages map[string]string `yaml:"languages"`
}

// LoadConfig reads and parses a YAML config file.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	return &cfg, nil
}

// Apply merges the config's overrides into the map.
func (m *Map) Apply(cfg *Config) {
	if cfg == nil {
		return
	}

	for key, tag := range cfg.Languages {
		m.Add(key, tag)
	}
}
