package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Save marshals the Config to YAML and writes it to the specified path.
func Save(cfg *Config, path string) error {
	if cfg == nil {
		return fmt.Errorf("config cannot be nil")
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}
	return nil
}

// AddSession declares a new session. An existing label is replaced only
// when overwrite is set.
func AddSession(cfg *Config, label string, s SessionConfig, overwrite bool) error {
	if cfg == nil {
		return fmt.Errorf("config cannot be nil")
	}
	if label == "" {
		return fmt.Errorf("session label cannot be empty")
	}
	if _, exists := cfg.Sessions[label]; exists && !overwrite {
		return fmt.Errorf("session %q already exists", label)
	}
	if s.Root == "" {
		s.Root = label
	}
	for other, existing := range cfg.Sessions {
		if other != label && existing.Root == s.Root {
			return fmt.Errorf("session %q already uses root %q", other, s.Root)
		}
	}
	if cfg.Sessions == nil {
		cfg.Sessions = map[string]SessionConfig{}
	}
	cfg.Sessions[label] = s
	return nil
}

// RemoveSession forgets a session. Its records stay in the store.
func RemoveSession(cfg *Config, label string) error {
	if cfg == nil {
		return fmt.Errorf("config cannot be nil")
	}
	if _, exists := cfg.Sessions[label]; !exists {
		return fmt.Errorf("session %q does not exist", label)
	}
	delete(cfg.Sessions, label)
	return nil
}

// AddGenerator declares a new generator profile.
func AddGenerator(cfg *Config, name string, g GeneratorConfig, overwrite bool) error {
	if cfg == nil {
		return fmt.Errorf("config cannot be nil")
	}
	if name == "" {
		return fmt.Errorf("generator name cannot be empty")
	}
	if _, exists := cfg.Generators[name]; exists && !overwrite {
		return fmt.Errorf("generator %q already exists", name)
	}
	if cfg.Generators == nil {
		cfg.Generators = map[string]GeneratorConfig{}
	}
	cfg.Generators[name] = g
	return nil
}
