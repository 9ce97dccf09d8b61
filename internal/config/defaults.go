package config

import (
	"github.com/kbsecret/kbsecret/internal/generator"
)

const DefaultSession = "default"

// Default returns the configuration used when no config file exists yet:
// one "default" session and one "default" generator.
func Default() *Config {
	cfg := &Config{
		Sessions: map[string]SessionConfig{
			DefaultSession: {Root: DefaultSession},
		},
	}
	ApplyDefaults(cfg)
	return cfg
}

// ApplyDefaults fills in default values for optional fields that were not
// specified in the YAML. It is called after parsing and before validation.
func ApplyDefaults(cfg *Config) {
	if cfg.Sessions == nil {
		cfg.Sessions = map[string]SessionConfig{}
	}
	for label, s := range cfg.Sessions {
		if s.Root == "" {
			s.Root = label
			cfg.Sessions[label] = s
		}
	}

	if cfg.Generators == nil {
		cfg.Generators = map[string]GeneratorConfig{}
	}
	if _, ok := cfg.Generators[generator.DefaultName]; !ok {
		cfg.Generators[generator.DefaultName] = GeneratorConfig{}
	}
	for name, g := range cfg.Generators {
		if g.Format == "" {
			g.Format = string(generator.DefaultFormat)
		}
		if g.Length == 0 {
			g.Length = generator.DefaultLength
		}
		cfg.Generators[name] = g
	}
}
